package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"productreview/pkg/metrics"
	"productreview/review-api-service/internal/app/reviewapi/entity"
)

type priceHistoryRepository struct {
	db *gorm.DB
}

// NewPriceHistoryRepository создает новый репозиторий истории цен
func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// Create записывает одну смену цены
func (r *priceHistoryRepository) Create(ctx context.Context, h *entity.PriceHistory) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "price_histories")
	result := r.db.WithContext(ctx).Create(h)
	timer.ObserveDuration()
	return result.Error
}

// RecentDrops возвращает смены цены после since, где новая цена ниже
// старой, свежие первыми
func (r *priceHistoryRepository) RecentDrops(ctx context.Context, since time.Time) ([]entity.PriceHistory, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "price_histories")
	var drops []entity.PriceHistory
	result := r.db.WithContext(ctx).
		Where("changed_at >= ? AND new_price < old_price", since).
		Order("changed_at DESC").
		Find(&drops)
	timer.ObserveDuration()

	if result.Error != nil {
		return nil, result.Error
	}
	return drops, nil
}
