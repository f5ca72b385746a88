package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"productreview/pkg/logger"
	"productreview/pkg/metrics"
	"productreview/review-api-service/internal/app/reviewapi/entity"
	"productreview/review-api-service/internal/app/reviewapi/repository"
	"productreview/review-api-service/internal/app/reviewapi/util"
)

// Окно фида падений цены
const dropsWindow = 24 * time.Hour

type priceAlertService struct {
	products  repository.ProductRepository
	history   repository.PriceHistoryRepository
	publisher util.MessagePublisher
}

// NewPriceAlertService создает сервис отслеживания цен
func NewPriceAlertService(
	products repository.ProductRepository,
	history repository.PriceHistoryRepository,
	publisher util.MessagePublisher,
) PriceAlertServiceInterface {
	return &priceAlertService{
		products:  products,
		history:   history,
		publisher: publisher,
	}
}

// ChangePrice меняет цену товара, пишет запись в историю и при
// падении публикует событие PRICE_DROP
func (s *priceAlertService) ChangePrice(ctx context.Context, productID int64, newPrice float64) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	oldPrice := product.Price
	if oldPrice == newPrice {
		return product, nil
	}

	if err := s.products.UpdatePrice(ctx, productID, newPrice); err != nil {
		return nil, fmt.Errorf("failed to update price: %w", err)
	}

	h := &entity.PriceHistory{
		ProductID: productID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		ChangedAt: time.Now(),
	}
	if err := s.history.Create(ctx, h); err != nil {
		// Цена уже изменена, потеря записи истории не откатывает ее
		logger.Error().Err(err).Int64("product_id", productID).Msg("failed to record price change")
	}

	if newPrice < oldPrice {
		metrics.PriceDropsDetected.Inc()
		s.publishPriceDrop(ctx, productID, oldPrice, newPrice)
	}

	product.Price = newPrice
	return product, nil
}

// RecentDrops возвращает падения цены за последние 24 часа,
// свежие первыми
func (s *priceAlertService) RecentDrops(ctx context.Context) ([]entity.PriceDropResponse, error) {
	drops, err := s.history.RecentDrops(ctx, time.Now().Add(-dropsWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load recent drops: %w", err)
	}

	out := make([]entity.PriceDropResponse, 0, len(drops))
	for _, d := range drops {
		product, err := s.products.GetByID(ctx, d.ProductID)
		if err != nil {
			// Товар мог быть удален после смены цены
			logger.Warn().Err(err).Int64("product_id", d.ProductID).Msg("skipping drop for missing product")
			continue
		}

		changePct := 0.0
		if d.OldPrice > 0 {
			changePct = math.Round((d.NewPrice-d.OldPrice)/d.OldPrice*10000) / 100
		}

		out = append(out, entity.PriceDropResponse{
			ProductID:     d.ProductID,
			ProductName:   product.Name,
			OldPrice:      d.OldPrice,
			NewPrice:      d.NewPrice,
			ChangePercent: changePct,
			ChangedAt:     d.ChangedAt,
		})
	}
	return out, nil
}

// PublishRecentDrops публикует текущий фид падений в Kafka.
// Вызывается планировщиком.
func (s *priceAlertService) PublishRecentDrops(ctx context.Context) error {
	drops, err := s.RecentDrops(ctx)
	if err != nil {
		return err
	}

	for _, d := range drops {
		event := entity.PriceDropEvent{
			EventType: "PRICE_DROP",
			ProductID: d.ProductID,
			OldPrice:  d.OldPrice,
			NewPrice:  d.NewPrice,
			Timestamp: d.ChangedAt,
		}
		data, err := json.Marshal(event)
		if err != nil {
			logger.Error().Err(err).Msg("failed to marshal price drop event")
			continue
		}
		if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(d.ProductID, 10), data); err != nil {
			logger.Error().Err(err).Int64("product_id", d.ProductID).Msg("failed to publish price drop event")
		}
	}

	logger.Info().Int("drops", len(drops)).Msg("published recent price drops")
	return nil
}

func (s *priceAlertService) publishPriceDrop(ctx context.Context, productID int64, oldPrice, newPrice float64) {
	event := entity.PriceDropEvent{
		EventType: "PRICE_DROP",
		ProductID: productID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal price drop event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(productID, 10), data); err != nil {
		logger.Error().Err(err).Int64("product_id", productID).Msg("failed to publish price drop event")
	}
}
