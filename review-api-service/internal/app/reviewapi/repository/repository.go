package repository

import (
	"context"
	"errors"
	"time"

	"productreview/review-api-service/internal/app/reviewapi/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
)

// ProductRepository - доступ к товарам в PostgreSQL
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error)
	List(ctx context.Context, q entity.ProductQuery) ([]entity.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	UpdateStats(ctx context.Context, id int64, averageRating float64, reviewCount int) error
	UpdatePrice(ctx context.Context, id int64, price float64) error
	Count(ctx context.Context) (int64, error)
}

// PriceHistoryRepository - журнал смен цены в PostgreSQL
type PriceHistoryRepository interface {
	Create(ctx context.Context, h *entity.PriceHistory) error
	RecentDrops(ctx context.Context, since time.Time) ([]entity.PriceHistory, error)
}

// ReviewRepository - доступ к отзывам в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	PageByProduct(ctx context.Context, productID int64, page, size int, rating *int) ([]entity.Review, int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]entity.Review, error)
	RatingCounts(ctx context.Context, productID int64) (map[int]int64, error)
	IncrementHelpful(ctx context.Context, id int64) (*entity.Review, error)
	Count(ctx context.Context) (int64, error)
}
