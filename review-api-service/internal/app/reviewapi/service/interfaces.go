package service

import (
	"context"

	"productreview/review-api-service/internal/app/reviewapi/entity"
)

type ProductServiceInterface interface {
	ListProducts(ctx context.Context, q entity.ProductQuery) (*entity.Page[entity.Product], error)
	GetProduct(ctx context.Context, id int64) (*entity.ProductDetail, error)
	GetCategories(ctx context.Context) ([]string, error)
	CompareProducts(ctx context.Context, ids []int64) ([]entity.Product, error)

	GetReviews(ctx context.Context, productID int64, page, size int, rating *int) (*entity.Page[entity.Review], error)
	AddReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error)
	MarkReviewHelpful(ctx context.Context, reviewID int64) (*entity.Review, error)
}

type SummaryServiceInterface interface {
	ReviewSummary(ctx context.Context, productID int64) (string, error)
	Chat(ctx context.Context, question string, productID *int64) (string, error)
	CompareWithAnalysis(ctx context.Context, ids []int64) (*entity.CompareResponse, error)
}

type PriceAlertServiceInterface interface {
	ChangePrice(ctx context.Context, productID int64, newPrice float64) (*entity.Product, error)
	RecentDrops(ctx context.Context) ([]entity.PriceDropResponse, error)
	PublishRecentDrops(ctx context.Context) error
}
