package infrastructure

import (
	"context"

	"productreview/mobile-client/internal/app/mobile/entity"
)

// BackendClient - контракт Review API. Экземпляр создается явно и
// передается каждому view-model сервису, глобального singleton нет.
type BackendClient interface {
	FetchProducts(ctx context.Context, filter entity.ProductFilter, page, size int) (*entity.Page[entity.Product], error)
	FetchProduct(ctx context.Context, id int64) (*entity.Product, error)
	FetchCategories(ctx context.Context) ([]string, error)
	FetchReviews(ctx context.Context, productID int64, page, size int, rating *int) (*entity.Page[entity.Review], error)
	CreateReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error)
	MarkReviewHelpful(ctx context.Context, reviewID int64) (*entity.Review, error)
	CompareProducts(ctx context.Context, ids []int64) ([]entity.Product, error)
	CompareWithAI(ctx context.Context, ids []int64) (*entity.CompareResponse, error)
	FetchPriceDrops(ctx context.Context) ([]entity.PriceDrop, error)
}
