package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"productreview/mobile-client/internal/app/mobile/entity"
	"productreview/mobile-client/internal/app/mobile/infrastructure"
	"productreview/pkg/logger"
)

// ProductDetailService - view-model экрана товара: карточка товара,
// пагинированные отзывы с фильтром по оценке, отправка отзыва.
type ProductDetailService struct {
	client    infrastructure.BackendClient
	validator *validator.Validate

	productID int64
	product   *entity.Product

	ratingFilter *int
	reviews      *PageFetcher[entity.Review]
}

func NewProductDetailService(client infrastructure.BackendClient, productID int64, pageSize int) *ProductDetailService {
	s := &ProductDetailService{
		client:    client,
		validator: validator.New(),
		productID: productID,
	}
	s.reviews = NewPageFetcher(func(ctx context.Context, page, size int) (*entity.Page[entity.Review], error) {
		return client.FetchReviews(ctx, s.productID, page, size, s.ratingFilter)
	}, pageSize)
	return s
}

func (s *ProductDetailService) Product() *entity.Product {
	return s.product
}

func (s *ProductDetailService) Reviews() *PageFetcher[entity.Review] {
	return s.reviews
}

func (s *ProductDetailService) RatingFilter() *int {
	return s.ratingFilter
}

// Load загружает карточку товара и первую страницу отзывов
func (s *ProductDetailService) Load(ctx context.Context) error {
	product, err := s.client.FetchProduct(ctx, s.productID)
	if err != nil {
		return fmt.Errorf("failed to load product %d: %w", s.productID, err)
	}
	s.product = product
	s.reviews.Reset(ctx)
	return nil
}

// LoadMoreReviews догружает следующую страницу отзывов
func (s *ProductDetailService) LoadMoreReviews(ctx context.Context) {
	s.reviews.LoadMore(ctx)
}

// FilterByRating ограничивает отзывы одной оценкой; nil снимает фильтр.
// Смена фильтра всегда идет через Reset фетчера.
func (s *ProductDetailService) FilterByRating(ctx context.Context, rating *int) {
	s.ratingFilter = rating
	s.reviews.Reset(ctx)
}

// SubmitReview валидирует форму, отправляет отзыв, показывает его в
// голове списка и перечитывает карточку товара за свежими агрегатами.
func (s *ProductDetailService) SubmitReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid review: %w", err)
	}

	review, err := s.client.CreateReview(ctx, s.productID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	s.reviews.Prepend(*review)

	// averageRating и reviewCount пересчитывает сервер, локально их
	// не мутируем - только полная замена снимка
	product, err := s.client.FetchProduct(ctx, s.productID)
	if err != nil {
		logger.Warn().Err(err).Int64("product_id", s.productID).Msg("failed to refresh product after review")
		return review, nil
	}
	s.product = product

	return review, nil
}

// MarkHelpful отмечает отзыв полезным и заменяет его в списке серверной
// версией со свежим счетчиком
func (s *ProductDetailService) MarkHelpful(ctx context.Context, reviewID int64) error {
	updated, err := s.client.MarkReviewHelpful(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("failed to mark review helpful: %w", err)
	}
	s.reviews.Replace(func(r entity.Review) bool { return r.ID == reviewID }, *updated)
	return nil
}
