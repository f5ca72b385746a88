package service

import (
	"context"
	"encoding/json"
	"errors"
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

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrReviewNotFound  = repository.ErrReviewNotFound
	// ErrTooFewProducts возвращается при сравнении менее двух товаров
	ErrTooFewProducts = errors.New("at least 2 product ids are required for comparison")
)

// Сравнение принимает не больше четырех товаров, лишние отбрасываются
const maxCompareProducts = 4

type productService struct {
	products  repository.ProductRepository
	reviews   repository.ReviewRepository
	cache     util.SummaryCache
	publisher util.MessagePublisher
	summaries SummaryServiceInterface
}

// NewProductService создает сервис товаров и отзывов
func NewProductService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	cache util.SummaryCache,
	publisher util.MessagePublisher,
	summaries SummaryServiceInterface,
) ProductServiceInterface {
	return &productService{
		products:  products,
		reviews:   reviews,
		cache:     cache,
		publisher: publisher,
		summaries: summaries,
	}
}

// ListProducts возвращает страницу товаров под фильтром
func (s *productService) ListProducts(ctx context.Context, q entity.ProductQuery) (*entity.Page[entity.Product], error) {
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Page < 0 {
		q.Page = 0
	}

	products, total, err := s.products.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return entity.NewPage(products, total, q.Page, q.Size), nil
}

// GetProduct возвращает карточку товара с распределением оценок и
// AI-резюме. Отказ при сборе резюме карточку не ломает.
func (s *productService) GetProduct(ctx context.Context, id int64) (*entity.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.reviews.RatingCounts(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("failed to load rating breakdown")
		breakdown = map[int]int64{}
	}

	detail := &entity.ProductDetail{
		Product:         *product,
		RatingBreakdown: breakdown,
	}

	if product.ReviewCount > 0 {
		summary, err := s.summaries.ReviewSummary(ctx, id)
		if err != nil {
			logger.Warn().Err(err).Int64("product_id", id).Msg("failed to build review summary")
		} else if summary != "" {
			detail.AISummary = &summary
		}
	}

	return detail, nil
}

// GetCategories возвращает список категорий
func (s *productService) GetCategories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// CompareProducts возвращает полные записи для сравнения.
// Требует минимум два id, принимает максимум четыре; отсутствующие
// товары молча пропускаются.
func (s *productService) CompareProducts(ctx context.Context, ids []int64) ([]entity.Product, error) {
	if len(ids) < 2 {
		metrics.ProductComparisons.WithLabelValues("failed").Inc()
		return nil, ErrTooFewProducts
	}
	if len(ids) > maxCompareProducts {
		ids = ids[:maxCompareProducts]
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		metrics.ProductComparisons.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to fetch products for comparison: %w", err)
	}

	metrics.ProductComparisons.WithLabelValues("success").Inc()
	return products, nil
}

// GetReviews возвращает страницу отзывов товара, свежие первыми
func (s *productService) GetReviews(ctx context.Context, productID int64, page, size int, rating *int) (*entity.Page[entity.Review], error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	reviews, total, err := s.reviews.PageByProduct(ctx, productID, page, size, rating)
	if err != nil {
		return nil, fmt.Errorf("failed to page reviews: %w", err)
	}

	return entity.NewPage(reviews, total, page, size), nil
}

// AddReview создает отзыв, пересчитывает агрегаты товара,
// инвалидирует кэш резюме и публикует событие REVIEW_CREATED
func (s *productService) AddReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID:    productID,
		ReviewerName: req.ReviewerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	if err := s.recalculateStats(ctx, productID); err != nil {
		// Отзыв уже создан, рассинхрон агрегатов лечится следующим пересчетом
		logger.Error().Err(err).Int64("product_id", productID).Msg("failed to recalculate product stats")
	}

	if err := s.cache.InvalidateSummary(ctx, productID); err != nil {
		logger.Warn().Err(err).Int64("product_id", productID).Msg("failed to invalidate summary cache")
	}

	s.publishReviewCreated(ctx, review, product.ID)

	return review, nil
}

// MarkReviewHelpful увеличивает счетчик "полезно"
func (s *productService) MarkReviewHelpful(ctx context.Context, reviewID int64) (*entity.Review, error) {
	review, err := s.reviews.IncrementHelpful(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	metrics.ReviewsHelpfulVotes.Inc()
	return review, nil
}

// recalculateStats пересчитывает средний рейтинг (до одного знака)
// и количество отзывов из распределения оценок
func (s *productService) recalculateStats(ctx context.Context, productID int64) error {
	counts, err := s.reviews.RatingCounts(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load rating counts: %w", err)
	}

	var total, sum int64
	for star, count := range counts {
		total += count
		sum += int64(star) * count
	}

	average := 0.0
	if total > 0 {
		average = math.Round(float64(sum)/float64(total)*10) / 10
	}

	return s.products.UpdateStats(ctx, productID, average, int(total))
}

func (s *productService) publishReviewCreated(ctx context.Context, review *entity.Review, productID int64) {
	event := entity.ReviewEvent{
		EventType: "REVIEW_CREATED",
		ReviewID:  review.ID,
		ProductID: productID,
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal review event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(productID, 10), data); err != nil {
		logger.Error().Err(err).Int64("review_id", review.ID).Msg("failed to publish review event")
	}
}
