package service

import (
	"context"
	"fmt"
	"strings"

	"productreview/pkg/logger"
	"productreview/pkg/metrics"
	"productreview/review-api-service/internal/app/reviewapi/entity"
	"productreview/review-api-service/internal/app/reviewapi/repository"
	"productreview/review-api-service/internal/app/reviewapi/util"
)

// summaryService - детерминированная "AI" подсистема: резюме отзывов,
// чат по ключевым словам и анализ сравнения. Настоящей модели нет,
// все ответы строятся из статистики отзывов и полей товаров; результаты
// резюме кэшируются в Redis до следующего отзыва.
type summaryService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	cache    util.SummaryCache
}

// NewSummaryService создает AI-подсистему резюме и сравнений
func NewSummaryService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	cache util.SummaryCache,
) SummaryServiceInterface {
	return &summaryService{
		products: products,
		reviews:  reviews,
		cache:    cache,
	}
}

// ReviewSummary возвращает резюме отзывов товара, из кэша или свежее.
// Для товара без отзывов возвращает пустую строку.
func (s *summaryService) ReviewSummary(ctx context.Context, productID int64) (string, error) {
	if cached, err := s.cache.GetSummary(ctx, productID); err != nil {
		logger.Warn().Err(err).Int64("product_id", productID).Msg("summary cache read failed")
	} else if cached != "" {
		return cached, nil
	}

	metrics.AIQueries.WithLabelValues("summary").Inc()

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("failed to load reviews for summary: %w", err)
	}
	if len(reviews) == 0 {
		return "", nil
	}

	summary := buildSummary(reviews)

	if err := s.cache.SetSummary(ctx, productID, summary); err != nil {
		logger.Warn().Err(err).Int64("product_id", productID).Msg("summary cache write failed")
	}

	return summary, nil
}

// Chat отвечает на вопрос о товаре по ключевым словам.
// При заданном productID ответ подкрашивается данными товара.
func (s *summaryService) Chat(ctx context.Context, question string, productID *int64) (string, error) {
	metrics.AIQueries.WithLabelValues("chat").Inc()

	var product *entity.Product
	if productID != nil {
		p, err := s.products.GetByID(ctx, *productID)
		if err != nil {
			return "", err
		}
		product = p
	}

	return chatAnswer(question, product), nil
}

// CompareWithAnalysis возвращает записи выбранных товаров вместе с
// текстовым анализом сравнения. Требует минимум два id, принимает
// максимум четыре; отсутствующие товары молча пропускаются.
func (s *summaryService) CompareWithAnalysis(ctx context.Context, ids []int64) (*entity.CompareResponse, error) {
	if len(ids) < 2 {
		return nil, ErrTooFewProducts
	}
	if len(ids) > maxCompareProducts {
		ids = ids[:maxCompareProducts]
	}

	metrics.AIQueries.WithLabelValues("compare").Inc()

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for analysis: %w", err)
	}

	return &entity.CompareResponse{
		Products: products,
		Analysis: comparisonAnalysis(products),
	}, nil
}

// buildSummary строит резюме из статистики отзывов в стиле, который
// вернула бы языковая модель
func buildSummary(reviews []entity.Review) string {
	var sum, positive, negative int
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 4 {
			positive++
		}
		if r.Rating <= 2 {
			negative++
		}
	}
	avg := float64(sum) / float64(len(reviews))
	positivePct := float64(positive) * 100 / float64(len(reviews))

	var sentiment string
	switch {
	case avg >= 4.0:
		sentiment = "overwhelmingly positive"
	case avg >= 3.5:
		sentiment = "generally positive"
	case avg >= 2.5:
		sentiment = "mixed"
	default:
		sentiment = "generally negative"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on %d customer reviews, the overall sentiment is %s with an average rating of %.1f stars. ",
		len(reviews), sentiment, avg)

	praise := commonThemes(reviews, true)
	complaints := commonThemes(reviews, false)

	switch {
	case positivePct >= 70:
		fmt.Fprintf(&sb, "%.0f%% of customers gave 4-5 star ratings. ", positivePct)
		sb.WriteString(praise)
	case positivePct >= 40:
		sb.WriteString("Opinions are mixed. ")
		sb.WriteString(praise)
		if complaints != "" {
			sb.WriteString("However, ")
			sb.WriteString(strings.ToLower(complaints[:1]) + complaints[1:])
		}
	default:
		sb.WriteString(complaints)
	}

	sb.WriteString("Consider these factors when making your purchase decision.")
	return sb.String()
}

// commonThemes извлекает общие темы из отзывов заданной полярности.
// Подстрочное сравнение по фиксированным ключам, не семантика.
func commonThemes(reviews []entity.Review, positive bool) string {
	var comments []string
	for _, r := range reviews {
		if positive && r.Rating >= 4 || !positive && r.Rating <= 2 {
			comments = append(comments, strings.ToLower(r.Comment))
		}
	}
	if len(comments) == 0 {
		return ""
	}

	anyMention := func(keys ...string) bool {
		for _, c := range comments {
			for _, k := range keys {
				if strings.Contains(c, k) {
					return true
				}
			}
		}
		return false
	}

	if positive {
		quality := anyMention("quality", "great", "excellent")
		performance := anyMention("performance", "fast", "speed")
		design := anyMention("design", "look", "beautiful")

		switch {
		case quality && performance:
			return "Customers praise the excellent quality and strong performance. "
		case quality && design:
			return "Users appreciate the high quality and attractive design. "
		case quality:
			return "The product quality receives consistent praise. "
		case performance:
			return "Performance is highlighted as a key strength. "
		case design:
			return "The design and aesthetics are well-received. "
		default:
			return "Most customers report positive experiences. "
		}
	}

	price := anyMention("expensive", "price", "cost")
	battery := anyMention("battery")
	bugs := anyMention("bug", "issue", "problem")

	switch {
	case price && battery:
		return "Some customers feel the price is high and mention battery concerns. "
	case price:
		return "The main complaint centers around the price point. "
	case battery:
		return "Battery life is a common concern among users. "
	case bugs:
		return "Several users report technical issues or bugs. "
	default:
		return "Some customers have expressed concerns. "
	}
}

// chatAnswer отвечает на вопрос по ключевым словам
func chatAnswer(question string, product *entity.Product) string {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "price") || strings.Contains(q, "cost"):
		if product != nil {
			return fmt.Sprintf("%s is priced at $%.2f, which is competitive for the %s category. Considering its quality and features, it offers good value.",
				product.Name, product.Price, product.Category)
		}
		return "This product has a competitive price compared to similar items in its category. Considering the quality and features, it offers good value."
	case strings.Contains(q, "recommend"):
		if product != nil && product.ReviewCount > 0 {
			return fmt.Sprintf("Based on %d customer reviews with an average rating of %.1f stars, this product shows a high satisfaction rate. It can be recommended especially for everyday use.",
				product.ReviewCount, product.AverageRating)
		}
		return "According to customer reviews, this product has a high satisfaction rate. It can be recommended especially for everyday use."
	case strings.Contains(q, "feature"):
		return "The key features of this product include quality materials, modern design, and ease of use."
	case strings.Contains(q, "warranty"):
		return "For detailed information about the warranty and return policy, I recommend contacting the seller."
	default:
		return "Customer reviews for this product are generally positive. How else can I help you?"
	}
}

// comparisonAnalysis строит текстовый анализ сравнения из полей
// товаров: самый дешевый, самый высокий рейтинг, больше всего отзывов
// и рекомендация
func comparisonAnalysis(products []entity.Product) string {
	if len(products) < 2 {
		return "Each of these products has its own advantages. Review the feature lists for a detailed decision."
	}

	cheapest := products[0]
	topRated := products[0]
	mostReviewed := products[0]
	for _, p := range products[1:] {
		if p.Price < cheapest.Price {
			cheapest = p
		}
		if p.AverageRating > topRated.AverageRating {
			topRated = p
		}
		if p.ReviewCount > mostReviewed.ReviewCount {
			mostReviewed = p
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparing these %d products:\n\n", len(products))
	fmt.Fprintf(&sb, "💰 On price: \"%s\" is the most affordable option ($%.2f).\n", cheapest.Name, cheapest.Price)
	if topRated.AverageRating > 0 {
		fmt.Fprintf(&sb, "⭐ On quality: \"%s\" has the highest rating (%.1f/5).\n", topRated.Name, topRated.AverageRating)
	}
	if mostReviewed.ReviewCount > 0 {
		fmt.Fprintf(&sb, "📊 On review volume: \"%s\" is the most reviewed (%d reviews).\n", mostReviewed.Name, mostReviewed.ReviewCount)
	}

	sb.WriteString("\n📋 Recommendation: ")
	highRating := topRated.AverageRating >= 4.5
	manyReviews := mostReviewed.ReviewCount >= 10

	switch {
	case highRating && manyReviews:
		sb.WriteString("Products with both high ratings and many reviews are reliable choices. ")
		if topRated.ID == cheapest.ID {
			sb.WriteString("The top-rated option is also the most affordable here.")
		} else {
			sb.WriteString("If quality is your priority, go with the highest-rated product.")
		}
	case highRating:
		sb.WriteString("If quality is your priority, go with the highest-rated product.")
	case manyReviews:
		sb.WriteString("Products with many reviews tend to be more dependable choices.")
	default:
		sb.WriteString("All options are worth considering. Decide based on how you plan to use the product.")
	}

	return sb.String()
}
