package service

import (
	"context"
	"fmt"
	"math/rand"

	"productreview/pkg/logger"
	"productreview/review-api-service/internal/app/reviewapi/entity"
	"productreview/review-api-service/internal/app/reviewapi/repository"
)

// Seeder наполняет пустую базу демо-данными для локальной разработки
type Seeder struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	alerts   PriceAlertServiceInterface
}

func NewSeeder(products repository.ProductRepository, reviews repository.ReviewRepository, alerts PriceAlertServiceInterface) *Seeder {
	return &Seeder{products: products, reviews: reviews, alerts: alerts}
}

var seedProducts = []entity.Product{
	{Name: "iPhone 15 Pro", Description: "The latest iPhone with A17 Pro chip and Titanium design.", Category: "Electronics", Price: 999.99},
	{Name: "Samsung Galaxy S24 Ultra", Description: "AI-powered smartphone with S-Pen.", Category: "Electronics", Price: 1199.99},
	{Name: "Google Pixel 8 Pro", Description: "The best of Google AI and camera.", Category: "Electronics", Price: 899.99},
	{Name: "MacBook Air M2", Description: "Strikingly thin design and incredible speed.", Category: "Laptops", Price: 1099.00},
	{Name: "Dell XPS 13", Description: "Compact and powerful ultrabook.", Category: "Laptops", Price: 1299.00},
	{Name: "iPad Pro 12.9", Description: "The ultimate iPad experience with M2 chip.", Category: "Tablets", Price: 1099.00},
	{Name: "Apple Watch Series 9", Description: "Smarter, brighter, and more powerful.", Category: "Wearables", Price: 399.00},
	{Name: "Sony WH-1000XM5", Description: "Industry-leading noise canceling headphones.", Category: "Audio", Price: 349.99},
	{Name: "AirPods Pro 2", Description: "Adaptive Audio and Active Noise Cancellation.", Category: "Audio", Price: 249.00},
	{Name: "Logitech MX Master 3S", Description: "Performance wireless mouse.", Category: "Accessories", Price: 99.99},
}

var seedReviewers = []string{"Michael", "Sarah", "David", "Emma", "James", "Olivia", "Robert", "Sophia", "William", "Isabella"}

var seedComments = []string{
	"Great product, highly recommended!",
	"Not bad, but a bit expensive.",
	"Fast delivery and good quality.",
	"I love the design.",
	"Performance is top notch.",
	"Battery drains a bit fast.",
	"Screen is beautiful.",
	"Worth every penny.",
	"Just okay.",
	"Exceeded my expectations.",
}

// Run наполняет базу, если товаров еще нет. Идемпотентен.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logger.Info().Int64("products", count).Msg("database already seeded")
		return nil
	}

	rng := rand.New(rand.NewSource(42))

	for i := range seedProducts {
		p := seedProducts[i]
		if err := s.products.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}

		reviewCount := 3 + rng.Intn(5)
		var sum int
		for j := 0; j < reviewCount; j++ {
			rating := 3 + rng.Intn(3)
			sum += rating
			review := &entity.Review{
				ProductID:    p.ID,
				ReviewerName: seedReviewers[rng.Intn(len(seedReviewers))],
				Rating:       rating,
				Comment:      seedComments[rng.Intn(len(seedComments))],
			}
			if err := s.reviews.Create(ctx, review); err != nil {
				return fmt.Errorf("failed to seed review: %w", err)
			}
		}

		average := float64(sum) / float64(reviewCount)
		if err := s.products.UpdateStats(ctx, p.ID, average, reviewCount); err != nil {
			return fmt.Errorf("failed to seed product stats: %w", err)
		}

		// Пара падений цены, чтобы фид дропов не был пустым
		if i < 2 {
			if _, err := s.alerts.ChangePrice(ctx, p.ID, p.Price*0.85); err != nil {
				logger.Warn().Err(err).Str("product", p.Name).Msg("failed to seed price drop")
			}
		}
	}

	logger.Info().Int("products", len(seedProducts)).Msg("database seeded with demo data")
	return nil
}
