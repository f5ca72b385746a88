package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"productreview/pkg/metrics"
	"productreview/review-api-service/internal/app/reviewapi/entity"
)

const serviceName = "review-api"

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Белый список полей сортировки: значение из запроса никогда не
// попадает в ORDER BY напрямую.
var sortableColumns = map[string]string{
	"name":          "name",
	"price":         "price",
	"averageRating": "average_rating",
	"reviewCount":   "review_count",
	"createdAt":     "created_at",
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "products")
	result := r.db.WithContext(ctx).Create(product)
	timer.ObserveDuration()
	return result.Error
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)
	timer.ObserveDuration()

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetByIDs получает товары по списку ID. Отсутствующие ID молча
// пропускаются, порядок результата следует порядку запрошенных id.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	var products []entity.Product
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products)
	timer.ObserveDuration()

	if result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[int64]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]entity.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// List получает страницу товаров с фильтрами и сортировкой,
// возвращает выборку и общее количество под фильтром
func (r *productRepository) List(ctx context.Context, q entity.ProductQuery) ([]entity.Product, int64, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}
	if q.MinRating != nil {
		query = query.Where("average_rating >= ?", *q.MinRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(orderClause(q.Sort))

	var products []entity.Product
	result := query.Offset(q.Page * q.Size).Limit(q.Size).Find(&products)
	timer.ObserveDuration()
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", result.Error)
	}

	return products, total, nil
}

// Categories возвращает отсортированный список различных категорий
func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	var categories []string
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories)
	timer.ObserveDuration()

	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// UpdateStats записывает пересчитанные агрегаты по отзывам
func (r *productRepository) UpdateStats(ctx context.Context, id int64, averageRating float64, reviewCount int) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"review_count":   reviewCount,
		})
	timer.ObserveDuration()

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdatePrice меняет цену товара
func (r *productRepository) UpdatePrice(ctx context.Context, id int64, price float64) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("price", price)
	timer.ObserveDuration()

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Count возвращает общее количество товаров
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count)
	return count, result.Error
}

func orderClause(sort string) string {
	column := "created_at"
	direction := "DESC"

	if sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		if mapped, ok := sortableColumns[parts[0]]; ok {
			column = mapped
			direction = "ASC"
			if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
				direction = "DESC"
			}
		}
	}

	return column + " " + direction
}
