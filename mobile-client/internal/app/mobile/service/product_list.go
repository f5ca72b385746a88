package service

import (
	"context"
	"fmt"
	"sync"

	"productreview/mobile-client/internal/app/mobile/entity"
	"productreview/mobile-client/internal/app/mobile/infrastructure"
	"productreview/pkg/logger"
)

// ProductListService - view-model экрана списка товаров: пагинированный
// список с фильтрами, категории и режим сравнения.
type ProductListService struct {
	client  infrastructure.BackendClient
	fetcher *PageFetcher[entity.Product]

	filter     entity.ProductFilter
	categories []string

	Selection *SelectionSet
}

func NewProductListService(client infrastructure.BackendClient, pageSize int) *ProductListService {
	s := &ProductListService{
		client:    client,
		Selection: NewSelectionSet(),
	}
	s.fetcher = NewPageFetcher(func(ctx context.Context, page, size int) (*entity.Page[entity.Product], error) {
		return client.FetchProducts(ctx, s.filter, page, size)
	}, pageSize)
	return s
}

// Fetcher открывает состояние пагинации слою отрисовки
func (s *ProductListService) Fetcher() *PageFetcher[entity.Product] {
	return s.fetcher
}

func (s *ProductListService) Filter() entity.ProductFilter {
	return s.filter
}

func (s *ProductListService) Categories() []string {
	return s.categories
}

// Load загружает первую страницу с текущим фильтром
func (s *ProductListService) Load(ctx context.Context) {
	s.fetcher.Reset(ctx)
}

// LoadMore догружает следующую страницу
func (s *ProductListService) LoadMore(ctx context.Context) {
	s.fetcher.LoadMore(ctx)
}

// LoadCategories обновляет список категорий. Отказ косметический:
// логируется, но экран продолжает работать со старым списком.
func (s *ProductListService) LoadCategories(ctx context.Context) {
	categories, err := s.client.FetchCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load categories")
		return
	}
	s.categories = categories
}

// Любое изменение фильтра проходит через Reset: продолжение пагинации
// со сменившимся фильтром запрещено по построению.

func (s *ProductListService) Search(ctx context.Context, query string) {
	s.filter.Search = query
	s.fetcher.Reset(ctx)
}

func (s *ProductListService) FilterByCategory(ctx context.Context, category string) {
	s.filter.Category = category
	s.fetcher.Reset(ctx)
}

func (s *ProductListService) SetPriceRange(ctx context.Context, min, max *float64) {
	s.filter.MinPrice = min
	s.filter.MaxPrice = max
	s.fetcher.Reset(ctx)
}

func (s *ProductListService) SetMinRating(ctx context.Context, min *float64) {
	s.filter.MinRating = min
	s.fetcher.Reset(ctx)
}

func (s *ProductListService) SetSort(ctx context.Context, sort string) {
	s.filter.Sort = sort
	s.fetcher.Reset(ctx)
}

// ComparisonResult - объединенный результат сравнения: полные записи
// выбранных товаров и текстовый анализ.
type ComparisonResult struct {
	Products []entity.Product
	Analysis string
}

// Compare запускает сравнение выбранных товаров. Требует минимум два
// выбранных id, иначе ErrInsufficientSelection без единого удаленного
// вызова. Два вызова (записи и анализ) идут параллельно и соединяются;
// отказ любого из них - отказ всей операции, частичный результат не
// возвращается. При успехе выбор очищается и режим выключается.
func (s *ProductListService) Compare(ctx context.Context) (*ComparisonResult, error) {
	ids := s.Selection.IDs()
	if len(ids) < 2 {
		return nil, ErrInsufficientSelection
	}

	var (
		wg          sync.WaitGroup
		products    []entity.Product
		analysis    *entity.CompareResponse
		productsErr error
		analysisErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productsErr = s.client.CompareProducts(ctx, ids)
	}()
	go func() {
		defer wg.Done()
		analysis, analysisErr = s.client.CompareWithAI(ctx, ids)
	}()
	wg.Wait()

	if productsErr != nil {
		return nil, fmt.Errorf("failed to fetch products for comparison: %w", productsErr)
	}
	if analysisErr != nil {
		return nil, fmt.Errorf("failed to fetch comparison analysis: %w", analysisErr)
	}

	s.Selection.Clear()
	s.Selection.ExitSelectionMode()

	return &ComparisonResult{Products: products, Analysis: analysis.Analysis}, nil
}
