package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"productreview/mobile-client/internal/app/mobile/entity"
	"productreview/mobile-client/internal/app/mobile/infrastructure"
)

// APIClient - HTTP клиент Review API.
// Все отказы приводятся к infrastructure.APIError, автоматических
// повторов нет: каждый отказ терминален для попытки, повтор - решение
// вызывающего.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient создает новый клиент Review API
func NewAPIClient(baseURL string, timeoutSec int) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// FetchProducts получает страницу товаров с учетом фильтра и сортировки
func (c *APIClient) FetchProducts(ctx context.Context, filter entity.ProductFilter, page, size int) (*entity.Page[entity.Product], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if filter.Sort != "" {
		q.Set("sort", filter.Sort)
	}
	if filter.Category != "" && !strings.EqualFold(filter.Category, "All") {
		q.Set("category", filter.Category)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.MinRating != nil {
		q.Set("minRating", strconv.FormatFloat(*filter.MinRating, 'f', -1, 64))
	}

	return getJSON[entity.Page[entity.Product]](ctx, c, "/api/products?"+q.Encode())
}

// FetchProduct получает детальный снимок товара (с breakdown и AI-резюме)
func (c *APIClient) FetchProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return getJSON[entity.Product](ctx, c, fmt.Sprintf("/api/products/%d", id))
}

// FetchCategories получает список категорий для фильтра
func (c *APIClient) FetchCategories(ctx context.Context) ([]string, error) {
	categories, err := getJSON[[]string](ctx, c, "/api/products/categories")
	if err != nil {
		return nil, err
	}
	return *categories, nil
}

// FetchReviews получает страницу отзывов товара, опционально по оценке
func (c *APIClient) FetchReviews(ctx context.Context, productID int64, page, size int, rating *int) (*entity.Page[entity.Review], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sort", "createdAt,desc")
	if rating != nil {
		q.Set("rating", strconv.Itoa(*rating))
	}

	return getJSON[entity.Page[entity.Review]](ctx, c, fmt.Sprintf("/api/products/%d/reviews?%s", productID, q.Encode()))
}

// CreateReview отправляет новый отзыв, возвращает созданную запись
func (c *APIClient) CreateReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error) {
	return postJSON[entity.Review](ctx, c, fmt.Sprintf("/api/products/%d/reviews", productID), req)
}

// MarkReviewHelpful увеличивает счетчик "полезно" отзыва
func (c *APIClient) MarkReviewHelpful(ctx context.Context, reviewID int64) (*entity.Review, error) {
	return doJSON[entity.Review](ctx, c, http.MethodPut, fmt.Sprintf("/api/products/reviews/%d/helpful", reviewID), nil)
}

// CompareProducts получает полные записи выбранных товаров
func (c *APIClient) CompareProducts(ctx context.Context, ids []int64) ([]entity.Product, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	products, err := getJSON[[]entity.Product](ctx, c, "/api/products/compare?ids="+strings.Join(parts, ","))
	if err != nil {
		return nil, err
	}
	return *products, nil
}

// CompareWithAI получает текстовый анализ сравнения тех же товаров
func (c *APIClient) CompareWithAI(ctx context.Context, ids []int64) (*entity.CompareResponse, error) {
	return postJSON[entity.CompareResponse](ctx, c, "/api/ai/compare", entity.CompareRequest{ProductIDs: ids})
}

// FetchPriceDrops получает фид падений цены за последние 24 часа
func (c *APIClient) FetchPriceDrops(ctx context.Context) ([]entity.PriceDrop, error) {
	drops, err := getJSON[[]entity.PriceDrop](ctx, c, "/api/price-alerts/drops")
	if err != nil {
		return nil, err
	}
	return *drops, nil
}

func getJSON[T any](ctx context.Context, c *APIClient, path string) (*T, error) {
	return doJSON[T](ctx, c, http.MethodGet, path, nil)
}

func postJSON[T any](ctx context.Context, c *APIClient, path string, body any) (*T, error) {
	return doJSON[T](ctx, c, http.MethodPost, path, body)
}

// doJSON выполняет один запрос и декодирует JSON ответ.
// Каждый путь отказа отображается в свой ErrorKind: ошибка построения
// запроса -> invalid_request, сетевой сбой -> transport,
// не-2xx -> unexpected_status, битое тело -> decoding.
func doJSON[T any](ctx context.Context, c *APIClient, method, path string, body any) (*T, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &infrastructure.APIError{
				Kind:    infrastructure.ErrInvalidRequest,
				Message: "Invalid request",
				Err:     fmt.Errorf("failed to marshal request body: %w", err),
			}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &infrastructure.APIError{
			Kind:    infrastructure.ErrInvalidRequest,
			Message: "Invalid request",
			Err:     fmt.Errorf("failed to create request: %w", err),
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &infrastructure.APIError{
			Kind:    infrastructure.ErrTransport,
			Message: "Network error. Check your connection and try again.",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &infrastructure.APIError{
			Kind:    infrastructure.ErrUnexpectedStatus,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Server error (%d). Please try again.", resp.StatusCode),
			Err:     fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &infrastructure.APIError{
			Kind:    infrastructure.ErrDecoding,
			Message: "Unexpected server response.",
			Err:     fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return &result, nil
}
