package mocks

import (
	"context"

	"productreview/mobile-client/internal/app/mobile/entity"

	"github.com/stretchr/testify/mock"
)

// MockBackendClient мок для BackendClient
type MockBackendClient struct {
	mock.Mock
}

func (m *MockBackendClient) FetchProducts(ctx context.Context, filter entity.ProductFilter, page, size int) (*entity.Page[entity.Product], error) {
	args := m.Called(ctx, filter, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Page[entity.Product]), args.Error(1)
}

func (m *MockBackendClient) FetchProduct(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockBackendClient) FetchCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBackendClient) FetchReviews(ctx context.Context, productID int64, page, size int, rating *int) (*entity.Page[entity.Review], error) {
	args := m.Called(ctx, productID, page, size, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Page[entity.Review]), args.Error(1)
}

func (m *MockBackendClient) CreateReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockBackendClient) MarkReviewHelpful(ctx context.Context, reviewID int64) (*entity.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockBackendClient) CompareProducts(ctx context.Context, ids []int64) ([]entity.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockBackendClient) CompareWithAI(ctx context.Context, ids []int64) (*entity.CompareResponse, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompareResponse), args.Error(1)
}

func (m *MockBackendClient) FetchPriceDrops(ctx context.Context) ([]entity.PriceDrop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PriceDrop), args.Error(1)
}
