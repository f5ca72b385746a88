package processor

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"productreview/pkg/logger"
	"productreview/review-api-service/internal/app/reviewapi/entity"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("review-api-test", "error", io.Discard)
	os.Exit(m.Run())
}

// MockPriceAlertService мок для PriceAlertServiceInterface
type MockPriceAlertService struct {
	mock.Mock
}

func (m *MockPriceAlertService) ChangePrice(ctx context.Context, productID int64, newPrice float64) (*entity.Product, error) {
	args := m.Called(ctx, productID, newPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockPriceAlertService) RecentDrops(ctx context.Context) ([]entity.PriceDropResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PriceDropResponse), args.Error(1)
}

func (m *MockPriceAlertService) PublishRecentDrops(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===================== NewCronScheduler Tests =====================

func TestNewCronScheduler(t *testing.T) {
	// Arrange
	mockSvc := new(MockPriceAlertService)

	// Act
	scheduler := NewCronScheduler(mockSvc)

	// Assert
	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, mockSvc, scheduler.alerts)
}

// ===================== Start Tests =====================

func TestCronScheduler_Start_Success(t *testing.T) {
	// Arrange
	mockSvc := new(MockPriceAlertService)
	scheduler := NewCronScheduler(mockSvc)

	// Публикация при старте, не дожидаясь расписания
	mockSvc.On("PublishRecentDrops", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(context.Background(), "*/5 * * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	// Cleanup
	scheduler.Stop()
	mockSvc.AssertExpectations(t)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	// Arrange
	mockSvc := new(MockPriceAlertService)
	scheduler := NewCronScheduler(mockSvc)

	// Act
	err := scheduler.Start(context.Background(), "not a schedule")

	// Assert
	assert.Error(t, err)
}

func TestCronScheduler_Start_InitialPublishError_ContinuesWork(t *testing.T) {
	// Arrange
	mockSvc := new(MockPriceAlertService)
	scheduler := NewCronScheduler(mockSvc)

	// Первая публикация падает, планировщик всё равно работает
	mockSvc.On("PublishRecentDrops", mock.Anything).Return(errors.New("kafka unavailable"))

	// Act
	err := scheduler.Start(context.Background(), "*/5 * * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	// Cleanup
	scheduler.Stop()
}

// ===================== Job Execution Tests =====================

func TestCronScheduler_JobExecution(t *testing.T) {
	// Arrange
	mockSvc := new(MockPriceAlertService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("PublishRecentDrops", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	time.Sleep(350 * time.Millisecond)
	scheduler.Stop()

	// Assert - стартовая публикация плюс срабатывания по расписанию
	assert.GreaterOrEqual(t, len(mockSvc.Calls), 2)
}

func TestCronScheduler_JobExecution_WithError(t *testing.T) {
	// Планировщик продолжает работать несмотря на ошибки публикации
	// Arrange
	mockSvc := new(MockPriceAlertService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("PublishRecentDrops", mock.Anything).Return(errors.New("broker error"))

	// Act
	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	time.Sleep(350 * time.Millisecond)
	scheduler.Stop()

	// Assert
	assert.GreaterOrEqual(t, len(mockSvc.Calls), 2)
}

// ===================== Stop Tests =====================

func TestCronScheduler_Stop(t *testing.T) {
	// Arrange
	mockSvc := new(MockPriceAlertService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("PublishRecentDrops", mock.Anything).Return(nil)
	scheduler.Start(context.Background(), "*/5 * * * *")

	// Act
	scheduler.Stop()

	// Assert
	assert.NotNil(t, scheduler.cron)
}
