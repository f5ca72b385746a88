package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"productreview/review-api-service/internal/app/reviewapi/entity"
)

type PriceHistoryRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  PriceHistoryRepository
	sqlDB *sql.DB
}

func TestPriceHistoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(PriceHistoryRepositoryTestSuite))
}

func (s *PriceHistoryRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewPriceHistoryRepository(s.db)
}

func (s *PriceHistoryRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== Create Tests =====================

func (s *PriceHistoryRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	h := &entity.PriceHistory{ProductID: 1, OldPrice: 999.99, NewPrice: 849.99, ChangedAt: time.Now()}

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "price_histories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Create(ctx, h)

	// Assert
	s.NoError(err)
	s.Equal(int64(1), h.ID)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PriceHistoryRepositoryTestSuite) TestCreate_DBError() {
	ctx := context.Background()
	h := &entity.PriceHistory{ProductID: 1, OldPrice: 100, NewPrice: 80, ChangedAt: time.Now()}

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "price_histories"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, h)

	// Assert
	s.Error(err)
}

// ===================== RecentDrops Tests =====================

func (s *PriceHistoryRepositoryTestSuite) TestRecentDrops_OnlyDropsReturned() {
	ctx := context.Background()
	since := time.Now().Add(-24 * time.Hour)
	changedAt := time.Now().Add(-time.Hour)

	rows := sqlmock.NewRows([]string{"id", "product_id", "old_price", "new_price", "changed_at"}).
		AddRow(2, 2, 200.0, 150.0, changedAt).
		AddRow(1, 1, 999.99, 849.99, changedAt.Add(-time.Hour))

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "price_histories" WHERE changed_at >= $1 AND new_price < old_price ORDER BY changed_at DESC`)).
		WithArgs(since).
		WillReturnRows(rows)

	// Act
	drops, err := s.repo.RecentDrops(ctx, since)

	// Assert
	s.NoError(err)
	s.Len(drops, 2)
	s.Equal(int64(2), drops[0].ProductID)
	s.Equal(150.0, drops[0].NewPrice)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PriceHistoryRepositoryTestSuite) TestRecentDrops_Empty() {
	ctx := context.Background()
	since := time.Now().Add(-24 * time.Hour)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "price_histories"`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "old_price", "new_price", "changed_at"}))

	// Act
	drops, err := s.repo.RecentDrops(ctx, since)

	// Assert
	s.NoError(err)
	s.Empty(drops)
}

func (s *PriceHistoryRepositoryTestSuite) TestRecentDrops_DBError() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "price_histories"`)).
		WillReturnError(sql.ErrConnDone)

	// Act
	drops, err := s.repo.RecentDrops(ctx, time.Now())

	// Assert
	s.Error(err)
	s.Nil(drops)
}
