package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"productreview/review-api-service/internal/app/reviewapi/entity"
)

// ProductRepositoryTestSuite тестовый suite для PostgreSQL repository
type ProductRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ProductRepository
	sqlDB *sql.DB
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewProductRepository(s.db)
}

func (s *ProductRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func productRows(products ...entity.Product) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "price", "average_rating", "review_count"})
	for _, p := range products {
		rows.AddRow(p.ID, p.Name, p.Description, p.Category, p.Price, p.AverageRating, p.ReviewCount)
	}
	return rows
}

// ===================== GetByID Tests =====================

func (s *ProductRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WithArgs(int64(1), 1).
		WillReturnRows(productRows(entity.Product{ID: 1, Name: "iPhone 15 Pro", Category: "Electronics", Price: 999.99, AverageRating: 4.5, ReviewCount: 12}))

	// Act
	product, err := s.repo.GetByID(ctx, 1)

	// Assert
	s.NoError(err)
	s.NotNil(product)
	s.Equal(int64(1), product.ID)
	s.Equal("iPhone 15 Pro", product.Name)
	s.Equal(999.99, product.Price)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WithArgs(int64(99), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	product, err := s.repo.GetByID(ctx, 99)

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
	s.Nil(product)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestGetByID_DBError() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WithArgs(int64(1), 1).
		WillReturnError(sql.ErrConnDone)

	// Act
	product, err := s.repo.GetByID(ctx, 1)

	// Assert
	s.Error(err)
	s.NotErrorIs(err, ErrProductNotFound)
	s.Nil(product)
}

// ===================== GetByIDs Tests =====================

func (s *ProductRepositoryTestSuite) TestGetByIDs_PreservesRequestedOrder() {
	ctx := context.Background()

	// БД отдает в своем порядке, репозиторий восстанавливает запрошенный
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id IN`)).
		WillReturnRows(productRows(
			entity.Product{ID: 3, Name: "Pixel 8 Pro"},
			entity.Product{ID: 1, Name: "iPhone 15 Pro"},
		))

	// Act
	products, err := s.repo.GetByIDs(ctx, []int64{1, 3})

	// Assert
	s.NoError(err)
	s.Len(products, 2)
	s.Equal(int64(1), products[0].ID)
	s.Equal(int64(3), products[1].ID)
}

func (s *ProductRepositoryTestSuite) TestGetByIDs_MissingSkipped() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id IN`)).
		WillReturnRows(productRows(entity.Product{ID: 1, Name: "iPhone 15 Pro"}))

	// Act
	products, err := s.repo.GetByIDs(ctx, []int64{1, 99})

	// Assert
	s.NoError(err)
	s.Len(products, 1)
	s.Equal(int64(1), products[0].ID)
}

// ===================== List Tests =====================

func (s *ProductRepositoryTestSuite) TestList_NoFilters() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" ORDER BY created_at DESC`)).
		WillReturnRows(productRows(
			entity.Product{ID: 2, Name: "Galaxy S24 Ultra"},
			entity.Product{ID: 1, Name: "iPhone 15 Pro"},
		))

	// Act
	products, total, err := s.repo.List(ctx, entity.ProductQuery{Page: 0, Size: 20})

	// Assert
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(products, 2)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestList_CategoryFilter() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE category = $1`)).
		WithArgs("Audio").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE category = $1`)).
		WillReturnRows(productRows(entity.Product{ID: 8, Name: "Sony WH-1000XM5", Category: "Audio"}))

	// Act
	products, total, err := s.repo.List(ctx, entity.ProductQuery{Page: 0, Size: 20, Category: "Audio"})

	// Assert
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(products, 1)
}

func (s *ProductRepositoryTestSuite) TestList_SearchMatchesNameAndDescription() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE LOWER(name) LIKE $1 OR LOWER(description) LIKE $2`)).
		WithArgs("%sony%", "%sony%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE LOWER(name) LIKE $1 OR LOWER(description) LIKE $2`)).
		WillReturnRows(productRows(entity.Product{ID: 8, Name: "Sony WH-1000XM5"}))

	// Act
	_, total, err := s.repo.List(ctx, entity.ProductQuery{Size: 20, Search: "Sony"})

	// Assert
	s.NoError(err)
	s.Equal(int64(1), total)
}

func (s *ProductRepositoryTestSuite) TestList_SortWhitelisted() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY price DESC`)).
		WillReturnRows(productRows())

	// Act
	_, _, err := s.repo.List(ctx, entity.ProductQuery{Size: 20, Sort: "price,desc"})

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestList_UnknownSortFallsBack() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Значение вне белого списка не попадает в ORDER BY
	s.mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
		WillReturnRows(productRows())

	// Act
	_, _, err := s.repo.List(ctx, entity.ProductQuery{Size: 20, Sort: "price; DROP TABLE products,asc"})

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Categories Tests =====================

func (s *ProductRepositoryTestSuite) TestCategories_Success() {
	ctx := context.Background()

	s.mock.ExpectQuery(`SELECT DISTINCT`).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Audio").AddRow("Electronics"))

	// Act
	categories, err := s.repo.Categories(ctx)

	// Assert
	s.NoError(err)
	s.Equal([]string{"Audio", "Electronics"}, categories)
}

// ===================== UpdateStats Tests =====================

func (s *ProductRepositoryTestSuite) TestUpdateStats_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.UpdateStats(ctx, 1, 4.7, 3)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestUpdateStats_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.UpdateStats(ctx, 99, 4.7, 3)

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
}

// ===================== UpdatePrice Tests =====================

func (s *ProductRepositoryTestSuite) TestUpdatePrice_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.UpdatePrice(ctx, 1, 849.99)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestUpdatePrice_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.UpdatePrice(ctx, 99, 849.99)

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
}

// ===================== Count Tests =====================

func (s *ProductRepositoryTestSuite) TestCount_Success() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	// Act
	count, err := s.repo.Count(ctx)

	// Assert
	s.NoError(err)
	s.Equal(int64(10), count)
}

// ===================== orderClause Tests =====================

func (s *ProductRepositoryTestSuite) TestOrderClause() {
	tests := []struct {
		sort     string
		expected string
	}{
		{"", "created_at DESC"},
		{"price", "price ASC"},
		{"price,desc", "price DESC"},
		{"averageRating,DESC", "average_rating DESC"},
		{"reviewCount", "review_count ASC"},
		{"unknown,desc", "created_at DESC"},
	}

	for _, tt := range tests {
		s.Equal(tt.expected, orderClause(tt.sort), "sort=%q", tt.sort)
	}
}
