package repository_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/nikolayk812/beer-catalog/internal/port"
	"github.com/nikolayk812/beer-catalog/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type productRepositorySuite struct {
	suite.Suite

	repo port.ProductRepository
	pool *pgxpool.Pool
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(productRepositorySuite))
}

func (suite *productRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewProduct(suite.pool)

	_, err = suite.pool.Exec(ctx, `
		INSERT INTO categories (id, name) VALUES (1, 'IPA'), (2, 'Stout');
		INSERT INTO products (id, name, price_amount, price_currency, description, image_url, category_id) VALUES
			(1, 'Hazy IPA', 100.00, 'ARS', 'Juicy', 'https://cdn.example.com/hazy.png', 1),
			(2, 'Imperial Stout', 150.50, 'ARS', NULL, NULL, 2),
			(3, 'West Coast ipa', 120.00, 'ARS', NULL, NULL, NULL);
	`)
	suite.Require().NoError(err)
}

func (suite *productRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *productRepositorySuite) TestListProducts() {
	tests := []struct {
		name    string
		query   string
		wantIDs []domain.ProductID
	}{
		{
			name:    "empty query: whole catalog",
			query:   "",
			wantIDs: []domain.ProductID{1, 2, 3},
		},
		{
			name:    "case-insensitive substring: ok",
			query:   "IPA",
			wantIDs: []domain.ProductID{1, 3},
		},
		{
			name:    "surrounding spaces trimmed: ok",
			query:   "  stout ",
			wantIDs: []domain.ProductID{2},
		},
		{
			name:    "like wildcards are literal: no match",
			query:   "%",
			wantIDs: []domain.ProductID{},
		},
		{
			name:    "no match: empty",
			query:   "lager",
			wantIDs: []domain.ProductID{},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			products, err := suite.repo.ListProducts(t.Context(), tt.query)
			require.NoError(t, err)

			ids := make([]domain.ProductID, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func (suite *productRepositorySuite) TestGetProduct() {
	t := suite.T()
	ctx := t.Context()

	p, err := suite.repo.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hazy IPA", p.Name)
	assert.True(t, decimal.NewFromInt(100).Equal(p.Price.Amount))
	assert.Equal(t, "ARS", p.Price.Currency.String())
	assert.Equal(t, "IPA", p.DisplayCategory())
	assert.Equal(t, "Juicy", p.DisplayDescription())

	p, err = suite.repo.GetProduct(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, p.Category)
	assert.Equal(t, "Sin Categoria", p.DisplayCategory())

	p, err = suite.repo.GetProduct(ctx, 2)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.5").Equal(p.Price.Amount))

	_, err = suite.repo.GetProduct(ctx, 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrProductNotFound))
}
