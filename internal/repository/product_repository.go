package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/beer-catalog/internal/db"
	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/nikolayk812/beer-catalog/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func (r *productRepository) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(db.GetProductRow(row))
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, int64(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, port.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func mapProductToDomain(row db.GetProductRow) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}
	if row.PriceAmount.LessThan(decimal.Zero) {
		return domain.Product{}, fmt.Errorf("product[%d] price[%s] is negative", row.ID, row.PriceAmount)
	}

	product := domain.Product{
		ID:          domain.ProductID(row.ID),
		Name:        row.Name,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Description: row.Description,
		ImageURL:    row.ImageUrl,
		CategoryID:  row.CategoryID,
	}

	if row.CategoryID != nil && row.CategoryName != nil {
		product.Category = &domain.Category{ID: *row.CategoryID, Name: *row.CategoryName}
	}

	return product, nil
}
