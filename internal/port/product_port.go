package port

import (
	"context"
	"errors"
	"time"

	"github.com/nikolayk812/beer-catalog/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	// ListProducts returns products whose name contains query, case-insensitively.
	// An empty query returns the whole catalog.
	ListProducts(ctx context.Context, query string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error)
}

type ProductCache interface {
	// GetProducts reports a miss with ok == false.
	GetProducts(ctx context.Context, query string) (products []domain.Product, ok bool, err error)
	SetProducts(ctx context.Context, query string, products []domain.Product, ttl time.Duration) error
}
