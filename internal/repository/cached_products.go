package repository

import (
	"context"
	"time"

	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/nikolayk812/beer-catalog/internal/logger"
	"github.com/nikolayk812/beer-catalog/internal/port"
)

type cachedProducts struct {
	port.ProductRepository

	cache port.ProductCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedProducts serves ListProducts from cache when possible. Cache
// errors are logged and fall through to repo.
func NewCachedProducts(repo port.ProductRepository, cache port.ProductCache, ttl time.Duration, logg *logger.Logger) port.ProductRepository {
	return &cachedProducts{
		ProductRepository: repo,
		cache:             cache,
		ttl:               ttl,
		logg:              logg,
	}
}

func (r *cachedProducts) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, ok, err := r.cache.GetProducts(ctx, query)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "product cache read failed")
	}
	if ok {
		return products, nil
	}

	products, err = r.ProductRepository.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetProducts(ctx, query, products, r.ttl); err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "product cache write failed")
	}

	return products, nil
}
