package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/nikolayk812/beer-catalog/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	keyNamespace   = "catalog"
	productsPrefix = "products"
)

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
}

type productCache struct {
	store cmdable
}

func NewProductCache(client *redis.Client) port.ProductCache {
	return &productCache{store: client}
}

type cachedProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Description  *string         `json:"description,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
}

func (c *productCache) GetProducts(ctx context.Context, query string) ([]domain.Product, bool, error) {
	raw, err := c.store.Get(ctx, productsKey(query)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis.Get: %w", err)
	}

	var cached []cachedProduct
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	products := make([]domain.Product, 0, len(cached))
	for _, cp := range cached {
		unit, err := currency.ParseISO(cp.Currency)
		if err != nil {
			return nil, false, fmt.Errorf("currency[%s] is not valid: %w", cp.Currency, err)
		}

		p := domain.Product{
			ID:          domain.ProductID(cp.ID),
			Name:        cp.Name,
			Price:       domain.Money{Amount: cp.Price, Currency: unit},
			Description: cp.Description,
			ImageURL:    cp.ImageURL,
			CategoryID:  cp.CategoryID,
		}
		if cp.CategoryID != nil && cp.CategoryName != nil {
			p.Category = &domain.Category{ID: *cp.CategoryID, Name: *cp.CategoryName}
		}
		products = append(products, p)
	}

	return products, true, nil
}

func (c *productCache) SetProducts(ctx context.Context, query string, products []domain.Product, ttl time.Duration) error {
	cached := make([]cachedProduct, 0, len(products))
	for _, p := range products {
		cp := cachedProduct{
			ID:          int64(p.ID),
			Name:        p.Name,
			Price:       p.Price.Amount,
			Currency:    p.Price.Currency.String(),
			Description: p.Description,
			ImageURL:    p.ImageURL,
			CategoryID:  p.CategoryID,
		}
		if p.Category != nil {
			cp.CategoryName = &p.Category.Name
		}
		cached = append(cached, cp)
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.store.Set(ctx, productsKey(query), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}

// productsKey normalises query so that "IPA " and "ipa" share an entry.
func productsKey(query string) string {
	return strings.Join([]string{keyNamespace, productsPrefix, strings.ToLower(strings.TrimSpace(query))}, ":")
}
