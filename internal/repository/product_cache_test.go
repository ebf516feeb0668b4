package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestProductCache_RoundTrip(t *testing.T) {
	store := newFakeRedis()
	cache := &productCache{store: store}
	ctx := context.Background()

	desc := "Roasty"
	categoryID := int64(2)
	products := []domain.Product{
		{
			ID:          2,
			Name:        "Imperial Stout",
			Price:       domain.Money{Amount: decimal.RequireFromString("150.50"), Currency: currency.MustParseISO("ARS")},
			Description: &desc,
			CategoryID:  &categoryID,
			Category:    &domain.Category{ID: categoryID, Name: "Stout"},
		},
		{
			ID:    3,
			Name:  "Session IPA",
			Price: domain.Money{Amount: decimal.NewFromInt(90), Currency: currency.MustParseISO("ARS")},
		},
	}

	_, ok, err := cache.GetProducts(ctx, "st")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetProducts(ctx, " ST ", products, time.Minute))
	assert.Equal(t, time.Minute, store.ttls["catalog:products:st"])

	got, ok, err := cache.GetProducts(ctx, "st")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)

	assert.Equal(t, "Stout", got[0].DisplayCategory())
	assert.Equal(t, "Roasty", got[0].DisplayDescription())
	assert.True(t, got[0].Price.Equal(products[0].Price))
	assert.Nil(t, got[1].Category)
	assert.True(t, got[1].Price.Equal(products[1].Price))
}

func TestProductCache_EmptyResultIsAHit(t *testing.T) {
	cache := &productCache{store: newFakeRedis()}
	ctx := context.Background()

	require.NoError(t, cache.SetProducts(ctx, "lager", nil, time.Minute))

	got, ok, err := cache.GetProducts(ctx, "lager")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestProductCache_Errors(t *testing.T) {
	store := newFakeRedis()
	store.err = errors.New("connection refused")
	cache := &productCache{store: store}
	ctx := context.Background()

	_, ok, err := cache.GetProducts(ctx, "ipa")
	require.ErrorContains(t, err, "redis.Get: connection refused")
	assert.False(t, ok)

	err = cache.SetProducts(ctx, "ipa", nil, time.Minute)
	require.ErrorContains(t, err, "redis.Set: connection refused")

	store.err = nil
	store.values[productsKey("ipa")] = "{not json"
	_, ok, err = cache.GetProducts(ctx, "ipa")
	require.ErrorContains(t, err, "json.Unmarshal")
	assert.False(t, ok)
}

func TestProductsKey(t *testing.T) {
	assert.Equal(t, "catalog:products:", productsKey(""))
	assert.Equal(t, "catalog:products:hazy ipa", productsKey("  Hazy IPA "))
}
