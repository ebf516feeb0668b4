package domain_test

import (
	"testing"

	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestProduct_DisplayFallbacks(t *testing.T) {
	empty := ""
	desc := "Hazy, 6.5% ABV"
	img := "https://cdn.example.com/ipa.png"

	tests := []struct {
		name         string
		product      domain.Product
		wantCategory string
		wantDesc     string
		wantImage    string
	}{
		{
			name:         "all fields set: ok",
			product:      domain.Product{Description: &desc, ImageURL: &img, Category: &domain.Category{Name: "IPA"}},
			wantCategory: "IPA",
			wantDesc:     desc,
			wantImage:    img,
		},
		{
			name:         "nil fields: fallbacks",
			product:      domain.Product{},
			wantCategory: "Sin Categoria",
			wantDesc:     "Sin descripción disponible.",
			wantImage:    "placeholder.png",
		},
		{
			name:         "empty strings: fallbacks",
			product:      domain.Product{Description: &empty, ImageURL: &empty, Category: &domain.Category{}},
			wantCategory: "Sin Categoria",
			wantDesc:     "Sin descripción disponible.",
			wantImage:    "placeholder.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCategory, tt.product.DisplayCategory())
			assert.Equal(t, tt.wantDesc, tt.product.DisplayDescription())
			assert.Equal(t, tt.wantImage, tt.product.DisplayImage("placeholder.png"))
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	usd := currency.USD
	price := domain.Money{Amount: decimal.RequireFromString("19.99"), Currency: usd}

	assert.True(t, decimal.RequireFromString("59.97").Equal(price.Times(3).Amount))
	assert.True(t, price.Times(0).Amount.IsZero())

	sum := domain.ZeroMoney(usd).Plus(price).Plus(price)
	assert.True(t, sum.Equal(domain.Money{Amount: decimal.RequireFromString("39.98"), Currency: usd}))

	item := domain.CartItem{UnitPrice: price, Quantity: 2}
	assert.True(t, item.Subtotal().Equal(sum))
}
