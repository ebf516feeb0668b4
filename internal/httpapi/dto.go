package httpapi

import (
	"github.com/nikolayk812/beer-catalog/internal/domain"
	"github.com/shopspring/decimal"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type MoneyResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type ProductResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Price       MoneyResponse `json:"price"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Category    string        `json:"category"`
}

type CartItemResponse struct {
	ProductID int64         `json:"product_id"`
	Name      string        `json:"name"`
	UnitPrice MoneyResponse `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	Subtotal  MoneyResponse `json:"subtotal"`
	ImageURL  string        `json:"image_url"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	Distinct   int                `json:"distinct"`
	TotalUnits int                `json:"total_units"`
	Total      MoneyResponse      `json:"total"`
	Summary    string             `json:"summary"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

func mapMoney(m domain.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount, Currency: m.Currency.String()}
}

func mapProduct(p domain.Product, placeholderImage string) ProductResponse {
	return ProductResponse{
		ID:          int64(p.ID),
		Name:        p.Name,
		Price:       mapMoney(p.Price),
		Description: p.DisplayDescription(),
		ImageURL:    p.DisplayImage(placeholderImage),
		Category:    p.DisplayCategory(),
	}
}

func mapProducts(products []domain.Product, placeholderImage string) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = mapProduct(p, placeholderImage)
	}
	return out
}
