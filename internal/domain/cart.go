package domain

import (
	"time"
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ProductID ProductID
	Name      string
	UnitPrice Money
	Quantity  int
	ImageURL  *string

	CreatedAt time.Time
}

func (i CartItem) DisplayImage(placeholder string) string {
	return imageOrPlaceholder(i.ImageURL, placeholder)
}

// Subtotal is UnitPrice * Quantity.
func (i CartItem) Subtotal() Money {
	return i.UnitPrice.Times(i.Quantity)
}
