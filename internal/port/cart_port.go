package port

import (
	"context"

	"github.com/nikolayk812/beer-catalog/internal/domain"
)

// CartRepository persists session cart snapshots keyed by owner.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}
