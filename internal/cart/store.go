// Package cart holds the session cart aggregation engine.
//
// A Store tracks selected products in first-add order, merges repeated
// selections by product ID and derives totals from its current items. It
// performs no I/O and is not safe for concurrent use: callers that share a
// Store across goroutines must serialise access themselves.
package cart

import (
	"slices"

	"github.com/nikolayk812/beer-catalog/internal/domain"
	"golang.org/x/text/currency"
)

type EventKind int

const (
	ItemAdded EventKind = iota + 1
	ItemIncremented
	ItemDecremented
	ItemRemoved
	Cleared
)

func (k EventKind) String() string {
	switch k {
	case ItemAdded:
		return "item_added"
	case ItemIncremented:
		return "item_incremented"
	case ItemDecremented:
		return "item_decremented"
	case ItemRemoved:
		return "item_removed"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event describes a mutation that changed the cart. Quantity is the item's
// quantity after the mutation (0 for ItemRemoved and Cleared).
type Event struct {
	Kind      EventKind
	ProductID domain.ProductID
	Quantity  int
}

type Listener func(Event)

type Store struct {
	currency  currency.Unit
	items     []domain.CartItem
	listeners []*Listener
}

func New(cur currency.Unit) *Store {
	return &Store{currency: cur}
}

func (s *Store) Currency() currency.Unit {
	return s.currency
}

// AddItem adds one unit of p. A product already in the cart keeps the name,
// price and image captured on its first addition.
func (s *Store) AddItem(p domain.Product) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
		s.notify(Event{Kind: ItemIncremented, ProductID: p.ID, Quantity: s.items[i].Quantity})
		return
	}

	s.items = append(s.items, domain.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
	})
	s.notify(Event{Kind: ItemAdded, ProductID: p.ID, Quantity: 1})
}

// RemoveItem takes one unit of id out of the cart. The last unit removes the
// entry; an unknown id is ignored.
func (s *Store) RemoveItem(id domain.ProductID) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}

	if s.items[i].Quantity > 1 {
		s.items[i].Quantity--
		s.notify(Event{Kind: ItemDecremented, ProductID: id, Quantity: s.items[i].Quantity})
		return
	}

	s.items = slices.Delete(s.items, i, i+1)
	s.notify(Event{Kind: ItemRemoved, ProductID: id})
}

func (s *Store) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.notify(Event{Kind: Cleared})
}

// Restore replaces the contents with a persisted snapshot without notifying
// listeners. Entries with a non-positive quantity are dropped and repeated
// product IDs are merged into the first occurrence.
func (s *Store) Restore(items []domain.CartItem) {
	restored := make([]domain.CartItem, 0, len(items))

	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if i := slices.IndexFunc(restored, func(c domain.CartItem) bool { return c.ProductID == item.ProductID }); i >= 0 {
			restored[i].Quantity += item.Quantity
			continue
		}
		restored = append(restored, item)
	}

	if len(restored) == 0 {
		restored = nil
	}
	s.items = restored
}

// Items returns a copy of the cart contents in first-add order.
func (s *Store) Items() []domain.CartItem {
	return slices.Clone(s.items)
}

// Quantity returns the number of units of id in the cart, or 0.
func (s *Store) Quantity(id domain.ProductID) int {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Len is the number of distinct products.
func (s *Store) Len() int {
	return len(s.items)
}

// TotalUnits is the sum of quantities across all items.
func (s *Store) TotalUnits() int {
	var units int
	for _, item := range s.items {
		units += item.Quantity
	}
	return units
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Total is recomputed from the current items on every call.
func (s *Store) Total() domain.Money {
	total := domain.ZeroMoney(s.currency)
	for _, item := range s.items {
		total = total.Plus(item.Subtotal())
	}
	return total
}

// Snapshot returns the cart as a domain value owned by ownerID.
func (s *Store) Snapshot(ownerID string) domain.Cart {
	return domain.Cart{
		OwnerID: ownerID,
		Items:   s.Items(),
	}
}

// Subscribe registers l to be called synchronously after every mutation
// that changes the cart. The returned func removes the registration.
func (s *Store) Subscribe(l Listener) func() {
	ref := &l
	s.listeners = append(s.listeners, ref)

	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(x *Listener) bool { return x == ref })
	}
}

func (s *Store) notify(e Event) {
	for _, l := range slices.Clone(s.listeners) {
		(*l)(e)
	}
}

func (s *Store) indexOf(id domain.ProductID) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ProductID == id
	})
}
