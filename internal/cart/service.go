package cart

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/store"
)

// ErrEmptySelection is returned when an item carries neither a quantity tier
// nor a note.
var ErrEmptySelection = errors.New("cart item needs sets > 0 or a note")

// Service maintains the exclusive-selection cart: one entry per product id,
// replace-not-merge on repeated adds. Every mutation persists the full cart.
type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Items returns the current cart.
func (s *Service) Items() ([]domain.CartItem, error) {
	return s.store.Cart()
}

// Add inserts or replaces the entry for item.ProductId. A quantity tier
// clears any note and a note clears the quantity, so the stored entry is
// always an exclusive selection.
func (s *Service) Add(item domain.CartItem) ([]domain.CartItem, error) {
	item.Note = strings.TrimSpace(item.Note)
	if item.Sets > 0 {
		item.Note = ""
	} else {
		item.Sets = 0
		if item.Note == "" {
			return nil, ErrEmptySelection
		}
	}

	items, err := s.store.Cart()
	if err != nil {
		return nil, err
	}
	replaced := false
	for i := range items {
		if items[i].ProductId == item.ProductId {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	if err := s.store.PutCart(items); err != nil {
		return nil, err
	}
	zap.L().Debug("cart item stored",
		zap.String("product_id", item.ProductId),
		zap.Int("sets", item.Sets),
		zap.Bool("replaced", replaced))
	return items, nil
}

// Remove deletes the entry for productId; removing an absent id is a no-op.
func (s *Service) Remove(productId string) ([]domain.CartItem, error) {
	items, err := s.store.Cart()
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it.ProductId != productId {
			out = append(out, it)
		}
	}
	if err := s.store.PutCart(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clear empties the cart, the product cache and the last-sync marker
// together. Irreversible; the API layer requires explicit confirmation.
func (s *Service) Clear() error {
	if err := s.store.ClearCache(); err != nil {
		return err
	}
	zap.L().Info("cart and catalog cache cleared")
	return nil
}

// Total sums the priced line totals across the cart. Note-only entries
// contribute nothing.
func Total(items []domain.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
