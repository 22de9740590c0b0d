// Package cart holds the shopper's cart: a persisted list of product
// quantities, and the resolver that joins it with catalog products.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
)

// Store owns the cart entries. Every mutation is written through to the
// key-value store; the in-memory copy stays authoritative if a write fails.
type Store struct {
	mu      sync.Mutex
	entries []models.CartEntry
	kv      storage.KV
	logger  *zap.Logger
}

// NewStore loads the cart from kv. A missing or malformed cart starts empty.
func NewStore(ctx context.Context, kv storage.KV, logger *zap.Logger) *Store {
	s := &Store{kv: kv, logger: logger}

	var entries []models.CartEntry
	found, err := storage.LoadJSON(ctx, kv, storage.CartKey, &entries)
	switch {
	case err != nil:
		logger.Warn("discarding unreadable cart", zap.Error(err))
	case found && !valid(entries):
		logger.Warn("discarding malformed cart", zap.Int("entries", len(entries)))
	case found:
		s.entries = entries
	}
	return s
}

// valid reports whether entries have unique positive product ids and
// quantities of at least 1.
func valid(entries []models.CartEntry) bool {
	seen := make(map[int64]bool, len(entries))
	for _, e := range entries {
		if e.ProductID < 1 || e.Quantity < 1 || seen[e.ProductID] {
			return false
		}
		seen[e.ProductID] = true
	}
	return true
}

// Add increments the quantity of productID, inserting it with quantity 1
// if absent.
func (s *Store) Add(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(productID); i >= 0 {
		s.entries[i].Quantity++
	} else {
		s.entries = append(s.entries, models.CartEntry{ProductID: productID, Quantity: 1})
	}
	s.persist(ctx)
}

// SetQuantity sets the quantity of productID, clamping anything below 1
// to 1. It does nothing if productID is not in the cart.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	s.entries[i].Quantity = quantity
	s.persist(ctx)
}

// Remove deletes productID from the cart if present.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.persist(ctx)
}

// Clear empties the cart and erases the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := storage.DeleteKey(ctx, s.kv, storage.CartKey); err != nil {
		s.logger.Error("failed to erase cart", zap.Error(err))
	}
}

// Count returns the total number of items, summing quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, e := range s.entries {
		total += e.Quantity
	}
	return total
}

// Entries returns a copy of the cart in insertion order.
func (s *Store) Entries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartEntry{}, s.entries...)
}

// Quantity returns the quantity of productID, or 0 if absent.
func (s *Store) Quantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(productID); i >= 0 {
		return s.entries[i].Quantity
	}
	return 0
}

// TotalPrice sums price × quantity over entries found in resolved, plus
// shipping. Entries without a resolved product contribute nothing.
func (s *Store) TotalPrice(resolved map[int64]models.Product, shipping decimal.Decimal) decimal.Decimal {
	return TotalPrice(s.Entries(), resolved, shipping)
}

// TotalPrice is Store.TotalPrice over an explicit snapshot.
func TotalPrice(entries []models.CartEntry, resolved map[int64]models.Product, shipping decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		p, ok := resolved[e.ProductID]
		if !ok {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total.Add(shipping)
}

func (s *Store) index(productID int64) int {
	for i, e := range s.entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist writes the cart. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	entries := s.entries
	if entries == nil {
		entries = []models.CartEntry{}
	}
	if err := storage.SaveJSON(ctx, s.kv, storage.CartKey, entries); err != nil {
		s.logger.Error("failed to persist cart", zap.Error(err))
	}
}
