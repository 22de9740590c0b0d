package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	return NewStore(context.Background(), kv, zap.NewNop()), kv
}

func persisted(t *testing.T, kv storage.KV) ([]models.CartEntry, bool) {
	t.Helper()
	var entries []models.CartEntry
	found, err := storage.LoadJSON(context.Background(), kv, storage.CartKey, &entries)
	require.NoError(t, err)
	return entries, found
}

func TestStore_AddCountsCalls(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	calls := []int64{1, 2, 1, 3, 1, 2}
	for _, id := range calls {
		s.Add(ctx, id)
	}

	assert.Equal(t, len(calls), s.Count())
	assert.Equal(t, []models.CartEntry{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	}, s.Entries())

	stored, found := persisted(t, kv)
	require.True(t, found)
	assert.Equal(t, s.Entries(), stored)
}

func TestStore_AddRemoveRoundTrip(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, 1)
	s.Add(ctx, 1)
	before := s.Entries()

	s.Add(ctx, 7)
	s.Remove(ctx, 7)

	assert.Equal(t, before, s.Entries())
	stored, _ := persisted(t, kv)
	assert.Equal(t, before, stored)
}

func TestStore_SetQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, 1)

	s.SetQuantity(ctx, 1, 5)
	assert.Equal(t, 5, s.Quantity(1))

	for _, q := range []int{0, -1, -100} {
		s.SetQuantity(ctx, 1, q)
		assert.Equal(t, 1, s.Quantity(1), "quantity %d must clamp to 1", q)
	}

	// Absent product is a no-op.
	s.SetQuantity(ctx, 99, 4)
	assert.Equal(t, 0, s.Quantity(99))
	assert.Len(t, s.Entries(), 1)
}

func TestStore_RemoveAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(context.Background(), 1)
	s.Remove(context.Background(), 2)
	assert.Equal(t, 1, s.Count())
}

func TestStore_Clear(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, 1)
	s.Add(ctx, 2)

	s.Clear(ctx)

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Entries())
	_, found := persisted(t, kv)
	assert.False(t, found)
}

func TestStore_LoadsPersistedCart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.CartKey, `[{"id":4,"quantity":2},{"id":9,"quantity":1}]`))

	s := NewStore(ctx, kv, zap.NewNop())
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []models.CartEntry{{ProductID: 4, Quantity: 2}, {ProductID: 9, Quantity: 1}}, s.Entries())
}

func TestStore_MalformedCartStartsEmpty(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"id":`,
		"wrong shape":    `{"id":1,"quantity":1}`,
		"zero quantity":  `[{"id":1,"quantity":0}]`,
		"duplicate id":   `[{"id":1,"quantity":1},{"id":1,"quantity":2}]`,
		"bad product id": `[{"id":0,"quantity":1}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryKV()
			require.NoError(t, kv.Set(ctx, storage.CartKey, raw))

			s := NewStore(ctx, kv, zap.NewNop())
			assert.Equal(t, 0, s.Count())

			// The in-memory copy wins and is rewritten on the next mutation.
			s.Add(ctx, 5)
			stored, _ := persisted(t, kv)
			assert.Equal(t, []models.CartEntry{{ProductID: 5, Quantity: 1}}, stored)
		})
	}
}

type failingKV struct {
	*storage.MemoryKV
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}

func TestStore_WriteFailureKeepsMemoryState(t *testing.T) {
	kv := &failingKV{MemoryKV: storage.NewMemoryKV()}
	s := NewStore(context.Background(), kv, zap.NewNop())

	s.Add(context.Background(), 1)
	s.Add(context.Background(), 1)
	assert.Equal(t, 2, s.Count())
}

func TestTotalPrice(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	five := decimal.NewFromInt(5)

	assert.True(t, s.TotalPrice(nil, five).Equal(five), "empty cart totals to shipping")

	s.Add(ctx, 1)
	s.Add(ctx, 1)
	s.Add(ctx, 2)
	resolved := map[int64]models.Product{
		1: {ID: 1, Price: decimal.NewFromInt(10)},
	}

	got := s.TotalPrice(resolved, five)
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
}

func TestTotalPrice_Decimals(t *testing.T) {
	entries := []models.CartEntry{{ProductID: 1, Quantity: 3}}
	resolved := map[int64]models.Product{1: {ID: 1, Price: decimal.RequireFromString("0.10")}}
	got := TotalPrice(entries, resolved, decimal.Zero)
	assert.Equal(t, "0.3", got.String())
}
