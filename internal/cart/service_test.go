package cart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st), st
}

func TestAddReplacesExistingSelection(t *testing.T) {
	svc, _ := newTestService(t)

	items, err := svc.Add(domain.CartItem{ProductId: "X", ProductName: "Black", Sets: 2, Rate: 100})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Sets)

	// Switching to a note replaces the quantity selection outright.
	items, err = svc.Add(domain.CartItem{ProductId: "X", ProductName: "Black", Sets: 0, Note: "custom"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 0, items[0].Sets)
	require.Equal(t, "custom", items[0].Note)
}

func TestAddIsExclusive(t *testing.T) {
	svc, _ := newTestService(t)

	// A priced quantity drops any note sent along with it.
	items, err := svc.Add(domain.CartItem{ProductId: "X", Sets: 3, Note: "ignored", Rate: 50})
	require.NoError(t, err)
	require.Equal(t, 3, items[0].Sets)
	require.Empty(t, items[0].Note)

	_, err = svc.Add(domain.CartItem{ProductId: "Y"})
	require.ErrorIs(t, err, ErrEmptySelection)
}

func TestAddAppendsDistinctProducts(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(domain.CartItem{ProductId: "X", Sets: 1, Rate: 100})
	require.NoError(t, err)
	items, err := svc.Add(domain.CartItem{ProductId: "Y", Sets: 2, Rate: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "X", items[0].ProductId)
	require.Equal(t, "Y", items[1].ProductId)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(domain.CartItem{ProductId: "X", Sets: 1, Rate: 100})
	require.NoError(t, err)

	items, err := svc.Remove("X")
	require.NoError(t, err)
	require.Empty(t, items)

	// Removing an absent id is a no-op.
	items, err = svc.Remove("nope")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestClearWipesCartCatalogAndMarker(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, st.ReplaceCatalog([]domain.Product{{ID: "1"}}, "1/1/2026 9:00:00 AM"))
	_, err := svc.Add(domain.CartItem{ProductId: "1", Sets: 1, Rate: 5})
	require.NoError(t, err)

	require.NoError(t, svc.Clear())

	items, err := svc.Items()
	require.NoError(t, err)
	require.Empty(t, items)

	products, err := st.Products()
	require.NoError(t, err)
	require.Empty(t, products)

	last, err := st.LastSynced()
	require.NoError(t, err)
	require.Empty(t, last)
}

func TestTotal(t *testing.T) {
	items := []domain.CartItem{
		{ProductId: "a", Sets: 2, Rate: 100},
		{ProductId: "b", Note: "urgent"}, // note-only contributes nothing
		{ProductId: "c", Sets: 3, Rate: 10},
	}
	require.Equal(t, 230.0, Total(items))
	require.Equal(t, 0.0, Total(nil))
}
