package cart

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/storefront-api/internal/domain"
)

func product(id string, price int64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromInt(price),
		ImageURL: "/images/" + id + ".jpg",
	}
}

var equateDecimals = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func assertSnapshot(t *testing.T, want, got domain.CartSnapshot) {
	t.Helper()
	if diff := cmp.Diff(want, got, equateDecimals); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Scenario(t *testing.T) {
	s := NewStore()
	p1 := product("p1", 10)

	s.AddItem(p1, 2)
	snap := s.AddItem(p1, 3)
	assert.Equal(t, 5, snap.ItemCount)
	assert.True(t, decimal.NewFromInt(50).Equal(snap.Subtotal))
	require.Len(t, snap.Items, 1)

	snap, ok := s.UpdateQuantity("p1", 1)
	assert.True(t, ok)
	assert.Equal(t, 1, snap.ItemCount)
	assert.True(t, decimal.NewFromInt(10).Equal(snap.Subtotal))

	snap, ok = s.RemoveItem("p1")
	assert.True(t, ok)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, 0, snap.ItemCount)
	assert.True(t, snap.Subtotal.IsZero())
}

func TestStore_AddItemIsAdditive(t *testing.T) {
	s := NewStore()
	p := product("p1", 3)
	quantities := []int{1, 4, 2, 7}

	want := 0
	for _, q := range quantities {
		s.AddItem(p, q)
		want += q
	}

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, want, snap.Items[0].Quantity)
}

func TestStore_AddItemClampsQuantity(t *testing.T) {
	s := NewStore()

	s.AddItem(product("p1", 5), 0)
	s.AddItem(product("p2", 5), -4)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, 1, snap.Items[1].Quantity)
}

func TestStore_KeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(product("b", 1), 1)
	s.AddItem(product("a", 1), 1)
	s.AddItem(product("b", 1), 1)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "b", snap.Items[0].ProductID)
	assert.Equal(t, "a", snap.Items[1].ProductID)
}

func TestStore_UpdateToZeroEqualsRemove(t *testing.T) {
	build := func() *Store {
		s := NewStore()
		s.AddItem(product("p1", 10), 2)
		s.AddItem(product("p2", 4), 1)
		return s
	}

	updated := build()
	removed := build()
	a, okA := updated.UpdateQuantity("p1", 0)
	b, okB := removed.RemoveItem("p1")

	assert.Equal(t, okA, okB)
	assertSnapshot(t, b, a)
}

func TestStore_UnknownTargetsAreNoOps(t *testing.T) {
	s := NewStore()
	s.AddItem(product("p1", 10), 2)
	before := s.Snapshot()

	calls := 0
	s.Subscribe(func(domain.CartSnapshot) { calls++ })

	_, ok := s.RemoveItem("missing")
	assert.False(t, ok)
	_, ok = s.UpdateQuantity("missing", 3)
	assert.False(t, ok)
	_, ok = s.UpdateQuantity("missing", 0)
	assert.False(t, ok)

	assertSnapshot(t, before, s.Snapshot())
	assert.Zero(t, calls)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.AddItem(product("p1", 10), 2)
	s.AddItem(product("p2", 1), 9)

	s.Clear()

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.ItemCount)
	assert.True(t, snap.Subtotal.IsZero())
}

func TestStore_TotalsMatchItems(t *testing.T) {
	s := NewStore()
	s.AddItem(domain.Product{ID: "a", Price: decimal.RequireFromString("19.99")}, 3)
	s.AddItem(domain.Product{ID: "b", Price: decimal.RequireFromString("0.10")}, 7)
	s.UpdateQuantity("a", 2)
	s.AddItem(domain.Product{ID: "c", Price: decimal.RequireFromString("5")}, 1)
	s.RemoveItem("c")

	snap := s.Snapshot()
	count := 0
	subtotal := decimal.Zero
	for _, item := range snap.Items {
		count += item.Quantity
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.Equal(t, count, snap.ItemCount)
	assert.True(t, subtotal.Equal(snap.Subtotal))
	assert.Equal(t, "40.68", snap.Subtotal.StringFixed(2))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.AddItem(product("p1", 10), 1)

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, s.Snapshot().Items[0].Quantity)
}

func TestStore_SubscribeNotifiesSynchronously(t *testing.T) {
	s := NewStore()
	var seen []int
	unsubscribe := s.Subscribe(func(snap domain.CartSnapshot) {
		// The store is readable from inside a listener.
		assert.Equal(t, snap.ItemCount, s.Snapshot().ItemCount)
		seen = append(seen, snap.ItemCount)
	})

	s.AddItem(product("p1", 10), 2)
	assert.Equal(t, []int{2}, seen)

	s.UpdateQuantity("p1", 5)
	s.Clear()
	assert.Equal(t, []int{2, 5, 0}, seen)

	unsubscribe()
	unsubscribe()
	s.AddItem(product("p1", 10), 1)
	assert.Equal(t, []int{2, 5, 0}, seen)
}

func TestStore_ListenersRunInRegistrationOrder(t *testing.T) {
	s := NewStore()
	var order []string
	s.Subscribe(func(domain.CartSnapshot) { order = append(order, "first") })
	s.Subscribe(func(domain.CartSnapshot) { order = append(order, "second") })

	s.AddItem(product("p1", 1), 1)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_VersionAdvancesOnAppliedMutations(t *testing.T) {
	s := NewStore()
	assert.Zero(t, s.Snapshot().Version)

	s.AddItem(product("p1", 1), 1)
	s.RemoveItem("missing")
	s.UpdateQuantity("p1", 4)

	assert.Equal(t, uint64(2), s.Snapshot().Version)
}

func TestStore_Take(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func(domain.CartSnapshot) { calls++ })

	empty := s.Take()
	assert.True(t, empty.IsEmpty())
	assert.Zero(t, calls)

	s.AddItem(product("p1", 10), 2)
	taken := s.Take()
	assert.Equal(t, 2, taken.ItemCount)
	assert.True(t, s.Snapshot().IsEmpty())
	assert.Equal(t, 2, calls)
}

func TestStore_QuantitySaturates(t *testing.T) {
	s := NewStore()
	p := product("p1", 1)

	s.AddItem(p, domain.MaxQuantity)
	snap := s.AddItem(p, domain.MaxQuantity)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, domain.MaxQuantity, snap.Items[0].Quantity)

	snap = s.AddItem(product("p2", 1), domain.MaxQuantity)
	assert.Equal(t, domain.MaxQuantity, snap.ItemCount)

	snap, ok := s.UpdateQuantity("p2", domain.MaxQuantity)
	require.True(t, ok)
	item, found := snap.Find("p2")
	require.True(t, found)
	assert.Equal(t, domain.MaxQuantity, item.Quantity)
}

func TestStore_ConcurrentMutationsWithOpenModal(t *testing.T) {
	const workers = 50

	s := NewStore()
	m := NewModal(s)
	defer m.Release()
	m.Open()

	p1, p2 := product("p1", 2), product("p2", 3)
	s.AddItem(p2, 1)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(p1, 1)
			s.UpdateQuantity("p2", i+1)
			s.Snapshot()
			m.View()
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	item, ok := snap.Find("p1")
	require.True(t, ok)
	assert.Equal(t, workers, item.Quantity)
	p2Line, ok := snap.Find("p2")
	require.True(t, ok)
	assert.Equal(t, workers+p2Line.Quantity, snap.ItemCount)
	assert.Equal(t, uint64(1+2*workers), snap.Version)

	view, open := m.View()
	require.True(t, open)
	assert.Equal(t, snap.Version, view.Version)
	assertSnapshot(t, snap, view)
}
