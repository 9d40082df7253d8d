// Package cart holds the per-session cart store and the cart modal that
// renders it.
package cart

import (
	"slices"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// Listener is called after every applied mutation with the resulting state.
type Listener func(domain.CartSnapshot)

type subscription struct {
	id uint64
	fn Listener
}

// Store is the single source of truth for one session's cart contents.
//
// Mutations never fail. Invalid targets are ignored and invalid quantities
// are clamped (add) or turned into a removal (update). Listeners run
// synchronously on the mutating goroutine once the state lock is released,
// so a listener may read the store but sees the snapshot it was handed.
type Store struct {
	mu        sync.Mutex
	items     []domain.LineItem
	version   uint64
	listeners []subscription
	nextID    uint64
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem puts quantity units of product in the cart, merging with an
// existing line for the same product. Non-positive quantities count as 1 and
// a line never grows past domain.MaxQuantity.
func (s *Store) AddItem(product domain.Product, quantity int) domain.CartSnapshot {
	quantity = min(max(quantity, 1), domain.MaxQuantity)

	s.mu.Lock()
	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity = domain.AddQuantity(s.items[i].Quantity, quantity)
	} else {
		s.items = append(s.items, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
			ImageURL:  product.ImageURL,
		})
	}
	snap, listeners := s.commit()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// UpdateQuantity sets the quantity of productID exactly. A quantity of zero
// or less removes the line. The bool is false when productID is not in the
// cart, in which case nothing changes.
func (s *Store) UpdateQuantity(productID string, quantity int) (domain.CartSnapshot, bool) {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	quantity = min(quantity, domain.MaxQuantity)

	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, false
	}
	s.items[i].Quantity = quantity
	snap, listeners := s.commit()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap, true
}

// RemoveItem drops the line for productID. The bool is false when there was
// no such line.
func (s *Store) RemoveItem(productID string) (domain.CartSnapshot, bool) {
	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, false
	}
	s.items = slices.Delete(s.items, i, i+1)
	snap, listeners := s.commit()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap, true
}

// Clear empties the cart.
func (s *Store) Clear() domain.CartSnapshot {
	s.mu.Lock()
	s.items = nil
	snap, listeners := s.commit()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// Take empties the cart and returns what it held. An already empty cart is
// left alone and listeners are not called.
func (s *Store) Take() domain.CartSnapshot {
	s.mu.Lock()
	taken := s.snapshot()
	if taken.IsEmpty() {
		s.mu.Unlock()
		return taken
	}
	s.items = nil
	snap, listeners := s.commit()
	s.mu.Unlock()

	notify(listeners, snap)
	return taken
}

// Snapshot returns the current items and totals.
func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn and returns a function that removes it again.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(item domain.LineItem) bool {
		return item.ProductID == productID
	})
}

// snapshot must be called with mu held.
func (s *Store) snapshot() domain.CartSnapshot {
	snap := domain.NewCartSnapshot(slices.Clone(s.items))
	snap.Version = s.version
	return snap
}

// commit must be called with mu held.
func (s *Store) commit() (domain.CartSnapshot, []subscription) {
	s.version++
	return s.snapshot(), slices.Clone(s.listeners)
}

func notify(listeners []subscription, snap domain.CartSnapshot) {
	for _, sub := range listeners {
		sub.fn(snap)
	}
}
