package cart

import (
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// ModalState is the visibility of the cart modal.
type ModalState int

const (
	Closed ModalState = iota
	Open
)

func (s ModalState) String() string {
	switch s {
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Modal is the cart overlay of the page layout. The layout opens it on a
// cart icon click; the modal closes itself on backdrop click, close button
// or a successful checkout. While open it keeps the last rendered view of
// the store current through a store subscription.
type Modal struct {
	store *Store

	mu          sync.Mutex
	state       ModalState
	view        domain.CartSnapshot
	unsubscribe func()
}

// NewModal creates a closed modal bound to store.
func NewModal(store *Store) *Modal {
	m := &Modal{store: store}
	m.unsubscribe = store.Subscribe(m.render)
	return m
}

// Open shows the modal and renders the current cart.
func (m *Modal) Open() domain.CartSnapshot {
	m.mu.Lock()
	m.state = Open
	m.mu.Unlock()

	m.render(m.store.Snapshot())

	view, _ := m.View()
	return view
}

// Close hides the modal.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Closed
	m.view = domain.CartSnapshot{}
}

// State returns the current visibility.
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsOpen reports whether the modal is visible.
func (m *Modal) IsOpen() bool {
	return m.State() == Open
}

// View returns the rendered cart and true while the modal is open.
func (m *Modal) View() (domain.CartSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Open {
		return domain.CartSnapshot{}, false
	}
	return m.view, true
}

// UpdateQuantity is the quantity control rendered next to each line.
func (m *Modal) UpdateQuantity(productID string, quantity int) (domain.CartSnapshot, bool) {
	return m.store.UpdateQuantity(productID, quantity)
}

// RemoveItem is the remove control rendered next to each line.
func (m *Modal) RemoveItem(productID string) (domain.CartSnapshot, bool) {
	return m.store.RemoveItem(productID)
}

// Checkout empties the cart, closes the modal and returns the purchased
// contents. An empty cart fails with domain.ErrEmptyCart and the modal stays
// as it was.
func (m *Modal) Checkout() (domain.CartSnapshot, error) {
	final := m.store.Take()
	if final.IsEmpty() {
		return final, domain.ErrEmptyCart
	}
	m.Close()
	return final, nil
}

// Release detaches the modal from its store.
func (m *Modal) Release() {
	m.unsubscribe()
}

func (m *Modal) render(snap domain.CartSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// A listener and Open can race; never replace a newer render.
	if m.state == Open && snap.Version >= m.view.Version {
		m.view = snap
	}
}
