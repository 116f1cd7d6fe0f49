package memory

import (
	"sync"

	"github.com/TemirB/catalog-orders/internal/domain"
)

// Store owns the in-process collections. Each collection has its own lock;
// records go in and come out as copies.
type Store struct {
	productsMu sync.RWMutex
	products   []*domain.Product

	ordersMu sync.RWMutex
	orders   []*domain.Order
}

func NewStore() *Store {
	return &Store{}
}

// Reset empties both collections.
func (s *Store) Reset() {
	s.productsMu.Lock()
	s.products = nil
	s.productsMu.Unlock()

	s.ordersMu.Lock()
	s.orders = nil
	s.ordersMu.Unlock()
}

func (s *Store) product(id string) (*domain.Product, bool) {
	s.productsMu.RLock()
	defer s.productsMu.RUnlock()
	if i := s.productIndex(id); i >= 0 {
		return s.products[i].Clone(), true
	}
	return nil, false
}

// productIndex expects productsMu to be held.
func (s *Store) productIndex(id string) int {
	for i, p := range s.products {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

// orderIndex expects ordersMu to be held.
func (s *Store) orderIndex(id string) int {
	for i, o := range s.orders {
		if o.ID() == id {
			return i
		}
	}
	return -1
}
