package service

import (
	"context"
	"sync"
	"time"

	"github.com/TemirB/catalog-orders/internal/repository"
)

// rowStore keeps product and order rows in process and behaves like the
// Postgres stores: item changes and status updates move updated_at strictly
// forward, and reads join items to the current product rows.
type rowStore struct {
	mu       sync.Mutex
	products map[string]repository.ProductRow
	orders   []repository.OrderHeader
	items    []storedItem
}

type storedItem struct {
	orderID   string
	productID string
	quantity  int
}

var (
	_ repository.ProductStore = (*rowStore)(nil)
	_ repository.OrderStore   = (*rowStore)(nil)
)

func newRowStore() *rowStore {
	return &rowStore{products: make(map[string]repository.ProductRow)}
}

func (s *rowStore) ProductByID(_ context.Context, id string) (repository.ProductRow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok, nil
}

func (s *rowStore) Products(_ context.Context) ([]repository.ProductRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.ProductRow, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *rowStore) InsertProduct(_ context.Context, row repository.ProductRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[row.ID] = row
	return nil
}

func (s *rowStore) UpdateProduct(_ context.Context, row repository.ProductRow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[row.ID]; !ok {
		return false, nil
	}
	s.products[row.ID] = row
	return true, nil
}

func (s *rowStore) DeleteProduct(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *rowStore) OrderRows(_ context.Context, id string) ([]repository.OrderRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.order(id)
	if i < 0 {
		return nil, nil
	}
	return s.rows(s.orders[i]), nil
}

func (s *rowStore) AllOrderRows(_ context.Context) ([]repository.OrderRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.OrderRow
	for _, h := range s.orders {
		out = append(out, s.rows(h)...)
	}
	return out, nil
}

func (s *rowStore) InsertOrder(_ context.Context, header repository.OrderHeader, items []repository.ItemRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order(header.ID) >= 0 {
		return nil
	}
	s.orders = append(s.orders, header)
	for _, it := range items {
		s.items = append(s.items, storedItem{orderID: header.ID, productID: it.Product.ID, quantity: it.Quantity})
	}
	return nil
}

func (s *rowStore) UpdateOrderStatus(_ context.Context, id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.order(id)
	if i < 0 {
		return false, nil
	}
	s.orders[i].Status = status
	s.touch(i)
	return true, nil
}

func (s *rowStore) AddOrderItem(_ context.Context, orderID, productID string, quantity int) (repository.Refs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs, i := s.refs(orderID, productID)
	if !refs.Order || !refs.Product {
		return refs, nil
	}
	s.items = append(s.items, storedItem{orderID: orderID, productID: productID, quantity: quantity})
	s.touch(i)
	return refs, nil
}

func (s *rowStore) RemoveOrderItems(_ context.Context, orderID, productID string) (repository.Refs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs, i := s.refs(orderID, productID)
	if !refs.Order || !refs.Product {
		return refs, nil
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.orderID != orderID || it.productID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.touch(i)
	return refs, nil
}

func (s *rowStore) DeleteOrder(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.order(id)
	if i < 0 {
		return false, nil
	}
	s.orders = append(s.orders[:i:i], s.orders[i+1:]...)
	kept := s.items[:0]
	for _, it := range s.items {
		if it.orderID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return true, nil
}

func (s *rowStore) order(id string) int {
	for i, h := range s.orders {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (s *rowStore) refs(orderID, productID string) (repository.Refs, int) {
	i := s.order(orderID)
	_, ok := s.products[productID]
	return repository.Refs{Order: i >= 0, Product: ok}, i
}

func (s *rowStore) touch(i int) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if next := s.orders[i].UpdatedAt.Add(time.Microsecond); next.After(now) {
		now = next
	}
	s.orders[i].UpdatedAt = now
}

func (s *rowStore) rows(h repository.OrderHeader) []repository.OrderRow {
	var out []repository.OrderRow
	for _, it := range s.items {
		if it.orderID != h.ID {
			continue
		}
		out = append(out, repository.OrderRow{
			OrderHeader: h,
			Item:        &repository.ItemRow{Product: s.products[it.productID], Quantity: it.quantity},
		})
	}
	if len(out) == 0 {
		out = append(out, repository.OrderRow{OrderHeader: h})
	}
	return out
}
