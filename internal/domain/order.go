package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// LineItem pairs a product value with a positive quantity.
type LineItem struct {
	Product  Product
	Quantity int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is a purchase aggregate. Line items for the same product are kept
// as separate entries.
type Order struct {
	id        string
	items     []LineItem
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewOrder() *Order {
	t := now()
	return &Order{
		id:        uuid.NewString(),
		status:    StatusPending,
		createdAt: t,
		updatedAt: t,
	}
}

// RestoreOrder rebuilds an order shell from persisted state. Items are
// appended afterwards with AppendItem.
func RestoreOrder(id string, status Status, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:        id,
		status:    status,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
	}
}

func (o *Order) ID() string           { return o.id }
func (o *Order) Status() Status       { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (o *Order) SetStatus(s Status) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	o.status = s
	o.updatedAt = touch(o.updatedAt)
	return nil
}

func (o *Order) AddProduct(p Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	o.items = append(o.items, LineItem{Product: p, Quantity: quantity})
	o.updatedAt = touch(o.updatedAt)
	return nil
}

// RemoveProduct drops every line item that references productID.
func (o *Order) RemoveProduct(productID string) {
	kept := o.items[:0]
	for _, it := range o.items {
		if it.Product.ID() != productID {
			kept = append(kept, it)
		}
	}
	clear(o.items[len(kept):])
	o.items = kept
	o.updatedAt = touch(o.updatedAt)
}

// AppendItem adds a line item during rehydration without touching updatedAt.
func (o *Order) AppendItem(p Product, quantity int) {
	o.items = append(o.items, LineItem{Product: p, Quantity: quantity})
}

func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	return &c
}

func (o *Order) Snapshot() OrderSnapshot { return newOrderSnapshot(o) }
