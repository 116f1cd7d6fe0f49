package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Its price is never negative.
type Product struct {
	id        string
	name      string
	price     decimal.Decimal
	createdAt time.Time
	updatedAt time.Time
}

func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	t := now()
	return &Product{
		id:        uuid.NewString(),
		name:      name,
		price:     price,
		createdAt: t,
		updatedAt: t,
	}, nil
}

// RestoreProduct rebuilds a product from persisted state without validation.
func RestoreProduct(id, name string, price decimal.Decimal, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:        id,
		name:      name,
		price:     price,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
	}
}

func (p *Product) ID() string { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
func (p *Product) Snapshot() ProductSnapshot { return newProductSnapshot(p) }

// Clone returns an independent copy.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

func (p *Product) ChangeName(name string) {
	p.name = name
	p.updatedAt = touch(p.updatedAt)
}

// ChangePrice rejects negative prices and leaves the product untouched in that case.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.price = price
	p.updatedAt = touch(p.updatedAt)
	return nil
}
