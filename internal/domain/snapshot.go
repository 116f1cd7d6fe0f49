package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is the flat serialized form of a Product.
type ProductSnapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type LineItemSnapshot struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// OrderSnapshot is the serialized form of an Order. TotalPrice is derived
// and ignored when restoring.
type OrderSnapshot struct {
	ID         string             `json:"id"`
	Items      []LineItemSnapshot `json:"items"`
	Status     Status             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

func newProductSnapshot(p *Product) ProductSnapshot {
	return ProductSnapshot{
		ID:        p.id,
		Name:      p.name,
		Price:     p.price,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

func ProductFromSnapshot(s ProductSnapshot) *Product {
	return RestoreProduct(s.ID, s.Name, s.Price, s.CreatedAt, s.UpdatedAt)
}

func newOrderSnapshot(o *Order) OrderSnapshot {
	items := make([]LineItemSnapshot, 0, len(o.items))
	for _, it := range o.items {
		items = append(items, LineItemSnapshot{
			Product:  newProductSnapshot(&it.Product),
			Quantity: it.Quantity,
		})
	}
	return OrderSnapshot{
		ID:         o.id,
		Items:      items,
		Status:     o.status,
		CreatedAt:  o.createdAt,
		UpdatedAt:  o.updatedAt,
		TotalPrice: o.TotalPrice(),
	}
}

func OrderFromSnapshot(s OrderSnapshot) *Order {
	o := RestoreOrder(s.ID, s.Status, s.CreatedAt, s.UpdatedAt)
	for _, it := range s.Items {
		o.AppendItem(*ProductFromSnapshot(it.Product), it.Quantity)
	}
	return o
}

func ProductSnapshots(products []*Product) []ProductSnapshot {
	out := make([]ProductSnapshot, 0, len(products))
	for _, p := range products {
		out = append(out, p.Snapshot())
	}
	return out
}

func OrderSnapshots(orders []*Order) []OrderSnapshot {
	out := make([]OrderSnapshot, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Snapshot())
	}
	return out
}
