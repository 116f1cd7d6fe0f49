package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TemirB/catalog-orders/internal/domain"
)

//go:generate mockgen -source internal/repository/store.go -destination=internal/repository/store_mock_test.go -package=repository

// ProductStore is the row-level product table.
type ProductStore interface {
	ProductByID(ctx context.Context, id string) (ProductRow, bool, error)
	Products(ctx context.Context) ([]ProductRow, error)
	InsertProduct(ctx context.Context, row ProductRow) error
	// UpdateProduct and DeleteProduct report whether a row was affected.
	UpdateProduct(ctx context.Context, row ProductRow) (bool, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
}

// OrderStore is the row-level view over orders and their line items.
// Reads return one row per line item, plus one item-less row for an order
// without items, in line item insertion order.
type OrderStore interface {
	OrderRows(ctx context.Context, id string) ([]OrderRow, error)
	AllOrderRows(ctx context.Context) ([]OrderRow, error)
	// InsertOrder writes the header and items atomically.
	InsertOrder(ctx context.Context, header OrderHeader, items []ItemRow) error
	UpdateOrderStatus(ctx context.Context, id, status string) (bool, error)
	AddOrderItem(ctx context.Context, orderID, productID string, quantity int) (Refs, error)
	RemoveOrderItems(ctx context.Context, orderID, productID string) (Refs, error)
	DeleteOrder(ctx context.Context, id string) (bool, error)
}

// Refs tells which of the referenced rows existed when an item was changed.
// Nothing is written unless both did.
type Refs struct {
	Order   bool
	Product bool
}

type ProductRow struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderHeader struct {
	ID        string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ItemRow struct {
	Product  ProductRow
	Quantity int
}

// OrderRow is one row of the orders/items/products join. Item is nil for an
// order with no line items.
type OrderRow struct {
	OrderHeader
	Item *ItemRow
}

func productRow(p *domain.Product) ProductRow {
	return ProductRow{
		ID:        p.ID(),
		Name:      p.Name(),
		Price:     p.Price(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func (r ProductRow) product() *domain.Product {
	return domain.RestoreProduct(r.ID, r.Name, r.Price, r.CreatedAt, r.UpdatedAt)
}

func orderRecord(o *domain.Order) (OrderHeader, []ItemRow) {
	header := OrderHeader{
		ID:        o.ID(),
		Status:    string(o.Status()),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
	src := o.Items()
	items := make([]ItemRow, 0, len(src))
	for _, it := range src {
		items = append(items, ItemRow{Product: productRow(&it.Product), Quantity: it.Quantity})
	}
	return header, items
}

// foldOrders rebuilds aggregates from joined rows. Orders keep the position
// of their first row; items keep row order.
func foldOrders(rows []OrderRow) []*domain.Order {
	index := make(map[string]*domain.Order, len(rows))
	orders := make([]*domain.Order, 0)
	for _, row := range rows {
		o, ok := index[row.ID]
		if !ok {
			o = domain.RestoreOrder(row.ID, domain.Status(row.Status), row.CreatedAt, row.UpdatedAt)
			index[row.ID] = o
			orders = append(orders, o)
		}
		if row.Item != nil {
			o.AppendItem(*row.Item.Product.product(), row.Item.Quantity)
		}
	}
	return orders
}
