package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/TemirB/catalog-orders/internal/repository"
)

type OrderStore struct {
	db     DB
	tables Tables
}

var _ repository.OrderStore = (*OrderStore)(nil)

func NewOrderStore(db DB, t Tables) *OrderStore {
	return &OrderStore{db: db, tables: t.withDefaults()}
}

func (s *OrderStore) joined(where string) string {
	return fmt.Sprintf(`
		SELECT o.id, o.status, o.created_at, o.updated_at,
		       i.quantity, p.id, p.name, p.price, p.created_at, p.updated_at
		FROM %s o
		LEFT JOIN %s i ON i.order_id = o.id
		LEFT JOIN %s p ON p.id = i.product_id
		%s
	`, s.tables.qt(s.tables.Order), s.tables.qt(s.tables.Item), s.tables.qt(s.tables.Product), where)
}

func (s *OrderStore) OrderRows(ctx context.Context, id string) ([]repository.OrderRow, error) {
	return s.query(ctx, s.joined(`WHERE o.id=$1 ORDER BY i.seq`), id)
}

func (s *OrderStore) AllOrderRows(ctx context.Context) ([]repository.OrderRow, error) {
	return s.query(ctx, s.joined(`ORDER BY o.created_at, o.id, i.seq`))
}

func (s *OrderStore) query(ctx context.Context, q string, args ...any) ([]repository.OrderRow, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.OrderRow
	for rows.Next() {
		var (
			row        repository.OrderRow
			quantity   sql.NullInt32
			productID  sql.NullString
			name       sql.NullString
			price      decimal.NullDecimal
			pCreatedAt sql.NullTime
			pUpdatedAt sql.NullTime
		)
		if err := rows.Scan(
			&row.ID, &row.Status, &row.CreatedAt, &row.UpdatedAt,
			&quantity, &productID, &name, &price, &pCreatedAt, &pUpdatedAt,
		); err != nil {
			return nil, err
		}
		row.CreatedAt = row.CreatedAt.UTC()
		row.UpdatedAt = row.UpdatedAt.UTC()
		if productID.Valid {
			row.Item = &repository.ItemRow{
				Product: repository.ProductRow{
					ID:        productID.String,
					Name:      name.String,
					Price:     price.Decimal,
					CreatedAt: pCreatedAt.Time.UTC(),
					UpdatedAt: pUpdatedAt.Time.UTC(),
				},
				Quantity: int(quantity.Int32),
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *OrderStore) InsertOrder(ctx context.Context, h repository.OrderHeader, items []repository.ItemRow) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, status, created_at, updated_at)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO NOTHING
		`, s.tables.qt(s.tables.Order)),
			h.ID, h.Status, h.CreatedAt, h.UpdatedAt,
		)
		if err != nil {
			return err
		}
		// already stored by an earlier attempt with the same id
		if tag.RowsAffected() == 0 {
			return nil
		}

		for _, it := range items {
			if _, err := tx.Exec(ctx, s.insertItem(),
				uuid.NewString(), h.ID, it.Product.ID, it.Quantity,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *OrderStore) insertItem() string {
	return fmt.Sprintf(`
		INSERT INTO %s (id, order_id, product_id, quantity)
		VALUES ($1,$2,$3,$4)
	`, s.tables.qt(s.tables.Item))
}

func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET status=$2,
		  updated_at=GREATEST(date_trunc('microseconds', now()), updated_at + interval '1 microsecond')
		WHERE id=$1
	`, s.tables.qt(s.tables.Order)), id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// touchOrder moves updated_at strictly forward at microsecond precision.
func (s *OrderStore) touchOrder() string {
	return fmt.Sprintf(`
		UPDATE %s SET
		  updated_at=GREATEST(date_trunc('microseconds', now()), updated_at + interval '1 microsecond')
		WHERE id=$1
	`, s.tables.qt(s.tables.Order))
}

func (s *OrderStore) refs(ctx context.Context, tx pgx.Tx, orderID, productID string) (repository.Refs, error) {
	var refs repository.Refs
	err := tx.QueryRow(ctx, fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE id=$1), EXISTS(SELECT 1 FROM %s WHERE id=$2)
	`, s.tables.qt(s.tables.Order), s.tables.qt(s.tables.Product)), orderID, productID).Scan(&refs.Order, &refs.Product)
	return refs, err
}

// changeItems checks both references, applies write and bumps the order's
// updated_at in one transaction. Nothing is written when a reference is
// missing.
func (s *OrderStore) changeItems(ctx context.Context, orderID, productID string, write func(tx pgx.Tx) error) (repository.Refs, error) {
	var refs repository.Refs
	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		if refs, err = s.refs(ctx, tx, orderID, productID); err != nil {
			return err
		}
		if !refs.Order || !refs.Product {
			return nil
		}
		if err := write(tx); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, s.touchOrder(), orderID)
		return err
	})
	return refs, err
}

func (s *OrderStore) AddOrderItem(ctx context.Context, orderID, productID string, quantity int) (repository.Refs, error) {
	return s.changeItems(ctx, orderID, productID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, s.insertItem(), uuid.NewString(), orderID, productID, quantity)
		return err
	})
}

func (s *OrderStore) RemoveOrderItems(ctx context.Context, orderID, productID string) (repository.Refs, error) {
	return s.changeItems(ctx, orderID, productID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			DELETE FROM %s WHERE order_id=$1 AND product_id=$2
		`, s.tables.qt(s.tables.Item)), orderID, productID)
		return err
	})
}

func (s *OrderStore) DeleteOrder(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, s.tables.qt(s.tables.Order)), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
