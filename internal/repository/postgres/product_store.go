package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TemirB/catalog-orders/internal/repository"
)

type ProductStore struct {
	db     DB
	tables Tables
}

var _ repository.ProductStore = (*ProductStore)(nil)

func NewProductStore(db DB, t Tables) *ProductStore {
	return &ProductStore{db: db, tables: t.withDefaults()}
}

func (s *ProductStore) ProductByID(ctx context.Context, id string) (repository.ProductRow, bool, error) {
	var row repository.ProductRow
	err := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, name, price, created_at, updated_at
		FROM %s WHERE id=$1
	`, s.tables.qt(s.tables.Product)), id).Scan(
		&row.ID, &row.Name, &row.Price, &row.CreatedAt, &row.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ProductRow{}, false, nil
	}
	if err != nil {
		return repository.ProductRow{}, false, err
	}
	return utcProduct(row), true, nil
}

func (s *ProductStore) Products(ctx context.Context) ([]repository.ProductRow, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT id, name, price, created_at, updated_at
		FROM %s ORDER BY created_at, id
	`, s.tables.qt(s.tables.Product)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.ProductRow
	for rows.Next() {
		var row repository.ProductRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Price, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, utcProduct(row))
	}
	return out, rows.Err()
}

func (s *ProductStore) InsertProduct(ctx context.Context, row repository.ProductRow) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, name, price, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, s.tables.qt(s.tables.Product)),
		row.ID, row.Name, row.Price, row.CreatedAt, row.UpdatedAt,
	)
	return err
}

func (s *ProductStore) UpdateProduct(ctx context.Context, row repository.ProductRow) (bool, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET name=$2, price=$3, updated_at=$4
		WHERE id=$1
	`, s.tables.qt(s.tables.Product)),
		row.ID, row.Name, row.Price, row.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, s.tables.qt(s.tables.Product)), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func utcProduct(row repository.ProductRow) repository.ProductRow {
	row.CreatedAt = row.CreatedAt.UTC()
	row.UpdatedAt = row.UpdatedAt.UTC()
	return row
}
