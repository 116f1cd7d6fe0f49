package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed schema.sql
var schemaSQL string

var schemaTmpl = template.Must(template.New("schema").Parse(schemaSQL))

// Tables names the schema and tables the stores work against.
type Tables struct {
	Schema  string
	Product string
	Order   string
	Item    string
}

func DefaultTables() Tables {
	return Tables{Schema: "public", Product: "products", Order: "orders", Item: "order_items"}
}

func (t Tables) withDefaults() Tables {
	def := DefaultTables()
	if t.Schema == "" {
		t.Schema = def.Schema
	}
	if t.Product == "" {
		t.Product = def.Product
	}
	if t.Order == "" {
		t.Order = def.Order
	}
	if t.Item == "" {
		t.Item = def.Item
	}
	return t
}

func (t Tables) qt(tbl string) string { return fmt.Sprintf(`"%s"."%s"`, t.Schema, tbl) }

func (t Tables) quoted() Tables {
	return Tables{
		Schema:  fmt.Sprintf(`"%s"`, t.Schema),
		Product: t.qt(t.Product),
		Order:   t.qt(t.Order),
		Item:    t.qt(t.Item),
	}
}

// SchemaSQL renders the DDL for t.
func SchemaSQL(t Tables) (string, error) {
	var b strings.Builder
	if err := schemaTmpl.Execute(&b, t.withDefaults().quoted()); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EnsureSchema creates the schema and tables when they are missing.
func EnsureSchema(ctx context.Context, db DB, t Tables) error {
	ddl, err := SchemaSQL(t)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
