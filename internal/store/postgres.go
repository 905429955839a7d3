package store

import (
	"context"
	"database/sql"
	"fmt"

	"category-catalog-service/internal/domain"
)

// PostgresStore is a read-only ProductSource backed by an existing products table.
// Categories are never read from the database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const listProductsQuery = `
		SELECT id, name, slug, sku, price, stock, category_id, COALESCE(image, ''), COALESCE(description, '')
		FROM products.products
		ORDER BY id ASC;
	`

// ListProducts returns every product ordered by id, so the sequence is stable across calls.
func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts failed to query products: %w", ErrProductSource, err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Price, &p.Stock,
			&p.CategoryID, &p.Image, &p.Description,
		); err != nil {
			return nil, fmt.Errorf("%w: ListProducts failed to scan product row: %w", ErrProductSource, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProducts iteration error: %w", ErrProductSource, err)
	}
	return products, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
