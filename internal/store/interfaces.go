package store

import (
	"context"
	"errors"

	"category-catalog-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductSource = errors.New("store: product source unavailable")
)

// CategoryStorer provides read access to the category tree.
type CategoryStorer interface {
	// ListCategories returns all top-level categories in insertion order.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ProductSource supplies the full, ordered product sequence.
// Implementations must not reorder products between calls.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Pinger is implemented by sources that depend on an external resource.
type Pinger interface {
	Ping(ctx context.Context) error
}
