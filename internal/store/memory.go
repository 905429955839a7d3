package store

import (
	"context"

	"github.com/shopspring/decimal"

	"category-catalog-service/internal/domain"
)

// MemoryStore serves the built-in catalog. It implements both CategoryStorer and ProductSource.
// The underlying data is built once at package init and never mutated.
type MemoryStore struct {
	categories []domain.Category
	products   []domain.Product
}

// NewMemoryStore creates a MemoryStore over the built-in catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: builtinCategories,
		products:   builtinProducts,
	}
}

// NewMemoryStoreWith creates a MemoryStore over caller-provided data.
// The slices are owned by the store afterwards and must not be modified.
func NewMemoryStoreWith(categories []domain.Category, products []domain.Product) *MemoryStore {
	return &MemoryStore{categories: categories, products: products}
}

// ListCategories returns a copy of the category tree so callers cannot mutate shared state.
func (s *MemoryStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = c
		if c.Subcategories != nil {
			out[i].Subcategories = append([]domain.Subcategory(nil), c.Subcategories...)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), s.products...), nil
}

func ptrTo[T any](v T) *T {
	return &v
}

var builtinCategories = []domain.Category{
	{
		ID:          1,
		Code:        "CAT-COMP",
		Name:        "Computers",
		ParentID:    nil,
		Slug:        "computers",
		Image:       "computer.png",
		Description: "All computer products",
		Subcategories: []domain.Subcategory{
			{
				ID:          2,
				Name:        "Laptops",
				ParentID:    ptrTo(int64(1)),
				Slug:        "laptops",
				Image:       "laptop.png",
				Description: "Laptop computers",
			},
			{
				ID:          3,
				Name:        "Desktops",
				ParentID:    ptrTo(int64(1)),
				Slug:        "desktops",
				Image:       "desktop.png",
				Description: "Desktop computers",
			},
		},
	},
	{
		ID:          4,
		Code:        "CAT-ACC",
		Name:        "Accessories",
		ParentID:    nil,
		Slug:        "accessories",
		Image:       "accessories.png",
		Description: "Computer accessories",
		Subcategories: []domain.Subcategory{
			{
				ID:          5,
				Name:        "Keyboards",
				ParentID:    ptrTo(int64(4)),
				Slug:        "keyboards",
				Image:       "keyboard.png",
				Description: "Computer keyboards",
			},
			{
				ID:          6,
				Name:        "Mice",
				ParentID:    ptrTo(int64(4)),
				Slug:        "mice",
				Image:       "mouse.png",
				Description: "Computer mice",
			},
		},
	},
}

// Products are tagged with subcategory ids only, so listing a top-level id yields an empty page.
var builtinProducts = []domain.Product{
	{ID: 1, Name: "UltraBook Pro 14", Slug: "ultrabook-pro-14", SKU: "LAP-UBP-14", Price: decimal.RequireFromString("1299.99"), Stock: 12, CategoryID: 2, Image: "ultrabook-pro-14.png", Description: "14-inch ultrabook with 16GB RAM"},
	{ID: 2, Name: "UltraBook Air 13", Slug: "ultrabook-air-13", SKU: "LAP-UBA-13", Price: decimal.RequireFromString("999.00"), Stock: 25, CategoryID: 2, Image: "ultrabook-air-13.png", Description: "Lightweight 13-inch laptop"},
	{ID: 3, Name: "Gaming Laptop X17", Slug: "gaming-laptop-x17", SKU: "LAP-GMX-17", Price: decimal.RequireFromString("1899.50"), Stock: 5, CategoryID: 2, Image: "gaming-laptop-x17.png", Description: "17-inch gaming laptop"},
	{ID: 4, Name: "Tower Workstation", Slug: "tower-workstation", SKU: "DSK-TWR-01", Price: decimal.RequireFromString("2199.00"), Stock: 3, CategoryID: 3, Image: "tower-workstation.png", Description: "Workstation for heavy workloads"},
	{ID: 5, Name: "Mechanical Keyboard K1", Slug: "mechanical-keyboard-k1", SKU: "KBD-MEC-K1", Price: decimal.RequireFromString("89.90"), Stock: 40, CategoryID: 5, Image: "mechanical-keyboard-k1.png", Description: "Tenkeyless mechanical keyboard"},
	{ID: 6, Name: "Business Laptop 15", Slug: "business-laptop-15", SKU: "LAP-BIZ-15", Price: decimal.RequireFromString("849.00"), Stock: 18, CategoryID: 2, Image: "business-laptop-15.png", Description: "15-inch business laptop"},
	{ID: 7, Name: "Mini PC", Slug: "mini-pc", SKU: "DSK-MIN-01", Price: decimal.RequireFromString("499.00"), Stock: 30, CategoryID: 3, Image: "mini-pc.png", Description: "Compact desktop computer"},
	{ID: 8, Name: "Wireless Mouse M2", Slug: "wireless-mouse-m2", SKU: "MSE-WRL-M2", Price: decimal.RequireFromString("29.99"), Stock: 75, CategoryID: 6, Image: "wireless-mouse-m2.png", Description: "Ergonomic wireless mouse"},
	{ID: 9, Name: "Chromebook 11", Slug: "chromebook-11", SKU: "LAP-CHR-11", Price: decimal.RequireFromString("279.00"), Stock: 22, CategoryID: 2, Image: "chromebook-11.png", Description: "11-inch Chromebook"},
	{ID: 10, Name: "Wireless Keyboard K2", Slug: "wireless-keyboard-k2", SKU: "KBD-WRL-K2", Price: decimal.RequireFromString("49.50"), Stock: 33, CategoryID: 5, Image: "wireless-keyboard-k2.png", Description: "Slim wireless keyboard"},
	{ID: 11, Name: "Gaming Mouse G5", Slug: "gaming-mouse-g5", SKU: "MSE-GMG-G5", Price: decimal.RequireFromString("59.00"), Stock: 14, CategoryID: 6, Image: "gaming-mouse-g5.png", Description: "High-DPI gaming mouse"},
	{ID: 12, Name: "All-in-One 24", Slug: "all-in-one-24", SKU: "DSK-AIO-24", Price: decimal.RequireFromString("1099.00"), Stock: 7, CategoryID: 3, Image: "all-in-one-24.png", Description: "24-inch all-in-one desktop"},
}
