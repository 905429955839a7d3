package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a record supplied by a ProductSource.
// The catalog only interprets CategoryID; the remaining fields are passed through to clients.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"` // Serialized as a JSON string to keep precision
	Stock       int32           `json:"stock"`
	CategoryID  int64           `json:"category_id"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// ProductPage is the pagination envelope returned for windowed product listings.
// From and To are reported as computed from the requested page and are not clamped
// to the data actually present, so a page past LastPage has From > Total.
type ProductPage struct {
	CurrentPage int       `json:"current_page"`
	Data        []Product `json:"data"`
	From        int       `json:"from"`
	LastPage    int       `json:"last_page"`
	PerPage     int       `json:"per_page"`
	To          int       `json:"to"`
	Total       int       `json:"total"`
}
