package domain

// Category is a top-level catalog grouping node.
// The json tags are part of the public wire format and must stay snake_case.
type Category struct {
	ID            int64         `json:"id"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	ParentID      *int64        `json:"parent_id"` // Always emitted; null for top-level categories
	Slug          string        `json:"slug"`
	Image         string        `json:"image"`
	Description   string        `json:"description"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is a category nested one level under a top-level Category.
// It carries no code and no further nesting.
type Subcategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ParentID    *int64 `json:"parent_id"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
}
