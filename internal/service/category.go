package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"category-catalog-service/internal/domain"
	"category-catalog-service/internal/store"
)

// MaxPageValue bounds page and per_page so the from/to arithmetic fits in 64 bits.
const MaxPageValue = math.MaxInt32

var (
	ErrNotFound        = errors.New("service: category not found")
	ErrInvalidArgument = errors.New("service: invalid argument")
)

// CategoryService answers catalog queries over a CategoryStorer and a ProductSource.
// It holds no mutable state and is safe for concurrent use.
type CategoryService struct {
	categories store.CategoryStorer
	products   store.ProductSource
	logger     *zap.Logger
}

// NewCategoryService creates a CategoryService. A nil logger is replaced with a no-op logger.
func NewCategoryService(cs store.CategoryStorer, ps store.ProductSource, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categories: cs,
		products:   ps,
		logger:     logger,
	}
}

// ListCategories returns every top-level category in insertion order.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: ListCategories: %w", err)
	}
	return categories, nil
}

// GetCategory returns the top-level category with the given id.
// Subcategory ids are not searched and yield ErrNotFound.
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: GetCategory: %w", err)
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	s.logger.Debug("category lookup missed", zap.Int64("category_id", id))
	return nil, ErrNotFound
}

// ListCategoryProducts returns one page of the products tagged with categoryID.
// An unknown category id is not an error; it produces an empty page.
func (s *CategoryService) ListCategoryProducts(ctx context.Context, categoryID int64, page, perPage int) (*domain.ProductPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}
	if perPage < 1 {
		return nil, fmt.Errorf("%w: per_page must be at least 1, got %d", ErrInvalidArgument, perPage)
	}
	if page > MaxPageValue || perPage > MaxPageValue {
		return nil, fmt.Errorf("%w: page and per_page must not exceed %d", ErrInvalidArgument, MaxPageValue)
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: ListCategoryProducts: %w", err)
	}

	filtered := make([]domain.Product, 0)
	for _, p := range products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}

	result := Paginate(filtered, page, perPage)
	s.logger.Debug("category products paginated",
		zap.Int64("category_id", categoryID),
		zap.Int("page", page),
		zap.Int("per_page", perPage),
		zap.Int("total", result.Total),
	)
	return result, nil
}

// Paginate windows items into a ProductPage. page and perPage must be between 1 and MaxPageValue.
// From and To are reported unclamped: a page past the last one has From > Total and empty Data.
func Paginate(items []domain.Product, page, perPage int) *domain.ProductPage {
	total := len(items)
	lastPage := 0
	if total > 0 {
		lastPage = (total-1)/perPage + 1
	}

	window := []domain.Product{}
	if page <= lastPage {
		// page-1 < lastPage keeps offset below total.
		offset := (page - 1) * perPage
		window = items[offset : offset+min(perPage, total-offset)]
	}

	from := int64(page-1)*int64(perPage) + 1
	to := min(int64(page)*int64(perPage), int64(total))

	return &domain.ProductPage{
		CurrentPage: page,
		Data:        window,
		From:        int(from),
		LastPage:    lastPage,
		PerPage:     perPage,
		To:          int(to),
		Total:       total,
	}
}
