package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"category-catalog-service/internal/domain"
	"category-catalog-service/internal/store"
)

// MockProductSource is a mock implementation of store.ProductSource
type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func productsFor(categoryID int64, n int, startID int64) []domain.Product {
	out := make([]domain.Product, n)
	for i := 0; i < n; i++ {
		id := startID + int64(i)
		out[i] = domain.Product{ID: id, Name: fmt.Sprintf("Product %d", id), CategoryID: categoryID}
	}
	return out
}

func newBuiltinService() *CategoryService {
	mem := store.NewMemoryStore()
	return NewCategoryService(mem, mem, nil)
}

func TestCategoryService_ListCategories(t *testing.T) {
	svc := newBuiltinService()

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Computers", categories[0].Name)
	assert.Equal(t, "Accessories", categories[1].Name)
}

func TestCategoryService_GetCategory_TopLevel(t *testing.T) {
	svc := newBuiltinService()

	for _, id := range []int64{1, 4} {
		category, err := svc.GetCategory(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, id, category.ID)
	}
}

func TestCategoryService_GetCategory_NotFound(t *testing.T) {
	svc := newBuiltinService()

	// Subcategory ids are not searched.
	for _, id := range []int64{0, 2, 3, 5, 6, 7, 999, -1} {
		category, err := svc.GetCategory(context.Background(), id)
		assert.Nil(t, category, "id %d", id)
		assert.True(t, errors.Is(err, ErrNotFound), "id %d should be ErrNotFound, got %v", id, err)
	}
}

func TestCategoryService_ListCategoryProducts_UnknownCategory(t *testing.T) {
	svc := newBuiltinService()

	page, err := svc.ListCategoryProducts(context.Background(), 999, 1, 15)
	require.NoError(t, err)

	assert.Equal(t, &domain.ProductPage{
		CurrentPage: 1,
		Data:        []domain.Product{},
		From:        1,
		LastPage:    0,
		PerPage:     15,
		To:          0,
		Total:       0,
	}, page)
}

func TestCategoryService_ListCategoryProducts_PageBeyondLast(t *testing.T) {
	source := new(MockProductSource)
	source.On("ListProducts", mock.Anything).Return(productsFor(7, 5, 1), nil)
	svc := NewCategoryService(store.NewMemoryStore(), source, nil)

	page, err := svc.ListCategoryProducts(context.Background(), 7, 2, 15)
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
	assert.Equal(t, 16, page.From)
	assert.Equal(t, 5, page.To)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 1, page.LastPage)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 15, page.PerPage)

	source.AssertExpectations(t)
}

func TestCategoryService_ListCategoryProducts_FiltersAndPreservesOrder(t *testing.T) {
	mixed := []domain.Product{
		{ID: 10, CategoryID: 2},
		{ID: 3, CategoryID: 5},
		{ID: 7, CategoryID: 2},
		{ID: 1, CategoryID: 2},
		{ID: 4, CategoryID: 6},
		{ID: 2, CategoryID: 2},
	}
	source := new(MockProductSource)
	source.On("ListProducts", mock.Anything).Return(mixed, nil)
	svc := NewCategoryService(store.NewMemoryStore(), source, nil)

	first, err := svc.ListCategoryProducts(context.Background(), 2, 1, 3)
	require.NoError(t, err)
	require.Len(t, first.Data, 3)
	assert.Equal(t, []int64{10, 7, 1}, productIDs(first.Data))
	assert.Equal(t, 4, first.Total)
	assert.Equal(t, 2, first.LastPage)
	assert.Equal(t, 1, first.From)
	assert.Equal(t, 3, first.To)

	second, err := svc.ListCategoryProducts(context.Background(), 2, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, productIDs(second.Data))
	assert.Equal(t, 4, second.From)
	assert.Equal(t, 4, second.To)
}

func TestCategoryService_ListCategoryProducts_WindowProperties(t *testing.T) {
	source := new(MockProductSource)
	products := append(productsFor(2, 23, 1), productsFor(3, 4, 100)...)
	source.On("ListProducts", mock.Anything).Return(products, nil)
	svc := NewCategoryService(store.NewMemoryStore(), source, nil)

	for perPage := 1; perPage <= 25; perPage++ {
		for page := 1; page <= 25; page++ {
			result, err := svc.ListCategoryProducts(context.Background(), 2, page, perPage)
			require.NoError(t, err)

			assert.Equal(t, 23, result.Total)
			assert.LessOrEqual(t, len(result.Data), perPage)
			assert.Equal(t, (23+perPage-1)/perPage, result.LastPage)
			assert.Equal(t, (page-1)*perPage+1, result.From)
			assert.Equal(t, min(page*perPage, 23), result.To)

			// Data is the contiguous slice starting at the page offset.
			for i, p := range result.Data {
				assert.Equal(t, int64((page-1)*perPage+i+1), p.ID)
			}
		}
	}
}

func TestCategoryService_ListCategoryProducts_Idempotent(t *testing.T) {
	svc := newBuiltinService()

	first, err := svc.ListCategoryProducts(context.Background(), 2, 1, 2)
	require.NoError(t, err)
	second, err := svc.ListCategoryProducts(context.Background(), 2, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCategoryService_ListCategoryProducts_TopLevelIDHasNoProducts(t *testing.T) {
	svc := newBuiltinService()

	page, err := svc.ListCategoryProducts(context.Background(), 1, 1, 15)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Data)
}

func TestCategoryService_ListCategoryProducts_InvalidArguments(t *testing.T) {
	source := new(MockProductSource)
	svc := NewCategoryService(store.NewMemoryStore(), source, nil)

	tests := []struct {
		name          string
		page, perPage int
	}{
		{"zero per page", 1, 0},
		{"negative per page", 1, -5},
		{"zero page", 0, 15},
		{"negative page", -1, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListCategoryProducts(context.Background(), 2, tt.page, tt.perPage)
			assert.Nil(t, page)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
		})
	}
	source.AssertNotCalled(t, "ListProducts", mock.Anything)
}

func TestCategoryService_ListCategoryProducts_SourceError(t *testing.T) {
	source := new(MockProductSource)
	source.On("ListProducts", mock.Anything).Return(nil, store.ErrProductSource).Once()
	svc := NewCategoryService(store.NewMemoryStore(), source, nil)

	page, err := svc.ListCategoryProducts(context.Background(), 2, 1, 15)
	assert.Nil(t, page)
	assert.True(t, errors.Is(err, store.ErrProductSource))
	assert.False(t, errors.Is(err, ErrNotFound))

	source.AssertExpectations(t)
}

func TestCategoryService_ListCategoryProducts_HugePageRejected(t *testing.T) {
	source := new(MockProductSource)
	svc := NewCategoryService(store.NewMemoryStore(), source, nil)

	for _, tt := range []struct{ page, perPage int }{
		{1 << 62, 4},
		{1, 1 << 62},
		{MaxPageValue + 1, 1},
	} {
		result, err := svc.ListCategoryProducts(context.Background(), 2, tt.page, tt.perPage)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "page=%d per_page=%d: got %v", tt.page, tt.perPage, err)
	}
	source.AssertNotCalled(t, "ListProducts", mock.Anything)
}

func TestCategoryService_ListCategoryProducts_MaxPageValues(t *testing.T) {
	svc := newBuiltinService()

	result, err := svc.ListCategoryProducts(context.Background(), 2, MaxPageValue, MaxPageValue)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, int64(MaxPageValue-1)*int64(MaxPageValue)+1, int64(result.From))
	assert.Equal(t, 5, result.To)
	assert.Equal(t, 1, result.LastPage)
}

func TestPaginate_LargePageDoesNotPanic(t *testing.T) {
	items := productsFor(2, 5, 1)

	require.NotPanics(t, func() {
		page := Paginate(items, 1<<62, 4)
		assert.Empty(t, page.Data)
		assert.Equal(t, 2, page.LastPage)
		assert.Equal(t, 5, page.Total)
	})
	require.NotPanics(t, func() {
		page := Paginate(items, 1, 1<<62)
		assert.Len(t, page.Data, 5)
		assert.Equal(t, 1, page.LastPage)
		assert.Equal(t, 5, page.To)
	})
}

func TestPaginate_LastPartialPage(t *testing.T) {
	page := Paginate(productsFor(2, 7, 1), 3, 3)
	assert.Equal(t, []int64{7}, productIDs(page.Data))
	assert.Equal(t, 7, page.From)
	assert.Equal(t, 7, page.To)
	assert.Equal(t, 3, page.LastPage)
}

func TestPaginate_EmptyInput(t *testing.T) {
	page := Paginate(nil, 3, 10)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.LastPage)
	assert.Equal(t, 21, page.From)
	assert.Equal(t, 0, page.To)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
