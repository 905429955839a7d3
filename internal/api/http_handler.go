package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"category-catalog-service/internal/domain"
	"category-catalog-service/internal/service"
)

const (
	defaultPage    = 1
	defaultPerPage = 15

	msgCategoriesRetrieved = "Categories retrieved successfully"
	msgCategoryRetrieved   = "Category retrieved successfully"
	msgProductsRetrieved   = "Products in category retrieved successfully"
	msgCategoryNotFound    = "Category not found"
	msgInvalidCategoryID   = "Invalid category ID"
	msgInternalError       = "Internal server error"
)

// CategoryQuerier is the read API the transport handlers depend on.
// *service.CategoryService satisfies it.
type CategoryQuerier interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategoryProducts(ctx context.Context, categoryID int64, page, perPage int) (*domain.ProductPage, error)
}

// PaginationOptions controls the defaults applied to product listings.
// A MaxPerPage of zero disables the upper bound.
type PaginationOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	categories CategoryQuerier
	pagination PaginationOptions
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(cq CategoryQuerier, opts PaginationOptions, logger *zap.Logger) *HTTPHandler {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = defaultPerPage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		categories: cq,
		pagination: opts,
		validate:   validator.New(),
		logger:     logger,
	}
}

// --- Helpers ---

// Response is the envelope wrapping every successful JSON body. Data is always present.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ErrorResponse is the envelope for failures; it carries no data key.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Success: false, Message: message})
}

func (h *HTTPHandler) respondWithData(w http.ResponseWriter, data interface{}, message string) {
	h.respondWithJSON(w, http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		http.Error(w, `{"success":false,"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("failed to write JSON response", zap.Error(err))
	}
}

// --- Category Handlers ---

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("ListCategories failed", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	h.respondWithData(w, categories, msgCategoriesRetrieved)
}

func (h *HTTPHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "categoryId")
	categoryID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		// A non-numeric id cannot match any category.
		h.respondWithError(w, http.StatusNotFound, msgCategoryNotFound)
		return
	}

	category, err := h.categories.GetCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.respondWithError(w, http.StatusNotFound, msgCategoryNotFound)
			return
		}
		h.logger.Error("GetCategory failed", zap.Int64("category_id", categoryID), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	h.respondWithData(w, category, msgCategoryRetrieved)
}

// PaginationQuery holds the parsed page/per_page query parameters.
// Both values are capped at math.MaxInt32, matching service.MaxPageValue.
type PaginationQuery struct {
	Page    int `validate:"min=1,max=2147483647"`
	PerPage int `validate:"min=1,max=2147483647"`
}

func (h *HTTPHandler) parsePagination(r *http.Request) (PaginationQuery, error) {
	q := PaginationQuery{Page: defaultPage, PerPage: h.pagination.DefaultPerPage}
	values := r.URL.Query()

	if s := values.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			return q, errors.New("page must be an integer")
		}
		q.Page = page
	}
	if s := values.Get("per_page"); s != "" {
		perPage, err := strconv.Atoi(s)
		if err != nil {
			return q, errors.New("per_page must be an integer")
		}
		q.PerPage = perPage
	}

	if err := h.validate.Struct(q); err != nil {
		return q, err
	}
	if h.pagination.MaxPerPage > 0 {
		if err := h.validate.Var(q.PerPage, "max="+strconv.Itoa(h.pagination.MaxPerPage)); err != nil {
			return q, errors.New("per_page must not exceed " + strconv.Itoa(h.pagination.MaxPerPage))
		}
	}
	return q, nil
}

func (h *HTTPHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "categoryId")
	categoryID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, msgInvalidCategoryID)
		return
	}

	q, err := h.parsePagination(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	page, err := h.categories.ListCategoryProducts(r.Context(), categoryID, q.Page, q.PerPage)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}
		h.logger.Error("ListCategoryProducts failed",
			zap.Int64("category_id", categoryID),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
			zap.Error(err),
		)
		h.respondWithError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	h.respondWithData(w, page, msgProductsRetrieved)
}

// --- Route Registration ---

// RegisterRoutes mounts the category routes at the root and under /api.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", h.categoryRoutes)     // GET /categories...
	r.Route("/api/categories", h.categoryRoutes) // GET /api/categories...
}

func (h *HTTPHandler) categoryRoutes(r chi.Router) {
	r.Get("/", h.ListCategories)
	r.Route("/{categoryId}", func(r chi.Router) {
		r.Get("/", h.GetCategory)
		r.Get("/products", h.ListCategoryProducts)
	})
}
