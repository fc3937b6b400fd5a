package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// ProductCatalog is the slice of the product API client the handlers use.
type ProductCatalog interface {
	All(ctx context.Context) ([]domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Featured(ctx context.Context) ([]domain.Product, error)
	ByID(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog ProductCatalog
}

func NewProductHandler(catalog ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		products []domain.Product
		err      error
	)
	switch {
	case q.Get("featured") == "true":
		products, err = h.catalog.Featured(ctx)
	case q.Get("category") != "":
		products, err = h.catalog.ByCategory(ctx, q.Get("category"))
	case q.Get("search") != "":
		products, err = h.catalog.Search(ctx, q.Get("search"))
	default:
		products, err = h.catalog.All(ctx)
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": products})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.ByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": product})
}
