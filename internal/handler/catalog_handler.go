package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/model"
	"github.com/atik94/mobile-resale-market-server/internal/repository"

	"github.com/google/uuid"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	Category(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) (model.InsertResult, error)
	CreateProduct(ctx context.Context, p *model.Product) (model.InsertResult, error)
	ListProducts(ctx context.Context, categoryName string) ([]model.Product, error)
	Product(ctx context.Context, id uuid.UUID) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (model.DeleteResult, error)
}

type CatalogHandler struct {
	svc CatalogService
	log *slog.Logger
}

func NewCatalogHandler(svc CatalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory answers null rather than 404 for an unknown id.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Category(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.CreateCategory(r.Context(), &model.Category{Name: req.Name})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := decodeJSON(r, &p); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.CreateProduct(r.Context(), &p)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListProducts serves GET /products[?category_name=].
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context(), r.URL.Query().Get("category_name"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.DeleteProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
