// internal/api/handler/product.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"productstore/internal/api/types"
	"productstore/internal/domain"
	"productstore/internal/service"
	"productstore/internal/util"
)

// ProductHandler handles HTTP requests related to products.
type ProductHandler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// ProductRequest represents the request body for product creation and update.
type ProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Name == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req.Name, req.Price)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusCreated, product)
}

// List handles GET /products, optionally paginated.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, paged, err := pageParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if !paged {
		products, err := h.service.ListProducts(r.Context())
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		respondWithJSON(h.logger, w, http.StatusOK, products)
		return
	}

	products, err := h.service.ListProductsPage(r.Context(), page, size)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Product]{
		Data: products,
		Page: page,
		Size: size,
	})
}

// Get handles GET /products/{productID}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, product)
}

// GetWithOrders handles GET /products/{productID}/orders.
func (h *ProductHandler) GetWithOrders(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	product, err := h.service.GetProductWithOrders(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, product)
}

// Update handles PUT /products/{productID}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, req.Name, req.Price)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, product)
}

// Delete handles DELETE /products/{productID}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
