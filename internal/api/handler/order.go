// internal/api/handler/order.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"productstore/internal/api/types"
	"productstore/internal/domain"
	"productstore/internal/service"
	"productstore/internal/util"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	service service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// CreateOrderRequest represents the request body for order creation.
type CreateOrderRequest struct {
	UserID     int64   `json:"user_id"`
	ProductIDs []int64 `json:"product_ids"`
}

// AddProductsRequest represents the request body for adding products to an
// existing order.
type AddProductsRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.UserID == 0 {
		respondWithError(h.logger, w, util.ErrUserRequired)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusCreated, order)
}

// List handles GET /orders, optionally paginated.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, paged, err := pageParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if !paged {
		orders, err := h.service.ListOrders(r.Context())
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		respondWithJSON(h.logger, w, http.StatusOK, orders)
		return
	}

	orders, err := h.service.ListOrdersPage(r.Context(), page, size)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Order]{
		Data: orders,
		Page: page,
		Size: size,
	})
}

// Get handles GET /orders/{orderID}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "orderID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, order)
}

// AddProducts handles POST /orders/{orderID}/products.
func (h *OrderHandler) AddProducts(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "orderID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	var req AddProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	order, err := h.service.AddProducts(r.Context(), id, req.ProductIDs)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, order)
}

// Products handles GET /orders/{orderID}/products.
func (h *OrderHandler) Products(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "orderID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	products, err := h.service.ProductsByOrder(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, products)
}

// Delete handles DELETE /orders/{orderID}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "orderID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
