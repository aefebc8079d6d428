// internal/service/order_service.go
package service

import (
	"context"
	"fmt"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"
)

// OrderService defines the interface for order-related business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, productIDs []int64) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Order, error)
	AddProducts(ctx context.Context, orderID int64, productIDs []int64) (*domain.Order, error)
	ProductsByOrder(ctx context.Context, orderID int64) ([]domain.Product, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// orderService implements the OrderService interface.
type orderService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// CreateOrder resolves the owning user and the referenced products, then
// persists the order atomically with its associations.
func (s *orderService) CreateOrder(ctx context.Context, userID int64, productIDs []int64) (*domain.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("create order: failed to resolve user %d: %w", userID, err)
	}

	products, err := s.resolveProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	order := domain.NewOrder(*user, products)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// GetOrder retrieves one fully hydrated order.
func (s *orderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListOrders retrieves all orders.
func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

// ListOrdersPage retrieves one page of orders.
func (s *orderService) ListOrdersPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Order, error) {
	return s.orderRepo.FindPage(ctx, pageNumber, pageSize)
}

// AddProducts associates further products with an existing order and returns
// the updated order. Products already associated are skipped.
func (s *orderService) AddProducts(ctx context.Context, orderID int64, productIDs []int64) (*domain.Order, error) {
	if _, err := s.resolveProducts(ctx, productIDs); err != nil {
		return nil, err
	}
	if err := s.orderRepo.AddProducts(ctx, orderID, productIDs); err != nil {
		return nil, fmt.Errorf("add products to order %d: %w", orderID, err)
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("add products: failed to re-fetch order %d: %w", orderID, err)
	}
	return order, nil
}

// ProductsByOrder returns the flat product list for one order.
func (s *orderService) ProductsByOrder(ctx context.Context, orderID int64) ([]domain.Product, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("products by order: failed to check order %d: %w", orderID, err)
	}
	return s.orderRepo.ProductsByOrder(ctx, orderID)
}

// DeleteOrder removes an order.
func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("%w: id %d", util.ErrOrderNotFound, id)
		}
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// resolveProducts looks up every referenced product, surfacing a not-found
// per missing id before any write happens.
func (s *orderService) resolveProducts(ctx context.Context, productIDs []int64) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil, fmt.Errorf("%w: id %d", util.ErrProductNotFound, id)
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", id, err)
		}
		products = append(products, *product)
	}
	return products, nil
}
