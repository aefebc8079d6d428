// internal/service/product_service.go
package service

import (
	"context"
	"fmt"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"

	"github.com/shopspring/decimal"
)

// ProductService defines the interface for product-related business logic.
type ProductService interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductWithOrders(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, name string, price decimal.Decimal) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService.
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, name string, price decimal.Decimal) (*domain.Product, error) {
	product := domain.NewProduct(name, price)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductWithOrders(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindWithOrdersByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("get product with orders: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productService) ListProductsPage(ctx context.Context, pageNumber, pageSize int) ([]domain.Product, error) {
	return s.productRepo.FindPage(ctx, pageNumber, pageSize)
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, name string, price decimal.Decimal) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ApplyUpdate(name, price)
	if err := s.productRepo.Update(ctx, product); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("%w: id %d", util.ErrProductNotFound, id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
