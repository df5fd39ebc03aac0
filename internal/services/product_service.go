package services

import (
	"context"
	"fmt"
	"strings"

	"stock-backend/internal/cache"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

type ProductService struct {
	Store *repositories.Store
	Cache *cache.Cache
}

func NewProductService(store *repositories.Store, c *cache.Cache) *ProductService {
	return &ProductService{Store: store, Cache: c}
}

func productFromRequest(req *models.ProductRequest) *models.Product {
	return &models.Product{
		Name:           strings.TrimSpace(req.Name),
		Rack:           strings.TrimSpace(req.Rack),
		WeightPerPiece: req.WeightPerPiece,
		Measurement:    strings.TrimSpace(req.Measurement),
		Temp1:          req.Temp1,
		Temp2:          req.Temp2,
		Temp3:          req.Temp3,
		Remark:         req.Remark,
		OpeningStock:   req.OpeningStock,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	product := productFromRequest(req)
	if product.Name == "" {
		return nil, invalid("product name is required")
	}

	if err := s.Store.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.Cache.InvalidateStock(ctx)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Store.Products.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.Store.Products.List(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *models.ProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	product := productFromRequest(req)
	if product.Name == "" {
		return nil, invalid("product name is required")
	}
	product.ID = id

	if err := s.Store.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.Cache.InvalidateStock(ctx)
	return product, nil
}

// DeleteProduct refuses while any inward or outward entry points at the product
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if _, err := s.Store.Products.Get(ctx, id); err != nil {
		return err
	}

	for _, direction := range []models.Direction{models.DirectionInward, models.DirectionOutward} {
		n, err := s.Store.Entries(direction).CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return referenced("product", id, n, string(direction)+" entries")
		}
	}

	removed, err := s.Store.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("delete product %d: %w", id, models.ErrNotFound)
	}
	s.Cache.InvalidateStock(ctx)
	return nil
}

// ProductName resolves an id for display. Missing products read "Unknown Product".
func (s *ProductService) ProductName(ctx context.Context, id int) string {
	p, err := s.Store.Products.Get(ctx, id)
	if err != nil {
		return UnknownProduct
	}
	return p.Name
}
