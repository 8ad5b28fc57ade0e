package services

import (
	"shopnow/internal/models"
	"shopnow/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the matching page of products and the total count.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct applies a partial update to an existing product and returns
// the updated record.
func (s *ProductService) UpdateProduct(id string, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	update.Apply(product)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// Categories returns the distinct category values in the catalog.
func (s *ProductService) Categories() ([]string, error) {
	return s.repo.Categories()
}

// SeedProducts replaces the catalog with the fixed sample set and returns
// the number of products inserted.
func (s *ProductService) SeedProducts() (int, error) {
	samples := SampleProducts()
	if err := s.repo.ReplaceAll(samples); err != nil {
		return 0, err
	}
	return len(samples), nil
}

// EnsureSeeded seeds the catalog with the sample set when it is empty.
// Called once at startup; a non-empty catalog is left alone.
func (s *ProductService) EnsureSeeded() (bool, error) {
	count, err := s.repo.Count()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.SeedProducts(); err != nil {
		return false, err
	}
	return true, nil
}
