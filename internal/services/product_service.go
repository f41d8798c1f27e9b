package services

import (
	"fmt"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/validation"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validation.Validator
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validation.New(),
	}
}

// ListProducts retrieves one page of products.
func (s *ProductService) ListProducts(page, perPage int) (*models.Page[models.Product], error) {
	return s.repo.List(page, perPage)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct normalizes draft and stores it as a new product. An invalid
// draft yields a *validation.ValidationError and nothing is stored.
func (s *ProductService) CreateProduct(draft validation.ProductDraft) (*models.Product, error) {
	product, err := s.validate.Product(draft)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}
	return &product, nil
}

// UpdateProduct replaces product id with the normalized draft, details included.
func (s *ProductService) UpdateProduct(id string, draft validation.ProductDraft) (*models.Product, error) {
	product, err := s.validate.Product(draft)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.repo.Update(&product); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
