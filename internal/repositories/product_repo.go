package repositories

import (
	"tokoadmin/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(page, perPage int) (*models.Page[models.Product], error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// MissingDetails returns the ids among detailIDs that match no product detail.
	MissingDetails(detailIDs []string) ([]string, error)
}
