package repositories

import (
	"errors"
	"fmt"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves one page of products ordered by name.
func (r *GORMProductRepository) List(page, perPage int) (*models.Page[models.Product], error) {
	page, perPage = pageBounds(page, perPage)

	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	if err := r.db.Scopes(paginate(page, perPage)).Preload("Details").Order("name ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return &models.Page[models.Product]{
		Data:     products,
		PageMeta: models.NewPageMeta(page, perPage, total, len(products)),
	}, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Details").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product and its unit details in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Details {
		if product.Details[i].ID == "" {
			product.Details[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the product fields and, when details are given, replaces them.
func (r *GORMProductRepository) Update(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"image":       product.Image,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s %w", product.ID, ErrNotFound)
		}
		if len(product.Details) == 0 {
			return nil
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductDetail{}).Error; err != nil {
			return fmt.Errorf("failed to clear product details: %w", err)
		}
		for i := range product.Details {
			product.Details[i].ProductID = product.ID
			if product.Details[i].ID == "" {
				product.Details[i].ID = uuid.New().String()
			}
		}
		if err := tx.Create(&product.Details).Error; err != nil {
			return fmt.Errorf("failed to save product details: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s %w", id, ErrNotFound)
	}
	return nil
}

// MissingDetails reports which detail ids do not exist.
func (r *GORMProductRepository) MissingDetails(detailIDs []string) ([]string, error) {
	if len(detailIDs) == 0 {
		return nil, nil
	}
	var found []string
	if err := r.db.Model(&models.ProductDetail{}).Where("id IN ?", detailIDs).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to look up product details: %w", err)
	}

	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	var missing []string
	for _, id := range detailIDs {
		if !known[id] {
			missing = append(missing, id)
			known[id] = true
		}
	}
	return missing, nil
}
