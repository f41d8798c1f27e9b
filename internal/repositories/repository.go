package repositories

import (
	"errors"

	"tokoadmin/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every repository lookup that finds no row.
var ErrNotFound = errors.New("not found")

// pageBounds clamps page and perPage to usable values.
func pageBounds(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = models.DefaultPerPage
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// paginate is a gorm scope selecting one page of rows.
func paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}

// AutoMigrate creates or updates every table the API needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Warehouse{},
		&models.Product{},
		&models.ProductDetail{},
		&models.WarehouseStock{},
		&models.User{},
		&models.RestockRequest{},
		&models.RequestedProduct{},
	)
}
