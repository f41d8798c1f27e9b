package repositories

import (
	"errors"
	"fmt"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarehouseRepository defines the interface for warehouse and stock data access.
type WarehouseRepository interface {
	List() ([]models.Warehouse, error)
	GetByID(id string) (*models.Warehouse, error)
	Create(w *models.Warehouse) error
	Stocks(warehouseID string) ([]models.WarehouseStock, error)
}

// GORMWarehouseRepository is a GORM implementation of WarehouseRepository.
type GORMWarehouseRepository struct {
	db *gorm.DB
}

// NewGORMWarehouseRepository creates a new instance of GORMWarehouseRepository.
func NewGORMWarehouseRepository(db *gorm.DB) *GORMWarehouseRepository {
	return &GORMWarehouseRepository{db: db}
}

// List returns every warehouse and outlet by name.
func (r *GORMWarehouseRepository) List() ([]models.Warehouse, error) {
	warehouses := []models.Warehouse{}
	if err := r.db.Order("name ASC").Find(&warehouses).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}

// GetByID retrieves a warehouse by its ID.
func (r *GORMWarehouseRepository) GetByID(id string) (*models.Warehouse, error) {
	var w models.Warehouse
	if err := r.db.First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("warehouse with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get warehouse by ID %s: %w", id, err)
	}
	return &w, nil
}

// Create stores a new warehouse.
func (r *GORMWarehouseRepository) Create(w *models.Warehouse) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if err := r.db.Create(w).Error; err != nil {
		return fmt.Errorf("failed to create warehouse: %w", err)
	}
	return nil
}

// Stocks lists the quantities held at a warehouse.
func (r *GORMWarehouseRepository) Stocks(warehouseID string) ([]models.WarehouseStock, error) {
	stocks := []models.WarehouseStock{}
	if err := r.db.Where("warehouse_id = ?", warehouseID).Order("product_detail_id ASC").Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list stocks of warehouse %s: %w", warehouseID, err)
	}
	return stocks, nil
}
