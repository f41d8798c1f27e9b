package services

import (
	"fmt"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
)

// WarehouseService handles warehouses, outlets and their stock levels.
type WarehouseService struct {
	repo repositories.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService.
func NewWarehouseService(repo repositories.WarehouseRepository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// ListWarehouses returns every location.
func (s *WarehouseService) ListWarehouses() ([]models.Warehouse, error) {
	return s.repo.List()
}

// CreateWarehouse adds a location. Only owners may do so.
func (s *WarehouseService) CreateWarehouse(actor Actor, w *models.Warehouse) error {
	if actor.Role != models.RoleOwner {
		return fmt.Errorf("role %s cannot create warehouses: %w", actor.Role, ErrForbidden)
	}
	return s.repo.Create(w)
}

// Stocks returns stock levels of a location visible to actor.
func (s *WarehouseService) Stocks(actor Actor, warehouseID string) ([]models.WarehouseStock, error) {
	if actor.scopedToWarehouse() && actor.WarehouseID != warehouseID {
		return nil, fmt.Errorf("stock of warehouse %s: %w", warehouseID, ErrForbidden)
	}
	if _, err := s.repo.GetByID(warehouseID); err != nil {
		return nil, err
	}
	return s.repo.Stocks(warehouseID)
}
