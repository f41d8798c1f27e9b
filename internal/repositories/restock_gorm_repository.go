package repositories

import (
	"errors"
	"fmt"

	"tokoadmin/internal/models"
	"tokoadmin/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRestockRepository is a GORM implementation of RestockRepository.
type GORMRestockRepository struct {
	db *gorm.DB
}

// NewGORMRestockRepository creates a new instance of GORMRestockRepository.
func NewGORMRestockRepository(db *gorm.DB) *GORMRestockRepository {
	return &GORMRestockRepository{
		db: db,
	}
}

func restockFilterScope(filter RestockFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.OutletID != "" {
			db = db.Where("outlet_id = ?", filter.OutletID)
		}
		return db
	}
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// List returns one page of restock requests, newest first.
func (r *GORMRestockRepository) List(filter RestockFilter, page, perPage int) (*models.Page[models.RestockRequest], error) {
	page, perPage = pageBounds(page, perPage)

	var total int64
	if err := r.db.Model(&models.RestockRequest{}).Scopes(restockFilterScope(filter)).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count restock requests: %w", err)
	}

	requests := []models.RestockRequest{}
	err := r.db.Scopes(restockFilterScope(filter), paginate(page, perPage)).
		Preload("Items", itemsInOrder).
		Preload("Outlet").
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restock requests: %w", err)
	}

	return &models.Page[models.RestockRequest]{
		Data:     requests,
		PageMeta: models.NewPageMeta(page, perPage, total, len(requests)),
	}, nil
}

// GetByID retrieves a single restock request with its items and outlet.
func (r *GORMRestockRepository) GetByID(id string) (*models.RestockRequest, error) {
	var req models.RestockRequest
	err := r.db.Preload("Items", itemsInOrder).Preload("Outlet").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("restock request with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get restock request by ID %s: %w", id, err)
	}
	return &req, nil
}

// Create stores a new pending restock request together with its items.
func (r *GORMRestockRepository) Create(req *models.RestockRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = models.StatusPending
	for i := range req.Items {
		req.Items[i].Position = i
	}
	if err := r.db.Omit("Outlet").Create(req).Error; err != nil {
		return fmt.Errorf("failed to create restock request: %w", err)
	}
	return nil
}

// Transition applies action with a conditional update on the pending status,
// so two reviewers racing on the same request cannot both succeed. Approval
// credits the requested quantities to the outlet's stock in the same transaction.
func (r *GORMRestockRepository) Transition(id string, action workflow.Action, review workflow.Review) (*models.RestockRequest, error) {
	to, err := workflow.Transition(models.StatusPending, action)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      to,
			"reviewed_by": review.Reviewer,
			"reviewed_at": review.At,
		}
		if action == workflow.ActionReject && review.Reason != nil {
			updates["rejection_reason"] = *review.Reason
		}

		res := tx.Model(&models.RestockRequest{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update restock request %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			var current models.RestockRequest
			if err := tx.Select("id", "status").First(&current, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("restock request with ID %s %w", id, ErrNotFound)
				}
				return fmt.Errorf("failed to reload restock request %s: %w", id, err)
			}
			return &workflow.InvalidTransitionError{RequestID: id, From: current.Status, Action: action}
		}

		if to == models.StatusApproved {
			return creditStock(tx, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func creditStock(tx *gorm.DB, requestID string) error {
	var req models.RestockRequest
	if err := tx.Preload("Items").Select("id", "outlet_id").First(&req, "id = ?", requestID).Error; err != nil {
		return fmt.Errorf("failed to load items of restock request %s: %w", requestID, err)
	}

	for _, item := range req.Items {
		stock := models.WarehouseStock{WarehouseID: req.OutletID, ProductDetailID: item.ProductDetailID}
		if err := tx.Where(models.WarehouseStock{WarehouseID: req.OutletID, ProductDetailID: item.ProductDetailID}).
			FirstOrCreate(&stock).Error; err != nil {
			return fmt.Errorf("failed to prepare stock for %s: %w", item.ProductDetailID, err)
		}
		if err := tx.Model(&stock).UpdateColumn("quantity", gorm.Expr("quantity + ?", item.RequestedStock)).Error; err != nil {
			return fmt.Errorf("failed to credit stock for %s: %w", item.ProductDetailID, err)
		}
	}
	return nil
}
