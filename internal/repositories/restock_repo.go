package repositories

import (
	"tokoadmin/internal/models"
	"tokoadmin/internal/workflow"
)

// RestockFilter narrows a restock request listing.
type RestockFilter struct {
	Status   models.RestockStatus
	OutletID string
}

// RestockRepository defines the interface for restock request data access.
type RestockRepository interface {
	List(filter RestockFilter, page, perPage int) (*models.Page[models.RestockRequest], error)
	GetByID(id string) (*models.RestockRequest, error)
	Create(req *models.RestockRequest) error
	// Transition moves a pending request through action. It fails with
	// *workflow.InvalidTransitionError when the stored request is no longer pending.
	Transition(id string, action workflow.Action, review workflow.Review) (*models.RestockRequest, error)
}
