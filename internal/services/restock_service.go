package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"tokoadmin/internal/metrics"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/validation"
	"tokoadmin/internal/workflow"
)

// ErrForbidden is returned when the actor's role does not allow an operation.
var ErrForbidden = errors.New("forbidden")

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID      string
	Username    string
	Role        string
	WarehouseID string
}

// scopedToWarehouse reports whether the actor only sees its own location.
func (a Actor) scopedToWarehouse() bool {
	return a.Role == models.RoleOutlet || a.Role == models.RoleWarehouse
}

// EventPublisher publishes restock lifecycle events.
type EventPublisher interface {
	PublishRestockEvent(event models.RestockEvent) error
}

// RestockService handles business logic related to restock requests.
type RestockService struct {
	repo       repositories.RestockRepository
	products   repositories.ProductRepository
	warehouses repositories.WarehouseRepository
	publisher  EventPublisher
	metrics    *metrics.Recorder
	now        func() time.Time
}

// NewRestockService creates a new RestockService. publisher and recorder may be nil.
func NewRestockService(
	repo repositories.RestockRepository,
	products repositories.ProductRepository,
	warehouses repositories.WarehouseRepository,
	publisher EventPublisher,
	recorder *metrics.Recorder,
) *RestockService {
	return &RestockService{
		repo:       repo,
		products:   products,
		warehouses: warehouses,
		publisher:  publisher,
		metrics:    recorder,
		now:        time.Now,
	}
}

// ListRequests returns one page of requests visible to actor.
func (s *RestockService) ListRequests(actor Actor, filter repositories.RestockFilter, page, perPage int) (*models.Page[models.RestockRequest], error) {
	if actor.scopedToWarehouse() {
		if actor.WarehouseID == "" {
			return &models.Page[models.RestockRequest]{
				Data:     []models.RestockRequest{},
				PageMeta: models.NewPageMeta(page, perPage, 0, 0),
			}, nil
		}
		filter.OutletID = actor.WarehouseID
	}
	return s.repo.List(filter, page, perPage)
}

// GetRequest retrieves a single request visible to actor.
func (s *RestockService) GetRequest(actor Actor, id string) (*models.RestockRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actor.scopedToWarehouse() && req.OutletID != actor.WarehouseID {
		return nil, fmt.Errorf("restock request %s belongs to another location: %w", id, ErrForbidden)
	}
	return req, nil
}

// CreateRequest files a new pending restock request.
func (s *RestockService) CreateRequest(actor Actor, payload models.CreateRestockPayload) (*models.RestockRequest, error) {
	if actor.scopedToWarehouse() && payload.OutletID != actor.WarehouseID {
		return nil, fmt.Errorf("cannot request stock for another location: %w", ErrForbidden)
	}

	fields := map[string][]string{}
	if _, err := s.warehouses.GetByID(payload.OutletID); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		fields["outlet_id"] = []string{"does not exist"}
	}

	ids := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		ids = append(ids, item.ProductDetailID)
	}
	missing, err := s.products.MissingDetails(ids)
	if err != nil {
		return nil, err
	}
	unknown := make(map[string]bool, len(missing))
	for _, id := range missing {
		unknown[id] = true
	}
	for i, item := range payload.Items {
		if unknown[item.ProductDetailID] {
			key := fmt.Sprintf("items[%d].product_detail_id", i)
			fields[key] = append(fields[key], "does not exist")
		}
	}
	if len(fields) > 0 {
		return nil, &validation.ValidationError{Fields: fields}
	}

	req := &models.RestockRequest{
		OutletID:    payload.OutletID,
		RequestedBy: actor.UserID,
		Items:       make([]models.RequestedProduct, 0, len(payload.Items)),
	}
	for _, item := range payload.Items {
		req.Items = append(req.Items, models.RequestedProduct{
			ProductDetailID: item.ProductDetailID,
			RequestedStock:  item.RequestedStock,
			Unit:            item.Unit,
			Reason:          item.Reason,
		})
	}

	if err := s.repo.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create restock request in repository: %w", err)
	}
	s.metrics.Created()

	created, err := s.repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	s.publish(models.EventRestockCreated, created, actor)
	return created, nil
}

// ApproveRequest approves a pending request. The repository credits the stock.
func (s *RestockService) ApproveRequest(actor Actor, id string) (*models.RestockRequest, error) {
	return s.transition(actor, id, workflow.ActionApprove, nil)
}

// RejectRequest rejects a pending request with an optional reason.
func (s *RestockService) RejectRequest(actor Actor, id string, reason *string) (*models.RestockRequest, error) {
	return s.transition(actor, id, workflow.ActionReject, reason)
}

func (s *RestockService) transition(actor Actor, id string, action workflow.Action, reason *string) (*models.RestockRequest, error) {
	if !models.CanReview(actor.Role) {
		return nil, fmt.Errorf("role %s cannot %s restock requests: %w", actor.Role, action, ErrForbidden)
	}

	updated, err := s.repo.Transition(id, action, workflow.Review{Reviewer: actor.UserID, Reason: reason, At: s.now()})
	if err != nil {
		var ite *workflow.InvalidTransitionError
		if errors.As(err, &ite) {
			s.metrics.Transition(string(action), metrics.OutcomeConflict)
		} else {
			s.metrics.Transition(string(action), metrics.OutcomeError)
		}
		return nil, err
	}
	s.metrics.Transition(string(action), metrics.OutcomeOK)

	eventType := models.EventRestockApproved
	if action == workflow.ActionReject {
		eventType = models.EventRestockRejected
	}
	s.publish(eventType, updated, actor)
	return updated, nil
}

// publish sends an event; failures are logged and never fail the operation.
func (s *RestockService) publish(eventType string, req *models.RestockRequest, actor Actor) {
	if s.publisher == nil {
		log.Printf("Event publisher is not configured. Skipping %s for request %s", eventType, req.ID)
		return
	}
	event := models.RestockEvent{
		Type:      eventType,
		RequestID: req.ID,
		OutletID:  req.OutletID,
		Status:    req.Status,
		Items:     req.Items,
		Actor:     actor.UserID,
		At:        s.now(),
	}
	if err := s.publisher.PublishRestockEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for request %s: %v", eventType, req.ID, err)
	}
}
