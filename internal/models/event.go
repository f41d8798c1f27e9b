package models

import "time"

// Restock event types published on the message queue.
const (
	EventRestockCreated  = "restock.created"
	EventRestockApproved = "restock.approved"
	EventRestockRejected = "restock.rejected"
)

// RestockEvent describes a lifecycle change of a restock request.
type RestockEvent struct {
	Type      string             `json:"type"`
	RequestID string             `json:"request_id"`
	OutletID  string             `json:"outlet_id"`
	Status    RestockStatus      `json:"status"`
	Items     []RequestedProduct `json:"items"`
	Actor     string             `json:"actor"`
	At        time.Time          `json:"at"`
}
