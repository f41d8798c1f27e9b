// Package workflow holds the approval state machine of restock requests.
//
// A request starts pending and moves exactly once, to approved or rejected.
// Both outcomes are terminal. The functions here are pure: they compute the
// next state and never touch storage or the network, so the API server and
// the client store share them.
package workflow

import (
	"fmt"
	"time"

	"tokoadmin/internal/models"
)

// Action is a reviewer intent on a restock request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// InvalidTransitionError is returned when an action is attempted on a request
// that is already in a terminal state.
type InvalidTransitionError struct {
	RequestID string
	From      models.RestockStatus
	Action    Action
}

func (e *InvalidTransitionError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("cannot %s a request that is already %s", e.Action, e.From)
	}
	return fmt.Sprintf("cannot %s restock request %s: already %s", e.Action, e.RequestID, e.From)
}

// Transition returns the status reached by applying action to from.
func Transition(from models.RestockStatus, action Action) (models.RestockStatus, error) {
	if from != models.StatusPending {
		return from, &InvalidTransitionError{From: from, Action: action}
	}
	switch action {
	case ActionApprove:
		return models.StatusApproved, nil
	case ActionReject:
		return models.StatusRejected, nil
	}
	return from, fmt.Errorf("unknown action %q", action)
}

// Allowed lists the actions a reviewer may take on a request in status s.
// The presentation layer only renders these.
func Allowed(s models.RestockStatus) []Action {
	if s != models.StatusPending {
		return nil
	}
	return []Action{ActionApprove, ActionReject}
}

// Can reports whether action is permitted from s.
func Can(s models.RestockStatus, action Action) bool {
	_, err := Transition(s, action)
	return err == nil
}

// Review records who performed a transition and why.
type Review struct {
	Reviewer string
	Reason   *string
	At       time.Time
}

// Apply returns a copy of req moved through action. req itself is left
// untouched, including on error.
func Apply(req models.RestockRequest, action Action, review Review) (models.RestockRequest, error) {
	next, err := Transition(req.Status, action)
	if err != nil {
		if ite, ok := err.(*InvalidTransitionError); ok {
			ite.RequestID = req.ID
		}
		return req, err
	}

	out := req
	out.Items = append([]models.RequestedProduct(nil), req.Items...)
	out.Status = next
	out.ReviewedBy = review.Reviewer
	at := review.At
	out.ReviewedAt = &at
	if action == ActionReject && review.Reason != nil {
		reason := *review.Reason
		out.RejectionReason = &reason
	}
	return out, nil
}
