// Package store keeps the client-side state of the restock request screens.
//
// A Store owns the current page of requests, the selected request and the
// feedback shown to the operator. Network calls run outside the lock; list
// responses carry a generation number and only the latest one is applied.
package store

import (
	"errors"
	"sync"

	"tokoadmin/internal/apiclient"
	"tokoadmin/internal/models"
	"tokoadmin/internal/validation"
	"tokoadmin/internal/workflow"
)

var (
	// ErrStaleResponse is returned when a newer FetchPage superseded the call.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrClosed is returned by a Store after Close.
	ErrClosed = errors.New("store is closed")
)

// API is the subset of the REST client the store drives.
type API interface {
	ListRestockRequests(page int) (*models.Page[models.RestockRequest], error)
	GetRestockRequest(id string) (*models.RestockRequest, error)
	CreateRestockRequest(payload models.CreateRestockPayload) (*models.RestockRequest, error)
	ApproveRestockRequest(id string) (*models.RestockRequest, error)
	RejectRestockRequest(id string, reason *string) (*models.RestockRequest, error)
}

// NoticeLevel tells the presentation layer how to style a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a one-line message for the operator. An empty Text means none.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// State is an immutable snapshot of the store.
type State struct {
	Requests     []models.RestockRequest
	Meta         models.PageMeta
	Selected     *models.RestockRequest
	IsLoading    bool
	IsSubmitting bool
	IsFailure    bool
	Notice       Notice
	FieldErrors  map[string][]string
}

// Store is safe for concurrent use.
type Store struct {
	api      API
	validate *validation.Validator

	mu        sync.Mutex
	state     State
	gen       uint64
	closed    bool
	nextSub   int
	listeners map[int]func(State)
	// confirmed holds records the server returned after a transition, keyed
	// by id, with the list generation current at that moment.
	confirmed map[string]confirmation
}

type confirmation struct {
	gen uint64
	rec models.RestockRequest
}

// New creates an empty Store on top of api.
func New(api API) *Store {
	return &Store{
		api:       api,
		validate:  validation.New(),
		state:     State{Meta: models.NewPageMeta(1, models.DefaultPerPage, 0, 0)},
		listeners: map[int]func(State){},
		confirmed: map[string]confirmation{},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change. fn may be
// called from any goroutine. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close detaches the store. Responses arriving afterwards are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.listeners = map[int]func(State){}
	s.mu.Unlock()
}

// FetchPage loads page n, newest requests first. Only the latest call's
// response is applied; superseded calls return ErrStaleResponse. On failure
// the list is emptied and IsFailure is set. There is no automatic retry.
func (s *Store) FetchPage(n int) error {
	if n < 1 {
		n = 1
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.gen++
	gen := s.gen
	s.state.IsLoading = true
	s.state.IsFailure = false
	s.commitLocked()

	page, err := s.api.ListRestockRequests(n)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if gen != s.gen {
		s.mu.Unlock()
		return ErrStaleResponse
	}
	s.state.IsLoading = false
	if err != nil {
		s.state.IsFailure = true
		s.state.Requests = []models.RestockRequest{}
		s.state.Meta = models.NewPageMeta(n, s.state.Meta.PerPage, 0, 0)
		s.state.Notice = Notice{Level: NoticeError, Text: err.Error()}
		s.commitLocked()
		return err
	}
	s.state.Requests = s.overlayConfirmedLocked(gen, page.Data)
	s.state.Meta = page.PageMeta
	if s.state.Selected != nil {
		for i := range s.state.Requests {
			if s.state.Requests[i].ID == s.state.Selected.ID {
				sel := s.state.Requests[i]
				s.state.Selected = &sel
			}
		}
	}
	s.commitLocked()
	return nil
}

// Select marks req as the one shown in the detail view. nil clears the selection.
func (s *Store) Select(req *models.RestockRequest) {
	s.mu.Lock()
	if req == nil {
		s.state.Selected = nil
	} else {
		sel := *req
		s.state.Selected = &sel
	}
	s.commitLocked()
}

// Load fetches request id from the server and selects it. A failure leaves
// the selection untouched and is reported like any other network call.
func (s *Store) Load(id string) (*models.RestockRequest, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.state.IsLoading = true
	s.commitLocked()

	req, err := s.api.GetRestockRequest(id)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.state.IsLoading = false
	if err != nil {
		s.failLocked(err)
		s.commitLocked()
		return nil, err
	}
	s.state.IsFailure = false
	sel := *req
	s.state.Selected = &sel
	s.replaceLocked(*req)
	s.commitLocked()
	return req, nil
}

// CreateRequest validates draft and submits it. A draft that fails validation
// never reaches the network; its messages land in FieldErrors. After a
// successful submit the current page is reloaded.
func (s *Store) CreateRequest(draft validation.RestockDraft) (*models.RestockRequest, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	payload, err := s.validate.Restock(draft)
	if err != nil {
		s.failFieldsLocked(err)
		s.commitLocked()
		return nil, err
	}
	s.state.FieldErrors = nil
	s.state.IsSubmitting = true
	s.commitLocked()

	created, err := s.api.CreateRestockRequest(payload)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.state.IsSubmitting = false
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			s.failFieldsLocked(err)
		} else {
			s.failLocked(err)
		}
		s.commitLocked()
		return nil, err
	}
	s.state.Notice = Notice{Level: NoticeInfo, Text: "Restock request created"}
	current := s.state.Meta.CurrentPage
	s.commitLocked()

	// A reload failure is reflected in the state; the request itself was created.
	_ = s.FetchPage(current)
	return created, nil
}

// Approve approves request id.
func (s *Store) Approve(id string) (*models.RestockRequest, error) {
	return s.transition(id, workflow.ActionApprove, func() (*models.RestockRequest, error) {
		return s.api.ApproveRestockRequest(id)
	})
}

// Reject rejects request id with an optional reason.
func (s *Store) Reject(id string, reason *string) (*models.RestockRequest, error) {
	return s.transition(id, workflow.ActionReject, func() (*models.RestockRequest, error) {
		return s.api.RejectRestockRequest(id, reason)
	})
}

// transition pre-checks the cached record, calls the server and then reloads
// the single record. The cache is never updated ahead of the server.
func (s *Store) transition(id string, action workflow.Action, call func() (*models.RestockRequest, error)) (*models.RestockRequest, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if cached := s.findLocked(id); cached != nil && !workflow.Can(cached.Status, action) {
		err := &workflow.InvalidTransitionError{RequestID: id, From: cached.Status, Action: action}
		s.state.Notice = Notice{Level: NoticeError, Text: err.Error()}
		s.commitLocked()
		return nil, err
	}
	s.state.IsSubmitting = true
	s.commitLocked()

	updated, err := call()
	if err != nil {
		var ite *workflow.InvalidTransitionError
		if errors.As(err, &ite) {
			// Someone else decided first. Show the server's version.
			fresh, _ := s.api.GetRestockRequest(id)
			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				return nil, ErrClosed
			}
			s.state.IsSubmitting = false
			s.state.Notice = Notice{Level: NoticeError, Text: ite.Error()}
			if fresh != nil {
				s.confirmLocked(*fresh)
			}
			s.commitLocked()
			return nil, err
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, ErrClosed
		}
		s.state.IsSubmitting = false
		s.failLocked(err)
		s.commitLocked()
		return nil, err
	}

	if fresh, ferr := s.api.GetRestockRequest(id); ferr == nil {
		updated = fresh
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.state.IsSubmitting = false
	s.state.IsFailure = false
	s.state.Notice = Notice{Level: NoticeInfo, Text: "Restock request " + string(updated.Status)}
	s.confirmLocked(*updated)
	s.commitLocked()
	return updated, nil
}

func (s *Store) findLocked(id string) *models.RestockRequest {
	if s.state.Selected != nil && s.state.Selected.ID == id {
		return s.state.Selected
	}
	for i := range s.state.Requests {
		if s.state.Requests[i].ID == id {
			return &s.state.Requests[i]
		}
	}
	return nil
}

// replaceLocked swaps rec into the list and the selection where present.
func (s *Store) replaceLocked(rec models.RestockRequest) {
	requests := make([]models.RestockRequest, len(s.state.Requests))
	copy(requests, s.state.Requests)
	for i := range requests {
		if requests[i].ID == rec.ID {
			requests[i] = rec
		}
	}
	s.state.Requests = requests
	if s.state.Selected != nil && s.state.Selected.ID == rec.ID {
		sel := rec
		s.state.Selected = &sel
	}
}

// confirmLocked records rec as server-confirmed and shows it. List responses
// requested before the confirmation cannot roll it back.
func (s *Store) confirmLocked(rec models.RestockRequest) {
	s.confirmed[rec.ID] = confirmation{gen: s.gen, rec: rec}
	s.replaceLocked(rec)
}

// overlayConfirmedLocked replaces records of a list response issued at gen
// with versions confirmed while it was in flight. Confirmations older than
// gen are already reflected by the server and are dropped.
func (s *Store) overlayConfirmedLocked(gen uint64, data []models.RestockRequest) []models.RestockRequest {
	out := make([]models.RestockRequest, len(data))
	copy(out, data)
	for i := range out {
		if c, ok := s.confirmed[out[i].ID]; ok && c.gen >= gen {
			out[i] = c.rec
		}
	}
	for id, c := range s.confirmed {
		if c.gen < gen {
			delete(s.confirmed, id)
		}
	}
	return out
}

func (s *Store) failFieldsLocked(err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		s.state.FieldErrors = verr.Fields
	}
	s.state.Notice = Notice{Level: NoticeError, Text: "Please correct the highlighted fields"}
}

func (s *Store) failLocked(err error) {
	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		s.state.IsFailure = true
	}
	s.state.Notice = Notice{Level: NoticeError, Text: err.Error()}
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Requests = append([]models.RestockRequest(nil), s.state.Requests...)
	if s.state.Selected != nil {
		sel := *s.state.Selected
		st.Selected = &sel
	}
	if s.state.FieldErrors != nil {
		st.FieldErrors = make(map[string][]string, len(s.state.FieldErrors))
		for k, v := range s.state.FieldErrors {
			st.FieldErrors[k] = append([]string(nil), v...)
		}
	}
	return st
}

// commitLocked releases the lock and notifies listeners with the new state.
func (s *Store) commitLocked() {
	snap := s.snapshotLocked()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
