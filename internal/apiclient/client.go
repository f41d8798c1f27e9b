// Package apiclient talks to the back-office REST API.
package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/validation"
	"tokoadmin/internal/workflow"

	"github.com/gofiber/fiber/v2"
)

// Config holds the endpoints and timeout of a Client.
type Config struct {
	BaseURL  string
	AssetURL string
	Timeout  time.Duration
}

// Client is a REST client for the API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	assetURL string
	timeout  time.Duration
	http     *fiber.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client. A zero timeout means 10 seconds.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		assetURL: strings.TrimRight(cfg.AssetURL, "/"),
		timeout:  cfg.Timeout,
		http:     &fiber.Client{UserAgent: "tokoadmin"},
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do("login", fiber.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return &APIError{StatusCode: fiber.StatusOK, Message: "login response carried no token"}
	}
	c.SetToken(resp.Token)
	return nil
}

// ListRestockRequests fetches one page of restock requests, newest first.
func (c *Client) ListRestockRequests(page int) (*models.Page[models.RestockRequest], error) {
	var out models.Page[models.RestockRequest]
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.do("list restock requests", fiber.MethodGet, "/restock-requests", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRestockRequest fetches a single restock request.
func (c *Client) GetRestockRequest(id string) (*models.RestockRequest, error) {
	var out models.RestockRequest
	if err := c.do("get restock request", fiber.MethodGet, "/restock-requests/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRestockRequest submits a validated payload.
func (c *Client) CreateRestockRequest(payload models.CreateRestockPayload) (*models.RestockRequest, error) {
	var out models.RestockRequest
	if err := c.do("create restock request", fiber.MethodPost, "/restock-requests", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveRestockRequest approves a pending request. A request that is already
// terminal yields *workflow.InvalidTransitionError.
func (c *Client) ApproveRestockRequest(id string) (*models.RestockRequest, error) {
	return c.transition(id, workflow.ActionApprove, nil)
}

// RejectRestockRequest rejects a pending request with an optional reason.
func (c *Client) RejectRestockRequest(id string, reason *string) (*models.RestockRequest, error) {
	var body interface{}
	if reason != nil {
		body = models.RejectPayload{Reason: reason}
	}
	return c.transition(id, workflow.ActionReject, body)
}

func (c *Client) transition(id string, action workflow.Action, body interface{}) (*models.RestockRequest, error) {
	var out models.RestockRequest
	path := "/restock-requests/" + url.PathEscape(id) + "/" + string(action)
	err := c.do(string(action)+" restock request", fiber.MethodPost, path, nil, body, &out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusConflict {
		return nil, &workflow.InvalidTransitionError{
			RequestID: id,
			From:      models.RestockStatus(apiErr.Status),
			Action:    action,
		}
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts fetches one page of the product catalog.
func (c *Client) ListProducts(page int) (*models.Page[models.Product], error) {
	var out models.Page[models.Product]
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.do("list products", fiber.MethodGet, "/products", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWarehouses fetches every warehouse and outlet.
func (c *Client) ListWarehouses() ([]models.Warehouse, error) {
	var out struct {
		Data []models.Warehouse `json:"data"`
	}
	if err := c.do("list warehouses", fiber.MethodGet, "/warehouses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AssetURL joins a stored file path, such as a product image, to the asset URL.
// Absolute URLs and empty paths are returned unchanged.
func (c *Client) AssetURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.assetURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) agent(method, rawURL string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return c.http.Post(rawURL)
	case fiber.MethodPut:
		return c.http.Put(rawURL)
	case fiber.MethodPatch:
		return c.http.Patch(rawURL)
	case fiber.MethodDelete:
		return c.http.Delete(rawURL)
	}
	return c.http.Get(rawURL)
}

// do sends one request and decodes a 2xx body into out. Failures are mapped
// onto *NetworkError, *APIError and *validation.ValidationError.
func (c *Client) do(op, method, path string, query url.Values, body, out interface{}) error {
	a := c.agent(method, c.baseURL+path).Timeout(c.timeout)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	c.mu.RLock()
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	c.mu.RUnlock()

	if len(query) > 0 {
		a.QueryString(query.Encode())
	}
	if body != nil {
		a.JSON(body)
	}

	code, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return &NetworkError{Op: op, Err: errors.Join(errs...)}
	}

	if code >= 200 && code < 300 {
		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: failed to decode response: %w", op, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.Unmarshal(respBody, &eb)
	if eb.Message == "" {
		eb.Message = strings.TrimSpace(string(respBody))
	}

	switch {
	case code >= 500:
		return &NetworkError{Op: op, StatusCode: code, Err: errors.New(eb.Message)}
	case code == fiber.StatusUnprocessableEntity && len(eb.Errors) > 0:
		return &validation.ValidationError{Fields: eb.Errors}
	}
	return &APIError{StatusCode: code, Message: eb.Message, Detail: eb.Error, Status: eb.Status}
}
