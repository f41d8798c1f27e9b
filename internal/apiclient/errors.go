package apiclient

import (
	"fmt"
)

// NetworkError is a transport failure or a 5xx response. The call may be retried.
type NetworkError struct {
	Op         string
	StatusCode int // 0 when no response arrived
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server responded %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response the server explained, such as 401, 403 or 404.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
	// Status is the current record status reported with a 409.
	Status string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// errorBody is the JSON error shape of the API.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Status  string              `json:"status"`
	Errors  map[string][]string `json:"errors"`
}
