package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrUnauthorized marks an HTTP 401 from any endpoint. Handlers react by
// clearing the stored token and redirecting to the login page.
var ErrUnauthorized = errors.New("not authenticated")

// APIError is an HTTP-level failure normalized into a human-readable message
// extracted from the response body.
type APIError struct {
	Status   int
	Resource string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Resource, e.Message, e.Status)
}

// NetworkError covers connection and timeout failures, kept distinct from
// HTTP-level errors so they can surface as connectivity messages.
type NetworkError struct {
	Resource string
	Timeout  bool
	Cause    error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: the request timed out, please try again", e.Resource)
	}
	return fmt.Sprintf("%s: could not reach the server", e.Resource)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

func IsConflict(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == 409
}

func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == 404
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func netError(resource string, err error) error {
	timeout := false
	var uerr *url.Error
	if errors.As(err, &uerr) {
		timeout = uerr.Timeout()
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		timeout = true
	}
	return &NetworkError{Resource: resource, Timeout: timeout, Cause: err}
}

// messageFrom pulls a displayable message out of an error body. The API is not
// consistent about the field name, so all known variants are tried.
func messageFrom(body []byte, fallback string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Mensaje string `json:"mensaje"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		case payload.Mensaje != "":
			return payload.Mensaje
		}
	}
	return fallback
}
