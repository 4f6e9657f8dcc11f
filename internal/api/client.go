// Package api wraps every call to the remote PetSPA REST service. All business
// rules (pricing, stock, availability) live behind that service; this client
// only attaches credentials, enforces a request timeout and normalizes errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	applog "petspa/internal/log"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// do performs one JSON round-trip. A non-2xx status is normalized into
// ErrUnauthorized (401) or an *APIError carrying a displayable message;
// transport failures become *NetworkError.
func (c *Client) do(ctx context.Context, token, method, path string, in, out any) error {
	resource := resourceOf(path)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", resource, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		applog.Base().WithField("path", path).WithField("err", err.Error()).Warn("api.network")
		return netError(resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resource, path, resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", resource, err)
		}
	}
	return nil
}

func (c *Client) statusError(resource, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", resource, ErrUnauthorized)
	}
	msg := messageFrom(raw, defaultMessage(resp.StatusCode))
	applog.Base().WithField("path", path).WithField("status", resp.StatusCode).WithField("msg", msg).Warn("api.error")
	return &APIError{Status: resp.StatusCode, Resource: resource, Message: msg}
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusForbidden:
		return "you do not have permission to do that"
	case http.StatusNotFound:
		return "the requested record was not found"
	case http.StatusConflict:
		return "the request conflicts with the current state"
	default:
		return "the service could not process the request"
	}
}

// resourceOf keeps error messages readable: "/carrito/items/p1" -> "carrito".
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i > 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i > 0 {
		p = p[:i]
	}
	if p == "" {
		p = "api"
	}
	return p
}
