package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"petspa/internal/domain"
)

func (c *Client) Invoices(ctx context.Context, token string) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := c.do(ctx, token, http.MethodGet, "/invoices", nil, &invoices)
	return invoices, err
}

func (c *Client) Invoice(ctx context.Context, token, id string) (domain.Invoice, error) {
	var inv domain.Invoice
	err := c.do(ctx, token, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, &inv)
	return inv, err
}

// MarkInvoicePaid is the only client-initiated mutation an invoice allows.
func (c *Client) MarkInvoicePaid(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodPut, "/invoices/"+url.PathEscape(id)+"/pay", nil, nil)
}

// InvoicePDF downloads the server-rendered PDF. Callers fall back to the local
// printable receipt when the endpoint is unavailable.
func (c *Client) InvoicePDF(ctx context.Context, token, id string) ([]byte, error) {
	path := "/invoices/" + url.PathEscape(id) + "/pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, netError("invoices", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, c.statusError("invoices", path, resp)
	}
	return io.ReadAll(resp.Body)
}
