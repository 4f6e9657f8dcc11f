package api

import (
	"context"
	"net/http"

	"petspa/internal/domain"
)

type ConfirmCheckoutRequest struct {
	PaymentMethod   string `json:"paymentMethod"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
}

// CheckoutSummary fetches a fresh server-computed snapshot of the pending
// purchase, including whether stock still covers every line.
func (c *Client) CheckoutSummary(ctx context.Context, token string) (domain.CheckoutSummary, error) {
	var sum domain.CheckoutSummary
	err := c.do(ctx, token, http.MethodGet, "/checkout/summary", nil, &sum)
	return sum, err
}

// ConfirmCheckout submits the purchase; the server creates and returns the
// invoice as a side effect.
func (c *Client) ConfirmCheckout(ctx context.Context, token string, req ConfirmCheckoutRequest) (domain.Invoice, error) {
	var inv domain.Invoice
	err := c.do(ctx, token, http.MethodPost, "/checkout/confirm", req, &inv)
	return inv, err
}
