package api

import (
	"context"
	"net/http"
	"net/url"

	"petspa/internal/domain"
)

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) FetchCart(ctx context.Context, token string) (domain.Cart, error) {
	var cart domain.Cart
	err := c.do(ctx, token, http.MethodGet, "/cart", nil, &cart)
	return cart, err
}

func (c *Client) AddToCart(ctx context.Context, token, productID string, qty int) error {
	return c.do(ctx, token, http.MethodPost, "/cart/items", cartItemRequest{ProductID: productID, Quantity: qty}, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, qty int) error {
	return c.do(ctx, token, http.MethodPut, "/cart/items/"+url.PathEscape(productID), cartItemRequest{ProductID: productID, Quantity: qty}, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) error {
	return c.do(ctx, token, http.MethodDelete, "/cart/items/"+url.PathEscape(productID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, token, http.MethodDelete, "/cart", nil, nil)
}
