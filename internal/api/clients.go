package api

import (
	"context"
	"net/http"
	"net/url"

	"petspa/internal/domain"
)

func (c *Client) Clients(ctx context.Context, token string) ([]domain.Client, error) {
	var clients []domain.Client
	err := c.do(ctx, token, http.MethodGet, "/clients", nil, &clients)
	return clients, err
}

func (c *Client) UpdateClient(ctx context.Context, token string, cl domain.Client) error {
	return c.do(ctx, token, http.MethodPut, "/clients/"+url.PathEscape(cl.ID), cl, nil)
}

func (c *Client) DeleteClient(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/clients/"+url.PathEscape(id), nil, nil)
}
