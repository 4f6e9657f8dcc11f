package api

import (
	"context"
	"net/http"
	"net/url"

	"petspa/internal/domain"
)

func (c *Client) Products(ctx context.Context, token string) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, token, http.MethodGet, "/products", nil, &products)
	return products, err
}

func (c *Client) Product(ctx context.Context, token, id string) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, token, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p)
	return p, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, p domain.Product) error {
	return c.do(ctx, token, http.MethodPost, "/products", p, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, p domain.Product) error {
	return c.do(ctx, token, http.MethodPut, "/products/"+url.PathEscape(p.ID), p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Services(ctx context.Context, token string) ([]domain.Service, error) {
	var services []domain.Service
	err := c.do(ctx, token, http.MethodGet, "/services", nil, &services)
	return services, err
}

func (c *Client) CreateService(ctx context.Context, token string, s domain.Service) error {
	return c.do(ctx, token, http.MethodPost, "/services", s, nil)
}

func (c *Client) UpdateService(ctx context.Context, token string, s domain.Service) error {
	return c.do(ctx, token, http.MethodPut, "/services/"+url.PathEscape(s.ID), s, nil)
}

func (c *Client) DeleteService(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/services/"+url.PathEscape(id), nil, nil)
}
