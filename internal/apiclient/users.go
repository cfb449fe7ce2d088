package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"dealerpro/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.getJSON(ctx, "/users", &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	var out domain.User
	if err := c.sendJSON(ctx, http.MethodPost, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in domain.UserInput) (*domain.User, error) {
	var out domain.User
	if err := c.sendJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}
