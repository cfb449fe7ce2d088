package apiclient

import (
	"context"
	"net/http"

	"dealerpro/internal/domain"
)

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var out AuthResult
	in := map[string]string{"email": email, "password": password}
	err := c.sendJSON(ctx, http.MethodPost, "/auth/login", in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in domain.UserInput) (AuthResult, error) {
	var out AuthResult
	err := c.sendJSON(ctx, http.MethodPost, "/auth/register", in, &out)
	return out, err
}
