package apiclient

import (
	"context"
	"net/url"

	"dealerpro/internal/domain"
)

func (c *Client) Provinces(ctx context.Context) ([]domain.Area, error) {
	var out []domain.Area
	err := c.getJSON(ctx, "/references/provinces", &out)
	return out, err
}

func (c *Client) Regencies(ctx context.Context, provinceID string) ([]domain.Area, error) {
	var out []domain.Area
	err := c.getJSON(ctx, "/references/regencies/"+url.PathEscape(provinceID), &out)
	return out, err
}

func (c *Client) Districts(ctx context.Context, regencyID string) ([]domain.Area, error) {
	var out []domain.Area
	err := c.getJSON(ctx, "/references/districts/"+url.PathEscape(regencyID), &out)
	return out, err
}

func (c *Client) Religions(ctx context.Context) ([]domain.Religion, error) {
	var out []domain.Religion
	err := c.getJSON(ctx, "/references/religions", &out)
	return out, err
}
