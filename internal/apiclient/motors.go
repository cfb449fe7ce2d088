package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dealerpro/internal/domain"
)

const motorImageField = "gambar"

func (c *Client) ListMotors(ctx context.Context) ([]domain.Motor, error) {
	var out []domain.Motor
	err := c.getJSON(ctx, "/motors", &out)
	return out, err
}

func (c *Client) CreateMotor(ctx context.Context, in domain.MotorInput, img *Upload) (*domain.Motor, error) {
	return c.saveMotor(ctx, http.MethodPost, "/motors", in, img)
}

func (c *Client) UpdateMotor(ctx context.Context, id string, in domain.MotorInput, img *Upload) (*domain.Motor, error) {
	return c.saveMotor(ctx, http.MethodPut, "/motors/"+url.PathEscape(id), in, img)
}

func (c *Client) DeleteMotor(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/motors/"+url.PathEscape(id), nil, nil)
}

func (c *Client) saveMotor(ctx context.Context, method, path string, in domain.MotorInput, img *Upload) (*domain.Motor, error) {
	fields := [][2]string{
		{"name", in.Name},
		{"brand", in.Brand},
		{"year", strconv.Itoa(in.Year)},
		{"color", in.Color},
		{"price", strconv.FormatInt(in.Price, 10)},
		{"status", in.Status},
	}
	if img != nil {
		img.FieldName = motorImageField
	}
	var out domain.Motor
	if err := c.sendMultipart(ctx, method, path, fields, img, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
