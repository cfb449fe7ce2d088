package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"dealerpro/internal/domain"
)

const videoField = "video"

func (c *Client) ListVideos(ctx context.Context) ([]domain.Video, error) {
	var out []domain.Video
	err := c.getJSON(ctx, "/videos", &out)
	return out, err
}

func (c *Client) CreateVideo(ctx context.Context, title string, file *Upload) (*domain.Video, error) {
	return c.saveVideo(ctx, http.MethodPost, "/videos", title, file)
}

func (c *Client) UpdateVideo(ctx context.Context, id, title string, file *Upload) (*domain.Video, error) {
	return c.saveVideo(ctx, http.MethodPut, "/videos/"+url.PathEscape(id), title, file)
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/videos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) saveVideo(ctx context.Context, method, path, title string, file *Upload) (*domain.Video, error) {
	if file != nil {
		file.FieldName = videoField
	}
	var out domain.Video
	if err := c.sendMultipart(ctx, method, path, [][2]string{{"title", title}}, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
