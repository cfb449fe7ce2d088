package services

import (
	"context"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
)

// VideoService manages video ads. Only admins and the uploader may change an ad.
type VideoService struct {
	API *apiclient.Client
}

func NewVideoService(api *apiclient.Client) *VideoService { return &VideoService{API: api} }

func (s *VideoService) List(ctx context.Context) ([]domain.Video, error) {
	return s.API.ListVideos(ctx)
}

func (s *VideoService) Find(ctx context.Context, id string) (*domain.Video, error) {
	videos, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range videos {
		if videos[i].ID == id {
			return &videos[i], nil
		}
	}
	return nil, ErrNotFound
}

// Editable returns the ad if u may change it.
func (s *VideoService) Editable(ctx context.Context, u *domain.User, id string) (*domain.Video, error) {
	v, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.EditableBy(u) {
		return nil, ErrForbidden
	}
	return v, nil
}

func (s *VideoService) Save(ctx context.Context, u *domain.User, id, title string, file *apiclient.Upload) (*domain.Video, error) {
	if id == "" {
		if file == nil {
			return nil, ErrFileRequired
		}
		return s.API.CreateVideo(ctx, title, file)
	}
	if _, err := s.Editable(ctx, u, id); err != nil {
		return nil, err
	}
	return s.API.UpdateVideo(ctx, id, title, file)
}

func (s *VideoService) Delete(ctx context.Context, u *domain.User, id string) error {
	if _, err := s.Editable(ctx, u, id); err != nil {
		return err
	}
	return s.API.DeleteVideo(ctx, id)
}
