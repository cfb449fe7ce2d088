package services

import (
	"context"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
)

type UserService struct {
	API *apiclient.Client
}

func NewUserService(api *apiclient.Client) *UserService { return &UserService{API: api} }

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.API.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.API.GetUser(ctx, id)
}

// Save creates when id is empty, otherwise updates. An empty password is left out of updates.
func (s *UserService) Save(ctx context.Context, id string, in domain.UserInput) (*domain.User, error) {
	if id == "" {
		return s.API.CreateUser(ctx, in)
	}
	return s.API.UpdateUser(ctx, id, in)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.API.DeleteUser(ctx, id)
}
