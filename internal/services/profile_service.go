package services

import (
	"context"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
)

// ProfileService lets a signed-in user read and edit their own record.
type ProfileService struct {
	API  *apiclient.Client
	Auth *AuthService
}

func NewProfileService(api *apiclient.Client, auth *AuthService) *ProfileService {
	return &ProfileService{API: api, Auth: auth}
}

func (s *ProfileService) Load(ctx context.Context, id string) (*domain.User, error) {
	return s.API.GetUser(ctx, id)
}

// Save updates the user and refreshes the copy kept in the session, so the header shows the
// new name and email straight away. Role and active flag are never sent from here.
func (s *ProfileService) Save(ctx context.Context, sid string, current *domain.User, in domain.UserInput) (*domain.User, error) {
	in.Role = ""
	in.IsActive = nil
	u, err := s.API.UpdateUser(ctx, current.ID, in)
	if err != nil {
		return nil, err
	}
	next := *current
	next.Name = u.Name
	next.Email = u.Email
	if err := s.Auth.RefreshUser(sid, &next); err != nil {
		return u, err
	}
	return u, nil
}
