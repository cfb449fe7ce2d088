package services

import (
	"context"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
)

type MotorService struct {
	API *apiclient.Client
}

func NewMotorService(api *apiclient.Client) *MotorService { return &MotorService{API: api} }

func (s *MotorService) List(ctx context.Context) ([]domain.Motor, error) {
	return s.API.ListMotors(ctx)
}

// Find looks the motor up in the list, as the editor is opened from a list row.
func (s *MotorService) Find(ctx context.Context, id string) (*domain.Motor, error) {
	motors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range motors {
		if motors[i].ID == id {
			return &motors[i], nil
		}
	}
	return nil, ErrNotFound
}

// Save creates when id is empty, otherwise updates. img may be nil on update only.
func (s *MotorService) Save(ctx context.Context, id string, in domain.MotorInput, img *apiclient.Upload) (*domain.Motor, error) {
	if id == "" {
		if img == nil {
			return nil, ErrFileRequired
		}
		return s.API.CreateMotor(ctx, in, img)
	}
	return s.API.UpdateMotor(ctx, id, in, img)
}

func (s *MotorService) Delete(ctx context.Context, id string) error {
	return s.API.DeleteMotor(ctx, id)
}
