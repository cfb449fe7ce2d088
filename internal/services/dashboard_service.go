package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
)

const (
	latestMotors = 3
	latestVideos = 2
)

type Dashboard struct {
	TotalMotors     int
	AvailableMotors int
	// admin only
	TotalUsers int
	SalesCount int

	LatestMotors []domain.Motor
	LatestVideos []domain.Video
}

type DashboardService struct {
	API *apiclient.Client
}

func NewDashboardService(api *apiclient.Client) *DashboardService { return &DashboardService{API: api} }

// Load fetches motors, videos and (for admins) users in parallel. On any failure the error
// is returned together with a zero Dashboard so the page still renders.
func (s *DashboardService) Load(ctx context.Context, u *domain.User) (Dashboard, error) {
	var (
		motors []domain.Motor
		videos []domain.Video
		users  []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		motors, err = s.API.ListMotors(gctx)
		return err
	})
	g.Go(func() (err error) {
		videos, err = s.API.ListVideos(gctx)
		return err
	})
	if u.IsAdmin() {
		g.Go(func() (err error) {
			users, err = s.API.ListUsers(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{TotalMotors: len(motors), TotalUsers: len(users)}
	for _, m := range motors {
		if m.Available() {
			d.AvailableMotors++
		}
	}
	for _, x := range users {
		if x.Role == domain.RoleSales {
			d.SalesCount++
		}
	}
	d.LatestMotors = motors[:min(latestMotors, len(motors))]
	d.LatestVideos = videos[:min(latestVideos, len(videos))]
	return d, nil
}
