package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	"dealerpro/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService owns the per-browser session: login stores the API token and user under the
// sid cookie, every later request reads them back from there.
type AuthService struct {
	API      *apiclient.Client
	Sessions *repos.SessionRepo
}

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	res, err := s.API.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, ErrBadCreds
	}
	if err := s.Sessions.Save(sid, res.Token, res.User); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	return res.User, nil
}

// Register creates the account. It does not sign the browser in; the user logs in next.
func (s *AuthService) Register(ctx context.Context, in domain.UserInput) error {
	_, err := s.API.Register(ctx, in)
	return err
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Delete(sid)
}

// Session returns the stored session, or nil when the browser has none.
func (s *AuthService) Session(sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}
	sess, err := s.Sessions.Load(sid)
	if errors.Is(err, repos.ErrNoSession) {
		return nil, nil
	}
	return sess, err
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	sess, err := s.Session(sid)
	if err != nil || !sess.Authenticated() {
		return nil, err
	}
	return sess.User, nil
}

// ClientFor returns an API client authenticated as the session's user.
func (s *AuthService) ClientFor(sess *domain.Session) *apiclient.Client {
	if sess == nil {
		return s.API
	}
	return s.API.WithToken(sess.Token)
}

// RefreshUser replaces the session's user record after the user edited their own profile.
func (s *AuthService) RefreshUser(sid string, u *domain.User) error {
	return s.Sessions.UpdateUser(sid, u)
}

func (s *AuthService) Flash(sid, kind, msg string) error {
	return s.Sessions.SetFlash(sid, kind, msg)
}

func (s *AuthService) PopFlash(sid string) (*domain.Flash, error) {
	if sid == "" {
		return nil, nil
	}
	return s.Sessions.PopFlash(sid)
}

func (s *AuthService) Purge(maxAge time.Duration) (int64, error) {
	return s.Sessions.PurgeOlderThan(maxAge)
}
