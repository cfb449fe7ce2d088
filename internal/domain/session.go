package domain

import "time"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Session is the persisted browser session: API token plus the user record returned at login.
type Session struct {
	ID        string
	Token     string
	User      *User
	UpdatedAt time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

type Flash struct {
	Kind    string
	Message string
}
