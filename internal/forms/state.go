package forms

import (
	"encoding/base64"
	"encoding/json"
)

// State is the previous render of a form, carried in a hidden field so the next request
// can tell which fields the user actually changed. Passwords are never part of it.
type State struct {
	Values Values `json:"v"`
	Errors Errors `json:"e,omitempty"`
}

func (s State) Encode() string {
	b, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeState returns false for a missing or unreadable state; callers then treat the
// post as a fresh form.
func DecodeState(raw string) (State, bool) {
	if raw == "" {
		return State{}, false
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return State{}, false
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, false
	}
	if s.Errors == nil {
		s.Errors = Errors{}
	}
	return s, true
}
