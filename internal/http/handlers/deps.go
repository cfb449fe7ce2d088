package handlers

import (
	"dealerpro/internal/config"
	"dealerpro/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	DashboardHandler *DashboardHandler
	MotorHandler     *MotorHandler
	VideoHandler     *VideoHandler
	UserHandler      *UserHandler
	ProfileHandler   *ProfileHandler
}

// NewDeps builds the page handlers. Services are created per request around the caller's
// API client, so the handlers only hold the session service and config.
func NewDeps(cfg config.Config, auth *services.AuthService) *Deps {
	b := base{Auth: auth, Cfg: cfg}
	return &Deps{
		AuthHandler:      &AuthHandler{base: b},
		DashboardHandler: &DashboardHandler{base: b},
		MotorHandler:     &MotorHandler{base: b},
		VideoHandler:     &VideoHandler{base: b},
		UserHandler:      &UserHandler{base: b},
		ProfileHandler:   &ProfileHandler{base: b},
	}
}
