package services

import "github.com/pkg/errors"

var (
	// ErrFileRequired: a new motor needs an image and a new ad needs a video.
	ErrFileRequired = errors.New("file required")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not allowed")
)
