// Package web holds the HTML templates and static assets, embedded into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html templates/layouts/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

func Templates() fs.FS {
	sub, _ := fs.Sub(templateFS, "templates")
	return sub
}

func Static() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}
