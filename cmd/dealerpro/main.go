package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/config"
	"dealerpro/internal/http/handlers"
	applog "dealerpro/internal/log"
	"dealerpro/internal/repos"
	"dealerpro/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.Log.File, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Setup(cfg.Log.Level, out)

	db, err := repos.OpenDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	authSvc := &services.AuthService{
		API:      apiclient.New(cfg.API.BaseURL, cfg.API.MediaURL, cfg.API.Timeout),
		Sessions: repos.NewSessionRepo(db, cfg.Session.Secret),
	}
	app := handlers.NewApp(cfg, authSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeSessions(ctx, authSvc, cfg.Session.MaxAge)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("[warn] shutdown: %v", err)
		}
	}()

	log.Printf("[http] listening on :%s", cfg.HTTP.Port)
	if err := app.Listen(":" + cfg.HTTP.Port); err != nil {
		log.Fatal(err)
	}
}

// purgeSessions drops sessions idle for longer than maxAge, once an hour until ctx ends.
func purgeSessions(ctx context.Context, auth *services.AuthService, maxAge time.Duration) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		if n, err := auth.Purge(maxAge); err != nil {
			applog.Error(nil, "session.purge.fail", err, nil)
		} else if n > 0 {
			applog.Info(nil, "session.purge", map[string]any{"removed": n})
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
