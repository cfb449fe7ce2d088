package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"dealerpro/internal/config"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
	"dealerpro/web"
)

const (
	msgServerError = "Terjadi kesalahan. Silakan coba lagi."
	msgNotFound    = "Halaman tidak ditemukan"
	msgCSRF        = "Pemeriksaan keamanan gagal. Muat ulang halaman lalu coba lagi."
)

// ErrorHandler logs the failure and shows a friendly page; internals never reach the body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgServerError
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		switch code {
		case fiber.StatusNotFound:
			msg = msgNotFound
		case fiber.StatusRequestEntityTooLarge:
			msg = "Ukuran file terlalu besar"
		}
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	if rerr := renderError(c, code, "", msg); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// NewApp wires views, middleware and every route around one session service.
func NewApp(cfg config.Config, auth *services.AuthService) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	engine.AddFunc("media", auth.API.MediaURL)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	// media lives on the API host, so cross-origin embedding stays allowed
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		MaxAge: 3600,
	}))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	app.Use(LoadSession(auth))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return renderError(c, fiber.StatusTooManyRequests, "", "Terlalu banyak permintaan. Silakan coba lagi nanti.")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.Session.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return renderError(c, fiber.StatusForbidden, "", msgCSRF)
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	deps := NewDeps(cfg, auth)
	Routes(app, deps, auth)

	app.Use(func(c *fiber.Ctx) error {
		return renderError(c, fiber.StatusNotFound, "404", msgNotFound)
	})
	return app
}

// Routes mounts the pages. Everything but login and register needs a signed-in user.
func Routes(app *fiber.App, d *Deps, auth *services.AuthService) {
	authH := d.AuthHandler
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:          5,
		Expiration:   10 * time.Minute,
		LimitReached: authH.LoginThrottled,
	}), authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)

	user := RequireUser(auth)
	app.Get("/logout", user, authH.LogoutConfirm)
	app.Post("/logout", authH.Logout)

	app.Get("/", user, d.DashboardHandler.Show)

	motors := app.Group("/motors", user)
	motors.Get("/", d.MotorHandler.List)
	motors.Get("/new", d.MotorHandler.New)
	motors.Post("/", d.MotorHandler.Create)
	motors.Get("/:id/edit", d.MotorHandler.Edit)
	motors.Post("/:id", d.MotorHandler.Update)
	motors.Get("/:id/delete", d.MotorHandler.DeleteConfirm)
	motors.Post("/:id/delete", d.MotorHandler.Delete)

	ads := app.Group("/ads", user)
	ads.Get("/", d.VideoHandler.List)
	ads.Get("/new", d.VideoHandler.New)
	ads.Post("/", d.VideoHandler.Create)
	ads.Get("/:id/edit", d.VideoHandler.Edit)
	ads.Post("/:id", d.VideoHandler.Update)
	ads.Get("/:id/delete", d.VideoHandler.DeleteConfirm)
	ads.Post("/:id/delete", d.VideoHandler.Delete)

	users := app.Group("/users", RequireAdmin(auth))
	users.Get("/", d.UserHandler.List)
	users.Get("/new", d.UserHandler.New)
	users.Post("/", d.UserHandler.Create)
	users.Get("/:id/edit", d.UserHandler.Edit)
	users.Post("/:id", d.UserHandler.Update)
	users.Get("/:id/delete", d.UserHandler.DeleteConfirm)
	users.Post("/:id/delete", d.UserHandler.Delete)

	profile := app.Group("/profile", user)
	profile.Get("/", d.ProfileHandler.Show)
	profile.Post("/", d.ProfileHandler.Update)
	profile.Get("/pdf", d.ProfileHandler.PDF)
}
