package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
)

// LoadSession reads the sid cookie once per request. A signed-in browser gets its user and an
// API client carrying its token in Locals; everyone gets the anonymous client and a lazy flash.
func LoadSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			c.SetUserContext(apiclient.ContextWithRequestID(c.UserContext(), rid))
		}
		sid := c.Cookies("sid")
		sess, err := auth.Session(sid)
		if err != nil {
			applog.Error(c, "session.load.fail", err, nil)
			sess = nil
		}
		if sess.Authenticated() {
			c.Locals("session", sess)
			c.Locals("user", sess.User)
			c.Locals("user_id", sess.User.ID)
			c.Locals("api", auth.ClientFor(sess))
		} else {
			c.Locals("api", auth.ClientFor(nil))
		}
		if sid != "" {
			c.Locals("flash", popFlash(func() *domain.Flash {
				f, err := auth.PopFlash(sid)
				if err != nil {
					applog.Error(c, "flash.load.fail", err, nil)
				}
				return f
			}))
		}
		return c.Next()
	}
}

// resolveUser returns the signed-in user, reading the session when LoadSession did not run.
func resolveUser(c *fiber.Ctx, auth *services.AuthService) *domain.User {
	if u := currentUser(c); u != nil {
		return u
	}
	u, err := auth.CurrentUser(c.Cookies("sid"))
	if err != nil || u == nil {
		return nil
	}
	c.Locals("user", u)
	c.Locals("user_id", u.ID)
	return u
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if resolveUser(c, auth) == nil {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RequireAdmin lets admins through. Other signed-in users land on the dashboard.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := resolveUser(c, auth)
		if u == nil {
			return c.Redirect("/login")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"role": u.Role})
			return c.Redirect("/")
		}
		return c.Next()
	}
}
