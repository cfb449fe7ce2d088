package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/config"
	"dealerpro/internal/domain"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
)

const msgSessionExpired = "Sesi Anda telah berakhir, silakan login kembali"

// base carries what every page handler needs: the session service for flashes and the
// per-request API client LoadSession put into Locals.
type base struct {
	Auth *services.AuthService
	Cfg  config.Config
}

func sidCookie(cfg config.Config, sid string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   cfg.Session.CookieSecure,
	}
}

func (b *base) ensureSID(c *fiber.Ctx) string {
	if sid, ok := c.Locals("sid").(string); ok && sid != "" {
		return sid
	}
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(sidCookie(b.Cfg, sid))
	}
	c.Locals("sid", sid)
	return sid
}

// rotateSID issues a fresh sid at login so a pre-set cookie never becomes an authenticated one.
func (b *base) rotateSID(c *fiber.Ctx) string {
	if old := c.Cookies("sid"); old != "" {
		_ = b.Auth.Logout(old)
	}
	sid := uuid.NewString()
	c.Cookie(sidCookie(b.Cfg, sid))
	c.Locals("sid", sid)
	return sid
}

func (b *base) api(c *fiber.Ctx) *apiclient.Client {
	if cl, ok := c.Locals("api").(*apiclient.Client); ok && cl != nil {
		return cl
	}
	return b.Auth.ClientFor(nil)
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func (b *base) flash(c *fiber.Ctx, kind, msg string) {
	if err := b.Auth.Flash(b.ensureSID(c), kind, msg); err != nil {
		applog.Error(c, "flash.save.fail", err, nil)
	}
}

// redirectWithFlash finishes a POST the PRG way: the message shows on the next page.
func (b *base) redirectWithFlash(c *fiber.Ctx, to, kind, msg string) error {
	b.flash(c, kind, msg)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// failed reports an API failure as an error flash on the page at to. A 401 means the token
// is gone, so the browser is signed out instead.
func (b *base) failed(c *fiber.Ctx, err error, action, fallback, to string) error {
	if apiclient.IsStatus(err, http.StatusUnauthorized) {
		return b.expired(c)
	}
	applog.Error(c, action, err, nil)
	return b.redirectWithFlash(c, to, domain.FlashError, apiclient.UserMessage(err, fallback))
}

func (b *base) expired(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = b.Auth.Logout(sid)
	}
	applog.Security(c, "auth.session.expired", nil)
	return b.redirectWithFlash(c, "/login", domain.FlashError, msgSessionExpired)
}

// confirmed reads the answer from a confirm page. Only an explicit yes counts.
func confirmed(c *fiber.Ctx) bool {
	return c.FormValue("confirm") == "yes"
}
