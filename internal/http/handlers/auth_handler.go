package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	"dealerpro/internal/forms"
	"dealerpro/internal/log"
	"dealerpro/internal/services"
	"dealerpro/internal/validate"
)

const (
	msgLoginFailed    = "Login gagal"
	msgRegistered     = "Register berhasil, silahkan masukkan email dan password yang sudah Anda buat"
	msgRegisterFailed = "Registrasi gagal"
	msgWelcome        = "Selamat datang kembali!"
	msgLoggedOut      = "Berhasil keluar"
	msgTooManyLogins  = "Terlalu banyak percobaan. Silakan coba lagi nanti."
)

type AuthHandler struct {
	base
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{"Title": "Masuk", "Err": "", "Email": ""})
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, status int, email, msg string) error {
	return render(c.Status(status), "login", fiber.Map{"Title": "Masuk", "Err": msg, "Email": email})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, validate.MsgEmailFormat)
	}
	if !validate.Required(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "empty_password"})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, "Password harus diisi")
	}

	sid := h.rotateSID(c)
	if _, err := h.Auth.Login(c.UserContext(), sid, email, pass); err != nil {
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) && !errors.Is(err, services.ErrBadCreds) {
			log.Error(c, "auth.login.error", err, map[string]any{"email": email})
			return h.loginFailed(c, fiber.StatusBadGateway, email, msgLoginFailed)
		}
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, apiclient.UserMessage(err, msgLoginFailed))
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return h.redirectWithFlash(c, "/", domain.FlashSuccess, msgWelcome)
}

// LoginThrottled answers once the login limiter trips.
func (h *AuthHandler) LoginThrottled(c *fiber.Ctx) error {
	log.Security(c, "rate.login.hit", nil)
	return h.loginFailed(c, fiber.StatusTooManyRequests, c.FormValue("email"), msgTooManyLogins)
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/")
	}
	f := h.newIdentity(c)
	f.Load(c.UserContext())
	return h.registerPage(c, f, "")
}

func (h *AuthHandler) registerPage(c *fiber.Ctx, f *forms.Identity, notice string) error {
	if notice == "" {
		notice = f.Notice
	}
	return render(c, "register", fiber.Map{
		"Title":    "Daftar",
		"Identity": h.identityView(c, f, forms.ModeRegister, false),
		"Notice":   notice,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	f, submit := h.bindIdentity(c)
	if !submit {
		return h.registerPage(c, f, "")
	}
	if !f.Validate(forms.ModeRegister) {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.registerPage(c, f, forms.MsgIncomplete)
	}

	in := f.Input()
	in.Role = ""
	in.IsActive = nil
	if err := h.Auth.Register(c.UserContext(), in); err != nil {
		log.Warn(c, "auth.register.fail", err, map[string]any{"email": in.Email})
		c.Status(fiber.StatusBadRequest)
		return h.registerPage(c, f, apiclient.UserMessage(err, msgRegisterFailed))
	}

	log.Audit(c, "auth.register.success", map[string]any{"email": in.Email})
	return h.redirectWithFlash(c, "/login", domain.FlashSuccess, msgRegistered)
}

func (h *AuthHandler) LogoutConfirm(c *fiber.Ctx) error {
	return render(c, "confirm", fiber.Map{
		"Title":   "Keluar Akun?",
		"Message": "Apakah Anda yakin ingin keluar dari aplikasi?",
		"Confirm": "Ya, Keluar",
		"Action":  "/logout",
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if !confirmed(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	sid := h.ensureSID(c)
	if err := h.Auth.Logout(sid); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
	}
	log.Audit(c, "auth.logout", nil)
	return h.redirectWithFlash(c, "/login", domain.FlashSuccess, msgLoggedOut)
}
