package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	"dealerpro/internal/forms"
	applog "dealerpro/internal/log"
	"dealerpro/internal/pdf"
	"dealerpro/internal/services"
)

type ProfileHandler struct {
	base
}

func (h *ProfileHandler) svc(c *fiber.Ctx) *services.ProfileService {
	return services.NewProfileService(h.api(c), h.Auth)
}

// load fetches the fresh record, falling back to the copy in the session.
func (h *ProfileHandler) load(c *fiber.Ctx) (domain.User, error) {
	me := currentUser(c)
	u, err := h.svc(c).Load(c.UserContext(), me.ID)
	if err != nil {
		return *me, err
	}
	return *u, nil
}

func (h *ProfileHandler) page(c *fiber.Ctx, f *forms.Identity, notice string) error {
	if notice == "" {
		notice = f.Notice
	}
	return render(c, "profile", fiber.Map{
		"Title":    "Profil Saya",
		"Identity": h.identityView(c, f, forms.ModeEdit, false),
		"Notice":   notice,
	})
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	u, err := h.load(c)
	notice := ""
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Warn(c, "profile.load.fail", err, nil)
		notice = "Gagal memuat data profil"
	}
	return h.page(c, forms.FromUser(c.UserContext(), u, h.selector(c)), notice)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	f, submit := h.bindIdentity(c)
	if !submit {
		return h.page(c, f, "")
	}
	if !f.Validate(forms.ModeEdit) {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.page(c, f, "Mohon periksa kembali formulir Anda")
	}

	_, err := h.svc(c).Save(c.UserContext(), h.ensureSID(c), currentUser(c), f.Input())
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Error(c, "profile.save.fail", err, nil)
		c.Status(fiber.StatusBadRequest)
		return h.page(c, f, apiclient.UserMessage(err, "Gagal memperbarui profil"))
	}
	applog.Audit(c, "profile.update", nil)
	return h.redirectWithFlash(c, "/profile", domain.FlashSuccess, "Profil berhasil diperbarui")
}

// PDF streams the registration receipt as a download.
func (h *ProfileHandler) PDF(c *fiber.Ctx) error {
	u, err := h.load(c)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Warn(c, "profile.load.fail", err, map[string]any{"for": "pdf"})
	}

	var buf bytes.Buffer
	if err := pdf.ProfilePDF(&buf, u, time.Now()); err != nil {
		applog.Error(c, "profile.pdf.fail", err, nil)
		return h.redirectWithFlash(c, "/profile", domain.FlashError, "Gagal membuat PDF")
	}
	applog.Audit(c, "profile.pdf", nil)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(pdf.FileName(u.Name))
	return c.Send(buf.Bytes())
}
