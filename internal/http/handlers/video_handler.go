package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	"dealerpro/internal/forms"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
)

const msgVideoForbidden = "Anda tidak memiliki akses ke video ini"

// VideoHandler serves the video ads pages under /ads.
type VideoHandler struct {
	base
}

func (h *VideoHandler) svc(c *fiber.Ctx) *services.VideoService {
	return services.NewVideoService(h.api(c))
}

// refused maps lookup and ownership errors to a flash on the list.
func (h *VideoHandler) refused(c *fiber.Ctx, err error, action, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return h.redirectWithFlash(c, "/ads", domain.FlashError, "Video tidak ditemukan")
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "access.denied.video", map[string]any{"id": c.Params("id")})
		return h.redirectWithFlash(c, "/ads", domain.FlashError, msgVideoForbidden)
	}
	return h.failed(c, err, action, fallback, "/ads")
}

func (h *VideoHandler) List(c *fiber.Ctx) error {
	videos, err := h.svc(c).List(c.UserContext())
	notice := ""
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Error(c, "video.list.fail", err, nil)
		notice = apiclient.UserMessage(err, "Gagal memuat video iklan")
	}
	return render(c, "ads", fiber.Map{"Title": "Iklan Saya", "Videos": videos, "Notice": notice})
}

func (h *VideoHandler) formPage(c *fiber.Ctx, id string, f *forms.Video, notice string) error {
	action := "/ads"
	if id != "" {
		action = "/ads/" + id
	}
	return render(c, "ad_form", fiber.Map{
		"Title":  "Video Iklan",
		"ID":     id,
		"Action": action,
		"Form":   f,
		"Notice": notice,
	})
}

func (h *VideoHandler) New(c *fiber.Ctx) error {
	return h.formPage(c, "", forms.NewVideo(), "")
}

func (h *VideoHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	v, err := h.svc(c).Editable(c.UserContext(), currentUser(c), id)
	if err != nil {
		return h.refused(c, err, "video.load.fail", "Gagal memuat video iklan")
	}
	return h.formPage(c, id, forms.VideoFrom(*v), "")
}

func (h *VideoHandler) Create(c *fiber.Ctx) error { return h.save(c, "") }

func (h *VideoHandler) Update(c *fiber.Ctx) error { return h.save(c, c.Params("id")) }

func (h *VideoHandler) save(c *fiber.Ctx, id string) error {
	f := &forms.Video{Title: strings.TrimSpace(c.FormValue("title"))}
	file := formFile(c, "video")
	if !f.Validate(id == "", file, int64(h.Cfg.Upload.MaxVideoMB)<<20) {
		notice := forms.MsgIncomplete
		if msg := f.Errors.Get("video"); msg != "" {
			notice = msg
		}
		c.Status(fiber.StatusUnprocessableEntity)
		return h.formPage(c, id, f, notice)
	}

	v, err := h.svc(c).Save(c.UserContext(), currentUser(c), id, f.Title, apiclient.FileUpload(file))
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrForbidden):
		return h.refused(c, err, "video.save.fail", "Gagal menyimpan video")
	case apiclient.IsStatus(err, http.StatusUnauthorized):
		return h.expired(c)
	case err != nil:
		applog.Error(c, "video.save.fail", err, map[string]any{"id": id})
		c.Status(fiber.StatusBadRequest)
		return h.formPage(c, id, f, apiclient.UserMessage(err, "Gagal menyimpan video"))
	}

	msg := "Video berhasil ditambahkan"
	if id != "" {
		msg = "Video berhasil diperbarui"
	} else if v != nil {
		id = v.ID
	}
	applog.Audit(c, "video.save", map[string]any{"id": id})
	return h.redirectWithFlash(c, "/ads", domain.FlashSuccess, msg)
}

func (h *VideoHandler) DeleteConfirm(c *fiber.Ctx) error {
	return render(c, "confirm", fiber.Map{
		"Title":   "Hapus Video?",
		"Message": "Video iklan ini akan dihapus permanen.",
		"Confirm": "Ya, Hapus",
		"Action":  "/ads/" + c.Params("id") + "/delete",
	})
}

func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if !confirmed(c) {
		return c.Redirect("/ads", fiber.StatusSeeOther)
	}
	id := c.Params("id")
	if err := h.svc(c).Delete(c.UserContext(), currentUser(c), id); err != nil {
		return h.refused(c, err, "video.delete.fail", "Gagal menghapus video")
	}
	applog.Audit(c, "video.delete", map[string]any{"id": id})
	return h.redirectWithFlash(c, "/ads", domain.FlashSuccess, "Video berhasil dihapus")
}
