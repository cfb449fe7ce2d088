package handlers

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	"dealerpro/internal/forms"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
)

type MotorHandler struct {
	base
}

func (h *MotorHandler) svc(c *fiber.Ctx) *services.MotorService {
	return services.NewMotorService(h.api(c))
}

// formFile returns the uploaded file under name, or nil when none was chosen.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}

func (h *MotorHandler) List(c *fiber.Ctx) error {
	motors, err := h.svc(c).List(c.UserContext())
	notice := ""
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Error(c, "motor.list.fail", err, nil)
		notice = apiclient.UserMessage(err, "Gagal memuat data motor")
	}
	return render(c, "motors", fiber.Map{"Title": "Manajemen Motor", "Motors": motors, "Notice": notice})
}

func (h *MotorHandler) formPage(c *fiber.Ctx, id string, f *forms.Motor, notice string) error {
	action := "/motors"
	if id != "" {
		action = "/motors/" + id
	}
	return render(c, "motor_form", fiber.Map{
		"Title":  "Motor",
		"ID":     id,
		"Action": action,
		"Form":   f,
		"Notice": notice,
	})
}

func (h *MotorHandler) New(c *fiber.Ctx) error {
	return h.formPage(c, "", forms.NewMotor(time.Now().Year()), "")
}

func (h *MotorHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	m, err := h.svc(c).Find(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return h.redirectWithFlash(c, "/motors", domain.FlashError, "Motor tidak ditemukan")
	}
	if err != nil {
		return h.failed(c, err, "motor.load.fail", "Gagal memuat data motor", "/motors")
	}
	return h.formPage(c, id, forms.MotorFrom(*m), "")
}

func (h *MotorHandler) Create(c *fiber.Ctx) error { return h.save(c, "") }

func (h *MotorHandler) Update(c *fiber.Ctx) error { return h.save(c, c.Params("id")) }

// storedImage puts the saved picture back on a re-shown edit form.
func (h *MotorHandler) storedImage(c *fiber.Ctx, id string, f *forms.Motor) {
	if id == "" {
		return
	}
	if m, err := h.svc(c).Find(c.UserContext(), id); err == nil {
		f.Image = m.Image
	}
}

func (h *MotorHandler) save(c *fiber.Ctx, id string) error {
	f := &forms.Motor{Values: forms.MotorValues{
		Name:   c.FormValue("name"),
		Brand:  c.FormValue("brand"),
		Year:   c.FormValue("year"),
		Color:  c.FormValue("color"),
		Price:  c.FormValue("price"),
		Status: c.FormValue("status"),
	}}
	img := formFile(c, "gambar")
	if !f.Validate(id == "", img, int64(h.Cfg.Upload.MaxImageMB)<<20) {
		notice := forms.MsgIncomplete
		if msg := f.Errors.Get("gambar"); msg != "" {
			notice = msg
		}
		h.storedImage(c, id, f)
		c.Status(fiber.StatusUnprocessableEntity)
		return h.formPage(c, id, f, notice)
	}

	m, err := h.svc(c).Save(c.UserContext(), id, f.Input(), apiclient.FileUpload(img))
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Error(c, "motor.save.fail", err, map[string]any{"id": id})
		h.storedImage(c, id, f)
		c.Status(fiber.StatusBadRequest)
		return h.formPage(c, id, f, apiclient.UserMessage(err, "Operasi gagal"))
	}

	msg := "Motor berhasil ditambahkan"
	if id != "" {
		msg = "Motor berhasil diperbarui"
	} else if m != nil {
		id = m.ID
	}
	applog.Audit(c, "motor.save", map[string]any{"id": id})
	return h.redirectWithFlash(c, "/motors", domain.FlashSuccess, msg)
}

func (h *MotorHandler) DeleteConfirm(c *fiber.Ctx) error {
	return render(c, "confirm", fiber.Map{
		"Title":   "Hapus Motor?",
		"Message": "Apakah Anda yakin ingin menghapus motor ini? Data tidak bisa dikembalikan.",
		"Confirm": "Ya, Hapus",
		"Action":  "/motors/" + c.Params("id") + "/delete",
	})
}

func (h *MotorHandler) Delete(c *fiber.Ctx) error {
	if !confirmed(c) {
		return c.Redirect("/motors", fiber.StatusSeeOther)
	}
	id := c.Params("id")
	if err := h.svc(c).Delete(c.UserContext(), id); err != nil {
		return h.failed(c, err, "motor.delete.fail", "Gagal menghapus motor", "/motors")
	}
	applog.Audit(c, "motor.delete", map[string]any{"id": id})
	return h.redirectWithFlash(c, "/motors", domain.FlashSuccess, "Motor berhasil dihapus")
}
