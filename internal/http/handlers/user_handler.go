package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/domain"
	"dealerpro/internal/forms"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
)

// UserHandler is the admin user manager. Routes sit behind RequireAdmin.
type UserHandler struct {
	base
}

func (h *UserHandler) svc(c *fiber.Ctx) *services.UserService {
	return services.NewUserService(h.api(c))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.svc(c).List(c.UserContext())
	notice := ""
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Error(c, "user.list.fail", err, nil)
		notice = apiclient.UserMessage(err, "Gagal memuat data user")
	}
	return render(c, "users", fiber.Map{"Title": "Manajemen User", "Users": users, "Notice": notice})
}

func (h *UserHandler) formPage(c *fiber.Ctx, id string, f *forms.Identity, notice string) error {
	mode, action := forms.ModeCreate, "/users"
	if id != "" {
		mode, action = forms.ModeEdit, "/users/"+id
	}
	if notice == "" {
		notice = f.Notice
	}
	return render(c, "user_form", fiber.Map{
		"Title":    "User",
		"ID":       id,
		"Action":   action,
		"Identity": h.identityView(c, f, mode, true),
		"Notice":   notice,
	})
}

func (h *UserHandler) New(c *fiber.Ctx) error {
	f := h.newIdentity(c)
	f.Load(c.UserContext())
	f.Values.Role = domain.RoleSales
	f.Values.Active = "true"
	return h.formPage(c, "", f, "")
}

// Edit pre-populates every field from the stored record; the password stays empty.
func (h *UserHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	u, err := h.svc(c).Get(c.UserContext(), id)
	if err != nil {
		return h.failed(c, err, "user.load.fail", "Gagal memuat data user", "/users")
	}
	return h.formPage(c, id, forms.FromUser(c.UserContext(), *u, h.selector(c)), "")
}

func (h *UserHandler) Create(c *fiber.Ctx) error { return h.save(c, "") }

func (h *UserHandler) Update(c *fiber.Ctx) error { return h.save(c, c.Params("id")) }

func (h *UserHandler) save(c *fiber.Ctx, id string) error {
	f, submit := h.bindIdentity(c)
	if !submit {
		return h.formPage(c, id, f, "")
	}
	mode := forms.ModeCreate
	if id != "" {
		mode = forms.ModeEdit
	}
	if !f.Validate(mode) {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.formPage(c, id, f, forms.MsgIncomplete)
	}

	u, err := h.svc(c).Save(c.UserContext(), id, f.Input())
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Error(c, "user.save.fail", err, map[string]any{"id": id})
		c.Status(fiber.StatusBadRequest)
		return h.formPage(c, id, f, apiclient.UserMessage(err, "Operasi gagal"))
	}

	msg := "User berhasil ditambahkan"
	if id != "" {
		msg = "User berhasil diperbarui"
	} else if u != nil {
		id = u.ID
	}
	applog.Audit(c, "admin.user.save", map[string]any{"id": id, "role": f.Values.Role})
	return h.redirectWithFlash(c, "/users", domain.FlashSuccess, msg)
}

func (h *UserHandler) DeleteConfirm(c *fiber.Ctx) error {
	return render(c, "confirm", fiber.Map{
		"Title":   "Hapus User?",
		"Message": "Apakah Anda yakin ingin menghapus user ini?",
		"Confirm": "Ya, Hapus",
		"Action":  "/users/" + c.Params("id") + "/delete",
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if !confirmed(c) {
		return c.Redirect("/users", fiber.StatusSeeOther)
	}
	id := c.Params("id")
	if err := h.svc(c).Delete(c.UserContext(), id); err != nil {
		return h.failed(c, err, "admin.user.delete.fail", "Gagal menghapus user", "/users")
	}
	applog.Audit(c, "admin.user.delete", map[string]any{"id": id})
	return h.redirectWithFlash(c, "/users", domain.FlashSuccess, "User berhasil dihapus")
}
