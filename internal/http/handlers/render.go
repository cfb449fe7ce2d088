package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealerpro/internal/domain"
)

// popFlash is stored in Locals by LoadSession; the flash is only consumed when a page renders.
type popFlash func() *domain.Flash

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		data["User"] = u
	}
	if _, set := data["Flash"]; !set {
		if pop, ok := c.Locals("flash").(popFlash); ok {
			if f := pop(); f != nil {
				data["Flash"] = f
			}
		}
	}
	// Token from the CSRF middleware; the cookie carries the same value when Locals is empty.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

// renderError shows the friendly error page. Internal details never reach it.
func renderError(c *fiber.Ctx, status int, title, msg string) error {
	return render(c.Status(status), "error", fiber.Map{"Title": title, "Message": msg})
}
