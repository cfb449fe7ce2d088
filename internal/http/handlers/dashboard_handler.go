package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"dealerpro/internal/apiclient"
	applog "dealerpro/internal/log"
	"dealerpro/internal/services"
)

type DashboardHandler struct {
	base
}

// Show renders the stat cards. A failed fetch is logged and the page shows zeroes.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	u := currentUser(c)
	stats, err := services.NewDashboardService(h.api(c)).Load(c.UserContext(), u)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return h.expired(c)
		}
		applog.Warn(c, "dashboard.load.fail", err, nil)
	}
	return render(c, "dashboard", fiber.Map{"Title": "Dashboard", "Stats": stats})
}
