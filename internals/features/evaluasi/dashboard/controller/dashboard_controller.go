// internals/features/evaluasi/dashboard/controller/dashboard_controller.go
package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashService "perwadag_backend/internals/features/evaluasi/dashboard/service"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/scope"
)

type DashboardController struct {
	Service *dashService.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: dashService.NewDashboardService(db)}
}

// GET /api/evaluasi/dashboard
func (h *DashboardController) Summary(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	tahun := 0
	if v := c.Query("tahun"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			tahun = n
		}
	}

	sum, err := h.Service.Summary(sc, tahun)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", sum)
}
