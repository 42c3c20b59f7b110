// internals/route/details/penilaian_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"perwadag_backend/internals/constants"
	perController "perwadag_backend/internals/features/penilaian/periode/controller"
	prController "perwadag_backend/internals/features/penilaian/penilaian_risiko/controller"
	authmw "perwadag_backend/internals/middlewares/auth"
)

// PenilaianRoutes: periode evaluasi (admin) + penilaian risiko.
func PenilaianRoutes(protected fiber.Router, db *gorm.DB) {
	perCtrl := perController.NewPeriodeController(db)
	prCtrl := prController.NewPenilaianRisikoController(db)

	penilaian := protected.Group("/penilaian")

	adminOnly := authmw.OnlyRoles(
		constants.RoleErrorAdmin("periode evaluasi"), constants.AdminOnly...)
	evaluatorOnly := authmw.OnlyRoles(
		constants.RoleErrorEvaluator("penilaian risiko"), constants.EvaluatorRoles...)

	periode := penilaian.Group("/periode")
	periode.Post("/", adminOnly, perCtrl.Create)
	periode.Get("/", perCtrl.List)
	periode.Get("/:id", perCtrl.Detail)
	periode.Get("/:id/summary", evaluatorOnly, perCtrl.Summary)
	periode.Post("/:id/regenerate", adminOnly, perCtrl.Regenerate)
	periode.Patch("/:id/status", adminOnly, perCtrl.SetStatus)
	periode.Patch("/:id/lock", adminOnly, perCtrl.SetLock)
	periode.Delete("/:id", adminOnly, perCtrl.Delete)

	pr := penilaian.Group("/penilaian-risiko")
	pr.Get("/", prCtrl.List)
	pr.Get("/:id", prCtrl.Detail)
	pr.Patch("/:id", evaluatorOnly, prCtrl.Update)
	pr.Post("/:id/calculate", evaluatorOnly, prCtrl.Calculate)
}
