// internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"perwadag_backend/internals/configs"
	"perwadag_backend/internals/helpers/oss"
	authmw "perwadag_backend/internals/middlewares/auth"
	"perwadag_backend/internals/route/details"
)

// SetupRoutes merangkai seluruh route API.
// /api/auth publik (login) + semi-publik (me/logout),
// sisanya di belakang AuthJWT.
func SetupRoutes(app *fiber.App, db *gorm.DB, storage oss.Storage) {
	api := app.Group("/api")

	details.AuthRoutes(api, db)

	protected := api.Group("", authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))

	details.UserRoutes(protected, db)
	details.EvaluasiRoutes(protected, db, storage)
	details.PenilaianRoutes(protected, db)
}
