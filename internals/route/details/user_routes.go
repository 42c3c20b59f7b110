// internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"perwadag_backend/internals/constants"
	uController "perwadag_backend/internals/features/users/controller"
	authmw "perwadag_backend/internals/middlewares/auth"
)

// UserRoutes: manajemen akun, khusus admin. Router sudah ber-AuthJWT.
func UserRoutes(protected fiber.Router, db *gorm.DB) {
	ctrl := uController.NewUserController(db)

	users := protected.Group("/a/users",
		authmw.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly...))

	users.Post("/", ctrl.Create)
	users.Get("/", ctrl.List)
	users.Get("/:id", ctrl.Detail)
	users.Patch("/:id", ctrl.Update)
	users.Delete("/:id", ctrl.Delete)
}
