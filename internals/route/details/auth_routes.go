// internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"perwadag_backend/internals/configs"
	uController "perwadag_backend/internals/features/users/controller"
	"perwadag_backend/internals/middlewares"
	authmw "perwadag_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := uController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	protected := auth.Use(authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))
	protected.Get("/me", ctrl.Me)
	protected.Post("/logout", ctrl.Logout)
}
