package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi95/tutor_marketplace/handlers"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/api/v1/auth")

	api.Post("/register", h.RegisterUser)
	api.Post("/login", h.LoginUser)
}
