package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi95/tutor_marketplace/handlers"
	"github.com/omondi95/tutor_marketplace/middleware"
)

func AvailabilityRoutes(app *fiber.App, h *handlers.AvailabilityHandler) {
	api := app.Group("/api/v1")

	tutor := api.Group("/tutors/availability", middleware.Protected(), middleware.TutorRequired())
	tutor.Get("", h.GetMyAvailability)
	tutor.Post("", h.CreateAvailabilitySlot)
	tutor.Delete("/:slotId", h.DeleteAvailabilitySlot)

	api.Get("/tutors/:tutorId/availability", h.GetTutorAvailability)
}
