package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omondi95/tutor_marketplace/handlers"
	"github.com/omondi95/tutor_marketplace/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", h.GetMyBookings)
	booking.Post("", h.CreateBooking)
	booking.Get("/:bookingId", h.GetBooking)
	booking.Post("/:bookingId/cancel", h.CancelBooking)
	booking.Patch("/:bookingId/status", h.UpdateBookingStatus)
	booking.Post("/:bookingId/payment", h.AttachPayment)
}
