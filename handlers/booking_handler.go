package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/omondi95/tutor_marketplace/services"
)

// BookingAPI is the slice of the booking service the HTTP layer needs.
type BookingAPI interface {
	Create(ctx context.Context, in services.CreateBookingInput) (*services.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID, reason *string) (*services.BookingView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*services.BookingView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*services.BookingView, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filters services.ListFilters) ([]services.BookingView, error)
	AttachPayment(ctx context.Context, id uuid.UUID, paymentID string) (*services.BookingView, error)
}

type BookingHandler struct {
	svc BookingAPI
}

func NewBookingHandler(svc BookingAPI) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// bookingErrorResponse maps the service's error taxonomy onto HTTP statuses.
func bookingErrorResponse(c *fiber.Ctx, err error) error {
	if be, ok := services.AsBookingError(err); ok {
		status := fiber.StatusBadRequest
		switch be.Code {
		case services.CodeTutorNotFound, services.CodeStudentNotFound, services.CodeBookingNotFound:
			status = fiber.StatusNotFound
		case services.CodeSlotConflict, services.CodeAlreadyCancelled, services.CodeCannotCancelCompleted, services.CodeInvalidTransition:
			status = fiber.StatusConflict
		case services.CodeTutorUnavailable, services.CodeCancellationDeadlinePassed:
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{"error": be.Message, "code": be.Code})
	}
	log.Printf("🔥 booking operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong, please try again."})
}

type CreateBookingRequest struct {
	TutorID     string  `json:"tutor_id" validate:"required,uuid"`
	Subject     string  `json:"subject" validate:"required"`
	StartTime   string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime     string  `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	booking, err := h.svc.Create(c.Context(), services.CreateBookingInput{
		TutorID:     tutorID,
		StudentID:   studentID,
		Subject:     req.Subject,
		StartTime:   startTime,
		EndTime:     endTime,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req CancelBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}

	booking, err := h.svc.Cancel(c.Context(), bookingID, req.Reason)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(booking)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := h.svc.UpdateStatus(c.Context(), bookingID, req.Status)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.svc.GetByID(c.Context(), bookingID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	if booking == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	return c.JSON(booking)
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var filters services.ListFilters
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if subject := c.Query("subject"); subject != "" {
		filters.Subject = &subject
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
		}
		filters.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
		}
		filters.EndDate = &t
	}

	bookings, err := h.svc.ListForUser(c.Context(), userID, filters)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(bookings)
}

type AttachPaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
}

// AttachPayment is called by the payment collaborator once a charge for the
// booking has succeeded.
func (h *BookingHandler) AttachPayment(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req AttachPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := h.svc.AttachPayment(c.Context(), bookingID, req.PaymentID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(booking)
}
