package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omondi95/tutor_marketplace/models"
	"github.com/omondi95/tutor_marketplace/repository"
)

type AvailabilityHandler struct {
	slots *repository.AvailabilityRepository
}

func NewAvailabilityHandler(slots *repository.AvailabilityRepository) *AvailabilityHandler {
	return &AvailabilityHandler{slots: slots}
}

type CreateAvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

func (h *AvailabilityHandler) CreateAvailabilitySlot(c *fiber.Ctx) error {
	tutorID := currentUserID(c)

	var req CreateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start, _ := time.Parse("15:04", req.StartTime)
	end, _ := time.Parse("15:04", req.EndTime)
	if !end.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time must be before end time"})
	}

	newSlot := models.AvailabilitySlot{
		TutorID:   tutorID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.slots.Create(c.Context(), &newSlot); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create availability slot"})
	}
	return c.Status(fiber.StatusCreated).JSON(newSlot)
}

func (h *AvailabilityHandler) GetMyAvailability(c *fiber.Ctx) error {
	tutorID := currentUserID(c)

	slots, err := h.slots.FindByTutor(c.Context(), tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}
	return c.JSON(slots)
}

func (h *AvailabilityHandler) GetTutorAvailability(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	slots, err := h.slots.FindByTutor(c.Context(), tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}
	return c.JSON(slots)
}

func (h *AvailabilityHandler) DeleteAvailabilitySlot(c *fiber.Ctx) error {
	tutorID := currentUserID(c)
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	if err := h.slots.Delete(c.Context(), tutorID, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability slot not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete availability slot"})
	}
	return c.JSON(fiber.Map{"message": "Availability slot deleted"})
}
