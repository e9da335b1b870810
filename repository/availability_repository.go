package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omondi95/tutor_marketplace/models"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) FindByTutor(ctx context.Context, tutorID uuid.UUID) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("day_of_week asc, start_time asc").
		Find(&slots).Error
	return slots, err
}

func (r *AvailabilityRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *AvailabilityRepository) Delete(ctx context.Context, tutorID, slotID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tutor_id = ?", slotID, tutorID).
		Delete(&models.AvailabilitySlot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
