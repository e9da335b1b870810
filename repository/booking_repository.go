package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omondi95/tutor_marketplace/models"
	"github.com/omondi95/tutor_marketplace/scheduling"
	"github.com/omondi95/tutor_marketplace/services"
)

// activeStatuses are the statuses that still occupy a schedule slot.
var activeStatuses = []string{string(scheduling.StatusPending), string(scheduling.StatusConfirmed)}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking inside a transaction that locks the tutor's
// active bookings and re-checks for overlap. The service already ran the same
// conflict check, but without this the check and the insert race each other
// under concurrent requests for the same tutor.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tutor_id = ? AND status IN ?", booking.TutorID, activeStatuses).
			Find(&active).Error; err != nil {
			return err
		}
		for _, existing := range active {
			if scheduling.Overlaps(booking.StartTime, booking.EndTime, existing.StartTime, existing.EndTime) {
				return services.ErrSlotConflict
			}
		}
		return tx.Create(booking).Error
	})
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindActiveByTutor(ctx context.Context, tutorID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("tutor_id = ? AND status IN ?", tutorID, activeStatuses).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID uuid.UUID, filters services.ListFilters) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("tutor_id = ? OR student_id = ?", userID, userID)

	if filters.Status != nil && *filters.Status != "" {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("start_time >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("start_time <= ?", *filters.EndDate)
	}
	if filters.Subject != nil && *filters.Subject != "" {
		query = query.Where("subject ILIKE ?", "%"+*filters.Subject+"%")
	}

	var bookings []models.Booking
	err := query.Order("start_time desc").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, cancellationReason *string) error {
	updates := map[string]any{"status": status}
	if cancellationReason != nil {
		updates["cancellation_reason"] = *cancellationReason
	}
	result := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) AttachPayment(ctx context.Context, id uuid.UUID, paymentID string, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]any{"payment_id": paymentID, "status": status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrBookingNotFound
	}
	return nil
}
