package models

import (
	"github.com/google/uuid"
)

// AvailabilitySlot is a recurring weekly window during which a tutor accepts
// sessions. Times are wall-clock "HH:MM" strings; DayOfWeek follows time.Weekday
// numbering (Sunday = 0).
type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID   uuid.UUID `gorm:"not null;index" json:"-"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Tutor User `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
}
