package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TutorID   uuid.UUID `gorm:"not null;index"`
	StudentID uuid.UUID `gorm:"not null;index"`
	Subject   string    `gorm:"size:255;not null"`
	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`
	Status    string    `gorm:"size:20;not null;default:'pending'"`

	TotalAmount        float64 `gorm:"type:numeric(10,2);not null"`
	PaymentID          *string `gorm:"size:255"`
	CancellationReason *string `gorm:"type:text"`

	Tutor   User `gorm:"foreignkey:TutorID"`
	Student User `gorm:"foreignkey:StudentID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
