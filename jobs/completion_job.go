package jobs

import (
	"log"
	"time"

	"github.com/omondi95/tutor_marketplace/database"
	"github.com/omondi95/tutor_marketplace/models"
	"github.com/omondi95/tutor_marketplace/scheduling"
)

// CompletePastBookings moves confirmed bookings whose session has ended into
// the completed state. Pending bookings are left alone; they still need a
// payment before the session, and the deadline policy deals with stale ones.
func CompletePastBookings() {
	log.Println("Running job: CompletePastBookings...")

	now := time.Now()

	var finished []models.Booking
	err := database.DB.
		Where("status = ? AND end_time < ?", string(scheduling.StatusConfirmed), now).
		Find(&finished).Error
	if err != nil {
		log.Printf("Error checking for finished sessions: %v", err)
		return
	}

	if len(finished) == 0 {
		log.Println("No finished sessions found.")
		return
	}

	for _, booking := range finished {
		booking.Status = string(scheduling.StatusCompleted)
		database.DB.Save(&booking)
	}

	log.Printf("Marked %d booking(s) as completed.", len(finished))
}
