package scheduling

import (
	"time"

	"github.com/omondi95/tutor_marketplace/models"
)

// minuteOfDay converts a timestamp's wall-clock component to minutes since
// midnight in the timestamp's own location.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// slotMinutes parses an "HH:MM" availability bound. Malformed values make the
// slot unmatchable rather than failing the whole check.
func slotMinutes(s string) (int, bool) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

// IsWithinAvailability reports whether the requested [start, end) window falls
// entirely inside at least one of the tutor's recurring weekly slots. Only the
// start's day of week is considered, so a session spanning midnight never
// matches. An empty slot list never matches.
func IsWithinAvailability(slots []models.AvailabilitySlot, start, end time.Time) bool {
	day := int(start.Weekday())
	startMin := minuteOfDay(start)
	endMin := minuteOfDay(end)

	for _, slot := range slots {
		if slot.DayOfWeek != day {
			continue
		}
		slotStart, ok := slotMinutes(slot.StartTime)
		if !ok {
			continue
		}
		slotEnd, ok := slotMinutes(slot.EndTime)
		if !ok {
			continue
		}
		if slotStart <= startMin && endMin <= slotEnd {
			return true
		}
	}
	return false
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back windows (aEnd == bStart) do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
