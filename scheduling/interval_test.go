package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omondi95/tutor_marketplace/models"
)

func ts(hour, min int) time.Time {
	// 2025-12-01 is a Monday.
	return time.Date(2025, 12, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	t0 := ts(10, 0)
	t1 := ts(11, 0)
	t2 := ts(12, 0)

	t.Run("identical intervals always overlap", func(t *testing.T) {
		assert.True(t, Overlaps(t0, t1, t0, t1))
	})

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, Overlaps(t0, t1, ts(10, 30), ts(11, 30)))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, Overlaps(t0, t2, ts(10, 30), t1))
	})

	t.Run("adjacent intervals never overlap", func(t *testing.T) {
		assert.False(t, Overlaps(t0, t1, t1, t2))
		assert.False(t, Overlaps(t1, t2, t0, t1))
	})

	t.Run("disjoint intervals", func(t *testing.T) {
		assert.False(t, Overlaps(t0, t1, ts(14, 0), ts(15, 0)))
	})

	t.Run("symmetric", func(t *testing.T) {
		cases := [][4]time.Time{
			{t0, t1, ts(10, 30), ts(11, 30)},
			{t0, t1, t1, t2},
			{t0, t1, ts(14, 0), ts(15, 0)},
			{t0, t1, t0, t1},
		}
		for _, c := range cases {
			assert.Equal(t, Overlaps(c[0], c[1], c[2], c[3]), Overlaps(c[2], c[3], c[0], c[1]))
		}
	})
}

func mondaySlot(start, end string) models.AvailabilitySlot {
	return models.AvailabilitySlot{DayOfWeek: 1, StartTime: start, EndTime: end}
}

func TestIsWithinAvailability(t *testing.T) {
	slots := []models.AvailabilitySlot{mondaySlot("09:00", "17:00")}

	t.Run("empty slot list never matches", func(t *testing.T) {
		assert.False(t, IsWithinAvailability(nil, ts(10, 0), ts(11, 0)))
		assert.False(t, IsWithinAvailability([]models.AvailabilitySlot{}, ts(10, 0), ts(11, 0)))
	})

	t.Run("window inside slot", func(t *testing.T) {
		assert.True(t, IsWithinAvailability(slots, ts(10, 0), ts(11, 0)))
	})

	t.Run("window flush with slot bounds", func(t *testing.T) {
		assert.True(t, IsWithinAvailability(slots, ts(9, 0), ts(10, 0)))
		assert.True(t, IsWithinAvailability(slots, ts(16, 0), ts(17, 0)))
	})

	t.Run("window extending past slot end", func(t *testing.T) {
		assert.False(t, IsWithinAvailability(slots, ts(16, 30), ts(17, 30)))
	})

	t.Run("window starting before slot", func(t *testing.T) {
		assert.False(t, IsWithinAvailability(slots, ts(8, 30), ts(9, 30)))
	})

	t.Run("wrong day of week", func(t *testing.T) {
		tuesday := []models.AvailabilitySlot{{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"}}
		assert.False(t, IsWithinAvailability(tuesday, ts(10, 0), ts(11, 0)))
	})

	t.Run("session spanning midnight never matches", func(t *testing.T) {
		late := []models.AvailabilitySlot{mondaySlot("22:00", "23:59")}
		start := ts(23, 0)
		end := start.Add(2 * time.Hour)
		assert.False(t, IsWithinAvailability(late, start, end))
	})

	t.Run("second slot of the day can match", func(t *testing.T) {
		split := []models.AvailabilitySlot{
			mondaySlot("08:00", "10:00"),
			mondaySlot("14:00", "18:00"),
		}
		assert.True(t, IsWithinAvailability(split, ts(15, 0), ts(16, 0)))
		assert.False(t, IsWithinAvailability(split, ts(11, 0), ts(12, 0)))
	})

	t.Run("malformed slot times are skipped", func(t *testing.T) {
		bad := []models.AvailabilitySlot{mondaySlot("nine", "17:00")}
		assert.False(t, IsWithinAvailability(bad, ts(10, 0), ts(11, 0)))
	})
}
