package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	start := time.Date(2025, 12, 4, 10, 0, 0, 0, time.UTC)
	deadline := start.Add(-DefaultCancellationWindow)

	t.Run("well before deadline", func(t *testing.T) {
		assert.True(t, CanCancel(start.Add(-72*time.Hour), start, DefaultCancellationWindow))
	})

	t.Run("one second before deadline", func(t *testing.T) {
		assert.True(t, CanCancel(deadline.Add(-time.Second), start, DefaultCancellationWindow))
	})

	t.Run("exactly at deadline is too late", func(t *testing.T) {
		assert.False(t, CanCancel(deadline, start, DefaultCancellationWindow))
	})

	t.Run("after deadline", func(t *testing.T) {
		assert.False(t, CanCancel(deadline.Add(time.Hour), start, DefaultCancellationWindow))
	})

	t.Run("custom window", func(t *testing.T) {
		window := 48 * time.Hour
		assert.False(t, CanCancel(start.Add(-36*time.Hour), start, window))
		assert.True(t, CanCancel(start.Add(-49*time.Hour), start, window))
	})
}

func TestCancellationDeadline(t *testing.T) {
	start := time.Date(2025, 12, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(-24*time.Hour), CancellationDeadline(start, DefaultCancellationWindow))
}
