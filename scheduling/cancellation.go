package scheduling

import "time"

// DefaultCancellationWindow is how far before a session's start a booking can
// still be cancelled without penalty.
const DefaultCancellationWindow = 24 * time.Hour

// CancellationDeadline is the last instant at which cancellation is still
// permitted for a session starting at start.
func CancellationDeadline(start time.Time, window time.Duration) time.Time {
	return start.Add(-window)
}

// CanCancel reports whether a cancellation at now beats the deadline. The
// boundary is exclusive: a cancellation exactly at the deadline is too late.
func CanCancel(now, start time.Time, window time.Duration) bool {
	return now.Before(CancellationDeadline(start, window))
}
