package services

import (
	"errors"
	"fmt"

	"github.com/omondi95/tutor_marketplace/scheduling"
)

// ErrorCode identifies a booking failure so transport layers can map it to the
// right user-facing signal instead of string-matching messages.
type ErrorCode string

const (
	CodeTutorNotFound              ErrorCode = "tutor_not_found"
	CodeStudentNotFound            ErrorCode = "student_not_found"
	CodeInvalidTimeRange           ErrorCode = "invalid_time_range"
	CodeBookingInPast              ErrorCode = "booking_in_past"
	CodeTutorUnavailable           ErrorCode = "tutor_unavailable"
	CodeSlotConflict               ErrorCode = "slot_conflict"
	CodeBookingNotFound            ErrorCode = "booking_not_found"
	CodeAlreadyCancelled           ErrorCode = "already_cancelled"
	CodeCannotCancelCompleted      ErrorCode = "cannot_cancel_completed"
	CodeCancellationDeadlinePassed ErrorCode = "cancellation_deadline_passed"
	CodeInvalidTransition          ErrorCode = "invalid_transition"
)

// Error is the closed set of booking failures surfaced by BookingService.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrTutorNotFound              = &Error{CodeTutorNotFound, "tutor not found"}
	ErrStudentNotFound            = &Error{CodeStudentNotFound, "student not found"}
	ErrInvalidTimeRange           = &Error{CodeInvalidTimeRange, "end time must be after start time"}
	ErrBookingInPast              = &Error{CodeBookingInPast, "start time cannot be in the past"}
	ErrTutorUnavailable           = &Error{CodeTutorUnavailable, "tutor is not available at the requested time"}
	ErrSlotConflict               = &Error{CodeSlotConflict, "tutor already has a booking in that time slot"}
	ErrBookingNotFound            = &Error{CodeBookingNotFound, "booking not found"}
	ErrAlreadyCancelled           = &Error{CodeAlreadyCancelled, "booking is already cancelled"}
	ErrCannotCancelCompleted      = &Error{CodeCannotCancelCompleted, "completed bookings cannot be cancelled"}
	ErrCancellationDeadlinePassed = &Error{CodeCancellationDeadlinePassed, "cancellation deadline has passed"}
)

// invalidTransition wraps a state-machine rejection, keeping both state names
// in the message.
func invalidTransition(from, to scheduling.Status) *Error {
	return &Error{CodeInvalidTransition, fmt.Sprintf("invalid status transition: %s -> %s", from, to)}
}

// AsBookingError unwraps err into the booking error taxonomy, if it belongs
// to it.
func AsBookingError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
