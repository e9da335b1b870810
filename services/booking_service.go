package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/omondi95/tutor_marketplace/events"
	"github.com/omondi95/tutor_marketplace/models"
	"github.com/omondi95/tutor_marketplace/scheduling"
)

// UserDirectory resolves user accounts. Absence is reported as (nil, nil);
// errors are infrastructure failures only.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AvailabilityStore exposes a tutor's recurring weekly availability.
type AvailabilityStore interface {
	FindByTutor(ctx context.Context, tutorID uuid.UUID) ([]models.AvailabilitySlot, error)
}

// ListFilters narrows a user's booking history. All fields are optional.
type ListFilters struct {
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
	Subject   *string
}

// BookingStore is the persistence contract for bookings. FindByID reports
// absence as (nil, nil). The store must make Create race-free for overlapping
// windows on the same tutor; the service's conflict check alone is not atomic
// with the insert.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	FindActiveByTutor(ctx context.Context, tutorID uuid.UUID) ([]models.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, cancellationReason *string) error
	AttachPayment(ctx context.Context, id uuid.UUID, paymentID string, status string) error
}

// BookingConfig carries the service's policy knobs. Zero values fall back to
// the defaults below.
type BookingConfig struct {
	CancellationWindow time.Duration
	LookupTimeout      time.Duration
	PublishTimeout     time.Duration
}

const (
	defaultLookupTimeout  = 5 * time.Second
	defaultPublishTimeout = 3 * time.Second
)

// BookingService orchestrates the booking lifecycle against the user
// directory, the availability store, the booking store and the event bus.
// It holds no mutable state of its own.
type BookingService struct {
	users        UserDirectory
	availability AvailabilityStore
	bookings     BookingStore
	publisher    events.Publisher
	cfg          BookingConfig
	now          func() time.Time
}

func NewBookingService(users UserDirectory, availability AvailabilityStore, bookings BookingStore, publisher events.Publisher, cfg BookingConfig) *BookingService {
	if cfg.CancellationWindow <= 0 {
		cfg.CancellationWindow = scheduling.DefaultCancellationWindow
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = defaultLookupTimeout
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &BookingService{
		users:        users,
		availability: availability,
		bookings:     bookings,
		publisher:    publisher,
		cfg:          cfg,
		now:          time.Now,
	}
}

// WithClock overrides the service's time source.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBookingInput is everything needed to request a session.
type CreateBookingInput struct {
	TutorID     uuid.UUID
	StudentID   uuid.UUID
	Subject     string
	StartTime   time.Time
	EndTime     time.Time
	TotalAmount float64
}

// BookingView is the outward shape of a booking.
type BookingView struct {
	ID                 uuid.UUID `json:"id"`
	TutorID            uuid.UUID `json:"tutor_id"`
	StudentID          uuid.UUID `json:"student_id"`
	Subject            string    `json:"subject"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	Status             string    `json:"status"`
	TotalAmount        float64   `json:"total_amount"`
	PaymentID          *string   `json:"payment_id"`
	CancellationReason *string   `json:"cancellation_reason"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toView(b *models.Booking) *BookingView {
	return &BookingView{
		ID:                 b.ID,
		TutorID:            b.TutorID,
		StudentID:          b.StudentID,
		Subject:            b.Subject,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		TotalAmount:        b.TotalAmount,
		PaymentID:          b.PaymentID,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// Create books a new session. Checks run in order; the first failure wins.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*BookingView, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	var tutor, student *models.User
	g, gctx := errgroup.WithContext(lookupCtx)
	g.Go(func() error {
		u, err := s.users.FindByID(gctx, in.TutorID)
		if err != nil {
			return fmt.Errorf("look up tutor: %w", err)
		}
		tutor = u
		return nil
	})
	g.Go(func() error {
		u, err := s.users.FindByID(gctx, in.StudentID)
		if err != nil {
			return fmt.Errorf("look up student: %w", err)
		}
		student = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if tutor == nil || tutor.Role != "tutor" {
		return nil, ErrTutorNotFound
	}
	if student == nil || student.Role != "student" {
		return nil, ErrStudentNotFound
	}

	if !in.EndTime.After(in.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if in.StartTime.Before(s.now()) {
		return nil, ErrBookingInPast
	}

	slots, err := s.availability.FindByTutor(lookupCtx, in.TutorID)
	if err != nil {
		return nil, fmt.Errorf("fetch availability: %w", err)
	}
	if !scheduling.IsWithinAvailability(slots, in.StartTime, in.EndTime) {
		return nil, ErrTutorUnavailable
	}

	active, err := s.bookings.FindActiveByTutor(lookupCtx, in.TutorID)
	if err != nil {
		return nil, fmt.Errorf("fetch active bookings: %w", err)
	}
	for _, existing := range active {
		if scheduling.Overlaps(in.StartTime, in.EndTime, existing.StartTime, existing.EndTime) {
			return nil, ErrSlotConflict
		}
	}

	booking := &models.Booking{
		TutorID:     in.TutorID,
		StudentID:   in.StudentID,
		Subject:     in.Subject,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      string(scheduling.StatusPending),
		TotalAmount: in.TotalAmount,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return toView(booking), nil
}

// Cancel cancels a booking under the deadline policy. When the booking had a
// payment attached, a refund event is published in the background; its outcome
// never affects the caller's result.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID, reason *string) (*BookingView, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	switch scheduling.Status(booking.Status) {
	case scheduling.StatusCancelled:
		return nil, ErrAlreadyCancelled
	case scheduling.StatusCompleted:
		return nil, ErrCannotCancelCompleted
	}
	if !scheduling.CanCancel(s.now(), booking.StartTime, s.cfg.CancellationWindow) {
		return nil, ErrCancellationDeadlinePassed
	}

	if err := s.bookings.UpdateStatus(ctx, id, string(scheduling.StatusCancelled), reason); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	hadPayment := booking.PaymentID != nil
	booking.Status = string(scheduling.StatusCancelled)
	booking.CancellationReason = reason

	if hadPayment {
		event := events.BookingCancelledEvent{
			BookingID:          booking.ID.String(),
			TutorID:            booking.TutorID.String(),
			StudentID:          booking.StudentID.String(),
			TotalAmount:        booking.TotalAmount,
			CancellationReason: reason,
			Timestamp:          s.now().UTC(),
		}
		go s.publishCancellation(event)
	}
	return toView(booking), nil
}

// publishCancellation notifies the refund pipeline. Best-effort: failures are
// logged and swallowed, never retried here.
func (s *BookingService) publishCancellation(event events.BookingCancelledEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("🔥 booking.cancelled publish panicked for booking %s: %v", event.BookingID, r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PublishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.TopicBookingCancelled, event); err != nil {
		log.Printf("🔥 failed to publish booking.cancelled for booking %s: %v", event.BookingID, err)
	}
}

// UpdateStatus moves a booking along the status state machine. Payment and
// event concerns are never touched on this path.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*BookingView, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	current := scheduling.Status(booking.Status)
	requested, err := scheduling.ParseStatus(newStatus)
	if err != nil {
		return nil, invalidTransition(current, scheduling.Status(newStatus))
	}
	if err := scheduling.ValidateTransition(current, requested); err != nil {
		return nil, invalidTransition(current, requested)
	}

	if err := s.bookings.UpdateStatus(ctx, id, string(requested), nil); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	booking.Status = string(requested)
	return toView(booking), nil
}

// GetByID returns the booking view, or (nil, nil) when the booking does not
// exist. Absence is a normal outcome for this read.
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, nil
	}
	return toView(booking), nil
}

// ListForUser returns every booking where the user is tutor or student,
// narrowed by the optional filters, most recent start time first.
func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]BookingView, error) {
	if filters.Subject != nil {
		trimmed := strings.TrimSpace(*filters.Subject)
		filters.Subject = &trimmed
	}
	bookings, err := s.bookings.ListForUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, *toView(&bookings[i]))
	}
	return views, nil
}

// AttachPayment records an external payment against a pending booking and
// confirms it. Called by the payment collaborator once the charge succeeds.
func (s *BookingService) AttachPayment(ctx context.Context, id uuid.UUID, paymentID string) (*BookingView, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	current := scheduling.Status(booking.Status)
	if err := scheduling.ValidateTransition(current, scheduling.StatusConfirmed); err != nil {
		return nil, invalidTransition(current, scheduling.StatusConfirmed)
	}

	if err := s.bookings.AttachPayment(ctx, id, paymentID, string(scheduling.StatusConfirmed)); err != nil {
		return nil, fmt.Errorf("attach payment: %w", err)
	}
	booking.PaymentID = &paymentID
	booking.Status = string(scheduling.StatusConfirmed)
	return toView(booking), nil
}
