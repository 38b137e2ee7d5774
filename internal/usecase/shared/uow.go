package shared

import (
	"context"
	"time"

	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/review"
	"pluralink/internal/domain/schedule"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures. Business conflicts (exclusion violations) are
	// not retried; they surface to the caller.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command-side reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	AvailabilityRules() AvailabilityRuleRepository
	Reviews() ReviewRepository
	Reads() CommandReads
}

// CommandReads are the write side's advisory reads: fast-path validation
// before the storage constraints arbitrate.
type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	ProviderByID(ctx context.Context, id uuid.UUID) (*ProviderSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	RuleByID(ctx context.Context, id uuid.UUID) (*availability.Rule, error)
	RulesForProvider(ctx context.Context, providerID uuid.UUID) ([]*availability.Rule, error)
	RulesForWeekday(ctx context.Context, providerID uuid.UUID, weekday time.Weekday) ([]*availability.Rule, error)
	// LiveSlots returns the intervals of pending/confirmed bookings for one
	// provider-day, optionally excluding one booking (the one being moved).
	LiveSlots(ctx context.Context, providerID uuid.UUID, date time.Time, exclude *uuid.UUID) ([]schedule.TimeInterval, error)
	HasReview(ctx context.Context, bookingID uuid.UUID, reviewerType booking.ActorType) (bool, error)
}

// Write-side snapshots keep commands off the read-model types.
type ServiceSnapshot struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	Name        string
	DurationMin int
	Active      bool
}

type ProviderSnapshot struct {
	ID          uuid.UUID
	DisplayName string
}

type BookingSnapshot struct {
	ID                uuid.UUID
	ClientID          uuid.UUID
	ProviderID        uuid.UUID
	ServiceID         uuid.UUID
	Date              time.Time
	Interval          schedule.TimeInterval
	Status            booking.Status
	Notes             string
	PreviousBookingID *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Entity rehydrates the domain aggregate for lifecycle transitions.
func (s *BookingSnapshot) Entity() *booking.Booking {
	return booking.ReconstructBooking(
		s.ID, s.ClientID, s.ProviderID, s.ServiceID,
		s.Date, s.Interval, s.Status, s.Notes,
		s.PreviousBookingID, s.CreatedAt, s.UpdatedAt,
	)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// UpdateStatus is a compare-and-set: the write applies only while the row
	// still holds from, so a concurrent transition surfaces as KindConflict
	// instead of overwriting a terminal state.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error
}

type AvailabilityRuleRepository interface {
	Create(ctx context.Context, r *availability.Rule) (uuid.UUID, error)
	Update(ctx context.Context, r *availability.Rule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) (uuid.UUID, error)
}
