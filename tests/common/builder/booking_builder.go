//go:build unit || e2e

package builder

import (
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
	Status     booking.Status
	Notes      string
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		ProviderID: uuid.New(),
		ServiceID:  uuid.New(),
		// A Monday, so weekday-rule fixtures line up.
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    booking.StatusPending,
		Notes:     "First visit",
		CreatedAt: time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithSlot(start, end string) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) Interval() schedule.TimeInterval {
	iv, err := schedule.ParseTimeInterval(b.StartTime, b.EndTime, schedule.DefaultGranularityMin)
	if err != nil {
		panic("builder slot must parse: " + err.Error())
	}
	return iv
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.ClientID, b.ProviderID, b.ServiceID,
		b.Date, b.Interval(), b.Status, b.Notes,
		nil, b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:         b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
		Date:       b.Date,
		Interval:   b.Interval(),
		Status:     b.Status,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.CreatedAt,
	}
}

func (b *BookingBuilder) ClientActor() booking.Actor {
	return booking.Actor{ID: b.ClientID, Type: booking.ActorClient}
}

func (b *BookingBuilder) ProviderActor() booking.Actor {
	return booking.Actor{ID: b.ProviderID, Type: booking.ActorProvider}
}
