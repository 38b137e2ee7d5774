package booking

import (
	"errors"
	"time"

	"pluralink/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("illegal booking status transition")
	ErrNotParticipant    = errors.New("actor is neither the client nor the provider on the booking")
	ErrActorNotAllowed   = errors.New("actor may not trigger this transition")
	ErrNotElapsed        = errors.New("booking end time has not elapsed")
)

// Booking is the ledger record for one appointment. Its status is mutated
// only through the transition methods below; the interval was derived from
// the service duration at creation and never changes on this record
// (rescheduling creates a new record).
type Booking struct {
	id                uuid.UUID
	clientID          uuid.UUID
	providerID        uuid.UUID
	serviceID         uuid.UUID
	date              time.Time
	interval          schedule.TimeInterval
	status            Status
	notes             string
	previousBookingID *uuid.UUID
	createdAt         time.Time
	updatedAt         time.Time
}

func NewBooking(
	clientID, providerID, serviceID uuid.UUID,
	date time.Time,
	interval schedule.TimeInterval,
	notes string,
) *Booking {
	return &Booking{
		id:         uuid.New(),
		clientID:   clientID,
		providerID: providerID,
		serviceID:  serviceID,
		date:       date,
		interval:   interval,
		status:     StatusPending,
		notes:      notes,
	}
}

func ReconstructBooking(
	id, clientID, providerID, serviceID uuid.UUID,
	date time.Time,
	interval schedule.TimeInterval,
	status Status,
	notes string,
	previousBookingID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		clientID:          clientID,
		providerID:        providerID,
		serviceID:         serviceID,
		date:              date,
		interval:          interval,
		status:            status,
		notes:             notes,
		previousBookingID: previousBookingID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) ClientID() uuid.UUID             { return b.clientID }
func (b *Booking) ProviderID() uuid.UUID           { return b.providerID }
func (b *Booking) ServiceID() uuid.UUID            { return b.serviceID }
func (b *Booking) Date() time.Time                 { return b.date }
func (b *Booking) Interval() schedule.TimeInterval { return b.interval }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) Notes() string                   { return b.notes }
func (b *Booking) PreviousBookingID() *uuid.UUID   { return b.previousBookingID }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }

func (b *Booking) IsParty(actorID uuid.UUID) bool {
	return b.clientID == actorID || b.providerID == actorID
}

// Counterparty returns the opposite party for the given participant.
func (b *Booking) Counterparty(actor Actor) (uuid.UUID, ActorType, error) {
	switch actor.ID {
	case b.clientID:
		return b.providerID, ActorProvider, nil
	case b.providerID:
		return b.clientID, ActorClient, nil
	default:
		return uuid.Nil, "", ErrNotParticipant
	}
}

// EndAt anchors the slot end to the booking date in loc.
func (b *Booking) EndAt(loc *time.Location) time.Time {
	return b.interval.EndOn(b.date, loc)
}

// Confirm moves pending -> confirmed. Only the booking's provider may
// confirm.
func (b *Booking) Confirm(actor Actor) error {
	if !b.IsParty(actor.ID) {
		return ErrNotParticipant
	}
	if !actor.CanConfirm() || actor.ID != b.providerID {
		return ErrActorNotAllowed
	}
	return b.transition(StatusConfirmed)
}

// Cancel moves pending/confirmed -> cancelled. Either party may cancel; the
// slot is immediately re-bookable.
func (b *Booking) Cancel(actor Actor) error {
	if !b.IsParty(actor.ID) {
		return ErrNotParticipant
	}
	if !actor.CanCancel() {
		return ErrActorNotAllowed
	}
	return b.transition(StatusCancelled)
}

// Complete moves confirmed -> completed, provider only, and only once the
// appointment end has elapsed relative to now.
func (b *Booking) Complete(actor Actor, now time.Time) error {
	if !b.IsParty(actor.ID) {
		return ErrNotParticipant
	}
	if !actor.CanComplete() || actor.ID != b.providerID {
		return ErrActorNotAllowed
	}
	if !canTransition(b.status, StatusCompleted) {
		return ErrInvalidTransition
	}
	if b.EndAt(now.Location()).After(now) {
		return ErrNotElapsed
	}
	return b.transition(StatusCompleted)
}

// MarkRescheduled retires this record in favour of a replacement. The
// client owns rescheduling; the record keeps its original slot values for
// audit and stops occupying the slot.
func (b *Booking) MarkRescheduled(actor Actor) error {
	if !b.IsParty(actor.ID) {
		return ErrNotParticipant
	}
	if !actor.CanReschedule() || actor.ID != b.clientID {
		return ErrActorNotAllowed
	}
	return b.transition(StatusRescheduled)
}

// RescheduleTo builds the replacement record: a fresh pending booking for
// the new slot carrying forward the parties, service and notes, linked back
// to this one.
func (b *Booking) RescheduleTo(date time.Time, interval schedule.TimeInterval) *Booking {
	next := NewBooking(b.clientID, b.providerID, b.serviceID, date, interval, b.notes)
	prev := b.id
	next.previousBookingID = &prev
	return next
}

func (b *Booking) transition(to Status) error {
	if !canTransition(b.status, to) {
		return ErrInvalidTransition
	}
	b.status = to
	return nil
}
