package commands

import (
	"context"
	"time"

	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/clock"
	"pluralink/internal/pkg/config"
	"pluralink/internal/pkg/errs"
	"pluralink/internal/usecase/queries"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrUnknownService          = errs.New("unknown or inactive service")
	ErrUnknownProvider         = errs.New("unknown provider")
	ErrForbidden               = errs.New("actor may not perform this operation")
	ErrInvalidState            = errs.New("booking state does not allow this operation")
	ErrSlotUnavailable         = errs.New("slot is not available")
	ErrInvalidArgument         = errs.New("invalid argument")
	ErrTooEarly                = errs.New("appointment has not ended yet")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	Date       string
	StartTime  string
	Notes      string
}

type RescheduleBookingRequest struct {
	Date      string
	StartTime string
}

type BookingCommands interface {
	Create(ctx context.Context, actor booking.Actor, req CreateBookingRequest) (*queries.BookingView, error)
	Confirm(ctx context.Context, actor booking.Actor, id uuid.UUID) error
	Cancel(ctx context.Context, actor booking.Actor, id uuid.UUID) error
	Complete(ctx context.Context, actor booking.Actor, id uuid.UUID) error
	Reschedule(ctx context.Context, actor booking.Actor, id uuid.UUID, req RescheduleBookingRequest) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	granularityMin int
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	cfg config.SchedulingConfig,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
		granularityMin: cfg.GranularityMin,
	}
}

// Create books a slot for the acting client. The availability scan inside the
// transaction is advisory only; the bookings exclusion constraint is the
// arbiter under concurrency, and a violation surfaces as ErrSlotUnavailable
// without retry.
func (uc *bookingUseCaseImpl) Create(ctx context.Context, actor booking.Actor, req CreateBookingRequest) (*queries.BookingView, error) {
	if actor.Type != booking.ActorClient {
		return nil, ErrForbidden
	}
	if actor.ID == req.ProviderID {
		return nil, ErrForbidden
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidArgument)
	}

	svc, err := uc.uow.CommandReads().ServiceByID(ctx, req.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnknownService
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !svc.Active || svc.ProviderID != req.ProviderID {
		return nil, ErrUnknownService
	}
	if _, err = uc.uow.CommandReads().ProviderByID(ctx, req.ProviderID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnknownProvider
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slot, err := uc.parseSlot(req.StartTime, svc.DurationMin)
	if err != nil {
		return nil, err
	}
	if !slot.EndOn(date, time.UTC).After(uc.clock.Now().UTC()) {
		return nil, ErrInvalidArgument
	}

	entity := booking.NewBooking(actor.ID, req.ProviderID, req.ServiceID, date, slot, req.Notes)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := checkBookable(ctx, tx.Reads(), req.ProviderID, date, slot, nil); derr != nil {
			return derr
		}
		_, derr := tx.Bookings().Create(ctx, entity)
		return mapWriteErr(derr)
	})
	if err != nil {
		return nil, err
	}

	return uc.readBack(ctx, entity.ID())
}

func (uc *bookingUseCaseImpl) Confirm(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, func(b *booking.Booking) error {
		return b.Confirm(actor)
	})
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, func(b *booking.Booking) error {
		return b.Cancel(actor)
	})
}

func (uc *bookingUseCaseImpl) Complete(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	now := uc.clock.Now().UTC()
	return uc.transition(ctx, actor, id, func(b *booking.Booking) error {
		return b.Complete(actor, now)
	})
}

// Reschedule retires the booking and creates a linked replacement in one
// transaction. The old record flips to rescheduled before the insert so the
// exclusion constraint no longer counts its slot.
func (uc *bookingUseCaseImpl) Reschedule(ctx context.Context, actor booking.Actor, id uuid.UUID, req RescheduleBookingRequest) (*queries.BookingView, error) {
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidArgument)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		old := snap.Entity()

		svc, derr := tx.Reads().ServiceByID(ctx, old.ServiceID())
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrUnknownService
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		slot, derr := uc.parseSlot(req.StartTime, svc.DurationMin)
		if derr != nil {
			return derr
		}
		if !slot.EndOn(date, time.UTC).After(uc.clock.Now().UTC()) {
			return ErrInvalidArgument
		}

		from := old.Status()
		if derr = old.MarkRescheduled(actor); derr != nil {
			return mapDomainErr(derr)
		}
		oldID := old.ID()
		if derr = checkBookable(ctx, tx.Reads(), old.ProviderID(), date, slot, &oldID); derr != nil {
			return derr
		}

		if derr = tx.Bookings().UpdateStatus(ctx, old.ID(), from, old.Status()); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrInvalidState
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		next := old.RescheduleTo(date, slot)
		createdID = next.ID()
		_, derr = tx.Bookings().Create(ctx, next)
		return mapWriteErr(derr)
	})
	if err != nil {
		return nil, err
	}

	return uc.readBack(ctx, createdID)
}

func (uc *bookingUseCaseImpl) transition(ctx context.Context, actor booking.Actor, id uuid.UUID, apply func(*booking.Booking) error) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		entity := snap.Entity()
		from := entity.Status()
		if err = apply(entity); err != nil {
			return mapDomainErr(err)
		}
		if err = tx.Bookings().UpdateStatus(ctx, entity.ID(), from, entity.Status()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidState
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (uc *bookingUseCaseImpl) parseSlot(startTime string, durationMin int) (schedule.TimeInterval, error) {
	start, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return schedule.TimeInterval{}, errs.Mark(err, ErrInvalidArgument)
	}
	slot, err := schedule.IntervalFrom(start, durationMin, uc.granularityMin)
	if err != nil {
		return schedule.TimeInterval{}, errs.Mark(err, ErrInvalidArgument)
	}
	return slot, nil
}

func (uc *bookingUseCaseImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := uc.bookingQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// checkBookable is the advisory free-window scan: weekday rules minus live
// bookings, optionally ignoring the booking being moved.
func checkBookable(ctx context.Context, reads shared.CommandReads, providerID uuid.UUID, date time.Time, slot schedule.TimeInterval, exclude *uuid.UUID) error {
	rules, err := reads.RulesForWeekday(ctx, providerID, date.Weekday())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	busy, err := reads.LiveSlots(ctx, providerID, date, exclude)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	free := availability.SubtractAll(availability.FreeWindows(rules), busy)
	if !availability.IsBookable(free, slot) {
		return ErrSlotUnavailable
	}
	return nil
}

func mapDomainErr(err error) error {
	switch err {
	case booking.ErrNotParticipant:
		return ErrForbidden
	case booking.ErrActorNotAllowed:
		return ErrForbidden
	case booking.ErrInvalidTransition:
		return ErrInvalidState
	case booking.ErrNotElapsed:
		return ErrTooEarly
	default:
		return err
	}
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) {
		return ErrSlotUnavailable
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
