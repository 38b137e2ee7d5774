//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/clock"
	"pluralink/internal/pkg/config"
	"pluralink/internal/usecase/commands"
	"pluralink/internal/usecase/queries"
	"pluralink/internal/usecase/shared"
	"pluralink/tests/common/builder"
	queriesmock "pluralink/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type bookingFixture struct {
	uow       *fakeUoW
	queries   *queriesmock.MockBookingQueries
	clock     *clock.MockClock
	uc        commands.BookingCommands
	client    booking.Actor
	provider  booking.Actor
	serviceID uuid.UUID
}

// A provider open Mondays 09:00-17:00 offering a 60 minute service, with the
// clock a day before the booked Monday.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &bookingFixture{
		uow:       newFakeUoW(),
		queries:   queriesmock.NewMockBookingQueries(ctrl),
		clock:     clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		client:    booking.Actor{ID: uuid.New(), Type: booking.ActorClient},
		provider:  booking.Actor{ID: uuid.New(), Type: booking.ActorProvider},
		serviceID: uuid.New(),
	}
	f.uow.reads.services[f.serviceID] = &shared.ServiceSnapshot{
		ID:          f.serviceID,
		ProviderID:  f.provider.ID,
		Name:        "Haircut",
		DurationMin: 60,
		Active:      true,
	}
	f.uow.reads.providers[f.provider.ID] = &shared.ProviderSnapshot{ID: f.provider.ID, DisplayName: "Sam's Salon"}

	rule, err := builder.NewRuleBuilder().
		With(func(b *builder.RuleBuilder) { b.ProviderID = f.provider.ID }).
		BuildDomain()
	require.NoError(t, err)
	f.uow.reads.rules[rule.ID()] = rule

	f.uc = commands.NewBookingUseCase(f.uow, f.queries, f.clock, config.SchedulingConfig{GranularityMin: 5})
	return f
}

func (f *bookingFixture) createReq() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ProviderID: f.provider.ID,
		ServiceID:  f.serviceID,
		Date:       "2026-03-02", // Monday
		StartTime:  "10:00",
		Notes:      "first visit",
	}
}

func (f *bookingFixture) addBooking(status booking.Status) *shared.BookingSnapshot {
	snap := builder.NewBookingBuilder().
		With(func(b *builder.BookingBuilder) {
			b.ClientID = f.client.ID
			b.ProviderID = f.provider.ID
			b.ServiceID = f.serviceID
		}).
		WithStatus(status).
		BuildSnapshot()
	f.uow.reads.bookings[snap.ID] = snap
	return snap
}

func (f *bookingFixture) expectReadBack() {
	f.queries.EXPECT().
		GetByIDSystem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
			return &queries.BookingView{ID: id}, nil
		})
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free slot", func(t *testing.T) {
		f := newBookingFixture(t)
		f.expectReadBack()

		view, err := f.uc.Create(ctx, f.client, f.createReq())
		require.NoError(t, err)
		require.NotNil(t, view)

		require.Len(t, f.uow.bookings.created, 1)
		created := f.uow.bookings.created[0]
		assert.Equal(t, booking.StatusPending, created.Status())
		assert.Equal(t, "10:00-11:00", created.Interval().String())
		assert.Equal(t, f.client.ID, created.ClientID())
		assert.Equal(t, view.ID, created.ID())
	})

	t.Run("providers may not book", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.uc.Create(ctx, f.provider, f.createReq())
		require.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("no booking with oneself", func(t *testing.T) {
		f := newBookingFixture(t)
		self := booking.Actor{ID: f.provider.ID, Type: booking.ActorClient}
		_, err := f.uc.Create(ctx, self, f.createReq())
		require.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createReq()
		req.Date = "02.03.2026"
		_, err := f.uc.Create(ctx, f.client, req)
		require.ErrorIs(t, err, commands.ErrInvalidArgument)
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createReq()
		req.ServiceID = uuid.New()
		_, err := f.uc.Create(ctx, f.client, req)
		require.ErrorIs(t, err, commands.ErrUnknownService)
	})

	t.Run("inactive service", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.services[f.serviceID].Active = false
		_, err := f.uc.Create(ctx, f.client, f.createReq())
		require.ErrorIs(t, err, commands.ErrUnknownService)
	})

	t.Run("service belongs to another provider", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.services[f.serviceID].ProviderID = uuid.New()
		_, err := f.uc.Create(ctx, f.client, f.createReq())
		require.ErrorIs(t, err, commands.ErrUnknownService)
	})

	t.Run("start time off the slot grid", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createReq()
		req.StartTime = "10:07"
		_, err := f.uc.Create(ctx, f.client, req)
		require.ErrorIs(t, err, commands.ErrInvalidArgument)
	})

	t.Run("slot already in the past", func(t *testing.T) {
		f := newBookingFixture(t)
		f.clock.Set(time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC))
		_, err := f.uc.Create(ctx, f.client, f.createReq())
		require.ErrorIs(t, err, commands.ErrInvalidArgument)
	})

	t.Run("slot outside the provider's windows", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createReq()
		req.StartTime = "18:00"
		_, err := f.uc.Create(ctx, f.client, req)
		require.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Empty(t, f.uow.bookings.created)
	})

	t.Run("slot taken by a live booking", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.reads.liveSlots = []schedule.TimeInterval{mustSlot(t, "10:30", "11:30")}
		_, err := f.uc.Create(ctx, f.client, f.createReq())
		require.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("exclusion constraint violation maps to slot unavailable", func(t *testing.T) {
		f := newBookingFixture(t)
		f.uow.bookings.createErr = infra.NewRepoErr(infra.KindConflict, "bookings_no_double_booking")
		_, err := f.uc.Create(ctx, f.client, f.createReq())
		require.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})
}

func TestBookingTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("provider confirms", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusPending)

		require.NoError(t, f.uc.Confirm(ctx, f.provider, snap.ID))
		assert.Equal(t, booking.StatusConfirmed, f.uow.bookings.statusUpdates[snap.ID])
	})

	t.Run("client may not confirm", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusPending)
		require.ErrorIs(t, f.uc.Confirm(ctx, f.client, snap.ID), commands.ErrForbidden)
	})

	t.Run("confirm unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)
		require.ErrorIs(t, f.uc.Confirm(ctx, f.provider, uuid.New()), commands.ErrBookingNotFound)
	})

	t.Run("cancel by either party", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusConfirmed)
		require.NoError(t, f.uc.Cancel(ctx, f.client, snap.ID))
		assert.Equal(t, booking.StatusCancelled, f.uow.bookings.statusUpdates[snap.ID])
	})

	t.Run("cancel a cancelled booking", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusCancelled)
		require.ErrorIs(t, f.uc.Cancel(ctx, f.client, snap.ID), commands.ErrInvalidState)
	})

	t.Run("complete after the appointment", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusConfirmed)
		f.clock.Set(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

		require.NoError(t, f.uc.Complete(ctx, f.provider, snap.ID))
		assert.Equal(t, booking.StatusCompleted, f.uow.bookings.statusUpdates[snap.ID])
	})

	t.Run("complete before the slot ends", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusConfirmed)
		f.clock.Set(time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC))
		require.ErrorIs(t, f.uc.Complete(ctx, f.provider, snap.ID), commands.ErrTooEarly)
	})

	t.Run("status changed by a concurrent transition", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusPending)
		f.uow.bookings.updateErr = infra.NewRepoErr(infra.KindConflict, "booking status changed concurrently")

		require.ErrorIs(t, f.uc.Confirm(ctx, f.provider, snap.ID), commands.ErrInvalidState)
	})
}

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()
	req := commands.RescheduleBookingRequest{Date: "2026-03-09", StartTime: "14:00"}

	t.Run("creates a linked replacement", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusConfirmed)
		f.expectReadBack()

		view, err := f.uc.Reschedule(ctx, f.client, snap.ID, req)
		require.NoError(t, err)
		require.NotNil(t, view)

		assert.Equal(t, booking.StatusRescheduled, f.uow.bookings.statusUpdates[snap.ID])
		require.Len(t, f.uow.bookings.created, 1)
		next := f.uow.bookings.created[0]
		assert.Equal(t, booking.StatusPending, next.Status())
		assert.Equal(t, "14:00-15:00", next.Interval().String())
		require.NotNil(t, next.PreviousBookingID())
		assert.Equal(t, snap.ID, *next.PreviousBookingID())

		// The old booking's slot must not count against the new one.
		require.NotNil(t, f.uow.reads.lastExclude)
		assert.Equal(t, snap.ID, *f.uow.reads.lastExclude)
	})

	t.Run("provider may not reschedule", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusConfirmed)
		_, err := f.uc.Reschedule(ctx, f.provider, snap.ID, req)
		require.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("completed booking cannot move", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusCompleted)
		_, err := f.uc.Reschedule(ctx, f.client, snap.ID, req)
		require.ErrorIs(t, err, commands.ErrInvalidState)
	})

	t.Run("target slot occupied", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusPending)
		f.uow.reads.liveSlots = []schedule.TimeInterval{mustSlot(t, "14:00", "15:00")}
		_, err := f.uc.Reschedule(ctx, f.client, snap.ID, req)
		require.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.uc.Reschedule(ctx, f.client, uuid.New(), req)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("service was removed", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusPending)
		delete(f.uow.reads.services, f.serviceID)

		_, err := f.uc.Reschedule(ctx, f.client, snap.ID, req)
		require.ErrorIs(t, err, commands.ErrUnknownService)
	})

	t.Run("old booking moved concurrently", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.addBooking(booking.StatusPending)
		f.uow.bookings.updateErr = infra.NewRepoErr(infra.KindConflict, "booking status changed concurrently")

		_, err := f.uc.Reschedule(ctx, f.client, snap.ID, req)
		require.ErrorIs(t, err, commands.ErrInvalidState)
	})
}
