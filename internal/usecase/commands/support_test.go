//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/review"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, start, end string) schedule.TimeInterval {
	t.Helper()
	iv, err := schedule.ParseTimeInterval(start, end, schedule.DefaultGranularityMin)
	require.NoError(t, err)
	return iv
}

// In-memory stand-ins for the transaction plumbing. The write repos record
// calls; the reads serve fixtures and surface misses as repository
// not-found errors, same as the real readstores.

type fakeReads struct {
	services  map[uuid.UUID]*shared.ServiceSnapshot
	providers map[uuid.UUID]*shared.ProviderSnapshot
	bookings  map[uuid.UUID]*shared.BookingSnapshot
	rules     map[uuid.UUID]*availability.Rule
	liveSlots []schedule.TimeInterval
	hasReview bool

	lastExclude *uuid.UUID
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		services:  map[uuid.UUID]*shared.ServiceSnapshot{},
		providers: map[uuid.UUID]*shared.ProviderSnapshot{},
		bookings:  map[uuid.UUID]*shared.BookingSnapshot{},
		rules:     map[uuid.UUID]*availability.Rule{},
	}
}

func notFound(what string) error {
	return infra.NewRepoErr(infra.KindNotFound, what+" not found")
}

func (r *fakeReads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, notFound("service")
}

func (r *fakeReads) ProviderByID(_ context.Context, id uuid.UUID) (*shared.ProviderSnapshot, error) {
	if p, ok := r.providers[id]; ok {
		return p, nil
	}
	return nil, notFound("provider")
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, notFound("booking")
}

func (r *fakeReads) RuleByID(_ context.Context, id uuid.UUID) (*availability.Rule, error) {
	if rule, ok := r.rules[id]; ok {
		return rule, nil
	}
	return nil, notFound("availability rule")
}

func (r *fakeReads) RulesForProvider(_ context.Context, providerID uuid.UUID) ([]*availability.Rule, error) {
	var out []*availability.Rule
	for _, rule := range r.rules {
		if rule.ProviderID() == providerID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeReads) RulesForWeekday(_ context.Context, providerID uuid.UUID, weekday time.Weekday) ([]*availability.Rule, error) {
	var out []*availability.Rule
	for _, rule := range r.rules {
		if rule.ProviderID() == providerID && rule.Weekday() == weekday {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeReads) LiveSlots(_ context.Context, _ uuid.UUID, _ time.Time, exclude *uuid.UUID) ([]schedule.TimeInterval, error) {
	r.lastExclude = exclude
	return r.liveSlots, nil
}

func (r *fakeReads) HasReview(_ context.Context, _ uuid.UUID, _ booking.ActorType) (bool, error) {
	return r.hasReview, nil
}

type fakeBookingRepo struct {
	created       []*booking.Booking
	statusUpdates map[uuid.UUID]booking.Status
	createErr     error
	updateErr     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, b)
	return b.ID(), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, _, to booking.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.statusUpdates == nil {
		f.statusUpdates = map[uuid.UUID]booking.Status{}
	}
	f.statusUpdates[id] = to
	return nil
}

type fakeRuleRepo struct {
	created   []*availability.Rule
	updated   []*availability.Rule
	deleted   []uuid.UUID
	createErr error
	updateErr error
}

func (f *fakeRuleRepo) Create(_ context.Context, r *availability.Rule) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, r)
	return r.ID(), nil
}

func (f *fakeRuleRepo) Update(_ context.Context, r *availability.Rule) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, r)
	return nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReviewRepo struct {
	created   []*review.Review
	createErr error
}

func (f *fakeReviewRepo) Create(_ context.Context, r *review.Review) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, r)
	return r.ID(), nil
}

type fakeUoW struct {
	reads    *fakeReads
	bookings *fakeBookingRepo
	rules    *fakeRuleRepo
	reviews  *fakeReviewRepo
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		reads:    newFakeReads(),
		bookings: &fakeBookingRepo{},
		rules:    &fakeRuleRepo{},
		reviews:  &fakeReviewRepo{},
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, fakeTx{u})
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.reads }

type fakeTx struct {
	uow *fakeUoW
}

func (t fakeTx) Bookings() shared.BookingRepository                   { return t.uow.bookings }
func (t fakeTx) AvailabilityRules() shared.AvailabilityRuleRepository { return t.uow.rules }
func (t fakeTx) Reviews() shared.ReviewRepository                     { return t.uow.reviews }
func (t fakeTx) Reads() shared.CommandReads                           { return t.uow.reads }
