package queries

import (
	"context"
	"time"

	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/clock"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ServiceInfo carries the catalog fields the slot computation needs.
type ServiceInfo struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	Name        string
	DurationMin int
	Active      bool
}

type AvailabilityReadStore interface {
	FindRulesByProvider(ctx context.Context, providerID uuid.UUID) ([]*AvailabilityRuleView, error)
	DayRules(ctx context.Context, providerID uuid.UUID, weekday time.Weekday) ([]*availability.Rule, error)
	// BusySlots returns the intervals held by pending and confirmed bookings
	// on one provider-day.
	BusySlots(ctx context.Context, providerID uuid.UUID, date time.Time) ([]schedule.TimeInterval, error)
	FindService(ctx context.Context, serviceID uuid.UUID) (*ServiceInfo, error)
}

type AvailabilityQueries interface {
	ListRules(ctx context.Context, providerID uuid.UUID) ([]*AvailabilityRuleView, error)
	FreeSlots(ctx context.Context, providerID, serviceID uuid.UUID, date string) ([]*FreeSlotView, error)
}

type availabilityQueriesImpl struct {
	repo  AvailabilityReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(repo AvailabilityReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo, clock: clk}
}

func (q *availabilityQueriesImpl) ListRules(ctx context.Context, providerID uuid.UUID) ([]*AvailabilityRuleView, error) {
	return q.repo.FindRulesByProvider(ctx, providerID)
}

// FreeSlots computes the bookable slots for one provider-day: the weekday's
// free windows minus live bookings, cut into service-duration steps. Slots
// that have already started are omitted when the date is today.
func (q *availabilityQueriesImpl) FreeSlots(ctx context.Context, providerID, serviceID uuid.UUID, date string) ([]*FreeSlotView, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, ErrInvalidFilter
	}

	svc, err := q.repo.FindService(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !svc.Active || svc.ProviderID != providerID {
		return nil, ErrNotFound
	}

	rules, err := q.repo.DayRules(ctx, providerID, day.Weekday())
	if err != nil {
		return nil, err
	}
	busy, err := q.repo.BusySlots(ctx, providerID, day)
	if err != nil {
		return nil, err
	}
	free := availability.SubtractAll(availability.FreeWindows(rules), busy)

	var cutoff schedule.TimeOfDay = -1
	now := q.clock.Now().UTC()
	if day.Year() == now.Year() && day.YearDay() == now.YearDay() {
		cutoff = schedule.TimeOfDay(now.Hour()*60 + now.Minute())
	}

	slots := make([]*FreeSlotView, 0)
	for _, window := range free {
		for start := window.Start(); start+schedule.TimeOfDay(svc.DurationMin) <= window.End(); start += schedule.TimeOfDay(svc.DurationMin) {
			if start <= cutoff {
				continue
			}
			slots = append(slots, &FreeSlotView{
				StartTime: start.String(),
				EndTime:   (start + schedule.TimeOfDay(svc.DurationMin)).String(),
			})
		}
	}
	return slots, nil
}
