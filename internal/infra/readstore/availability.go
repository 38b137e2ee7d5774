package readstore

import (
	"context"
	"time"

	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AvailabilityReadStore struct {
	db infra.DBTX
}

func NewAvailabilityReadStore(db infra.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: db}
}

func (s *AvailabilityReadStore) FindRulesByProvider(ctx context.Context, providerID uuid.UUID) ([]*queries.AvailabilityRuleView, error) {
	const query = `
		SELECT id, weekday, lower(slot), upper(slot), available, created_at, updated_at
		FROM availability_rules
		WHERE provider_id = $1
		ORDER BY weekday, lower(slot)`

	rows, err := s.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability rules", err)
	}
	defer rows.Close()

	var out []*queries.AvailabilityRuleView
	for rows.Next() {
		var (
			view       queries.AvailabilityRuleView
			start, end int
		)
		if err := rows.Scan(&view.ID, &view.DayOfWeek, &start, &end, &view.Available,
			&view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability rule", err)
		}
		view.StartTime = schedule.TimeOfDay(start).String()
		view.EndTime = schedule.TimeOfDay(end).String()
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability rules", err)
	}
	return out, nil
}

func (s *AvailabilityReadStore) RuleByID(ctx context.Context, id uuid.UUID) (*availability.Rule, error) {
	const query = `
		SELECT id, provider_id, weekday, lower(slot), upper(slot), available, created_at, updated_at
		FROM availability_rules
		WHERE id = $1`

	rule, err := scanRule(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find availability rule", err)
	}
	return rule, nil
}

func (s *AvailabilityReadStore) RulesForProvider(ctx context.Context, providerID uuid.UUID) ([]*availability.Rule, error) {
	const query = `
		SELECT id, provider_id, weekday, lower(slot), upper(slot), available, created_at, updated_at
		FROM availability_rules
		WHERE provider_id = $1
		ORDER BY weekday, lower(slot)`

	rows, err := s.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load availability rules", err)
	}
	return collectRules(rows)
}

func (s *AvailabilityReadStore) DayRules(ctx context.Context, providerID uuid.UUID, weekday time.Weekday) ([]*availability.Rule, error) {
	const query = `
		SELECT id, provider_id, weekday, lower(slot), upper(slot), available, created_at, updated_at
		FROM availability_rules
		WHERE provider_id = $1 AND weekday = $2
		ORDER BY lower(slot)`

	rows, err := s.db.Query(ctx, query, providerID, int(weekday))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load weekday rules", err)
	}
	return collectRules(rows)
}

// BusySlots feeds the public free-slot listing; the write side uses
// BookingReadStore.LiveSlots for the same scan inside transactions.
func (s *AvailabilityReadStore) BusySlots(ctx context.Context, providerID uuid.UUID, date time.Time) ([]schedule.TimeInterval, error) {
	return NewBookingReadStore(s.db).LiveSlots(ctx, providerID, date, nil)
}

func (s *AvailabilityReadStore) FindService(ctx context.Context, serviceID uuid.UUID) (*queries.ServiceInfo, error) {
	return findService(ctx, s.db, serviceID)
}

type ruleScanner interface {
	Scan(dest ...any) error
}

func scanRule(row ruleScanner) (*availability.Rule, error) {
	var (
		id, providerID       uuid.UUID
		weekday, start, end  int
		available            bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &providerID, &weekday, &start, &end, &available, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return availability.ReconstructRule(
		id, providerID, time.Weekday(weekday),
		intervalFromMinutes(start, end), available,
		createdAt, updatedAt,
	), nil
}

func collectRules(rows pgx.Rows) ([]*availability.Rule, error) {
	defer rows.Close()

	var out []*availability.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability rule", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability rules", err)
	}
	return out, nil
}
