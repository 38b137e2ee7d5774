package availability

import (
	"errors"
	"time"

	"pluralink/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrRuleOverlap    = errors.New("available rules for the same weekday must not overlap")
)

// Rule is a provider-owned weekly availability declaration. Available rules
// add bookable time; unavailable rules only ever subtract, so they may
// overlap each other and available rules freely.
type Rule struct {
	id         uuid.UUID
	providerID uuid.UUID
	weekday    time.Weekday
	interval   schedule.TimeInterval
	available  bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewRule(providerID uuid.UUID, weekday int, interval schedule.TimeInterval, available bool) (*Rule, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}
	return &Rule{
		id:         uuid.New(),
		providerID: providerID,
		weekday:    time.Weekday(weekday),
		interval:   interval,
		available:  available,
	}, nil
}

func ReconstructRule(
	id, providerID uuid.UUID,
	weekday time.Weekday,
	interval schedule.TimeInterval,
	available bool,
	createdAt, updatedAt time.Time,
) *Rule {
	return &Rule{
		id:         id,
		providerID: providerID,
		weekday:    weekday,
		interval:   interval,
		available:  available,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Rule) ID() uuid.UUID                   { return r.id }
func (r *Rule) ProviderID() uuid.UUID           { return r.providerID }
func (r *Rule) Weekday() time.Weekday           { return r.weekday }
func (r *Rule) Interval() schedule.TimeInterval { return r.interval }
func (r *Rule) IsAvailable() bool               { return r.available }
func (r *Rule) CreatedAt() time.Time            { return r.createdAt }
func (r *Rule) UpdatedAt() time.Time            { return r.updatedAt }

// Revise replaces the rule's schedule in place. Overlap against sibling
// rules is checked separately with ValidateNoOverlap.
func (r *Rule) Revise(weekday int, interval schedule.TimeInterval, available bool) error {
	if weekday < 0 || weekday > 6 {
		return ErrInvalidWeekday
	}
	r.weekday = time.Weekday(weekday)
	r.interval = interval
	r.available = available
	return nil
}

// OwnedBy reports whether the rule belongs to the given provider. Rules are
// created, edited and deleted only by their owner.
func (r *Rule) OwnedBy(providerID uuid.UUID) bool {
	return r.providerID == providerID
}

// ValidateNoOverlap rejects a candidate available rule that overlaps an
// existing available rule on the same weekday. Unavailable candidates always
// pass.
func ValidateNoOverlap(existing []*Rule, candidate *Rule) error {
	if !candidate.available {
		return nil
	}
	for _, r := range existing {
		if r.id == candidate.id || !r.available || r.weekday != candidate.weekday {
			continue
		}
		if r.interval.Overlaps(candidate.interval) {
			return ErrRuleOverlap
		}
	}
	return nil
}
