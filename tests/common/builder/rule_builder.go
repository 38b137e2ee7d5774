//go:build unit || e2e

package builder

import (
	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/schedule"

	"github.com/google/uuid"
)

type RuleBuilder struct {
	ProviderID uuid.UUID
	Weekday    int
	StartTime  string
	EndTime    string
	Available  bool
}

func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{
		ProviderID: uuid.New(),
		Weekday:    1, // Monday
		StartTime:  "09:00",
		EndTime:    "17:00",
		Available:  true,
	}
}

func (r *RuleBuilder) With(mutate func(*RuleBuilder)) *RuleBuilder {
	mutate(r)
	return r
}

func (r *RuleBuilder) WithWindow(start, end string) *RuleBuilder {
	r.StartTime = start
	r.EndTime = end
	return r
}

func (r *RuleBuilder) WithAvailable(v bool) *RuleBuilder {
	r.Available = v
	return r
}

func (r *RuleBuilder) BuildDomain() (*availability.Rule, error) {
	iv, err := schedule.ParseTimeInterval(r.StartTime, r.EndTime, schedule.DefaultGranularityMin)
	if err != nil {
		return nil, err
	}
	return availability.NewRule(r.ProviderID, r.Weekday, iv, r.Available)
}
