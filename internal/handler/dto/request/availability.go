package request

import (
	"pluralink/internal/usecase/commands"
)

// DayOfWeek is a pointer so a legitimate Sunday (0) passes required
// validation.
type UpsertAvailabilityRuleRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Available *bool  `json:"is_available" binding:"required"`
}

func (r UpsertAvailabilityRuleRequest) ToCommand() commands.UpsertRuleRequest {
	return commands.UpsertRuleRequest{
		DayOfWeek: *r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Available: *r.Available,
	}
}
