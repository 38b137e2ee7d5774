package response

import (
	"time"

	"pluralink/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityRuleResponse struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Available bool      `json:"isAvailable"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FreeSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func FromRuleViews(items []*queries.AvailabilityRuleView) []*AvailabilityRuleResponse {
	out := make([]*AvailabilityRuleResponse, 0, len(items))
	for _, rm := range items {
		out = append(out, &AvailabilityRuleResponse{
			ID:        rm.ID,
			DayOfWeek: rm.DayOfWeek,
			StartTime: rm.StartTime,
			EndTime:   rm.EndTime,
			Available: rm.Available,
			CreatedAt: rm.CreatedAt,
			UpdatedAt: rm.UpdatedAt,
		})
	}
	return out
}

func FromFreeSlots(items []*queries.FreeSlotView) []*FreeSlotResponse {
	out := make([]*FreeSlotResponse, 0, len(items))
	for _, rm := range items {
		out = append(out, &FreeSlotResponse{StartTime: rm.StartTime, EndTime: rm.EndTime})
	}
	return out
}
