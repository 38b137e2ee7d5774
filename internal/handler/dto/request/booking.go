package request

import (
	"strings"

	"pluralink/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ProviderID uuid.UUID `json:"provider_id" binding:"required"`
	ServiceID  uuid.UUID `json:"service_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
	Notes      string    `json:"notes"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ProviderID: r.ProviderID,
		ServiceID:  r.ServiceID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		Notes:      strings.TrimSpace(r.Notes),
	}
}

type RescheduleBookingRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

func (r RescheduleBookingRequest) ToCommand() commands.RescheduleBookingRequest {
	return commands.RescheduleBookingRequest{
		Date:      r.Date,
		StartTime: r.StartTime,
	}
}
