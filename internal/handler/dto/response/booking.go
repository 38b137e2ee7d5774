package response

import (
	"time"

	"pluralink/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	ClientID          uuid.UUID  `json:"clientId"`
	ClientName        string     `json:"clientName"`
	ProviderID        uuid.UUID  `json:"providerId"`
	ProviderName      string     `json:"providerName"`
	ServiceID         uuid.UUID  `json:"serviceId"`
	ServiceName       string     `json:"serviceName"`
	Date              string     `json:"date"`
	Slot              string     `json:"slot"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	PreviousBookingID *uuid.UUID `json:"previousBookingId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	ProviderName string    `json:"providerName"`
	ClientName   string    `json:"clientName"`
	ServiceName  string    `json:"serviceName"`
	Date         string    `json:"date"`
	Slot         string    `json:"slot"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                rm.ID,
		ClientID:          rm.ClientID,
		ClientName:        rm.ClientName,
		ProviderID:        rm.ProviderID,
		ProviderName:      rm.ProviderName,
		ServiceID:         rm.ServiceID,
		ServiceName:       rm.ServiceName,
		Date:              rm.Date,
		Slot:              rm.Slot,
		Status:            rm.Status,
		Notes:             rm.Notes,
		PreviousBookingID: rm.PreviousBookingID,
		CreatedAt:         rm.CreatedAt,
		UpdatedAt:         rm.UpdatedAt,
	}
}

func FromBookingList(items []*queries.BookingListItem) []*BookingListResponse {
	out := make([]*BookingListResponse, 0, len(items))
	for _, rm := range items {
		out = append(out, &BookingListResponse{
			ID:           rm.ID,
			ProviderName: rm.ProviderName,
			ClientName:   rm.ClientName,
			ServiceName:  rm.ServiceName,
			Date:         rm.Date,
			Slot:         rm.Slot,
			Status:       rm.Status,
			CreatedAt:    rm.CreatedAt,
		})
	}
	return out
}
