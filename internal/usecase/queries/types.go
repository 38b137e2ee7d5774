package queries

import (
	"time"

	"pluralink/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errs.New("record not found")
	ErrAccessDenied  = errs.New("access denied")
	ErrInvalidCursor = errs.New("invalid cursor")
	ErrInvalidFilter = errs.New("invalid filter")
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID                uuid.UUID  `json:"id"`
	ClientID          uuid.UUID  `json:"client_id"`
	ClientName        string     `json:"client_name"`
	ProviderID        uuid.UUID  `json:"provider_id"`
	ProviderName      string     `json:"provider_name"`
	ServiceID         uuid.UUID  `json:"service_id"`
	ServiceName       string     `json:"service_name"`
	Date              string     `json:"date"`
	Slot              string     `json:"slot"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	PreviousBookingID *uuid.UUID `json:"previous_booking_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ProviderName string    `json:"provider_name"`
	ClientName   string    `json:"client_name"`
	ServiceName  string    `json:"service_name"`
	Date         string    `json:"date"`
	Slot         string    `json:"slot"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvailabilityRuleView represents read-optimized weekly rule data
type AvailabilityRuleView struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Available bool      `json:"is_available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FreeSlotView is one bookable slot on a concrete day
type FreeSlotView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ReviewView represents read-optimized review data
type ReviewView struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	ReviewerID   uuid.UUID `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name"`
	ReviewerType string    `json:"reviewer_type"`
	RevieweeID   uuid.UUID `json:"reviewee_id"`
	RevieweeName string    `json:"reviewee_name"`
	RevieweeType string    `json:"reviewee_type"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewListItem struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RevieweeRatingStats aggregates received reviews for one user
type RevieweeRatingStats struct {
	RevieweeID    uuid.UUID `json:"reviewee_id"`
	TotalReviews  int32     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
}
