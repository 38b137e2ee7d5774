package response

import (
	"time"

	"pluralink/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"bookingId"`
	ReviewerID   uuid.UUID `json:"reviewerId"`
	ReviewerName string    `json:"reviewerName"`
	ReviewerType string    `json:"reviewerType"`
	RevieweeID   uuid.UUID `json:"revieweeId"`
	RevieweeName string    `json:"revieweeName"`
	RevieweeType string    `json:"revieweeType"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"bookingId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RatingStatsResponse struct {
	RevieweeID    uuid.UUID `json:"revieweeId"`
	TotalReviews  int32     `json:"totalReviews"`
	AverageRating float64   `json:"averageRating"`
}

func FromReviewView(rm *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:           rm.ID,
		BookingID:    rm.BookingID,
		ReviewerID:   rm.ReviewerID,
		ReviewerName: rm.ReviewerName,
		ReviewerType: rm.ReviewerType,
		RevieweeID:   rm.RevieweeID,
		RevieweeName: rm.RevieweeName,
		RevieweeType: rm.RevieweeType,
		Rating:       rm.Rating,
		Comment:      rm.Comment,
		CreatedAt:    rm.CreatedAt,
	}
}

func FromReviewList(items []*queries.ReviewListItem) []*ReviewListItemResponse {
	out := make([]*ReviewListItemResponse, 0, len(items))
	for _, rm := range items {
		out = append(out, &ReviewListItemResponse{
			ID:           rm.ID,
			BookingID:    rm.BookingID,
			ReviewerName: rm.ReviewerName,
			Rating:       rm.Rating,
			Comment:      rm.Comment,
			CreatedAt:    rm.CreatedAt,
		})
	}
	return out
}

func FromRatingStats(rm *queries.RevieweeRatingStats) *RatingStatsResponse {
	return &RatingStatsResponse{
		RevieweeID:    rm.RevieweeID,
		TotalReviews:  rm.TotalReviews,
		AverageRating: rm.AverageRating,
	}
}
