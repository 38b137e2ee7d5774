package request

import (
	"pluralink/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required"`
	Comment   string    `json:"comment"`
}

func (r SubmitReviewRequest) ToCommand() commands.SubmitReviewRequest {
	return commands.SubmitReviewRequest{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
