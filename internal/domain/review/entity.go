package review

import (
	"errors"
	"time"

	"pluralink/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrBookingNotCompleted  = errors.New("only completed bookings can be reviewed")
	ErrReviewerNotOnBooking = errors.New("reviewer is not a party on the booking")
)

// Review is one party's rating of the counter-party for a completed
// booking. The reviewee is derived from the booking record, never taken
// from the caller.
type Review struct {
	id           uuid.UUID
	bookingID    uuid.UUID
	reviewerID   uuid.UUID
	reviewerType booking.ActorType
	revieweeID   uuid.UUID
	revieweeType booking.ActorType
	rating       Rating
	comment      Comment
	createdAt    time.Time
}

// NewReview gates review creation on the booking itself: status must be
// completed and the reviewer must be one of its parties.
func NewReview(b *booking.Booking, reviewer booking.Actor, rating Rating, comment Comment) (*Review, error) {
	if b.Status() != booking.StatusCompleted {
		return nil, ErrBookingNotCompleted
	}
	revieweeID, revieweeType, err := b.Counterparty(reviewer)
	if err != nil {
		return nil, ErrReviewerNotOnBooking
	}
	return &Review{
		id:           uuid.New(),
		bookingID:    b.ID(),
		reviewerID:   reviewer.ID,
		reviewerType: reviewer.Type,
		revieweeID:   revieweeID,
		revieweeType: revieweeType,
		rating:       rating,
		comment:      comment,
	}, nil
}

func ReconstructReview(
	id, bookingID, reviewerID uuid.UUID,
	reviewerType booking.ActorType,
	revieweeID uuid.UUID,
	revieweeType booking.ActorType,
	rating Rating,
	comment Comment,
	createdAt time.Time,
) *Review {
	return &Review{
		id:           id,
		bookingID:    bookingID,
		reviewerID:   reviewerID,
		reviewerType: reviewerType,
		revieweeID:   revieweeID,
		revieweeType: revieweeType,
		rating:       rating,
		comment:      comment,
		createdAt:    createdAt,
	}
}

func (r *Review) ID() uuid.UUID                   { return r.id }
func (r *Review) BookingID() uuid.UUID            { return r.bookingID }
func (r *Review) ReviewerID() uuid.UUID           { return r.reviewerID }
func (r *Review) ReviewerType() booking.ActorType { return r.reviewerType }
func (r *Review) RevieweeID() uuid.UUID           { return r.revieweeID }
func (r *Review) RevieweeType() booking.ActorType { return r.revieweeType }
func (r *Review) Rating() Rating                  { return r.rating }
func (r *Review) Comment() Comment                { return r.comment }
func (r *Review) CreatedAt() time.Time            { return r.createdAt }
