//go:build unit || e2e

package builder

import (
	"pluralink/internal/domain/booking"
	domreview "pluralink/internal/domain/review"
)

type ReviewBuilder struct {
	Booking       *BookingBuilder
	ReviewerIsPro bool
	Rating        int
	Comment       string
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		Booking: NewBookingBuilder().WithStatus(booking.StatusCompleted),
		Rating:  5,
		Comment: "Excellent service!",
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) WithRating(v int) *ReviewBuilder {
	r.Rating = v
	return r
}

func (r *ReviewBuilder) WithComment(s string) *ReviewBuilder {
	r.Comment = s
	return r
}

func (r *ReviewBuilder) Reviewer() booking.Actor {
	if r.ReviewerIsPro {
		return r.Booking.ProviderActor()
	}
	return r.Booking.ClientActor()
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	rating, err := domreview.NewRating(r.Rating)
	if err != nil {
		return nil, err
	}
	comment, err := domreview.NewComment(r.Comment)
	if err != nil {
		return nil, err
	}
	return domreview.NewReview(r.Booking.BuildDomain(), r.Reviewer(), rating, comment)
}
