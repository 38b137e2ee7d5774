package repository

import (
	"context"

	"pluralink/internal/domain/review"
	"pluralink/internal/infra"

	"github.com/google/uuid"
)

type ReviewRepository struct {
	db infra.DBTX
}

func NewReviewRepository(db infra.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review. The unique index on (booking_id, reviewer_type)
// arbitrates duplicates; a violation comes back as KindDuplicateKey.
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) (uuid.UUID, error) {
	const query = `
		INSERT INTO reviews (id, booking_id, reviewer_id, reviewer_type, reviewee_id, reviewee_type, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		rev.ID(), rev.BookingID(),
		rev.ReviewerID(), string(rev.ReviewerType()),
		rev.RevieweeID(), string(rev.RevieweeType()),
		rev.Rating().Value(), rev.Comment().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}
