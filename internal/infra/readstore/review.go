package readstore

import (
	"context"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/infra"
	"pluralink/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReviewReadStore struct {
	db infra.DBTX
}

func NewReviewReadStore(db infra.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: db}
}

func (s *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	const query = `
		SELECT r.id, r.booking_id, r.reviewer_id, ru.name, r.reviewer_type,
		       r.reviewee_id, eu.name, r.reviewee_type, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users ru ON ru.id = r.reviewer_id
		JOIN users eu ON eu.id = r.reviewee_id
		WHERE r.id = $1`

	var view queries.ReviewView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.BookingID,
		&view.ReviewerID, &view.ReviewerName, &view.ReviewerType,
		&view.RevieweeID, &view.RevieweeName, &view.RevieweeType,
		&view.Rating, &view.Comment, &view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find review", err)
	}
	return &view, nil
}

func (s *ReviewReadStore) FindByRevieweeFirstPage(ctx context.Context, revieweeID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	const query = `
		SELECT r.id, r.booking_id, ru.name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users ru ON ru.id = r.reviewer_id
		WHERE r.reviewee_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, revieweeID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewListItems(rows)
}

func (s *ReviewReadStore) FindByRevieweeKeyset(ctx context.Context, revieweeID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	const query = `
		SELECT r.id, r.booking_id, ru.name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users ru ON ru.id = r.reviewer_id
		WHERE r.reviewee_id = $1
		  AND (r.created_at, r.id) < ($2, $3)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`

	rows, err := s.db.Query(ctx, query, revieweeID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewListItems(rows)
}

func (s *ReviewReadStore) GetRevieweeRatingStats(ctx context.Context, revieweeID uuid.UUID) (*queries.RevieweeRatingStats, error) {
	const query = `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE reviewee_id = $1`

	stats := queries.RevieweeRatingStats{RevieweeID: revieweeID}
	if err := s.db.QueryRow(ctx, query, revieweeID).Scan(&stats.TotalReviews, &stats.AverageRating); err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate reviews", err)
	}
	return &stats, nil
}

// Exists is the advisory duplicate check; the unique index on
// (booking_id, reviewer_type) is the arbiter under concurrency.
func (s *ReviewReadStore) Exists(ctx context.Context, bookingID uuid.UUID, reviewerType booking.ActorType) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1 AND reviewer_type = $2)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, bookingID, string(reviewerType)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}

func scanReviewListItems(rows pgx.Rows) ([]*queries.ReviewListItem, error) {
	defer rows.Close()

	var out []*queries.ReviewListItem
	for rows.Next() {
		var item queries.ReviewListItem
		if err := rows.Scan(&item.ID, &item.BookingID, &item.ReviewerName,
			&item.Rating, &item.Comment, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review row", err)
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read review rows", err)
	}
	return out, nil
}
