package repository

import (
	"context"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db infra.DBTX
}

func NewBookingRepository(db infra.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking. The exclusion constraint on
// (provider_id, date, slot) over live rows arbitrates double booking; a
// violation comes back as KindConflict.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (id, client_id, provider_id, service_id, date, slot, status, notes, previous_booking_id)
		VALUES ($1, $2, $3, $4, $5, int4range($6, $7), $8, $9, $10)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		b.ID(), b.ClientID(), b.ProviderID(), b.ServiceID(),
		b.Date(), b.Interval().Start().Minutes(), b.Interval().End().Minutes(),
		string(b.Status()), b.Notes(), pgconv.UUIDPtrToPgtype(b.PreviousBookingID()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// UpdateStatus only writes while the row still holds the status the caller
// read. A concurrent transition makes the predicate miss, which comes back as
// KindConflict so terminal states are never overwritten.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error {
	const query = `UPDATE bookings SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "booking status changed concurrently")
	}
	return nil
}

// CompleteOverdue flips confirmed bookings whose slot end has passed to
// completed. Used by the sweep worker; returns the number of rows updated.
func (r *BookingRepository) CompleteOverdue(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE bookings
		SET status = 'completed', updated_at = now()
		WHERE status = 'confirmed'
		  AND date + make_interval(mins => upper(slot)) <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete overdue bookings", err)
	}
	return tag.RowsAffected(), nil
}
