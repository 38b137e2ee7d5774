package readstore

import (
	"context"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/pgconv"
	"pluralink/internal/usecase/queries"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db infra.DBTX
}

func NewBookingReadStore(db infra.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.client_id, c.name, b.provider_id, p.name, b.service_id, sv.name,
		       b.date, lower(b.slot), upper(b.slot), b.status, b.notes,
		       b.previous_booking_id, b.created_at, b.updated_at
		FROM bookings b
		JOIN users c ON c.id = b.client_id
		JOIN users p ON p.id = b.provider_id
		JOIN services sv ON sv.id = b.service_id
		WHERE b.id = $1`

	var (
		view       queries.BookingView
		date       time.Time
		start, end int
		prevID     pgtype.UUID
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.ClientID, &view.ClientName,
		&view.ProviderID, &view.ProviderName,
		&view.ServiceID, &view.ServiceName,
		&date, &start, &end, &view.Status, &view.Notes,
		&prevID, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	view.Date = dateString(date)
	view.Slot = slotString(start, end)
	view.PreviousBookingID = pgconv.UUIDPtrFromPgtype(prevID)
	return &view, nil
}

func (s *BookingReadStore) FindForActorFirstPage(ctx context.Context, actor booking.Actor, status *string, limit int32) ([]*queries.BookingListItem, error) {
	query := `
		SELECT b.id, p.name, c.name, sv.name, b.date, lower(b.slot), upper(b.slot), b.status, b.created_at
		FROM bookings b
		JOIN users c ON c.id = b.client_id
		JOIN users p ON p.id = b.provider_id
		JOIN services sv ON sv.id = b.service_id
		WHERE ` + actorColumn(actor) + ` = $1
		  AND ($2::text IS NULL OR b.status = $2)
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $3`

	rows, err := s.db.Query(ctx, query, actor.ID, status, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

func (s *BookingReadStore) FindForActorKeyset(ctx context.Context, actor booking.Actor, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	query := `
		SELECT b.id, p.name, c.name, sv.name, b.date, lower(b.slot), upper(b.slot), b.status, b.created_at
		FROM bookings b
		JOIN users c ON c.id = b.client_id
		JOIN users p ON p.id = b.provider_id
		JOIN services sv ON sv.id = b.service_id
		WHERE ` + actorColumn(actor) + ` = $1
		  AND ($2::text IS NULL OR b.status = $2)
		  AND (b.created_at, b.id) < ($3, $4)
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $5`

	rows, err := s.db.Query(ctx, query, actor.ID, status, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

// SnapshotByID loads the write-side view of one booking.
func (s *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, client_id, provider_id, service_id, date, lower(slot), upper(slot),
		       status, notes, previous_booking_id, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	var (
		snap       shared.BookingSnapshot
		start, end int
		status     string
		prevID     pgtype.UUID
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.ClientID, &snap.ProviderID, &snap.ServiceID,
		&snap.Date, &start, &end, &status, &snap.Notes,
		&prevID, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	snap.Interval = intervalFromMinutes(start, end)
	snap.Status = booking.Status(status)
	snap.PreviousBookingID = pgconv.UUIDPtrFromPgtype(prevID)
	return &snap, nil
}

// LiveSlots returns the intervals of pending/confirmed bookings on one
// provider-day, optionally excluding one booking.
func (s *BookingReadStore) LiveSlots(ctx context.Context, providerID uuid.UUID, date time.Time, exclude *uuid.UUID) ([]schedule.TimeInterval, error) {
	const query = `
		SELECT lower(slot), upper(slot)
		FROM bookings
		WHERE provider_id = $1
		  AND date = $2
		  AND status IN ('pending', 'confirmed')
		  AND ($3::uuid IS NULL OR id <> $3)
		ORDER BY lower(slot)`

	rows, err := s.db.Query(ctx, query, providerID, date, pgconv.UUIDPtrToPgtype(exclude))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booked slots", err)
	}
	defer rows.Close()

	var out []schedule.TimeInterval
	for rows.Next() {
		var start, end int
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked slot", err)
		}
		out = append(out, intervalFromMinutes(start, end))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked slots", err)
	}
	return out, nil
}

func actorColumn(actor booking.Actor) string {
	if actor.Type == booking.ActorProvider {
		return "b.provider_id"
	}
	return "b.client_id"
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var out []*queries.BookingListItem
	for rows.Next() {
		var (
			item       queries.BookingListItem
			date       time.Time
			start, end int
		)
		if err := rows.Scan(&item.ID, &item.ProviderName, &item.ClientName, &item.ServiceName,
			&date, &start, &end, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = dateString(date)
		item.Slot = slotString(start, end)
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return out, nil
}
