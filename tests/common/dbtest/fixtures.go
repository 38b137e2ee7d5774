//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx, "INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING",
		userID, strings.SplitN(email, "@", 2)[0], email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestService(t *testing.T, db DBLike, providerID uuid.UUID, name string, durationMin int) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO services (id, provider_id, name, duration_min, price_cents) VALUES ($1, $2, $3, $4, 5000)",
		serviceID, providerID, name, durationMin)
	require.NoError(t, err)

	return serviceID
}

// CreateTestRule inserts a weekly rule with the slot given as minutes from midnight.
func CreateTestRule(t *testing.T, db DBLike, providerID uuid.UUID, weekday, startMin, endMin int, available bool) uuid.UUID {
	t.Helper()

	ruleID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO availability_rules (id, provider_id, weekday, slot, available) VALUES ($1, $2, $3, int4range($4, $5), $6)",
		ruleID, providerID, weekday, startMin, endMin, available)
	require.NoError(t, err)

	return ruleID
}

// CreateTestBooking inserts a booking row directly, bypassing the booking
// commands. Used to seed past appointments that the API would reject as
// history (completion and review flows need them).
func CreateTestBooking(t *testing.T, db DBLike, clientID, providerID, serviceID uuid.UUID, date time.Time, startMin, endMin int, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO bookings (id, client_id, provider_id, service_id, date, slot, status) VALUES ($1, $2, $3, $4, $5, int4range($6, $7), $8)",
		bookingID, clientID, providerID, serviceID, date.Format("2006-01-02"), startMin, endMin, status)
	require.NoError(t, err)

	return bookingID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
