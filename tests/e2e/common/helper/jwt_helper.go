//go:build e2e

package helper

import (
	"testing"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/pkg/config"
	"pluralink/internal/pkg/jwt"
	"pluralink/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTTestHelper mints access tokens directly. The booking core trusts tokens
// issued by the identity service, so tests sign their own with the test secret.
type JWTTestHelper struct {
	cfg config.JWTConfig
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{cfg: cfg}
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID uuid.UUID, role booking.ActorType) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role booking.ActorType) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// CreateUserWithToken seeds a user row and returns its id with a signed token.
func (h *JWTTestHelper) CreateUserWithToken(t *testing.T, db dbtest.DBLike, email string, role booking.ActorType) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, db, email, role.String())
	return userID, h.GenerateToken(t, userID, role)
}
