package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/application/middleware"
	"github.com/bivex/creatorhub/internal/domain/entity"
)

// SignToken signs an HS256 access token in the identity service's claim layout.
// It returns the token and its jti.
func SignToken(t *testing.T, secret, issuer string, userID uuid.UUID, role entity.UserRole, ttl time.Duration) (string, string) {
	t.Helper()

	jti := uuid.New().String()
	now := time.Now()
	claims := &middleware.JWTClaims{
		UserID: userID.String(),
		JTI:    jti,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token, jti
}
