package infrastructure

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-service/internal/domain/domainerr"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, RoleAdmin, time.Hour)
	require.NoError(t, err)

	identity, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, RoleAdmin, identity.Role)
}

func TestJWTDefaultsRoleToUser(t *testing.T) {
	svc := NewJWTService("secret")
	token, err := svc.GenerateToken(uuid.New(), "", time.Hour)
	require.NoError(t, err)

	identity, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, identity.Role)
}

func TestJWTRejects(t *testing.T) {
	svc := NewJWTService("secret")

	expired, err := svc.GenerateToken(uuid.New(), RoleUser, -time.Minute)
	require.NoError(t, err)
	foreign, err := NewJWTService("other").GenerateToken(uuid.New(), RoleUser, time.Hour)
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "nope"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: uuid.NewString()}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"bad user id":  noUser,
		"wrong method": wrongAlg,
		"not a jwt":    "abc.def",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(token)
			assert.True(t, domainerr.Is(err, domainerr.KindUnauthorized))
		})
	}
}
