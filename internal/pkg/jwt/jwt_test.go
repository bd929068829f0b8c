package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)
	caller := auth.Caller{EmployeeID: "e1", Name: "Ana", Role: auth.RoleAdmin}

	token, expiresAt, err := svc.GenerateAccessToken(caller)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	got, err := svc.CallerFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, caller, got)
}

func TestJWTService_CallerFromClaims_Rejects(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	_, err = svc.CallerFromClaims(map[string]interface{}{"type": "refresh", "employee_id": "e1"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.CallerFromClaims(map[string]interface{}{"type": "access"})
	assert.ErrorIs(t, err, auth.ErrMissingIdentity)

	got, err := svc.CallerFromClaims(map[string]interface{}{"type": "access", "employee_id": "e1", "role": "superuser"})
	require.NoError(t, err)
	assert.False(t, got.IsAdmin())
}

func TestJWTService_Revocation(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken(auth.Caller{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(token))

	svc.RevokeToken(token, expiresAt)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("test-secret", "soon")
	assert.Error(t, err)
}

func TestJWTService_PruneRevoked(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	svc.RevokeToken("expired", 1)
	svc.RevokeToken("live", 1<<40)

	assert.Equal(t, 1, svc.PruneRevoked())
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}
