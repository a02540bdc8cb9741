package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	// Setup
	svc := NewJWTService("test-secret")
	a := actor.Actor{ID: "e1", CompanyID: "co-1", Role: actor.RoleTeamLeader}

	// Act
	token, expiresAt, err := svc.GenerateAccessToken(a, time.Hour)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "e1", claims["employee_id"])
	assert.Equal(t, "co-1", claims["company_id"])
	assert.Equal(t, "team_leader", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTService("one").GenerateAccessToken(actor.Actor{ID: "e1", CompanyID: "co-1", Role: actor.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(NewJWTService("two").JWTAuth(), token)

	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, _, err := svc.GenerateAccessToken(actor.Actor{ID: "e1", CompanyID: "co-1", Role: actor.RoleAdmin}, -time.Hour)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)

	assert.Error(t, err)
}
