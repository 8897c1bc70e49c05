package jwt

import (
	"context"
	"testing"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("S001", "aina@store.my", "Aina", staff.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "S001", claims["user_id"])
	assert.Equal(t, "Aina", claims["name"])
	assert.Equal(t, "MANAGER", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("S001", "aina@store.my", "Aina", staff.RoleStaff)
	assert.Error(t, err)
}
