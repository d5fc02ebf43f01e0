package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	tokenString, expiresAt, err := svc.GenerateAccessToken("emp-1", "e1@acme.test")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, "e1@acme.test", claims["email"])
	_, hasRole := claims["role"]
	assert.False(t, hasRole, "roles must not be carried in the token")

	employeeID, err := svc.EmployeeIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
}

func TestEmployeeIDFromClaims_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	cases := map[string]map[string]interface{}{
		"wrong type":       {"type": "refresh", "employee_id": "emp-1"},
		"missing type":     {"employee_id": "emp-1"},
		"missing employee": {"type": "access"},
		"empty employee":   {"type": "access", "employee_id": ""},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.EmployeeIDFromClaims(claims)
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	tokenString, _, err := issuer.GenerateAccessToken("emp-1", "e1@acme.test")
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}
