package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters", 60)

	token, err := m.GenerateToken("user-1", "a@b.pl", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.pl", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters", 60)
	other := NewManager("a-completely-different-secret-key!", 60)

	token, err := m.GenerateToken("user-1", "a@b.pl", "customer")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters", 60)

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters", -1)

	token, err := m.GenerateToken("user-1", "a@b.pl", "customer")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
