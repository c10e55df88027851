package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkenzh/buildops/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	user := &model.User{
		ID:   uuid.New(),
		Name: "Dana",
		Role: model.RoleManager,
	}

	token, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "Dana", principal.Name)
	assert.Equal(t, model.RoleManager, principal.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: uuid.New(), Role: model.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue(&model.User{ID: uuid.New(), Role: model.RoleUser})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
