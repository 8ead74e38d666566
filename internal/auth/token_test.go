package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestage/hirestage/internal/models"
)

func TestIssueAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := IssueToken(secret, "user-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := IssueToken([]byte("secret-a"), "user-1", models.RoleCandidate, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("secret-b"), tok)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := IssueToken(secret, "user-1", models.RoleCandidate, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = ParseToken(secret, tok)
	assert.Error(t, err)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	_, err := IssueToken(nil, "user-1", models.RoleCandidate, time.Hour)
	assert.Error(t, err)
}
