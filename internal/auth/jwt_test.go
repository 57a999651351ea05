package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "7",
		Name:  "Jane Roe",
		Email: "jane@x.io",
		Role:  domain.RoleUser,
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	token, expiresAt, err := Issue(testUser(), secret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := Verify(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "jane@x.io", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	token, _, err := Issue(testUser(), secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := Issue(testUser(), []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = Verify(token, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	token, _, err := Issue(testUser(), secret, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = Verify(tampered, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	_, err := Verify("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
