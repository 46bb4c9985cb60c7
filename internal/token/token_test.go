package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    42,
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestIssueAndVerify(t *testing.T) {
	tokenString, err := Issue(testUser(), "super-secret", time.Hour)
	require.NoError(t, err)

	claims, err := Verify(tokenString, "super-secret")
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	tokenString, err := Issue(testUser(), "super-secret", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tokenString, "super-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	tokenString, err := Issue(testUser(), "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = Verify(tokenString, "wrong-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify("not.a.token", "super-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
