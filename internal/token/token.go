// Package token issues and verifies the signed bearer tokens used for
// authentication. Tokens are self-contained; there is no server-side session
// state, so a token stays valid until it expires or the secret rotates.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject as the user's numeric ID.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Issue signs a token for the given user. The role embedded in the claims is
// informational only; authorization re-fetches the current role from the
// store on every request.
func Issue(user *domain.User, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})

	return t.SignedString([]byte(secret))
}

// Verify parses and validates a token string. It returns ErrInvalidToken on
// any failure (bad signature, expiry, wrong algorithm) rather than exposing
// parser internals to callers.
func Verify(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
