package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestGetMyInfo(t *testing.T) {
	user := userWithPassword(t, "correct-password")
	tokenString := issueToken(t, user)

	store := &fakeStore{getUserByID: func(id int64) (*domain.User, error) {
		return user, nil
	}}
	h := newTestHandler(t, store, &fakeNotifier{})

	rec := doRequest(t, h, http.MethodGet, "/my-info", tokenString, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.User
	decodeData(t, rec, &got)
	assert.Equal(t, user.Email, got.Email)
	assert.NotContains(t, rec.Body.String(), user.PasswordHash)
}

func TestUpdateMyPassword(t *testing.T) {
	t.Run("wrong old password", func(t *testing.T) {
		user := userWithPassword(t, "correct-password")
		tokenString := issueToken(t, user)

		updated := false
		store := &fakeStore{
			getUserByID: func(id int64) (*domain.User, error) { return user, nil },
			updateUser:  func(u *domain.User) error { updated = true; return nil },
		}
		h := newTestHandler(t, store, &fakeNotifier{})

		rec := doRequest(t, h, http.MethodPatch, "/my-info/password", tokenString, map[string]any{
			"oldPassword": "wrong-password",
			"newPassword": "brand-new-password",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "old password is incorrect", decodeEnvelope(t, rec).Message)
		assert.False(t, updated)
	})

	t.Run("new password too short", func(t *testing.T) {
		user := userWithPassword(t, "correct-password")
		tokenString := issueToken(t, user)

		store := &fakeStore{getUserByID: func(id int64) (*domain.User, error) { return user, nil }}
		h := newTestHandler(t, store, &fakeNotifier{})

		rec := doRequest(t, h, http.MethodPatch, "/my-info/password", tokenString, map[string]any{
			"oldPassword": "correct-password",
			"newPassword": "short",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		user := userWithPassword(t, "correct-password")
		tokenString := issueToken(t, user)

		var saved *domain.User
		store := &fakeStore{
			getUserByID: func(id int64) (*domain.User, error) { return user, nil },
			updateUser:  func(u *domain.User) error { saved = u; return nil },
		}
		h := newTestHandler(t, store, &fakeNotifier{})

		rec := doRequest(t, h, http.MethodPatch, "/my-info/password", tokenString, map[string]any{
			"oldPassword": "correct-password",
			"newPassword": "brand-new-password",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("brand-new-password")))
	})
}
