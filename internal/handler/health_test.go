package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/notification"
)

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := newTestHandler(t, &fakeStore{}, &fakeNotifier{})

		rec := doRequest(t, h, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Status   string `json:"status"`
			Database string `json:"database"`
		}
		decodeData(t, rec, &got)
		assert.Equal(t, "healthy", got.Status)
		assert.Equal(t, "connected", got.Database)
	})

	t.Run("ping uses the configured query timeout", func(t *testing.T) {
		var deadline time.Time
		var hasDeadline bool
		store := &fakeStore{ping: func(ctx context.Context) error {
			deadline, hasDeadline = ctx.Deadline()
			return nil
		}}
		h := newTestHandler(t, store, &fakeNotifier{})

		rec := doRequest(t, h, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		require.True(t, hasDeadline)
		assert.LessOrEqual(t, time.Until(deadline), 5*time.Second)
		assert.Greater(t, time.Until(deadline), 4*time.Second)
	})

	t.Run("database down", func(t *testing.T) {
		store := &fakeStore{ping: func(ctx context.Context) error {
			return errors.New("connection refused")
		}}
		h := newTestHandler(t, store, &fakeNotifier{})

		rec := doRequest(t, h, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "database connection failed", env.Message)
	})
}

func TestTestNotification(t *testing.T) {
	admin := testAdmin()
	tokenString := issueToken(t, admin)

	t.Run("no admin address configured", func(t *testing.T) {
		notifier := &fakeNotifier{configTestErr: notification.ErrNoAdminAddr}
		h := newTestHandler(t, adminStore(admin), notifier)

		rec := doRequest(t, h, http.MethodPost, "/notifications/test", tokenString, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("broker failure", func(t *testing.T) {
		notifier := &fakeNotifier{configTestErr: errors.New("broker unavailable")}
		h := newTestHandler(t, adminStore(admin), notifier)

		rec := doRequest(t, h, http.MethodPost, "/notifications/test", tokenString, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		h := newTestHandler(t, adminStore(admin), &fakeNotifier{})

		rec := doRequest(t, h, http.MethodPost, "/notifications/test", tokenString, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "test notification queued", decodeEnvelope(t, rec).Message)
	})
}
