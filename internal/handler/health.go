package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/notification"
)

type healthData struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logInternalServerError(r, err)
		h.writeJSON(w, r, http.StatusInternalServerError, Response{
			Success: false,
			Message: "database connection failed",
			Data: healthData{
				Status:      "unhealthy",
				Timestamp:   time.Now().Format(time.RFC3339),
				Database:    "disconnected",
				Environment: h.config.Environment,
			},
		})
		return
	}

	h.successResponse(w, r, http.StatusOK, "healthy", healthData{
		Status:      "healthy",
		Timestamp:   time.Now().Format(time.RFC3339),
		Database:    "connected",
		Environment: h.config.Environment,
	})
}

// TestNotification queues the configuration-test email so operators can
// verify the mail pipeline end to end.
func (h *Handler) TestNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notifier.ConfigurationTest(); err != nil {
		switch {
		case errors.Is(err, notification.ErrNoAdminAddr):
			h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "test notification queued", nil)
}
