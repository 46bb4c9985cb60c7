package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

// badRequest reports a 400. Validator errors are translated and joined so
// that clients see every failing field at once.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		msgs = append(msgs, fieldError.Translate(h.translator))
	}
	h.errorResponse(w, r, http.StatusBadRequest, strings.Join(msgs, ", "))
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	h.errorResponse(w, r, http.StatusUnauthorized, msg)
}

func (h *Handler) forbidden(w http.ResponseWriter, r *http.Request, msg string) {
	h.errorResponse(w, r, http.StatusForbidden, msg)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.errorResponse(w, r, http.StatusNotFound, msg)
}

// internalServerError hides failure details from clients in production;
// elsewhere the underlying error is included to ease debugging.
func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)

	msg := "internal server error"
	if h.config.Environment != "production" {
		msg = fmt.Sprintf("internal server error: %s", err.Error())
	}
	h.errorResponse(w, r, http.StatusInternalServerError, msg)
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, status int, msg string, data any) {
	h.writeJSON(w, r, status, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}
