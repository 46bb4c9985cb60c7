package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/token"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth requires a bearer token and resolves it to a live user record. The
// role embedded in the token is never used for authorization; the current
// role is re-fetched from the store so that role changes made after the token
// was issued take effect immediately.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.unauthorized(w, r, "access token required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			h.unauthorized(w, r, "access token required")
			return
		}

		claims, err := token.Verify(tokenString, h.config.JWT.Secret)
		if err != nil {
			h.forbidden(w, r, "invalid or expired token")
			return
		}

		sub, err := claims.UserID()
		if err != nil {
			h.forbidden(w, r, "invalid or expired token")
			return
		}

		user, err := h.store.GetUserByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.forbidden(w, r, "user not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), AuthUserCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(AuthUserCtx).(*domain.User)
		if user.Role != domain.RoleAdmin {
			h.forbidden(w, r, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) complaintCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid complaint ID")
			return
		}

		c, err := h.store.GetComplaintByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "complaint not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ComplaintCtx, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
