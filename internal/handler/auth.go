package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/token"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthorized(w, r, "invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	tokenString, err := token.Issue(user, h.config.JWT.Secret, time.Duration(h.config.JWT.Expiration)*time.Second)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "login successful", loginData{
		User:  user,
		Token: tokenString,
	})
}

type loginData struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// do not reveal whether the account exists
			h.successResponse(w, r, http.StatusOK, "a verification code has been sent by email", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	key := fmt.Sprintf("otp_reset_password_%s", user.Email)
	if err := h.redisClient.Set(ctx, key, otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifier.PasswordReset(user.Email, user.Name, otp, h.config.OTP.Expiration/60); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "a verification code has been sent by email", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	key := fmt.Sprintf("otp_reset_password_%s", req.Email)
	otp, err := h.redisClient.Get(ctx, key).Result()
	if err != nil || otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid verification code")
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "invalid verification code")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)
	if err := h.store.UpdateUser(user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Del(ctx, key).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "password reset successful", nil)
}
