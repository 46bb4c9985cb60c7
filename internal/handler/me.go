package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(AuthUserCtx).(*domain.User)
	h.successResponse(w, r, http.StatusOK, "profile fetched successfully", user)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(AuthUserCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "old password is incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)
	if err := h.store.UpdateUser(user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "password updated successfully", nil)
}
