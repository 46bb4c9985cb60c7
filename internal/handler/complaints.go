package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func (h *Handler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title" validate:"required,max=100"`
		Description string `json:"description" validate:"required,max=1000"`
		Category    string `json:"category" validate:"required,oneof=Product Service Support"`
		Priority    string `json:"priority" validate:"required,oneof=Low Medium High"`
		UserEmail   string `json:"userEmail" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.UserEmail = strings.ToLower(strings.TrimSpace(req.UserEmail))

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// status and submission time are server-assigned, regardless of input
	c := &domain.Complaint{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Priority:    domain.Priority(req.Priority),
		Status:      domain.StatusPending,
		UserEmail:   req.UserEmail,
	}

	if err := h.store.CreateComplaint(c); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.RecordComplaintCreated()
	h.notifier.ComplaintCreated(c)

	h.successResponse(w, r, http.StatusCreated, "complaint submitted successfully", c)
}

func (h *Handler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f := domain.ComplaintFilter{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		Page:     1,
		Limit:    defaultPageSize,
	}
	if f.Status == "all" {
		f.Status = ""
	}
	if f.Priority == "all" {
		f.Priority = ""
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		f.Limit = min(limit, maxPageSize)
	}

	complaints, total, err := h.store.ListComplaints(f)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "complaints fetched successfully", listData{
		Complaints: complaints,
		Pagination: domain.NewPagination(f, len(complaints), total),
	})
}

type listData struct {
	Complaints []*domain.Complaint `json:"complaints"`
	Pagination domain.Pagination   `json:"pagination"`
}

func (h *Handler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ComplaintCtx).(*domain.Complaint)
	h.successResponse(w, r, http.StatusOK, "complaint fetched successfully", c)
}

func (h *Handler) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status     *string `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Resolved"`
		AdminNotes *string `json:"adminNotes" validate:"omitempty,max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c := r.Context().Value(ComplaintCtx).(*domain.Complaint)
	oldStatus := c.Status

	var newStatus *domain.Status
	if req.Status != nil {
		s := domain.Status(*req.Status)
		newStatus = &s
	}
	c.ApplyUpdate(newStatus, req.AdminNotes, time.Now())

	if err := h.store.UpdateComplaint(c); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// lost a race with a concurrent delete
			h.notFound(w, r, "complaint not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.metrics.RecordComplaintUpdated()
	h.notifier.ComplaintUpdated(oldStatus, c)

	h.successResponse(w, r, http.StatusOK, "complaint updated successfully", c)
}

func (h *Handler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ComplaintCtx).(*domain.Complaint)

	deleted, err := h.store.DeleteComplaint(c.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "complaint not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.metrics.RecordComplaintDeleted()

	h.successResponse(w, r, http.StatusOK, "complaint deleted successfully", deleteData{
		ID:    deleted.ID,
		Title: deleted.Title,
	})
}

type deleteData struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
