package domain

import (
	"time"
)

type Category string

const (
	CategoryProduct Category = "Product"
	CategoryService Category = "Service"
	CategorySupport Category = "Support"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

type Complaint struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      Category   `json:"category"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	DateSubmitted time.Time  `json:"dateSubmitted"`
	UserEmail     string     `json:"userEmail,omitempty"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	ResolvedDate  *time.Time `json:"resolvedDate,omitempty"`
}

// ApplyUpdate applies an admin update to the complaint and reports whether the
// status changed and whether this update resolved the complaint.
//
// ResolvedDate records when the complaint was first resolved. It is stamped
// only on the transition into Resolved and is never cleared or overwritten,
// even if the complaint is reopened and resolved again later.
func (c *Complaint) ApplyUpdate(status *Status, adminNotes *string, now time.Time) (statusChanged bool, resolved bool) {
	if status != nil && *status != c.Status {
		statusChanged = true
		if *status == StatusResolved {
			resolved = true
			if c.ResolvedDate == nil {
				c.ResolvedDate = &now
			}
		}
		c.Status = *status
	}
	if adminNotes != nil {
		c.AdminNotes = *adminNotes
	}
	return statusChanged, resolved
}

// ComplaintFilter describes the list query. Empty (or "all") status/priority
// means no filtering on that field.
type ComplaintFilter struct {
	Status   string
	Priority string
	Page     int
	Limit    int
}

func (f ComplaintFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination computes pagination metadata for a listing page. returned is
// the number of items actually on this page, total the number of matching
// rows overall.
func NewPagination(f ComplaintFilter, returned int, total int64) Pagination {
	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return Pagination{
		Current: f.Page,
		Total:   totalPages,
		HasNext: int64(f.Offset()+returned) < total,
		HasPrev: f.Page > 1,
	}
}
