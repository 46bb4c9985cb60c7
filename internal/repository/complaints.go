package repository

import (
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
)

func (r *Repository) CreateComplaint(c *domain.Complaint) error {
	query := `
		INSERT INTO complaints (title, description, category, priority, status, user_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_submitted
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{c.Title, c.Description, c.Category, c.Priority, c.Status, nullIfEmpty(c.UserEmail)}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.DateSubmitted); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetComplaintByID(id int64) (*domain.Complaint, error) {
	query := `
		SELECT title, description, category, priority, status, date_submitted,
		       COALESCE(user_email, ''), COALESCE(admin_notes, ''), resolved_date
		FROM complaints WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	c := &domain.Complaint{
		ID: id,
	}

	dst := []any{&c.Title, &c.Description, &c.Category, &c.Priority, &c.Status, &c.DateSubmitted, &c.UserEmail, &c.AdminNotes, &c.ResolvedDate}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return c, nil
}

// ListComplaints returns one page of complaints matching the filter, newest
// first, along with the total number of matching rows. Empty filter fields
// match everything; the (status, priority, date_submitted) index covers the
// filtered, sorted scan.
func (r *Repository) ListComplaints(f domain.ComplaintFilter) ([]*domain.Complaint, int64, error) {
	countQuery := `
		SELECT COUNT(*) FROM complaints
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR priority = $2)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var total int64
	if err := r.dbpool.QueryRowContext(ctx, countQuery, f.Status, f.Priority).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, description, category, priority, status, date_submitted,
		       COALESCE(user_email, ''), COALESCE(admin_notes, ''), resolved_date
		FROM complaints
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR priority = $2)
		ORDER BY date_submitted DESC
		OFFSET $3 LIMIT $4
	`

	rows, err := r.dbpool.QueryContext(ctx, query, f.Status, f.Priority, f.Offset(), f.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	complaints := make([]*domain.Complaint, 0)
	for rows.Next() {
		c := &domain.Complaint{}
		dst := []any{&c.ID, &c.Title, &c.Description, &c.Category, &c.Priority, &c.Status, &c.DateSubmitted, &c.UserEmail, &c.AdminNotes, &c.ResolvedDate}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		complaints = append(complaints, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

func (r *Repository) UpdateComplaint(c *domain.Complaint) error {
	query := `
		UPDATE complaints
		SET
			status = $1,
			admin_notes = $2,
			resolved_date = $3
		WHERE id = $4
		RETURNING date_submitted
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{c.Status, nullIfEmpty(c.AdminNotes), c.ResolvedDate, c.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&c.DateSubmitted); err != nil {
		return err
	}

	return nil
}

// DeleteComplaint removes a complaint permanently and returns the deleted
// row's id and title. sql.ErrNoRows signals that the complaint was already
// gone.
func (r *Repository) DeleteComplaint(id int64) (*domain.Complaint, error) {
	query := `
		DELETE FROM complaints WHERE id = $1
		RETURNING id, title
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	c := &domain.Complaint{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title); err != nil {
		return nil, err
	}

	return c, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
