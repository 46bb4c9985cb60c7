// Package seed fills a development database with random data.
package seed

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/repository"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/utils"
)

// InsertRandomUsers creates n random users sharing the given password and
// returns how many were actually inserted.
func InsertRandomUsers(repo *repository.Repository, n int, password string) int {
	inserted := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password)
		if err != nil {
			slog.Error("failed to generate random user", "error", err)
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert user", "error", err)
			continue
		}
		inserted++
	}
	return inserted
}

// execer is the slice of *sql.DB the complaint seeder needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertRandomComplaints inserts n random complaints. It writes directly to
// the pool because seeded complaints carry fields the API never accepts from
// clients (status, submission and resolution dates).
func InsertRandomComplaints(cfg *config.Config, dbpool execer, n int) int {
	query := `
		INSERT INTO complaints (title, description, category, priority, status, date_submitted, user_email, admin_notes, resolved_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	inserted := 0
	for i := 0; i < n; i++ {
		c := utils.GenerateRandomComplaint()

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.QueryTimeout)*time.Second)

		var userEmail, adminNotes any
		if c.UserEmail != "" {
			userEmail = c.UserEmail
		}
		if c.AdminNotes != "" {
			adminNotes = c.AdminNotes
		}

		_, err := dbpool.ExecContext(ctx, query, c.Title, c.Description, c.Category, c.Priority, c.Status, c.DateSubmitted, userEmail, adminNotes, c.ResolvedDate)
		cancel()
		if err != nil {
			slog.Error("failed to insert complaint", "error", err)
			continue
		}
		inserted++
	}
	return inserted
}
