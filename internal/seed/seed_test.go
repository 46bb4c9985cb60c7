package seed

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
)

type fakeExecer struct {
	err       error
	deadlines []time.Time
}

func (f *fakeExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if deadline, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, deadline)
	}
	return nil, f.err
}

func TestInsertRandomComplaints(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 7

	t.Run("uses the configured query timeout", func(t *testing.T) {
		db := &fakeExecer{}

		inserted := InsertRandomComplaints(cfg, db, 3)

		assert.Equal(t, 3, inserted)
		require.Len(t, db.deadlines, 3)
		for _, deadline := range db.deadlines {
			assert.LessOrEqual(t, time.Until(deadline), 7*time.Second)
			assert.Greater(t, time.Until(deadline), 6*time.Second)
		}
	})

	t.Run("failed inserts are not counted", func(t *testing.T) {
		db := &fakeExecer{err: errors.New("connection refused")}

		assert.Equal(t, 0, InsertRandomComplaints(cfg, db, 3))
	})
}
