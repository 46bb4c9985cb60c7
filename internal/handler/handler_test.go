package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/token"
)

const testJWTSecret = "test-secret"

// fakeStore implements Store with overridable functions. Unset functions
// behave like an empty database.
type fakeStore struct {
	getUserByID      func(id int64) (*domain.User, error)
	getUserByEmail   func(email string) (*domain.User, error)
	updateUser       func(user *domain.User) error
	createComplaint  func(c *domain.Complaint) error
	getComplaintByID func(id int64) (*domain.Complaint, error)
	listComplaints   func(f domain.ComplaintFilter) ([]*domain.Complaint, int64, error)
	updateComplaint  func(c *domain.Complaint) error
	deleteComplaint  func(id int64) (*domain.Complaint, error)
	ping             func(ctx context.Context) error
}

func (s *fakeStore) GetUserByID(id int64) (*domain.User, error) {
	if s.getUserByID == nil {
		return nil, sql.ErrNoRows
	}
	return s.getUserByID(id)
}

func (s *fakeStore) GetUserByEmail(email string) (*domain.User, error) {
	if s.getUserByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return s.getUserByEmail(email)
}

func (s *fakeStore) UpdateUser(user *domain.User) error {
	if s.updateUser == nil {
		return nil
	}
	return s.updateUser(user)
}

func (s *fakeStore) CreateComplaint(c *domain.Complaint) error {
	if s.createComplaint == nil {
		return nil
	}
	return s.createComplaint(c)
}

func (s *fakeStore) GetComplaintByID(id int64) (*domain.Complaint, error) {
	if s.getComplaintByID == nil {
		return nil, sql.ErrNoRows
	}
	return s.getComplaintByID(id)
}

func (s *fakeStore) ListComplaints(f domain.ComplaintFilter) ([]*domain.Complaint, int64, error) {
	if s.listComplaints == nil {
		return nil, 0, nil
	}
	return s.listComplaints(f)
}

func (s *fakeStore) UpdateComplaint(c *domain.Complaint) error {
	if s.updateComplaint == nil {
		return nil
	}
	return s.updateComplaint(c)
}

func (s *fakeStore) DeleteComplaint(id int64) (*domain.Complaint, error) {
	if s.deleteComplaint == nil {
		return nil, sql.ErrNoRows
	}
	return s.deleteComplaint(id)
}

func (s *fakeStore) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// fakeNotifier records notification calls.
type fakeNotifier struct {
	created       []*domain.Complaint
	updatedOld    []domain.Status
	updated       []*domain.Complaint
	configTestErr error
	resetCalls    int
}

func (n *fakeNotifier) ComplaintCreated(c *domain.Complaint) {
	n.created = append(n.created, c)
}

func (n *fakeNotifier) ComplaintUpdated(oldStatus domain.Status, c *domain.Complaint) {
	n.updatedOld = append(n.updatedOld, oldStatus)
	n.updated = append(n.updated, c)
}

func (n *fakeNotifier) ConfigurationTest() error {
	return n.configTestErr
}

func (n *fakeNotifier) PasswordReset(to string, name string, otp string, expirationMinutes int) error {
	n.resetCalls++
	return nil
}

func newTestHandler(t *testing.T, store Store, notifier Notifier) *Handler {
	return newTestHandlerEnv(t, store, notifier, "development")
}

func newTestHandlerEnv(t *testing.T, store Store, notifier Notifier, environment string) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Environment = environment
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.Expiration = 3600
	cfg.Database.QueryTimeout = 5

	h, err := NewHandler(cfg, store, notifier, nil, metrics.NewCollector())
	require.NoError(t, err)
	h.RegisterRoutes()
	return h
}

func issueToken(t *testing.T, user *domain.User) string {
	t.Helper()
	tokenString, err := token.Issue(user, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return tokenString
}

// adminStore returns a store whose auth lookups resolve to the given admin.
func adminStore(admin *domain.User) *fakeStore {
	return &fakeStore{
		getUserByID: func(id int64) (*domain.User, error) {
			if id == admin.ID {
				return admin, nil
			}
			return nil, sql.ErrNoRows
		},
	}
}

func testAdmin() *domain.User {
	return &domain.User{
		ID:    1,
		Name:  "Administrator",
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
	}
}

func doRequest(t *testing.T, h *Handler, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}
