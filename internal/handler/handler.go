package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/metrics"
)

// Store is the slice of the repository the handlers need.
type Store interface {
	GetUserByID(id int64) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	UpdateUser(user *domain.User) error
	CreateComplaint(c *domain.Complaint) error
	GetComplaintByID(id int64) (*domain.Complaint, error)
	ListComplaints(f domain.ComplaintFilter) ([]*domain.Complaint, int64, error)
	UpdateComplaint(c *domain.Complaint) error
	DeleteComplaint(id int64) (*domain.Complaint, error)
	Ping(ctx context.Context) error
}

// Notifier dispatches email notifications. Complaint alerts are fire and
// forget; the remaining operations report their outcome.
type Notifier interface {
	ComplaintCreated(c *domain.Complaint)
	ComplaintUpdated(oldStatus domain.Status, c *domain.Complaint)
	ConfigurationTest() error
	PasswordReset(to string, name string, otp string, expirationMinutes int) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	store       Store
	notifier    Notifier
	translator  ut.Translator
	redisClient *redis.Client
	metrics     *metrics.Collector

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store Store, notifier Notifier, rdb *redis.Client, collector *metrics.Collector) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		store:       store,
		notifier:    notifier,
		translator:  trans,
		redisClient: rdb,
		metrics:     collector,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)
	h.Mux.Method("GET", "/metrics", h.metrics.Handler())

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Route("/complaints", func(r chi.Router) {
		// anyone may submit a complaint, even anonymously
		r.Post("/", h.CreateComplaint)

		// everything else is for administrators
		r.With(h.auth, h.requireAdmin).Get("/", h.ListComplaints)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.auth)
			r.Use(h.requireAdmin)
			r.Use(h.complaintCtx)
			r.Get("/", h.GetComplaint)
			r.Put("/", h.UpdateComplaint)
			r.Delete("/", h.DeleteComplaint)
		})
	})

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})
		r.With(h.requireAdmin).Post("/notifications/test", h.TestNotification)
	})
}
