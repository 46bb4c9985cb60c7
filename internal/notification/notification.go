// Package notification publishes email notifications to the mail queue.
//
// Complaint notifications are best-effort: a failed publish is logged and
// dropped so that the operation that triggered it never fails or rolls back
// because of mail problems.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/metrics"
)

const QueueName = "email_queue"

var ErrNoAdminAddr = errors.New("no admin notification address configured")

const timeFormat = "2006-01-02 15:04:05 MST"

// publisher is the slice of *amqp.Channel the service needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Service struct {
	cfg     *config.Config
	channel publisher
	metrics *metrics.Collector
}

func NewService(cfg *config.Config, channel publisher, collector *metrics.Collector) *Service {
	return &Service{
		cfg:     cfg,
		channel: channel,
		metrics: collector,
	}
}

// ComplaintCreated sends the new-complaint alert to the configured admin
// address. With no address configured it is silently skipped.
func (s *Service) ComplaintCreated(c *domain.Complaint) {
	if s.cfg.Email.AdminAddr == "" {
		return
	}

	s.publishBestEffort(domain.MailMessage{
		Type: domain.MailTypeNewComplaint,
		To:   s.cfg.Email.AdminAddr,
		Data: domain.NewComplaintMailData{
			Title:         c.Title,
			Description:   c.Description,
			Category:      string(c.Category),
			Priority:      string(c.Priority),
			Status:        string(c.Status),
			DateSubmitted: c.DateSubmitted.Format(timeFormat),
			UserEmail:     c.UserEmail,
			BaseURL:       s.cfg.BaseURL,
		},
	})
}

// UpdateMailTypes selects which alerts an update from oldStatus to newStatus
// triggers: a status-change alert on any change, plus a resolution alert when
// the complaint just became Resolved. Both may fire for the same update.
func UpdateMailTypes(oldStatus, newStatus domain.Status) []string {
	if oldStatus == newStatus {
		return nil
	}

	types := []string{domain.MailTypeStatusChanged}
	if newStatus == domain.StatusResolved {
		types = append(types, domain.MailTypeComplaintResolved)
	}
	return types
}

// ComplaintUpdated sends the alerts selected by UpdateMailTypes for an update
// whose pre-update status was oldStatus. Notes-only updates send nothing.
func (s *Service) ComplaintUpdated(oldStatus domain.Status, c *domain.Complaint) {
	if s.cfg.Email.AdminAddr == "" {
		return
	}

	for _, mailType := range UpdateMailTypes(oldStatus, c.Status) {
		switch mailType {
		case domain.MailTypeStatusChanged:
			s.publishBestEffort(domain.MailMessage{
				Type: domain.MailTypeStatusChanged,
				To:   s.cfg.Email.AdminAddr,
				Data: domain.StatusChangedMailData{
					Title:      c.Title,
					OldStatus:  string(oldStatus),
					NewStatus:  string(c.Status),
					AdminNotes: c.AdminNotes,
					UpdatedAt:  time.Now().Format(timeFormat),
					BaseURL:    s.cfg.BaseURL,
				},
			})
		case domain.MailTypeComplaintResolved:
			resolvedDate := time.Now()
			if c.ResolvedDate != nil {
				resolvedDate = *c.ResolvedDate
			}
			s.publishBestEffort(domain.MailMessage{
				Type: domain.MailTypeComplaintResolved,
				To:   s.cfg.Email.AdminAddr,
				Data: domain.ComplaintResolvedMailData{
					Title:        c.Title,
					Category:     string(c.Category),
					Priority:     string(c.Priority),
					AdminNotes:   c.AdminNotes,
					ResolvedDate: resolvedDate.Format(timeFormat),
					BaseURL:      s.cfg.BaseURL,
				},
			})
		}
	}
}

// ConfigurationTest sends a test email to the admin address so that operators
// can verify the mail pipeline. Unlike complaint alerts, the outcome is
// reported to the caller.
func (s *Service) ConfigurationTest() error {
	if s.cfg.Email.AdminAddr == "" {
		return ErrNoAdminAddr
	}

	return s.publish(domain.MailMessage{
		Type: domain.MailTypeConfigTest,
		To:   s.cfg.Email.AdminAddr,
		Data: domain.ConfigTestMailData{
			Time: time.Now().Format(timeFormat),
		},
	})
}

// PasswordReset sends a reset verification code to the user. The caller
// reports the outcome, so errors propagate.
func (s *Service) PasswordReset(to string, name string, otp string, expirationMinutes int) error {
	return s.publish(domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   to,
		Data: domain.ResetPasswordMailData{
			Name:       name,
			OTP:        otp,
			Expiration: expirationMinutes,
		},
	})
}

func (s *Service) publishBestEffort(msg domain.MailMessage) {
	if err := s.publish(msg); err != nil {
		slog.Error("failed to publish notification", "type", msg.Type, "error", err)
	}
}

func (s *Service) publish(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		s.metrics.RecordNotificationFailed(msg.Type)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := s.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		s.metrics.RecordNotificationFailed(msg.Type)
		return err
	}

	s.metrics.RecordNotificationPublished(msg.Type)
	return nil
}
