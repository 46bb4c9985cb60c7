package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/mailer"
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/notification"
	"github.com/wneessen/go-mail"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	// Without SMTP credentials the worker still runs: it drains the queue
	// and drops messages so the API side is unaffected.
	mailEnabled := cfg.Email.SMTP.Host != "" && cfg.Email.SMTP.Username != ""
	if !mailEnabled {
		logger.Warn("SMTP credentials not configured, mail sending disabled")
	}

	from := cfg.Email.From
	if from == "" {
		from = cfg.Email.SMTP.Username
	}

	var client *mail.Client
	if mailEnabled {
		client, err = mail.NewClient(cfg.Email.SMTP.Host,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithSSL(),
			mail.WithPort(cfg.Email.SMTP.Port),
			mail.WithUsername(cfg.Email.SMTP.Username),
			mail.WithPassword(cfg.Email.SMTP.Password),
		)
		if err != nil {
			logger.Error("failed to create mail client", slog.String("error", err.Error()))
			return
		}
		defer client.Close()

		dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
		defer cancel()
		if err := client.DialWithContext(dialCtx); err != nil {
			logger.Error("failed to connect to mail server", slog.String("error", err.Error()))
			return
		}
	}

	builder, err := mailer.NewBuilder(from)
	if err != nil {
		logger.Error("failed to create mail builder", slog.String("error", err.Error()))
		return
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		notification.QueueName,
		true,  // durable
		false, // autoDelete off so the queue survives without consumers
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual acks
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("received message", slog.String("message", string(msg.Body)))

				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("failed to decode mail message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if !mailEnabled {
					logger.Warn("dropping mail message, sending disabled", slog.String("type", mailMessage.Type))
					_ = msg.Ack(false)
					continue
				}

				m, err := builder.Build(mailMessage)
				if err != nil {
					logger.Error("failed to build mail", slog.String("type", mailMessage.Type), slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("failed to send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue for another attempt
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker stopped")
}
