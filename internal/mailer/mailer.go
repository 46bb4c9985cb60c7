// Package mailer renders the HTML notification emails sent by the mail
// worker.
package mailer

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Builder turns queued mail messages into ready-to-send emails.
type Builder struct {
	from      string
	templates *template.Template
}

func NewBuilder(from string) (*Builder, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}

	return &Builder{
		from:      from,
		templates: templates,
	}, nil
}

// Build renders the template for the message type. The message data comes
// from the queue as decoded JSON, so templates address fields by their JSON
// names.
func (b *Builder) Build(msg domain.MailMessage) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(b.from); err != nil {
		return nil, err
	}
	if err := out.To(msg.To); err != nil {
		return nil, err
	}

	var templateName, subject string
	switch msg.Type {
	case domain.MailTypeConfigTest:
		templateName = "config_test.html"
		subject = "Email Configuration Test - Complaint Management System"
	case domain.MailTypeNewComplaint:
		templateName = "new_complaint.html"
		subject = "New Complaint Submitted: " + dataString(msg.Data, "title")
	case domain.MailTypeStatusChanged:
		templateName = "status_changed.html"
		subject = "Complaint Status Updated: " + dataString(msg.Data, "title")
	case domain.MailTypeComplaintResolved:
		templateName = "complaint_resolved.html"
		subject = "Complaint Resolved: " + dataString(msg.Data, "title")
	case domain.MailTypeResetPassword:
		templateName = "reset_password.html"
		subject = "Complaint Management System - Password Reset"
	default:
		return nil, fmt.Errorf("unsupported mail type %q", msg.Type)
	}

	tmpl := b.templates.Lookup(templateName)
	if tmpl == nil {
		return nil, fmt.Errorf("missing mail template %q", templateName)
	}
	if err := out.SetBodyHTMLTemplate(tmpl, msg.Data); err != nil {
		return nil, err
	}
	out.Subject(subject)

	return out, nil
}

func dataString(data any, key string) string {
	fields, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := fields[key].(string)
	return s
}
