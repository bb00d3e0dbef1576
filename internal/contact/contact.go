// Package contact relays website contact form submissions to the studio inbox.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/devnzo/finance-calc/internal/logger"
	"github.com/devnzo/finance-calc/internal/metrics"
	"github.com/devnzo/finance-calc/internal/validators"
)

// ErrDelivery wraps mail provider failures
var ErrDelivery = errors.New("contact message delivery failed")

const defaultSubject = "New contact form submission"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Request is a contact form submission
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Normalize trims every field and fills in the default subject
func (r Request) Normalize() Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	if r.Subject == "" {
		r.Subject = defaultSubject
	}
	return r
}

// Validate checks required fields and the email shape
func (r Request) Validate() error {
	if r.Name == "" {
		return validators.Invalid("name", validators.KindRequired, "name is required")
	}
	if r.Email == "" {
		return validators.Invalid("email", validators.KindRequired, "email is required")
	}
	if !ValidEmail(r.Email) {
		return validators.Invalid("email", validators.KindBadFormat, "%q is not a valid email address", r.Email)
	}
	if r.Message == "" {
		return validators.Invalid("message", validators.KindRequired, "message is required")
	}
	return nil
}

// Service formats submissions and hands them to a Mailer
type Service struct {
	mailer Mailer
	from   string
	to     string
}

func NewService(mailer Mailer, from, to string) *Service {
	return &Service{mailer: mailer, from: from, to: to}
}

// Submit validates req and sends it, returning the provider message id
func (s *Service) Submit(ctx context.Context, req Request) (string, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		metrics.ContactMessages.WithLabelValues("invalid").Inc()
		return "", err
	}

	id, err := s.mailer.Send(ctx, Email{
		From:    s.from,
		To:      s.to,
		Subject: req.Subject,
		HTML:    renderHTML(req),
		ReplyTo: req.Email,
	})
	if err != nil {
		metrics.ContactMessages.WithLabelValues("failed").Inc()
		logger.Get().Errorw("contact message not delivered", "error", err)
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	metrics.ContactMessages.WithLabelValues("sent").Inc()
	logger.Get().Infow("contact message sent", "id", id)
	return id, nil
}

func renderHTML(req Request) string {
	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(req.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(req.Email))
	if req.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(req.Phone))
	}
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(req.Subject))
	message := strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>")
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>", message)
	return b.String()
}
