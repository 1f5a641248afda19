// Package email provides the outbound email transport used by the email
// notification channel. The production sender submits through Postmark's
// transactional API; DevSender writes outgoing mail to disk for local runs.
package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender represents an interface for sending emails.
type Sender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo  string `json:"send_to"`       // Email address of the recipient
	Subject string `json:"subject"`       // Subject of the email
	Body    string `json:"body"`          // Plain text body of the email
	Tag     string `json:"tag,omitempty"` // Optional
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the parameters describe a sendable email.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if p.Body == "" {
		return fmt.Errorf("%w: Body is required", ErrInvalidParams)
	}
	return nil
}
