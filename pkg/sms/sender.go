// Package sms provides the outbound SMS transport used by the sms
// notification channel. The production sender submits through the Twilio
// REST API; DevSender writes outgoing messages to disk for local runs.
package sms

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender represents an interface for sending SMS messages.
type Sender interface {
	SendSMS(ctx context.Context, params SendSMSParams) error
}

// SendSMSParams represents the parameters for sending an SMS.
type SendSMSParams struct {
	SendTo string `json:"send_to"` // Phone number of the recipient in E.164 format
	Body   string `json:"body"`    // Message body
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Validate checks that the parameters describe a sendable message.
func (p SendSMSParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !phoneRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a phone number", ErrInvalidParams)
	}
	if p.Body == "" {
		return fmt.Errorf("%w: Body is required", ErrInvalidParams)
	}
	return nil
}
