package email

import "errors"

var (
	// ErrFailedToSend is returned when the underlying transport rejects the email.
	ErrFailedToSend = errors.New("failed to send email")

	// ErrInvalidConfig is returned when sender configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid email sender config")

	// ErrInvalidParams is returned when send parameters fail validation.
	ErrInvalidParams = errors.New("invalid email params")
)
