package sms

import "errors"

var (
	// ErrFailedToSend is returned when the carrier rejects the message.
	ErrFailedToSend = errors.New("failed to send sms")

	// ErrInvalidConfig is returned when sender configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid sms sender config")

	// ErrInvalidParams is returned when send parameters fail validation.
	ErrInvalidParams = errors.New("invalid sms params")
)
