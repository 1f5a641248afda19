package notification

import "errors"

var (
	// ErrEmptyUserID is returned when a request carries no user identifier.
	ErrEmptyUserID = errors.New("user_id is required")

	// ErrNoChannels is returned when a request names no delivery channels.
	ErrNoChannels = errors.New("at least one notification type is required")

	// ErrUnknownChannel is returned when a request names a channel outside the closed set.
	ErrUnknownChannel = errors.New("unknown notification type")

	// ErrEmptyContent is returned when title or message body is missing.
	ErrEmptyContent = errors.New("title and message are required")

	// ErrAlreadyTerminal is returned on a second status transition attempt.
	ErrAlreadyTerminal = errors.New("message already reached a terminal status")
)
