package inapp

import "errors"

var (
	// ErrEmptyUserID is returned when a message without a user identifier
	// is appended or listed.
	ErrEmptyUserID = errors.New("user ID is required")

	// ErrEmptyMessageID is returned when a message without an identifier is appended.
	ErrEmptyMessageID = errors.New("message ID is required")
)
