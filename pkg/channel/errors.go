package channel

import "errors"

var (
	// ErrMissingRecipient is returned when the message lacks the recipient
	// field its channel requires. The failure is permanent: retrying cannot
	// supply a missing address.
	ErrMissingRecipient = errors.New("message is missing the recipient for its channel")

	// ErrNoSender is returned when no sender is registered for a channel.
	ErrNoSender = errors.New("no sender registered for channel")
)
