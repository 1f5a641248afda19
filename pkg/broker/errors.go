package broker

import "errors"

var (
	// ErrNotConnected is returned when publish or subscribe is attempted
	// before Connect succeeded or after Close.
	ErrNotConnected = errors.New("broker gateway is not connected")

	// ErrUnknownChannel is returned for a channel outside the fixed topology.
	ErrUnknownChannel = errors.New("no queue configured for channel")

	// ErrConnectFailed is returned when the dial retry budget is exhausted.
	ErrConnectFailed = errors.New("failed to connect to broker")

	// ErrPublishFailed is returned when the broker rejects a publish or the
	// publisher confirm does not arrive within the configured timeout.
	ErrPublishFailed = errors.New("broker did not confirm publish")

	// ErrClosed is returned for operations on a gateway after Close.
	ErrClosed = errors.New("broker gateway is closed")
)
