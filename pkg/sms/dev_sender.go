package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DevSender implements Sender for local development. It saves outgoing
// messages as JSON files instead of submitting them to a carrier.
type DevSender struct {
	dir string
}

// NewDevSender creates a development SMS sender that saves messages to disk.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type devSMS struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Body      string `json:"body"`
}

// SendSMS writes the message to the configured directory.
func (d *DevSender) SendSMS(ctx context.Context, params SendSMSParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dev sms directory: %v", ErrFailedToSend, err)
	}

	now := time.Now()
	data, err := json.MarshalIndent(devSMS{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Body:      params.Body,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal dev sms: %v", ErrFailedToSend, err)
	}

	path := filepath.Join(d.dir, now.Format("2006_01_02_150405.000000000")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write dev sms: %v", ErrFailedToSend, err)
	}
	return nil
}
