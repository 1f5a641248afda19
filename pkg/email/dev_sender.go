package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DevSender implements Sender for local development. It saves outgoing
// emails as text and JSON files instead of submitting them to a provider.
type DevSender struct {
	dir string
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory is created on first send if it doesn't exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type devEmail struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Tag       string `json:"tag,omitempty"`
}

// SendEmail writes the email to the configured directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dev mail directory: %v", ErrFailedToSend, err)
	}

	now := time.Now()
	record := devEmail{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Body:      params.Body,
		Tag:       params.Tag,
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal dev email: %v", ErrFailedToSend, err)
	}

	path := filepath.Join(d.dir, now.Format("2006_01_02_150405.000000000")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write dev email: %v", ErrFailedToSend, err)
	}
	return nil
}
