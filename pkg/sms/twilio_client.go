package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioClient struct {
	client *twilio.RestClient
	config Config
}

// NewTwilioClient creates a Twilio-backed SMS sender. Credentials and the
// sender number are required so a misconfigured service fails at startup.
func NewTwilioClient(cfg Config) (Sender, error) {
	if cfg.TwilioAccountSID == "" {
		return nil, fmt.Errorf("%w: TwilioAccountSID is required", ErrInvalidConfig)
	}
	if cfg.TwilioAuthToken == "" {
		return nil, fmt.Errorf("%w: TwilioAuthToken is required", ErrInvalidConfig)
	}
	if cfg.SenderNumber == "" {
		return nil, fmt.Errorf("%w: SenderNumber is required", ErrInvalidConfig)
	}

	return &twilioClient{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		config: cfg,
	}, nil
}

// SendSMS implements Sender using Twilio's messaging API.
func (c *twilioClient) SendSMS(ctx context.Context, params SendSMSParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	create := &twilioapi.CreateMessageParams{}
	create.SetTo(params.SendTo)
	create.SetFrom(c.config.SenderNumber)
	create.SetBody(params.Body)

	resp, err := c.client.Api.CreateMessage(create)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode != nil {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return errors.Join(ErrFailedToSend, fmt.Errorf("twilio error: %d - %s", *resp.ErrorCode, msg))
	}
	return nil
}
