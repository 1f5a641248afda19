package sms_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notification-service/pkg/sms"
)

func TestSendSMSParamsValidate(t *testing.T) {
	t.Parallel()

	valid := sms.SendSMSParams{
		SendTo: "+15550001111",
		Body:   "Hello",
	}

	tests := []struct {
		name    string
		mutate  func(p *sms.SendSMSParams)
		wantErr bool
	}{
		{name: "valid e164", mutate: func(p *sms.SendSMSParams) {}},
		{name: "valid without plus", mutate: func(p *sms.SendSMSParams) { p.SendTo = "15550001111" }},
		{name: "empty recipient", mutate: func(p *sms.SendSMSParams) { p.SendTo = "" }, wantErr: true},
		{name: "letters in number", mutate: func(p *sms.SendSMSParams) { p.SendTo = "+1555CALLNOW" }, wantErr: true},
		{name: "too short", mutate: func(p *sms.SendSMSParams) { p.SendTo = "+12345" }, wantErr: true},
		{name: "empty body", mutate: func(p *sms.SendSMSParams) { p.Body = "" }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := valid
			tt.mutate(&params)
			err := params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, sms.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTwilioClient(t *testing.T) {
	t.Parallel()

	valid := sms.Config{
		TwilioAccountSID: "ACxxxxxxxx",
		TwilioAuthToken:  "token",
		SenderNumber:     "+15550009999",
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := sms.NewTwilioClient(valid)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("incomplete config", func(t *testing.T) {
		t.Parallel()

		for _, mutate := range []func(c *sms.Config){
			func(c *sms.Config) { c.TwilioAccountSID = "" },
			func(c *sms.Config) { c.TwilioAuthToken = "" },
			func(c *sms.Config) { c.SenderNumber = "" },
		} {
			cfg := valid
			mutate(&cfg)
			_, err := sms.NewTwilioClient(cfg)
			assert.ErrorIs(t, err, sms.ErrInvalidConfig)
		}
	})
}

func TestConfigDevMode(t *testing.T) {
	t.Parallel()

	assert.True(t, sms.Config{}.DevMode())
	assert.True(t, sms.Config{TwilioAccountSID: "x"}.DevMode())
	assert.False(t, sms.Config{TwilioAccountSID: "x", TwilioAuthToken: "y"}.DevMode())
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := sms.NewDevSender(dir)

	require.NoError(t, sender.SendSMS(context.Background(), sms.SendSMSParams{
		SendTo: "+15550001111",
		Body:   "Order shipped\nYour order is on its way",
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var record map[string]string
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "+15550001111", record["send_to"])
	assert.Equal(t, "Order shipped\nYour order is on its way", record["body"])
}
