package sms

// Config holds SMS transport configuration. The Twilio credentials are
// optional to support development environments where real sending is
// disabled.
type Config struct {
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	SenderNumber     string `env:"TWILIO_PHONE_NUMBER"`
	DevDir           string `env:"SMS_DEV_DIR" envDefault:"./tmp/sms"`
}

// DevMode reports whether the config selects the development sender.
func (c Config) DevMode() bool {
	return c.TwilioAccountSID == "" || c.TwilioAuthToken == ""
}
