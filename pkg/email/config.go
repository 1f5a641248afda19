package email

// Config holds email transport configuration. The Postmark tokens are
// optional to support development environments where real sending is
// disabled; SenderEmail establishes the sender identity for all outbound
// mail and is always required.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"EMAIL_SENDER" envDefault:"no-reply@example.com"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// DevMode reports whether the config selects the development sender.
func (c Config) DevMode() bool {
	return c.PostmarkServerToken == "" || c.PostmarkAccountToken == ""
}
