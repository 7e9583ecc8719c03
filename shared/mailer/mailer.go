package mailer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("no recipients specified")

// Config holds SMTP configuration for sending emails.
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"     envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Enabled reports whether enough settings are present to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// Validate checks if the Mailer configuration is valid.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}

	return nil
}

// Email represents an email message.
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// Sender sends a single email.
type Sender interface {
	Send(email Email) error
}

// Mailer represents an email sender.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
	logger *zerolog.Logger
}

// NewMailer creates a new Mailer instance with the given configuration.
// The sender address defaults to the SMTP username.
func NewMailer(logger *zerolog.Logger, cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}, nil
}

// Send sends a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}

	if err := m.dialer.DialAndSend(m.newMessage(email)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug().Strs("to", email.To).Str("subject", email.Subject).Msg("email sent")

	return nil
}

func (m *Mailer) newMessage(email Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)

	if email.ReplyTo != "" {
		msg.SetHeader("Reply-To", email.ReplyTo)
	}

	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return msg
}
