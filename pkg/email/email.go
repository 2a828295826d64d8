package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

type Provider string

const (
	SES      Provider = "ses"
	SendGrid Provider = "sendgrid"
	Mock     Provider = "mock"
)

var (
	ErrInvalidProvider       = errors.New("invalid email provider")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrMissingRecipients     = errors.New("no recipients specified")
	ErrMissingSubject        = errors.New("subject is required")
	ErrMissingContent        = errors.New("email content is required")
	ErrProviderNotConfigured = errors.New("email provider not properly configured")
)

type Error struct {
	Operation string
	Provider  string
	Err       error
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("email %s operation failed for provider '%s': %v", e.Operation, e.Provider, e.Err)
	}
	return fmt.Sprintf("email %s operation failed: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(operation, provider string, err error) *Error {
	return &Error{Operation: operation, Provider: provider, Err: err}
}

type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Client sends transactional mail. The only producer today is the
// password reset flow.
type Client interface {
	Send(ctx context.Context, message *Message) error
	Close() error
}

type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

type Config struct {
	Provider    string `json:"provider" yaml:"provider"`
	DefaultFrom string `json:"default_from" yaml:"default_from"`

	SESRegion    string `json:"ses_region" yaml:"ses_region"`
	SESAccessKey string `json:"ses_access_key" yaml:"ses_access_key"`
	SESSecretKey string `json:"ses_secret_key" yaml:"ses_secret_key"`

	SendGridAPIKey   string `json:"sendgrid_api_key" yaml:"sendgrid_api_key"`
	SendGridFromName string `json:"sendgrid_from_name" yaml:"sendgrid_from_name"`

	MaxRetries int           `json:"max_retries" yaml:"max_retries"`
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// Mock provider only.
	MockDelay    time.Duration `json:"mock_delay" yaml:"mock_delay"`
	MockFailRate float64       `json:"mock_fail_rate" yaml:"mock_fail_rate"`
}

var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAddress rejects anything that does not look like a mailbox.
func ValidateAddress(address string) error {
	if !addressRegex.MatchString(address) {
		return ErrInvalidEmail
	}
	return nil
}

func validateMessage(message *Message, defaultFrom string) error {
	if len(message.To) == 0 {
		return ErrMissingRecipients
	}
	if message.Subject == "" {
		return ErrMissingSubject
	}
	if message.Text == "" && message.HTML == "" {
		return ErrMissingContent
	}

	from := message.From
	if from == "" {
		from = defaultFrom
	}
	if err := ValidateAddress(from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	for _, to := range message.To {
		if err := ValidateAddress(to); err != nil {
			return fmt.Errorf("invalid to address %s: %w", to, err)
		}
	}
	return nil
}

type Factory struct {
	logger Logger
}

func NewEmailFactory(logger Logger) *Factory {
	return &Factory{logger: logger}
}

// CreateClient builds a client for the configured provider.
func (f *Factory) CreateClient(provider Provider, config *Config) (Client, error) {
	switch provider {
	case SES:
		return f.createSESClient(config)
	case SendGrid:
		return f.createSendGridClient(config)
	case Mock:
		return f.createMockClient(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, provider)
	}
}

func (f *Factory) createSESClient(config *Config) (Client, error) {
	f.setRetryDefaults(config)
	if config.SESRegion == "" {
		config.SESRegion = "us-east-1"
	}

	client, err := NewSESClient(config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SES client: %w", err)
	}

	f.logger.Info("SES email client created",
		"region", config.SESRegion,
		"default_from", config.DefaultFrom,
	)
	return client, nil
}

func (f *Factory) createSendGridClient(config *Config) (Client, error) {
	f.setRetryDefaults(config)

	client, err := NewSendGridClient(config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SendGrid client: %w", err)
	}

	f.logger.Info("SendGrid email client created",
		"default_from", config.DefaultFrom,
		"from_name", config.SendGridFromName,
	)
	return client, nil
}

func (f *Factory) createMockClient(config *Config) (Client, error) {
	client := NewMockClient(config, f.logger)

	f.logger.Info("mock email client created",
		"delay", config.MockDelay,
		"fail_rate", config.MockFailRate,
	)
	return client, nil
}

func (f *Factory) setRetryDefaults(config *Config) {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
}

// GetClientFromConfig creates an email client from configuration.
func GetClientFromConfig(config *Config, logger Logger) (Client, error) {
	factory := NewEmailFactory(logger)
	return factory.CreateClient(Provider(config.Provider), config)
}
