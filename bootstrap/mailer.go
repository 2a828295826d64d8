package bootstrap

import (
	"ecom-admin/config"
	"ecom-admin/pkg/email"
)

// Mailer wraps the configured email client together with the sender
// address used for transactional mail.
type Mailer struct {
	from   string
	client email.Client
}

func NewMailer(cfg config.EmailConfig, logger email.Logger) (*Mailer, error) {
	emailConfig := &email.Config{
		Provider:         cfg.Provider(),
		DefaultFrom:      cfg.DefaultFrom(),
		SESRegion:        cfg.SESRegion(),
		SESAccessKey:     cfg.SESAccessKey(),
		SESSecretKey:     cfg.SESSecretKey(),
		SendGridAPIKey:   cfg.SendGridAPIKey(),
		SendGridFromName: cfg.FromName(),
	}

	client, err := email.GetClientFromConfig(emailConfig, logger)
	if err != nil {
		return nil, err
	}

	return &Mailer{
		from:   cfg.DefaultFrom(),
		client: client,
	}, nil
}

func (m *Mailer) From() string {
	return m.from
}

func (m *Mailer) Client() email.Client {
	return m.client
}
