package email

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESClient struct {
	client *ses.Client
	config *Config
	logger Logger
}

func NewSESClient(emailConfig *Config, logger Logger) (*SESClient, error) {
	if emailConfig.SESAccessKey == "" || emailConfig.SESSecretKey == "" {
		return nil, NewError("create_ses_client", "ses", ErrProviderNotConfigured)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(emailConfig.SESRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			emailConfig.SESAccessKey,
			emailConfig.SESSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, NewError("create_ses_config", "ses", err)
	}

	client := &SESClient{
		client: ses.NewFromConfig(cfg),
		config: emailConfig,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping SES service: %w", err)
	}
	return client, nil
}

func (s *SESClient) ping(ctx context.Context) error {
	_, err := s.client.GetSendStatistics(ctx, &ses.GetSendStatisticsInput{})
	return err
}

func (s *SESClient) Send(ctx context.Context, message *Message) error {
	if err := validateMessage(message, s.config.DefaultFrom); err != nil {
		return err
	}

	input := s.buildInput(message)

	var lastErr error
	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.config.RetryDelay * time.Duration(attempt)):
			}
		}

		_, err := s.client.SendEmail(ctx, input)
		if err == nil {
			s.logger.Debug("email sent via SES",
				"to", message.To,
				"subject", message.Subject,
				"attempt", attempt+1,
			)
			return nil
		}

		lastErr = err
		s.logger.Debug("SES send attempt failed",
			"attempt", attempt+1,
			"error", err.Error(),
		)
	}

	return NewError("send", "ses", lastErr)
}

func (s *SESClient) Close() error {
	// The SDK client holds no connection state to release.
	s.logger.Info("SES client closed")
	return nil
}

func (s *SESClient) buildInput(message *Message) *ses.SendEmailInput {
	from := message.From
	if from == "" {
		from = s.config.DefaultFrom
	}

	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: message.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(message.Subject),
			},
		},
	}

	body := &types.Body{}
	if message.Text != "" {
		body.Text = &types.Content{Data: aws.String(message.Text)}
	}
	if message.HTML != "" {
		body.Html = &types.Content{Data: aws.String(message.HTML)}
	}
	input.Message.Body = body

	if len(message.CC) > 0 {
		input.Destination.CcAddresses = message.CC
	}
	if len(message.BCC) > 0 {
		input.Destination.BccAddresses = message.BCC
	}
	if message.ReplyTo != "" {
		input.ReplyToAddresses = []string{message.ReplyTo}
	}

	return input
}
