package email

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MockClient records sends in memory. Used in tests and as the provider
// of last resort when no real mailer is configured.
type MockClient struct {
	config     *Config
	logger     Logger
	sentEmails []MockSentEmail
	mu         sync.RWMutex
}

type MockSentEmail struct {
	Message *Message  `json:"message"`
	SentAt  time.Time `json:"sent_at"`
	Status  string    `json:"status"` // sent, failed
	Error   string    `json:"error,omitempty"`
}

func NewMockClient(config *Config, logger Logger) *MockClient {
	return &MockClient{
		config:     config,
		logger:     logger,
		sentEmails: make([]MockSentEmail, 0),
	}
}

func (m *MockClient) Send(ctx context.Context, message *Message) error {
	if err := validateMessage(message, m.config.DefaultFrom); err != nil {
		return err
	}

	if m.config.MockDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.MockDelay):
		}
	}

	if m.shouldFail() {
		err := fmt.Errorf("mock email send failure (simulated)")
		m.record(MockSentEmail{Message: message, SentAt: time.Now(), Status: "failed", Error: err.Error()})
		return NewError("send", "mock", err)
	}

	m.record(MockSentEmail{Message: message, SentAt: time.Now(), Status: "sent"})

	m.logger.Debug("mock email sent",
		"to", message.To,
		"subject", message.Subject,
	)
	return nil
}

func (m *MockClient) Close() error {
	m.mu.RLock()
	total := len(m.sentEmails)
	m.mu.RUnlock()

	m.logger.Info("mock email client closed", "total_sent", total)
	return nil
}

// SentEmails returns a copy of everything sent so far.
func (m *MockClient) SentEmails() []MockSentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]MockSentEmail, len(m.sentEmails))
	copy(emails, m.sentEmails)
	return emails
}

// LastSentEmail returns the most recent send, or nil.
func (m *MockClient) LastSentEmail() *MockSentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.sentEmails) == 0 {
		return nil
	}
	last := m.sentEmails[len(m.sentEmails)-1]
	return &last
}

func (m *MockClient) SetFailRate(rate float64) {
	m.config.MockFailRate = rate
}

func (m *MockClient) shouldFail() bool {
	if m.config.MockFailRate <= 0 {
		return false
	}
	return rand.Float64() < m.config.MockFailRate
}

func (m *MockClient) record(email MockSentEmail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentEmails = append(m.sentEmails, email)
}
