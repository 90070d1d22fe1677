package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leadgate/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSubmissionOutcome(ctx context.Context, toEmail, toName string, outcome port.SubmissionOutcome) error {
	args := m.Called(ctx, toEmail, toName, outcome)
	return args.Error(0)
}
