package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leadgate/internal/port"
)

// MockLeadAPI is a mock implementation of port.LeadAPI.
type MockLeadAPI struct {
	mock.Mock
}

func (m *MockLeadAPI) CreateLead(ctx context.Context, input port.CreateLeadInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockLeadAPI) UploadDocument(ctx context.Context, leadID string, doc port.DocumentUpload) error {
	args := m.Called(ctx, leadID, doc)
	return args.Error(0)
}
