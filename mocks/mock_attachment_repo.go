package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leadgate/internal/domain"
)

// MockAttachmentRepo is a mock implementation of port.AttachmentRepository.
type MockAttachmentRepo struct {
	mock.Mock
}

func (m *MockAttachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttachmentRepo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepo) GetByID(ctx context.Context, submissionID, id uuid.UUID) (*domain.Attachment, error) {
	args := m.Called(ctx, submissionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepo) UpdateStatus(ctx context.Context, submissionID, id uuid.UUID, status domain.UploadStatus) error {
	args := m.Called(ctx, submissionID, id, status)
	return args.Error(0)
}

func (m *MockAttachmentRepo) Delete(ctx context.Context, submissionID, id uuid.UUID) error {
	args := m.Called(ctx, submissionID, id)
	return args.Error(0)
}

func (m *MockAttachmentRepo) DeleteBySlot(ctx context.Context, submissionID uuid.UUID, slotKey string) error {
	args := m.Called(ctx, submissionID, slotKey)
	return args.Error(0)
}
