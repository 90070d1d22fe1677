package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leadgate/internal/domain"
	"leadgate/internal/service"
)

// MockSubmissionService is a mock implementation of service.SubmissionService.
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) CreateDraft(ctx context.Context, partnerID uuid.UUID, formKey string) (*domain.Submission, error) {
	args := m.Called(ctx, partnerID, formKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*domain.Submission, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionService) List(ctx context.Context, partnerID uuid.UUID, offset, limit int) ([]domain.Submission, int, error) {
	args := m.Called(ctx, partnerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Submission), args.Int(1), args.Error(2)
}

func (m *MockSubmissionService) SetAnswers(ctx context.Context, partnerID, id uuid.UUID, answers domain.FormAnswers) (*service.RequirementsView, error) {
	args := m.Called(ctx, partnerID, id, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RequirementsView), args.Error(1)
}

func (m *MockSubmissionService) Requirements(ctx context.Context, partnerID, id uuid.UUID) (*service.RequirementsView, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RequirementsView), args.Error(1)
}

func (m *MockSubmissionService) Submit(ctx context.Context, partnerID, id uuid.UUID) (*service.SubmitResult, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}
