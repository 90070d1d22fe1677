package port

import (
	"context"

	"github.com/google/uuid"

	"leadgate/internal/domain"
)

// PartnerRepository manages partner accounts.
type PartnerRepository interface {
	Create(ctx context.Context, p *domain.Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Partner, error)
}

// SubmissionRepository manages lead submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*domain.Submission, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, offset, limit int) ([]domain.Submission, int, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Submission, int, error)
	UpdateAnswers(ctx context.Context, s *domain.Submission) error
	UpdateOutcome(ctx context.Context, s *domain.Submission) error
}

// AttachmentRepository manages the persisted document queue of a submission.
type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.Attachment) error
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Attachment, error)
	GetByID(ctx context.Context, submissionID, id uuid.UUID) (*domain.Attachment, error)
	UpdateStatus(ctx context.Context, submissionID, id uuid.UUID, status domain.UploadStatus) error
	Delete(ctx context.Context, submissionID, id uuid.UUID) error
	DeleteBySlot(ctx context.Context, submissionID uuid.UUID, slotKey string) error
}
