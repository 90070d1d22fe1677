package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leadgate/internal/domain"
	"leadgate/internal/port"
)

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	if a.CreatedAt.IsZero() {
		now := time.Now().UTC()
		a.CreatedAt = now
		a.UpdatedAt = now
	}

	query := `INSERT INTO attachments
		(id, submission_id, slot_key, slot_label, file_name, file_size, content_type,
		 stage_bucket, stage_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.SubmissionID, a.SlotKey, a.SlotLabel, a.FileName, a.FileSize, a.ContentType,
		a.StageBucket, a.StageKey, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Attachment, error) {
	var out []domain.Attachment
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM attachments WHERE submission_id = $1 ORDER BY created_at, id", submissionID)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListBySubmission: %w", err)
	}
	return out, nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, submissionID, id uuid.UUID) (*domain.Attachment, error) {
	var a domain.Attachment
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM attachments WHERE id = $1 AND submission_id = $2", id, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("attachmentRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *attachmentRepo) UpdateStatus(ctx context.Context, submissionID, id uuid.UUID, status domain.UploadStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE attachments SET status = $1, updated_at = $2 WHERE id = $3 AND submission_id = $4",
		status, time.Now().UTC(), id, submissionID)
	if err != nil {
		return fmt.Errorf("attachmentRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attachmentRepo) Delete(ctx context.Context, submissionID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM attachments WHERE id = $1 AND submission_id = $2", id, submissionID)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attachmentRepo) DeleteBySlot(ctx context.Context, submissionID uuid.UUID, slotKey string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM attachments WHERE submission_id = $1 AND slot_key = $2", submissionID, slotKey)
	if err != nil {
		return fmt.Errorf("attachmentRepo.DeleteBySlot: %w", err)
	}
	return nil
}
