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

type submissionRepo struct {
	db *sqlx.DB
}

// NewSubmissionRepo creates a new PostgreSQL-backed SubmissionRepository.
func NewSubmissionRepo(db *sqlx.DB) port.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `INSERT INTO submissions
		(id, partner_id, form_key, answers, status, lead_id, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.PartnerID, s.FormKey, s.Answers, s.Status, s.LeadID, s.LastError, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("submissionRepo.Create: %w", err)
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*domain.Submission, error) {
	var s domain.Submission
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM submissions WHERE id = $1 AND partner_id = $2", id, partnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("submissionRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *submissionRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID, offset, limit int) ([]domain.Submission, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM submissions WHERE partner_id = $1", partnerID)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.ListByPartner count: %w", err)
	}

	var subs []domain.Submission
	err = r.db.SelectContext(ctx, &subs,
		`SELECT * FROM submissions
		 WHERE partner_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		partnerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.ListByPartner: %w", err)
	}
	return subs, total, nil
}

func (r *submissionRepo) ListAll(ctx context.Context, offset, limit int) ([]domain.Submission, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM submissions")
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.ListAll count: %w", err)
	}

	var subs []domain.Submission
	err = r.db.SelectContext(ctx, &subs,
		"SELECT * FROM submissions ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.ListAll: %w", err)
	}
	return subs, total, nil
}

func (r *submissionRepo) UpdateAnswers(ctx context.Context, s *domain.Submission) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"UPDATE submissions SET answers = $1, updated_at = $2 WHERE id = $3 AND partner_id = $4",
		s.Answers, s.UpdatedAt, s.ID, s.PartnerID)
	if err != nil {
		return fmt.Errorf("submissionRepo.UpdateAnswers: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *submissionRepo) UpdateOutcome(ctx context.Context, s *domain.Submission) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE submissions SET status = $1, lead_id = $2, last_error = $3, updated_at = $4
		 WHERE id = $5 AND partner_id = $6`,
		s.Status, s.LeadID, s.LastError, s.UpdatedAt, s.ID, s.PartnerID)
	if err != nil {
		return fmt.Errorf("submissionRepo.UpdateOutcome: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
