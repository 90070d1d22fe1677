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

type partnerRepo struct {
	db *sqlx.DB
}

// NewPartnerRepo creates a new PostgreSQL-backed PartnerRepository.
func NewPartnerRepo(db *sqlx.DB) port.PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) Create(ctx context.Context, p *domain.Partner) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO partners
		(id, email, password_hash, full_name, mobile, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.FullName, p.Mobile, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("partnerRepo.Create: %w", err)
	}
	return nil
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	var p domain.Partner
	err := r.db.GetContext(ctx, &p, "SELECT * FROM partners WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("partnerRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *partnerRepo) GetByEmail(ctx context.Context, email string) (*domain.Partner, error) {
	var p domain.Partner
	err := r.db.GetContext(ctx, &p, "SELECT * FROM partners WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("partnerRepo.GetByEmail: %w", err)
	}
	return &p, nil
}
