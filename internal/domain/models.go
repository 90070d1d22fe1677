package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Partner represents an authenticated intake partner (agent or branch user).
type Partner struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Mobile       string    `db:"mobile" json:"mobile"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Submission represents one in-progress or completed lead application.
// Answers holds the full form answer map as JSON. LeadID is set once Phase A
// succeeds and is retained across retries so a re-submit never creates a
// duplicate upstream lead.
type Submission struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	PartnerID uuid.UUID        `db:"partner_id" json:"partner_id"`
	FormKey   string           `db:"form_key" json:"form_key"`
	Answers   json.RawMessage  `db:"answers" json:"answers"`
	Status    SubmissionStatus `db:"status" json:"status"`
	LeadID    string           `db:"lead_id" json:"lead_id"`
	LastError string           `db:"last_error" json:"last_error,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AnswerMap decodes the stored answers into a FormAnswers map.
func (s *Submission) AnswerMap() (FormAnswers, error) {
	answers := FormAnswers{}
	if len(s.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(s.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// FileRef is the opaque handle to one staged file: where it lives in staging
// storage plus the display name, size and content type the partner picked.
type FileRef struct {
	Bucket      string `db:"-" json:"-"`
	Key         string `db:"-" json:"-"`
	Name        string `db:"-" json:"name"`
	Size        int64  `db:"-" json:"size"`
	ContentType string `db:"-" json:"content_type"`
}

// Attachment is one queued document: a staged file earmarked for one slot of
// one submission, carrying its upload lifecycle status.
type Attachment struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	SubmissionID uuid.UUID    `db:"submission_id" json:"submission_id"`
	SlotKey      string       `db:"slot_key" json:"slot_key"`
	SlotLabel    string       `db:"slot_label" json:"slot_label"`
	FileName     string       `db:"file_name" json:"file_name"`
	FileSize     int64        `db:"file_size" json:"file_size"`
	ContentType  string       `db:"content_type" json:"content_type"`
	StageBucket  string       `db:"stage_bucket" json:"-"`
	StageKey     string       `db:"stage_key" json:"-"`
	Status       UploadStatus `db:"status" json:"status"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// FileRef returns the staging handle for this attachment.
func (a *Attachment) FileRef() FileRef {
	return FileRef{
		Bucket:      a.StageBucket,
		Key:         a.StageKey,
		Name:        a.FileName,
		Size:        a.FileSize,
		ContentType: a.ContentType,
	}
}
