package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"leadgate/internal/catalog"
	"leadgate/internal/domain"
	"leadgate/internal/forms"
	"leadgate/internal/port"
	"leadgate/internal/queue"
)

// AttachInput is the DTO for a multi-file attach request against one slot.
type AttachInput struct {
	PartnerID    uuid.UUID
	SubmissionID uuid.UUID
	SlotKey      string
	Files        []*multipart.FileHeader
}

// AttachResult reports staged entries and per-file rejections. Rejections are
// per-file: an oversized or wrongly typed file is skipped with a named warning
// while the rest of the batch proceeds.
type AttachResult struct {
	Added    []domain.Attachment  `json:"added"`
	Rejected []queue.RejectedFile `json:"rejected,omitempty"`
}

// AttachmentService stages picked files against submission slots.
type AttachmentService interface {
	Attach(ctx context.Context, input AttachInput) (*AttachResult, error)
	Remove(ctx context.Context, partnerID, submissionID, attachmentID uuid.UUID) error
}

type attachmentService struct {
	subRepo  port.SubmissionRepository
	attRepo  port.AttachmentRepository
	storage  port.ObjectStorage
	registry *forms.Registry
	cat      *catalog.Catalog
	bucket   string
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	subRepo port.SubmissionRepository,
	attRepo port.AttachmentRepository,
	storage port.ObjectStorage,
	registry *forms.Registry,
	cat *catalog.Catalog,
	bucket string,
) AttachmentService {
	return &attachmentService{
		subRepo:  subRepo,
		attRepo:  attRepo,
		storage:  storage,
		registry: registry,
		cat:      cat,
		bucket:   bucket,
	}
}

func (s *attachmentService) Attach(ctx context.Context, input AttachInput) (*AttachResult, error) {
	sub, err := s.subRepo.GetByID(ctx, input.PartnerID, input.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.SubmissionStatusCompleted {
		return nil, domain.ErrSubmissionNotDraft
	}
	def, ok := s.registry.Get(sub.FormKey)
	if !ok {
		return nil, domain.ErrUnknownForm
	}
	slot, ok := s.cat.ResolveKey(input.SlotKey)
	if !ok {
		return nil, domain.ErrNotFound
	}

	existing, err := s.attRepo.ListBySubmission(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	q := queue.New(def.MaxFileSize, existing)

	result := &AttachResult{}
	var accepted []domain.FileRef
	for _, header := range input.Files {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
		fileType, known := domain.AllowedExtensions[ext]
		if !known || !def.Accepts(fileType) {
			result.Rejected = append(result.Rejected, queue.RejectedFile{
				Name:   header.Filename,
				Reason: "unsupported file type for this form",
			})
			continue
		}
		accepted = append(accepted, domain.FileRef{
			Bucket:      s.bucket,
			Key:         stageKey(sub.ID, slot.Key, header.Filename),
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: domain.AllowedFileTypes[fileType],
		})
	}

	addRes := q.AddFiles(sub.ID, slot.Key, slot.Label, accepted, slot.Multiple)
	result.Rejected = append(result.Rejected, addRes.Rejected...)
	if len(addRes.Added) == 0 {
		return result, nil
	}

	// Replace semantics for single-file slots: the persisted rows and their
	// staged objects go before the new file lands.
	if !slot.Multiple {
		for _, old := range existing {
			if old.SlotKey != slot.Key {
				continue
			}
			if old.Status == domain.UploadStatusUploading {
				return nil, domain.ErrAttachmentUploading
			}
			if err := s.storage.Delete(ctx, old.StageBucket, old.StageKey); err != nil {
				log.Printf("attachmentService.Attach: deleting replaced staged object %s: %v", old.StageKey, err)
			}
		}
		if err := s.attRepo.DeleteBySlot(ctx, sub.ID, slot.Key); err != nil {
			return nil, err
		}
	}

	byName := make(map[string]*multipart.FileHeader, len(input.Files))
	for _, h := range input.Files {
		byName[h.Filename] = h
	}
	for _, att := range addRes.Added {
		header := byName[att.FileName]
		if header == nil {
			continue
		}
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening uploaded file %q: %w", att.FileName, err)
		}
		_, err = s.storage.Upload(ctx, port.UploadInput{
			Bucket:      att.StageBucket,
			Key:         att.StageKey,
			Body:        file,
			ContentType: att.ContentType,
			Size:        att.FileSize,
		})
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("staging %q: %w", att.FileName, err)
		}

		if err := s.attRepo.Create(ctx, &att); err != nil {
			return nil, fmt.Errorf("persisting attachment %q: %w", att.FileName, err)
		}
		result.Added = append(result.Added, att)
	}
	return result, nil
}

func (s *attachmentService) Remove(ctx context.Context, partnerID, submissionID, attachmentID uuid.UUID) error {
	sub, err := s.subRepo.GetByID(ctx, partnerID, submissionID)
	if err != nil {
		return err
	}

	att, err := s.attRepo.GetByID(ctx, sub.ID, attachmentID)
	if err != nil {
		return err
	}
	if att.Status == domain.UploadStatusUploading {
		return domain.ErrAttachmentUploading
	}

	if err := s.storage.Delete(ctx, att.StageBucket, att.StageKey); err != nil {
		log.Printf("attachmentService.Remove: deleting staged object %s: %v", att.StageKey, err)
	}
	return s.attRepo.Delete(ctx, sub.ID, attachmentID)
}

func stageKey(submissionID uuid.UUID, slotKey, fileName string) string {
	return fmt.Sprintf("submissions/%s/%s/%s-%s", submissionID, slotKey, uuid.New(), fileName)
}
