package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"leadgate/internal/catalog"
	"leadgate/internal/config"
	"leadgate/internal/domain"
	"leadgate/internal/forms"
	"leadgate/internal/port"
	"leadgate/internal/queue"
	"leadgate/internal/validator"
)

// SlotView is one required document slot together with the files currently
// queued against it.
type SlotView struct {
	Slot    catalog.Slot        `json:"slot"`
	Entries []domain.Attachment `json:"entries"`
}

// RequirementsView is the client-facing picture of a submission's document
// state: the slots the current answers require, plus any queued files whose
// slot is no longer required (kept, never silently deleted).
type RequirementsView struct {
	Required []SlotView          `json:"required"`
	Orphaned []domain.Attachment `json:"orphaned,omitempty"`
}

// SubmitResult is the aggregate outcome of one submit call.
type SubmitResult struct {
	Status      domain.SubmissionStatus   `json:"status"`
	LeadID      string                    `json:"lead_id,omitempty"`
	Uploaded    int                       `json:"uploaded"`
	FailedDocs  []string                  `json:"failed_docs,omitempty"`
	FieldErrors domain.ValidationErrorMap `json:"field_errors,omitempty"`
}

// SubmissionService drives the lead submission lifecycle: draft creation,
// answer editing, requirement resolution and the two-phase submit protocol.
type SubmissionService interface {
	CreateDraft(ctx context.Context, partnerID uuid.UUID, formKey string) (*domain.Submission, error)
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, partnerID uuid.UUID, offset, limit int) ([]domain.Submission, int, error)
	SetAnswers(ctx context.Context, partnerID, id uuid.UUID, answers domain.FormAnswers) (*RequirementsView, error)
	Requirements(ctx context.Context, partnerID, id uuid.UUID) (*RequirementsView, error)
	Submit(ctx context.Context, partnerID, id uuid.UUID) (*SubmitResult, error)
}

type submissionService struct {
	subRepo     port.SubmissionRepository
	attRepo     port.AttachmentRepository
	partnerRepo port.PartnerRepository
	storage     port.ObjectStorage
	leadAPI     port.LeadAPI
	email       port.EmailSender
	registry    *forms.Registry
	resolver    *forms.Resolver
	crmCfg      config.CRMConfig

	// inFlight guarantees at most one submit per submission at a time, which
	// keeps per-file status reporting deterministic.
	inFlight sync.Map
}

// NewSubmissionService creates a new SubmissionService implementation.
func NewSubmissionService(
	subRepo port.SubmissionRepository,
	attRepo port.AttachmentRepository,
	partnerRepo port.PartnerRepository,
	storage port.ObjectStorage,
	leadAPI port.LeadAPI,
	email port.EmailSender,
	registry *forms.Registry,
	resolver *forms.Resolver,
	crmCfg config.CRMConfig,
) SubmissionService {
	return &submissionService{
		subRepo:     subRepo,
		attRepo:     attRepo,
		partnerRepo: partnerRepo,
		storage:     storage,
		leadAPI:     leadAPI,
		email:       email,
		registry:    registry,
		resolver:    resolver,
		crmCfg:      crmCfg,
	}
}

func (s *submissionService) CreateDraft(ctx context.Context, partnerID uuid.UUID, formKey string) (*domain.Submission, error) {
	if _, ok := s.registry.Get(formKey); !ok {
		return nil, domain.ErrUnknownForm
	}

	sub := &domain.Submission{
		ID:        uuid.New(),
		PartnerID: partnerID,
		FormKey:   formKey,
		Answers:   json.RawMessage("{}"),
		Status:    domain.SubmissionStatusDraft,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("creating draft: %w", err)
	}
	return sub, nil
}

func (s *submissionService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*domain.Submission, error) {
	return s.subRepo.GetByID(ctx, partnerID, id)
}

func (s *submissionService) List(ctx context.Context, partnerID uuid.UUID, offset, limit int) ([]domain.Submission, int, error) {
	return s.subRepo.ListByPartner(ctx, partnerID, offset, limit)
}

func (s *submissionService) SetAnswers(ctx context.Context, partnerID, id uuid.UUID, answers domain.FormAnswers) (*RequirementsView, error) {
	sub, err := s.subRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.SubmissionStatusCompleted {
		return nil, domain.ErrSubmissionNotDraft
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshaling answers: %w", err)
	}
	sub.Answers = raw
	if err := s.subRepo.UpdateAnswers(ctx, sub); err != nil {
		return nil, err
	}

	return s.requirementsFor(ctx, sub, answers)
}

func (s *submissionService) Requirements(ctx context.Context, partnerID, id uuid.UUID) (*RequirementsView, error) {
	sub, err := s.subRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	answers, err := sub.AnswerMap()
	if err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	return s.requirementsFor(ctx, sub, answers)
}

// requirementsFor renders the required slot list against the persisted queue.
// Queued files whose slot fell out of the requirement set are reported as
// orphaned instead of being deleted; only the partner removes files.
func (s *submissionService) requirementsFor(ctx context.Context, sub *domain.Submission, answers domain.FormAnswers) (*RequirementsView, error) {
	def, ok := s.registry.Get(sub.FormKey)
	if !ok {
		return nil, domain.ErrUnknownForm
	}

	slots := s.resolver.Resolve(def, answers)

	attachments, err := s.attRepo.ListBySubmission(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	q := queue.New(def.MaxFileSize, attachments)
	bySlot := q.BySlot()

	view := &RequirementsView{Required: make([]SlotView, 0, len(slots))}
	required := make(map[string]bool, len(slots))
	for _, slot := range slots {
		required[slot.Key] = true
		view.Required = append(view.Required, SlotView{
			Slot:    slot,
			Entries: bySlot[slot.Key],
		})
	}
	for _, a := range q.Entries() {
		if !required[a.SlotKey] {
			view.Orphaned = append(view.Orphaned, a)
		}
	}
	return view, nil
}

func (s *submissionService) Submit(ctx context.Context, partnerID, id uuid.UUID) (*SubmitResult, error) {
	if _, loaded := s.inFlight.LoadOrStore(id, struct{}{}); loaded {
		return nil, domain.ErrSubmissionInProgress
	}
	defer s.inFlight.Delete(id)

	sub, err := s.subRepo.GetByID(ctx, partnerID, id)
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
	answers, err := sub.AnswerMap()
	if err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}

	// Phase A gate: no network call leaves the building while the form has
	// field errors.
	if errs := validator.Validate(def.Rules, answers); len(errs) > 0 {
		return &SubmitResult{Status: sub.Status, FieldErrors: errs}, domain.ErrValidationFailed
	}

	// Phase A: create the upstream lead. The obtained id is persisted before
	// Phase B starts, so a retry after a drain failure resumes here instead of
	// creating a duplicate lead.
	if sub.LeadID == "" {
		leadID, err := s.leadAPI.CreateLead(ctx, port.CreateLeadInput{
			Department:  def.Department,
			ProductType: def.ProductType,
			SubCategory: def.SubCategory,
			Client: port.LeadClient{
				Name:   answers.Get(forms.FieldFullName),
				Mobile: answers.Get(forms.FieldMobile),
				Email:  answers.Get(forms.FieldEmail),
			},
			Meta:     port.LeadMeta{IsSelfLogin: s.crmCfg.IsSelfLogin},
			FormData: answers,
		})
		if err != nil {
			sub.LastError = err.Error()
			if uerr := s.subRepo.UpdateOutcome(ctx, sub); uerr != nil {
				log.Printf("submissionService.Submit: recording lead failure: %v", uerr)
			}
			return &SubmitResult{Status: sub.Status}, err
		}

		sub.LeadID = leadID
		sub.Status = domain.SubmissionStatusLeadCreated
		sub.LastError = ""
		if err := s.subRepo.UpdateOutcome(ctx, sub); err != nil {
			return nil, fmt.Errorf("persisting lead id: %w", err)
		}
	}

	// Phase B: drain the document queue strictly in order, one upload in
	// flight at a time.
	attachments, err := s.attRepo.ListBySubmission(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	q := queue.New(def.MaxFileSize, attachments)

	result := &SubmitResult{LeadID: sub.LeadID}
	for _, entry := range q.Entries() {
		if entry.Status == domain.UploadStatusSuccess {
			result.Uploaded++
			continue
		}

		if err := s.uploadEntry(ctx, sub, q, entry); err != nil {
			result.FailedDocs = append(result.FailedDocs, entry.SlotLabel)
			log.Printf("submissionService.Submit: upload failed for %q (%s): %v",
				entry.FileName, entry.SlotLabel, err)
			if def.DrainPolicy == domain.DrainFailFast {
				break
			}
			continue
		}
		result.Uploaded++
	}

	if len(result.FailedDocs) > 0 {
		sub.Status = domain.SubmissionStatusLeadCreated
		sub.LastError = fmt.Sprintf("document upload failed: %s", result.FailedDocs[0])
	} else {
		sub.Status = domain.SubmissionStatusCompleted
		sub.LastError = ""
	}
	result.Status = sub.Status
	if err := s.subRepo.UpdateOutcome(ctx, sub); err != nil {
		return nil, fmt.Errorf("persisting outcome: %w", err)
	}

	s.notify(ctx, sub, def, result)

	if len(result.FailedDocs) > 0 {
		return result, fmt.Errorf("%w: %s", domain.ErrUploadFailed, result.FailedDocs[0])
	}
	return result, nil
}

// uploadEntry runs the uploading→success/error transition for one queue entry,
// mirroring each step into the attachment store.
func (s *submissionService) uploadEntry(ctx context.Context, sub *domain.Submission, q *queue.Queue, entry domain.Attachment) error {
	q.MarkStatus(entry.ID, domain.UploadStatusUploading)
	if err := s.attRepo.UpdateStatus(ctx, sub.ID, entry.ID, domain.UploadStatusUploading); err != nil {
		return err
	}

	markError := func(cause error) error {
		q.MarkStatus(entry.ID, domain.UploadStatusError)
		if err := s.attRepo.UpdateStatus(ctx, sub.ID, entry.ID, domain.UploadStatusError); err != nil {
			log.Printf("submissionService.uploadEntry: marking error status: %v", err)
		}
		return cause
	}

	data, err := s.storage.Download(ctx, entry.StageBucket, entry.StageKey)
	if err != nil {
		return markError(fmt.Errorf("reading staged file: %w", err))
	}

	err = s.leadAPI.UploadDocument(ctx, sub.LeadID, port.DocumentUpload{
		SlotKey:     entry.SlotKey,
		SlotLabel:   entry.SlotLabel,
		FileName:    entry.FileName,
		ContentType: entry.ContentType,
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return markError(err)
	}

	q.MarkStatus(entry.ID, domain.UploadStatusSuccess)
	if err := s.attRepo.UpdateStatus(ctx, sub.ID, entry.ID, domain.UploadStatusSuccess); err != nil {
		return fmt.Errorf("marking success status: %w", err)
	}
	return nil
}

func (s *submissionService) notify(ctx context.Context, sub *domain.Submission, def *forms.FormDefinition, result *SubmitResult) {
	partner, err := s.partnerRepo.GetByID(ctx, sub.PartnerID)
	if err != nil {
		log.Printf("submissionService.notify: loading partner: %v", err)
		return
	}

	outcome := port.SubmissionOutcome{
		FormTitle:  def.Title,
		LeadID:     sub.LeadID,
		Uploaded:   result.Uploaded,
		Failed:     len(result.FailedDocs),
		FailedDocs: result.FailedDocs,
		Succeeded:  len(result.FailedDocs) == 0,
	}
	if err := s.email.SendSubmissionOutcome(ctx, partner.Email, partner.FullName, outcome); err != nil {
		log.Printf("submissionService.notify: sending outcome email: %v", err)
	}
}
