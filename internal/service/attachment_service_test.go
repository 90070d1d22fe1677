package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leadgate/internal/catalog"
	"leadgate/internal/domain"
	"leadgate/internal/forms"
	"leadgate/internal/port"
	"leadgate/internal/service"
	"leadgate/mocks"
)

type attachmentFixture struct {
	subRepo *mocks.MockSubmissionRepo
	attRepo *mocks.MockAttachmentRepo
	storage *mocks.MockObjectStorage
	svc     service.AttachmentService
}

func newAttachmentFixture() *attachmentFixture {
	f := &attachmentFixture{
		subRepo: new(mocks.MockSubmissionRepo),
		attRepo: new(mocks.MockAttachmentRepo),
		storage: new(mocks.MockObjectStorage),
	}
	f.svc = service.NewAttachmentService(
		f.subRepo, f.attRepo, f.storage,
		forms.DefaultRegistry(), catalog.Default, "stage-bucket",
	)
	return f
}

// fileHeaders builds real multipart file headers so header.Open works in tests.
func fileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["files"]
}

// orderedFileHeaders is fileHeaders with a guaranteed part order, for tests
// where which file arrived last matters.
func orderedFileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("pdf-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["files"]
}

func TestAttach_StagesAcceptedFiles(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, sub.ID).Return([]domain.Attachment{}, nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "stage-bucket" && strings.HasPrefix(in.Key, "submissions/"+sub.ID.String()+"/pan_card/")
	})).Return(&port.UploadOutput{Location: "s3://stage-bucket/x"}, nil)
	f.attRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Attachment")).Return(nil)

	result, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "pan_card",
		Files:        fileHeaders(t, map[string]string{"pan.pdf": "pdf-bytes"}),
	})

	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, "pan.pdf", result.Added[0].FileName)
	assert.Equal(t, domain.UploadStatusPending, result.Added[0].Status)
	assert.Empty(t, result.Rejected)
}

func TestAttach_RejectsUnsupportedExtension(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, sub.ID).Return([]domain.Attachment{}, nil)

	result, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "pan_card",
		Files:        fileHeaders(t, map[string]string{"pan.exe": "nope"}),
	})

	require.NoError(t, err)
	assert.Empty(t, result.Added)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "pan.exe", result.Rejected[0].Name)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestAttach_XLSXOnlyWhereFormAcceptsIt(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()

	// The loan forms take pdf/jpg/png only.
	loanSub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())
	f.subRepo.On("GetByID", mock.Anything, partnerID, loanSub.ID).Return(loanSub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, loanSub.ID).Return([]domain.Attachment{}, nil)

	result, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: loanSub.ID,
		SlotKey:      "bank_statement",
		Files:        fileHeaders(t, map[string]string{"statement.xlsx": "cells"}),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Len(t, result.Rejected, 1)

	// The corporate form accepts spreadsheets.
	corpSub := draftSubmission(partnerID, "corporate_group_insurance", domain.FormAnswers{
		"company_name": "Acme",
	})
	f.subRepo.On("GetByID", mock.Anything, partnerID, corpSub.ID).Return(corpSub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, corpSub.ID).Return([]domain.Attachment{}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.attRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Attachment")).Return(nil)

	result, err = f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: corpSub.ID,
		SlotKey:      "employee_data_sheet",
		Files:        fileHeaders(t, map[string]string{"employees.xlsx": "cells"}),
	})
	require.NoError(t, err)
	assert.Len(t, result.Added, 1)
}

func TestAttach_SingleSlotReplacesPersistedFile(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())

	old := pendingAttachment(sub.ID, "pan_card", "PAN Card", "pan-old.pdf")

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, sub.ID).Return([]domain.Attachment{old}, nil)
	f.storage.On("Delete", mock.Anything, old.StageBucket, old.StageKey).Return(nil)
	f.attRepo.On("DeleteBySlot", mock.Anything, sub.ID, "pan_card").Return(nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.attRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Attachment")).Return(nil)

	result, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "pan_card",
		Files:        fileHeaders(t, map[string]string{"pan-new.pdf": "pdf-bytes"}),
	})

	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, "pan-new.pdf", result.Added[0].FileName)
	f.storage.AssertCalled(t, "Delete", mock.Anything, old.StageBucket, old.StageKey)
	f.attRepo.AssertCalled(t, "DeleteBySlot", mock.Anything, sub.ID, "pan_card")
}

func TestAttach_SingleSlotBatchPersistsOnlyNewestFile(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, sub.ID).Return([]domain.Attachment{}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.attRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Attachment")).Return(nil)

	// Two files against a single-file slot in one request: the later file
	// supersedes the earlier one, so exactly one row and one staged object
	// may come out of it.
	result, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "pan_card",
		Files:        orderedFileHeaders(t, "pan-a.pdf", "pan-b.pdf"),
	})

	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, "pan-b.pdf", result.Added[0].FileName)
	f.storage.AssertNumberOfCalls(t, "Upload", 1)
	f.attRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAttach_ReplaceRefusedWhileUploading(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())

	old := pendingAttachment(sub.ID, "pan_card", "PAN Card", "pan-old.pdf")
	old.Status = domain.UploadStatusUploading

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("ListBySubmission", mock.Anything, sub.ID).Return([]domain.Attachment{old}, nil)

	_, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "pan_card",
		Files:        fileHeaders(t, map[string]string{"pan-new.pdf": "pdf-bytes"}),
	})

	assert.ErrorIs(t, err, domain.ErrAttachmentUploading)
	f.attRepo.AssertNotCalled(t, "DeleteBySlot", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttach_UnknownSlot(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)

	_, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "no_such_slot",
		Files:        fileHeaders(t, map[string]string{"pan.pdf": "x"}),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttach_CompletedSubmissionRefused(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())
	sub.Status = domain.SubmissionStatusCompleted

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)

	_, err := f.svc.Attach(context.Background(), service.AttachInput{
		PartnerID:    partnerID,
		SubmissionID: sub.ID,
		SlotKey:      "pan_card",
		Files:        fileHeaders(t, map[string]string{"pan.pdf": "x"}),
	})

	assert.ErrorIs(t, err, domain.ErrSubmissionNotDraft)
}

func TestRemove_DeletesRowAndStagedObject(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())
	att := pendingAttachment(sub.ID, "pan_card", "PAN Card", "pan.pdf")

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("GetByID", mock.Anything, sub.ID, att.ID).Return(&att, nil)
	f.storage.On("Delete", mock.Anything, att.StageBucket, att.StageKey).Return(nil)
	f.attRepo.On("Delete", mock.Anything, sub.ID, att.ID).Return(nil)

	err := f.svc.Remove(context.Background(), partnerID, sub.ID, att.ID)

	assert.NoError(t, err)
	f.attRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestRemove_RefusedWhileUploading(t *testing.T) {
	f := newAttachmentFixture()
	partnerID := uuid.New()
	sub := draftSubmission(partnerID, "mortgage_loan", validLoanAnswers())
	att := pendingAttachment(sub.ID, "pan_card", "PAN Card", "pan.pdf")
	att.Status = domain.UploadStatusUploading

	f.subRepo.On("GetByID", mock.Anything, partnerID, sub.ID).Return(sub, nil)
	f.attRepo.On("GetByID", mock.Anything, sub.ID, att.ID).Return(&att, nil)

	err := f.svc.Remove(context.Background(), partnerID, sub.ID, att.ID)

	assert.ErrorIs(t, err, domain.ErrAttachmentUploading)
	f.attRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
