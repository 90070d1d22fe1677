package domain

// FileType represents the allowed file types for document attachments.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeXLSX FileType = "xlsx"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"xlsx": FileTypeXLSX,
}

// UploadStatus is the lifecycle of a single queued document.
// Transitions: pending → uploading → success | error. A failed entry stays
// error until the partner re-submits; nothing moves back to pending on its own.
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusSuccess   UploadStatus = "success"
	UploadStatusError     UploadStatus = "error"
)

// SubmissionStatus is the lifecycle of a lead submission.
type SubmissionStatus string

const (
	// SubmissionStatusDraft means the partner is still editing answers and
	// staging documents.
	SubmissionStatusDraft SubmissionStatus = "draft"
	// SubmissionStatusLeadCreated means the upstream lead exists but the
	// document drain has not completed. A re-submit resumes from here.
	SubmissionStatusLeadCreated SubmissionStatus = "lead_created"
	SubmissionStatusCompleted   SubmissionStatus = "completed"
	SubmissionStatusFailed      SubmissionStatus = "failed"
)

// DrainPolicy controls how the document drain reacts to a per-file failure.
type DrainPolicy string

const (
	// DrainFailFast stops the drain at the first upload error. Entries uploaded
	// before the failure stay success; later entries stay pending.
	DrainFailFast DrainPolicy = "fail_fast"
	// DrainBestEffort keeps uploading the remaining entries after a failure and
	// reports the aggregate at the end.
	DrainBestEffort DrainPolicy = "best_effort"
)
