package port

import (
	"context"
	"io"
)

// LeadClient identifies the applicant on the upstream lead record.
type LeadClient struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// LeadMeta carries upstream bookkeeping flags.
type LeadMeta struct {
	IsSelfLogin bool `json:"is_self_login"`
}

// CreateLeadInput is the Phase A payload sent to the upstream CRM.
type CreateLeadInput struct {
	Department  string            `json:"department"`
	ProductType string            `json:"product_type"`
	SubCategory string            `json:"sub_category"`
	Client      LeadClient        `json:"client"`
	Meta        LeadMeta          `json:"meta"`
	FormData    map[string]string `json:"form_data"`
}

// DocumentUpload is one Phase B multipart upload: the file payload plus the
// slot metadata the upstream stores alongside it.
type DocumentUpload struct {
	SlotKey     string
	SlotLabel   string
	FileName    string
	ContentType string
	Body        io.Reader
}

// LeadAPI is the upstream CRM contract. CreateLead must return a non-empty
// lead id; implementations treat a 2xx response without one as a failure.
type LeadAPI interface {
	CreateLead(ctx context.Context, input CreateLeadInput) (string, error)
	UploadDocument(ctx context.Context, leadID string, doc DocumentUpload) error
}
