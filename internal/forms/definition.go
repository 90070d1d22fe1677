// Package forms collapses the per-product detailed-lead screens into one
// parameterized implementation: a FormDefinition carries everything that
// varied between them — field rules, document-requirement tables, the file
// size ceiling, accepted types and the drain policy.
package forms

import (
	"leadgate/internal/domain"
	"leadgate/internal/validator"
)

const (
	// KB and MB are file-size ceiling units.
	KB int64 = 1024
	MB int64 = 1024 * KB
)

// FieldOption is one choice of a select field, exposed so clients can render
// the same options the resolver and validator branch on.
type FieldOption struct {
	Field   string   `json:"field"`
	Options []string `json:"options"`
}

// FormDefinition is the full per-form configuration.
type FormDefinition struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Department  string `json:"department"`
	ProductType string `json:"product_type"`
	SubCategory string `json:"sub_category"`

	// Rules gate Phase A of submission.
	Rules []validator.Rule `json:"-"`

	// Selects lists the enumerated fields and their options.
	Selects []FieldOption `json:"selects"`

	// PrimaryField keys into BaseDocs, SecondaryField into SecondaryDocs.
	PrimaryField   string              `json:"primary_field"`
	SecondaryField string              `json:"secondary_field,omitempty"`
	BaseDocs       map[string][]string `json:"-"`
	SecondaryDocs  map[string][]string `json:"-"`

	// ExtraDocField is a yes/no field that, when affirmative, appends
	// ExtraDocLabel to a non-empty requirement list.
	ExtraDocField string `json:"extra_doc_field,omitempty"`
	ExtraDocLabel string `json:"extra_doc_label,omitempty"`

	// MaxFileSize is the per-file staging ceiling in bytes.
	MaxFileSize int64 `json:"max_file_size"`
	// AcceptedTypes limits what the attachment endpoint accepts for this form.
	AcceptedTypes []domain.FileType `json:"accepted_types"`
	// DrainPolicy selects fail-fast or best-effort document draining.
	DrainPolicy domain.DrainPolicy `json:"drain_policy"`
}

// Accepts reports whether the form allows the given file type.
func (d *FormDefinition) Accepts(ft domain.FileType) bool {
	for _, t := range d.AcceptedTypes {
		if t == ft {
			return true
		}
	}
	return false
}
