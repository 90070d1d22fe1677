package domain

import "strings"

// FormAnswers is the mutable field→value map for one form instance. Values are
// strings; selects and yes/no questions store their literal option value.
type FormAnswers map[string]string

// Get returns the trimmed value for a field, or "" when unset.
func (a FormAnswers) Get(field string) string {
	return strings.TrimSpace(a[field])
}

// Set stores a field value.
func (a FormAnswers) Set(field, value string) {
	a[field] = value
}

// IsYes reports whether a yes/no answer is affirmative.
func (a FormAnswers) IsYes(field string) bool {
	return strings.EqualFold(a.Get(field), "yes")
}

// ValidationErrorMap maps field names to user-facing error messages. It is
// fully replaced on each validation run; an empty map means submittable.
type ValidationErrorMap map[string]string
