package validator

import (
	"fmt"
	"regexp"

	"leadgate/internal/domain"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Rule validates one field of a form answer map. A rule returns "" when the
// field passes and a user-facing message otherwise.
type Rule interface {
	Field() string
	Check(answers domain.FormAnswers) string
}

type requiredRule struct {
	field string
	label string
}

func (r requiredRule) Field() string { return r.field }

func (r requiredRule) Check(answers domain.FormAnswers) string {
	if answers.Get(r.field) == "" {
		return fmt.Sprintf("%s is required", r.label)
	}
	return ""
}

// Required checks that a field holds a non-empty trimmed value.
func Required(field, label string) Rule {
	return requiredRule{field: field, label: label}
}

type phoneRule struct {
	field string
	label string
}

func (r phoneRule) Field() string { return r.field }

func (r phoneRule) Check(answers domain.FormAnswers) string {
	v := answers.Get(r.field)
	if v == "" {
		return fmt.Sprintf("%s is required", r.label)
	}
	if !phonePattern.MatchString(v) {
		return fmt.Sprintf("%s must be exactly 10 digits", r.label)
	}
	return ""
}

// Phone checks for a mandatory 10-digit mobile number.
func Phone(field, label string) Rule {
	return phoneRule{field: field, label: label}
}

type emailRule struct {
	field string
	label string
}

func (r emailRule) Field() string { return r.field }

func (r emailRule) Check(answers domain.FormAnswers) string {
	v := answers.Get(r.field)
	if v == "" {
		return fmt.Sprintf("%s is required", r.label)
	}
	if !emailPattern.MatchString(v) {
		return fmt.Sprintf("%s is not a valid email address", r.label)
	}
	return ""
}

// Email checks for a mandatory, loosely RFC-shaped email address.
func Email(field, label string) Rule {
	return emailRule{field: field, label: label}
}

type requiredWhenRule struct {
	field   string
	label   string
	sibling string
	equals  string
}

func (r requiredWhenRule) Field() string { return r.field }

func (r requiredWhenRule) Check(answers domain.FormAnswers) string {
	if answers.Get(r.sibling) != r.equals {
		return ""
	}
	if answers.Get(r.field) == "" {
		return fmt.Sprintf("%s is required", r.label)
	}
	return ""
}

// RequiredWhen makes a field mandatory only while a sibling field holds a
// specific value.
func RequiredWhen(field, label, sibling, equals string) Rule {
	return requiredWhenRule{field: field, label: label, sibling: sibling, equals: equals}
}
