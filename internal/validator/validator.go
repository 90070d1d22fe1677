// Package validator checks form answer maps against per-form rule sets before
// any network call is made. Rules are pure; the error map they produce is
// fully replaced on every run.
package validator

import "leadgate/internal/domain"

// Validate runs every rule against the answers and collects the first failure
// per field. An empty map means the form is submittable.
func Validate(rules []Rule, answers domain.FormAnswers) domain.ValidationErrorMap {
	errs := domain.ValidationErrorMap{}
	for _, r := range rules {
		if _, seen := errs[r.Field()]; seen {
			continue
		}
		if msg := r.Check(answers); msg != "" {
			errs[r.Field()] = msg
		}
	}
	return errs
}
