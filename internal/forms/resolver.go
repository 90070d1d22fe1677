package forms

import (
	"strings"
	"sync"

	"leadgate/internal/catalog"
	"leadgate/internal/domain"
)

// RequiredSlots derives the ordered, de-duplicated document slots a form
// currently requires from its answers. It is pure: identical answers always
// yield identical lists, and changing the primary answer fully replaces the
// derived list rather than merging with the previous one.
func RequiredSlots(def *FormDefinition, cat *catalog.Catalog, answers domain.FormAnswers) []catalog.Slot {
	labels := baseLabels(def, answers.Get(def.PrimaryField))

	if def.SecondaryField != "" {
		if extra, ok := def.SecondaryDocs[answers.Get(def.SecondaryField)]; ok {
			labels = append(labels, extra...)
		}
	}

	// The extra document only applies once some base category produced a list;
	// with no category selected there is nothing to attach it to.
	if def.ExtraDocField != "" && len(labels) > 0 && answers.IsYes(def.ExtraDocField) {
		labels = append(labels, def.ExtraDocLabel)
	}

	seen := make(map[string]bool, len(labels))
	slots := make([]catalog.Slot, 0, len(labels))
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		if slot, ok := cat.Resolve(label); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// baseLabels returns the base requirement list for a primary answer. A "*"
// table entry matches any non-empty answer; forms keyed on free-text fields
// (company name) use it to mean "always this set once the field is filled".
func baseLabels(def *FormDefinition, primary string) []string {
	if primary == "" {
		return nil
	}
	if list, ok := def.BaseDocs[primary]; ok {
		return append([]string(nil), list...)
	}
	if list, ok := def.BaseDocs["*"]; ok {
		return append([]string(nil), list...)
	}
	return nil
}

// Resolver memoizes RequiredSlots on the answer tuple that affects it, so the
// derivation can run on every answer change without recomputing.
type Resolver struct {
	cat *catalog.Catalog

	mu    sync.Mutex
	cache map[string][]catalog.Slot
}

// NewResolver creates a Resolver backed by the given catalog.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat, cache: make(map[string][]catalog.Slot)}
}

// Resolve returns the required slots for a form's current answers.
func (r *Resolver) Resolve(def *FormDefinition, answers domain.FormAnswers) []catalog.Slot {
	key := strings.Join([]string{
		def.Key,
		answers.Get(def.PrimaryField),
		answers.Get(def.SecondaryField),
		strings.ToLower(answers.Get(def.ExtraDocField)),
	}, "\x1f")

	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return append([]catalog.Slot(nil), cached...)
	}

	slots := RequiredSlots(def, r.cat, answers)

	r.mu.Lock()
	r.cache[key] = slots
	r.mu.Unlock()
	return append([]catalog.Slot(nil), slots...)
}
