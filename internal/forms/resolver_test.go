package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgate/internal/catalog"
	"leadgate/internal/domain"
	"leadgate/internal/forms"
)

func mortgageDef(t *testing.T) *forms.FormDefinition {
	t.Helper()
	def, ok := forms.DefaultRegistry().Get("mortgage_loan")
	require.True(t, ok)
	return def
}

func slotLabels(slots []catalog.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestRequiredSlots_NoPrimaryAnswer(t *testing.T) {
	def := mortgageDef(t)
	slots := forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{})
	assert.Empty(t, slots)
}

func TestRequiredSlots_Salaried(t *testing.T) {
	def := mortgageDef(t)
	answers := domain.FormAnswers{"employment_type": "Salaried Person"}

	slots := forms.RequiredSlots(def, catalog.Default, answers)

	assert.Equal(t, []string{
		"PAN Card",
		"Aadhaar Card",
		"Salary Slip (Last 3 Months)",
		"Bank Statement (Last 6 Months)",
		"Form 16",
	}, slotLabels(slots))
}

func TestRequiredSlots_SalariedWithPensionIncome_Deduplicates(t *testing.T) {
	def := mortgageDef(t)
	answers := domain.FormAnswers{
		"employment_type":     "Salaried Person",
		"other_income_source": "Pension",
	}

	slots := forms.RequiredSlots(def, catalog.Default, answers)

	// PAN, Aadhaar and bank statement appear in both tables; each survives
	// once, at its first position.
	assert.Equal(t, []string{
		"PAN Card",
		"Aadhaar Card",
		"Salary Slip (Last 3 Months)",
		"Bank Statement (Last 6 Months)",
		"Form 16",
		"Pension Certificate",
	}, slotLabels(slots))
}

func TestRequiredSlots_OtherEmployment_SecondaryOnly(t *testing.T) {
	def := mortgageDef(t)
	answers := domain.FormAnswers{
		"employment_type":     "Other",
		"other_income_source": "Pension",
	}

	slots := forms.RequiredSlots(def, catalog.Default, answers)

	assert.Equal(t, []string{
		"PAN Card",
		"Aadhaar Card",
		"Pension Certificate",
		"Bank Statement (Last 6 Months)",
	}, slotLabels(slots))
}

func TestRequiredSlots_ExtraDocOnlyWithBaseList(t *testing.T) {
	def := mortgageDef(t)

	// Affirmative extra-doc answer alone produces nothing: there is no base
	// list for it to extend.
	slots := forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{
		"has_other_loan": "Yes",
	})
	assert.Empty(t, slots)

	slots = forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{
		"employment_type": "Farmer",
		"has_other_loan":  "Yes",
	})
	labels := slotLabels(slots)
	assert.Equal(t, "Existing Loan Statement", labels[len(labels)-1])
}

func TestRequiredSlots_ExtraDocNotAppendedOnNo(t *testing.T) {
	def := mortgageDef(t)
	slots := forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{
		"employment_type": "Farmer",
		"has_other_loan":  "No",
	})
	assert.NotContains(t, slotLabels(slots), "Existing Loan Statement")
}

func TestRequiredSlots_PrimaryChangeReplacesList(t *testing.T) {
	def := mortgageDef(t)

	salaried := forms.RequiredSlots(def, catalog.Default,
		domain.FormAnswers{"employment_type": "Salaried Person"})
	selfEmployed := forms.RequiredSlots(def, catalog.Default,
		domain.FormAnswers{"employment_type": "Self Employed"})

	assert.Contains(t, slotLabels(salaried), "Salary Slip (Last 3 Months)")
	assert.NotContains(t, slotLabels(selfEmployed), "Salary Slip (Last 3 Months)")
	assert.Contains(t, slotLabels(selfEmployed), "GST Certificate")
}

func TestRequiredSlots_RoundTripIsStable(t *testing.T) {
	def := mortgageDef(t)
	a := domain.FormAnswers{"employment_type": "Salaried Person"}
	b := domain.FormAnswers{"employment_type": "Self Employed"}

	first := forms.RequiredSlots(def, catalog.Default, a)
	forms.RequiredSlots(def, catalog.Default, b)
	again := forms.RequiredSlots(def, catalog.Default, a)

	// A -> B -> A yields exactly the original list.
	assert.Equal(t, first, again)
}

func TestRequiredSlots_CorporateWildcard(t *testing.T) {
	def, ok := forms.DefaultRegistry().Get("corporate_group_insurance")
	require.True(t, ok)

	slots := forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{
		"company_name": "Acme Industries Pvt Ltd",
	})

	assert.Equal(t, []string{
		"GST Certificate",
		"Audited Financials (Last 2 Years)",
		"Board Resolution",
		"Employee Data Sheet",
	}, slotLabels(slots))

	// Empty company name means no requirements at all.
	slots = forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{})
	assert.Empty(t, slots)
}

func TestRequiredSlots_UnknownLabelIsDropped(t *testing.T) {
	def := &forms.FormDefinition{
		Key:          "test_form",
		PrimaryField: "kind",
		BaseDocs: map[string][]string{
			"a": {"PAN Card", "Document Nobody Registered", "Aadhaar Card"},
		},
	}

	slots := forms.RequiredSlots(def, catalog.Default, domain.FormAnswers{"kind": "a"})
	assert.Equal(t, []string{"PAN Card", "Aadhaar Card"}, slotLabels(slots))
}

func TestResolver_MemoizedResultsAreIsolated(t *testing.T) {
	def := mortgageDef(t)
	r := forms.NewResolver(catalog.Default)
	answers := domain.FormAnswers{"employment_type": "Farmer"}

	first := r.Resolve(def, answers)
	first[0] = catalog.Slot{Key: "mutated"}

	second := r.Resolve(def, answers)
	assert.Equal(t, "pan_card", second[0].Key)
}

func TestResolver_MatchesDirectDerivation(t *testing.T) {
	def := mortgageDef(t)
	r := forms.NewResolver(catalog.Default)

	cases := []domain.FormAnswers{
		{"employment_type": "Salaried Person"},
		{"employment_type": "Self Employed", "other_income_source": "Rental Income"},
		{"employment_type": "Other", "other_income_source": "Agriculture"},
		{"employment_type": "Farmer", "has_other_loan": "Yes"},
	}
	for _, answers := range cases {
		assert.Equal(t,
			forms.RequiredSlots(def, catalog.Default, answers),
			r.Resolve(def, answers))
	}
}
