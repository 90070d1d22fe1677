package forms

import (
	"leadgate/internal/domain"
	"leadgate/internal/validator"
)

// Answer field names shared across forms.
const (
	FieldFullName       = "full_name"
	FieldMobile         = "mobile"
	FieldEmail          = "email"
	FieldEmploymentType = "employment_type"
	FieldMonthlyIncome  = "monthly_income"
	FieldOtherIncome    = "other_income_source"
	FieldHasOtherLoan   = "has_other_loan"
	FieldOtherLoanAmt   = "other_loan_amount"
	FieldLoanAmount     = "loan_amount"
	FieldPropertyCity   = "property_city"
	FieldCourseName     = "course_name"
	FieldInstitute      = "institute_name"
	FieldCompanyName    = "company_name"
	FieldEmployeeCount  = "employee_count"
)

// Employment type options shared by the loan forms.
var employmentTypes = []string{"Salaried Person", "Self Employed", "Farmer", "Other"}

// Other-income options; each keys into the secondary document table.
var otherIncomeSources = []string{"Pension", "Rental Income", "Agriculture"}

// employmentDocs is the base requirement table keyed by employment type.
// "Other" deliberately has no base list: its requirements come entirely from
// the secondary income source.
var employmentDocs = map[string][]string{
	"Salaried Person": {
		"PAN Card",
		"Aadhaar Card",
		"Salary Slip (Last 3 Months)",
		"Bank Statement (Last 6 Months)",
		"Form 16",
	},
	"Self Employed": {
		"PAN Card",
		"Aadhaar Card",
		"Income Tax Return (Last 2 Years)",
		"Bank Statement (Last 6 Months)",
		"Business Registration Proof",
		"GST Certificate",
	},
	"Farmer": {
		"PAN Card",
		"Aadhaar Card",
		"Agricultural Land Record (7/12 Extract)",
		"Bank Statement (Last 6 Months)",
	},
}

// incomeDocs is the secondary requirement table keyed by other income source.
var incomeDocs = map[string][]string{
	"Pension": {
		"PAN Card",
		"Aadhaar Card",
		"Pension Certificate",
		"Bank Statement (Last 6 Months)",
	},
	"Rental Income": {
		"PAN Card",
		"Aadhaar Card",
		"Rent Agreement",
		"Bank Statement (Last 6 Months)",
	},
	"Agriculture": {
		"PAN Card",
		"Aadhaar Card",
		"Agricultural Land Record (7/12 Extract)",
	},
}

func identityRules() []validator.Rule {
	return []validator.Rule{
		validator.Required(FieldFullName, "Full name"),
		validator.Phone(FieldMobile, "Mobile number"),
		validator.Email(FieldEmail, "Email"),
	}
}

func loanRules(extra ...validator.Rule) []validator.Rule {
	rules := identityRules()
	rules = append(rules,
		validator.Required(FieldEmploymentType, "Employment type"),
		validator.Required(FieldLoanAmount, "Loan amount"),
		validator.RequiredWhen(FieldOtherIncome, "Other income source", FieldEmploymentType, "Other"),
		validator.RequiredWhen(FieldOtherLoanAmt, "Other loan amount", FieldHasOtherLoan, "Yes"),
	)
	return append(rules, extra...)
}

var definitions = []*FormDefinition{
	{
		Key:         "mortgage_loan",
		Title:       "Mortgage Loan",
		Department:  "loans",
		ProductType: "mortgage",
		SubCategory: "detailed_lead",
		Rules: loanRules(
			validator.Required(FieldPropertyCity, "Property city"),
		),
		Selects: []FieldOption{
			{Field: FieldEmploymentType, Options: employmentTypes},
			{Field: FieldOtherIncome, Options: otherIncomeSources},
			{Field: FieldHasOtherLoan, Options: []string{"Yes", "No"}},
		},
		PrimaryField:   FieldEmploymentType,
		SecondaryField: FieldOtherIncome,
		BaseDocs:       employmentDocs,
		SecondaryDocs:  incomeDocs,
		ExtraDocField:  FieldHasOtherLoan,
		ExtraDocLabel:  "Existing Loan Statement",
		MaxFileSize:    200 * KB,
		AcceptedTypes:  []domain.FileType{domain.FileTypePDF, domain.FileTypeJPG, domain.FileTypePNG},
		DrainPolicy:    domain.DrainFailFast,
	},
	{
		Key:         "personal_loan",
		Title:       "Personal Loan",
		Department:  "loans",
		ProductType: "personal",
		SubCategory: "detailed_lead",
		Rules:       loanRules(),
		Selects: []FieldOption{
			{Field: FieldEmploymentType, Options: employmentTypes},
			{Field: FieldOtherIncome, Options: otherIncomeSources},
			{Field: FieldHasOtherLoan, Options: []string{"Yes", "No"}},
		},
		PrimaryField:   FieldEmploymentType,
		SecondaryField: FieldOtherIncome,
		BaseDocs:       employmentDocs,
		SecondaryDocs:  incomeDocs,
		ExtraDocField:  FieldHasOtherLoan,
		ExtraDocLabel:  "Existing Loan Statement",
		MaxFileSize:    200 * KB,
		AcceptedTypes:  []domain.FileType{domain.FileTypePDF, domain.FileTypeJPG, domain.FileTypePNG},
		DrainPolicy:    domain.DrainFailFast,
	},
	{
		Key:         "education_loan",
		Title:       "Education Loan",
		Department:  "loans",
		ProductType: "education",
		SubCategory: "detailed_lead",
		Rules: loanRules(
			validator.Required(FieldCourseName, "Course name"),
			validator.Required(FieldInstitute, "Institute name"),
		),
		Selects: []FieldOption{
			{Field: FieldEmploymentType, Options: employmentTypes},
			{Field: FieldOtherIncome, Options: otherIncomeSources},
			{Field: FieldHasOtherLoan, Options: []string{"Yes", "No"}},
		},
		PrimaryField:   FieldEmploymentType,
		SecondaryField: FieldOtherIncome,
		BaseDocs: map[string][]string{
			"Salaried Person": append(employmentDocs["Salaried Person"],
				"Admission Letter", "Fee Structure", "Academic Marksheets"),
			"Self Employed": append(employmentDocs["Self Employed"],
				"Admission Letter", "Fee Structure", "Academic Marksheets"),
			"Farmer": append(employmentDocs["Farmer"],
				"Admission Letter", "Fee Structure", "Academic Marksheets"),
		},
		SecondaryDocs: incomeDocs,
		ExtraDocField: FieldHasOtherLoan,
		ExtraDocLabel: "Existing Loan Statement",
		MaxFileSize:   200 * KB,
		AcceptedTypes: []domain.FileType{domain.FileTypePDF, domain.FileTypeJPG, domain.FileTypePNG},
		DrainPolicy:   domain.DrainFailFast,
	},
	{
		// The corporate group-insurance form carries large spreadsheets, so it
		// runs with a 5 MB ceiling and keeps uploading past individual
		// failures instead of halting the drain.
		Key:         "corporate_group_insurance",
		Title:       "Corporate Group Insurance",
		Department:  "insurance",
		ProductType: "group_insurance",
		SubCategory: "corporate_lead",
		Rules: append(identityRules(),
			validator.Required(FieldCompanyName, "Company name"),
			validator.Required(FieldEmployeeCount, "Employee count"),
		),
		Selects: []FieldOption{
			{Field: FieldHasOtherLoan, Options: []string{"Yes", "No"}},
		},
		PrimaryField: FieldCompanyName,
		BaseDocs: map[string][]string{
			// Any non-empty company name yields the corporate document set.
			"*": {
				"GST Certificate",
				"Audited Financials (Last 2 Years)",
				"Board Resolution",
				"Employee Data Sheet",
			},
		},
		MaxFileSize: 5 * MB,
		AcceptedTypes: []domain.FileType{
			domain.FileTypePDF, domain.FileTypeJPG, domain.FileTypePNG, domain.FileTypeXLSX,
		},
		DrainPolicy: domain.DrainBestEffort,
	},
}

// Registry resolves form definitions by key.
type Registry struct {
	byKey map[string]*FormDefinition
	order []*FormDefinition
}

// NewRegistry builds a registry from explicit definitions.
func NewRegistry(defs []*FormDefinition) *Registry {
	r := &Registry{byKey: make(map[string]*FormDefinition, len(defs))}
	for _, d := range defs {
		r.byKey[d.Key] = d
		r.order = append(r.order, d)
	}
	return r
}

// DefaultRegistry returns the built-in detailed-lead forms.
func DefaultRegistry() *Registry {
	return NewRegistry(definitions)
}

// Get returns the definition for a form key.
func (r *Registry) Get(key string) (*FormDefinition, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []*FormDefinition {
	out := make([]*FormDefinition, len(r.order))
	copy(out, r.order)
	return out
}
