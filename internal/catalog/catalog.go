// Package catalog holds the closed, hand-authored registry of document slots.
// Requirement lists reference slots by display label; labels that are not in
// the catalog resolve to nothing and are dropped by callers, so a stale label
// in a form definition never crashes requirement resolution.
package catalog

// Slot describes one category of required document.
type Slot struct {
	// Key is the stable identifier sent to the upstream API.
	Key string `json:"key"`
	// Label is the display string shown to the partner.
	Label string `json:"label"`
	// Multiple reports whether the slot may hold more than one file.
	Multiple bool `json:"multiple"`
}

// Catalog maps display labels to slot descriptors.
type Catalog struct {
	slots map[string]Slot
	byKey map[string]Slot
	order []string
}

// New builds a catalog from an ordered slot list.
func New(slots []Slot) *Catalog {
	c := &Catalog{
		slots: make(map[string]Slot, len(slots)),
		byKey: make(map[string]Slot, len(slots)),
	}
	for _, s := range slots {
		if _, ok := c.slots[s.Label]; ok {
			continue
		}
		c.slots[s.Label] = s
		c.byKey[s.Key] = s
		c.order = append(c.order, s.Label)
	}
	return c
}

// Resolve looks up a slot by display label.
func (c *Catalog) Resolve(label string) (Slot, bool) {
	s, ok := c.slots[label]
	return s, ok
}

// ResolveKey looks up a slot by its stable key.
func (c *Catalog) ResolveKey(key string) (Slot, bool) {
	s, ok := c.byKey[key]
	return s, ok
}

// Labels returns all catalog labels in registration order.
func (c *Catalog) Labels() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Default is the shared slot registry for all detailed-lead forms.
var Default = New([]Slot{
	{Key: "pan_card", Label: "PAN Card"},
	{Key: "aadhaar_card", Label: "Aadhaar Card"},
	{Key: "photo", Label: "Passport Size Photo"},
	{Key: "salary_slip", Label: "Salary Slip (Last 3 Months)", Multiple: true},
	{Key: "bank_statement", Label: "Bank Statement (Last 6 Months)", Multiple: true},
	{Key: "form_16", Label: "Form 16"},
	{Key: "itr", Label: "Income Tax Return (Last 2 Years)", Multiple: true},
	{Key: "business_proof", Label: "Business Registration Proof"},
	{Key: "gst_certificate", Label: "GST Certificate"},
	{Key: "shop_act_license", Label: "Shop Act License"},
	{Key: "pension_certificate", Label: "Pension Certificate"},
	{Key: "rent_agreement", Label: "Rent Agreement"},
	{Key: "agri_land_record", Label: "Agricultural Land Record (7/12 Extract)"},
	{Key: "property_papers", Label: "Property Papers", Multiple: true},
	{Key: "admission_letter", Label: "Admission Letter"},
	{Key: "fee_structure", Label: "Fee Structure"},
	{Key: "marksheet", Label: "Academic Marksheets", Multiple: true},
	{Key: "existing_loan_statement", Label: "Existing Loan Statement"},
	{Key: "company_financials", Label: "Audited Financials (Last 2 Years)", Multiple: true},
	{Key: "board_resolution", Label: "Board Resolution"},
	{Key: "employee_data_sheet", Label: "Employee Data Sheet"},
})
