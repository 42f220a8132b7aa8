package model

// FieldType is the semantic category assigned to a form field.
// Exactly one tag applies per field; Unknown is the fallback.
type FieldType string

const (
	FieldFullName  FieldType = "fullName"
	FieldFirstName FieldType = "firstName"
	FieldLastName  FieldType = "lastName"
	FieldEmail     FieldType = "email"
	FieldPhone     FieldType = "phone"
	FieldAddress1  FieldType = "address1"
	FieldAddress2  FieldType = "address2"
	FieldCity      FieldType = "city"
	FieldState     FieldType = "state"
	FieldZip       FieldType = "zip"
	FieldCountry   FieldType = "country"
	FieldCompany   FieldType = "company"
	FieldTitle     FieldType = "title"
	FieldWebsite   FieldType = "website"

	// Sensitive types. The authoritative sensitivity set lives in the
	// policy package; these are only the tags themselves.
	FieldCreditCard FieldType = "creditCard"
	FieldSSN        FieldType = "ssn"
	FieldBank       FieldType = "bank"
	FieldPassword   FieldType = "password"
	FieldDOB        FieldType = "dob"

	FieldUnknown FieldType = "unknown"
)

// ProfileFieldTypes lists every field type a profile may carry a value for,
// in a stable order. Sensitive types are deliberately absent: a profile
// never stores them, so they always resolve to an empty proposed value.
var ProfileFieldTypes = []FieldType{
	FieldFullName,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAddress1,
	FieldAddress2,
	FieldCity,
	FieldState,
	FieldZip,
	FieldCountry,
	FieldCompany,
	FieldTitle,
	FieldWebsite,
}

// FieldMetadata is the immutable per-field record produced by a page
// session. All attribute values are the raw strings observed on the
// element; absent attributes are empty strings.
type FieldMetadata struct {
	// Tag is the lowercase element tag ("input", "textarea", "select").
	Tag string `json:"tag"`

	// TypeAttr is the lowercase type attribute for inputs ("text", "email", ...).
	TypeAttr string `json:"type_attr"`

	Name         string `json:"name"`
	ID           string `json:"id"`
	Placeholder  string `json:"placeholder"`
	AriaLabel    string `json:"aria_label"`
	Autocomplete string `json:"autocomplete"`

	// LabelText is the text of the associated <label>, either via for=
	// or a wrapping label element.
	LabelText string `json:"label_text"`

	// Value is the element's current value at scan time.
	Value string `json:"value"`

	// Locator is a best-effort selector expected to re-identify the same
	// element between scan and apply within one page load. It resolves to
	// at most one element at apply time; it may fail to resolve if the DOM
	// mutated in between.
	Locator string `json:"locator"`
}
