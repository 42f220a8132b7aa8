package classify_test

import (
	"testing"

	"github.com/raysh454/formpilot/internal/classify"
	"github.com/raysh454/formpilot/internal/model"
)

func TestClassify_LabelTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		want  model.FieldType
	}{
		{"Full Name", model.FieldFullName},
		{"Name", model.FieldFullName},
		{"First Name", model.FieldFirstName},
		{"Given name", model.FieldFirstName},
		{"Last Name", model.FieldLastName},
		{"Surname", model.FieldLastName},
		{"Email", model.FieldEmail},
		{"E-mail address", model.FieldEmail},
		{"Phone", model.FieldPhone},
		{"Mobile number", model.FieldPhone},
		{"Street address", model.FieldAddress1},
		{"Address", model.FieldAddress1},
		{"Address 1", model.FieldAddress1},
		{"Address 2", model.FieldAddress2},
		{"Apt, suite, etc.", model.FieldAddress2},
		{"City", model.FieldCity},
		{"Town", model.FieldCity},
		{"State", model.FieldState},
		{"Province", model.FieldState},
		{"ZIP code", model.FieldZip},
		{"Postal code", model.FieldZip},
		{"Country", model.FieldCountry},
		{"Company", model.FieldCompany},
		{"Employer", model.FieldCompany},
		{"Job Title", model.FieldTitle},
		{"Website", model.FieldWebsite},
		{"LinkedIn profile", model.FieldWebsite},
		{"Password", model.FieldPassword},
		{"Card Number", model.FieldCreditCard},
		{"Credit card", model.FieldCreditCard},
		{"Name on Card", model.FieldCreditCard},
		{"SSN", model.FieldSSN},
		{"Social Security Number", model.FieldSSN},
		{"Routing number", model.FieldBank},
		{"IBAN", model.FieldBank},
		{"Date of birth", model.FieldDOB},
		{"Birthday", model.FieldDOB},
		{"Favorite color", model.FieldUnknown},
		{"", model.FieldUnknown},
	}

	for _, tc := range cases {
		got := classify.Classify(model.FieldMetadata{LabelText: tc.label})
		if got != tc.want {
			t.Errorf("Classify(label=%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

// Sensitive patterns must win over overlapping general patterns regardless of
// which attribute carries which hint.
func TestClassify_SensitiveBeatsGeneral(t *testing.T) {
	t.Parallel()

	got := classify.Classify(model.FieldMetadata{
		Name:      "cardholder",
		LabelText: "Name on Card",
	})
	if got != model.FieldCreditCard {
		t.Errorf("expected creditCard, got %s", got)
	}

	got = classify.Classify(model.FieldMetadata{
		Name:        "card_number",
		Placeholder: "Enter your card number",
	})
	if got != model.FieldCreditCard {
		t.Errorf("expected creditCard, got %s", got)
	}

	// "password" appears alongside "email": sensitive wins by rule order.
	got = classify.Classify(model.FieldMetadata{
		Name:        "password",
		Placeholder: "Use your email as password",
	})
	if got != model.FieldPassword {
		t.Errorf("expected password, got %s", got)
	}
}

func TestClassify_Address1vs2(t *testing.T) {
	t.Parallel()

	// Bare "address" is line 1...
	if got := classify.Classify(model.FieldMetadata{Name: "address"}); got != model.FieldAddress1 {
		t.Errorf("bare address: got %s, want address1", got)
	}
	// ...but "address 2" and "address2" are not.
	if got := classify.Classify(model.FieldMetadata{Name: "address 2"}); got != model.FieldAddress2 {
		t.Errorf("address 2: got %s, want address2", got)
	}
	if got := classify.Classify(model.FieldMetadata{Name: "address2"}); got != model.FieldAddress2 {
		t.Errorf("address2: got %s, want address2", got)
	}
	// A second occurrence not followed by 2 still counts as line 1.
	if got := classify.Classify(model.FieldMetadata{Name: "address2", LabelText: "Shipping address"}); got != model.FieldAddress1 {
		t.Errorf("mixed address hints: got %s, want address1", got)
	}
}

// Rule order is first-match: "fullname" contains the substring "lname", so
// the lastName rule wins before the fullName rule is ever reached. Authors
// of name attributes need a separator ("full_name", "full-name") to get a
// fullName classification out of the attribute alone.
func TestClassify_NameAttributePrecedence(t *testing.T) {
	t.Parallel()

	if got := classify.Classify(model.FieldMetadata{Name: "fullname"}); got != model.FieldLastName {
		t.Errorf("Classify(name=fullname) = %s, want lastName (first-match order)", got)
	}
	if got := classify.Classify(model.FieldMetadata{Name: "full_name"}); got != model.FieldFullName {
		t.Errorf("Classify(name=full_name) = %s, want fullName", got)
	}
	// the label rescues an ambiguous attribute only when it matches an
	// earlier or equal rule; lastName still precedes fullName
	if got := classify.Classify(model.FieldMetadata{Name: "fullname", LabelText: "Full Name"}); got != model.FieldLastName {
		t.Errorf("Classify(name=fullname, label=Full Name) = %s, want lastName", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, hay := range []string{"EMAIL", "Email", "eMaIl"} {
		if got := classify.Classify(model.FieldMetadata{Name: hay}); got != model.FieldEmail {
			t.Errorf("Classify(name=%q) = %s, want email", hay, got)
		}
	}
}

func TestClassify_TypeAttrHeuristics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		typeAttr string
		want     model.FieldType
	}{
		{"email", model.FieldEmail},
		{"tel", model.FieldPhone},
		{"password", model.FieldPassword},
		{"text", model.FieldUnknown},
		{"", model.FieldUnknown},
	}
	for _, tc := range cases {
		got := classify.Classify(model.FieldMetadata{Name: "fld1", TypeAttr: tc.typeAttr})
		if got != tc.want {
			t.Errorf("Classify(type=%q) = %s, want %s", tc.typeAttr, got, tc.want)
		}
	}
}

// Patterns must not straddle attribute boundaries in the joined haystack.
func TestHaystack_SeparatesAttributes(t *testing.T) {
	t.Parallel()

	meta := model.FieldMetadata{Name: "e", ID: "mail"}
	if got := classify.Classify(meta); got != model.FieldUnknown {
		t.Errorf("split 'email' across attributes classified as %s, want unknown", got)
	}

	hay := classify.Haystack(model.FieldMetadata{Name: "a", Placeholder: "b"})
	if hay != "a | b" {
		t.Errorf("Haystack = %q, want %q", hay, "a | b")
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	meta := model.FieldMetadata{Name: "email", LabelText: "Email", TypeAttr: "email"}
	first := classify.Classify(meta)
	for i := 0; i < 10; i++ {
		if got := classify.Classify(meta); got != first {
			t.Fatalf("classification not deterministic: %s vs %s", got, first)
		}
	}
}
