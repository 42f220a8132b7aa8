// Package classify maps observed field metadata to a semantic field type.
//
// Classification is a pure, total function: an ordered list of patterns is
// evaluated against a joined haystack of every textual attribute, and the
// first matching rule wins. Rule order is load-bearing — sensitive patterns
// are evaluated strictly before any overlapping general pattern, so "card
// number" can never be shadowed by "name". Do not reorder without
// re-verifying the precedence tests.
package classify

import (
	"regexp"
	"strings"

	"github.com/raysh454/formpilot/internal/model"
)

// rule is one (type, pattern) entry. rx is the plain alternation part.
// guard/excludeAfter express a "match X unless immediately followed by Y"
// sub-pattern: the rule also matches when some guard occurrence is not
// directly followed by excludeAfter. RE2 has no negative lookahead, so the
// exclusion is checked explicitly against the tail of each occurrence.
type rule struct {
	fieldType    model.FieldType
	rx           *regexp.Regexp
	guard        *regexp.Regexp
	excludeAfter *regexp.Regexp
}

func (r rule) matches(hay string) bool {
	if r.rx != nil && r.rx.MatchString(hay) {
		return true
	}
	if r.guard == nil {
		return false
	}
	for _, loc := range r.guard.FindAllStringIndex(hay, -1) {
		if !r.excludeAfter.MatchString(hay[loc[1]:]) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom, first match wins. Sensitive first.
var rules = []rule{
	{fieldType: model.FieldPassword, rx: regexp.MustCompile(`(?i)password|passcode|pwd`)},
	{fieldType: model.FieldCreditCard, rx: regexp.MustCompile(`(?i)card\s*number|cc-number|credit\s*card|cardnumber|ccnum|name\s*on\s*card`)},
	{fieldType: model.FieldSSN, rx: regexp.MustCompile(`(?i)ssn|social\s*security`)},
	{fieldType: model.FieldBank, rx: regexp.MustCompile(`(?i)routing|account\s*number|iban|swift`)},
	{fieldType: model.FieldDOB, rx: regexp.MustCompile(`(?i)date\s*of\s*birth|dob|birthdate|birthday`)},

	{fieldType: model.FieldEmail, rx: regexp.MustCompile(`(?i)email|e-mail`)},
	{fieldType: model.FieldPhone, rx: regexp.MustCompile(`(?i)phone|mobile|cell`)},
	{fieldType: model.FieldFirstName, rx: regexp.MustCompile(`(?i)first\s*name|given\s*name|fname`)},
	{fieldType: model.FieldLastName, rx: regexp.MustCompile(`(?i)last\s*name|surname|family\s*name|lname`)},
	// "name" counts as a full name unless it is part of "name on card".
	{
		fieldType:    model.FieldFullName,
		rx:           regexp.MustCompile(`(?i)full\s*name`),
		guard:        regexp.MustCompile(`(?i)name`),
		excludeAfter: regexp.MustCompile(`(?i)^\s*on\s*card`),
	},

	{fieldType: model.FieldCompany, rx: regexp.MustCompile(`(?i)company|organization|employer`)},
	{fieldType: model.FieldTitle, rx: regexp.MustCompile(`(?i)job\s*title|title|position`)},
	{fieldType: model.FieldWebsite, rx: regexp.MustCompile(`(?i)website|url|portfolio|linkedin|github`)},

	// Bare "address" is line 1 unless it is explicitly "address 2".
	{
		fieldType:    model.FieldAddress1,
		rx:           regexp.MustCompile(`(?i)address\s*1|street`),
		guard:        regexp.MustCompile(`(?i)address`),
		excludeAfter: regexp.MustCompile(`^\s*2`),
	},
	{fieldType: model.FieldAddress2, rx: regexp.MustCompile(`(?i)address\s*2|apt|suite|unit`)},
	{fieldType: model.FieldCity, rx: regexp.MustCompile(`(?i)city|town`)},
	{fieldType: model.FieldState, rx: regexp.MustCompile(`(?i)state|province|region`)},
	{fieldType: model.FieldZip, rx: regexp.MustCompile(`(?i)zip|postal`)},
	{fieldType: model.FieldCountry, rx: regexp.MustCompile(`(?i)country`)},
}

// haystackSep keeps attribute values apart so a pattern cannot straddle the
// boundary between two attributes.
const haystackSep = " | "

// Haystack joins every textual attribute of a field into the single string
// the rules are evaluated against. Empty attributes are dropped.
func Haystack(meta model.FieldMetadata) string {
	parts := make([]string, 0, 7)
	for _, s := range []string{
		meta.Name,
		meta.ID,
		meta.Placeholder,
		meta.LabelText,
		meta.AriaLabel,
		meta.Autocomplete,
		meta.TypeAttr,
	} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, haystackSep)
}

// Classify returns the semantic type for a field. It is deterministic and
// total: when no rule matches, input-type heuristics apply, and failing
// those the result is FieldUnknown.
func Classify(meta model.FieldMetadata) model.FieldType {
	hay := Haystack(meta)

	for _, r := range rules {
		if r.matches(hay) {
			return r.fieldType
		}
	}

	switch strings.ToLower(meta.TypeAttr) {
	case "email":
		return model.FieldEmail
	case "tel":
		return model.FieldPhone
	case "password":
		return model.FieldPassword
	}

	return model.FieldUnknown
}
