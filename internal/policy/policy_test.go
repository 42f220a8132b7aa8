package policy_test

import (
	"testing"

	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/policy"
)

func TestSensitive_Set(t *testing.T) {
	t.Parallel()

	for _, ft := range []model.FieldType{
		model.FieldCreditCard, model.FieldSSN, model.FieldBank,
		model.FieldPassword, model.FieldDOB,
	} {
		if !policy.Sensitive(ft) {
			t.Errorf("expected %s to be sensitive", ft)
		}
	}
	for _, ft := range []model.FieldType{
		model.FieldEmail, model.FieldFullName, model.FieldUnknown, model.FieldZip,
	} {
		if policy.Sensitive(ft) {
			t.Errorf("expected %s to not be sensitive", ft)
		}
	}
}

func TestSensitiveTypes_Complete(t *testing.T) {
	t.Parallel()

	got := policy.SensitiveTypes()
	if len(got) != 5 {
		t.Fatalf("expected 5 sensitive types, got %d: %v", len(got), got)
	}
	for _, ft := range got {
		if !policy.Sensitive(ft) {
			t.Errorf("SensitiveTypes returned non-sensitive %s", ft)
		}
	}
}

// A sensitive field never produces a fill action, for every combination of
// settings and proposed value. This is the core safety invariant.
func TestDecide_SensitiveNeverFills(t *testing.T) {
	t.Parallel()

	for _, ft := range policy.SensitiveTypes() {
		for _, hardBlock := range []bool{true, false} {
			for _, skipUnknown := range []bool{true, false} {
				for _, value := range []string{"", "4111111111111111"} {
					settings := model.Settings{
						HardBlockSensitive: hardBlock,
						SkipUnknown:        skipUnknown,
					}
					d := policy.Decide(ft, true, value, settings)
					if d.Action == model.ActionFill {
						t.Errorf("Decide(%s, hardBlock=%v, value=%q) produced fill", ft, hardBlock, value)
					}
					if hardBlock && d.Action != model.ActionBlocked {
						t.Errorf("Decide(%s, hardBlock=true) = %s, want blocked", ft, d.Action)
					}
					if !hardBlock && d.Action != model.ActionSkip {
						t.Errorf("Decide(%s, hardBlock=false) = %s, want skip", ft, d.Action)
					}
				}
			}
		}
	}
}

func TestDecide_UnknownSkips(t *testing.T) {
	t.Parallel()

	d := policy.Decide(model.FieldUnknown, false, "", model.DefaultSettings())
	if d.Action != model.ActionSkip {
		t.Errorf("unknown with skipUnknown on: got %s, want skip", d.Action)
	}

	// skipUnknown off falls into the residual branch: still a skip, since
	// unknown types never have a proposed value.
	d = policy.Decide(model.FieldUnknown, false, "", model.Settings{HardBlockSensitive: true})
	if d.Action != model.ActionSkip {
		t.Errorf("unknown with skipUnknown off: got %s, want skip", d.Action)
	}
}

func TestDecide_FillWhenValuePresent(t *testing.T) {
	t.Parallel()

	d := policy.Decide(model.FieldEmail, false, "a@b.com", model.DefaultSettings())
	if d.Action != model.ActionFill {
		t.Errorf("got %s, want fill", d.Action)
	}
}

func TestDecide_SkipWhenNoValue(t *testing.T) {
	t.Parallel()

	d := policy.Decide(model.FieldEmail, false, "", model.DefaultSettings())
	if d.Action != model.ActionSkip {
		t.Errorf("got %s, want skip", d.Action)
	}
}

func TestDecide_ReasonAlwaysNonEmpty(t *testing.T) {
	t.Parallel()

	types := append([]model.FieldType{
		model.FieldEmail, model.FieldFullName, model.FieldUnknown,
	}, policy.SensitiveTypes()...)

	for _, ft := range types {
		for _, hardBlock := range []bool{true, false} {
			for _, skipUnknown := range []bool{true, false} {
				for _, value := range []string{"", "x"} {
					settings := model.Settings{
						HardBlockSensitive: hardBlock,
						SkipUnknown:        skipUnknown,
					}
					d := policy.Decide(ft, policy.Sensitive(ft), value, settings)
					if d.Reason == "" {
						t.Errorf("empty reason for Decide(%s, %+v, %q)", ft, settings, value)
					}
				}
			}
		}
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()

	if got := policy.Explain(model.FieldSSN); got != "Blocked: classified as sensitive (ssn)." {
		t.Errorf("Explain(ssn) = %q", got)
	}
	if got := policy.Explain(model.FieldUnknown); got == "" {
		t.Error("Explain(unknown) is empty")
	}
	if got := policy.Explain(model.FieldEmail); got != "Safe: classified as email." {
		t.Errorf("Explain(email) = %q", got)
	}
}
