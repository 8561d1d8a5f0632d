package schema

import (
	"strings"
	"testing"
)

// clean returns a definition that passes every phase without findings.
func clean() *Definition {
	return &Definition{
		APIVersion: APIVersion,
		Wizard:     Meta{Name: "create-vm", Title: "Create Virtual Machine"},
		Steps: []StepDef{
			{ID: "name", Kind: "text", Prompt: "VM name", Required: true},
			{ID: "size", Kind: "choice", Prompt: "Size", Items: []ItemDef{{Label: "small"}, {Label: "large"}}},
			{ID: "ok", Kind: "confirm", Message: "Create it?"},
		},
	}
}

// findingWith reports whether any finding of the given severity
// mentions every fragment.
func findingWith(errs []*ValidationError, severity string, fragments ...string) bool {
	for _, e := range errs {
		if e.Severity != severity {
			continue
		}
		all := true
		for _, f := range fragments {
			if !strings.Contains(e.Error(), f) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// TestValidateValidWizard confirms a well-formed definition passes all
// phases without findings.
func TestValidateValidWizard(t *testing.T) {
	errs := Validate(clean())
	if len(errs) > 0 {
		t.Errorf("expected no findings, got: %v", errs)
	}
}

// TestValidateStepIDUniqueness checks that duplicate step ids are
// rejected.
func TestValidateStepIDUniqueness(t *testing.T) {
	def := clean()
	def.Steps[1].ID = "name"
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "duplicate", "name") {
		t.Errorf("expected duplicate step id error, got: %v", errs)
	}
}

// TestValidateAPIVersionCheck checks that apiVersion is validated.
func TestValidateAPIVersionCheck(t *testing.T) {
	def := clean()
	def.APIVersion = "gwiz/v999"
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "apiVersion") {
		t.Errorf("expected apiVersion error, got: %v", errs)
	}
}

// TestValidateUnknownKind checks the kind enum.
func TestValidateUnknownKind(t *testing.T) {
	def := clean()
	def.Steps[0].Kind = "slider"
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "slider") {
		t.Errorf("expected invalid kind error, got: %v", errs)
	}
}

// TestValidateInvalidPattern checks text patterns are valid regex.
func TestValidateInvalidPattern(t *testing.T) {
	def := clean()
	def.Steps[0].Pattern = "[invalid(regex"
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "pattern") {
		t.Errorf("expected pattern error, got: %v", errs)
	}
}

// TestValidateInvalidWhen checks preconditions must compile against the
// declared step ids.
func TestValidateInvalidWhen(t *testing.T) {
	def := clean()
	def.Steps[1].When = `flavor == "large"`
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "when") {
		t.Errorf("expected when compile error, got: %v", errs)
	}
}

// TestValidateWhenAcrossSteps checks a precondition may reference any
// declared step, including later ones.
func TestValidateWhenAcrossSteps(t *testing.T) {
	def := clean()
	def.Steps[1].When = `name != "" && !has("ok")`
	errs := ValidateDomain(def)
	if len(errs) > 0 {
		t.Errorf("expected no findings, got: %v", errs)
	}
}

// TestValidateReservedID checks that step ids cannot shadow the when
// helpers.
func TestValidateReservedID(t *testing.T) {
	def := clean()
	def.Steps[0].ID = "has"
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "has", "helper") {
		t.Errorf("expected reserved id error, got: %v", errs)
	}
}

// TestValidateChoiceNeedsItemsOrSource checks both the missing and the
// conflicting producer cases.
func TestValidateChoiceNeedsItemsOrSource(t *testing.T) {
	def := clean()
	def.Steps[1].Items = nil
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "items or a source") {
		t.Errorf("expected missing producer error, got: %v", errs)
	}

	def = clean()
	def.Steps[1].Source = &Source{Command: "ls"}
	errs = ValidateDomain(def)
	if !findingWith(errs, "error", "both inline items and a source") {
		t.Errorf("expected conflicting producer error, got: %v", errs)
	}
}

// TestValidateLoadingNeedsSource checks loading steps and their
// placeholder warning.
func TestValidateLoadingNeedsSource(t *testing.T) {
	def := clean()
	def.Steps[1] = StepDef{ID: "size", Kind: "loading", Prompt: "Size"}
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "needs a source") {
		t.Errorf("expected missing source error, got: %v", errs)
	}
	if !findingWith(errs, "warning", "placeholder") {
		t.Errorf("expected placeholder warning, got: %v", errs)
	}
}

// TestValidateSource checks the command/url exclusivity and the URL
// scheme rule.
func TestValidateSource(t *testing.T) {
	def := clean()
	def.Steps[1].Items = nil
	def.Steps[1].Source = &Source{Command: "ls", URL: "https://example.test/items"}
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "both a command and a url") {
		t.Errorf("expected exclusivity error, got: %v", errs)
	}

	def = clean()
	def.Steps[1].Items = nil
	def.Steps[1].Source = &Source{URL: "ftp://example.test/items"}
	errs = ValidateDomain(def)
	if !findingWith(errs, "error", "scheme") {
		t.Errorf("expected scheme error, got: %v", errs)
	}
}

// TestValidateConfirmNeedsMessage checks confirm steps and the detail
// template rule.
func TestValidateConfirmNeedsMessage(t *testing.T) {
	def := clean()
	def.Steps[2].Message = ""
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "requires a message") {
		t.Errorf("expected missing message error, got: %v", errs)
	}

	def = clean()
	def.Steps[2].Detail = "Creating {{.name"
	errs = ValidateDomain(def)
	if !findingWith(errs, "error", "detail template") {
		t.Errorf("expected template error, got: %v", errs)
	}
}

// TestValidateSinglePick checks that a single choice cannot pre-pick
// several items.
func TestValidateSinglePick(t *testing.T) {
	def := clean()
	def.Steps[1].Items = []ItemDef{{Label: "small", Picked: true}, {Label: "large", Picked: true}}
	errs := ValidateDomain(def)
	if !findingWith(errs, "error", "single choice") {
		t.Errorf("expected pick arity error, got: %v", errs)
	}
}

// TestValidateForeignFieldWarns checks that a kind-specific field on
// the wrong kind warns instead of failing.
func TestValidateForeignFieldWarns(t *testing.T) {
	def := clean()
	def.Steps[0].Folders = true
	errs := ValidateDomain(def)
	if !findingWith(errs, "warning", "folders", "no effect") {
		t.Errorf("expected foreign field warning, got: %v", errs)
	}
	if HasErrors(errs) {
		t.Errorf("warnings alone should not count as errors: %v", errs)
	}
}

// TestValidateMissingTitleWarns checks the wizard title warning.
func TestValidateMissingTitleWarns(t *testing.T) {
	def := clean()
	def.Wizard.Title = ""
	errs := ValidateDomain(def)
	if !findingWith(errs, "warning", "title") {
		t.Errorf("expected title warning, got: %v", errs)
	}
}
