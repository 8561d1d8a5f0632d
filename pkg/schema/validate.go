package schema

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError represents a single validation finding with location
// context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // JSON-path-like location (e.g., "steps[0].source")
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// HasErrors reports whether any finding is an error rather than a
// warning.
func HasErrors(errs []*ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}

// ValidateFile performs the full 3-phase validation pipeline on a
// wizard file.
// Phase 1: Structural (strict YAML decode)
// Phase 2: Semantic (JSON Schema validation)
// Phase 3: Domain (custom Go rules)
func ValidateFile(path string) (*Definition, []*ValidationError) {
	var allErrors []*ValidationError

	def, err := LoadFile(path)
	if err != nil {
		allErrors = append(allErrors, &ValidationError{
			Phase:    "structural",
			Path:     "",
			Message:  err.Error(),
			Severity: "error",
		})
		return nil, allErrors
	}

	allErrors = append(allErrors, Validate(def)...)
	if len(allErrors) > 0 {
		return def, allErrors
	}
	return def, nil
}

// Validate runs the semantic and domain phases on an already parsed
// definition.
func Validate(def *Definition) []*ValidationError {
	errs := validateSemantic(def)
	errs = append(errs, ValidateDomain(def)...)
	return errs
}

// validateSemantic validates the definition against the JSON Schema.
func validateSemantic(def *Definition) []*ValidationError {
	data, err := json.Marshal(def)
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Path:     "",
			Message:  fmt.Sprintf("marshal for schema validation: %v", err),
			Severity: "error",
		}}
	}

	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Path:     "",
			Message:  fmt.Sprintf("generate schema: %v", err),
			Severity: "error",
		}}
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Path:     "",
			Message:  fmt.Sprintf("unmarshal schema: %v", err),
			Severity: "error",
		}}
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("wizard-v1alpha1.json", schemaDoc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Path:     "",
			Message:  fmt.Sprintf("add schema resource: %v", err),
			Severity: "error",
		}}
	}

	sch, err := c.Compile("wizard-v1alpha1.json")
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Path:     "",
			Message:  fmt.Sprintf("compile schema: %v", err),
			Severity: "error",
		}}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Path:     "",
			Message:  fmt.Sprintf("unmarshal document: %v", err),
			Severity: "error",
		}}
	}

	if err := sch.Validate(doc); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				instancePath := strings.Join(cause.InstanceLocation, "/")
				errs = append(errs, &ValidationError{
					Phase:    "semantic",
					Path:     instancePath,
					Message:  fmt.Sprintf("%v", cause.ErrorKind),
					Severity: "error",
				})
			}
		} else {
			errs = append(errs, &ValidationError{
				Phase:    "semantic",
				Path:     "",
				Message:  err.Error(),
				Severity: "error",
			})
		}
		return errs
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// validKinds is the closed set of step kinds.
var validKinds = []string{"text", "choice", "loading", "path", "confirm"}

// fieldKinds maps each kind-specific field to the kinds it affects.
// Setting one anywhere else is a warning: strict decode accepts it, but
// the step ignores it.
var fieldKinds = map[string][]string{
	"default":     {"text"},
	"placeholder": {"text", "choice", "loading"},
	"pattern":     {"text"},
	"required":    {"text"},
	"secret":      {"text"},
	"multi":       {"choice", "loading", "path"},
	"items":       {"choice"},
	"source":      {"choice", "loading"},
	"folders":     {"path"},
	"message":     {"confirm"},
	"detail":      {"confirm"},
	"confirm":     {"confirm"},
	"store":       {"confirm"},
}

// ValidateDomain performs Phase 3 domain-level validation.
func ValidateDomain(def *Definition) []*ValidationError {
	var errs []*ValidationError
	addErr := func(path, msg string) {
		errs = append(errs, &ValidationError{Phase: "domain", Path: path, Message: msg, Severity: "error"})
	}
	addWarn := func(path, msg string) {
		errs = append(errs, &ValidationError{Phase: "domain", Path: path, Message: msg, Severity: "warning"})
	}

	if def.APIVersion != APIVersion {
		addErr("apiVersion", fmt.Sprintf("unrecognized apiVersion %q, expected %q", def.APIVersion, APIVersion))
	}
	if def.Wizard.Name == "" {
		addErr("wizard.name", "wizard requires a name")
	}
	if def.Wizard.Title == "" {
		addWarn("wizard.title", "wizard has no title; the raw name will head every step")
	}
	if len(def.Steps) == 0 {
		addWarn("steps", "wizard has no steps; a run completes immediately")
	}

	ids := make([]string, 0, len(def.Steps))
	for _, s := range def.Steps {
		ids = append(ids, s.ID)
	}

	seen := map[string]int{}
	for i, s := range def.Steps {
		at := fmt.Sprintf("steps[%d]", i)

		if s.ID == "" {
			addErr(at+".id", "step requires an id")
		} else {
			if prev, dup := seen[s.ID]; dup {
				addErr(at+".id", fmt.Sprintf("duplicate step id %q (first used by steps[%d])", s.ID, prev))
			} else {
				seen[s.ID] = i
			}
			if slices.Contains(whenHelpers, s.ID) {
				addErr(at+".id", fmt.Sprintf("step id %q collides with a when helper", s.ID))
			}
		}

		if !slices.Contains(validKinds, s.Kind) {
			addErr(at+".kind", fmt.Sprintf("invalid kind %q: must be one of %s", s.Kind, strings.Join(validKinds, ", ")))
			continue
		}

		if s.When != "" {
			if _, err := CompileWhen(s.When, ids); err != nil {
				addErr(at+".when", err.Error())
			}
		}

		errs = append(errs, validateStepFields(&s, at)...)

		switch s.Kind {
		case "text":
			if s.Pattern != "" {
				if _, err := regexp.Compile(s.Pattern); err != nil {
					addErr(at+".pattern", fmt.Sprintf("invalid pattern: %v", err))
				}
			}
			if s.Secret && s.Default != "" {
				addWarn(at+".default", fmt.Sprintf("secret step %q carries a cleartext default", s.ID))
			}
		case "choice":
			if len(s.Items) == 0 && s.Source == nil {
				addErr(at, fmt.Sprintf("choice step %q needs items or a source", s.ID))
			}
			if len(s.Items) > 0 && s.Source != nil {
				addErr(at, fmt.Sprintf("choice step %q has both inline items and a source", s.ID))
			}
			errs = append(errs, validateItems(s.Items, s.Multi, at)...)
		case "loading":
			if s.Source == nil {
				addErr(at+".source", fmt.Sprintf("loading step %q needs a source", s.ID))
			}
			if s.Placeholder == "" {
				addWarn(at+".placeholder", fmt.Sprintf("loading step %q has no placeholder to show while items load", s.ID))
			}
		case "confirm":
			if s.Message == "" {
				addErr(at+".message", fmt.Sprintf("confirm step %q requires a message", s.ID))
			}
			if s.Detail != "" {
				if _, err := detailTemplate(s.Detail); err != nil {
					addErr(at+".detail", fmt.Sprintf("invalid detail template: %v", err))
				}
			}
		}

		if s.Source != nil && (s.Kind == "choice" || s.Kind == "loading") {
			errs = append(errs, validateSource(s.Source, at+".source")...)
		}

		if s.Kind != "confirm" && s.Prompt == "" {
			addWarn(at+".prompt", fmt.Sprintf("step %q has no prompt", s.ID))
		}
	}

	return errs
}

// validateStepFields warns about kind-specific fields set on a step of
// another kind.
func validateStepFields(s *StepDef, at string) []*ValidationError {
	set := map[string]bool{
		"default":     s.Default != "",
		"placeholder": s.Placeholder != "",
		"pattern":     s.Pattern != "",
		"required":    s.Required,
		"secret":      s.Secret,
		"multi":       s.Multi,
		"items":       len(s.Items) > 0,
		"source":      s.Source != nil,
		"folders":     s.Folders,
		"message":     s.Message != "",
		"detail":      s.Detail != "",
		"confirm":     s.Confirm != "",
		"store":       s.Store,
	}
	var errs []*ValidationError
	// Deterministic order for stable output.
	fields := make([]string, 0, len(fieldKinds))
	for f := range fieldKinds {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	for _, f := range fields {
		if !set[f] || slices.Contains(fieldKinds[f], s.Kind) {
			continue
		}
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     at + "." + f,
			Message:  fmt.Sprintf("field %s has no effect on a %s step", f, s.Kind),
			Severity: "warning",
		})
	}
	return errs
}

// validateItems checks inline pick-list entries.
func validateItems(items []ItemDef, multi bool, at string) []*ValidationError {
	var errs []*ValidationError
	picked := 0
	labels := map[string]int{}
	for i, it := range items {
		ip := fmt.Sprintf("%s.items[%d]", at, i)
		if it.Label == "" {
			errs = append(errs, &ValidationError{
				Phase: "domain", Path: ip + ".label",
				Message: "item requires a label", Severity: "error",
			})
			continue
		}
		if prev, dup := labels[it.Label]; dup {
			errs = append(errs, &ValidationError{
				Phase: "domain", Path: ip + ".label",
				Message:  fmt.Sprintf("duplicate item label %q (first used by items[%d])", it.Label, prev),
				Severity: "error",
			})
		} else {
			labels[it.Label] = i
		}
		if it.Picked {
			picked++
		}
	}
	if !multi && picked > 1 {
		errs = append(errs, &ValidationError{
			Phase: "domain", Path: at + ".items",
			Message:  fmt.Sprintf("%d items are picked but the step takes a single choice", picked),
			Severity: "error",
		})
	}
	return errs
}

// validateSource checks that a source names exactly one producer and
// that a URL producer is well formed.
func validateSource(src *Source, at string) []*ValidationError {
	var errs []*ValidationError
	addErr := func(msg string) {
		errs = append(errs, &ValidationError{Phase: "domain", Path: at, Message: msg, Severity: "error"})
	}
	switch {
	case src.Command != "" && src.URL != "":
		addErr("source has both a command and a url; use one")
	case src.Command == "" && src.URL == "":
		addErr("source needs a command or a url")
	case src.URL != "":
		u, err := url.Parse(src.URL)
		if err != nil {
			addErr(fmt.Sprintf("invalid url: %v", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			addErr(fmt.Sprintf("url scheme %q is not supported, use http or https", u.Scheme))
		}
	}
	return errs
}
