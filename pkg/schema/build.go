package schema

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/go-resty/resty/v2"

	"github.com/ormasoftchile/gwiz/pkg/steps"
	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// BuildOptions carries the collaborators step construction needs.
type BuildOptions struct {
	// Logger receives precondition and template diagnostics. nil means
	// silent.
	Logger wizard.Logger

	// Client performs URL item-source requests. nil means a default
	// client.
	Client *resty.Client
}

// Title returns the heading a run of this definition carries: the
// wizard title, falling back to the name.
func (d *Definition) Title() string {
	if d.Wizard.Title != "" {
		return d.Wizard.Title
	}
	return d.Wizard.Name
}

// Build turns a validated definition into runnable steps. Definitions
// that fail Validate may still build or fail here with terser messages;
// validate first for friendly findings.
func Build(def *Definition, opts BuildOptions) ([]wizard.Step, error) {
	logger := opts.Logger
	if logger == nil {
		logger = wizard.NopLogger{}
	}
	client := opts.Client
	if client == nil {
		client = resty.New()
	}

	ids := make([]string, 0, len(def.Steps))
	for _, s := range def.Steps {
		ids = append(ids, s.ID)
	}

	built := make([]wizard.Step, 0, len(def.Steps))
	for i, s := range def.Steps {
		base := steps.Base{ID: s.ID}
		if s.When != "" {
			when, err := CompileWhen(s.When, ids)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			base.When = func(v *wizard.Values) bool { return when.Eval(v, logger) }
		}

		switch s.Kind {
		case "text":
			validate, err := buildValidate(&s)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			built = append(built, &steps.Text{
				Base:        base,
				Prompt:      s.Prompt,
				Default:     s.Default,
				Placeholder: s.Placeholder,
				Secret:      s.Secret,
				Validate:    validate,
			})
		case "choice":
			step := &steps.Choice{Base: base, Prompt: s.Prompt, Multi: s.Multi}
			if s.Source != nil {
				load := s.Source.Loader(client)
				step.Items = func(ctx context.Context, _ *wizard.Values) ([]wizard.Item, error) {
					return load(ctx)
				}
			} else if len(s.Items) > 0 {
				items := staticItems(s.Items)
				step.Items = func(context.Context, *wizard.Values) ([]wizard.Item, error) {
					return items, nil
				}
			} else {
				return nil, fmt.Errorf("steps[%d]: choice step %q needs items or a source", i, s.ID)
			}
			built = append(built, step)
		case "loading":
			if s.Source == nil {
				return nil, fmt.Errorf("steps[%d]: loading step %q needs a source", i, s.ID)
			}
			load := s.Source.Loader(client)
			built = append(built, &steps.LoadingChoice{
				Base:        base,
				Prompt:      s.Prompt,
				Multi:       s.Multi,
				Placeholder: s.Placeholder,
				Load: func(ctx context.Context, _ *wizard.Values) ([]wizard.Item, error) {
					return load(ctx)
				},
			})
		case "path":
			built = append(built, &steps.Path{
				Base:    base,
				Prompt:  s.Prompt,
				Folders: s.Folders,
				Multi:   s.Multi,
			})
		case "confirm":
			detail, err := buildDetail(&s, ids, logger)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			built = append(built, &steps.Confirm{
				Base:    base,
				Message: s.Message,
				Detail:  detail,
				Confirm: s.Confirm,
				Store:   s.Store,
			})
		default:
			return nil, fmt.Errorf("steps[%d]: unknown kind %q", i, s.Kind)
		}
	}
	return built, nil
}

// staticItems converts inline item definitions once so every
// presentation reuses the same slice.
func staticItems(defs []ItemDef) []wizard.Item {
	items := make([]wizard.Item, len(defs))
	for i, d := range defs {
		items[i] = wizard.Item{Label: d.Label, Detail: d.Detail, Checked: d.Picked}
	}
	return items
}

// buildValidate assembles the text validator from required and pattern.
func buildValidate(s *StepDef) (func(string) error, error) {
	if !s.Required && s.Pattern == "" {
		return nil, nil
	}
	var re *regexp.Regexp
	if s.Pattern != "" {
		var err error
		re, err = regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}
	required := s.Required
	pattern := s.Pattern
	return func(value string) error {
		if required && strings.TrimSpace(value) == "" {
			return fmt.Errorf("an answer is required")
		}
		if re != nil && value != "" && !re.MatchString(value) {
			return fmt.Errorf("%q does not match %s", value, pattern)
		}
		return nil
	}, nil
}

// detailTemplate parses a confirm detail template with the functions
// available to it.
func detailTemplate(raw string) (*template.Template, error) {
	return template.New("detail").
		Option("missingkey=error").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(raw)
}

// buildDetail compiles the confirm detail template. Plain strings pass
// through untouched; a template that fails to render at presentation
// time falls back to the raw text.
func buildDetail(s *StepDef, ids []string, logger wizard.Logger) (func(*wizard.Values) string, error) {
	if s.Detail == "" {
		return nil, nil
	}
	raw := s.Detail
	if !strings.Contains(raw, "{{") {
		return func(*wizard.Values) string { return raw }, nil
	}
	tmpl, err := detailTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid detail template: %w", err)
	}
	return func(v *wizard.Values) string {
		var buf strings.Builder
		if err := tmpl.Execute(&buf, detailData(ids, v)); err != nil {
			logger.Errorf("render detail for step %q: %v", s.ID, err)
			return raw
		}
		return buf.String()
	}, nil
}

// detailData flattens the accumulator for template access: each step id
// maps to its first answer and each "<id>_values" to the full list.
// Unanswered ids render empty rather than failing the template.
func detailData(ids []string, v *wizard.Values) map[string]any {
	data := make(map[string]any, 2*len(ids))
	for _, id := range ids {
		data[id] = ""
		data[id+"_values"] = []string{}
	}
	if v == nil {
		return data
	}
	for _, name := range v.Names() {
		data[name] = v.First(name)
		data[name+"_values"] = v.Get(name)
	}
	return data
}
