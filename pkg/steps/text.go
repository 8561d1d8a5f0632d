package steps

import (
	"context"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// Text is a single-line text entry step.
type Text struct {
	Base

	// Prompt is the field label shown with the input.
	Prompt string

	// Default pre-fills the field when the step has no previous answer.
	Default string

	Placeholder string
	Secret      bool

	// Validate is evaluated on every edit; a non-nil error blocks
	// acceptance and is shown to the user.
	Validate func(value string) error

	// Action is an optional extra action besides the navigation
	// controls; its result replaces the field text.
	Action *wizard.TextAction
}

// Present pre-fills from the previous answer when the step is
// re-visited, from Default otherwise.
func (s *Text) Present(ctx context.Context, p *wizard.Prompt) (wizard.Outcome, error) {
	value := s.Default
	if p.Values.Has(s.ID) {
		value = p.Values.First(s.ID)
	}
	return p.UI.Text(ctx, wizard.TextRequest{
		Name:        s.ID,
		Title:       p.Title,
		ShowBack:    p.ShowBack,
		Prompt:      s.Prompt,
		Value:       value,
		Placeholder: s.Placeholder,
		Secret:      s.Secret,
		Validate:    s.Validate,
		Action:      s.Action,
	})
}
