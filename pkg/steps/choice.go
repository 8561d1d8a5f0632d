package steps

import (
	"context"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// Choice is a single- or multi-selection step over a generated item
// list. The generator runs before every presentation.
type Choice struct {
	Base

	Prompt string
	Multi  bool

	// Items generates the selectable list. Required; a failure is fatal
	// to the run.
	Items func(ctx context.Context, v *wizard.Values) ([]wizard.Item, error)
}

// Present generates the items, then restores a previous multi-selection
// by label when one is stored, falling back to the generator's Checked
// marks otherwise. Never both.
func (s *Choice) Present(ctx context.Context, p *wizard.Prompt) (wizard.Outcome, error) {
	items, err := s.Items(ctx, p.Values)
	if err != nil {
		return nil, err
	}
	req := wizard.SelectRequest{
		Name:     s.ID,
		Title:    p.Title,
		ShowBack: p.ShowBack,
		Prompt:   s.Prompt,
		Multi:    s.Multi,
		Items:    items,
	}
	if s.Multi && p.Values.Has(s.ID) {
		req.Selected = p.Values.Get(s.ID)
		req.UseSelected = true
	}
	return p.UI.Select(ctx, req)
}
