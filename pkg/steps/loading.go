package steps

import (
	"context"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// LoadingChoice is a Choice whose items arrive asynchronously behind a
// loading placeholder, with a manual reload action.
type LoadingChoice struct {
	Base

	Prompt string
	Multi  bool

	// Placeholder is shown while the items load.
	Placeholder string

	// Load supplies the items. Required.
	Load func(ctx context.Context, v *wizard.Values) ([]wizard.Item, error)

	// Reload serves the manual reload action; nil falls back to Load.
	Reload func(ctx context.Context, v *wizard.Values) ([]wizard.Item, error)
}

// Present hands the backend the load and reload functions instead of a
// generated list; the backend keeps the list disabled behind the
// placeholder until the load resolves.
func (s *LoadingChoice) Present(ctx context.Context, p *wizard.Prompt) (wizard.Outcome, error) {
	load := func(ctx context.Context) ([]wizard.Item, error) {
		return s.Load(ctx, p.Values)
	}
	reload := load
	if s.Reload != nil {
		reload = func(ctx context.Context) ([]wizard.Item, error) {
			return s.Reload(ctx, p.Values)
		}
	}
	req := wizard.SelectRequest{
		Name:        s.ID,
		Title:       p.Title,
		ShowBack:    p.ShowBack,
		Prompt:      s.Prompt,
		Multi:       s.Multi,
		Load:        load,
		Reload:      reload,
		Placeholder: s.Placeholder,
	}
	if s.Multi && p.Values.Has(s.ID) {
		req.Selected = p.Values.Get(s.ID)
		req.UseSelected = true
	}
	return p.UI.Select(ctx, req)
}
