package providers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// DefaultsUI answers every step with its pre-filled value or default
// selection without prompting. Steps that carry no usable default fail,
// so the mode can never invent an answer.
type DefaultsUI struct{}

// NewDefaultsUI constructs a non-interactive backend for unattended
// runs and dry rehearsals of a wizard definition.
func NewDefaultsUI() *DefaultsUI {
	return &DefaultsUI{}
}

func (u *DefaultsUI) Text(_ context.Context, req wizard.TextRequest) (wizard.Outcome, error) {
	if req.Validate != nil {
		if err := req.Validate(req.Value); err != nil {
			return nil, fmt.Errorf("default for step %q is invalid: %w", req.Name, err)
		}
	}
	return wizard.TextAnswer(req.Value), nil
}

func (u *DefaultsUI) Select(ctx context.Context, req wizard.SelectRequest) (wizard.Outcome, error) {
	items := req.Items
	if req.Load != nil {
		var err error
		items, err = req.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load items for step %q: %w", req.Name, err)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("step %q has no items to choose from", req.Name)
	}
	checked := restoreChecked(items, req)
	var labels []string
	for i, it := range items {
		if checked[i] {
			labels = append(labels, it.Label)
		}
	}
	if req.Multi {
		return wizard.ListAnswer(labels), nil
	}
	if len(labels) > 0 {
		return wizard.ListAnswer(labels[:1]), nil
	}
	return wizard.ListAnswer([]string{items[0].Label}), nil
}

func (u *DefaultsUI) Path(_ context.Context, req wizard.PathRequest) (wizard.Outcome, error) {
	if !req.Folders || req.Dir == "" {
		return nil, fmt.Errorf("step %q has no default path", req.Name)
	}
	abs, err := filepath.Abs(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve default path for step %q: %w", req.Name, err)
	}
	return wizard.ListAnswer([]string{abs}), nil
}

func (u *DefaultsUI) Confirm(_ context.Context, _ wizard.ConfirmRequest) (wizard.Outcome, error) {
	return wizard.Answer{}, nil
}
