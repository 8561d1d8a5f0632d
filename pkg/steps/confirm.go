package steps

import (
	"context"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// Confirm is a modal confirmation step. Declining or dismissing it
// cancels the whole wizard run; it never records a "false" answer. By
// default a confirmed step records nothing; set Store to record "true"
// under the step's ID.
type Confirm struct {
	Base

	// Message is the confirmation question.
	Message string

	// Detail supplies extra context below the message, computed from
	// the answers at presentation time. nil means none.
	Detail func(*wizard.Values) string

	// Confirm is the affirmative label; empty means "Confirm".
	Confirm string

	// Store records "true" under ID on confirmation.
	Store bool
}

func (s *Confirm) Present(ctx context.Context, p *wizard.Prompt) (wizard.Outcome, error) {
	detail := ""
	if s.Detail != nil {
		detail = s.Detail(p.Values)
	}
	out, err := p.UI.Confirm(ctx, wizard.ConfirmRequest{
		Name:    s.ID,
		Title:   p.Title,
		Message: s.Message,
		Detail:  detail,
		Confirm: s.Confirm,
	})
	if err != nil {
		return nil, err
	}
	if _, ok := out.(wizard.Answer); ok && s.Store {
		return wizard.BoolAnswer(true), nil
	}
	return out, nil
}
