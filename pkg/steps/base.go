// Package steps provides the concrete step kinds a wizard is assembled
// from: text entry, single or multi choice (plus an asynchronously
// loading variant), file and folder picking, and confirmation. Each
// kind translates its configuration and the current answers into one
// request on the wizard.Prompter boundary.
package steps

import (
	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// Base carries the fields shared by every step kind: the answer name,
// an optional precondition, and an optional post-input hook.
type Base struct {
	// ID keys the answer in the accumulator. Required, unique within
	// one wizard.
	ID string

	// When is the precondition; nil means always shown.
	When func(*wizard.Values) bool

	// After runs after an answer is recorded.
	After func(*wizard.Values)
}

func (b Base) Name() string { return b.ID }

func (b Base) Enabled(v *wizard.Values) bool {
	if b.When == nil {
		return true
	}
	return b.When(v)
}

func (b Base) AfterInput(v *wizard.Values) {
	if b.After != nil {
		b.After(v)
	}
}
