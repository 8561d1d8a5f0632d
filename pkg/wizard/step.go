package wizard

import "context"

// Step is one entry in a wizard. Implementations are constructed once
// before the run and are never mutated by the engine; Present may be
// called multiple times when the user navigates backward.
type Step interface {
	// Name identifies the step's answer in the accumulator. Must be
	// unique within one wizard.
	Name() string

	// Enabled is the precondition: a false result skips the step. Must
	// be a pure function of the accumulator; the engine evaluates it
	// both at the cursor and ahead of it when computing titles.
	Enabled(values *Values) bool

	// Present shows the step and blocks until the user acts. All
	// transient UI resources must be released before it returns, on
	// every exit path. A nil Outcome is treated as Cancel.
	Present(ctx context.Context, p *Prompt) (Outcome, error)

	// AfterInput runs after an answer is recorded, before the engine
	// moves to the next step.
	AfterInput(values *Values)
}
