// Package wizard drives declarative multi-step input wizards: an
// ordered list of steps is presented one at a time while answers
// accumulate, with conditional skipping, live step numbering, and
// backward navigation across answered and skipped steps.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCancelled is returned by Run when the user dismisses a step or
// declines a confirmation. It is the only way a run ends with neither a
// result nor a failure.
var ErrCancelled = errors.New("wizard cancelled")

// Config carries the collaborators for one run.
type Config struct {
	// UI presents the steps. Required.
	UI Prompter

	// Logger receives diagnostics. nil means silent.
	Logger Logger

	// Sink receives engine events. nil means none are emitted.
	Sink Sink

	// Initial is a pre-populated accumulator. nil means empty. Run
	// mutates it in place, so on cancellation the caller's copy still
	// holds the answers of the steps completed before the cancel.
	Initial *Values
}

// record remembers the numbering a step was answered under, so that
// backward navigation can restore it exactly.
type record struct {
	name   string
	number int
	total  int
}

// Run walks the user through steps in order and returns the accumulated
// answers. It returns (nil, ErrCancelled) when the user cancels, and
// (nil, err) when a step, loader, or sink fails or ctx is cancelled.
//
// The displayed step number is 1-based and advances only when a step is
// answered. The displayed total counts the steps that would currently
// be shown: steps already skipped stop counting, and steps ahead of the
// cursor whose precondition is false right now are not counted either,
// so the first title of a wizard already reflects upcoming skips.
func Run(ctx context.Context, title string, steps []Step, cfg Config) (*Values, error) {
	if cfg.UI == nil {
		return nil, errors.New("wizard: Config.UI is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	values := cfg.Initial
	if values == nil {
		values = NewValues()
	}

	emit := func(kind EventKind, step string, number, total int, vals []string) error {
		if cfg.Sink == nil {
			return nil
		}
		e := Event{Time: time.Now(), Kind: kind, Step: step, Number: number, Total: total, Values: vals}
		if err := cfg.Sink.Record(e); err != nil {
			return fmt.Errorf("record %s event: %w", kind, err)
		}
		return nil
	}

	var (
		cursor    int
		number    = 1
		total     = len(steps)
		taken     []record
		goingBack bool
	)

	for cursor < len(steps) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step := steps[cursor]
		name := step.Name()

		if !step.Enabled(values) {
			if goingBack && len(taken) > 0 {
				// Skipped on the way forward too; keep unwinding past it.
				rec := taken[len(taken)-1]
				taken = taken[:len(taken)-1]
				number, total = rec.number, rec.total
				cursor = rewind(steps, cursor, rec.name)
				logger.Debugf("step %s disabled while unwinding, back to %s", name, rec.name)
				if err := emit(EventBack, rec.name, number, total, nil); err != nil {
					return nil, err
				}
				continue
			}
			goingBack = false
			total--
			logger.Debugf("step %s skipped: precondition false", name)
			if err := emit(EventSkipped, name, number, total, nil); err != nil {
				return nil, err
			}
			cursor++
			continue
		}

		shown := total - disabledAhead(steps, cursor, values)
		prompt := &Prompt{
			Title:    fmt.Sprintf("%s (Step %d of %d)", title, number, shown),
			ShowBack: len(taken) > 0,
			Values:   values,
			UI:       cfg.UI,
			Logger:   logger,
		}
		if err := emit(EventPresented, name, number, shown, nil); err != nil {
			return nil, err
		}
		outcome, err := step.Present(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", name, err)
		}
		if outcome == nil {
			outcome = Cancel{}
		}

		switch o := outcome.(type) {
		case Cancel:
			logger.Debugf("cancelled at step %s", name)
			if err := emit(EventCancelled, name, number, shown, nil); err != nil {
				return nil, err
			}
			return nil, ErrCancelled

		case Back:
			if len(taken) == 0 {
				// Nothing to return to; present the step again.
				logger.Debugf("back at step %s with nothing to return to", name)
				continue
			}
			rec := taken[len(taken)-1]
			taken = taken[:len(taken)-1]
			number, total = rec.number, rec.total
			goingBack = true
			cursor = rewind(steps, cursor, rec.name)
			logger.Debugf("back from step %s to %s", name, rec.name)
			if err := emit(EventBack, rec.name, number, total, nil); err != nil {
				return nil, err
			}

		case Answer:
			goingBack = false
			if o.Values != nil {
				values.Set(name, o.Values...)
			}
			step.AfterInput(values)
			taken = append(taken, record{name: name, number: number, total: total})
			if err := emit(EventAnswered, name, number, shown, o.Values); err != nil {
				return nil, err
			}
			number++
			cursor++
		}
	}

	if err := emit(EventCompleted, "", 0, 0, nil); err != nil {
		return nil, err
	}
	return values, nil
}

// rewind walks cursor backward to the step called name. Steps in
// between are crossed without evaluating their preconditions.
func rewind(steps []Step, cursor int, name string) int {
	for cursor > 0 {
		cursor--
		if steps[cursor].Name() == name {
			break
		}
	}
	return cursor
}

// disabledAhead counts the steps after cursor whose precondition is
// false against the current answers.
func disabledAhead(steps []Step, cursor int, values *Values) int {
	n := 0
	for i := cursor + 1; i < len(steps); i++ {
		if !steps[i].Enabled(values) {
			n++
		}
	}
	return n
}
