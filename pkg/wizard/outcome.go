package wizard

// Outcome is the result of presenting one step: an answer, a request to
// navigate back, or cancellation of the whole wizard. The set is closed;
// the engine dispatches on exactly these three variants.
type Outcome interface {
	isOutcome()
}

// Answer carries the collected values for a step. A nil Values slice
// means the step completed without recording anything, which is how a
// non-storing confirmation reports success.
type Answer struct {
	Values []string
}

// Back requests navigation to the previously answered step.
type Back struct{}

// Cancel aborts the whole wizard run.
type Cancel struct{}

func (Answer) isOutcome() {}
func (Back) isOutcome()   {}
func (Cancel) isOutcome() {}

// TextAnswer wraps a single string value.
func TextAnswer(value string) Answer {
	return Answer{Values: []string{value}}
}

// ListAnswer wraps an ordered sequence of values. The slice is copied;
// a nil or empty input still counts as an answer, with no values.
func ListAnswer(values []string) Answer {
	return Answer{Values: append([]string{}, values...)}
}

// BoolAnswer wraps a boolean as "true" or "false".
func BoolAnswer(b bool) Answer {
	if b {
		return Answer{Values: []string{"true"}}
	}
	return Answer{Values: []string{"false"}}
}
