package wizard

import "time"

// EventKind labels an engine transition.
type EventKind string

const (
	EventPresented EventKind = "presented"
	EventAnswered  EventKind = "answered"
	EventSkipped   EventKind = "skipped"
	EventBack      EventKind = "back"
	EventCancelled EventKind = "cancelled"
	EventCompleted EventKind = "completed"
)

// Event is one observable engine transition, emitted to the configured
// Sink as it happens. Number and Total reflect what the user saw.
type Event struct {
	Time   time.Time `json:"time"`
	Kind   EventKind `json:"kind"`
	Step   string    `json:"step,omitempty"`
	Number int       `json:"number,omitempty"`
	Total  int       `json:"total,omitempty"`
	Values []string  `json:"values,omitempty"`
}

// Sink receives engine events. A Record error aborts the run.
type Sink interface {
	Record(Event) error
}
