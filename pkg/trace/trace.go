// Package trace persists engine events as a JSONL file, one event per
// line, so a run can be audited after the fact.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// entry is one trace line: the run identifier plus the engine event.
type entry struct {
	Run string `json:"run"`
	wizard.Event
}

// Writer appends engine events to a JSONL trace file under a fresh run
// identifier. It implements wizard.Sink.
type Writer struct {
	run    string
	file   *os.File
	writer *bufio.Writer
	enc    *json.Encoder
}

// NewWriter creates a trace writer that appends to the given file.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	w := bufio.NewWriter(f)
	return &Writer{
		run:    uuid.NewString(),
		file:   f,
		writer: w,
		enc:    json.NewEncoder(w),
	}, nil
}

// Run returns the identifier stamped on every line this writer emits.
func (w *Writer) Run() string { return w.run }

// Record appends one event as a JSONL line and flushes to disk.
func (w *Writer) Record(e wizard.Event) error {
	if err := w.enc.Encode(entry{Run: w.run, Event: e}); err != nil {
		return fmt.Errorf("encode trace event: %w", err)
	}
	// Flush and sync at step boundaries
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync trace: %w", err)
	}
	return nil
}

// Close flushes and closes the trace file.
func (w *Writer) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}
