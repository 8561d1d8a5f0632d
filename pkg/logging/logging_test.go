package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestNewLevels checks that debug lines are dropped at the default
// level and kept in verbose mode.
func TestNewLevels(t *testing.T) {
	var quiet bytes.Buffer
	New(&quiet, false).Debugf("step %s skipped", "a")
	if quiet.Len() != 0 {
		t.Errorf("default level wrote %q, want nothing", quiet.String())
	}

	var loud bytes.Buffer
	New(&loud, true).Debugf("step %s skipped", "a")
	if loud.Len() == 0 {
		t.Error("verbose level dropped the debug line")
	}

	var errs bytes.Buffer
	New(&errs, false).Errorf("load failed: %s", "timeout")
	if errs.Len() == 0 {
		t.Error("default level dropped the error line")
	}
}

// TestWrapFormats checks that formatting directives reach the wrapped
// logger intact.
func TestWrapFormats(t *testing.T) {
	var buf bytes.Buffer
	Wrap(zerolog.New(&buf)).Debugf("step %s disabled", "region")
	if !strings.Contains(buf.String(), "step region disabled") {
		t.Errorf("output = %q, want the formatted message", buf.String())
	}
}
