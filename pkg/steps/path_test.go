package steps

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// TestPathStartDir verifies the starting-location rules: previous exact
// path (parent in file mode), common prefix of several previous paths,
// and the accumulator context as the fallback.
func TestPathStartDir(t *testing.T) {
	sep := string(filepath.Separator)
	join := func(parts ...string) string { return sep + filepath.Join(parts...) }

	tests := []struct {
		name    string
		folders bool
		prev    []string
		context string
		want    string
	}{
		{name: "no previous answer falls back to context", context: join("work"), want: join("work")},
		{name: "single file uses its parent", prev: []string{join("work", "a", "x.txt")}, want: join("work", "a")},
		{name: "single folder uses itself", folders: true, prev: []string{join("work", "a")}, want: join("work", "a")},
		{name: "several files use the common prefix", prev: []string{join("work", "a", "x.txt"), join("work", "b", "y.txt")}, want: join("work")},
		{name: "several folders use the common prefix", folders: true, prev: []string{join("work", "a"), join("work", "a", "b")}, want: join("work", "a")},
	}
	for _, tt := range tests {
		s := &Path{Base: Base{ID: "dir"}, Folders: tt.folders}
		v := wizard.NewValues()
		v.Context = tt.context
		if tt.prev != nil {
			v.Set("dir", tt.prev...)
		}
		if got := s.startDir(v); got != tt.want {
			t.Errorf("%s: startDir = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// TestCommonDir verifies segment-wise prefix computation, including the
// root-only and no-input edges.
func TestCommonDir(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		paths []string
		want  string
	}{
		{paths: nil, want: ""},
		{paths: []string{sep + "a" + sep + "b"}, want: sep + "a" + sep + "b"},
		{paths: []string{sep + "a" + sep + "b", sep + "a" + sep + "c"}, want: sep + "a"},
		{paths: []string{sep + "a", sep + "b"}, want: sep},
		{paths: []string{sep + "a" + sep + "bb", sep + "a" + sep + "bc"}, want: sep + "a"},
	}
	for _, tt := range tests {
		if got := commonDir(tt.paths); got != tt.want {
			t.Errorf("commonDir(%v) = %q, want %q", tt.paths, got, tt.want)
		}
	}
}

// TestPathRequestFields verifies the request the step hands the backend.
func TestPathRequestFields(t *testing.T) {
	ui := &captureUI{out: wizard.TextAnswer("/tmp")}
	s := &Path{Base: Base{ID: "dir"}, Prompt: "Target", Folders: true, Multi: true}
	v := wizard.NewValues()
	v.Context = "/work"

	if _, err := s.Present(context.Background(), testPrompt(v, ui)); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	req := ui.path
	if req.Name != "dir" || !req.Folders || !req.Multi {
		t.Errorf("request = %+v, want folders+multi under name dir", req)
	}
	if req.Dir != "/work" {
		t.Errorf("Dir = %q, want the context fallback %q", req.Dir, "/work")
	}
}
