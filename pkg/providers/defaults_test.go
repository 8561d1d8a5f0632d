package providers

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// TestDefaultsText checks that the pre-filled value is accepted as the
// answer.
func TestDefaultsText(t *testing.T) {
	ui := NewDefaultsUI()
	out, err := ui.Text(context.Background(), wizard.TextRequest{Name: "user", Value: "guest"})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if a := out.(wizard.Answer); len(a.Values) != 1 || a.Values[0] != "guest" {
		t.Errorf("values = %v, want [guest]", a.Values)
	}
}

// TestDefaultsTextInvalid checks that a default failing validation is
// an error rather than a recorded answer.
func TestDefaultsTextInvalid(t *testing.T) {
	ui := NewDefaultsUI()
	req := wizard.TextRequest{
		Name:     "port",
		Value:    "",
		Validate: func(s string) error { return errors.New("required") },
	}
	if _, err := ui.Text(context.Background(), req); err == nil {
		t.Fatal("expected an error for the invalid default")
	}
}

// TestDefaultsSelect checks default selection in both modes: checked
// items in multi mode, first checked or first item in single mode.
func TestDefaultsSelect(t *testing.T) {
	ui := NewDefaultsUI()
	items := []wizard.Item{{Label: "go"}, {Label: "rust", Checked: true}, {Label: "zig", Checked: true}}

	out, err := ui.Select(context.Background(), wizard.SelectRequest{Name: "langs", Multi: true, Items: items})
	if err != nil {
		t.Fatalf("Select multi: %v", err)
	}
	if a := out.(wizard.Answer); !reflect.DeepEqual(a.Values, []string{"rust", "zig"}) {
		t.Errorf("multi values = %v, want [rust zig]", a.Values)
	}

	out, err = ui.Select(context.Background(), wizard.SelectRequest{Name: "lang", Items: items})
	if err != nil {
		t.Fatalf("Select single: %v", err)
	}
	if a := out.(wizard.Answer); !reflect.DeepEqual(a.Values, []string{"rust"}) {
		t.Errorf("single values = %v, want [rust]", a.Values)
	}

	plain := []wizard.Item{{Label: "go"}, {Label: "rust"}}
	out, err = ui.Select(context.Background(), wizard.SelectRequest{Name: "lang", Items: plain})
	if err != nil {
		t.Fatalf("Select unchecked: %v", err)
	}
	if a := out.(wizard.Answer); !reflect.DeepEqual(a.Values, []string{"go"}) {
		t.Errorf("unchecked values = %v, want [go]", a.Values)
	}
}

// TestDefaultsSelectStoredSelection checks that a restored previous
// selection overrides the items' own marks.
func TestDefaultsSelectStoredSelection(t *testing.T) {
	ui := NewDefaultsUI()
	items := []wizard.Item{{Label: "go", Checked: true}, {Label: "rust"}}
	req := wizard.SelectRequest{
		Name:        "langs",
		Multi:       true,
		Items:       items,
		Selected:    []string{"rust"},
		UseSelected: true,
	}
	out, err := ui.Select(context.Background(), req)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if a := out.(wizard.Answer); !reflect.DeepEqual(a.Values, []string{"rust"}) {
		t.Errorf("values = %v, want [rust]", a.Values)
	}
}

// TestDefaultsSelectEmpty checks that an empty item list cannot be
// answered by default.
func TestDefaultsSelectEmpty(t *testing.T) {
	ui := NewDefaultsUI()
	if _, err := ui.Select(context.Background(), wizard.SelectRequest{Name: "lang"}); err == nil {
		t.Fatal("expected an error for the empty item list")
	}
}

// TestDefaultsPath checks that only a folder step with a starting
// location has a usable default.
func TestDefaultsPath(t *testing.T) {
	ui := NewDefaultsUI()
	out, err := ui.Path(context.Background(), wizard.PathRequest{Name: "dest", Folders: true, Dir: "."})
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if a := out.(wizard.Answer); len(a.Values) != 1 || !filepath.IsAbs(a.Values[0]) {
		t.Errorf("values = %v, want one absolute path", a.Values)
	}
	if _, err := ui.Path(context.Background(), wizard.PathRequest{Name: "file"}); err == nil {
		t.Fatal("expected an error for the file step without a default")
	}
}

// TestDefaultsConfirm checks that confirmations auto-confirm.
func TestDefaultsConfirm(t *testing.T) {
	ui := NewDefaultsUI()
	out, err := ui.Confirm(context.Background(), wizard.ConfirmRequest{Name: "ok"})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if _, ok := out.(wizard.Answer); !ok {
		t.Errorf("outcome = %T, want Answer", out)
	}
}
