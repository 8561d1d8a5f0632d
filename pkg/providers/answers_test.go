package providers

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestNormalizeAnswers checks the scalar and sequence forms an answers
// document may use.
func TestNormalizeAnswers(t *testing.T) {
	raw := map[string]any{
		"name":    "alice",
		"ok":      true,
		"count":   3,
		"ratio":   0.5,
		"langs":   []any{"go", "rust"},
		"mixed":   []any{true, 8},
		"nothing": nil,
	}
	got, err := NormalizeAnswers(raw)
	if err != nil {
		t.Fatalf("NormalizeAnswers: %v", err)
	}
	want := map[string][]string{
		"name":    {"alice"},
		"ok":      {"true"},
		"count":   {"3"},
		"ratio":   {"0.5"},
		"langs":   {"go", "rust"},
		"mixed":   {"true", "8"},
		"nothing": {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("answers = %v, want %v", got, want)
	}
}

// TestNormalizeAnswersRejectsNesting checks that a sequence inside a
// sequence is reported with the answer name.
func TestNormalizeAnswersRejectsNesting(t *testing.T) {
	_, err := NormalizeAnswers(map[string]any{"bad": []any{[]any{"x"}}})
	if err == nil || !strings.Contains(err.Error(), `answer "bad"`) {
		t.Errorf("error = %v, want it to name the answer", err)
	}
}

// TestNormalizeAnswersRejectsObjects checks that mapping values are
// refused rather than stringified.
func TestNormalizeAnswersRejectsObjects(t *testing.T) {
	_, err := NormalizeAnswers(map[string]any{"bad": map[string]any{"a": 1}})
	if err == nil || !strings.Contains(err.Error(), "unsupported value") {
		t.Errorf("error = %v, want an unsupported-value failure", err)
	}
}

// TestLoadAnswers checks reading and normalizing a YAML answers file.
func TestLoadAnswers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.yaml")
	doc := "user: alice\nlangs:\n  - go\n  - rust\nok: true\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	got, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers: %v", err)
	}
	want := map[string][]string{
		"user":  {"alice"},
		"langs": {"go", "rust"},
		"ok":    {"true"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("answers = %v, want %v", got, want)
	}
}

// TestLoadAnswersMissingFile checks the error for an absent file.
func TestLoadAnswersMissingFile(t *testing.T) {
	_, err := LoadAnswers(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for the missing file")
	}
}
