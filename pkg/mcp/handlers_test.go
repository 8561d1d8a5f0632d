package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ormasoftchile/gwiz/pkg/schema"
)

func callArgs(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return tc.Text
}

func TestHandleValidate_MissingPath(t *testing.T) {
	result, err := HandleValidate(context.Background(), callArgs(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for missing path")
	}
}

func TestHandleValidate_ValidWizard(t *testing.T) {
	result, err := HandleValidate(context.Background(), callArgs(map[string]any{
		"path": "../../testdata/valid/create-vm.yaml",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "create-vm") || !strings.Contains(text, "6 steps") {
		t.Errorf("text = %q, want the wizard name and step count", text)
	}
}

func TestHandleValidate_InvalidWizard(t *testing.T) {
	result, err := HandleValidate(context.Background(), callArgs(map[string]any{
		"path": "../../testdata/invalid/bad-kind.yaml",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error result for an invalid wizard")
	}
}

func TestHandleDescribe_Wizard(t *testing.T) {
	result, err := HandleDescribe(context.Background(), callArgs(map[string]any{
		"path": "../../testdata/valid/create-vm.yaml",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var described struct {
		Name  string `json:"name"`
		Title string `json:"title"`
		Steps []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"steps"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &described); err != nil {
		t.Fatalf("describe output is not JSON: %v", err)
	}
	if described.Name != "create-vm" || described.Title != "Create Virtual Machine" {
		t.Errorf("described %q/%q, want create-vm/Create Virtual Machine", described.Name, described.Title)
	}
	if len(described.Steps) != 6 {
		t.Fatalf("steps = %d, want 6", len(described.Steps))
	}
	if described.Steps[2].ID != "regions" || described.Steps[2].Kind != "loading" {
		t.Errorf("steps[2] = %+v, want the regions loading step", described.Steps[2])
	}
}

func TestHandleSchema_Export(t *testing.T) {
	result, err := HandleSchema(context.Background(), callArgs(nil))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "wizard-v1alpha1.json") {
		t.Errorf("schema output missing the schema id:\n%s", text)
	}
}

func TestHandleRun_CollectsAnswers(t *testing.T) {
	result, err := HandleRun(context.Background(), callArgs(map[string]any{
		"path": "../../testdata/valid/create-vm.yaml",
		"answers": map[string]any{
			"name":      "web-1",
			"image":     "ubuntu-24.04",
			"regions":   []any{"eu-west", "us-east"},
			"replicas":  3,
			"workspace": t.TempDir(),
			"ok":        "yes",
		},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var run struct {
		Wizard  string              `json:"wizard"`
		Answers map[string][]string `json:"answers"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &run); err != nil {
		t.Fatalf("run output is not JSON: %v", err)
	}
	if run.Wizard != "create-vm" {
		t.Errorf("wizard = %q, want create-vm", run.Wizard)
	}
	if got := run.Answers["replicas"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("replicas = %v, want [3]", got)
	}
	if got := run.Answers["regions"]; len(got) != 2 {
		t.Errorf("regions = %v, want both picks", got)
	}
	if got := run.Answers["ok"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("ok = %v, want [true] from the stored confirmation", got)
	}
}

func TestHandleRun_Declined(t *testing.T) {
	result, err := HandleRun(context.Background(), callArgs(map[string]any{
		"path": "../../testdata/valid/minimal.yaml",
		"answers": map[string]any{
			"user": "alice",
		},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	result, err = HandleRun(context.Background(), callArgs(map[string]any{
		"path": "../../testdata/valid/create-vm.yaml",
		"answers": map[string]any{
			"name":      "web-1",
			"image":     "ubuntu-24.04",
			"regions":   []any{"eu-west"},
			"workspace": t.TempDir(),
			"ok":        "no",
		},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Fatal("expected error result for a declined confirmation")
	}
	if text := resultText(t, result); !strings.Contains(text, "cancelled") {
		t.Errorf("text = %q, want a cancellation message", text)
	}
}

func TestHandleRun_MissingAnswer(t *testing.T) {
	result, err := HandleRun(context.Background(), callArgs(map[string]any{
		"path":    "../../testdata/valid/minimal.yaml",
		"answers": map[string]any{},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Fatal("expected error result for a missing answer")
	}
	if text := resultText(t, result); !strings.Contains(text, "user") {
		t.Errorf("text = %q, want the unanswered step named", text)
	}
}

func TestHandleTemplate_Validates(t *testing.T) {
	result, err := HandleTemplate(context.Background(), callArgs(map[string]any{
		"name": "onboard-service",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "onboard-service") {
		t.Errorf("template missing the wizard name:\n%s", text)
	}

	def, err := schema.Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	for _, f := range schema.Validate(def) {
		if f.Severity == "error" {
			t.Errorf("template finding: %v", f)
		}
	}
}
