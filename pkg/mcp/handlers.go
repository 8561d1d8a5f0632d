package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ormasoftchile/gwiz/pkg/providers"
	"github.com/ormasoftchile/gwiz/pkg/schema"
	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// HandleValidate implements the validate_wizard MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	def, findings := schema.ValidateFile(path)
	if schema.HasErrors(findings) {
		return errorResult(formatFindings(findings)), nil
	}

	text := fmt.Sprintf("✓ %s is valid (%d steps)", def.Wizard.Name, len(def.Steps))
	if w := countWarnings(findings); w > 0 {
		text += fmt.Sprintf(", %d warning(s)", w)
	}
	return textResult(text), nil
}

// HandleDescribe implements the describe_wizard MCP tool.
func HandleDescribe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	def, findings := schema.ValidateFile(path)
	if schema.HasErrors(findings) {
		return errorResult(formatFindings(findings)), nil
	}

	stepList := make([]map[string]any, 0, len(def.Steps))
	for _, s := range def.Steps {
		entry := map[string]any{
			"id":   s.ID,
			"kind": s.Kind,
		}
		if s.Prompt != "" {
			entry["prompt"] = s.Prompt
		}
		if s.Message != "" {
			entry["message"] = s.Message
		}
		if s.When != "" {
			entry["when"] = s.When
		}
		if s.Required {
			entry["required"] = true
		}
		if s.Multi {
			entry["multi"] = true
		}
		stepList = append(stepList, entry)
	}

	response := map[string]any{
		"name":  def.Wizard.Name,
		"title": def.Title(),
		"steps": stepList,
	}
	if def.Wizard.Description != "" {
		response["description"] = def.Wizard.Description
	}

	data, _ := json.MarshalIndent(response, "", "  ")
	return textResult(string(data)), nil
}

// HandleSchema implements the get_wizard_schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := schema.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// HandleRun implements the run_wizard MCP tool. The wizard runs under
// the scripted backend: every step must find its answer in the answers
// argument, and a declined confirmation reports as cancellation.
func HandleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	rawAnswers, _ := args["answers"].(map[string]any)
	answers, err := providers.NormalizeAnswers(rawAnswers)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	def, findings := schema.ValidateFile(path)
	if schema.HasErrors(findings) {
		return errorResult(formatFindings(findings)), nil
	}

	built, err := schema.Build(def, schema.BuildOptions{})
	if err != nil {
		return errorResult(err.Error()), nil
	}

	initial := wizard.NewValues()
	if c, ok := args["context"].(string); ok {
		initial.Context = c
	}

	vals, err := wizard.Run(ctx, def.Title(), built, wizard.Config{
		UI:      providers.NewScriptUI(answers),
		Initial: initial,
	})
	if errors.Is(err, wizard.ErrCancelled) {
		return errorResult("wizard cancelled: the confirmation was declined"), nil
	}
	if err != nil {
		return errorResult(err.Error()), nil
	}

	response := map[string]any{
		"wizard":  def.Wizard.Name,
		"answers": vals.Map(),
	}
	data, _ := json.MarshalIndent(response, "", "  ")
	return textResult(string(data)), nil
}

// wizardTemplate is the starter document create_wizard_template emits.
const wizardTemplate = `apiVersion: gwiz/v1alpha1
wizard:
  name: %[1]s
  title: %[1]s
steps:
  - id: name
    kind: text
    prompt: Name
    required: true
  - id: flavor
    kind: choice
    prompt: Flavor
    items:
      - label: small
        picked: true
      - label: large
  - id: ok
    kind: confirm
    message: Proceed?
    detail: "Creating {{.name}} ({{.flavor}})"
`

// HandleTemplate implements the create_wizard_template MCP tool.
func HandleTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)
	if name == "" {
		name = "my-wizard"
	}
	return textResult(fmt.Sprintf(wizardTemplate, name)), nil
}

// countWarnings counts non-error findings.
func countWarnings(findings []*schema.ValidationError) int {
	n := 0
	for _, f := range findings {
		if f.Severity == "warning" {
			n++
		}
	}
	return n
}

// formatFindings joins the error findings into one line.
func formatFindings(findings []*schema.ValidationError) string {
	var msgs []string
	for _, f := range findings {
		if f.Severity == "error" {
			msgs = append(msgs, f.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
