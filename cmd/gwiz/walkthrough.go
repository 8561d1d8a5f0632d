package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/ormasoftchile/gwiz/pkg/schema"
	"github.com/ormasoftchile/gwiz/pkg/tui"
	"github.com/spf13/cobra"
)

// --- walkthrough ---

var (
	walkthroughOut   string
	walkthroughPlain bool
)

var walkthroughCmd = &cobra.Command{
	Use:   "walkthrough [wizard.yaml]",
	Short: "Render a step-by-step preview of a wizard",
	Long: `Analyze a wizard definition and produce a Markdown walkthrough with
per-step detail, guard logic, and the shape of the recorded answers.

The walkthrough is generated from static analysis of the wizard YAML —
no prompting occurs. On a terminal the document is rendered with
glamour; use --plain (or a pipe) for raw Markdown, or --out to write
it to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runWalkthrough,
}

func runWalkthrough(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Validate first
	def, errs := schema.ValidateFile(filePath)
	if hasValidationErrors(errs) {
		fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n", countValidationErrors(errs))
		for _, e := range errs {
			if e.Severity != "warning" {
				fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Phase, e.Message)
			}
		}
		return fmt.Errorf("wizard validation failed")
	}

	warnings := collectValidationWarnings(errs)
	stats := analyzeWizard(def)

	// Generate the walkthrough document
	var sb strings.Builder

	writeHeader(&sb, def, filePath, stats)
	writeValidation(&sb, warnings)
	writeSteps(&sb, def)
	writeGuards(&sb, def, stats)
	writeAnswerShape(&sb, def)
	writeChecklist(&sb, stats)

	md := sb.String()

	if walkthroughOut != "" {
		if err := os.WriteFile(walkthroughOut, []byte(md), 0644); err != nil {
			return fmt.Errorf("write walkthrough: %w", err)
		}
		fmt.Printf("%s Walkthrough written: %s\n", tui.GlyphChecked, walkthroughOut)
		fmt.Printf("  %d steps (%d text, %d choice, %d loading, %d path, %d confirm)\n",
			stats.totalSteps, stats.byKind["text"], stats.byKind["choice"],
			stats.byKind["loading"], stats.byKind["path"], stats.byKind["confirm"])
		fmt.Printf("  %d guarded, %d sourced item lists\n", stats.guarded, stats.sourced)
		return nil
	}

	if !walkthroughPlain && isatty.IsTerminal(os.Stdout.Fd()) {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if rendered, rerr := r.Render(md); rerr == nil {
				fmt.Print(rendered)
				return nil
			}
		}
	}
	fmt.Print(md)
	return nil
}

// wizardStats holds counters from analysis.
type wizardStats struct {
	totalSteps int
	byKind     map[string]int
	guarded    int
	sourced    int
	secrets    int
	stores     int
}

func analyzeWizard(def *schema.Definition) *wizardStats {
	stats := &wizardStats{byKind: make(map[string]int)}
	for _, step := range def.Steps {
		stats.totalSteps++
		stats.byKind[step.Kind]++
		if step.When != "" {
			stats.guarded++
		}
		if step.Source != nil {
			stats.sourced++
		}
		if step.Secret {
			stats.secrets++
		}
		if step.Store {
			stats.stores++
		}
	}
	return stats
}

// --- Markdown generation ---

func writeHeader(sb *strings.Builder, def *schema.Definition, filePath string, stats *wizardStats) {
	sb.WriteString(fmt.Sprintf("# Walkthrough: %s\n\n", def.Title()))
	sb.WriteString(fmt.Sprintf("**Generated**: %s  \n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("**Wizard**: `%s`  \n", filePath))
	sb.WriteString(fmt.Sprintf("**API Version**: %s  \n", def.APIVersion))
	sb.WriteString("\n")

	sb.WriteString("## Overview\n\n")
	if def.Wizard.Description != "" {
		sb.WriteString(def.Wizard.Description)
		sb.WriteString("\n\n")
	}

	sb.WriteString("| Metric | Count |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total steps | %d |\n", stats.totalSteps))
	kinds := []struct {
		kind  string
		label string
	}{
		{"text", "Text steps"},
		{"choice", "Choice steps"},
		{"loading", "Loading steps"},
		{"path", "Path steps"},
		{"confirm", "Confirm steps"},
	}
	for _, k := range kinds {
		if n := stats.byKind[k.kind]; n > 0 {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", k.label, n))
		}
	}
	if stats.guarded > 0 {
		sb.WriteString(fmt.Sprintf("| Guarded steps | %d |\n", stats.guarded))
	}
	if stats.sourced > 0 {
		sb.WriteString(fmt.Sprintf("| Sourced item lists | %d |\n", stats.sourced))
	}
	sb.WriteString("\n")
}

func writeValidation(sb *strings.Builder, warnings []string) {
	sb.WriteString("## Validation\n\n")
	if len(warnings) == 0 {
		sb.WriteString("✓ Wizard is valid with no warnings.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("⚠ Wizard is valid with %d warning(s):\n\n", len(warnings)))
		for _, w := range warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		sb.WriteString("\n")
	}
}

func writeSteps(sb *strings.Builder, def *schema.Definition) {
	sb.WriteString("## Step-by-Step Walkthrough\n\n")
	for i, step := range def.Steps {
		sb.WriteString(fmt.Sprintf("### Step %d: %s [`%s`]\n\n", i+1, stepHeading(step), step.ID))
		writeStepDetail(sb, step)
	}
}

// stepHeading labels a step by its prompt, falling back to the
// confirmation message and then the id.
func stepHeading(step schema.StepDef) string {
	if step.Prompt != "" {
		return step.Prompt
	}
	if step.Message != "" {
		return step.Message
	}
	return step.ID
}

func writeStepDetail(sb *strings.Builder, step schema.StepDef) {
	sb.WriteString(fmt.Sprintf("**Kind**: `%s`  \n", step.Kind))
	if step.When != "" {
		sb.WriteString(fmt.Sprintf("**Shown when**: `%s`  \n", step.When))
	}
	if step.Default != "" {
		sb.WriteString(fmt.Sprintf("**Default**: `%s`  \n", step.Default))
	}
	if step.Placeholder != "" {
		sb.WriteString(fmt.Sprintf("**Placeholder**: %s  \n", step.Placeholder))
	}
	if step.Pattern != "" {
		sb.WriteString(fmt.Sprintf("**Pattern**: `%s`  \n", step.Pattern))
	}
	if step.Required {
		sb.WriteString("**Required**: yes  \n")
	}
	if step.Secret {
		sb.WriteString("**Secret**: input is masked  \n")
	}
	if step.Multi {
		sb.WriteString("**Selection**: multiple  \n")
	}
	if step.Kind == "path" {
		target := "a file"
		if step.Folders {
			target = "a folder"
		}
		sb.WriteString(fmt.Sprintf("**Picks**: %s  \n", target))
	}
	sb.WriteString("\n")

	// Inline items
	if len(step.Items) > 0 {
		sb.WriteString("| Label | Detail | Picked |\n")
		sb.WriteString("|-------|--------|--------|\n")
		for _, it := range step.Items {
			detail := runewidth.Truncate(it.Detail, 60, "…")
			if detail == "" {
				detail = "—"
			}
			picked := ""
			if it.Picked {
				picked = "✓"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", it.Label, detail, picked))
		}
		sb.WriteString("\n")
	}

	// Runtime item source
	if step.Source != nil {
		if step.Source.Command != "" {
			sb.WriteString("**Items from command**:\n```\n")
			sb.WriteString(step.Source.Command)
			sb.WriteString("\n```\n\n")
		}
		if step.Source.URL != "" {
			sb.WriteString(fmt.Sprintf("**Items from URL**: `%s`\n\n", step.Source.URL))
		}
	}

	// Confirmation
	if step.Kind == "confirm" {
		sb.WriteString(fmt.Sprintf("**Message**: %s  \n", step.Message))
		if step.Detail != "" {
			sb.WriteString(fmt.Sprintf("**Detail template**: `%s`  \n", step.Detail))
		}
		label := step.Confirm
		if label == "" {
			label = "Confirm"
		}
		sb.WriteString(fmt.Sprintf("**Affirmative label**: %s  \n", label))
		if step.Store {
			sb.WriteString("**Records**: `true` when confirmed  \n")
		} else {
			sb.WriteString("**Records**: nothing; declining cancels the wizard  \n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
}

func writeGuards(sb *strings.Builder, def *schema.Definition, stats *wizardStats) {
	if stats.guarded == 0 {
		return
	}

	sb.WriteString("## Guard Analysis\n\n")
	sb.WriteString("| Step | Condition | Reads |\n")
	sb.WriteString("|------|-----------|-------|\n")
	for _, step := range def.Steps {
		if step.When == "" {
			continue
		}
		reads := guardReads(step, def)
		display := "—"
		if len(reads) > 0 {
			display = "`" + strings.Join(reads, "`, `") + "`"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | `%s` | %s |\n", step.ID, step.When, display))
	}
	sb.WriteString("\n")
	sb.WriteString("A guard that evaluates false skips its step; skipped steps leave no answer and renumber the steps that follow.\n\n")
}

// guardReads lists the step ids a guard expression mentions.
func guardReads(step schema.StepDef, def *schema.Definition) []string {
	var reads []string
	for _, other := range def.Steps {
		if other.ID == step.ID {
			continue
		}
		if strings.Contains(step.When, other.ID) {
			reads = append(reads, other.ID)
		}
	}
	return reads
}

func writeAnswerShape(sb *strings.Builder, def *schema.Definition) {
	sb.WriteString("## Recorded Answers\n\n")
	sb.WriteString("| Step | Records |\n")
	sb.WriteString("|------|---------|\n")
	for _, step := range def.Steps {
		sb.WriteString(fmt.Sprintf("| `%s` | %s |\n", step.ID, answerShape(step)))
	}
	sb.WriteString("\n")
}

// answerShape describes what a completed step stores in the accumulator.
func answerShape(step schema.StepDef) string {
	switch step.Kind {
	case "text":
		if step.Secret {
			return "one string (secret)"
		}
		return "one string"
	case "choice", "loading":
		if step.Multi {
			return "the checked labels"
		}
		return "one label"
	case "path":
		if step.Multi {
			return "the picked absolute paths"
		}
		return "one absolute path"
	case "confirm":
		if step.Store {
			return "`true` on confirmation"
		}
		return "nothing"
	}
	return "—"
}

func writeChecklist(sb *strings.Builder, stats *wizardStats) {
	sb.WriteString("## Review Checklist\n\n")
	sb.WriteString("- [ ] Prompts read naturally in step order\n")
	sb.WriteString("- [ ] Guards reference only steps that come earlier\n")
	sb.WriteString("- [ ] Defaults are safe to accept unattended\n")
	if stats.sourced > 0 {
		sb.WriteString("- [ ] Sourced item lists have a placeholder for the loading state\n")
	}
	if stats.secrets > 0 {
		sb.WriteString("- [ ] Secret answers never feed a confirm detail template\n")
	}
	if stats.byKind["confirm"] > 0 {
		sb.WriteString("- [ ] The confirmation detail shows every answer that matters\n")
	}
	sb.WriteString("\n")
}

// --- helpers ---

func collectValidationWarnings(errs []*schema.ValidationError) []string {
	var warnings []string
	for _, e := range errs {
		if e.Severity == "warning" {
			warnings = append(warnings, fmt.Sprintf("[%s] %s", e.Phase, e.Message))
		}
	}
	return warnings
}

func init() {
	walkthroughCmd.Flags().StringVar(&walkthroughOut, "out", "", "Write raw Markdown to this file instead of rendering")
	walkthroughCmd.Flags().BoolVar(&walkthroughPlain, "plain", false, "Print raw Markdown even on a terminal")
	rootCmd.AddCommand(walkthroughCmd)
}
