// Package providers implements wizard.Prompter backends that do not
// need a full-screen terminal: scripted answers for non-interactive
// runs, plain line-oriented prompts for dumb terminals and pipes, and
// an accept-the-defaults mode.
package providers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// ScriptUI answers every prompt from a pre-loaded map keyed by step
// name. A missing answer or a failed validation is an error, so a bad
// script fails fast instead of silently mis-answering. Used for
// non-interactive runs, replayed wizards, and the MCP surface.
type ScriptUI struct {
	// Answers maps step name to the scripted answer sequence.
	Answers map[string][]string
}

// NewScriptUI creates a scripted backend from the given answers.
func NewScriptUI(answers map[string][]string) *ScriptUI {
	return &ScriptUI{Answers: answers}
}

func (s *ScriptUI) answer(name string) ([]string, error) {
	vals, ok := s.Answers[name]
	if !ok {
		return nil, fmt.Errorf("script has no answer for step %q", name)
	}
	return vals, nil
}

func (s *ScriptUI) Text(_ context.Context, req wizard.TextRequest) (wizard.Outcome, error) {
	vals, err := s.answer(req.Name)
	if err != nil {
		return nil, err
	}
	value := ""
	if len(vals) > 0 {
		value = vals[0]
	}
	if req.Validate != nil {
		if verr := req.Validate(value); verr != nil {
			return nil, fmt.Errorf("scripted answer for step %q is invalid: %w", req.Name, verr)
		}
	}
	return wizard.TextAnswer(value), nil
}

func (s *ScriptUI) Select(ctx context.Context, req wizard.SelectRequest) (wizard.Outcome, error) {
	vals, err := s.answer(req.Name)
	if err != nil {
		return nil, err
	}
	items := req.Items
	if req.Load != nil {
		// Run the loader so scripted runs exercise the same item source
		// an interactive run would.
		items, err = req.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load items for step %q: %w", req.Name, err)
		}
	}
	labels := make(map[string]bool, len(items))
	for _, it := range items {
		labels[it.Label] = true
	}
	for _, v := range vals {
		if !labels[v] {
			return nil, fmt.Errorf("scripted answer %q for step %q matches no item", v, req.Name)
		}
	}
	if !req.Multi && len(vals) != 1 {
		return nil, fmt.Errorf("step %q takes exactly one answer, script has %d", req.Name, len(vals))
	}
	return wizard.ListAnswer(vals), nil
}

func (s *ScriptUI) Path(_ context.Context, req wizard.PathRequest) (wizard.Outcome, error) {
	vals, err := s.answer(req.Name)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("script has an empty path answer for step %q", req.Name)
	}
	if !req.Multi && len(vals) != 1 {
		return nil, fmt.Errorf("step %q takes exactly one path, script has %d", req.Name, len(vals))
	}
	abs := make([]string, len(vals))
	for i, p := range vals {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve scripted path %q: %w", p, err)
		}
		abs[i] = a
	}
	return wizard.ListAnswer(abs), nil
}

func (s *ScriptUI) Confirm(_ context.Context, req wizard.ConfirmRequest) (wizard.Outcome, error) {
	vals, err := s.answer(req.Name)
	if err != nil {
		return nil, err
	}
	value := ""
	if len(vals) > 0 {
		value = strings.ToLower(strings.TrimSpace(vals[0]))
	}
	switch value {
	case "true", "yes", "y":
		return wizard.Answer{}, nil
	}
	return wizard.Cancel{}, nil
}
