package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// Loader turns a Source into the item-producing closure the select
// backends call at presentation time.
func (s *Source) Loader(client *resty.Client) func(context.Context) ([]wizard.Item, error) {
	if s.Command != "" {
		command := s.Command
		return func(ctx context.Context) ([]wizard.Item, error) {
			return commandItems(ctx, command)
		}
	}
	target := s.URL
	return func(ctx context.Context) ([]wizard.Item, error) {
		return urlItems(ctx, client, target)
	}
}

// commandItems runs the source command through the shell and parses its
// output.
func commandItems(ctx context.Context, command string) ([]wizard.Item, error) {
	out, err := exec.CommandContext(ctx, "sh", "-c", command).Output()
	if err != nil {
		return nil, fmt.Errorf("item source %q: %w", command, err)
	}
	return parseItems(out)
}

// urlItems fetches the source URL and parses the response body.
func urlItems(ctx context.Context, client *resty.Client, target string) ([]wizard.Item, error) {
	resp, err := client.R().SetContext(ctx).Get(target)
	if err != nil {
		return nil, fmt.Errorf("item source %s: %w", target, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("item source %s: %s", target, resp.Status())
	}
	return parseItems(resp.Body())
}

// parseItems accepts a JSON array of strings or of {label, detail,
// picked} objects, or one plain-text label per line.
func parseItems(data []byte) ([]wizard.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parse items: %w", err)
		}
		items := make([]wizard.Item, 0, len(raw))
		for i, entry := range raw {
			var label string
			if err := json.Unmarshal(entry, &label); err == nil {
				items = append(items, wizard.Item{Label: label})
				continue
			}
			var obj struct {
				Label  string `json:"label"`
				Detail string `json:"detail"`
				Picked bool   `json:"picked"`
			}
			if err := json.Unmarshal(entry, &obj); err != nil || obj.Label == "" {
				return nil, fmt.Errorf("parse item %d: need a string or an object with a label", i)
			}
			items = append(items, wizard.Item{Label: obj.Label, Detail: obj.Detail, Checked: obj.Picked})
		}
		return items, nil
	}
	var items []wizard.Item
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, wizard.Item{Label: line})
	}
	return items, nil
}
