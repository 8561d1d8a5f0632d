package providers

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a YAML answers file mapping step names to scripted
// answers and normalizes it into the form ScriptUI takes.
func LoadAnswers(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse answers file %s: %w", path, err)
	}
	answers, err := NormalizeAnswers(raw)
	if err != nil {
		return nil, fmt.Errorf("answers file %s: %w", path, err)
	}
	return answers, nil
}

// NormalizeAnswers converts a decoded YAML or JSON answers object into
// string sequences. Scalars become a single value, sequences keep their
// order, booleans and numbers render the way they were written.
func NormalizeAnswers(raw map[string]any) (map[string][]string, error) {
	out := make(map[string][]string, len(raw))
	for name, v := range raw {
		vals, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", name, err)
		}
		out[name] = vals
	}
	return out, nil
}

func normalizeValue(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{t}, nil
	case bool:
		return []string{strconv.FormatBool(t)}, nil
	case int:
		return []string{strconv.Itoa(t)}, nil
	case int64:
		return []string{strconv.FormatInt(t, 10)}, nil
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			vals, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			if len(vals) != 1 {
				return nil, fmt.Errorf("nested sequences are not allowed")
			}
			out = append(out, vals[0])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}
