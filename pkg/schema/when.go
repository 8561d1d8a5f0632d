package schema

import (
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// identLike matches step ids that can double as bare expression
// identifiers. Other ids are still reachable through value() and has().
var identLike = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// whenHelpers are the names bound to functions in every precondition
// environment. Step ids must not collide with them.
var whenHelpers = []string{"has", "value", "values", "count"}

// When is a compiled step precondition.
type When struct {
	src  string
	ids  []string
	prog *vm.Program
}

// CompileWhen compiles a precondition expression against the step ids
// of a definition. Identifier-like ids are bound to their first answer,
// "" while unanswered; has, value, values, and count reach any id.
func CompileWhen(src string, ids []string) (*When, error) {
	prog, err := expr.Compile(src, expr.Env(whenEnv(ids, nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile when %q: %w", src, err)
	}
	return &When{src: src, ids: ids, prog: prog}, nil
}

// Eval evaluates the precondition against the accumulator. A failed
// evaluation disables the step: it is logged, never fatal.
func (w *When) Eval(v *wizard.Values, logger wizard.Logger) bool {
	if logger == nil {
		logger = wizard.NopLogger{}
	}
	out, err := expr.Run(w.prog, whenEnv(w.ids, v))
	if err != nil {
		logger.Errorf("eval when %q: %v", w.src, err)
		return false
	}
	b, ok := out.(bool)
	if !ok {
		logger.Errorf("when %q returned %T, want bool", w.src, out)
		return false
	}
	return b
}

// whenEnv builds the evaluation environment. A nil accumulator gives
// the compile-time shape; a live one carries the current answers.
func whenEnv(ids []string, v *wizard.Values) map[string]any {
	env := make(map[string]any, len(ids)+len(whenHelpers))
	for _, id := range ids {
		if identLike.MatchString(id) {
			env[id] = ""
		}
	}
	if v != nil {
		for _, name := range v.Names() {
			if identLike.MatchString(name) {
				env[name] = v.First(name)
			}
		}
	}
	env["has"] = func(name string) bool {
		return v != nil && v.Has(name)
	}
	env["value"] = func(name string) string {
		if v == nil {
			return ""
		}
		return v.First(name)
	}
	env["values"] = func(name string) []string {
		if v == nil {
			return []string{}
		}
		return v.Get(name)
	}
	env["count"] = func(name string) int {
		if v == nil {
			return 0
		}
		return len(v.Get(name))
	}
	return env
}
