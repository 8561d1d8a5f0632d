package providers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

const backToken = "<"

// ReadlineUI prompts on a plain terminal, one line at a time. It serves
// dumb terminals and piped input where the full-screen backend cannot
// run. Interrupt and EOF cancel the wizard; entering "<" navigates back
// where a back affordance is offered. Each presentation opens its own
// readline instance and closes it before returning.
type ReadlineUI struct {
	// Out receives the prompt framing. nil means os.Stdout.
	Out io.Writer
}

// NewReadlineUI constructs a line-oriented backend writing to stdout.
func NewReadlineUI() *ReadlineUI {
	return &ReadlineUI{}
}

func (u *ReadlineUI) out() io.Writer {
	if u.Out != nil {
		return u.Out
	}
	return os.Stdout
}

func (u *ReadlineUI) open(prompt string, secret bool) (*readline.Instance, error) {
	cfg := &readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "cancel",
	}
	if secret {
		cfg.EnableMask = true
		cfg.MaskRune = '*'
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("open readline: %w", err)
	}
	return rl, nil
}

func (u *ReadlineUI) Text(ctx context.Context, req wizard.TextRequest) (wizard.Outcome, error) {
	out := u.out()
	fmt.Fprintf(out, "\n%s\n", req.Title)
	if req.Prompt != "" {
		fmt.Fprintln(out, req.Prompt)
	}
	u.hints(out, req.ShowBack, req.Action)

	rl, err := u.open("> ", req.Secret)
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	value := req.Value
	for {
		line, rerr := rl.ReadlineWithDefault(value)
		if rerr == readline.ErrInterrupt || rerr == io.EOF {
			return wizard.Cancel{}, nil
		}
		if rerr != nil {
			return nil, fmt.Errorf("read answer: %w", rerr)
		}
		line = strings.TrimSpace(line)
		if req.ShowBack && line == backToken {
			return wizard.Back{}, nil
		}
		if req.Action != nil && line == "!" {
			text, aerr := req.Action.Run(ctx, value)
			if aerr != nil {
				fmt.Fprintf(out, "  %s failed: %v\n", req.Action.Label, aerr)
				continue
			}
			value = text
			continue
		}
		if req.Validate != nil {
			if verr := req.Validate(line); verr != nil {
				fmt.Fprintf(out, "  invalid: %v\n", verr)
				value = line
				continue
			}
		}
		return wizard.TextAnswer(line), nil
	}
}

func (u *ReadlineUI) Select(ctx context.Context, req wizard.SelectRequest) (wizard.Outcome, error) {
	out := u.out()
	fmt.Fprintf(out, "\n%s\n", req.Title)
	if req.Prompt != "" {
		fmt.Fprintln(out, req.Prompt)
	}

	items := req.Items
	if req.Load != nil {
		placeholder := req.Placeholder
		if placeholder == "" {
			placeholder = "Loading"
		}
		fmt.Fprintf(out, "%s...\n", placeholder)
		var err error
		items, err = req.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load items for step %q: %w", req.Name, err)
		}
	}

	rl, err := u.open("> ", false)
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	for {
		if len(items) == 0 {
			fmt.Fprintln(out, "  (no items)")
		}
		checked := restoreChecked(items, req)
		for i, it := range items {
			mark := ""
			if req.Multi {
				mark = "[ ] "
				if checked[i] {
					mark = "[x] "
				}
			}
			detail := ""
			if it.Detail != "" {
				detail = "  " + it.Detail
			}
			fmt.Fprintf(out, "  %2d. %s%s%s\n", i+1, mark, it.Label, detail)
		}
		if req.Multi {
			fmt.Fprintln(out, `(numbers select, empty line keeps the current selection)`)
		} else {
			fmt.Fprintln(out, `(enter a number)`)
		}
		if req.Reload != nil {
			fmt.Fprintln(out, `(enter "r" to reload)`)
		}
		if req.ShowBack {
			fmt.Fprintf(out, "(enter %q to go back)\n", backToken)
		}

		line, rerr := rl.Readline()
		if rerr == readline.ErrInterrupt || rerr == io.EOF {
			return wizard.Cancel{}, nil
		}
		if rerr != nil {
			return nil, fmt.Errorf("read selection: %w", rerr)
		}
		line = strings.TrimSpace(line)
		switch {
		case req.ShowBack && line == backToken:
			return wizard.Back{}, nil
		case req.Reload != nil && line == "r":
			reloaded, lerr := req.Reload(ctx)
			if lerr != nil {
				fmt.Fprintf(out, "  reload failed: %v\n", lerr)
				continue
			}
			items = reloaded
			continue
		case req.Multi && line == "":
			var labels []string
			for i, it := range items {
				if checked[i] {
					labels = append(labels, it.Label)
				}
			}
			return wizard.ListAnswer(labels), nil
		}

		indexes, perr := parseIndexes(line, len(items))
		if perr != nil {
			fmt.Fprintf(out, "  %v\n", perr)
			continue
		}
		if !req.Multi {
			if len(indexes) != 1 {
				fmt.Fprintln(out, "  enter exactly one number")
				continue
			}
			return wizard.ListAnswer([]string{items[indexes[0]].Label}), nil
		}
		labels := make([]string, len(indexes))
		for i, idx := range indexes {
			labels[i] = items[idx].Label
		}
		return wizard.ListAnswer(labels), nil
	}
}

func (u *ReadlineUI) Path(ctx context.Context, req wizard.PathRequest) (wizard.Outcome, error) {
	out := u.out()
	fmt.Fprintf(out, "\n%s\n", req.Title)
	if req.Prompt != "" {
		fmt.Fprintln(out, req.Prompt)
	}
	if req.Dir != "" {
		fmt.Fprintf(out, "(default location: %s)\n", req.Dir)
	}
	if req.Multi {
		fmt.Fprintln(out, "(one path per line, empty line finishes)")
	}
	if req.ShowBack {
		fmt.Fprintf(out, "(enter %q to go back)\n", backToken)
	}

	rl, err := u.open("path> ", false)
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	var picked []string
	for {
		line, rerr := rl.Readline()
		if rerr == readline.ErrInterrupt || rerr == io.EOF {
			return wizard.Cancel{}, nil
		}
		if rerr != nil {
			return nil, fmt.Errorf("read path: %w", rerr)
		}
		line = strings.TrimSpace(line)
		if req.ShowBack && line == backToken {
			return wizard.Back{}, nil
		}
		if line == "" {
			if req.Multi && len(picked) > 0 {
				return wizard.ListAnswer(picked), nil
			}
			fmt.Fprintln(out, "  enter a path")
			continue
		}
		abs, perr := checkPath(line, req.Folders)
		if perr != nil {
			fmt.Fprintf(out, "  %v\n", perr)
			continue
		}
		if !req.Multi {
			return wizard.ListAnswer([]string{abs}), nil
		}
		picked = append(picked, abs)
	}
}

func (u *ReadlineUI) Confirm(_ context.Context, req wizard.ConfirmRequest) (wizard.Outcome, error) {
	out := u.out()
	fmt.Fprintf(out, "\n%s\n", req.Title)
	fmt.Fprintln(out, req.Message)
	if req.Detail != "" {
		fmt.Fprintln(out, req.Detail)
	}
	label := req.Confirm
	if label == "" {
		label = "Confirm"
	}

	rl, err := u.open(fmt.Sprintf("%s? [y/N] ", label), false)
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	line, rerr := rl.Readline()
	if rerr == readline.ErrInterrupt || rerr == io.EOF {
		return wizard.Cancel{}, nil
	}
	if rerr != nil {
		return nil, fmt.Errorf("read confirmation: %w", rerr)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return wizard.Answer{}, nil
	}
	return wizard.Cancel{}, nil
}

func (u *ReadlineUI) hints(out io.Writer, showBack bool, action *wizard.TextAction) {
	if showBack {
		fmt.Fprintf(out, "(enter %q to go back)\n", backToken)
	}
	if action != nil {
		fmt.Fprintf(out, "(enter \"!\" to %s)\n", action.Label)
	}
}

// restoreChecked computes the initial selection marks: stored labels
// when the request says so, the items' own Checked marks otherwise.
func restoreChecked(items []wizard.Item, req wizard.SelectRequest) []bool {
	checked := make([]bool, len(items))
	if req.UseSelected {
		stored := make(map[string]bool, len(req.Selected))
		for _, label := range req.Selected {
			stored[label] = true
		}
		for i, it := range items {
			checked[i] = stored[it.Label]
		}
		return checked
	}
	for i, it := range items {
		checked[i] = it.Checked
	}
	return checked
}

// parseIndexes turns "1 3" or "1,3" into zero-based indexes, rejecting
// anything out of range.
func parseIndexes(line string, count int) ([]int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("enter a number between 1 and %d", count)
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > count {
			return nil, fmt.Errorf("%q is not a number between 1 and %d", f, count)
		}
		out = append(out, n-1)
	}
	return out, nil
}

// checkPath verifies the path exists and matches the requested kind,
// and resolves it to an absolute path.
func checkPath(path string, folders bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("no such path: %s", abs)
	}
	if folders && !info.IsDir() {
		return "", fmt.Errorf("not a folder: %s", abs)
	}
	if !folders && info.IsDir() {
		return "", fmt.Errorf("not a file: %s", abs)
	}
	return abs, nil
}
