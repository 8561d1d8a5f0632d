package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// UI is the full-screen Prompter backend. Each request runs one Bubble
// Tea program in the alternate screen, scoped to the request context;
// the program and every UI resource it holds are released before the
// method returns.
type UI struct {
	// Logger receives detached-work failures (item loads). Nil means
	// silent.
	Logger wizard.Logger
}

// New returns a UI with a silent logger.
func New() *UI {
	return &UI{Logger: wizard.NopLogger{}}
}

func (u *UI) logger() wizard.Logger {
	if u.Logger == nil {
		return wizard.NopLogger{}
	}
	return u.Logger
}

// Text presents a single-line editable field.
func (u *UI) Text(ctx context.Context, req wizard.TextRequest) (wizard.Outcome, error) {
	return runPrompt(ctx, newTextModel(ctx, req))
}

// Select presents a selectable list.
func (u *UI) Select(ctx context.Context, req wizard.SelectRequest) (wizard.Outcome, error) {
	// Loads run under a child context cancelled when the prompt ends.
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	return runPrompt(ctx, newSelectModel(loadCtx, req, u.logger()))
}

// Path presents a filesystem picker.
func (u *UI) Path(ctx context.Context, req wizard.PathRequest) (wizard.Outcome, error) {
	return runPrompt(ctx, newPathModel(req))
}

// Confirm presents a modal confirmation.
func (u *UI) Confirm(ctx context.Context, req wizard.ConfirmRequest) (wizard.Outcome, error) {
	return runPrompt(ctx, newConfirmModel(req))
}

// promptModel is what every prompt program resolves to.
type promptModel interface {
	tea.Model
	result() wizard.Outcome
}

// runPrompt runs one prompt program to completion in the alternate
// screen and returns its outcome. An interrupt resolves to
// cancellation; cancellation of the request context surfaces as the
// context error.
func runPrompt(ctx context.Context, m promptModel) (wizard.Outcome, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return wizard.Cancel{}, nil
		}
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	out := final.(promptModel).result()
	if out == nil {
		return wizard.Cancel{}, nil
	}
	return out, nil
}

// place centers a rendered prompt box on the terminal. Falls back to
// the bare box before the first WindowSizeMsg arrives.
func place(width, height int, box string) string {
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
