package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// --- Text prompt model ---

// textModel renders a single-line editable field with live validation
// and an optional extra action bound to Ctrl+T. The validator runs on
// every edit; a failing value is shown inline and blocks submission.
type textModel struct {
	ctx context.Context
	req wizard.TextRequest

	input   textinput.Model
	errText string
	outcome wizard.Outcome

	width  int
	height int
}

func newTextModel(ctx context.Context, req wizard.TextRequest) textModel {
	ti := textinput.New()
	ti.Placeholder = req.Placeholder
	ti.CharLimit = 1024
	ti.Width = 60
	ti.SetValue(req.Value)
	if req.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	m := textModel{ctx: ctx, req: req, input: ti}
	m.validate()
	return m
}

func (m textModel) result() wizard.Outcome { return m.outcome }

// validate refreshes the inline error from the request validator.
func (m *textModel) validate() {
	m.errText = ""
	if m.req.Validate == nil {
		return
	}
	if err := m.req.Validate(m.input.Value()); err != nil {
		m.errText = err.Error()
	}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case matchKey(msg, keys.Cancel):
			m.outcome = wizard.Cancel{}
			return m, tea.Quit

		case matchKey(msg, keys.Back):
			if !m.req.ShowBack {
				return m, nil
			}
			m.outcome = wizard.Back{}
			return m, tea.Quit

		case matchKey(msg, keys.Action):
			if m.req.Action == nil {
				return m, nil
			}
			next, err := m.req.Action.Run(m.ctx, m.input.Value())
			if err != nil {
				m.errText = err.Error()
				return m, nil
			}
			m.input.SetValue(next)
			m.input.CursorEnd()
			m.validate()
			return m, nil

		case matchKey(msg, keys.Submit):
			m.validate()
			if m.errText != "" {
				return m, nil
			}
			m.outcome = wizard.TextAnswer(m.input.Value())
			return m, tea.Quit
		}

		// Any other key edits the field.
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.validate()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	var b strings.Builder

	b.WriteString(overlayTitle.Render(m.req.Title))
	b.WriteString("\n\n")

	if m.req.Prompt != "" {
		b.WriteString(promptStyle.Render(m.req.Prompt))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(GlyphError+" "+m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n" + textHints(m.req.ShowBack, actionLabel(m.req.Action)))

	box := overlayBorder.Render(b.String())
	return place(m.width, m.height, box)
}

// actionLabel returns the hint label for the extra action, or empty
// when the request carries none.
func actionLabel(a *wizard.TextAction) string {
	if a == nil {
		return ""
	}
	if a.Label == "" {
		return "action"
	}
	return a.Label
}
