package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// --- Confirm prompt model ---

// confirmModel renders a modal confirmation with two buttons. Only the
// affirmative button resolves to an answer; every other exit declines
// and cancels the wizard.
type confirmModel struct {
	req wizard.ConfirmRequest

	yes bool

	outcome wizard.Outcome

	width  int
	height int
}

func newConfirmModel(req wizard.ConfirmRequest) confirmModel {
	return confirmModel{req: req, yes: true}
}

func (m confirmModel) result() wizard.Outcome { return m.outcome }

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case matchKey(msg, keys.Cancel), matchKey(msg, keys.No):
			m.outcome = wizard.Cancel{}
			return m, tea.Quit

		case matchKey(msg, keys.Yes):
			m.outcome = wizard.Answer{}
			return m, tea.Quit

		case matchKey(msg, keys.Switch):
			m.yes = !m.yes

		case matchKey(msg, keys.Submit):
			if m.yes {
				m.outcome = wizard.Answer{}
			} else {
				m.outcome = wizard.Cancel{}
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the confirmation modal.
func (m confirmModel) View() string {
	var b strings.Builder

	b.WriteString(overlayTitle.Render(m.req.Title))
	b.WriteString("\n\n")

	b.WriteString(messageStyle.Render(m.req.Message))
	b.WriteString("\n")

	if m.req.Detail != "" {
		b.WriteString("\n" + renderMarkdown(m.req.Detail) + "\n")
	}

	label := m.req.Confirm
	if label == "" {
		label = "Confirm"
	}

	var confirmBtn, declineBtn string
	if m.yes {
		confirmBtn = buttonActive.Render(label)
		declineBtn = buttonInactive.Render("Cancel")
	} else {
		confirmBtn = buttonInactive.Render(label)
		declineBtn = buttonActive.Render("Cancel")
	}

	b.WriteString("\n" + confirmBtn + "  " + declineBtn + "\n")
	b.WriteString("\n" + confirmHints())

	box := overlayBorder.Render(b.String())
	return place(m.width, m.height, box)
}
