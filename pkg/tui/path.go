package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// --- Path prompt model ---

// pathModel renders a filesystem picker rooted at the request
// directory. Single mode resolves on the first pick; multi mode
// accumulates picks until Ctrl+D submits them.
type pathModel struct {
	req wizard.PathRequest

	fp      filepicker.Model
	picked  []string
	errText string

	outcome wizard.Outcome

	width  int
	height int
}

func newPathModel(req wizard.PathRequest) pathModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir(req.Dir)
	fp.DirAllowed = req.Folders
	fp.FileAllowed = !req.Folders
	fp.AutoHeight = false
	fp.Height = 12
	fp.Cursor = GlyphCursor
	// Esc cancels the prompt, so it cannot double as the picker's
	// up-directory key.
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "back"),
	)
	return pathModel{req: req, fp: fp}
}

func (m pathModel) result() wizard.Outcome { return m.outcome }

// startDir resolves the picker's starting directory. A file path
// starts in its parent; anything unusable falls back to the working
// directory.
func startDir(dir string) string {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil {
			if info.IsDir() {
				return dir
			}
			return filepath.Dir(dir)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m pathModel) Init() tea.Cmd {
	return m.fp.Init()
}

func (m pathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 12
		if h < 5 {
			h = 5
		}
		m.fp.Height = h
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

		case matchKey(msg, keys.Done):
			if !m.req.Multi {
				return m, nil
			}
			m.outcome = wizard.ListAnswer(m.picked)
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.errText = ""
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if m.req.Multi {
			m.addPick(path)
		} else {
			m.outcome = wizard.TextAnswer(path)
			return m, tea.Quit
		}
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.errText = fmt.Sprintf("cannot pick %s", filepath.Base(path))
	}

	return m, cmd
}

// addPick appends a path once, keeping pick order.
func (m *pathModel) addPick(path string) {
	for _, p := range m.picked {
		if p == path {
			return
		}
	}
	m.picked = append(m.picked, path)
}

// View renders the picker overlay.
func (m pathModel) View() string {
	var b strings.Builder

	b.WriteString(overlayTitle.Render(m.req.Title))
	b.WriteString("\n\n")

	if m.req.Prompt != "" {
		b.WriteString(promptStyle.Render(m.req.Prompt))
		b.WriteString("\n\n")
	}

	b.WriteString(keyDescStyle.Render(m.fp.CurrentDirectory))
	b.WriteString("\n")
	b.WriteString(m.fp.View())

	if m.req.Multi && len(m.picked) > 0 {
		b.WriteString("\n")
		for _, p := range m.picked {
			b.WriteString(checkboxChecked.Render(GlyphPicked+" ") + p + "\n")
		}
	}

	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(GlyphError+" "+m.errText) + "\n")
	}

	b.WriteString("\n" + pathHints(m.req.Multi, m.req.ShowBack))

	box := overlayBorder.Render(b.String())
	return place(m.width, m.height, box)
}
