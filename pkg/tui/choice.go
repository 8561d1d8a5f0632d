package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// --- Messages ---

// itemsLoadedMsg delivers the result of a detached item load.
type itemsLoadedMsg struct {
	items []wizard.Item
	err   error
}

// --- Select prompt model ---

// selectModel renders a selectable list. When the request carries a
// loader the list starts disabled behind a spinner and placeholder
// text; the loaded items arrive as a message applied in one update. A
// failed load shows a visible error state and keeps r bound to retry.
type selectModel struct {
	ctx    context.Context
	req    wizard.SelectRequest
	logger wizard.Logger

	items   []wizard.Item
	checked []bool

	loading bool
	loadErr string
	spinner spinner.Model

	cursor    int
	scrollOff int

	outcome wizard.Outcome

	width  int
	height int
}

func newSelectModel(ctx context.Context, req wizard.SelectRequest, logger wizard.Logger) selectModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := selectModel{ctx: ctx, req: req, logger: logger, spinner: sp}
	if req.Load != nil {
		m.loading = true
	} else {
		m.setItems(req.Items)
	}
	return m
}

func (m selectModel) result() wizard.Outcome { return m.outcome }

// setItems installs a list and restores its selection state, either
// from the stored labels or from the items' own checked marks.
func (m *selectModel) setItems(items []wizard.Item) {
	m.items = items
	m.checked = make([]bool, len(items))
	if m.req.UseSelected {
		stored := make(map[string]bool, len(m.req.Selected))
		for _, label := range m.req.Selected {
			stored[label] = true
		}
		for i, it := range items {
			m.checked[i] = stored[it.Label]
		}
	} else {
		for i, it := range items {
			m.checked[i] = it.Checked
		}
	}
	m.cursor = 0
	m.scrollOff = 0
	if !m.req.Multi {
		for i, c := range m.checked {
			if c {
				m.cursor = i
				break
			}
		}
	}
}

// loadCmd returns a command that runs the loader off the update loop.
func (m selectModel) loadCmd(load func(context.Context) ([]wizard.Item, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		items, err := load(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m selectModel) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spinner.Tick, m.loadCmd(m.req.Load))
	}
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			m.logger.Errorf("load items for step %q: %v", m.req.Name, msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.setItems(msg.items)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes key presses.
func (m selectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	case matchKey(msg, keys.Reload):
		if m.req.Load == nil || m.loading {
			return m, nil
		}
		reload := m.req.Reload
		if reload == nil {
			reload = m.req.Load
		}
		m.loading = true
		m.loadErr = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(reload))
	}

	if m.loading {
		return m, nil
	}

	maxIdx := len(m.items) - 1

	switch {
	case matchKey(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case matchKey(msg, keys.Down):
		if m.cursor < maxIdx {
			m.cursor++
		}

	case matchKey(msg, keys.PgUp):
		if m.scrollOff > 0 {
			m.scrollOff -= 5
			if m.scrollOff < 0 {
				m.scrollOff = 0
			}
		}

	case matchKey(msg, keys.PgDown):
		m.scrollOff += 5

	case matchKey(msg, keys.Toggle):
		if m.req.Multi && maxIdx >= 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}

	case matchKey(msg, keys.Submit):
		if maxIdx < 0 {
			return m, nil
		}
		m.outcome = m.answer()
		return m, tea.Quit

	default:
		if idx, ok := quickIndex(msg.String(), len(m.items)); ok {
			m.cursor = idx
			if m.req.Multi {
				m.checked[idx] = !m.checked[idx]
			} else {
				m.outcome = m.answer()
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// quickIndex maps a 1-9 digit key to a list index.
func quickIndex(s string, count int) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	idx := int(s[0] - '1')
	if idx >= count {
		return 0, false
	}
	return idx, true
}

// answer resolves the current selection state to an outcome: the
// checked labels in multi mode, the cursor item otherwise.
func (m selectModel) answer() wizard.Outcome {
	if m.req.Multi {
		var labels []string
		for i, it := range m.items {
			if m.checked[i] {
				labels = append(labels, it.Label)
			}
		}
		return wizard.ListAnswer(labels)
	}
	return wizard.TextAnswer(m.items[m.cursor].Label)
}

// View renders the list overlay.
func (m selectModel) View() string {
	contentW := m.width - 4
	if contentW < 50 {
		contentW = 50
	}

	var b strings.Builder

	b.WriteString(overlayTitle.Render(m.req.Title))
	b.WriteString("\n\n")

	if m.req.Prompt != "" {
		b.WriteString(promptStyle.Render(m.req.Prompt))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		text := m.req.Placeholder
		if text == "" {
			text = "Loading..."
		}
		b.WriteString(m.spinner.View() + " " + placeholderStyle.Render(text))
		b.WriteString("\n")

	case m.loadErr != "":
		b.WriteString(errorStyle.Render(GlyphError + " " + m.loadErr))
		b.WriteString("\n\n")
		b.WriteString(keyDescStyle.Render("press r to retry"))
		b.WriteString("\n")

	case len(m.items) == 0:
		b.WriteString(placeholderStyle.Render("(no items)"))
		b.WriteString("\n")

	default:
		for i, it := range m.items {
			b.WriteString(m.renderItem(i, it, contentW-4))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(selectHints(m.req.Multi, m.req.ShowBack, m.req.Load != nil))

	content := b.String()

	// Scroll support for tall content
	maxH := m.height - 6
	lines := strings.Split(content, "\n")
	if m.height > 0 && len(lines) > maxH {
		scroll := m.scrollOff
		if scroll > len(lines)-maxH {
			scroll = len(lines) - maxH
		}
		lines = lines[scroll:]
		if len(lines) > maxH {
			lines = lines[:maxH]
		}
		content = strings.Join(lines, "\n")
	}

	box := overlayBorder.Width(contentW).Render(content)
	return place(m.width, m.height, box)
}

func (m selectModel) renderItem(idx int, it wizard.Item, width int) string {
	prefix := "  "
	if idx == m.cursor {
		prefix = itemCurrent.Render("> ")
	}

	num := fmt.Sprintf("%d.", idx+1)
	line := fmt.Sprintf("%s%s ", prefix, keyStyle.Render(num))

	// Display width of the plain parts, kept alongside the styled string
	// because ANSI sequences would skew measurement.
	used := 2 + runewidth.StringWidth(num) + 1

	if m.req.Multi {
		used += 4
		if m.checked[idx] {
			line += checkboxChecked.Render("[x] ")
		} else {
			line += checkboxUnchecked.Render("[ ] ")
		}
	}

	line += it.Label
	used += runewidth.StringWidth(it.Label)

	if it.Detail != "" {
		if room := width - used - 1; room > 3 {
			line += " " + itemDetail.Render(runewidth.Truncate("— "+it.Detail, room, "…"))
		}
	}

	if idx == m.cursor {
		return itemCurrent.Render(line)
	}
	return line
}
