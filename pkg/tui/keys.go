package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the key bindings shared by all prompt programs.
type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Toggle key.Binding
	Reload key.Binding
	Action key.Binding
	Done   key.Binding
	Yes    key.Binding
	No     key.Binding
	Switch key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Back: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "scroll up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "scroll down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Action: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "action"),
	),
	Done: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "done"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "decline"),
	),
	Switch: key.NewBinding(
		key.WithKeys("left", "right", "tab"),
		key.WithHelp("←→", "switch"),
	),
}

// matchKey checks if a key message matches a key.Binding.
func matchKey(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// hint renders one key/description pair for a hint bar.
func hint(k, desc string) string {
	return keyStyle.Render(k) + keyDescStyle.Render(":"+desc)
}

// backHint returns the back affordance hint, or empty when back is not
// offered for this presentation.
func backHint(showBack bool) string {
	if !showBack {
		return ""
	}
	return "  " + hint("Ctrl+B", "back")
}

// textHints renders the key hint bar for a text prompt.
func textHints(showBack bool, actionLabel string) string {
	bar := hint("Enter", "submit") + "  " + hint("Esc", "cancel")
	if actionLabel != "" {
		bar += "  " + hint("Ctrl+T", actionLabel)
	}
	return bar + backHint(showBack)
}

// selectHints renders the key hint bar for a list prompt.
func selectHints(multi, showBack, canReload bool) string {
	bar := hint("↑↓", "move")
	if multi {
		bar += "  " + hint("Space", "toggle")
	}
	bar += "  " + hint("Enter", "choose") + "  " + hint("1-9", "quick")
	if canReload {
		bar += "  " + hint("r", "reload")
	}
	return bar + "  " + hint("Esc", "cancel") + backHint(showBack)
}

// pathHints renders the key hint bar for a filesystem prompt.
func pathHints(multi, showBack bool) string {
	bar := hint("↑↓", "move") + "  " + hint("Enter", "pick") + "  " +
		hint("←→", "dir")
	if multi {
		bar += "  " + hint("Ctrl+D", "done")
	}
	return bar + "  " + hint("Esc", "cancel") + backHint(showBack)
}

// confirmHints renders the key hint bar for a confirmation modal.
func confirmHints() string {
	return hint("←→", "switch") + "  " + hint("Enter", "choose") + "  " +
		hint("y", "confirm") + "  " + hint("n", "decline") + "  " +
		hint("Esc", "cancel")
}
