package wizard

import "context"

// Prompt carries everything a step needs for one presentation. Title
// and ShowBack are computed fresh by the engine before each
// presentation and can differ between presentations of the same step.
type Prompt struct {
	// Title is the full display title, already encoding the step number
	// and total. Shown verbatim.
	Title string

	// ShowBack reports whether a back affordance should be offered,
	// i.e. whether there is an answered step to return to.
	ShowBack bool

	// Values is the shared accumulator.
	Values *Values

	// UI is the presentation backend.
	UI Prompter

	// Logger receives diagnostics. Never nil inside a run.
	Logger Logger
}

// Prompter is the presentation boundary. Each method blocks until the
// user acts, resolves to an Outcome, and releases every transient UI
// resource before returning, on every exit path. Implementations: the
// bubbletea backend in pkg/tui and the readline, scripted, and defaults
// backends in pkg/providers.
type Prompter interface {
	Text(ctx context.Context, req TextRequest) (Outcome, error)
	Select(ctx context.Context, req SelectRequest) (Outcome, error)
	Path(ctx context.Context, req PathRequest) (Outcome, error)
	Confirm(ctx context.Context, req ConfirmRequest) (Outcome, error)
}

// TextAction is an optional extra action offered on a text prompt. Run
// receives the current field text and its result replaces it. A failure
// is logged locally and leaves the field unchanged.
type TextAction struct {
	Label string
	Run   func(ctx context.Context, current string) (string, error)
}

// TextRequest presents a single-line editable field.
type TextRequest struct {
	Name        string
	Title       string
	ShowBack    bool
	Prompt      string
	Value       string // initial field text
	Placeholder string
	Secret      bool // mask the echo

	// Validate is evaluated on every edit; a non-nil error is shown to
	// the user and blocks acceptance. nil means always valid.
	Validate func(value string) error

	Action *TextAction
}

// Item is one selectable entry in a Select presentation.
type Item struct {
	Label  string
	Detail string

	// Checked marks the item pre-selected by its generator. Ignored
	// when SelectRequest.UseSelected is set.
	Checked bool
}

// SelectRequest presents a selectable list. Items carries an already
// generated list; Load, when non-nil, supplies the list asynchronously
// behind a placeholder instead. Never both.
type SelectRequest struct {
	Name     string
	Title    string
	ShowBack bool
	Prompt   string
	Multi    bool

	Items []Item

	// Load supplies the items asynchronously; the list stays disabled
	// with Placeholder text until it resolves. Reload, when non-nil,
	// serves a manual reload action and falls back to Load otherwise.
	Load        func(ctx context.Context) ([]Item, error)
	Reload      func(ctx context.Context) ([]Item, error)
	Placeholder string

	// Selected restores a previous multi-selection by label when
	// UseSelected is set; otherwise restoration falls back to the
	// items' Checked marks.
	Selected    []string
	UseSelected bool
}

// PathRequest presents a file or folder picker. Dir is the starting
// directory; empty means the backend's default.
type PathRequest struct {
	Name     string
	Title    string
	ShowBack bool
	Prompt   string
	Dir      string
	Folders  bool // pick directories instead of files
	Multi    bool // allow more than one path
}

// ConfirmRequest presents a modal confirmation. There is no back
// affordance: the affirmative action resolves to Answer{} and any other
// exit resolves to Cancel.
type ConfirmRequest struct {
	Name    string
	Title   string
	Message string
	Detail  string
	Confirm string // affirmative label; empty means "Confirm"
}
