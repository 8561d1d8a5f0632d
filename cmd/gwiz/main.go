package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/ormasoftchile/gwiz/pkg/logging"
	"github.com/ormasoftchile/gwiz/pkg/providers"
	"github.com/ormasoftchile/gwiz/pkg/schema"
	"github.com/ormasoftchile/gwiz/pkg/steps"
	"github.com/ormasoftchile/gwiz/pkg/trace"
	"github.com/ormasoftchile/gwiz/pkg/tui"
	"github.com/ormasoftchile/gwiz/pkg/wizard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	_ = godotenv.Load() // load .env file if present (gitignored)
	initConfig()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig wires viper: defaults come from $HOME/.config/gwiz/config.yaml
// and GWIZ_* environment variables. Flags still win because commands
// consult viper only for flags left unset.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "gwiz"))
	}
	viper.SetEnvPrefix("GWIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // no config file is fine
}

var rootCmd = &cobra.Command{
	Use:   "gwiz",
	Short: "Declarative multi-step input wizards",
	Long:  "gwiz — declarative multi-step input wizards for the terminal, runnable interactively, scripted, or through an agent.",
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [wizard.yaml]",
	Short: "Validate a wizard YAML file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	def, errs := schema.ValidateFile(filePath)
	if len(errs) > 0 {
		// Separate warnings from errors
		var errors []*schema.ValidationError
		var warnings []*schema.ValidationError
		for _, e := range errs {
			if e.Severity == "warning" {
				warnings = append(warnings, e)
			} else {
				errors = append(errors, e)
			}
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  %s [%s] %s\n", tui.GlyphWarning, w.Phase, w.Message)
			if w.Path != "" {
				fmt.Fprintf(os.Stderr, "    at: %s\n", w.Path)
			}
		}
		if len(errors) > 0 {
			fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(errors))
			for i, e := range errors {
				fmt.Fprintf(os.Stderr, "  %s %d. [%s] %s\n", tui.GlyphError, i+1, e.Phase, e.Message)
				if e.Path != "" {
					fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
				}
			}
			return fmt.Errorf("validation failed with %d error(s)", len(errors))
		}
	}
	fmt.Printf("%s %s is valid (%d steps)\n", tui.GlyphChecked, def.Wizard.Name, len(def.Steps))
	return nil
}

// --- run ---

var (
	runUI      string
	runAnswers string
	runSets    []string
	runContext string
	runOut     string
	runTrace   string
	runVerbose bool
	runLogFile string
)

var runCmd = &cobra.Command{
	Use:   "run [wizard.yaml]",
	Short: "Run a wizard",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Validate first
	def, errs := schema.ValidateFile(filePath)
	if hasValidationErrors(errs) {
		fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n", countValidationErrors(errs))
		for _, e := range errs {
			if e.Severity != "warning" {
				fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Phase, e.Message)
			}
		}
		return fmt.Errorf("wizard validation failed")
	}
	printValidationWarnings(errs)

	// Resolve the UI mode: flag, then --answers implication, then config,
	// then terminal detection.
	mode := runUI
	if mode == "" && runAnswers != "" {
		mode = "script"
	}
	if mode == "" {
		mode = viper.GetString("ui")
	}
	if mode == "" {
		mode = autoUI()
	}

	// Stderr logging under the TUI would tear the alternate screen, so
	// --verbose needs --log-file there.
	var logger wizard.Logger = wizard.NopLogger{}
	if runLogFile != "" {
		f, err := os.OpenFile(runLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, runVerbose)
	} else if runVerbose && mode != "tui" {
		logger = logging.New(os.Stderr, true)
	}

	var answers map[string][]string
	if runAnswers != "" {
		var err error
		answers, err = providers.LoadAnswers(runAnswers)
		if err != nil {
			return err
		}
	}

	ui, err := buildUI(mode, answers, logger)
	if err != nil {
		return err
	}

	built, err := schema.Build(def, schema.BuildOptions{Logger: logger})
	if err != nil {
		return fmt.Errorf("build wizard: %w", err)
	}

	initial := wizard.NewValues()
	initial.Context = runContext
	for _, kv := range runSets {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		initial.Set(parts[0], parts[1])
	}

	var sink wizard.Sink
	tracePath := runTrace
	if tracePath == "" {
		if dir := viper.GetString("trace-dir"); dir != "" {
			tracePath = filepath.Join(dir, fmt.Sprintf("%s-%s.jsonl", def.Wizard.Name, time.Now().Format("20060102-150405")))
		}
	}
	if tracePath != "" {
		tw, terr := trace.NewWriter(tracePath)
		if terr != nil {
			return terr
		}
		defer tw.Close()
		fmt.Printf("Run ID: %s\n", tw.Run())
		sink = tw
	}

	vals, err := wizard.Run(context.Background(), def.Title(), built, wizard.Config{
		UI:      ui,
		Logger:  logger,
		Sink:    sink,
		Initial: initial,
	})
	if errors.Is(err, wizard.ErrCancelled) {
		return fmt.Errorf("wizard cancelled")
	}
	if err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}

	if runOut != "" {
		return writeAnswers(runOut, vals)
	}
	fmt.Printf("%s %s completed (%d answer(s))\n", tui.GlyphChecked, def.Title(), vals.Len())
	for _, name := range vals.Names() {
		fmt.Printf("  %s: %s\n", name, strings.Join(vals.Get(name), ", "))
	}
	return nil
}

// writeAnswers marshals the accumulator as YAML, reusable as an
// --answers file. "-" writes to stdout.
func writeAnswers(path string, vals *wizard.Values) error {
	data, err := yaml.Marshal(vals.Map())
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	if path == "-" {
		_, werr := os.Stdout.Write(data)
		return werr
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write answers: %w", err)
	}
	fmt.Printf("Answers written: %s\n", path)
	return nil
}

// --- schema export ---

var schemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the wizard JSON Schema",
	RunE:  runSchemaExport,
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	data, err := schema.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	if schemaOut != "" {
		if err := os.WriteFile(schemaOut, data, 0644); err != nil {
			return fmt.Errorf("write schema: %w", err)
		}
		fmt.Printf("%s Schema written: %s\n", tui.GlyphChecked, schemaOut)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

// --- demo ---

var demoUI string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a built-in two-step demo wizard",
	Long: `Run a small wizard assembled in code rather than from YAML: a text
step asking for a name and a confirmation step. Useful for trying the
UI backends and as a reference for programmatic construction.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	mode := demoUI
	if mode == "" {
		mode = autoUI()
	}
	ui, err := buildUI(mode, nil, wizard.NopLogger{})
	if err != nil {
		return err
	}

	demo := []wizard.Step{
		&steps.Text{
			Base:   steps.Base{ID: "user"},
			Prompt: "What is your name",
			Validate: func(value string) error {
				if strings.TrimSpace(value) == "" {
					return fmt.Errorf("enter a name")
				}
				return nil
			},
		},
		&steps.Confirm{
			Base:    steps.Base{ID: "ok"},
			Message: "Ready to finish?",
			Detail: func(v *wizard.Values) string {
				return fmt.Sprintf("Hello, %s.", v.First("user"))
			},
		},
	}

	vals, err := wizard.Run(context.Background(), "Demo", demo, wizard.Config{UI: ui})
	if errors.Is(err, wizard.ErrCancelled) {
		return fmt.Errorf("wizard cancelled")
	}
	if err != nil {
		return fmt.Errorf("run demo: %w", err)
	}
	for _, name := range vals.Names() {
		fmt.Printf("  %s: %s\n", name, strings.Join(vals.Get(name), ", "))
	}
	return nil
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gwiz %s (build: %s)\n", version, commit)
	},
}

func init() {
	// run flags
	runCmd.Flags().StringVar(&runUI, "ui", "", "UI backend: tui, plain, defaults, or script (default: tui on a terminal, plain otherwise)")
	runCmd.Flags().StringVar(&runAnswers, "answers", "", "YAML answers file; implies --ui script")
	runCmd.Flags().StringArrayVar(&runSets, "set", nil, "Pre-populate an answer (key=value), repeatable")
	runCmd.Flags().StringVar(&runContext, "context", "", "Context path handed to the wizard")
	runCmd.Flags().StringVar(&runOut, "out", "", "Write collected answers as YAML to this file, or '-' for stdout")
	runCmd.Flags().StringVar(&runTrace, "trace", "", "Append engine events as JSONL to this file")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Debug logging to stderr (suppressed under the TUI unless --log-file is set)")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// demo flags
	demoCmd.Flags().StringVar(&demoUI, "ui", "", "UI backend: tui, plain, or defaults")

	// schema subcommands
	schemaCmd.AddCommand(schemaExportCmd)
	schemaExportCmd.Flags().StringVar(&schemaOut, "out", "", "Write the schema to this file instead of stdout")

	// root subcommands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

// --- helpers ---

// buildUI constructs the prompter backend for the requested mode.
func buildUI(mode string, answers map[string][]string, logger wizard.Logger) (wizard.Prompter, error) {
	switch mode {
	case "tui":
		u := tui.New()
		u.Logger = logger
		return u, nil
	case "plain":
		return providers.NewReadlineUI(), nil
	case "defaults":
		return providers.NewDefaultsUI(), nil
	case "script":
		if answers == nil {
			return nil, fmt.Errorf("script mode needs --answers")
		}
		return providers.NewScriptUI(answers), nil
	}
	return nil, fmt.Errorf("unknown UI mode %q: want tui, plain, defaults, or script", mode)
}

// autoUI picks the full-screen backend on a real terminal and the plain
// one for pipes and dumb terminals.
func autoUI() string {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return "tui"
	}
	return "plain"
}

// hasValidationErrors returns true if any error (non-warning) is present.
func hasValidationErrors(errs []*schema.ValidationError) bool {
	for _, e := range errs {
		if e.Severity != "warning" {
			return true
		}
	}
	return false
}

// countValidationErrors counts non-warning errors.
func countValidationErrors(errs []*schema.ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity != "warning" {
			n++
		}
	}
	return n
}

// printValidationWarnings prints any warnings to stderr.
func printValidationWarnings(errs []*schema.ValidationError) {
	for _, e := range errs {
		if e.Severity == "warning" {
			fmt.Fprintf(os.Stderr, "  %s [%s] %s\n", tui.GlyphWarning, e.Phase, e.Message)
		}
	}
}
