// Package cli provides the diffpaint command-line interface: a root
// command that reads a unified diff on stdin, renders it through the
// painting pipeline, and writes the result to stdout, plus a handful of
// stub subcommands establishing the shape a full delta-style CLI has
// (theme listing, diagnostics, shell completion) without reimplementing
// their logic.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ibro45/diffpaint/internal/config"
	"github.com/ibro45/diffpaint/internal/pipeline"
	"github.com/ibro45/diffpaint/internal/term"
)

// App bundles the resolved configuration and I/O streams a command
// needs, wired once by NewApp so commands stay testable against
// substitute readers/writers.
type App struct {
	Config *config.Config
	Caps   term.Caps

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewApp wires production dependencies: cfg as loaded, the real
// process stdio streams, and terminal capability detection against
// os.Stdout.
func NewApp(cfg *config.Config) *App {
	return &App{
		Config: cfg,
		Caps:   term.New(os.Stdout),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// NewRootCommand builds the command tree: the root command itself runs
// the paint pipeline, and a handful of stub subcommands give the tree
// the shape a complete CLI has.
func NewRootCommand(app *App) *cobra.Command {
	var sideBySide, lineNumbers, noColor, colorOnly, keepMarkers bool

	rootCmd := &cobra.Command{
		Use:   "diffpaint",
		Short: "Paint a unified diff for terminal display",
		Long: `diffpaint reads a unified diff on stdin, applies syntax
highlighting, edit-level emphasis, and line numbers, and writes the
painted result to stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sideBySide {
				app.Config.SideBySide = true
			}
			if lineNumbers {
				app.Config.ShowLineNumbers = true
			}
			if noColor {
				app.Config.TrueColor = false
			}
			if colorOnly {
				app.Config.ColorOnly = true
			}
			if keepMarkers {
				app.Config.KeepPlusMinusMarkers = true
			}
			return runPipeline(app)
		},
	}

	rootCmd.Flags().BoolVar(&sideBySide, "side-by-side", false, "render in two-column side-by-side layout")
	rootCmd.Flags().BoolVar(&lineNumbers, "line-numbers", false, "show line-number gutters")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "turn off the true-color setting (styling is still emitted)")
	rootCmd.Flags().BoolVar(&colorOnly, "color-only", false, "recolor each line in place, skipping edit inference")
	rootCmd.Flags().BoolVar(&keepMarkers, "keep-plus-minus-markers", false, "keep the leading +/- marker instead of collapsing it to a gutter")

	rootCmd.AddCommand(
		newVersionCommand(),
		newListSyntaxThemesCommand(app),
		newDoctorCommand(app),
		newGenerateCompletionCommand(),
	)

	return rootCmd
}

// runPipeline builds handlers from app.Config and drives the read-
// classify-paint-write loop to completion.
func runPipeline(app *App) error {
	if app.Config.SideBySide && app.Config.SideBySideWidth <= 0 {
		app.Config.SideBySideWidth = app.Caps.WidthCells()
	}
	h, err := config.BuildHandlers(app.Config, app.Stdout)
	if err != nil {
		return NewExitError(2)
	}
	if err := pipeline.Run(app.Stdin, h); err != nil {
		fmt.Fprintf(app.Stderr, "diffpaint: %v\n", err)
		return NewExitError(2)
	}
	return nil
}

// ExecuteResult holds the exit code and error from running the CLI,
// so tests can inspect both without the process actually exiting.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig builds the App and command tree around a pre-loaded
// cfg and executes it, translating any ExitError into its exit code.
func RunWithConfig(cfg *config.Config) ExecuteResult {
	app := NewApp(cfg)
	rootCmd := NewRootCommand(app)

	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Run loads configuration via config.NewLoader and executes the CLI.
func Run() ExecuteResult {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return ExecuteResult{ExitCode: 2, Err: fmt.Errorf("diffpaint: loading config: %w", err)}
	}
	return RunWithConfig(cfg)
}

// Execute is main()'s entry point: it runs the CLI and exits the
// process with the resulting code, printing any top-level error first.
func Execute() {
	result := Run()
	if result.Err != nil && result.ExitCode != 0 {
		fmt.Fprintln(os.Stderr, result.Err)
	}
	os.Exit(result.ExitCode)
}
