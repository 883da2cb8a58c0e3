package cli

import (
	"github.com/spf13/cobra"
)

// Version information; defaults are overridden by ldflags during build.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetVersionInfo sets the version information from build-time ldflags.
// Called by main() before Execute().
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		Date = date
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("diffpaint version %s\n", Version)
			if Commit != "unknown" {
				cmd.Printf("commit: %s\n", Commit)
			}
			if Date != "unknown" {
				cmd.Printf("built at: %s\n", Date)
			}
		},
	}
}

// newListSyntaxThemesCommand stubs a "list-syntax-themes" command. A full
// implementation would enumerate the highlighter's bundled themes; here
// it reports that the active theme is the only one currently surfaced.
func newListSyntaxThemesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list-syntax-themes",
		Short: "List available syntax-highlighting themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(app.Config.SyntaxTheme)
			return nil
		},
	}
}

// newDoctorCommand stubs a "doctor" diagnostics command, reporting the
// terminal capabilities diffpaint has detected for the current stdout.
func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print detected terminal capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("tty: %t\n", app.Caps.IsATTY())
			cmd.Printf("true-color: %t\n", app.Caps.SupportsTrueColor())
			cmd.Printf("width: %d\n", app.Caps.WidthCells())
			return nil
		},
	}
}

// newGenerateCompletionCommand stubs a "completion" command so the tree
// has the shape a full CLI has; shell completion generation itself is
// out of scope.
func newGenerateCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "completion [bash|zsh|fish]",
		Short:  "Generate shell completion script",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewExitError(0)
		},
	}
}
