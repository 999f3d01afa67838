// Package commands implements the CLI for the spur command runner.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.spur.run/spur/internal/app"
	"go.spur.run/spur/internal/build"
	"go.spur.run/spur/internal/core/domain"
)

// CLI represents the command line interface for spur.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	exitCode int
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) (int, error)
}

// New creates a new CLI instance with the given app. Everything hangs off
// the root command: positional arguments are commands to run, or files
// whose lines are commands, so there is no room for subcommand names.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "spur [flags] [command|file ...]",
		Short: "Run shell commands rendered as markdown, re-run them on file changes",
		Args:  cobra.ArbitraryArgs,

		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.run,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	flags := rootCmd.Flags()
	flags.StringP("shell", "s", "", `Shell wrapper the commands run under (default "sh -c")`)
	flags.StringP("fence", "f", "", "Fence opening and closing the output block (default \"```\")")
	flags.StringP("info", "i", "", `Info string appended to the opening fence (default "text")`)
	flags.StringP("prompt", "p", "", `Prompt echoed before each command (default "$ ")`)
	flags.StringArrayP("watch", "w", nil, "Re-run the command when this path changes (repeatable)")
	flags.Float64P("debounce", "d", 0, "Seconds to ignore further changes after a reaction (default 1)")
	flags.String("color", "", `Color output: auto, always or never (default "auto")`)
	flags.Bool("parallel", false, "Run the commands concurrently instead of sequentially")
	flags.Bool("dry-run", false, "Print the commands without executing them")
	flags.BoolP("quiet", "q", false, "Suppress all rendering except watch reports")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for spur"

	c.rootCmd = rootCmd
	return c
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetStringArray("watch")
	parallel, _ := cmd.Flags().GetBool("parallel")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	code, err := c.app.Run(cmd.Context(), app.RunOptions{
		Args:      args,
		Overrides: overridesFrom(cmd),
		Watch:     watch,
		Parallel:  parallel,
		DryRun:    dryRun,
	})
	c.exitCode = code
	return err
}

// overridesFrom collects the settings flags the user explicitly set.
// Unset flags stay nil so the settings file and the defaults fill them.
func overridesFrom(cmd *cobra.Command) domain.Settings {
	return domain.Settings{
		Shell:    stringFlag(cmd, "shell"),
		Fence:    stringFlag(cmd, "fence"),
		Info:     stringFlag(cmd, "info"),
		Prompt:   stringFlag(cmd, "prompt"),
		Debounce: floatFlag(cmd, "debounce"),
		Color:    stringFlag(cmd, "color"),
		Quiet:    boolFlag(cmd, "quiet"),
	}
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// ExitCode returns the process exit code of the last Execute. It reflects
// the exit status of the commands that ran, not only fatal errors.
func (c *CLI) ExitCode() int {
	return c.exitCode
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
