package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for buildgate
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildgate",
		Short: "Strict compilation gate for an external toolchain",
		Long: `Buildgate wraps a compiler that has no "treat warnings as errors" flag
and gives it one: every invocation's combined output is scanned for
diagnostic markers, and any warning, note or deprecation turns an
otherwise-successful compilation into a hard failure.

The toolchain itself is opaque and fully configurable; buildgate only
assembles its arguments, captures its text and exit code, and decides
pass or fail. Configuration is loaded from .buildgate/config.yaml if
present, with an optional buildgate.toml project manifest overriding
workspace layout and toolchain settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .buildgate/config.yaml)")
	cmd.PersistentFlags().Bool("verbose", false, "Show detailed execution information")

	// Add subcommands
	cmd.AddCommand(NewBuildCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewTestCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
