package cmd

import (
	"github.com/spf13/cobra"
)

// NewCleanCommand creates the clean command
func NewCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated artifacts",
		Long: `Remove generated artifacts: the output directory, debug-symbol
directories, and known default-named binaries. The dependency cache is
only removed when --cache is given.

clean never invokes the toolchain, is idempotent, and succeeds unless
filesystem removal itself fails.`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}

	cmd.Flags().Bool("cache", false, "Also remove the dependency cache")

	return cmd
}

// runClean implements the clean command logic
func runClean(cmd *cobra.Command, args []string) error {
	dispatcher, cleanup, err := newDispatcher(cmd)
	if err != nil {
		return err
	}

	includeCache, _ := cmd.Flags().GetBool("cache")

	code, err := dispatcher.Clean(includeCache)
	if err != nil {
		cleanup()
		return err
	}
	return finish(cleanup, code)
}
