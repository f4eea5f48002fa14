package cmd

import (
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <path> [args...]",
		Short: "Build an executable under the gate, then run it",
		Long: `Build the given source file as an executable under the strict gate and,
only if the gate passes, execute the produced artifact. Trailing
arguments are forwarded to the artifact unchanged, and its exit code
becomes buildgate's exit code.

Examples:
  buildgate run bin/main.c
  buildgate run bin/server.c --port 8080`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}

	cmd.Flags().StringP("output", "o", "", "Artifact output path")
	// Keep flags after the path for the artifact, not for buildgate.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// runRun implements the run command logic
func runRun(cmd *cobra.Command, args []string) error {
	dispatcher, cleanup, err := newDispatcher(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")

	code, err := dispatcher.Run(cmd.Context(), args[0], args[1:], output)
	if err != nil {
		cleanup()
		return err
	}
	return finish(cleanup, code)
}
