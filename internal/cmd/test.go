package cmd

import (
	"github.com/spf13/cobra"
)

// NewTestCommand creates the test command
func NewTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [path...]",
		Short: "Run test files through the toolchain's test runner under the gate",
		Long: `Run test files through the toolchain's own test-runner entry point,
applying the strict gate policy: any diagnostic in the output, errors
included, fails the run regardless of the toolchain's exit code.

With no arguments, every test file under the tests root is resolved by
the configured prefix convention and run in order, stopping at the
first failure.

Examples:
  buildgate test
  buildgate test tests/test_util.c`,
		Args: cobra.ArbitraryArgs,
		RunE: runTest,
	}

	return cmd
}

// runTest implements the test command logic
func runTest(cmd *cobra.Command, args []string) error {
	dispatcher, cleanup, err := newDispatcher(cmd)
	if err != nil {
		return err
	}

	code, err := dispatcher.Test(cmd.Context(), args)
	if err != nil {
		cleanup()
		return err
	}
	return finish(cleanup, code)
}
