package cmd

import (
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Compile a file, or the whole project, under the strict gate",
		Long: `Compile a source file under the strict gate, failing on any warning,
note or deprecation in the toolchain output even when the toolchain
itself exits 0.

The path decides how the file is built: files under the binaries,
examples or benchmarks roots compile to their own artifact; files under
the library or tests roots validate object-only. Paths outside every
known root are first attempted as executables, falling back once to
object-only validation if the toolchain rejects the executable build.

With no path, the whole project is built: every executable-root file to
its own artifact and every library and test file object-only, skipping
package-init files, stopping at the first failure.

Examples:
  buildgate build bin/main.c
  buildgate build src/util.c
  buildgate build scratch/tool.c -o dist/tool
  buildgate build`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBuild,
	}

	cmd.Flags().StringP("output", "o", "", "Artifact output path (single-file builds only)")

	return cmd
}

// runBuild implements the build command logic
func runBuild(cmd *cobra.Command, args []string) error {
	dispatcher, cleanup, err := newDispatcher(cmd)
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	output, _ := cmd.Flags().GetString("output")

	code, err := dispatcher.Build(cmd.Context(), path, output)
	if err != nil {
		cleanup()
		return err
	}
	return finish(cleanup, code)
}
