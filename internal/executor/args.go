package executor

import (
	"os"
	"strings"

	"github.com/calvin/buildgate/internal/project"
)

// buildArgv assembles the toolchain argv for a compile of target:
// launcher prefix, command, compile-only flag for object-only roles, the
// source file, extra include roots, forwarded environment flags, and the
// output flag when an artifact is produced.
func (d *Dispatcher) buildArgv(target project.BuildTarget) []string {
	tc := d.cfg.Toolchain

	argv := append([]string{}, tc.Launcher...)
	argv = append(argv, tc.Command)
	if target.Role == project.RoleLibraryModule || target.Role == project.RoleTestModule {
		argv = append(argv, tc.CompileOnlyFlag)
	}
	argv = append(argv, target.SourcePath)
	for _, inc := range target.IncludePaths {
		argv = append(argv, tc.IncludeFlag, inc)
	}
	argv = append(argv, d.envFlags()...)
	if target.OutputPath != "" {
		argv = append(argv, tc.OutputFlag, target.OutputPath)
	}
	return argv
}

// testArgv assembles the argv for the toolchain's test-runner entry point.
func (d *Dispatcher) testArgv(target project.BuildTarget) []string {
	tc := d.cfg.Toolchain

	argv := append([]string{}, tc.Launcher...)
	argv = append(argv, tc.Command)
	argv = append(argv, tc.TestArgs...)
	argv = append(argv, target.SourcePath)
	for _, inc := range target.IncludePaths {
		argv = append(argv, tc.IncludeFlag, inc)
	}
	argv = append(argv, d.envFlags()...)
	return argv
}

// envFlags collects the whitespace-split contents of the configured
// environment variables. The values are forwarded as opaque arguments; the
// gate never interprets them.
func (d *Dispatcher) envFlags() []string {
	var flags []string
	for _, name := range d.cfg.Toolchain.EnvFlags {
		if v := os.Getenv(name); v != "" {
			flags = append(flags, strings.Fields(v)...)
		}
	}
	return flags
}
