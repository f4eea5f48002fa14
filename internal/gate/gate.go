// Package gate turns a captured toolchain run into a pass/fail verdict.
//
// Diagnostics are checked before the exit code: the toolchain may exit 0
// while still emitting warnings, and upgrading those to hard failures is the
// entire purpose of the gate.
package gate

import (
	"fmt"

	"github.com/calvin/buildgate/internal/diagnostic"
	"github.com/calvin/buildgate/internal/runner"
)

// FailureCategory classifies why a verdict failed.
type FailureCategory int

const (
	// None means the run passed.
	None FailureCategory = iota
	// DiagnosticsPresent means diagnostic markers were found in the output.
	DiagnosticsPresent
	// ToolchainNonZeroExit means the toolchain itself rejected the input.
	ToolchainNonZeroExit
)

// String returns the string representation of FailureCategory.
func (fc FailureCategory) String() string {
	switch fc {
	case None:
		return "none"
	case DiagnosticsPresent:
		return "diagnostics-present"
	case ToolchainNonZeroExit:
		return "toolchain-nonzero-exit"
	default:
		return "unknown"
	}
}

// Verdict is the gate's decision for one captured run.
// Passed is false if and only if FailureCategory is not None.
type Verdict struct {
	Passed          bool
	FailureCategory FailureCategory
	Counts          diagnostic.Counts
	ReportLines     []string
}

// Evaluate applies the gate policy to a captured run, strictly in this order:
// diagnostics first, exit code second. A run with diagnostics fails as
// DiagnosticsPresent regardless of its exit code.
func Evaluate(run *runner.CapturedRun, toolchain string, policy diagnostic.Policy) Verdict {
	if diagnostic.HasDiagnostics(run.Output, policy) {
		counts := diagnostic.Scan(run.Output)
		return Verdict{
			Passed:          false,
			FailureCategory: DiagnosticsPresent,
			Counts:          counts,
			ReportLines:     diagnosticsReport(counts),
		}
	}

	if run.ExitCode != 0 {
		return Verdict{
			Passed:          false,
			FailureCategory: ToolchainNonZeroExit,
			ReportLines: []string{
				fmt.Sprintf("❌ ERROR: %s command failed with exit code %d", toolchain, run.ExitCode),
			},
		}
	}

	return Verdict{Passed: true, FailureCategory: None}
}

// diagnosticsReport enumerates every category with a non-zero count, in the
// fixed order error, warning, note, deprecated.
func diagnosticsReport(c diagnostic.Counts) []string {
	lines := []string{"❌ ERROR: Compilation aborted due to diagnostics treated as errors"}
	if c.Errors > 0 {
		lines = append(lines, fmt.Sprintf("   - %d error(s) found", c.Errors))
	}
	if c.Warnings > 0 {
		lines = append(lines, fmt.Sprintf("   - %d warning(s) found", c.Warnings))
	}
	if c.Notes > 0 {
		lines = append(lines, fmt.Sprintf("   - %d note(s) found", c.Notes))
	}
	if c.Deprecations > 0 {
		lines = append(lines, fmt.Sprintf("   - %d deprecated usage(s) found", c.Deprecations))
	}
	return lines
}
