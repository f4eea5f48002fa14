// Package diagnostic scans captured toolchain output for diagnostic markers
// and counts occurrences by category.
//
// Classification is purely textual: a category's count is the number of lines
// containing its marker, so a single line carrying several markers counts
// toward each of their categories independently.
package diagnostic

import (
	"regexp"
	"strings"
)

// Policy selects which marker categories trigger the cheap existence scan.
type Policy int

const (
	// DiagnosticsOnly triggers on warnings, notes and deprecations but not
	// on "error:" text, for call sites where genuine compile errors are
	// already reflected in a non-zero toolchain exit code.
	DiagnosticsOnly Policy = iota

	// StrictIncludingErrors additionally triggers on "error:" text. Used by
	// test runs and whole-project builds.
	StrictIncludingErrors
)

// String returns the string representation of Policy.
func (p Policy) String() string {
	switch p {
	case DiagnosticsOnly:
		return "diagnostics-only"
	case StrictIncludingErrors:
		return "strict"
	default:
		return "unknown"
	}
}

// Counts holds per-category diagnostic line counts for one captured run.
type Counts struct {
	Errors       int
	Warnings     int
	Notes        int
	Deprecations int
}

// Total returns the sum of all category counts.
func (c Counts) Total() int {
	return c.Errors + c.Warnings + c.Notes + c.Deprecations
}

// Category markers. The first three are case-sensitive; deprecation matches
// "deprecated:" or the literal "DEPRECATED", combined case-insensitively as
// a single category.
const (
	errorMarker   = "error:"
	warningMarker = "warning:"
	noteMarker    = "note:"
)

var (
	deprecatedPattern = regexp.MustCompile(`(?i:deprecated:|DEPRECATED)`)

	anyDiagnosticPattern    = regexp.MustCompile(`warning:|note:|(?i:deprecated:|DEPRECATED)`)
	strictDiagnosticPattern = regexp.MustCompile(`error:|warning:|note:|(?i:deprecated:|DEPRECATED)`)
)

// HasDiagnostics reports whether any marker the policy cares about appears
// anywhere in output. This is a single-regex existence test, evaluated before
// the per-category breakdown so the expensive part only runs when a report is
// actually going to be produced.
func HasDiagnostics(output string, policy Policy) bool {
	if output == "" {
		return false
	}
	if policy == StrictIncludingErrors {
		return strictDiagnosticPattern.MatchString(output)
	}
	return anyDiagnosticPattern.MatchString(output)
}

// Scan counts, for each category, the number of lines in output containing
// that category's marker. Counts are exact regardless of output size.
func Scan(output string) Counts {
	var c Counts
	if output == "" {
		return c
	}

	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, errorMarker) {
			c.Errors++
		}
		if strings.Contains(line, warningMarker) {
			c.Warnings++
		}
		if strings.Contains(line, noteMarker) {
			c.Notes++
		}
		if deprecatedPattern.MatchString(line) {
			c.Deprecations++
		}
	}
	return c
}
