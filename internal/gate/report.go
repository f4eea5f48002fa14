package gate

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter renders gate output to a writer, with color when the writer is a
// terminal.
type Reporter struct {
	out     io.Writer
	failure *color.Color
	success *color.Color
}

// NewReporter creates a Reporter writing to out. Color is enabled only when
// out is a TTY.
func NewReporter(out io.Writer) *Reporter {
	r := &Reporter{
		out:     out,
		failure: color.New(color.FgRed),
		success: color.New(color.FgGreen),
	}
	if !isTerminal(out) {
		r.failure.DisableColor()
		r.success.DisableColor()
	}
	return r
}

// isTerminal reports whether w is a TTY that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintOutput writes the full captured toolchain output verbatim. This always
// happens before the verdict is shown so the diagnostic text a developer
// needs is never swallowed by a failing gate.
func (r *Reporter) PrintOutput(output string) {
	if output == "" {
		return
	}
	fmt.Fprint(r.out, output)
	if output[len(output)-1] != '\n' {
		fmt.Fprintln(r.out)
	}
}

// PrintVerdict writes the verdict's report lines, if any.
func (r *Reporter) PrintVerdict(v Verdict) {
	for _, line := range v.ReportLines {
		r.failure.Fprintln(r.out, line)
	}
}

// PrintComplete writes the final success line.
func (r *Reporter) PrintComplete() {
	r.success.Fprintln(r.out, "✅ Complete")
}

// Printf writes an uncolored informational line to the report stream.
func (r *Reporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}
