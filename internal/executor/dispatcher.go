// Package executor orchestrates toolchain invocations and applies the gate.
//
// The dispatcher is single-threaded and synchronous: one subprocess at a
// time, each blocking until completion, with fail-fast semantics across
// whole-project builds. There is no persistent state across invocations;
// the only outputs are the printed report and the process exit code.
package executor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/calvin/buildgate/internal/config"
	"github.com/calvin/buildgate/internal/diagnostic"
	"github.com/calvin/buildgate/internal/filelock"
	"github.com/calvin/buildgate/internal/gate"
	"github.com/calvin/buildgate/internal/history"
	"github.com/calvin/buildgate/internal/logger"
	"github.com/calvin/buildgate/internal/project"
	"github.com/calvin/buildgate/internal/runner"
)

// Dispatcher resolves verbs and targets into toolchain invocations and gate
// decisions. The configuration is fixed at construction and never consulted
// from ambient global state.
type Dispatcher struct {
	cfg      *config.Config
	layout   *project.Layout
	runner   runner.CommandRunner
	log      *logger.ConsoleLogger
	reporter *gate.Reporter
	history  *history.Store // nil when history is disabled
}

// NewDispatcher creates a Dispatcher. history may be nil.
func NewDispatcher(
	cfg *config.Config,
	layout *project.Layout,
	cmdRunner runner.CommandRunner,
	log *logger.ConsoleLogger,
	reporter *gate.Reporter,
	hist *history.Store,
) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		layout:   layout,
		runner:   cmdRunner,
		log:      log,
		reporter: reporter,
		history:  hist,
	}
}

// invoke runs one toolchain command, prints its full captured output, and
// evaluates the gate. The output is always printed before the verdict so a
// failing gate never swallows the diagnostic text.
func (d *Dispatcher) invoke(ctx context.Context, verb, target string, argv []string, policy diagnostic.Policy) (gate.Verdict, error) {
	d.log.Debugf("invoking: %s", strings.Join(argv, " "))

	run, err := d.runner.Run(ctx, argv)
	if err != nil {
		return gate.Verdict{}, err
	}

	d.reporter.PrintOutput(run.Output)
	verdict := gate.Evaluate(run, d.cfg.Toolchain.Command, policy)
	d.record(ctx, verb, target, run, verdict)
	return verdict, nil
}

// record appends the verdict to the history journal when enabled. Recording
// failures are logged and never change the exit code.
func (d *Dispatcher) record(ctx context.Context, verb, target string, run *runner.CapturedRun, v gate.Verdict) {
	if d.history == nil {
		return
	}
	err := d.history.Record(ctx, history.Entry{
		Verb:            verb,
		Target:          target,
		Passed:          v.Passed,
		FailureCategory: v.FailureCategory.String(),
		Errors:          v.Counts.Errors,
		Warnings:        v.Counts.Warnings,
		Notes:           v.Counts.Notes,
		Deprecations:    v.Counts.Deprecations,
		ExitCode:        run.ExitCode,
		Duration:        run.Duration,
	})
	if err != nil {
		d.log.Warnf("failed to record verdict: %v", err)
	}
}

// withOutputLock creates the output directory (idempotently), takes the
// exclusive inter-process lock on it, and runs fn.
func (d *Dispatcher) withOutputLock(fn func() (int, error)) (int, error) {
	lock, err := filelock.NewOutputLock(filepath.Join(d.layout.Root(), d.layout.OutputDir()))
	if err != nil {
		return 1, err
	}
	if err := lock.Lock(); err != nil {
		return 1, err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			d.log.Warnf("failed to release output lock: %v", unlockErr)
		}
	}()
	return fn()
}

// Build compiles a single target, or the whole project when path is empty.
// Returns the process exit code; the error is reserved for operational
// failures (spawn errors, filesystem problems), not gate failures.
func (d *Dispatcher) Build(ctx context.Context, path, output string) (int, error) {
	if path == "" {
		return d.withOutputLock(func() (int, error) {
			return d.buildAll(ctx)
		})
	}

	switch d.layout.Classify(path) {
	case project.RoleExecutable:
		return d.withOutputLock(func() (int, error) {
			return d.buildOne(ctx, "build", d.layout.ExecutableTarget(path, output), diagnostic.DiagnosticsOnly)
		})
	case project.RoleLibraryModule, project.RoleTestModule:
		return d.buildOne(ctx, "build", d.layout.LibraryTarget(path), diagnostic.DiagnosticsOnly)
	default:
		return d.withOutputLock(func() (int, error) {
			return d.buildUnresolved(ctx, path, output)
		})
	}
}

// buildOne runs one compile under the gate and finishes the command on its
// verdict.
func (d *Dispatcher) buildOne(ctx context.Context, verb string, target project.BuildTarget, policy diagnostic.Policy) (int, error) {
	verdict, err := d.invoke(ctx, verb, target.SourcePath, d.buildArgv(target), policy)
	if err != nil {
		return 1, err
	}
	if !verdict.Passed {
		d.reporter.PrintVerdict(verdict)
		return 1, nil
	}
	d.reporter.PrintComplete()
	return 0, nil
}

// buildUnresolved handles paths outside every known root: first attempted as
// an executable, then retried once as object-only library validation, but
// only for toolchain-exit failures. Both attempts' outputs are printed; a
// diagnostics failure on the first attempt is terminal.
func (d *Dispatcher) buildUnresolved(ctx context.Context, path, output string) (int, error) {
	execTarget := d.layout.ExecutableTarget(path, output)
	execVerdict, err := d.invoke(ctx, "build", path, d.buildArgv(execTarget), diagnostic.DiagnosticsOnly)
	if err != nil {
		return 1, err
	}
	if execVerdict.Passed {
		d.reporter.PrintComplete()
		return 0, nil
	}
	if execVerdict.FailureCategory == gate.DiagnosticsPresent {
		d.reporter.PrintVerdict(execVerdict)
		return 1, nil
	}

	d.log.Infof("executable build of %s failed, retrying as library module", path)

	libTarget := d.layout.LibraryTarget(path)
	libVerdict, err := d.invoke(ctx, "build", path, d.buildArgv(libTarget), diagnostic.DiagnosticsOnly)
	if err != nil {
		return 1, err
	}
	if libVerdict.Passed {
		d.reporter.PrintComplete()
		return 0, nil
	}

	// Both attempts failed: report both so neither is hidden.
	d.reporter.Printf("Could not resolve %s: both build attempts failed\n", path)
	d.reporter.Printf("Attempt 1 (executable):\n")
	d.reporter.PrintVerdict(execVerdict)
	d.reporter.Printf("Attempt 2 (library module):\n")
	d.reporter.PrintVerdict(libVerdict)
	return 1, nil
}

// buildAll compiles the whole project: every executable-root file to its own
// artifact and every library and test file as object-only validation, one
// gated invocation per file, aborting on the first failure.
func (d *Dispatcher) buildAll(ctx context.Context) (int, error) {
	execRoots := []string{
		d.cfg.Project.BinRoot,
		d.cfg.Project.ExamplesRoot,
		d.cfg.Project.BenchmarksRoot,
	}
	for _, root := range execRoots {
		files, err := d.layout.SourceFiles(root)
		if err != nil {
			return 1, err
		}
		for _, f := range files {
			d.log.Infof("compiling %s", f)
			verdict, err := d.invoke(ctx, "build", f, d.buildArgv(d.layout.ExecutableTarget(f, "")), diagnostic.StrictIncludingErrors)
			if err != nil {
				return 1, err
			}
			if !verdict.Passed {
				d.reporter.PrintVerdict(verdict)
				return 1, nil
			}
		}
	}

	libRoots := []string{
		d.cfg.Project.LibRoot,
		d.cfg.Project.TestsRoot,
	}
	for _, root := range libRoots {
		files, err := d.layout.SourceFiles(root)
		if err != nil {
			return 1, err
		}
		for _, f := range files {
			if d.layout.IsPackageInit(f) {
				d.log.Infof("skipping package-init file %s", f)
				continue
			}
			d.log.Infof("validating %s", f)
			verdict, err := d.invoke(ctx, "build", f, d.buildArgv(d.layout.LibraryTarget(f)), diagnostic.StrictIncludingErrors)
			if err != nil {
				return 1, err
			}
			if !verdict.Passed {
				d.reporter.PrintVerdict(verdict)
				return 1, nil
			}
		}
	}

	d.reporter.PrintComplete()
	return 0, nil
}

// Run builds path as an executable and, only on a passing verdict, executes
// the produced artifact with the trailing arguments. The artifact's exit
// code becomes the dispatcher's exit code.
func (d *Dispatcher) Run(ctx context.Context, path string, args []string, output string) (int, error) {
	target := d.layout.ExecutableTarget(path, output)

	code, err := d.withOutputLock(func() (int, error) {
		verdict, err := d.invoke(ctx, "run", target.SourcePath, d.buildArgv(target), diagnostic.DiagnosticsOnly)
		if err != nil {
			return 1, err
		}
		if !verdict.Passed {
			d.reporter.PrintVerdict(verdict)
			return 1, nil
		}
		return 0, nil
	})
	if code != 0 || err != nil {
		return code, err
	}

	artifact := target.OutputPath
	if !filepath.IsAbs(artifact) {
		artifact = filepath.Join(d.layout.Root(), artifact)
	}
	d.log.Debugf("executing %s", artifact)

	run, err := d.runner.Run(ctx, append([]string{artifact}, args...))
	if err != nil {
		return 1, err
	}
	d.reporter.PrintOutput(run.Output)
	if run.ExitCode != 0 {
		d.log.Debugf("%s exited with code %d", artifact, run.ExitCode)
		return run.ExitCode, nil
	}

	d.reporter.PrintComplete()
	return 0, nil
}

// Test runs every resolved test file (or the explicitly given files) through
// the toolchain's test-runner entry point under the strict gate policy,
// aborting on the first failure.
func (d *Dispatcher) Test(ctx context.Context, paths []string) (int, error) {
	files := paths
	if len(files) == 0 {
		discovered, err := d.layout.TestFiles()
		if err != nil {
			return 1, err
		}
		files = discovered
	}

	if len(files) == 0 {
		d.log.Infof("no test files found under %s", d.cfg.Project.TestsRoot)
		d.reporter.PrintComplete()
		return 0, nil
	}

	for _, f := range files {
		target := d.layout.TestTarget(f)
		d.log.Infof("testing %s", target.SourcePath)
		verdict, err := d.invoke(ctx, "test", target.SourcePath, d.testArgv(target), diagnostic.StrictIncludingErrors)
		if err != nil {
			return 1, err
		}
		if !verdict.Passed {
			d.reporter.PrintVerdict(verdict)
			return 1, nil
		}
	}

	d.reporter.PrintComplete()
	return 0, nil
}

// Clean removes generated artifacts. It never invokes the toolchain and only
// fails when filesystem removal itself fails.
func (d *Dispatcher) Clean(includeCache bool) (int, error) {
	result, err := d.layout.Clean(includeCache)
	if err != nil {
		return 1, err
	}
	for _, removed := range result.Removed {
		d.log.Infof("removed %s", removed)
	}
	d.reporter.PrintComplete()
	return 0, nil
}
