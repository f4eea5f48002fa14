// Package runner executes toolchain subprocesses and captures their output.
//
// The runner treats a non-zero exit status as ordinary data, not as an error:
// the gate downstream decides what an exit code means. Only failures to spawn
// the process at all (missing binary, permission problems) surface as errors.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// CapturedRun is the complete record of a single toolchain invocation.
// It is created once per invocation and never mutated afterwards.
type CapturedRun struct {
	Command  []string      // full argv, launcher prefix included
	Output   string        // interleaved stdout and stderr, order-preserving
	ExitCode int           // exit status of the subprocess
	Duration time.Duration // wall-clock time of the invocation
}

// CommandRunner abstracts toolchain invocation for testability.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) (*CapturedRun, error)
}

// ExecRunner runs commands as real subprocesses.
type ExecRunner struct {
	WorkDir string // working directory for commands (empty = current dir)
}

// NewExecRunner creates a CommandRunner that executes real subprocesses
// rooted at workDir.
func NewExecRunner(workDir string) *ExecRunner {
	return &ExecRunner{WorkDir: workDir}
}

// Run spawns argv[0] with the remaining arguments, waits for it to finish,
// and returns the captured combined output and exit code. Exactly one
// subprocess is spawned per call; there are no retries.
func (r *ExecRunner) Run(ctx context.Context, argv []string) (*CapturedRun, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if r.WorkDir != "" {
		cmd.Dir = r.WorkDir
	}

	output, err := cmd.CombinedOutput()

	run := &CapturedRun{
		Command:  append([]string(nil), argv...),
		Output:   string(output),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %s: %w", argv[0], err)
		}
		run.ExitCode = exitErr.ExitCode()
	}

	return run, nil
}
