package runner

import (
	"context"
	"strings"
)

// FakeCommandRunner implements CommandRunner for testing. Results are keyed
// by the space-joined argv of the expected invocation.
type FakeCommandRunner struct {
	outputs   map[string]string
	exitCodes map[string]int
	errors    map[string]error
	commands  [][]string
}

// NewFakeCommandRunner creates a new FakeCommandRunner.
func NewFakeCommandRunner() *FakeCommandRunner {
	return &FakeCommandRunner{
		outputs:   make(map[string]string),
		exitCodes: make(map[string]int),
		errors:    make(map[string]error),
	}
}

// SetResult sets the captured output and exit code for a given command.
func (f *FakeCommandRunner) SetResult(command, output string, exitCode int) {
	f.outputs[command] = output
	f.exitCodes[command] = exitCode
}

// SetError sets a spawn error for a given command.
func (f *FakeCommandRunner) SetError(command string, err error) {
	f.errors[command] = err
}

// Run records the invocation and replays the configured result. Commands
// with no configured result succeed with empty output.
func (f *FakeCommandRunner) Run(ctx context.Context, argv []string) (*CapturedRun, error) {
	f.commands = append(f.commands, append([]string(nil), argv...))

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	key := strings.Join(argv, " ")
	if err, ok := f.errors[key]; ok {
		return nil, err
	}

	return &CapturedRun{
		Command:  append([]string(nil), argv...),
		Output:   f.outputs[key],
		ExitCode: f.exitCodes[key],
	}, nil
}

// Commands returns the argv of every invocation in order.
func (f *FakeCommandRunner) Commands() [][]string {
	return f.commands
}
