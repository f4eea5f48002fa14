package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calvin/buildgate/internal/config"
	"github.com/calvin/buildgate/internal/executor"
	"github.com/calvin/buildgate/internal/gate"
	"github.com/calvin/buildgate/internal/history"
	"github.com/calvin/buildgate/internal/logger"
	"github.com/calvin/buildgate/internal/project"
	"github.com/calvin/buildgate/internal/runner"
)

// newDispatcher assembles the dispatcher for one command invocation: load
// configuration, overlay the project manifest, validate, and wire up the
// runner, logger, reporter and optional history store. The returned cleanup
// must be called before the process exits.
func newDispatcher(cmd *cobra.Command) (*executor.Dispatcher, func(), error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	root, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	manifest, err := project.LoadManifest(root)
	if err != nil {
		return nil, nil, err
	}
	if manifest != nil {
		manifest.Apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	var hist *history.Store
	cleanup := func() {}
	if cfg.History.Enabled {
		hist, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			// History is write-behind; never let it block the build.
			log.Warnf("history disabled: %v", err)
			hist = nil
		} else {
			store := hist
			cleanup = func() {
				if closeErr := store.Close(); closeErr != nil {
					log.Warnf("failed to close history store: %v", closeErr)
				}
			}
		}
	}

	dispatcher := executor.NewDispatcher(
		cfg,
		project.NewLayout(root, cfg.Project),
		runner.NewExecRunner(root),
		log,
		gate.NewReporter(os.Stdout),
		hist,
	)
	return dispatcher, cleanup, nil
}

// finish converts a dispatcher exit code into process termination. cleanup
// runs first because os.Exit skips deferred calls.
func finish(cleanup func(), code int) error {
	cleanup()
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
