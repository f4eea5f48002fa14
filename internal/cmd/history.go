package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calvin/buildgate/internal/config"
	"github.com/calvin/buildgate/internal/history"
	"github.com/calvin/buildgate/internal/project"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent gate verdicts",
		Long: `Show the most recent gate verdicts from the history journal.

Verdicts are only recorded when history.enabled is set in the
configuration; the journal never influences gate decisions.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of entries to show")

	return cmd
}

// runHistory implements the history command logic
func runHistory(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}
	if manifest, mErr := project.LoadManifest(root); mErr != nil {
		return mErr
	} else if manifest != nil {
		manifest.Apply(cfg)
	}

	if _, statErr := os.Stat(cfg.History.DBPath); os.IsNotExist(statErr) {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded verdicts.")
		return nil
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded verdicts.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		status := "✅ pass"
		if !e.Passed {
			status = fmt.Sprintf("❌ %s (%de/%dw/%dn/%dd, exit %d)",
				e.FailureCategory, e.Errors, e.Warnings, e.Notes, e.Deprecations, e.ExitCode)
		}
		fmt.Fprintf(out, "%s  %-5s  %-40s  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Verb, e.Target, status)
	}
	return nil
}
