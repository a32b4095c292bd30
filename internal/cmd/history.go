package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/marcus/arkscan/internal/config"
	"github.com/marcus/arkscan/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show summaries of past scan runs",
		Long: `Show the run-history table: one row per completed scan with its
keyword, outcome counts and duration. History is written at the end of
every scan run.

Examples:
  arkscan history
  arkscan history --limit 5
  arkscan history --output-dir /var/lib/arkscan`,
		RunE: runHistoryCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: arkscan.yaml)")
	cmd.Flags().String("output-dir", "", "Directory holding the history database")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")

	return cmd
}

// runHistoryCommand implements the history command logic
func runHistoryCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		cfg.OutputDir = outputDir
	}

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scan runs recorded yet.")
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Started", "Run", "Keyword", "Processed", "Matched", "Skipped", "Missing", "Failed", "Duration"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, run := range runs {
		table.Append([]string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			shortID(run.RunID),
			run.Keyword,
			fmt.Sprintf("%d", run.Processed),
			fmt.Sprintf("%d", run.Matched),
			fmt.Sprintf("%d", run.Skipped),
			fmt.Sprintf("%d", run.Missing),
			fmt.Sprintf("%d", run.Failed),
			fmt.Sprintf("%.1fs", run.Duration().Seconds()),
		})
	}

	table.Render()
	return nil
}

// shortID abbreviates a run UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
