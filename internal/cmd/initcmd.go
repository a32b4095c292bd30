package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/arkscan/internal/config"
	"github.com/marcus/arkscan/internal/filelock"
)

// defaultConfigYAML is the commented starter config written by `arkscan init`.
const defaultConfigYAML = `# arkscan configuration

# Literal substring searched for in each line of listings and content.
keyword: swagger

# Fold keyword and content to lower case before matching.
case_insensitive: false

# Newline-delimited input lists. Blank lines are skipped.
dirs_file: dirs.txt
files_file: ""

# Pause after each file's terminal transition. 0 disables.
delay: 100ms

# Timeout for external listing tools (unzip, tar, unrar).
tool_timeout: 30s

# trace, debug, info, warn or error.
log_level: info

# Ledger, results, missing and log destinations live here. Clearing
# progress.log in this directory starts a fresh campaign.
output_dir: .arkscan

# Rotation for the scan event log.
log:
  max_size_mb: 20
  max_backups: 3
  max_age_days: 30
`

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a commented default arkscan.yaml to the current directory.

The file is written atomically. An existing config file is never
overwritten unless --force is given.`,
		RunE: runInitCommand,
	}

	cmd.Flags().String("config", "", "Path to write (default: arkscan.yaml)")
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")

	return cmd
}

// runInitCommand implements the init command logic
func runInitCommand(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigFile
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := filelock.AtomicWrite(path, []byte(defaultConfigYAML)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
