package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/arkscan/internal/config"
	"github.com/marcus/arkscan/internal/filelock"
	"github.com/marcus/arkscan/internal/history"
	"github.com/marcus/arkscan/internal/ledger"
	"github.com/marcus/arkscan/internal/lister"
	"github.com/marcus/arkscan/internal/logger"
	"github.com/marcus/arkscan/internal/report"
	"github.com/marcus/arkscan/internal/scanner"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a resumable keyword scan",
		Long: `Run a keyword scan over the configured directory roots and file lists.

Directory roots are walked depth-first and every file underneath them is
attempted, whatever its extension. Direct file inputs are processed as
given; a missing direct file is recorded as missing rather than attempted.

Completed paths are appended to the progress ledger in the output
directory. Re-running with the same output directory skips everything the
ledger already contains, so an interrupted scan resumes with at most the
in-flight file re-attempted.

Configuration is loaded from arkscan.yaml if present. CLI flags override
configuration file settings.

Examples:
  arkscan scan --dirs-file dirs.txt
  arkscan scan --files-file files.txt --keyword Swagger
  arkscan scan --dirs-file dirs.txt --ignore-case
  arkscan scan --dirs-file dirs.txt --delay 0 --tool-timeout 10s
  arkscan scan --config custom.yaml --output-dir /var/lib/arkscan`,
		RunE: runScanCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: arkscan.yaml)")
	cmd.Flags().String("keyword", "", "Literal substring to search for (default from config)")
	cmd.Flags().Bool("ignore-case", false, "Match the keyword case-insensitively")
	cmd.Flags().String("dirs-file", "", "Newline-delimited list of directory roots to walk")
	cmd.Flags().String("files-file", "", "Newline-delimited list of files to process directly")
	cmd.Flags().Duration("delay", -1, "Pause after each file (0 disables)")
	cmd.Flags().Duration("tool-timeout", -1, "Timeout for external listing tools")
	cmd.Flags().String("log-level", "", "Log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().String("output-dir", "", "Directory for ledger, results and logs")

	return cmd
}

// runScanCommand implements the scan command logic
func runScanCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadScanConfig(cmd)
	if err != nil {
		return err
	}

	dirsFile, _ := cmd.Flags().GetString("dirs-file")
	if dirsFile == "" {
		dirsFile = cfg.DirsFile
	}
	filesFile, _ := cmd.Flags().GetString("files-file")
	if filesFile == "" {
		filesFile = cfg.FilesFile
	}
	if dirsFile == "" && filesFile == "" {
		return errors.New("nothing to scan: set dirs_file or files_file (or --dirs-file/--files-file)")
	}

	var dirs, files []string
	if dirsFile != "" {
		if dirs, err = scanner.ReadPathList(dirsFile); err != nil {
			return err
		}
	}
	if filesFile != "" {
		if files, err = scanner.ReadPathList(filesFile); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One scanner per destination set. The ledger and report files are
	// append-only logs that must not be interleaved by two processes.
	lock := filelock.New(cfg.LockPath())
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another scan is already running against %s", cfg.OutputDir)
	}
	defer lock.Unlock()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ldg, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return err
	}
	defer ldg.Close()

	rep, err := report.Open(cfg.ResultsPath(), cfg.MissingPath())
	if err != nil {
		return err
	}
	defer rep.Close()

	fileLog := logger.NewFileLogger(cfg.ScanLogPath(), cfg.LogLevel, logger.RotationConfig{
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer fileLog.Close()
	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	log := logger.NewMultiLogger(consoleLog, fileLog)

	driver := scanner.NewDriver(ldg, rep, lister.NewExecLister(cfg.ToolTimeout), log, scanner.Options{
		Keyword:         cfg.Keyword,
		CaseInsensitive: cfg.CaseInsensitive,
		Delay:           cfg.Delay,
	})

	summary, runErr := driver.Run(ctx, dirs, files)

	// History is supplemental: a broken history database must not stop a
	// scan whose ledger and reports already committed.
	if store, histErr := history.Open(cfg.HistoryPath()); histErr != nil {
		log.LogWarn(fmt.Sprintf("run history unavailable: %v", histErr))
	} else {
		if histErr := store.RecordRun(cmd.Context(), summary); histErr != nil {
			log.LogWarn(fmt.Sprintf("record run history: %v", histErr))
		}
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("scan aborted: %w", runErr)
	}
	return nil
}

// loadScanConfig loads the config file and applies flag overrides.
func loadScanConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if keyword, _ := cmd.Flags().GetString("keyword"); keyword != "" {
		cfg.Keyword = keyword
	}
	if cmd.Flags().Changed("ignore-case") {
		cfg.CaseInsensitive, _ = cmd.Flags().GetBool("ignore-case")
	}
	if cmd.Flags().Changed("delay") {
		if delay, _ := cmd.Flags().GetDuration("delay"); delay >= 0 {
			cfg.Delay = delay
		}
	}
	if cmd.Flags().Changed("tool-timeout") {
		if timeout, _ := cmd.Flags().GetDuration("tool-timeout"); timeout >= 0 {
			cfg.ToolTimeout = timeout
		}
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
