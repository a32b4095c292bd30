package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for arkscan
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arkscan",
		Short: "Resumable keyword scanner for archives and text files",
		Long: `Arkscan walks directory trees and file lists, inspects archive
listings and text content without extracting anything, and reports files
whose listing or content contains a configured keyword.

Every completed file is committed to an append-only progress ledger, so a
killed or crashed scan can be re-run and picks up exactly where it left
off without duplicating reports.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewInitCommand())

	return cmd
}
