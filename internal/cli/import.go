package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cdtdelta/insiderwatch/internal/logger"
	"github.com/cdtdelta/insiderwatch/internal/workspace"
)

var importDomain string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load telemetry into the log store",
	Long: `Load an agent log into the log store and raise rule alerts.

Agent logs hold one JSON payload per line and may be compressed (.gz, .zst).
Rule hits are stored as security alerts. With --domain the file is read as
a CSV export of that view instead.

A missing SQLite store is created.

Examples:
  iwctl --db iw.db import agent_output.jsonl
  iwctl --db iw.db import network.csv --domain network`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.OutOrStdout(), args[0], importDomain)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDomain, "domain", "", "read the file as CSV records of this view")
}

func runImport(out io.Writer, path, domain string) error {
	if domain == "" && strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("CSV imports need --domain to name the view they belong to")
	}

	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	log := logger.Component(logger.Default(), "import")
	progress := func(p workspace.Progress) {
		log.Debug("%s: %s", p.Phase, p.Message)
	}

	var result *workspace.ImportResult
	if domain != "" {
		d, err := w.Catalog.Lookup(domain)
		if err != nil {
			return err
		}
		result, err = w.ImportCSV(path, d.ID, progress)
		if err != nil {
			return err
		}
	} else {
		result, err = w.ImportAgentLog(path, progress)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Imported %s (%s read, %s excluded)\n",
		filepath.Base(path), humanize.Comma(int64(result.Payloads)), humanize.Comma(int64(result.Excluded)))
	for _, d := range w.Catalog.All() {
		if n, ok := result.Inserted[d.ID]; ok {
			fmt.Fprintf(out, "  %-10s %s\n", d.ID, humanize.Comma(int64(n)))
		}
	}
	if domain == "" {
		fmt.Fprintf(out, "Rules raised %d alerts\n", result.Alerts)
	}
	return nil
}
