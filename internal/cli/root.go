package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/insiderwatch/internal/config"
	"github.com/cdtdelta/insiderwatch/internal/logger"
	"github.com/cdtdelta/insiderwatch/internal/workspace"
)

// Global flags
var (
	cfgFile    string
	dbPath     string
	driverName string
)

var rootCmd = &cobra.Command{
	Use:   "iwctl",
	Short: "Insider-threat telemetry from the terminal",
	Long: `iwctl shows the insiderwatch views in the terminal.

Records come from the log store named by store.dsn (or --db). Without a
store the built-in sample records are shown.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./"+config.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "log store path or connection string (overrides store.dsn)")
	rootCmd.PersistentFlags().StringVar(&driverName, "driver", "", "log store driver: sqlite or postgres (overrides store.driver)")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.DSN = dbPath
	}
	if driverName != "" {
		cfg.Store.Driver = driverName
	}
	return cfg, nil
}

// openWorkspace opens the configured source. create lets a missing SQLite
// store be created, which only import asks for.
func openWorkspace(create bool) (*workspace.Workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return workspace.Open(cfg, create, logger.Default())
}
