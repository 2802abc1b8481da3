package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/insiderwatch/internal/config"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path      string // Explicit destination; empty means the local file
	Global    bool   // Write ~/.config/insiderwatch/config.yaml instead
	Overwrite bool   // Replace an existing file
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write the default configuration as YAML.

The file goes to ./` + config.ConfigFileName + ` unless a path or --global is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		if len(args) == 1 {
			opts.Path = args[0]
		}
		return Init(cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initOpts.Global, "global", false, "write the user-wide config")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite an existing config file")
}

// Init writes the default config file.
func Init(out io.Writer, opts InitOptions) error {
	path := opts.Path
	switch {
	case path != "":
	case opts.Global:
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile)
	default:
		path = filepath.Join(".", config.ConfigFileName)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}
	if err := config.WriteDefault(path, opts.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
