package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".insiderwatch.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/insiderwatch"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. INSIDERWATCH_STORE_DSN.
	EnvPrefix = "INSIDERWATCH"
)

// Load reads config from the specified path. Environment overrides apply
// on top of the file.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'iwctl init' to create one): %w", path, err)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .insiderwatch.yaml in the current directory
// 3. ~/.config/insiderwatch/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("specified config file not found: %s: %w", explicit, err)
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine current directory: %w", err)
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults with
// environment overrides if no file exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return parseConfig(newViper(), "")
	}

	return Load(path)
}

// WriteDefault writes the default config as YAML to path. An existing file
// is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.max_records", d.Store.MaxRecords)
	v.SetDefault("store.since", d.Store.Since)
	v.SetDefault("store.until", d.Store.Until)
	v.SetDefault("store.search", d.Store.Search)

	v.SetDefault("thresholds.high_risk", d.Thresholds.HighRisk)
	v.SetDefault("thresholds.large_transfer_bytes", d.Thresholds.LargeTransferBytes)
	v.SetDefault("thresholds.large_upload_bytes", d.Thresholds.LargeUploadBytes)
	v.SetDefault("thresholds.high_volume_bytes", d.Thresholds.HighVolumeBytes)
	v.SetDefault("thresholds.high_cpu_percent", d.Thresholds.HighCPUPercent)
	v.SetDefault("thresholds.internal_prefix", d.Thresholds.InternalPrefix)
	v.SetDefault("thresholds.company_domain", d.Thresholds.CompanyDomain)
	v.SetDefault("thresholds.external_user_marker", d.Thresholds.ExternalUserMarker)

	v.SetDefault("export.formatted", d.Export.Formatted)
	v.SetDefault("ui.default_view", d.UI.DefaultView)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		if path == "" {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return nil, fmt.Errorf("invalid config format in %s: %w", path, err)
	}

	cfg.Store.DSN = expandHome(cfg.Store.DSN)
	return cfg, nil
}

// expandHome replaces a leading ~ in file paths.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
