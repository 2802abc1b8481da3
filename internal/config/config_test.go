package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/insiderwatch/internal/domains"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Empty(t, cfg.Store.DSN)
	assert.Zero(t, cfg.Store.MaxRecords)
	assert.True(t, cfg.Export.Formatted)
	assert.Equal(t, "dashboard", cfg.UI.DefaultView)
	assert.Equal(t, domains.DefaultThresholds(), cfg.Thresholds.Domains())
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
store:
  driver: postgres
  dsn: postgres://iw@localhost/logs
  max_records: 500
  since: "2024-01-20 00:00:00"
  search: john_doe
thresholds:
  high_risk: 8
  company_domain: example.org
ui:
  default_view: network
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://iw@localhost/logs", cfg.Store.DSN)
	assert.Equal(t, 500, cfg.Store.MaxRecords)
	assert.Equal(t, "2024-01-20 00:00:00", cfg.Store.Since)
	assert.Equal(t, 8.0, cfg.Thresholds.HighRisk)
	assert.Equal(t, "example.org", cfg.Thresholds.CompanyDomain)
	assert.Equal(t, "network", cfg.UI.DefaultView)

	// Unset keys keep their defaults
	assert.Equal(t, 1000000.0, cfg.Thresholds.LargeTransferBytes)
	assert.Equal(t, ".ext", cfg.Thresholds.ExternalUserMarker)
	assert.True(t, cfg.Export.Formatted)

	w := cfg.Store.Window()
	assert.Equal(t, 500, w.MaxRecords)
	assert.Equal(t, "2024-01-20 00:00:00", w.Since)
	assert.Equal(t, "john_doe", w.Search)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.insiderwatch.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  dsn: from-file.db\n"), 0644))

	t.Setenv("INSIDERWATCH_STORE_DSN", "from-env.db")
	t.Setenv("INSIDERWATCH_THRESHOLDS_HIGH_RISK", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Store.DSN)
	assert.Equal(t, 5.0, cfg.Thresholds.HighRisk)
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find("/nonexistent/config.yaml")
		assert.Error(t, err)
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{}"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Chdir(t.TempDir())
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
		require.NoError(t, os.WriteFile(global, []byte("{}"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INSIDERWATCH_UI_DEFAULT_VIEW", "security")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "security", cfg.UI.DefaultView)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	assert.Error(t, WriteDefault(path, false), "existing file should not be replaced")
	assert.NoError(t, WriteDefault(path, true))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "logs.db"), expandHome("~/logs.db"))
	assert.Equal(t, "/var/logs.db", expandHome("/var/logs.db"))
	assert.Equal(t, "postgres://x", expandHome("postgres://x"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"postgres driver", func(c *Config) { c.Store.Driver = "postgres" }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }, true},
		{"negative max records", func(c *Config) { c.Store.MaxRecords = -1 }, true},
		{"inverted window", func(c *Config) { c.Store.Since = "2024-02"; c.Store.Until = "2024-01" }, true},
		{"unknown view", func(c *Config) { c.UI.DefaultView = "printers" }, true},
		{"empty view", func(c *Config) { c.UI.DefaultView = "" }, false},
		{"risk above 10", func(c *Config) { c.Thresholds.HighRisk = 11 }, true},
		{"cpu above 100", func(c *Config) { c.Thresholds.HighCPUPercent = 150 }, true},
		{"negative bytes", func(c *Config) { c.Thresholds.LargeUploadBytes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
