package config

import (
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/source"
)

// Config represents the complete .insiderwatch.yaml configuration file.
type Config struct {
	Store      StoreConfig     `yaml:"store" mapstructure:"store"`
	Thresholds ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Export     ExportConfig    `yaml:"export" mapstructure:"export"`
	UI         UIConfig        `yaml:"ui" mapstructure:"ui"`
}

// StoreConfig selects the log store views read from. An empty DSN means the
// built-in sample records are shown.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver" mapstructure:"driver"`

	// DSN is the SQLite file path or PostgreSQL connection string.
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// MaxRecords caps the records loaded per view. Zero loads all.
	MaxRecords int `yaml:"max_records" mapstructure:"max_records"`

	// Since and Until bound the timestamp column. Timestamps compare as text.
	Since string `yaml:"since" mapstructure:"since"`
	Until string `yaml:"until" mapstructure:"until"`

	// Search keeps only records whose search fields contain this text,
	// matched by the store before the view's own search applies.
	Search string `yaml:"search" mapstructure:"search"`
}

// Window returns the load restriction for a store source.
func (s StoreConfig) Window() source.Window {
	return source.Window{Since: s.Since, Until: s.Until, MaxRecords: s.MaxRecords, Search: s.Search}
}

// ThresholdConfig holds the constants behind the domain filters and stats.
type ThresholdConfig struct {
	HighRisk           float64 `yaml:"high_risk" mapstructure:"high_risk"`
	LargeTransferBytes float64 `yaml:"large_transfer_bytes" mapstructure:"large_transfer_bytes"`
	LargeUploadBytes   float64 `yaml:"large_upload_bytes" mapstructure:"large_upload_bytes"`
	HighVolumeBytes    float64 `yaml:"high_volume_bytes" mapstructure:"high_volume_bytes"`
	HighCPUPercent     float64 `yaml:"high_cpu_percent" mapstructure:"high_cpu_percent"`
	InternalPrefix     string  `yaml:"internal_prefix" mapstructure:"internal_prefix"`
	CompanyDomain      string  `yaml:"company_domain" mapstructure:"company_domain"`
	ExternalUserMarker string  `yaml:"external_user_marker" mapstructure:"external_user_marker"`
}

// Domains converts the thresholds for the domain catalog.
func (t ThresholdConfig) Domains() domains.Thresholds {
	return domains.Thresholds{
		HighRisk:           t.HighRisk,
		LargeTransferBytes: t.LargeTransferBytes,
		LargeUploadBytes:   t.LargeUploadBytes,
		HighVolumeBytes:    t.HighVolumeBytes,
		HighCPUPercent:     t.HighCPUPercent,
		InternalPrefix:     t.InternalPrefix,
		CompanyDomain:      t.CompanyDomain,
		ExternalUserMarker: t.ExternalUserMarker,
	}
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	// Formatted writes cell text instead of stored values.
	Formatted bool `yaml:"formatted" mapstructure:"formatted"`
}

// UIConfig controls the interactive front ends.
type UIConfig struct {
	// DefaultView is the view shown first.
	DefaultView string `yaml:"default_view" mapstructure:"default_view"`
}

// DefaultConfig returns a config with the stock settings.
func DefaultConfig() *Config {
	t := domains.DefaultThresholds()
	return &Config{
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Thresholds: ThresholdConfig{
			HighRisk:           t.HighRisk,
			LargeTransferBytes: t.LargeTransferBytes,
			LargeUploadBytes:   t.LargeUploadBytes,
			HighVolumeBytes:    t.HighVolumeBytes,
			HighCPUPercent:     t.HighCPUPercent,
			InternalPrefix:     t.InternalPrefix,
			CompanyDomain:      t.CompanyDomain,
			ExternalUserMarker: t.ExternalUserMarker,
		},
		Export: ExportConfig{Formatted: true},
		UI:     UIConfig{DefaultView: "dashboard"},
	}
}
