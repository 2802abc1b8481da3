package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/database"
	"github.com/cdtdelta/insiderwatch/internal/model"
)

// Validate checks the config for values the rest of the program cannot use.
func Validate(cfg *Config) error {
	if !slices.Contains(database.Drivers, cfg.Store.Driver) {
		return fmt.Errorf("unsupported store driver %q (expected one of: %s)",
			cfg.Store.Driver, strings.Join(database.Drivers, ", "))
	}
	if cfg.Store.MaxRecords < 0 {
		return fmt.Errorf("store.max_records must not be negative, got %d", cfg.Store.MaxRecords)
	}
	if cfg.Store.Since != "" && cfg.Store.Until != "" && cfg.Store.Since > cfg.Store.Until {
		return fmt.Errorf("store.since (%s) is after store.until (%s)", cfg.Store.Since, cfg.Store.Until)
	}

	if cfg.UI.DefaultView != "" {
		if _, ok := model.ParseDomainID(cfg.UI.DefaultView); !ok {
			return fmt.Errorf("unknown ui.default_view %q", cfg.UI.DefaultView)
		}
	}

	return validateThresholds(cfg.Thresholds)
}

func validateThresholds(t ThresholdConfig) error {
	if t.HighRisk < 0 || t.HighRisk > 10 {
		return fmt.Errorf("thresholds.high_risk must be between 0 and 10, got %v", t.HighRisk)
	}
	if t.HighCPUPercent < 0 || t.HighCPUPercent > 100 {
		return fmt.Errorf("thresholds.high_cpu_percent must be between 0 and 100, got %v", t.HighCPUPercent)
	}

	bytes := map[string]float64{
		"large_transfer_bytes": t.LargeTransferBytes,
		"large_upload_bytes":   t.LargeUploadBytes,
		"high_volume_bytes":    t.HighVolumeBytes,
	}
	for _, name := range []string{"large_transfer_bytes", "large_upload_bytes", "high_volume_bytes"} {
		if bytes[name] < 0 {
			return fmt.Errorf("thresholds.%s must not be negative, got %v", name, bytes[name])
		}
	}
	return nil
}
