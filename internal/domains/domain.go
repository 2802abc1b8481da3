// Package domains defines the ten telemetry domains: their table schemas,
// filters, statistics, agent payload mapping and built-in sample records.
package domains

import (
	"maps"
	"slices"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Domain is one view's configuration.
type Domain struct {
	ID          model.DomainID
	Title       string
	Heading     string
	Description string
	// Noun names the records in summaries ("sessions", "connections").
	Noun   string
	Schema *table.Schema
	// Section is the agent payload key holding this domain's entries.
	// Empty for domains that are not fed by the agent.
	Section string
	// AgentFields maps agent field names to column keys.
	AgentFields map[string]string
	Samples     []model.Record
}

// ColumnFor returns the column key for an agent field or CSV header,
// matching agent names and column keys case-insensitively. An exact agent
// name wins; among names differing only by case the first in sorted order
// wins.
func (d *Domain) ColumnFor(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if key, ok := d.AgentFields[name]; ok {
		return key, true
	}
	for _, agent := range slices.Sorted(maps.Keys(d.AgentFields)) {
		if strings.EqualFold(agent, name) {
			return d.AgentFields[agent], true
		}
	}
	for _, c := range d.Schema.Columns {
		if strings.EqualFold(c.Key, name) {
			return c.Key, true
		}
	}
	return "", false
}

// Thresholds are the per-domain constants behind risk filters and stats.
type Thresholds struct {
	HighRisk           float64
	LargeTransferBytes float64
	LargeUploadBytes   float64
	HighVolumeBytes    float64
	HighCPUPercent     float64
	InternalPrefix     string
	CompanyDomain      string
	ExternalUserMarker string
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighRisk:           7,
		LargeTransferBytes: 1000000,
		LargeUploadBytes:   5000000,
		HighVolumeBytes:    100000,
		HighCPUPercent:     10,
		InternalPrefix:     "192.168",
		CompanyDomain:      "company.com",
		ExternalUserMarker: ".ext",
	}
}

func highRisk(t Thresholds) table.Predicate {
	return func(r model.Record) bool {
		return r.Float(model.KeyRisk) >= t.HighRisk
	}
}

func externalUser(t Thresholds) table.Predicate {
	return func(r model.Record) bool {
		return r.Contains(model.KeyUser, t.ExternalUserMarker)
	}
}

func equals(key, value string) table.Predicate {
	return func(r model.Record) bool {
		return r.Is(key, value)
	}
}

func contains(key, sub string) table.Predicate {
	return func(r model.Record) bool {
		return r.Contains(key, sub)
	}
}

func oneOf(key string, values ...string) table.Predicate {
	return func(r model.Record) bool {
		for _, v := range values {
			if r.Is(key, v) {
				return true
			}
		}
		return false
	}
}

func greaterThan(key string, limit float64) table.Predicate {
	return func(r model.Record) bool {
		return r.Float(key) > limit
	}
}

func either(preds ...table.Predicate) table.Predicate {
	return func(r model.Record) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

func col(key, label string, sortable bool, kind table.Kind) table.Column {
	return table.Column{Key: key, Label: label, Sortable: sortable, Kind: kind}
}

func timestampColumn() table.Column {
	return col(model.KeyTimestamp, "Timestamp", true, table.KindText)
}

func userColumn() table.Column {
	return col(model.KeyUser, "User", true, table.KindText)
}

func riskColumn() table.Column {
	return col(model.KeyRisk, "Risk Score", true, table.KindRisk)
}

func highRiskFilter(t Thresholds) table.Filter {
	return table.Filter{ID: "high-risk", Label: "High Risk", Match: highRisk(t)}
}

func total(label string) table.Stat {
	return table.Stat{Name: "total", Label: label, Compute: table.Total()}
}

func highRiskStat(label string, t Thresholds) table.Stat {
	return table.Stat{Name: "highRisk", Label: label, Compute: table.Count(highRisk(t))}
}
