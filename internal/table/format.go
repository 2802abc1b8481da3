package table

import (
	"fmt"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

// Placeholder is rendered for empty or absent values.
const Placeholder = "-"

// WarningRisk is the risk score at which a cell carries the warning marker.
const WarningRisk = 7

// Tag classifies a rendered cell for presentation.
type Tag string

const (
	TagNone     Tag = ""
	TagPositive Tag = "positive"
	TagNegative Tag = "negative"
	TagNeutral  Tag = "neutral"
	TagWarning  Tag = "warning"
)

// Band is the colour band of a risk score or severity.
type Band string

const (
	BandNone     Band = ""
	BandLow      Band = "low"
	BandMedium   Band = "medium"
	BandHigh     Band = "high"
	BandCritical Band = "critical"
)

// Cell is a formatted value ready for display.
type Cell struct {
	Text    string `json:"text"`
	Tag     Tag    `json:"tag,omitempty"`
	Band    Band   `json:"band,omitempty"`
	Warning bool   `json:"warning,omitempty"`
}

var negativeStatus = []string{"Failed", "Failure", "Blocked", "Denied", "Quarantined"}
var positiveStatus = []string{"Success", "Allowed"}

// FormatCell renders a value according to its column kind.
func FormatCell(value interface{}, col Column) Cell {
	switch col.Kind {
	case KindBytes:
		n, ok := model.ToFloat(value)
		if !ok || n == 0 {
			return Cell{Text: Placeholder}
		}
		return Cell{Text: FormatBytes(n)}

	case KindStatus:
		text := model.ToString(value)
		if text == "" {
			return Cell{Text: Placeholder, Tag: TagNeutral}
		}
		return Cell{Text: text, Tag: StatusTag(text)}

	case KindRisk:
		n, ok := model.ToFloat(value)
		if !ok {
			return Cell{Text: Placeholder}
		}
		c := Cell{Text: model.ToString(value), Band: RiskBand(n)}
		if n >= WarningRisk {
			c.Tag = TagWarning
			c.Warning = true
		}
		return c

	case KindSeverity:
		text := model.ToString(value)
		if text == "" {
			return Cell{Text: Placeholder}
		}
		return Cell{Text: text, Band: SeverityBand(text)}

	default:
		text := model.ToString(value)
		if text == "" {
			return Cell{Text: Placeholder}
		}
		return Cell{Text: text}
	}
}

// StatusTag classifies an outcome string.
func StatusTag(status string) Tag {
	for _, s := range negativeStatus {
		if strings.EqualFold(status, s) {
			return TagNegative
		}
	}
	for _, s := range positiveStatus {
		if strings.EqualFold(status, s) {
			return TagPositive
		}
	}
	return TagNeutral
}

// RiskBand maps a 0-10 risk score onto a colour band.
func RiskBand(score float64) Band {
	switch {
	case score >= 8:
		return BandCritical
	case score >= 6:
		return BandHigh
	case score >= 4:
		return BandMedium
	default:
		return BandLow
	}
}

// SeverityBand maps a severity label onto a colour band.
func SeverityBand(severity string) Band {
	switch strings.ToLower(severity) {
	case "critical":
		return BandCritical
	case "high":
		return BandHigh
	case "medium":
		return BandMedium
	case "low":
		return BandLow
	default:
		return BandNone
	}
}

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a byte count in binary units with one decimal place.
// Non-positive counts render as the placeholder.
func FormatBytes(n float64) string {
	if n <= 0 {
		return Placeholder
	}
	unit := 0
	for n >= 1024 && unit < len(byteUnits)-1 {
		n /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", n, byteUnits[unit])
}
