// Package termui renders view models for the terminal with lipgloss.
package termui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Band colors, lowest to highest
const (
	ColorBandLow      lipgloss.Color = "2"   // Green
	ColorBandMedium   lipgloss.Color = "3"   // Yellow
	ColorBandHigh     lipgloss.Color = "208" // Orange
	ColorBandCritical lipgloss.Color = "1"   // Red
)

// SymbolWarning marks cells at or above the warning risk.
const SymbolWarning = "⚠"

// BandColor returns the color of a risk or severity band. BandNone maps to
// the primary text color.
func BandColor(b table.Band) lipgloss.Color {
	switch b {
	case table.BandLow:
		return ColorBandLow
	case table.BandMedium:
		return ColorBandMedium
	case table.BandHigh:
		return ColorBandHigh
	case table.BandCritical:
		return ColorBandCritical
	default:
		return ColorPrimary
	}
}

// TagColor returns the color of a status tag.
func TagColor(t table.Tag) lipgloss.Color {
	switch t {
	case table.TagPositive:
		return ColorSuccess
	case table.TagNegative:
		return ColorError
	case table.TagWarning:
		return ColorWarning
	case table.TagNeutral:
		return ColorMuted
	default:
		return ColorPrimary
	}
}

// CellStyle returns the style of a formatted cell. A band wins over a tag.
func CellStyle(c table.Cell) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(ColorPrimary)
	switch {
	case c.Band != table.BandNone:
		s = s.Foreground(BandColor(c.Band))
	case c.Tag != table.TagNone:
		s = s.Foreground(TagColor(c.Tag))
	}
	if c.Warning {
		s = s.Bold(true)
	}
	return s
}

// Styles groups the fixed styles used by the renderers.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Border lipgloss.Style
	Muted  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Card   lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary),
		Header: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(ColorMuted),
		Muted:  lipgloss.NewStyle().Foreground(ColorMuted),
		Label:  lipgloss.NewStyle().Foreground(ColorMuted),
		Value:  lipgloss.NewStyle().Bold(true).Foreground(ColorInfo),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1),
	}
}
