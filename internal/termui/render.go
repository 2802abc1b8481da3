package termui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/cdtdelta/insiderwatch/internal/chart"
	"github.com/cdtdelta/insiderwatch/internal/dashboard"
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// MaxCellWidth truncates long cell text in static tables.
const MaxCellWidth = 40

// BarWidth is the width of a full dashboard bar.
const BarWidth = 30

// CellText returns the display text of a cell, with the warning marker and
// truncated to MaxCellWidth.
func CellText(c table.Cell) string {
	text := c.Text
	if c.Warning {
		text = SymbolWarning + " " + text
	}
	return Truncate(text, MaxCellWidth)
}

// Truncate shortens s to width runes, ending in an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// FormatStat returns a summary value for display. Plain counts get
// thousands separators.
func FormatStat(sv table.StatValue) string {
	n := int64(math.Round(sv.Value))
	if sv.Text == strconv.FormatInt(n, 10) {
		return humanize.Comma(n)
	}
	return sv.Text
}

// RenderTable renders the rows of vm as a bordered static table.
func RenderTable(vm *table.ViewModel, s Styles) string {
	headers := make([]string, len(vm.Columns))
	for i, c := range vm.Columns {
		headers[i] = c.Label
	}

	rows := make([][]string, len(vm.Cells))
	for i, cells := range vm.Cells {
		row := make([]string, len(cells))
		for j, c := range cells {
			row[j] = CellText(c)
		}
		rows[i] = row
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return s.Header
			}
			if row < 0 || row >= len(vm.Cells) || col >= len(vm.Cells[row]) {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return CellStyle(vm.Cells[row][col]).Padding(0, 1)
		})

	return t.String()
}

// RenderList renders plain rows under headers with the table border.
func RenderList(headers []string, rows [][]string, s Styles) string {
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return s.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

// RenderSummary renders the summary cards side by side.
func RenderSummary(sum table.Summary, s Styles) string {
	values := sum.Values()
	if len(values) == 0 {
		return ""
	}
	cards := make([]string, len(values))
	for i, v := range values {
		cards[i] = s.Card.Render(s.Label.Render(v.Label) + "\n" + s.Value.Render(FormatStat(v)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// ShowingLine describes what the table currently shows.
func ShowingLine(vm *table.ViewModel, schema *table.Schema) string {
	parts := []string{vm.Showing()}
	if vm.FilterID != table.FilterAll {
		for _, o := range schema.FilterOptions() {
			if o.ID == vm.FilterID {
				parts = append(parts, "filter: "+o.Label)
				break
			}
		}
	}
	if vm.Query != "" {
		parts = append(parts, fmt.Sprintf("search: %q", vm.Query))
	}
	if vm.Sort.Active() {
		label := vm.Sort.Column
		if c, ok := schema.Column(vm.Sort.Column); ok {
			label = c.Label
		}
		parts = append(parts, fmt.Sprintf("sort: %s %s", label, vm.Sort.Direction))
	}
	return strings.Join(parts, "  ·  ")
}

// RenderView renders a full view: heading, summary cards, table and the
// showing line.
func RenderView(d *domains.Domain, vm *table.ViewModel, sum table.Summary, s Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(d.Heading))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(d.Description))
	sb.WriteString("\n\n")
	if cards := RenderSummary(sum, s); cards != "" {
		sb.WriteString(cards)
		sb.WriteString("\n")
	}
	if len(vm.Cells) == 0 {
		sb.WriteString(s.Muted.Render("No " + d.Noun + " match the current search and filter."))
	} else {
		sb.WriteString(RenderTable(vm, s))
	}
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(ShowingLine(vm, d.Schema)))
	return sb.String()
}

// RenderBars renders horizontal bars coloured by band.
func RenderBars(bars []chart.BarLayout, s Styles) string {
	width := 0
	for _, b := range bars {
		width = max(width, lipgloss.Width(b.Label))
	}

	var sb strings.Builder
	for _, b := range bars {
		n := int(math.Round(b.Percent / 100 * BarWidth))
		if n == 0 && b.Value > 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(BandColor(b.Band)).Render(strings.Repeat("█", n))
		fmt.Fprintf(&sb, "%-*s %s %s\n", width, b.Label, bar, s.Muted.Render(humanize.Ftoa(b.Value)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderDashboard renders the overview screen.
func RenderDashboard(db *dashboard.Dashboard, s Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(db.Title))
	sb.WriteString("\n\n")

	cards := make([]string, len(db.Metrics))
	for i, m := range db.Metrics {
		value := m.Value
		if m.Trend != "" {
			value += " " + s.Muted.Render(trendArrow(m)+m.Trend)
		}
		cards[i] = s.Card.Render(s.Label.Render(m.Title) + "\n" + s.Value.Render(value))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	sb.WriteString("\n\n")

	sb.WriteString(s.Title.Render("High Risk by Domain"))
	sb.WriteString("\n")
	sb.WriteString(RenderBars(db.RiskBars, s))
	sb.WriteString("\n\n")

	sb.WriteString(s.Title.Render("Top Users at Risk"))
	sb.WriteString("\n")
	sb.WriteString(RenderBars(db.TopUsers, s))
	sb.WriteString("\n\n")

	sb.WriteString(s.Title.Render("Escalated Alerts"))
	sb.WriteString("\n")
	sb.WriteString(RenderTable(db.Escalated, s))
	return sb.String()
}

func trendArrow(m dashboard.Metric) string {
	switch m.TrendDirection() {
	case "up":
		return "▲ "
	case "down":
		return "▼ "
	default:
		return ""
	}
}
