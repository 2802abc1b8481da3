package termui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/insiderwatch/internal/dashboard"
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/source"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func securityView(t *testing.T, query, filter string, sort table.SortState) (*domains.Domain, *table.ViewModel, table.Summary) {
	t.Helper()
	c := domains.Default()
	d, err := c.Get(model.Security)
	require.NoError(t, err)
	records, err := c.Samples(model.Security)
	require.NoError(t, err)
	return d, table.Build(records, d.Schema, query, filter, sort), table.ComputeSummary(records, d.Schema.Stats)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "3", CellText(table.Cell{Text: "3"}))
	assert.Equal(t, SymbolWarning+" 9", CellText(table.Cell{Text: "9", Warning: true}))

	long := strings.Repeat("x", MaxCellWidth+10)
	assert.Len(t, []rune(CellText(table.Cell{Text: long})), MaxCellWidth)
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "12,345", FormatStat(table.StatValue{Value: 12345, Text: "12345"}))
	assert.Equal(t, "50%", FormatStat(table.StatValue{Value: 50, Text: "50%"}))
	assert.Equal(t, "11.7", FormatStat(table.StatValue{Value: 11.7, Text: "11.7"}))
	assert.Equal(t, "13.4 MB", FormatStat(table.StatValue{Value: 14070336, Text: "13.4 MB"}))
}

func TestColors(t *testing.T) {
	assert.Equal(t, ColorBandCritical, BandColor(table.BandCritical))
	assert.Equal(t, ColorBandLow, BandColor(table.BandLow))
	assert.Equal(t, ColorPrimary, BandColor(table.BandNone))
	assert.Equal(t, ColorError, TagColor(table.TagNegative))
	assert.Equal(t, ColorSuccess, TagColor(table.TagPositive))
	assert.Equal(t, ColorWarning, TagColor(table.TagWarning))
}

func TestRenderTable(t *testing.T) {
	_, vm, _ := securityView(t, "", table.FilterAll, table.SortState{})

	out := RenderTable(vm, DefaultStyles())

	assert.Contains(t, out, "Alert ID")
	assert.Contains(t, out, "Action Taken")
	assert.Contains(t, out, "AV-2024-0001")
	assert.Contains(t, out, "Quarantined")
	assert.Contains(t, out, SymbolWarning+" 10")
}

func TestRenderList(t *testing.T) {
	out := RenderList([]string{"ID", "View"}, [][]string{{"network", "Network Activity"}}, DefaultStyles())

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Network Activity")
}

func TestRenderViewEmpty(t *testing.T) {
	d, vm, sum := securityView(t, "no-such-thing", table.FilterAll, table.SortState{})

	out := RenderView(d, vm, sum, DefaultStyles())

	assert.Contains(t, out, "Security Alerts & AV")
	assert.Contains(t, out, "No alerts match")
	assert.Contains(t, out, "Showing 0 of 5")
}

func TestShowingLine(t *testing.T) {
	sort := table.SortState{Column: model.KeyRisk, Direction: table.Descending}
	d, vm, _ := securityView(t, "exe", "blocked", sort)

	line := ShowingLine(vm, d.Schema)

	assert.True(t, strings.HasPrefix(line, "Showing "))
	assert.Contains(t, line, "filter: Blocked")
	assert.Contains(t, line, `search: "exe"`)
	assert.Contains(t, line, "sort: Risk Score desc")
}

func TestRenderSummary(t *testing.T) {
	_, _, sum := securityView(t, "", table.FilterAll, table.SortState{})

	out := RenderSummary(sum, DefaultStyles())

	assert.Contains(t, out, "Total Alerts")
	assert.Contains(t, out, "Quarantined")
	assert.Empty(t, RenderSummary(table.Summary{}, DefaultStyles()))
}

func TestRenderDashboard(t *testing.T) {
	c := domains.Default()
	db, err := dashboard.Build(c, source.NewStatic(c))
	require.NoError(t, err)

	out := RenderDashboard(db, DefaultStyles())

	assert.Contains(t, out, "Security Dashboard")
	assert.Contains(t, out, "High Severity Alerts")
	assert.Contains(t, out, "High Risk by Domain")
	assert.Contains(t, out, "Escalated Alerts")
	assert.Contains(t, out, "█")
}
