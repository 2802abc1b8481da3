package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

func networkSchema() *Schema {
	return &Schema{
		Columns: []Column{
			{Key: "destIP", Label: "Destination IP", Sortable: true},
			{Key: "dnsQuery", Label: "DNS Query", Sortable: false},
			{Key: "bytesSent", Label: "Bytes Sent", Sortable: true, Kind: KindBytes},
			{Key: "connectionStatus", Label: "Status", Sortable: true, Kind: KindStatus},
			{Key: "user", Label: "User", Sortable: true},
			{Key: "riskScore", Label: "Risk Score", Sortable: true, Kind: KindRisk},
		},
		SearchFields: []string{"destIP", "dnsQuery", "user"},
		Filters: []Filter{
			{ID: "blocked", Label: "Blocked", Match: func(r model.Record) bool { return r.Is("connectionStatus", "Blocked") }},
			{ID: "high-risk", Label: "High Risk", Match: func(r model.Record) bool { return r.Float("riskScore") >= 7 }},
		},
		Stats: []Stat{
			{Name: "total", Label: "Total", Compute: Total()},
			{Name: "highRisk", Label: "High Risk", Compute: Count(func(r model.Record) bool { return r.Float("riskScore") >= 7 })},
		},
	}
}

func networkRecords() []model.Record {
	return []model.Record{
		{"destIP": "8.8.8.8", "dnsQuery": "google.com", "bytesSent": 128.0, "connectionStatus": "Allowed", "user": "john.doe", "riskScore": 1.0},
		{"destIP": "185.199.108.153", "dnsQuery": "github.com", "bytesSent": 2048.0, "connectionStatus": "Allowed", "user": "sarah.wilson", "riskScore": 2.0},
		{"destIP": "192.168.50.200", "dnsQuery": "internal-server.company.com", "bytesSent": 512000.0, "connectionStatus": "Allowed", "user": "admin", "riskScore": 5.0},
		{"destIP": "45.32.105.15", "dnsQuery": "suspicious-domain.tk", "bytesSent": 1048576.0, "connectionStatus": "Blocked", "user": "unknown", "riskScore": 10.0},
		{"destIP": "151.101.193.140", "dnsQuery": "reddit.com", "bytesSent": 4096.0, "connectionStatus": "Allowed", "user": "mike.johnson", "riskScore": 3.0},
	}
}

func riskScores(records []model.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Float("riskScore")
	}
	return out
}

func TestSearch_EmptyQueryIsIdentity(t *testing.T) {
	records := networkRecords()
	got := Search(records, "", []string{"destIP"})
	assert.Equal(t, records, got)
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	records := networkRecords()

	got := Search(records, "GITHUB", []string{"destIP", "dnsQuery", "user"})
	require.Len(t, got, 1)
	assert.Equal(t, "sarah.wilson", got[0].String("user"))

	got = Search(records, "192.168", []string{"destIP", "dnsQuery", "user"})
	require.Len(t, got, 1)
	assert.Equal(t, "admin", got[0].String("user"))
}

func TestSearch_OnlyListedFields(t *testing.T) {
	records := networkRecords()
	// "Blocked" lives in connectionStatus, which is not searchable.
	got := Search(records, "blocked", []string{"destIP", "dnsQuery", "user"})
	assert.Empty(t, got)
}

func TestSearch_ConfidentialPaths(t *testing.T) {
	records := []model.Record{
		{"filePath": `C:\Users\john\Confidential\plan.docx`, "user": "john"},
		{"filePath": `C:\temp\notes.txt`, "user": "sarah", "sensitivityLabel": "Confidential"},
		{"filePath": `D:\share\CONFIDENTIAL_budget.xlsx`, "user": "mike"},
	}
	got := Search(records, "confidential", []string{"filePath", "user"})
	require.Len(t, got, 2)
	assert.Equal(t, "john", got[0].String("user"))
	assert.Equal(t, "mike", got[1].String("user"))
}

func TestApplyFilter_NilIsIdentity(t *testing.T) {
	records := networkRecords()
	assert.Equal(t, records, ApplyFilter(records, nil))
}

func TestApplyFilter_HighRiskNetwork(t *testing.T) {
	s := networkSchema()
	got := ApplyFilter(networkRecords(), s.Predicate("high-risk"))
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Float("riskScore"))
}

func TestSchema_UnknownFilterFallsBackToAll(t *testing.T) {
	s := networkSchema()
	assert.Nil(t, s.Predicate("does-not-exist"))
	assert.Nil(t, s.Predicate(FilterAll))
	assert.Equal(t, FilterAll, s.ResolveFilter("does-not-exist"))
	assert.Equal(t, "blocked", s.ResolveFilter("blocked"))

	records := networkRecords()
	assert.Len(t, ApplyFilter(records, s.Predicate("does-not-exist")), len(records))
}

func TestSchema_FilterOptions(t *testing.T) {
	opts := networkSchema().FilterOptions()
	require.Len(t, opts, 3)
	assert.Equal(t, FilterAll, opts[0].ID)
	assert.Equal(t, "blocked", opts[1].ID)
	assert.Equal(t, "high-risk", opts[2].ID)
}

func TestSearchAndFilterCommute(t *testing.T) {
	s := networkSchema()
	records := networkRecords()
	pred := s.Predicate("high-risk")

	a := ApplyFilter(Search(records, ".tk", s.SearchFields), pred)
	b := Search(ApplyFilter(records, pred), ".tk", s.SearchFields)
	assert.Equal(t, a, b)
}

func TestSort_NoColumnKeepsOrder(t *testing.T) {
	s := networkSchema()
	records := networkRecords()
	got := Sort(records, SortState{}, s.Columns)
	assert.Equal(t, records, got)
}

func TestSort_NumericAscendingThenDescending(t *testing.T) {
	s := networkSchema()
	records := networkRecords()

	var state SortState
	state = state.Toggle(s.Columns, "riskScore")
	assert.Equal(t, Ascending, state.Direction)
	asc := Sort(records, state, s.Columns)
	assert.Equal(t, []float64{1, 2, 3, 5, 10}, riskScores(asc))

	state = state.Toggle(s.Columns, "riskScore")
	assert.Equal(t, Descending, state.Direction)
	desc := Sort(records, state, s.Columns)
	assert.Equal(t, []float64{10, 5, 3, 2, 1}, riskScores(desc))
}

func TestSort_NumericNotLexicographic(t *testing.T) {
	cols := []Column{{Key: "bytesSent", Sortable: true, Kind: KindBytes}}
	records := []model.Record{{"bytesSent": 1048576.0}, {"bytesSent": 128.0}, {"bytesSent": 4096.0}}
	got := Sort(records, SortState{Column: "bytesSent"}, cols)
	assert.Equal(t, 128.0, got[0].Float("bytesSent"))
	assert.Equal(t, 4096.0, got[1].Float("bytesSent"))
	assert.Equal(t, 1048576.0, got[2].Float("bytesSent"))
}

func TestSort_StringsLexicographic(t *testing.T) {
	s := networkSchema()
	got := Sort(networkRecords(), SortState{Column: "user"}, s.Columns)
	users := make([]string, len(got))
	for i, r := range got {
		users[i] = r.String("user")
	}
	assert.Equal(t, []string{"admin", "john.doe", "mike.johnson", "sarah.wilson", "unknown"}, users)
}

func TestSort_AbsentValuesFirst(t *testing.T) {
	cols := []Column{{Key: "v", Sortable: true}}
	records := []model.Record{{"v": "b"}, {}, {"v": "a"}}
	got := Sort(records, SortState{Column: "v"}, cols)
	assert.False(t, got[0].Has("v"))
	assert.Equal(t, "a", got[1].String("v"))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	s := networkSchema()
	records := networkRecords()
	_ = Sort(records, SortState{Column: "riskScore", Direction: Descending}, s.Columns)
	assert.Equal(t, []float64{1, 2, 5, 10, 3}, riskScores(records))
}

func TestToggle_NonSortableIsNoop(t *testing.T) {
	s := networkSchema()
	state := SortState{Column: "riskScore", Direction: Descending}

	next := state.Toggle(s.Columns, "dnsQuery")
	assert.Equal(t, state, next)

	next = state.Toggle(s.Columns, "nope")
	assert.Equal(t, state, next)
}

func TestToggle_NewColumnResetsToAscending(t *testing.T) {
	s := networkSchema()
	state := SortState{Column: "riskScore", Direction: Descending}
	next := state.Toggle(s.Columns, "user")
	assert.Equal(t, SortState{Column: "user", Direction: Ascending}, next)
}

func TestToggle_FlipsEachClick(t *testing.T) {
	s := networkSchema()
	var state SortState
	want := []Direction{Ascending, Descending, Ascending, Descending}
	for i, d := range want {
		state = state.Toggle(s.Columns, "user")
		assert.Equal(t, d, state.Direction, "click %d", i+1)
	}
}

func TestSort_UnsortableStateKeepsOrder(t *testing.T) {
	s := networkSchema()
	records := networkRecords()
	got := Sort(records, SortState{Column: "dnsQuery"}, s.Columns)
	assert.Equal(t, records, got)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "-"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536000, "1.5 MB"},
		{10485760, "10.0 MB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5120.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "FormatBytes(%v)", tt.in)
	}
}

func TestFormatCell_Bytes(t *testing.T) {
	col := Column{Key: "bytes", Kind: KindBytes}
	assert.Equal(t, "-", FormatCell(0.0, col).Text)
	assert.Equal(t, "-", FormatCell(nil, col).Text)
	assert.Equal(t, "1.0 KB", FormatCell(1024.0, col).Text)
	assert.Equal(t, "1.5 MB", FormatCell(1536000, col).Text)
}

func TestFormatCell_Status(t *testing.T) {
	col := Column{Key: "status", Kind: KindStatus}
	assert.Equal(t, TagNegative, FormatCell("Failed", col).Tag)
	assert.Equal(t, TagNegative, FormatCell("Blocked", col).Tag)
	assert.Equal(t, TagNegative, FormatCell("Denied", col).Tag)
	assert.Equal(t, TagPositive, FormatCell("Success", col).Tag)
	assert.Equal(t, TagPositive, FormatCell("Allowed", col).Tag)
	assert.Equal(t, TagNeutral, FormatCell("Monitored", col).Tag)
	assert.Equal(t, "Monitored", FormatCell("Monitored", col).Text)
}

func TestFormatCell_Risk(t *testing.T) {
	col := Column{Key: "riskScore", Kind: KindRisk}

	c := FormatCell(7.0, col)
	assert.True(t, c.Warning)
	assert.Equal(t, TagWarning, c.Tag)
	assert.Equal(t, "7", c.Text)
	assert.Equal(t, BandHigh, c.Band)

	c = FormatCell(6.0, col)
	assert.False(t, c.Warning)
	assert.Equal(t, BandHigh, c.Band)

	assert.Equal(t, BandCritical, FormatCell(9.0, col).Band)
	assert.Equal(t, BandMedium, FormatCell(4.0, col).Band)
	assert.Equal(t, BandLow, FormatCell(1.0, col).Band)
	assert.Equal(t, "-", FormatCell(nil, col).Text)
}

func TestFormatCell_TextPassThrough(t *testing.T) {
	col := Column{Key: "x"}
	assert.Equal(t, "-", FormatCell("", col).Text)
	assert.Equal(t, "-", FormatCell(nil, col).Text)
	assert.Equal(t, "hello", FormatCell("hello", col).Text)
	assert.Equal(t, "0.5", FormatCell(0.5, col).Text)
	assert.Equal(t, "0", FormatCell(0.0, col).Text)
}

func TestFormatCell_Severity(t *testing.T) {
	col := Column{Key: "severity", Kind: KindSeverity}
	assert.Equal(t, BandCritical, FormatCell("Critical", col).Band)
	assert.Equal(t, BandHigh, FormatCell("High", col).Band)
	assert.Equal(t, BandMedium, FormatCell("medium", col).Band)
	assert.Equal(t, BandLow, FormatCell("Low", col).Band)
	assert.Equal(t, BandNone, FormatCell("Unknown", col).Band)
}

func TestComputeSummary(t *testing.T) {
	records := []model.Record{
		{"mfa": "Yes", "cpu": 15.2, "bytes": 100.0},
		{"mfa": "No", "cpu": 5.8, "bytes": 200.0},
		{"mfa": "N/A", "cpu": 0.1},
		{"mfa": "Yes", "cpu": 25.7, "bytes": 1024.0},
	}
	stats := []Stat{
		{Name: "total", Compute: Total()},
		{Name: "mfa", Format: FormatPercent, Compute: Percent(func(r model.Record) bool { return r.Is("mfa", "Yes") })},
		{Name: "avgCpu", Format: FormatDecimal, Compute: Mean("cpu", 1)},
		{Name: "bytes", Format: FormatByteSize, Compute: Sum("bytes")},
	}

	s := ComputeSummary(records, stats)
	assert.Equal(t, 4.0, s.Value("total"))
	assert.Equal(t, 50.0, s.Value("mfa"))
	assert.Equal(t, "50%", s.Text("mfa"))
	assert.Equal(t, 11.7, s.Value("avgCpu"))
	assert.Equal(t, "11.7", s.Text("avgCpu"))
	assert.Equal(t, 1324.0, s.Value("bytes"))
	assert.Equal(t, "1.3 KB", s.Text("bytes"))
	assert.Equal(t, 0.0, s.Value("missing"))
	assert.Len(t, s.Values(), 4)
	assert.Equal(t, "total", s.Values()[0].Name)
}

func TestComputeSummary_EmptyCollection(t *testing.T) {
	stats := []Stat{
		{Name: "mfa", Format: FormatPercent, Compute: Percent(func(r model.Record) bool { return true })},
		{Name: "avg", Format: FormatDecimal, Compute: Mean("cpu", 1)},
	}
	s := ComputeSummary(nil, stats)
	assert.Equal(t, 0.0, s.Value("mfa"))
	assert.Equal(t, 0.0, s.Value("avg"))
}

func TestBuild_CountsAndCells(t *testing.T) {
	s := networkSchema()
	records := networkRecords()

	vm := Build(records, s, "", "blocked", SortState{})
	assert.Equal(t, 1, vm.Matched)
	assert.Equal(t, 5, vm.Total)
	assert.Equal(t, "Showing 1 of 5", vm.Showing())
	require.Len(t, vm.Cells, 1)
	assert.Equal(t, "1.0 MB", vm.Cells[0][2].Text)
	assert.Equal(t, TagNegative, vm.Cells[0][3].Tag)
	assert.True(t, vm.Cells[0][5].Warning)
}

func TestBuild_UnknownFilterReportsAll(t *testing.T) {
	vm := Build(networkRecords(), networkSchema(), "", "bogus", SortState{})
	assert.Equal(t, FilterAll, vm.FilterID)
	assert.Equal(t, 5, vm.Matched)
}

func TestBuild_SortingKeepsCounts(t *testing.T) {
	s := networkSchema()
	records := networkRecords()
	plain := Build(records, s, "com", FilterAll, SortState{})
	sorted := Build(records, s, "com", FilterAll, SortState{Column: "riskScore", Direction: Descending})
	assert.Equal(t, plain.Matched, sorted.Matched)
	assert.Equal(t, plain.Total, sorted.Total)
	assert.LessOrEqual(t, sorted.Matched, sorted.Total)
}

func TestView_Lifecycle(t *testing.T) {
	v := NewView(networkSchema(), networkRecords())

	vm := v.Render()
	assert.Equal(t, 5, vm.Matched)
	assert.Equal(t, FilterAll, v.FilterID())

	v.SetQuery("com")
	v.SetFilter("high-risk")
	assert.True(t, v.ToggleSort("riskScore"))
	assert.False(t, v.ToggleSort("dnsQuery"))

	vm = v.Render()
	assert.Equal(t, 0, vm.Matched)
	assert.Equal(t, 5, vm.Total)

	v.SetFilter("unknown-id")
	assert.Equal(t, FilterAll, v.FilterID())

	v.Reset()
	assert.Equal(t, "", v.Query())
	assert.Equal(t, FilterAll, v.FilterID())
	assert.False(t, v.SortState().Active())
}

func TestView_NextFilterCycles(t *testing.T) {
	v := NewView(networkSchema(), networkRecords())
	assert.Equal(t, "blocked", v.NextFilter())
	assert.Equal(t, "high-risk", v.NextFilter())
	assert.Equal(t, FilterAll, v.NextFilter())
}

func TestView_SummaryIgnoresFilter(t *testing.T) {
	v := NewView(networkSchema(), networkRecords())
	v.SetFilter("blocked")
	v.SetQuery("github")
	s := v.Summary()
	assert.Equal(t, 5.0, s.Value("total"))
	assert.Equal(t, 1.0, s.Value("highRisk"))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "asc", Ascending.String())
	assert.Equal(t, "desc", Descending.String())
	assert.Equal(t, Ascending, Descending.Flip())
}
