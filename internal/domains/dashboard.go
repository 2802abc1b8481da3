package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// dashboardDomain backs the escalated alerts panel on the dashboard.
func dashboardDomain(Thresholds) *Domain {
	critical := equals("severity", "critical")

	return &Domain{
		ID:          model.Dashboard,
		Title:       "Dashboard",
		Heading:     "Security Dashboard",
		Description: "Overview of insider risk across all monitored activity",
		Noun:        "escalated alerts",
		Schema: &table.Schema{
			Columns: []table.Column{
				col("alert", "Alert", true, table.KindText),
				col("escalatedBy", "Escalated By", true, table.KindText),
				col("severity", "Severity", true, table.KindSeverity),
				col("time", "Time", false, table.KindText),
			},
			SearchFields: []string{"alert", "escalatedBy"},
			Filters: []table.Filter{
				{ID: "critical", Label: "Critical", Match: critical},
				{ID: "high", Label: "High", Match: equals("severity", "high")},
			},
			Stats: []table.Stat{
				total("Escalated"),
				{Name: "critical", Label: "Critical", Compute: table.Count(critical)},
			},
		},
		Samples: []model.Record{
			{"alert": "OSINT Impossible Travel", "escalatedBy": "zblutro@threesilence.com", "severity": "critical", "time": "2 hours ago"},
			{"alert": "OSINT Impossible Travel", "escalatedBy": "suraj.dang@threesilence.com", "severity": "high", "time": "4 hours ago"},
			{"alert": "Missing Critical Patches", "escalatedBy": "suraj.dang@threesilence.com", "severity": "medium", "time": "6 hours ago"},
			{"alert": "Dark Web Leaks", "escalatedBy": "suraj.dang@threesilence.com", "severity": "high", "time": "8 hours ago"},
		},
	}
}
