package dashboard

import "github.com/cdtdelta/insiderwatch/internal/chart"

// Overview panels. These figures come from the upstream analytics feed and
// are shipped as fixtures until that feed is wired in.

var metricCards = []Metric{
	{Title: "High Severity Alerts", Value: "151", Tone: ToneRed, Trend: "+12%"},
	{Title: "Threat Notifications", Value: "7", Tone: ToneOrange, Trend: "-3%"},
	{Title: "Vulnerabilities", Value: "4", Tone: ToneYellow, Trend: "+1"},
	{Title: "Devices at Risk", Value: "3", Tone: ToneRed, Trend: "0%"},
	{Title: "Users at Risk", Value: "11", Tone: ToneRed, Trend: "+2"},
}

var detectedArea = []chart.Slice{
	{Label: "Dark Web", Value: 99, Color: "#2563EB"},
	{Label: "Email", Value: 61, Color: "#DC2626"},
	{Label: "Endpoint", Value: 57, Color: "#EA580C"},
	{Label: "Network", Value: 29, Color: "#16A34A"},
	{Label: "Other", Value: 6, Color: "#6B7280"},
}

var tactics = []chart.Slice{
	{Label: "Collection", Value: 39, Color: "#2563EB"},
	{Label: "Exfiltration", Value: 36, Color: "#DC2626"},
	{Label: "Initial Access", Value: 38, Color: "#EA580C"},
	{Label: "Defence Eva.", Value: 24, Color: "#EAB308"},
	{Label: "Execution", Value: 21, Color: "#16A34A"},
	{Label: "Discovery", Value: 19, Color: "#8B5CF6"},
}

var alertTimes = []string{"00:00", "04:00", "08:00", "12:00", "16:00", "20:00"}

var alertSeries = []chart.Series{
	{Name: "Dark Web", Color: "#DC2626", Values: []float64{2, 4, 8, 15, 12, 6}},
	{Name: "Email", Color: "#16A34A", Values: []float64{1, 2, 12, 8, 6, 3}},
	{Name: "Endpoint", Color: "#2563EB", Values: []float64{3, 5, 6, 10, 8, 4}},
	{Name: "Network", Color: "#EA580C", Values: []float64{0, 1, 3, 5, 4, 2}},
	{Name: "Other", Color: "#6B7280", Values: []float64{1, 0, 2, 1, 3, 1}},
}

var topUsers = []chart.Bar{
	{Label: "Rosemary Malone", Value: 78, Risk: "high"},
	{Label: "Brad Brooks", Value: 230, Risk: "critical"},
	{Label: "Charlie Cassette", Value: 100, Risk: "high"},
	{Label: "Clarence Beachum", Value: 100, Risk: "high"},
	{Label: "Donald Daniels", Value: 50, Risk: "medium"},
}

var malware = []chart.Bar{
	{Label: "Jan", Value: 45},
	{Label: "Feb", Value: 52},
	{Label: "Mar", Value: 78},
	{Label: "Apr", Value: 65},
	{Label: "May", Value: 89},
	{Label: "Jun", Value: 72},
}
