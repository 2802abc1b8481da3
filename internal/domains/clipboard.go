package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func clipboardDomain(t Thresholds) *Domain {
	clipboard := contains("eventType", "Clipboard")
	screen := contains("eventType", "Screen")

	return &Domain{
		ID:          model.Clipboard,
		Title:       "Clipboard & Capture",
		Heading:     "Clipboard & Screen Capture",
		Description: "Monitor clipboard activities and screen capture events",
		Noun:        "events",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("eventType", "Event Type", true, table.KindText),
				col("clipboardEvent", "Clipboard Event", true, table.KindText),
				col("clipboardContentMeta", "Content Meta", false, table.KindText),
				col("screenCaptureTrigger", "Capture Trigger", true, table.KindText),
				col("contentPreview", "Content Preview", false, table.KindText),
				col("application", "Application", true, table.KindText),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"contentPreview", "application", model.KeyUser},
			Filters: []table.Filter{
				highRiskFilter(t),
				{ID: "clipboard", Label: "Clipboard", Match: clipboard},
				{ID: "screen-capture", Label: "Screen Capture", Match: screen},
				{ID: "external-users", Label: "External Users", Match: externalUser(t)},
			},
			Stats: []table.Stat{
				total("Total Events"),
				{Name: "clipboardEvents", Label: "Clipboard Events", Compute: table.Count(clipboard)},
				{Name: "screenCaptureEvents", Label: "Screen Captures", Compute: table.Count(screen)},
				highRiskStat("High Risk", t),
			},
		},
		Section: "clipboard_screen",
		AgentFields: map[string]string{
			"Timestamp":            model.KeyTimestamp,
			"EventType":            "eventType",
			"ClipboardEvent":       "clipboardEvent",
			"ClipboardContentMeta": "clipboardContentMeta",
			"ScreenCaptureTrigger": "screenCaptureTrigger",
			"ContentPreview":       "contentPreview",
			"Application":          "application",
			"User":                 model.KeyUser,
			"RiskScore":            model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "eventType": "Clipboard Copy", "clipboardEvent": "Copy",
				"clipboardContentMeta": "Text (256 chars)", "screenCaptureTrigger": "",
				"contentPreview": "Employee salary information for Q4...", "application": "Excel",
				"user": "john.doe", "riskScore": 8.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "eventType": "Screen Capture", "clipboardEvent": "",
				"clipboardContentMeta": "", "screenCaptureTrigger": "PrintScreen",
				"contentPreview": "Desktop screenshot captured", "application": "Windows",
				"user": "sarah.wilson", "riskScore": 6.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "eventType": "Clipboard Cut", "clipboardEvent": "Cut",
				"clipboardContentMeta": "File paths (5 files)", "screenCaptureTrigger": "",
				"contentPreview": `C:\Confidential\*.xlsx`, "application": "File Explorer",
				"user": "mike.johnson", "riskScore": 7.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "eventType": "Screen Recording", "clipboardEvent": "",
				"clipboardContentMeta": "", "screenCaptureTrigger": "Screen Recording Software",
				"contentPreview": "Screen recording detected (5 minutes)", "application": "OBS Studio",
				"user": "contractor.ext", "riskScore": 9.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "eventType": "Clipboard Copy", "clipboardEvent": "Copy",
				"clipboardContentMeta": "Image (1920x1080, PNG)", "screenCaptureTrigger": "",
				"contentPreview": "Dashboard screenshot", "application": "Chrome",
				"user": "admin", "riskScore": 4.0,
			},
		},
	}
}
