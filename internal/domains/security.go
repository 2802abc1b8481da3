package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func securityDomain(t Thresholds) *Domain {
	critical := equals("severity", "Critical")
	high := equals("severity", "High")
	quarantined := equals("actionTaken", "Quarantined")
	blocked := equals("actionTaken", "Blocked")

	return &Domain{
		ID:          model.Security,
		Title:       "Security Alerts",
		Heading:     "Security Alerts & AV",
		Description: "Monitor security alerts, antivirus detections, and threat responses",
		Noun:        "alerts",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("alertId", "Alert ID", true, table.KindText),
				col("signature", "Signature", true, table.KindText),
				col("severity", "Severity", true, table.KindSeverity),
				col("involvedFile", "Involved File", false, table.KindText),
				col("involvedProcess", "Involved Process", false, table.KindText),
				col("actionTaken", "Action Taken", true, table.KindStatus),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"signature", "involvedFile", model.KeyUser},
			Filters: []table.Filter{
				{ID: "critical", Label: "Critical", Match: critical},
				{ID: "high", Label: "High", Match: high},
				{ID: "quarantined", Label: "Quarantined", Match: quarantined},
				{ID: "blocked", Label: "Blocked", Match: blocked},
			},
			Stats: []table.Stat{
				total("Total Alerts"),
				{Name: "criticalAlerts", Label: "Critical", Compute: table.Count(critical)},
				{Name: "quarantinedThreats", Label: "Quarantined", Compute: table.Count(quarantined)},
				{Name: "blockedActions", Label: "Blocked", Compute: table.Count(blocked)},
			},
		},
		Section: "av_alerts",
		AgentFields: map[string]string{
			"Timestamp":       model.KeyTimestamp,
			"AlertID":         "alertId",
			"Signature":       "signature",
			"Severity":        "severity",
			"InvolvedFile":    "involvedFile",
			"InvolvedProcess": "involvedProcess",
			"ActionTaken":     "actionTaken",
			"User":            model.KeyUser,
			"RiskScore":       model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "alertId": "AV-2024-0001", "signature": "Trojan.Generic.KD.123456",
				"severity": "Critical", "involvedFile": `C:\temp\suspicious.exe`, "involvedProcess": "suspicious.exe (PID: 3456)",
				"actionTaken": "Quarantined", "user": "john.doe", "riskScore": 10.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "alertId": "FW-2024-0023", "signature": "Outbound Connection Block",
				"severity": "High", "involvedFile": "", "involvedProcess": "chrome.exe (PID: 1234)",
				"actionTaken": "Blocked", "user": "sarah.wilson", "riskScore": 7.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "alertId": "AV-2024-0002", "signature": "Potentially Unwanted Program",
				"severity": "Medium", "involvedFile": `C:\Users\mike\Downloads\freeware.exe`, "involvedProcess": "freeware.exe (PID: 7890)",
				"actionTaken": "Monitored", "user": "mike.johnson", "riskScore": 5.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "alertId": "IDS-2024-0015", "signature": "Suspicious PowerShell Activity",
				"severity": "High", "involvedFile": `C:\temp\script.ps1`, "involvedProcess": "powershell.exe (PID: 5678)",
				"actionTaken": "Blocked", "user": "admin", "riskScore": 8.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "alertId": "DLP-2024-0008", "signature": "Sensitive Data Transfer",
				"severity": "High", "involvedFile": `E:\confidential_data.xlsx`, "involvedProcess": "explorer.exe (PID: 2345)",
				"actionTaken": "Blocked", "user": "contractor.ext", "riskScore": 9.0,
			},
		},
	}
}
