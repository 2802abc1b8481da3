package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func identityDomain(t Thresholds) *Domain {
	failed := oneOf("authResult", "Failed", "Failure")
	noMFA := equals("mfaUsed", "No")

	return &Domain{
		ID:          model.Identity,
		Title:       "Identity & Sessions",
		Heading:     "Identity & Sessions",
		Description: "Monitor user authentication and session activities",
		Noun:        "sessions",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("userId", "User ID", true, table.KindText),
				col("sessionId", "Session ID", false, table.KindText),
				col("machineName", "Machine Name", true, table.KindText),
				col("logonType", "Logon Type", true, table.KindText),
				col("authResult", "Auth Result", true, table.KindStatus),
				col("mfaUsed", "MFA Used", true, table.KindText),
				col("logonSource", "Logon Source", true, table.KindText),
				riskColumn(),
				col("location", "Location", false, table.KindText),
			},
			SearchFields: []string{"userId", "machineName"},
			Filters: []table.Filter{
				{ID: "failed", Label: "Failed Logins", Match: failed},
				highRiskFilter(t),
				{ID: "no-mfa", Label: "No MFA", Match: noMFA},
			},
			Stats: []table.Stat{
				total("Total Sessions"),
				{Name: "failedLogins", Label: "Failed Logins", Compute: table.Count(failed)},
				highRiskStat("High Risk Sessions", t),
				{Name: "mfaCompliance", Label: "MFA Compliance", Format: table.FormatPercent,
					Compute: table.Percent(equals("mfaUsed", "Yes"))},
			},
		},
		Section: "identity",
		AgentFields: map[string]string{
			"Timestamp":   model.KeyTimestamp,
			"UserID":      "userId",
			"SessionID":   "sessionId",
			"MachineName": "machineName",
			"LogonType":   "logonType",
			"AuthResult":  "authResult",
			"MFAUsed":     "mfaUsed",
			"LogonSource": "logonSource",
			"RiskScore":   model.KeyRisk,
			"Location":    "location",
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "userId": "john.doe@company.com",
				"sessionId": "sess_a1b2c3d4e5f6", "machineName": "LAPTOP-JD001",
				"logonType": "Interactive", "authResult": "Success", "mfaUsed": "Yes",
				"logonSource": "Console", "riskScore": 2.0, "location": "New York, US",
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "userId": "sarah.wilson@company.com",
				"sessionId": "sess_f6e5d4c3b2a1", "machineName": "WS-SW002",
				"logonType": "Remote", "authResult": "Success", "mfaUsed": "No",
				"logonSource": "RDP", "riskScore": 7.0, "location": "London, UK",
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "userId": "mike.johnson@company.com",
				"sessionId": "sess_1a2b3c4d5e6f", "machineName": "SRV-MJ003",
				"logonType": "Service", "authResult": "Failed", "mfaUsed": "N/A",
				"logonSource": "Service", "riskScore": 9.0, "location": "Unknown",
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "userId": "admin@company.com",
				"sessionId": "sess_9z8y7x6w5v4u", "machineName": "DC-ADMIN01",
				"logonType": "Interactive", "authResult": "Success", "mfaUsed": "Yes",
				"logonSource": "VPN", "riskScore": 3.0, "location": "San Francisco, US",
			},
		},
	}
}
