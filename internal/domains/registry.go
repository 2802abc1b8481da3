package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func registryDomain(t Thresholds) *Domain {
	systemCritical := contains("keyPath", "System")
	securityRelated := either(contains("keyPath", "Security"), contains("keyPath", "Defender"))

	return &Domain{
		ID:          model.Registry,
		Title:       "Registry Changes",
		Heading:     "Registry & Config Changes",
		Description: "Monitor Windows registry modifications and configuration changes",
		Noun:        "changes",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("registryHive", "Registry Hive", true, table.KindText),
				col("keyPath", "Key Path", false, table.KindText),
				col("valueName", "Value Name", true, table.KindText),
				col("valueData", "Value Data", false, table.KindText),
				col("operationType", "Operation Type", true, table.KindText),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"keyPath", "valueName", model.KeyUser},
			Filters: []table.Filter{
				highRiskFilter(t),
				{ID: "system-critical", Label: "System Critical", Match: systemCritical},
				{ID: "security-related", Label: "Security Related", Match: securityRelated},
			},
			Stats: []table.Stat{
				total("Total Changes"),
				highRiskStat("High Risk", t),
				{Name: "systemCritical", Label: "System Critical", Compute: table.Count(systemCritical)},
				{Name: "securityRelated", Label: "Security Related", Compute: table.Count(securityRelated)},
			},
		},
		Section: "registry",
		AgentFields: map[string]string{
			"Timestamp":     model.KeyTimestamp,
			"RegistryHive":  "registryHive",
			"KeyPath":       "keyPath",
			"ValueName":     "valueName",
			"ValueData":     "valueData",
			"OperationType": "operationType",
			"User":          model.KeyUser,
			"RiskScore":     model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "registryHive": "HKLM",
				"keyPath": `SOFTWARE\Microsoft\Windows\CurrentVersion\Run`, "valueName": "SecurityUpdater",
				"valueData": `C:\temp\updater.exe`, "operationType": "Create", "user": "admin", "riskScore": 9.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "registryHive": "HKCU",
				"keyPath": `Software\Microsoft\Windows\CurrentVersion\Policies\System`, "valueName": "DisableTaskMgr",
				"valueData": "1", "operationType": "Modify", "user": "john.doe", "riskScore": 7.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "registryHive": "HKLM",
				"keyPath": `SYSTEM\CurrentControlSet\Services\Firewall`, "valueName": "Start",
				"valueData": "4", "operationType": "Modify", "user": "system", "riskScore": 8.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "registryHive": "HKCU",
				"keyPath": `Software\Microsoft\Office\16.0\Outlook\Security`, "valueName": "Level",
				"valueData": "1", "operationType": "Create", "user": "sarah.wilson", "riskScore": 4.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "registryHive": "HKLM",
				"keyPath": `SOFTWARE\Policies\Microsoft\Windows Defender`, "valueName": "DisableAntiSpyware",
				"valueData": "1", "operationType": "Create", "user": "unknown", "riskScore": 10.0,
			},
		},
	}
}
