package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func filesDomain(t Thresholds) *Domain {
	sensitive := oneOf("sensitivityLabel", "Confidential", "PII", "Restricted")
	denied := equals("accessResult", "Denied")

	return &Domain{
		ID:          model.Files,
		Title:       "File Operations",
		Heading:     "File Operations",
		Description: "Monitor file system activities and data access patterns",
		Noun:        "operations",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("filePath", "File Path", false, table.KindText),
				col("fileType", "Type", true, table.KindText),
				col("operationType", "Operation", true, table.KindText),
				col("fileSizeBefore", "Size Before", true, table.KindBytes),
				col("fileSizeAfter", "Size After", true, table.KindBytes),
				col("accessResult", "Access Result", true, table.KindStatus),
				col("sensitivityLabel", "Sensitivity", true, table.KindText),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"filePath", model.KeyUser},
			Filters: []table.Filter{
				highRiskFilter(t),
				{ID: "sensitive", Label: "Sensitive Files", Match: sensitive},
				{ID: "denied", Label: "Access Denied", Match: denied},
				{ID: "executables", Label: "Executables", Match: equals("fileType", ".exe")},
			},
			Stats: []table.Stat{
				total("Total Operations"),
				{Name: "deniedAccess", Label: "Access Denied", Compute: table.Count(denied)},
				{Name: "sensitiveFiles", Label: "Sensitive Files", Compute: table.Count(sensitive)},
				highRiskStat("High Risk", t),
			},
		},
		Section: "files",
		AgentFields: map[string]string{
			"Timestamp":        model.KeyTimestamp,
			"FilePath":         "filePath",
			"FileType":         "fileType",
			"OperationType":    "operationType",
			"FileSizeBefore":   "fileSizeBefore",
			"FileSizeAfter":    "fileSizeAfter",
			"FileHash":         "fileHash",
			"AccessResult":     "accessResult",
			"SensitivityLabel": "sensitivityLabel",
			"User":             model.KeyUser,
			"RiskScore":        model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "filePath": `C:\Users\john.doe\Documents\financial_report_2024.xlsx`,
				"fileType": ".xlsx", "operationType": "Create", "fileSizeBefore": 0.0, "fileSizeAfter": 2048576.0,
				"fileHash": "a1b2c3d4e5f6789012345678901234567890abcdef1234567890abcdef123456",
				"accessResult": "Allowed", "sensitivityLabel": "Confidential", "user": "john.doe", "riskScore": 3.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "filePath": `C:\temp\suspicious_file.exe`,
				"fileType": ".exe", "operationType": "Write", "fileSizeBefore": 1024000.0, "fileSizeAfter": 1536000.0,
				"fileHash": "def456789012345678901234567890abcdef123456789012345678901234abcd",
				"accessResult": "Allowed", "sensitivityLabel": "Unknown", "user": "admin", "riskScore": 9.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "filePath": `D:\SharedDrive\HR\employee_data.csv`,
				"fileType": ".csv", "operationType": "Read", "fileSizeBefore": 5120000.0, "fileSizeAfter": 5120000.0,
				"fileHash": "123456789012345678901234567890abcdef123456789012345678901234567890",
				"accessResult": "Allowed", "sensitivityLabel": "PII", "user": "sarah.wilson", "riskScore": 5.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "filePath": `C:\System32\critical_system_file.dll`,
				"fileType": ".dll", "operationType": "Delete", "fileSizeBefore": 256000.0, "fileSizeAfter": 0.0,
				"fileHash": "abcdef123456789012345678901234567890123456789012345678901234567890",
				"accessResult": "Denied", "sensitivityLabel": "System", "user": "unknown", "riskScore": 10.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "filePath": `E:\USB\backup\database_export.sql`,
				"fileType": ".sql", "operationType": "Copy", "fileSizeBefore": 10240000.0, "fileSizeAfter": 10240000.0,
				"fileHash": "fedcba098765432109876543210987654321098765432109876543210987654321",
				"accessResult": "Allowed", "sensitivityLabel": "Restricted", "user": "mike.johnson", "riskScore": 7.0,
			},
		},
	}
}
