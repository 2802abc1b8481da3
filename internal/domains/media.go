package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func mediaDomain(t Thresholds) *Domain {
	denied := equals("accessOutcome", "Denied")

	return &Domain{
		ID:          model.Media,
		Title:       "Removable Media",
		Heading:     "Removable Media",
		Description: "Monitor USB and removable device connections and data transfers",
		Noun:        "connections",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("usbDeviceId", "USB Device ID", true, table.KindText),
				col("serialNumber", "Serial Number", true, table.KindText),
				col("mountPoint", "Mount Point", true, table.KindText),
				col("dataTransferVolume", "Data Volume", true, table.KindBytes),
				col("fileNamesTransferred", "Files Transferred", false, table.KindText),
				col("accessOutcome", "Access Outcome", true, table.KindStatus),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"usbDeviceId", "serialNumber", model.KeyUser},
			Filters: []table.Filter{
				{ID: "denied", Label: "Access Denied", Match: denied},
				highRiskFilter(t),
				{ID: "large-transfer", Label: "Large Transfer", Match: greaterThan("dataTransferVolume", t.LargeTransferBytes)},
			},
			Stats: []table.Stat{
				total("Total Connections"),
				{Name: "deniedAccess", Label: "Access Denied", Compute: table.Count(denied)},
				highRiskStat("High Risk", t),
				{Name: "totalDataTransfer", Label: "Data Transferred", Format: table.FormatByteSize, Compute: table.Sum("dataTransferVolume")},
			},
		},
		Section: "usb",
		AgentFields: map[string]string{
			"Timestamp":            model.KeyTimestamp,
			"USBDeviceID":          "usbDeviceId",
			"SerialNumber":         "serialNumber",
			"MountPoint":           "mountPoint",
			"DataTransferVolume":   "dataTransferVolume",
			"FileNamesTransferred": "fileNamesTransferred",
			"AccessOutcome":        "accessOutcome",
			"User":                 model.KeyUser,
			"RiskScore":            model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "usbDeviceId": "VID_0951&PID_1666", "serialNumber": "AA04012700008181",
				"mountPoint": `E:\`, "dataTransferVolume": 2048576.0, "fileNamesTransferred": "financial_report.xlsx, employee_data.csv",
				"accessOutcome": "Allowed", "user": "john.doe", "riskScore": 6.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "usbDeviceId": "VID_0781&PID_5567", "serialNumber": "BB05023800009292",
				"mountPoint": `F:\`, "dataTransferVolume": 10485760.0, "fileNamesTransferred": "database_backup.sql, source_code.zip",
				"accessOutcome": "Denied", "user": "sarah.wilson", "riskScore": 9.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "usbDeviceId": "VID_1058&PID_25A3", "serialNumber": "WX12A8F56789",
				"mountPoint": `G:\`, "dataTransferVolume": 512000.0, "fileNamesTransferred": "presentation.pptx",
				"accessOutcome": "Allowed", "user": "mike.johnson", "riskScore": 3.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "usbDeviceId": "VID_0424&PID_2140", "serialNumber": "Unknown",
				"mountPoint": `H:\`, "dataTransferVolume": 0.0, "fileNamesTransferred": "Access blocked by policy",
				"accessOutcome": "Denied", "user": "unknown", "riskScore": 10.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "usbDeviceId": "VID_8564&PID_1000", "serialNumber": "CC06034900001414",
				"mountPoint": `I:\`, "dataTransferVolume": 1024000.0, "fileNamesTransferred": "meeting_notes.docx, budget_2024.xlsx",
				"accessOutcome": "Allowed", "user": "admin", "riskScore": 4.0,
			},
		},
	}
}
