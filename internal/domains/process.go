package domains

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func processDomain(t Thresholds) *Domain {
	suspicious := contains("processPath", "temp")

	return &Domain{
		ID:          model.Process,
		Title:       "Process Activity",
		Heading:     "Process Activity",
		Description: "Monitor system processes and executable activities",
		Noun:        "processes",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("processName", "Process Name", true, table.KindText),
				col("processPath", "Process Path", false, table.KindText),
				col("pid", "PID", true, table.KindNumber),
				col("parentPid", "Parent PID", true, table.KindNumber),
				col("commandLineArgs", "Command Line", false, table.KindText),
				col("exitCode", "Exit Code", true, table.KindNumber),
				col("cpuUsage", "CPU %", true, table.KindNumber),
				col("memoryUsage", "Memory (MB)", true, table.KindNumber),
				riskColumn(),
				userColumn(),
			},
			SearchFields: []string{"processName", model.KeyUser},
			Filters: []table.Filter{
				highRiskFilter(t),
				{ID: "suspicious", Label: "Suspicious Path", Match: suspicious},
				{ID: "high-cpu", Label: "High CPU", Match: greaterThan("cpuUsage", t.HighCPUPercent)},
			},
			Stats: []table.Stat{
				total("Total Processes"),
				highRiskStat("High Risk", t),
				{Name: "suspicious", Label: "Suspicious", Compute: table.Count(suspicious)},
				{Name: "avgCpu", Label: "Avg CPU %", Format: table.FormatDecimal, Compute: table.Mean("cpuUsage", 1)},
			},
		},
		Section: "processes",
		AgentFields: map[string]string{
			"Timestamp":       model.KeyTimestamp,
			"ProcessName":     "processName",
			"ProcessPath":     "processPath",
			"PID":             "pid",
			"ParentPID":       "parentPid",
			"CommandLineArgs": "commandLineArgs",
			"ExitCode":        "exitCode",
			"ImageHash":       "imageHash",
			"CPUUsage":        "cpuUsage",
			"MemoryUsage":     "memoryUsage",
			"RiskScore":       model.KeyRisk,
			"User":            model.KeyUser,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "processName": "chrome.exe",
				"processPath": `C:\Program Files\Google\Chrome\Application\chrome.exe`,
				"pid": 1234.0, "parentPid": 892.0, "commandLineArgs": "--new-window https://example.com",
				"exitCode": 0.0, "imageHash": "a1b2c3d4e5f6789012345678901234567890abcdef1234567890abcdef123456",
				"cpuUsage": 15.2, "memoryUsage": 256.8, "riskScore": 2.0, "user": "john.doe",
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "processName": "powershell.exe",
				"processPath": `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`,
				"pid": 5678.0, "parentPid": 4321.0, "commandLineArgs": `-ExecutionPolicy Bypass -File C:\temp\script.ps1`,
				"exitCode": 0.0, "imageHash": "def456789012345678901234567890abcdef123456789012345678901234abcd",
				"cpuUsage": 5.8, "memoryUsage": 45.2, "riskScore": 8.0, "user": "admin",
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "processName": "notepad.exe",
				"processPath": `C:\Windows\System32\notepad.exe`,
				"pid": 9012.0, "parentPid": 1234.0, "commandLineArgs": `C:\Users\sarah\Documents\confidential.txt`,
				"exitCode": 0.0, "imageHash": "123456789012345678901234567890abcdef123456789012345678901234567890",
				"cpuUsage": 0.1, "memoryUsage": 12.5, "riskScore": 6.0, "user": "sarah.wilson",
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "processName": "suspicious.exe",
				"processPath": `C:\temp\suspicious.exe`,
				"pid": 3456.0, "parentPid": 2109.0, "commandLineArgs": "--hide --keylog --upload",
				"exitCode": -1.0, "imageHash": "unknown",
				"cpuUsage": 25.7, "memoryUsage": 158.9, "riskScore": 10.0, "user": "unknown",
			},
		},
	}
}
