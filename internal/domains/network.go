package domains

import (
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func networkDomain(t Thresholds) *Domain {
	blocked := equals("connectionStatus", "Blocked")
	external := func(r model.Record) bool {
		return !strings.HasPrefix(r.String("destIP"), t.InternalPrefix)
	}
	highVolume := func(r model.Record) bool {
		return r.Float("bytesSent")+r.Float("bytesReceived") > t.HighVolumeBytes
	}

	return &Domain{
		ID:          model.Network,
		Title:       "Network Connections",
		Heading:     "Network Connections",
		Description: "Monitor network traffic and connection patterns",
		Noun:        "connections",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("sourceIP", "Source IP", true, table.KindText),
				col("sourcePort", "Src Port", true, table.KindNumber),
				col("destIP", "Destination IP", true, table.KindText),
				col("destPort", "Dst Port", true, table.KindNumber),
				col("protocol", "Protocol", true, table.KindText),
				col("bytesSent", "Bytes Sent", true, table.KindBytes),
				col("bytesReceived", "Bytes Received", true, table.KindBytes),
				col("connectionDuration", "Duration (s)", true, table.KindNumber),
				col("dnsQuery", "DNS Query", false, table.KindText),
				col("connectionStatus", "Status", true, table.KindStatus),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"destIP", "dnsQuery", model.KeyUser},
			Filters: []table.Filter{
				{ID: "blocked", Label: "Blocked", Match: blocked},
				highRiskFilter(t),
				{ID: "external", Label: "External", Match: external},
				{ID: "high-volume", Label: "High Volume", Match: highVolume},
			},
			Stats: []table.Stat{
				total("Total Connections"),
				{Name: "blockedConnections", Label: "Blocked", Compute: table.Count(blocked)},
				{Name: "externalConnections", Label: "External", Compute: table.Count(external)},
				highRiskStat("High Risk", t),
			},
		},
		Section: "network",
		AgentFields: map[string]string{
			"Timestamp":          model.KeyTimestamp,
			"SourceIP":           "sourceIP",
			"SourcePort":         "sourcePort",
			"DestIP":             "destIP",
			"DestPort":           "destPort",
			"Protocol":           "protocol",
			"BytesSent":          "bytesSent",
			"BytesReceived":      "bytesReceived",
			"ConnectionDuration": "connectionDuration",
			"DNSQuery":           "dnsQuery",
			"ConnectionStatus":   "connectionStatus",
			"User":               model.KeyUser,
			"RiskScore":          model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "sourceIP": "192.168.1.100", "sourcePort": 12345.0,
				"destIP": "8.8.8.8", "destPort": 53.0, "protocol": "UDP", "bytesSent": 128.0, "bytesReceived": 256.0,
				"connectionDuration": 0.5, "dnsQuery": "google.com", "connectionStatus": "Allowed",
				"user": "john.doe", "riskScore": 1.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "sourceIP": "192.168.1.105", "sourcePort": 54321.0,
				"destIP": "185.199.108.153", "destPort": 443.0, "protocol": "TCP", "bytesSent": 2048.0, "bytesReceived": 8192.0,
				"connectionDuration": 300.0, "dnsQuery": "github.com", "connectionStatus": "Allowed",
				"user": "sarah.wilson", "riskScore": 2.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "sourceIP": "192.168.1.110", "sourcePort": 65432.0,
				"destIP": "192.168.50.200", "destPort": 3389.0, "protocol": "TCP", "bytesSent": 512000.0, "bytesReceived": 1024000.0,
				"connectionDuration": 1800.0, "dnsQuery": "internal-server.company.com", "connectionStatus": "Allowed",
				"user": "admin", "riskScore": 5.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "sourceIP": "192.168.1.115", "sourcePort": 12580.0,
				"destIP": "45.32.105.15", "destPort": 4444.0, "protocol": "TCP", "bytesSent": 1048576.0, "bytesReceived": 0.0,
				"connectionDuration": 0.0, "dnsQuery": "suspicious-domain.tk", "connectionStatus": "Blocked",
				"user": "unknown", "riskScore": 10.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "sourceIP": "192.168.1.120", "sourcePort": 23456.0,
				"destIP": "151.101.193.140", "destPort": 80.0, "protocol": "TCP", "bytesSent": 4096.0, "bytesReceived": 102400.0,
				"connectionDuration": 45.0, "dnsQuery": "reddit.com", "connectionStatus": "Allowed",
				"user": "mike.johnson", "riskScore": 3.0,
			},
		},
	}
}
