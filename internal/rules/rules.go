// Package rules turns imported telemetry into security alerts. Each rule
// matches records of one domain; every hit becomes a record of the
// security domain.
package rules

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Severity labels, highest first.
const (
	Critical = "Critical"
	High     = "High"
	Medium   = "Medium"
	Low      = "Low"
)

// ActionMonitored is the action recorded on every rule alert.
const ActionMonitored = "Monitored"

// Rule is one detection over a single domain.
type Rule struct {
	Domain   model.DomainID
	Name     string
	Severity string
	Match    table.Predicate
	Message  func(r model.Record) string
}

// Engine runs a rule set. NewID produces the suffix of generated alert ids.
type Engine struct {
	Rules []Rule
	NewID func() string
}

// NewEngine returns an engine over the default rules with uuid-based ids.
func NewEngine() *Engine {
	return &Engine{Rules: Default(), NewID: shortID}
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// RiskFor maps a severity label to the risk score stored on its alerts.
func RiskFor(severity string) float64 {
	switch strings.ToLower(severity) {
	case "critical":
		return 10
	case "high":
		return 8
	case "medium":
		return 5
	default:
		return 3
	}
}

// Run evaluates every rule against the records of its domain and returns
// the alerts in rule order, then record order.
func (e *Engine) Run(records map[model.DomainID][]model.Record) []model.Record {
	var alerts []model.Record
	for _, rule := range e.Rules {
		for _, r := range records[rule.Domain] {
			if rule.Match(r) {
				alerts = append(alerts, e.alert(rule, r))
			}
		}
	}
	return alerts
}

// Hits counts matches per rule name without building alerts.
func (e *Engine) Hits(records map[model.DomainID][]model.Record) map[string]int {
	hits := make(map[string]int)
	for _, rule := range e.Rules {
		for _, r := range records[rule.Domain] {
			if rule.Match(r) {
				hits[rule.Name]++
			}
		}
	}
	return hits
}

func (e *Engine) alert(rule Rule, r model.Record) model.Record {
	newID := e.NewID
	if newID == nil {
		newID = shortID
	}
	return model.Record{
		model.KeyTimestamp: r.String(model.KeyTimestamp),
		"alertId":          "RULE-" + newID(),
		"signature":        rule.Message(r),
		"severity":         rule.Severity,
		"involvedFile":     firstOf(r, "filePath", "involvedFile"),
		"involvedProcess":  firstOf(r, "processName", "involvedProcess", "application"),
		"actionTaken":      ActionMonitored,
		model.KeyUser:      firstOf(r, model.KeyUser, "userId"),
		model.KeyRisk:      RiskFor(rule.Severity),
	}
}

// Default returns the built-in detections.
func Default() []Rule {
	return []Rule{
		{
			Domain:   model.Identity,
			Name:     "failed-login",
			Severity: High,
			Match:    isAny("authResult", "failure", "failed"),
			Message: func(r model.Record) string {
				return fmt.Sprintf("Failed login for user %s on %s", orUnknown(r, "userId"), orUnknown(r, "machineName"))
			},
		},
		{
			Domain:   model.Identity,
			Name:     "mfa-not-used",
			Severity: Medium,
			Match:    isAny("mfaUsed", "no"),
			Message: func(r model.Record) string {
				return fmt.Sprintf("MFA not used by %s", orUnknown(r, "userId"))
			},
		},
		{
			Domain:   model.Identity,
			Name:     "non-interactive-logon",
			Severity: Low,
			Match: func(r model.Record) bool {
				return r.Has("logonType") && !r.Is("logonType", "interactive")
			},
			Message: func(r model.Record) string {
				return fmt.Sprintf("Non-interactive logon detected via %s", orUnknown(r, "logonSource"))
			},
		},
		{
			Domain:   model.Process,
			Name:     "high-cpu",
			Severity: Medium,
			Match:    above("cpuUsage", 80),
			Message: func(r model.Record) string {
				return fmt.Sprintf("High CPU usage by process %s (%s)", orUnknown(r, "processName"), r.String("pid"))
			},
		},
		{
			Domain:   model.Process,
			Name:     "high-memory",
			Severity: Medium,
			Match:    above("memoryUsage", 1000),
			Message: func(r model.Record) string {
				return fmt.Sprintf("High memory usage by %s (%s)", orUnknown(r, "processName"), r.String("pid"))
			},
		},
		{
			Domain:   model.Files,
			Name:     "confidential-file-accessed",
			Severity: High,
			Match: func(r model.Record) bool {
				return r.Is("sensitivityLabel", "confidential") && r.Is("accessResult", "allowed")
			},
			Message: func(r model.Record) string {
				return fmt.Sprintf("Confidential file accessed: %s", orUnknown(r, "filePath"))
			},
		},
		{
			Domain:   model.Files,
			Name:     "large-file-deleted",
			Severity: High,
			Match: func(r model.Record) bool {
				return r.Is("operationType", "delete") && r.Float("fileSizeBefore") > 1e6
			},
			Message: func(r model.Record) string {
				return fmt.Sprintf("Large file deleted: %s", orUnknown(r, "filePath"))
			},
		},
		{
			Domain:   model.Network,
			Name:     "large-external-connection",
			Severity: Medium,
			Match: func(r model.Record) bool {
				return !isAny("destIP", "127.0.0.1", "localhost")(r) && r.Float("bytesSent") > 5000
			},
			Message: func(r model.Record) string {
				return fmt.Sprintf("Large external connection to %s (DNS: %s)", orUnknown(r, "destIP"), r.String("dnsQuery"))
			},
		},
		{
			Domain:   model.Registry,
			Name:     "registry-change",
			Severity: Medium,
			Match:    isAny("operationType", "delete", "modify"),
			Message: func(r model.Record) string {
				return fmt.Sprintf(`Registry %s on %s\%s`, r.String("operationType"), r.String("keyPath"), r.String("valueName"))
			},
		},
		{
			Domain:   model.Media,
			Name:     "large-usb-transfer",
			Severity: High,
			Match:    above("dataTransferVolume", 500),
			Message: func(r model.Record) string {
				return fmt.Sprintf("Large data transfer (%s MB) to USB %s (%s)",
					r.String("dataTransferVolume"), r.String("usbDeviceId"), r.String("mountPoint"))
			},
		},
		{
			Domain:   model.Email,
			Name:     "large-upload",
			Severity: High,
			Match:    above("uploadVolume", 5000),
			Message: func(r model.Record) string {
				return fmt.Sprintf("Large upload (%s KB) via %s", r.String("uploadVolume"), r.String("applicationName"))
			},
		},
		{
			Domain:   model.Email,
			Name:     "confidential-email",
			Severity: High,
			Match: func(r model.Record) bool {
				return r.Contains("emailSubject", "confidential")
			},
			Message: func(r model.Record) string {
				return fmt.Sprintf("Potential exfiltration of confidential data via email: %s", r.String("emailSubject"))
			},
		},
		{
			Domain:   model.Security,
			Name:     "high-severity-alert",
			Severity: High,
			Match:    isAny("severity", "high"),
			Message: func(r model.Record) string {
				return fmt.Sprintf("High severity alert: %s involving %s", r.String("alertId"), r.String("involvedFile"))
			},
		},
		{
			Domain:   model.Clipboard,
			Name:     "clipboard-activity",
			Severity: Low,
			Match:    isAny("clipboardEvent", "copy", "cut"),
			Message: func(r model.Record) string {
				return fmt.Sprintf("Clipboard activity detected: %s of %s", r.String("clipboardEvent"), r.String("clipboardContentMeta"))
			},
		},
		{
			Domain:   model.Clipboard,
			Name:     "screen-capture",
			Severity: Medium,
			Match: func(r model.Record) bool {
				return r.Has("screenCaptureTrigger")
			},
			Message: func(r model.Record) string {
				return fmt.Sprintf("Screen capture triggered: %s", r.String("screenCaptureTrigger"))
			},
		},
	}
}

func isAny(key string, values ...string) table.Predicate {
	return func(r model.Record) bool {
		for _, v := range values {
			if r.Is(key, v) {
				return true
			}
		}
		return false
	}
}

func above(key string, limit float64) table.Predicate {
	return func(r model.Record) bool {
		return r.Float(key) > limit
	}
}

func orUnknown(r model.Record, key string) string {
	if s := r.String(key); s != "" {
		return s
	}
	return "Unknown"
}

func firstOf(r model.Record, keys ...string) string {
	for _, k := range keys {
		if s := r.String(k); s != "" {
			return s
		}
	}
	return ""
}
