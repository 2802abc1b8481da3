package rules

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
)

func sampleRecords(t *testing.T) map[model.DomainID][]model.Record {
	t.Helper()
	c := domains.Default()
	out := make(map[model.DomainID][]model.Record)
	for _, d := range c.All() {
		if d.ID == model.Dashboard {
			continue
		}
		recs, err := c.Samples(d.ID)
		require.NoError(t, err)
		out[d.ID] = recs
	}
	return out
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%08x", n)
	}
}

func TestHitsOnSamples(t *testing.T) {
	e := NewEngine()
	hits := e.Hits(sampleRecords(t))

	want := map[string]int{
		"failed-login":               1,
		"mfa-not-used":               1,
		"non-interactive-logon":      2,
		"confidential-file-accessed": 1,
		"large-external-connection":  2,
		"registry-change":            2,
		"large-usb-transfer":         4,
		"large-upload":               2,
		"confidential-email":         1,
		"high-severity-alert":        3,
		"clipboard-activity":         3,
		"screen-capture":             2,
	}
	assert.Equal(t, want, hits)
	assert.Len(t, e.Run(sampleRecords(t)), 24)
}

func TestAlertRecord(t *testing.T) {
	e := &Engine{Rules: Default(), NewID: sequentialIDs()}
	records := map[model.DomainID][]model.Record{
		model.Files: {{
			"timestamp": "2024-01-21 09:00:00 UTC", "filePath": `D:\old\dump.bak`,
			"operationType": "delete", "fileSizeBefore": 2e6, "user": "jane",
		}},
	}

	alerts := e.Run(records)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, "RULE-00000001", a["alertId"])
	assert.Equal(t, `Large file deleted: D:\old\dump.bak`, a["signature"])
	assert.Equal(t, High, a["severity"])
	assert.Equal(t, ActionMonitored, a["actionTaken"])
	assert.Equal(t, `D:\old\dump.bak`, a["involvedFile"])
	assert.Equal(t, "jane", a[model.KeyUser])
	assert.Equal(t, 8.0, a[model.KeyRisk])
	assert.Equal(t, "2024-01-21 09:00:00 UTC", a[model.KeyTimestamp])
}

func TestIdentityAlertsUseUserID(t *testing.T) {
	e := &Engine{Rules: Default(), NewID: sequentialIDs()}
	records := map[model.DomainID][]model.Record{
		model.Identity: {{"userId": "bob@company.com", "authResult": "failure", "logonType": "Interactive"}},
	}

	alerts := e.Run(records)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Failed login for user bob@company.com on Unknown", alerts[0]["signature"])
	assert.Equal(t, "bob@company.com", alerts[0][model.KeyUser])
}

func TestLoopbackConnectionsIgnored(t *testing.T) {
	e := &Engine{Rules: Default(), NewID: sequentialIDs()}
	records := map[model.DomainID][]model.Record{
		model.Network: {
			{"destIP": "127.0.0.1", "bytesSent": 90000.0},
			{"destIP": "localhost", "bytesSent": 90000.0},
			{"destIP": "10.0.0.8", "bytesSent": 4000.0},
		},
	}
	assert.Empty(t, e.Run(records))
}

func TestDefaultIDFormat(t *testing.T) {
	e := &Engine{Rules: Default()}
	records := map[model.DomainID][]model.Record{
		model.Clipboard: {{"screenCaptureTrigger": "PrintScreen"}},
	}

	alerts := e.Run(records)
	require.Len(t, alerts, 1)
	assert.Regexp(t, regexp.MustCompile(`^RULE-[0-9a-f]{8}$`), alerts[0]["alertId"])
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, 10.0, RiskFor(Critical))
	assert.Equal(t, 8.0, RiskFor("high"))
	assert.Equal(t, 5.0, RiskFor(Medium))
	assert.Equal(t, 3.0, RiskFor(Low))
	assert.Equal(t, 3.0, RiskFor("bogus"))
}
