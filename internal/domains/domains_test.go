package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func summaryOf(t *testing.T, id model.DomainID) table.Summary {
	t.Helper()
	d, err := Default().Get(id)
	require.NoError(t, err)
	return table.ComputeSummary(d.Samples, d.Schema.Stats)
}

func filtered(t *testing.T, id model.DomainID, filterID string) []model.Record {
	t.Helper()
	d, err := Default().Get(id)
	require.NoError(t, err)
	return table.ApplyFilter(d.Samples, d.Schema.Predicate(filterID))
}

func TestCatalog_Order(t *testing.T) {
	c := Default()
	all := c.All()
	require.Len(t, all, len(model.DomainIDs))
	for i, d := range all {
		assert.Equal(t, model.DomainIDs[i], d.ID)
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	_, err := Default().Get("payroll")
	assert.Error(t, err)
}

func TestCatalog_Lookup(t *testing.T) {
	c := Default()

	d, err := c.Lookup("network")
	require.NoError(t, err)
	assert.Equal(t, model.Network, d.ID)

	d, err = c.Lookup("removable media")
	require.NoError(t, err)
	assert.Equal(t, model.Media, d.ID)

	_, err = c.Lookup("nope")
	assert.Error(t, err)
}

func TestCatalog_BySection(t *testing.T) {
	c := Default()
	d, ok := c.BySection("av_alerts")
	require.True(t, ok)
	assert.Equal(t, model.Security, d.ID)

	_, ok = c.BySection("")
	assert.False(t, ok)
}

func TestCatalog_SamplesAreCopies(t *testing.T) {
	c := Default()
	recs, err := c.Samples(model.Network)
	require.NoError(t, err)
	recs[0]["user"] = "mallory"

	again, err := c.Samples(model.Network)
	require.NoError(t, err)
	assert.NotEqual(t, "mallory", again[0].String("user"))
}

func TestSchemas_WellFormed(t *testing.T) {
	for _, d := range Default().All() {
		t.Run(string(d.ID), func(t *testing.T) {
			seen := map[string]bool{}
			for _, c := range d.Schema.Columns {
				assert.False(t, seen[c.Key], "duplicate column %s", c.Key)
				seen[c.Key] = true
			}
			for _, f := range d.Schema.SearchFields {
				assert.True(t, seen[f], "search field %s is not a column", f)
			}
			assert.NotEmpty(t, d.Samples)
			assert.Equal(t, "total", d.Schema.Stats[0].Name)
			for _, mapped := range d.AgentFields {
				assert.NotEmpty(t, mapped)
			}
		})
	}
}

func TestNetwork_HighRiskOnlyTen(t *testing.T) {
	got := filtered(t, model.Network, "high-risk")
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Float(model.KeyRisk))
}

func TestNetwork_Filters(t *testing.T) {
	assert.Len(t, filtered(t, model.Network, "blocked"), 1)
	assert.Len(t, filtered(t, model.Network, "external"), 4)
	assert.Len(t, filtered(t, model.Network, "high-volume"), 3)
}

func TestIdentity_Summary(t *testing.T) {
	s := summaryOf(t, model.Identity)
	assert.Equal(t, 4.0, s.Value("total"))
	assert.Equal(t, 1.0, s.Value("failedLogins"))
	assert.Equal(t, 2.0, s.Value("highRisk"))
	assert.Equal(t, "50%", s.Text("mfaCompliance"))
}

func TestProcess_Summary(t *testing.T) {
	s := summaryOf(t, model.Process)
	assert.Equal(t, 1.0, s.Value("suspicious"))
	assert.Equal(t, "11.7", s.Text("avgCpu"))
	assert.Len(t, filtered(t, model.Process, "high-cpu"), 2)
}

func TestFiles_Summary(t *testing.T) {
	s := summaryOf(t, model.Files)
	assert.Equal(t, 3.0, s.Value("sensitiveFiles"))
	assert.Equal(t, 1.0, s.Value("deniedAccess"))
	assert.Equal(t, 3.0, s.Value("highRisk"))
	assert.Len(t, filtered(t, model.Files, "executables"), 1)
}

func TestFiles_SearchUsesPathAndUser(t *testing.T) {
	d, err := Default().Get(model.Files)
	require.NoError(t, err)

	// The sensitivity label is not searchable, so "confidential" finds nothing.
	assert.Empty(t, table.Search(d.Samples, "confidential", d.Schema.SearchFields))

	got := table.Search(d.Samples, "TEMP", d.Schema.SearchFields)
	require.Len(t, got, 1)
	assert.Equal(t, "admin", got[0].String(model.KeyUser))
}

func TestRegistry_Summary(t *testing.T) {
	s := summaryOf(t, model.Registry)
	assert.Equal(t, 4.0, s.Value("highRisk"))
	assert.Equal(t, 2.0, s.Value("systemCritical"))
	assert.Equal(t, 2.0, s.Value("securityRelated"))
}

func TestMedia_Summary(t *testing.T) {
	s := summaryOf(t, model.Media)
	assert.Equal(t, 2.0, s.Value("deniedAccess"))
	assert.Equal(t, 2.0, s.Value("highRisk"))
	assert.Equal(t, 14070336.0, s.Value("totalDataTransfer"))
	assert.Equal(t, "13.4 MB", s.Text("totalDataTransfer"))
	assert.Len(t, filtered(t, model.Media, "large-transfer"), 3)
}

func TestEmail_Filters(t *testing.T) {
	assert.Len(t, filtered(t, model.Email, "external-email"), 2)
	assert.Len(t, filtered(t, model.Email, "large-upload"), 2)
	assert.Len(t, filtered(t, model.Email, "external-users"), 1)

	s := summaryOf(t, model.Email)
	assert.Equal(t, 3.0, s.Value("highRisk"))
	assert.Equal(t, 21811200.0, s.Value("totalUploadVolume"))
}

func TestSecurity_Summary(t *testing.T) {
	s := summaryOf(t, model.Security)
	assert.Equal(t, 5.0, s.Value("total"))
	assert.Equal(t, 1.0, s.Value("criticalAlerts"))
	assert.Equal(t, 1.0, s.Value("quarantinedThreats"))
	assert.Equal(t, 3.0, s.Value("blockedActions"))
	assert.Len(t, filtered(t, model.Security, "high"), 3)
}

func TestClipboard_Summary(t *testing.T) {
	s := summaryOf(t, model.Clipboard)
	assert.Equal(t, 3.0, s.Value("clipboardEvents"))
	assert.Equal(t, 2.0, s.Value("screenCaptureEvents"))
	assert.Equal(t, 3.0, s.Value("highRisk"))
	assert.Len(t, filtered(t, model.Clipboard, "external-users"), 1)
}

func TestDashboard_Escalations(t *testing.T) {
	s := summaryOf(t, model.Dashboard)
	assert.Equal(t, 4.0, s.Value("total"))
	assert.Equal(t, 1.0, s.Value("critical"))
	assert.Len(t, filtered(t, model.Dashboard, "high"), 2)
}

func TestThresholdsDriveFilters(t *testing.T) {
	th := DefaultThresholds()
	th.HighRisk = 5
	d, err := New(th).Get(model.Network)
	require.NoError(t, err)
	got := table.ApplyFilter(d.Samples, d.Schema.Predicate("high-risk"))
	assert.Len(t, got, 2)
}

func TestColumnFor(t *testing.T) {
	d, err := Default().Get(model.Media)
	require.NoError(t, err)

	key, ok := d.ColumnFor("USBDeviceID")
	require.True(t, ok)
	assert.Equal(t, "usbDeviceId", key)

	key, ok = d.ColumnFor("usbdeviceid")
	require.True(t, ok)
	assert.Equal(t, "usbDeviceId", key)

	key, ok = d.ColumnFor(" riskScore ")
	require.True(t, ok)
	assert.Equal(t, model.KeyRisk, key)

	_, ok = d.ColumnFor("Colour")
	assert.False(t, ok)
}

func TestColumnFor_CaseCollisionIsStable(t *testing.T) {
	d := &Domain{
		Schema: &table.Schema{},
		AgentFields: map[string]string{
			"UserID": "userId",
			"USERID": "legacyUser",
			"userid": "lowerUser",
		},
	}

	for i := 0; i < 50; i++ {
		key, ok := d.ColumnFor("UsErId")
		require.True(t, ok)
		assert.Equal(t, "legacyUser", key)
	}

	key, ok := d.ColumnFor("userid")
	require.True(t, ok)
	assert.Equal(t, "lowerUser", key)
}
