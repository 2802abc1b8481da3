// Package dashboard assembles the overview screen: metric cards, charts,
// escalated alerts and per-domain risk counts.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/chart"
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/source"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Tone is a metric card's accent colour.
type Tone string

const (
	ToneRed    Tone = "red"
	ToneOrange Tone = "orange"
	ToneYellow Tone = "yellow"
	ToneGreen  Tone = "green"
	ToneBlue   Tone = "blue"
)

// Metric is one headline card.
type Metric struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Trend string `json:"trend,omitempty"`
	Tone  Tone   `json:"tone"`
}

// TrendDirection reports "up" for a rising trend, "down" for a falling one
// and "flat" otherwise.
func (m Metric) TrendDirection() string {
	switch {
	case strings.HasPrefix(m.Trend, "+"):
		return "up"
	case strings.HasPrefix(m.Trend, "-"):
		return "down"
	default:
		return "flat"
	}
}

// DomainRisk is the high-risk share of one domain's records.
type DomainRisk struct {
	Domain   model.DomainID `json:"domain"`
	Title    string         `json:"title"`
	HighRisk int            `json:"highRisk"`
	Total    int            `json:"total"`
}

// Dashboard is the assembled overview.
type Dashboard struct {
	Title          string            `json:"title"`
	Metrics        []Metric          `json:"metrics"`
	DetectedArea   []chart.Segment   `json:"detectedArea"`
	Tactics        []chart.Segment   `json:"tactics"`
	AlertsOverTime *chart.LineChart  `json:"alertsOverTime"`
	TopUsers       []chart.BarLayout `json:"topUsers"`
	Malware        []chart.BarLayout `json:"malware"`
	Escalated      *table.ViewModel  `json:"escalated"`
	Risk           []DomainRisk      `json:"risk"`
	RiskBars       []chart.BarLayout `json:"riskBars"`
}

// Build loads escalated alerts and every domain's records from src and
// lays out all panels.
func Build(c *domains.Catalog, src source.Source) (*Dashboard, error) {
	home, err := c.Get(model.Dashboard)
	if err != nil {
		return nil, err
	}
	escalated, err := src.Records(model.Dashboard)
	if err != nil {
		return nil, fmt.Errorf("loading escalated alerts: %w", err)
	}

	risk, err := domainRisk(c, src)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Title:          home.Heading,
		Metrics:        metricCards,
		DetectedArea:   chart.Donut(detectedArea),
		Tactics:        chart.Donut(tactics),
		AlertsOverTime: chart.Line(alertTimes, alertSeries),
		TopUsers:       chart.Bars(topUsers),
		Malware:        chart.Bars(malware),
		Escalated:      table.Build(escalated, home.Schema, "", table.FilterAll, table.SortState{}),
		Risk:           risk,
		RiskBars:       riskBars(risk),
	}, nil
}

// domainRisk counts records at or above the high-risk threshold per domain.
func domainRisk(c *domains.Catalog, src source.Source) ([]DomainRisk, error) {
	threshold := c.Thresholds().HighRisk
	stats := []table.Stat{
		{Name: "total", Compute: table.Total()},
		{Name: "highRisk", Compute: table.Count(func(r model.Record) bool {
			return r.Float(model.KeyRisk) >= threshold
		})},
	}

	var out []DomainRisk
	for _, d := range c.All() {
		if _, ok := d.Schema.Column(model.KeyRisk); !ok {
			continue
		}
		records, err := src.Records(d.ID)
		if err != nil {
			return nil, fmt.Errorf("loading %s records: %w", d.ID, err)
		}
		s := table.ComputeSummary(records, stats)
		out = append(out, DomainRisk{
			Domain:   d.ID,
			Title:    d.Title,
			HighRisk: int(s.Value("highRisk")),
			Total:    int(s.Value("total")),
		})
	}
	return out, nil
}

// riskBars sizes domains by high-risk count, banded by their high-risk share.
func riskBars(risk []DomainRisk) []chart.BarLayout {
	bars := make([]chart.Bar, len(risk))
	for i, r := range risk {
		bars[i] = chart.Bar{Label: r.Title, Value: float64(r.HighRisk), Risk: string(shareBand(r))}
	}
	return chart.Bars(bars)
}

func shareBand(r DomainRisk) table.Band {
	if r.Total == 0 {
		return table.BandLow
	}
	share := float64(r.HighRisk) / float64(r.Total)
	switch {
	case share >= 0.6:
		return table.BandCritical
	case share >= 0.4:
		return table.BandHigh
	case share >= 0.2:
		return table.BandMedium
	default:
		return table.BandLow
	}
}
