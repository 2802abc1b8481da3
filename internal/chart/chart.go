// Package chart computes SVG geometry for the dashboard charts. It produces
// coordinates and path strings only; styling is left to the renderer.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Donut geometry, in SVG user units of a 100x100 viewBox.
const (
	DonutCenter = 50.0
	DonutRadius = 35.0
)

// Line chart geometry.
const (
	LineWidth   = 400.0
	LineHeight  = 200.0
	LinePadding = 40.0
)

// GridPercents are the horizontal grid lines of a line chart.
var GridPercents = []float64{0, 25, 50, 75, 100}

// Slice is one input value of a donut.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Segment is a rendered donut wedge.
type Segment struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
	Path    string  `json:"path"`
}

// Donut lays out slices as wedges starting at twelve o'clock and running
// clockwise. A zero total yields no segments.
func Donut(slices []Slice) []Segment {
	total := lo.SumBy(slices, func(s Slice) float64 { return s.Value })
	if total <= 0 {
		return nil
	}

	segments := make([]Segment, 0, len(slices))
	cumulative := 0.0
	for _, s := range slices {
		pct := s.Value / total * 100
		start := cumulative / total * 360
		end := (cumulative + s.Value) / total * 360
		cumulative += s.Value

		segments = append(segments, Segment{
			Label:   s.Label,
			Value:   s.Value,
			Color:   s.Color,
			Percent: pct,
			Path:    wedge(start, end, pct),
		})
	}
	return segments
}

func wedge(startDeg, endDeg, pct float64) string {
	x1, y1 := polar(startDeg)
	var b strings.Builder
	b.WriteString("M " + num(DonutCenter) + " " + num(DonutCenter))
	b.WriteString(" L " + num(x1) + " " + num(y1))

	if pct >= 100 {
		// A single arc cannot close on itself.
		mx, my := polar(startDeg + 180)
		b.WriteString(arc(0, mx, my))
		b.WriteString(arc(0, x1, y1))
	} else {
		flag := 0
		if pct > 50 {
			flag = 1
		}
		x2, y2 := polar(endDeg)
		b.WriteString(arc(flag, x2, y2))
	}
	b.WriteString(" Z")
	return b.String()
}

func arc(largeArc int, x, y float64) string {
	r := num(DonutRadius)
	return " A " + r + " " + r + " 0 " + strconv.Itoa(largeArc) + " 1 " + num(x) + " " + num(y)
}

func polar(deg float64) (float64, float64) {
	rad := (deg - 90) * math.Pi / 180
	return DonutCenter + DonutRadius*math.Cos(rad), DonutCenter + DonutRadius*math.Sin(rad)
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Series is one named line of a line chart.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// Point is a chart coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is a rendered series.
type Polyline struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
	Path   string  `json:"path"`
}

// GridLine is a horizontal guide at a percentage of the global maximum.
type GridLine struct {
	Percent float64 `json:"percent"`
	Y       float64 `json:"y"`
}

// AxisLabel is a time label under the x axis.
type AxisLabel struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
}

// LineChart is the laid-out alerts-over-time chart.
type LineChart struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Max    float64     `json:"max"`
	Grid   []GridLine  `json:"grid"`
	Labels []AxisLabel `json:"labels"`
	Lines  []Polyline  `json:"lines"`
}

// Line scales every series against the global maximum. A single point sits at
// the left padding; a zero maximum keeps all points on the baseline.
func Line(labels []string, series []Series) *LineChart {
	maxValue := 0.0
	for _, s := range series {
		if len(s.Values) > 0 {
			maxValue = math.Max(maxValue, lo.Max(s.Values))
		}
	}

	lc := &LineChart{Width: LineWidth, Height: LineHeight, Max: maxValue}
	for _, p := range GridPercents {
		lc.Grid = append(lc.Grid, GridLine{Percent: p, Y: scaleY(p, 100)})
	}
	for i, l := range labels {
		lc.Labels = append(lc.Labels, AxisLabel{Text: l, X: scaleX(i, len(labels))})
	}
	for _, s := range series {
		pl := Polyline{Name: s.Name, Color: s.Color}
		parts := make([]string, 0, len(s.Values))
		for i, v := range s.Values {
			pt := Point{X: scaleX(i, len(s.Values)), Y: scaleY(v, maxValue)}
			pl.Points = append(pl.Points, pt)
			parts = append(parts, num(pt.X)+","+num(pt.Y))
		}
		if len(parts) > 0 {
			pl.Path = "M " + strings.Join(parts, " L ")
		}
		lc.Lines = append(lc.Lines, pl)
	}
	return lc
}

func scaleX(i, n int) float64 {
	if n <= 1 {
		return LinePadding
	}
	return LinePadding + float64(i)*(LineWidth-2*LinePadding)/float64(n-1)
}

func scaleY(v, maxValue float64) float64 {
	if maxValue <= 0 {
		return LineHeight - LinePadding
	}
	return LineHeight - LinePadding - v/maxValue*(LineHeight-2*LinePadding)
}

// Bar is one input value of a bar chart. Risk is optional.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Risk  string  `json:"risk,omitempty"`
}

// BarLayout is a bar sized as a percentage of the largest bar.
type BarLayout struct {
	Label   string     `json:"label"`
	Value   float64    `json:"value"`
	Percent float64    `json:"percent"`
	Band    table.Band `json:"band"`
}

// Bars sizes items relative to the maximum value. Bars without a recognised
// risk label fall in the low band.
func Bars(items []Bar) []BarLayout {
	maxValue := 0.0
	for _, it := range items {
		maxValue = math.Max(maxValue, it.Value)
	}

	out := make([]BarLayout, len(items))
	for i, it := range items {
		pct := 0.0
		if maxValue > 0 {
			pct = it.Value / maxValue * 100
		}
		band := table.SeverityBand(it.Risk)
		if band == table.BandNone {
			band = table.BandLow
		}
		out[i] = BarLayout{Label: it.Label, Value: it.Value, Percent: pct, Band: band}
	}
	return out
}
