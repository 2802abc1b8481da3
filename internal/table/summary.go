package table

import (
	"fmt"
	"math"
	"strconv"

	"github.com/samber/lo"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

// StatFormat controls how a summary value is displayed.
type StatFormat int

const (
	FormatCount StatFormat = iota
	FormatPercent
	FormatDecimal
	FormatByteSize
)

// Aggregator computes a statistic over a record collection.
type Aggregator func(records []model.Record) float64

// Stat is a named aggregate shown in a view's summary cards.
type Stat struct {
	Name    string
	Label   string
	Format  StatFormat
	Compute Aggregator
}

// StatValue is a computed statistic.
type StatValue struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Summary holds computed statistics in declaration order.
type Summary struct {
	values []StatValue
	index  map[string]int
}

// ComputeSummary evaluates every stat over records. Callers pass the full
// collection, not a filtered subset.
func ComputeSummary(records []model.Record, stats []Stat) Summary {
	s := Summary{
		values: make([]StatValue, 0, len(stats)),
		index:  make(map[string]int, len(stats)),
	}
	for _, st := range stats {
		var v float64
		if st.Compute != nil {
			v = st.Compute(records)
		}
		s.index[st.Name] = len(s.values)
		s.values = append(s.values, StatValue{
			Name:  st.Name,
			Label: st.Label,
			Value: v,
			Text:  formatStat(v, st.Format),
		})
	}
	return s
}

// Value returns the named statistic, or 0 when it is not defined.
func (s Summary) Value(name string) float64 {
	if i, ok := s.index[name]; ok {
		return s.values[i].Value
	}
	return 0
}

// Text returns the display form of the named statistic.
func (s Summary) Text(name string) string {
	if i, ok := s.index[name]; ok {
		return s.values[i].Text
	}
	return ""
}

// Values returns all statistics in declaration order.
func (s Summary) Values() []StatValue {
	return s.values
}

// Map returns the statistics keyed by name.
func (s Summary) Map() map[string]float64 {
	m := make(map[string]float64, len(s.values))
	for _, v := range s.values {
		m[v.Name] = v.Value
	}
	return m
}

func formatStat(v float64, f StatFormat) string {
	switch f {
	case FormatPercent:
		return fmt.Sprintf("%d%%", int(math.Round(v)))
	case FormatDecimal:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case FormatByteSize:
		return FormatBytes(v)
	default:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
}

// Total counts every record.
func Total() Aggregator {
	return func(records []model.Record) float64 {
		return float64(len(records))
	}
}

// Count counts records matching pred.
func Count(pred Predicate) Aggregator {
	return func(records []model.Record) float64 {
		return float64(lo.CountBy(records, func(r model.Record) bool { return pred(r) }))
	}
}

// Sum adds the numeric values of key. Non-numeric values count as zero.
func Sum(key string) Aggregator {
	return func(records []model.Record) float64 {
		return lo.SumBy(records, func(r model.Record) float64 { return r.Float(key) })
	}
}

// Mean averages key over all records, rounded to the given decimals.
// An empty collection yields 0.
func Mean(key string, decimals int) Aggregator {
	return func(records []model.Record) float64 {
		if len(records) == 0 {
			return 0
		}
		return round(Sum(key)(records)/float64(len(records)), decimals)
	}
}

// Percent is the share of records matching pred, rounded to a whole
// percentage. An empty collection yields 0.
func Percent(pred Predicate) Aggregator {
	return func(records []model.Record) float64 {
		if len(records) == 0 {
			return 0
		}
		return math.Round(Count(pred)(records) / float64(len(records)) * 100)
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
