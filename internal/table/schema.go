// Package table implements the presentation engine shared by every view:
// free-text search, a single active filter, single-column sorting, risk-aware
// cell formatting and summary statistics over an immutable record collection.
//
// All operations are total. Unknown columns and filter ids fall back to a
// safe default instead of returning errors.
package table

import (
	"github.com/cdtdelta/insiderwatch/internal/model"
)

// Kind selects how a column's values are rendered.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBytes
	KindStatus
	KindRisk
	KindSeverity
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBytes:
		return "bytes"
	case KindStatus:
		return "status"
	case KindRisk:
		return "risk"
	case KindSeverity:
		return "severity"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind are stored as numbers.
func (k Kind) Numeric() bool {
	return k == KindNumber || k == KindBytes || k == KindRisk
}

// Column describes one displayed column. Key is unique within a schema and
// the column order is the display order.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Kind     Kind   `json:"kind"`
}

// Predicate decides whether a record passes a filter.
type Predicate func(r model.Record) bool

// FilterAll is the identity filter id. It is always offered first.
const FilterAll = "all"

// Filter is a named predicate selectable by id.
type Filter struct {
	ID    string
	Label string
	Match Predicate
}

// FilterOption is the id/label pair shown in a filter selector.
type FilterOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Schema is a domain's full table configuration.
type Schema struct {
	Columns      []Column
	SearchFields []string
	Filters      []Filter
	Stats        []Stat
}

// Column looks up a column by key.
func (s *Schema) Column(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Keys returns the column keys in display order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Predicate resolves a filter id. FilterAll, empty and unknown ids all
// resolve to nil, which ApplyFilter treats as the identity.
func (s *Schema) Predicate(id string) Predicate {
	f, ok := s.filter(id)
	if !ok {
		return nil
	}
	return f.Match
}

// ResolveFilter returns id when it names a configured filter, else FilterAll.
func (s *Schema) ResolveFilter(id string) string {
	if _, ok := s.filter(id); ok {
		return id
	}
	return FilterAll
}

// FilterOptions lists the selectable filters, FilterAll first.
func (s *Schema) FilterOptions() []FilterOption {
	opts := make([]FilterOption, 0, len(s.Filters)+1)
	opts = append(opts, FilterOption{ID: FilterAll, Label: "All"})
	for _, f := range s.Filters {
		opts = append(opts, FilterOption{ID: f.ID, Label: f.Label})
	}
	return opts
}

func (s *Schema) filter(id string) (Filter, bool) {
	if id == "" || id == FilterAll {
		return Filter{}, false
	}
	for _, f := range s.Filters {
		if f.ID == id {
			return f, true
		}
	}
	return Filter{}, false
}
