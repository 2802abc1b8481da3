package table

import (
	"slices"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

// Direction is the ordering applied to the active sort column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortState is the active sort column and direction. An empty Column means
// records keep their original order.
type SortState struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Active reports whether a column is selected.
func (s SortState) Active() bool {
	return s.Column != ""
}

// Toggle returns the state after the user selects key. Selecting the active
// column flips its direction, any other sortable column becomes active in
// ascending order, and unknown or non-sortable keys leave the state as is.
func (s SortState) Toggle(columns []Column, key string) SortState {
	col, ok := findColumn(columns, key)
	if !ok || !col.Sortable {
		return s
	}
	if s.Column == key {
		return SortState{Column: key, Direction: s.Direction.Flip()}
	}
	return SortState{Column: key, Direction: Ascending}
}

// Sort returns records ordered by state. The input slice is never modified.
// With no active column, or one that is unknown or not sortable, the
// original order is returned.
func Sort(records []model.Record, state SortState, columns []Column) []model.Record {
	out := slices.Clone(records)
	if !state.Active() {
		return out
	}
	col, ok := findColumn(columns, state.Column)
	if !ok || !col.Sortable {
		return out
	}

	key := col.Key
	slices.SortStableFunc(out, func(a, b model.Record) int {
		c := compareValues(a.Value(key), b.Value(key))
		if state.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

// compareValues orders numbers numerically and everything else
// lexicographically by string form. Absent values sort first.
func compareValues(a, b interface{}) int {
	aEmpty, bEmpty := isEmpty(a), isEmpty(b)
	switch {
	case aEmpty && bEmpty:
		return 0
	case aEmpty:
		return -1
	case bEmpty:
		return 1
	}

	if model.IsNumeric(a) && model.IsNumeric(b) {
		an, _ := model.ToFloat(a)
		bn, _ := model.ToFloat(b)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(model.ToString(a), model.ToString(b))
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func findColumn(columns []Column, key string) (Column, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
