package table

import (
	"fmt"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

// ViewModel is what a view renders: the surviving records in display order,
// their formatted cells and the counts behind "Showing X of Y".
type ViewModel struct {
	Columns  []Column       `json:"columns"`
	Rows     []model.Record `json:"-"`
	Cells    [][]Cell       `json:"cells"`
	Matched  int            `json:"matched"`
	Total    int            `json:"total"`
	Query    string         `json:"query"`
	FilterID string         `json:"filterId"`
	Sort     SortState      `json:"sort"`
}

// Showing returns the "Showing X of Y" caption.
func (vm *ViewModel) Showing() string {
	return fmt.Sprintf("Showing %d of %d", vm.Matched, vm.Total)
}

// Build runs search, filter and sort over records and formats the result.
func Build(records []model.Record, schema *Schema, query, filterID string, sort SortState) *ViewModel {
	filterID = schema.ResolveFilter(filterID)

	matched := Search(records, query, schema.SearchFields)
	matched = ApplyFilter(matched, schema.Predicate(filterID))
	rows := Sort(matched, sort, schema.Columns)

	cells := make([][]Cell, len(rows))
	for i, r := range rows {
		row := make([]Cell, len(schema.Columns))
		for j, c := range schema.Columns {
			row[j] = FormatCell(r.Value(c.Key), c)
		}
		cells[i] = row
	}

	return &ViewModel{
		Columns:  schema.Columns,
		Rows:     rows,
		Cells:    cells,
		Matched:  len(rows),
		Total:    len(records),
		Query:    query,
		FilterID: filterID,
		Sort:     sort,
	}
}

// View holds one view's interaction state over a fixed record collection.
// The records are never modified; a new View is created on each activation.
type View struct {
	schema   *Schema
	records  []model.Record
	query    string
	filterID string
	sort     SortState
}

// NewView creates a view in its initial state: no query, FilterAll, unsorted.
func NewView(schema *Schema, records []model.Record) *View {
	return &View{
		schema:   schema,
		records:  records,
		filterID: FilterAll,
	}
}

// Schema returns the view's schema.
func (v *View) Schema() *Schema { return v.schema }

// Records returns the full, unfiltered collection.
func (v *View) Records() []model.Record { return v.records }

// Query returns the active search text.
func (v *View) Query() string { return v.query }

// FilterID returns the active filter id.
func (v *View) FilterID() string { return v.filterID }

// SortState returns the active sort.
func (v *View) SortState() SortState { return v.sort }

// SetQuery replaces the search text.
func (v *View) SetQuery(q string) {
	v.query = q
}

// SetFilter activates a filter. Unknown ids select FilterAll.
func (v *View) SetFilter(id string) {
	v.filterID = v.schema.ResolveFilter(id)
}

// NextFilter cycles to the following filter option and returns its id.
func (v *View) NextFilter() string {
	opts := v.schema.FilterOptions()
	for i, o := range opts {
		if o.ID == v.filterID {
			v.filterID = opts[(i+1)%len(opts)].ID
			return v.filterID
		}
	}
	v.filterID = FilterAll
	return v.filterID
}

// ToggleSort applies a column selection and reports whether the state changed.
func (v *View) ToggleSort(key string) bool {
	next := v.sort.Toggle(v.schema.Columns, key)
	changed := next != v.sort
	v.sort = next
	return changed
}

// Reset returns the view to its initial state.
func (v *View) Reset() {
	v.query = ""
	v.filterID = FilterAll
	v.sort = SortState{}
}

// Render builds the current view model.
func (v *View) Render() *ViewModel {
	return Build(v.records, v.schema, v.query, v.filterID, v.sort)
}

// Summary computes the schema's statistics over the full collection.
func (v *View) Summary() Summary {
	return ComputeSummary(v.records, v.schema.Stats)
}
