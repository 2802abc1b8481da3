package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/table"
	"github.com/cdtdelta/insiderwatch/internal/workspace"
)

// ViewFlags holds the search, filter and sort flags of show and export.
type ViewFlags struct {
	Search string
	Filter string
	Sort   string
	Desc   bool
}

// AddViewFlags registers --search, --filter, --sort and --desc on a command.
func AddViewFlags(cmd *cobra.Command, flags *ViewFlags) {
	cmd.Flags().StringVar(&flags.Search, "search", "", "case-insensitive text matched against the view's search fields")
	cmd.Flags().StringVar(&flags.Filter, "filter", table.FilterAll, "filter id (see 'iwctl views')")
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "column key to sort by")
	cmd.Flags().BoolVar(&flags.Desc, "desc", false, "sort descending")
}

// SortState resolves --sort and --desc against a schema.
func (f ViewFlags) SortState(schema *table.Schema) (table.SortState, error) {
	if f.Sort == "" {
		if f.Desc {
			return table.SortState{}, fmt.Errorf("--desc needs --sort")
		}
		return table.SortState{}, nil
	}

	col, ok := schema.Column(f.Sort)
	if !ok {
		return table.SortState{}, fmt.Errorf("unknown column %q (columns: %s)", f.Sort, strings.Join(schema.Keys(), ", "))
	}
	if !col.Sortable {
		return table.SortState{}, fmt.Errorf("column %q is not sortable", f.Sort)
	}

	state := table.SortState{Column: col.Key, Direction: table.Ascending}
	if f.Desc {
		state.Direction = table.Descending
	}
	return state, nil
}

// FilterID checks --filter against the schema's filter options.
func (f ViewFlags) FilterID(schema *table.Schema) (string, error) {
	if f.Filter == "" {
		return table.FilterAll, nil
	}
	opts := schema.FilterOptions()
	ids := make([]string, len(opts))
	for i, o := range opts {
		if o.ID == f.Filter {
			return o.ID, nil
		}
		ids[i] = o.ID
	}
	return "", fmt.Errorf("unknown filter %q (filters: %s)", f.Filter, strings.Join(ids, ", "))
}

// buildView loads a domain's records and applies the flags. The summary
// always covers the full collection.
func buildView(w *workspace.Workspace, d *domains.Domain, f ViewFlags) (*table.ViewModel, table.Summary, error) {
	sort, err := f.SortState(d.Schema)
	if err != nil {
		return nil, table.Summary{}, err
	}
	filterID, err := f.FilterID(d.Schema)
	if err != nil {
		return nil, table.Summary{}, err
	}

	records, err := w.Source.Records(d.ID)
	if err != nil {
		return nil, table.Summary{}, err
	}

	vm := table.Build(records, d.Schema, f.Search, filterID, sort)
	return vm, table.ComputeSummary(records, d.Schema.Stats), nil
}
