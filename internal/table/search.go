package table

import (
	"strings"

	"github.com/samber/lo"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

// Search keeps records where the query is a case-insensitive substring of
// any of the given fields. An empty query returns the input unchanged.
func Search(records []model.Record, query string, fields []string) []model.Record {
	if query == "" {
		return records
	}
	needle := strings.ToLower(query)
	return lo.Filter(records, func(r model.Record, _ int) bool {
		return lo.ContainsBy(fields, func(f string) bool {
			return strings.Contains(strings.ToLower(r.String(f)), needle)
		})
	})
}

// ApplyFilter keeps records matching pred. A nil predicate is the identity.
func ApplyFilter(records []model.Record, pred Predicate) []model.Record {
	if pred == nil {
		return records
	}
	return lo.Filter(records, func(r model.Record, _ int) bool {
		return pred(r)
	})
}
