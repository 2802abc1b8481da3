// Package source supplies the records a view presents.
package source

import (
	"fmt"

	"github.com/cdtdelta/insiderwatch/internal/database"
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/query"
)

// Source loads the full record collection of a domain.
type Source interface {
	Records(id model.DomainID) ([]model.Record, error)
}

// Static serves the catalog's built-in sample records.
type Static struct {
	catalog *domains.Catalog
}

// NewStatic returns a source over the catalog samples.
func NewStatic(c *domains.Catalog) *Static {
	return &Static{catalog: c}
}

// Records returns a copy of the domain's samples.
func (s *Static) Records(id model.DomainID) ([]model.Record, error) {
	return s.catalog.Samples(id)
}

// Window restricts what a Store source loads.
type Window struct {
	// Since and Until bound the timestamp column inclusively. Empty is open.
	Since string
	Until string
	// MaxRecords caps the number of records per domain. Zero loads all.
	MaxRecords int
	// Search is pushed down as a case-insensitive match on the domain's
	// search fields.
	Search string
}

// Store reads domain tables from a log store.
type Store struct {
	store   database.Store
	catalog *domains.Catalog
	window  Window
}

// NewStore returns a source reading from s.
func NewStore(s database.Store, c *domains.Catalog, w Window) *Store {
	return &Store{store: s, catalog: c, window: w}
}

// Window returns the restriction applied to every load.
func (s *Store) Window() Window {
	return s.window
}

// Records loads the domain's table in insertion order.
func (s *Store) Records(id model.DomainID) ([]model.Record, error) {
	q, err := s.Query(id)
	if err != nil {
		return nil, err
	}
	recs, err := s.store.ExecuteQuery(q)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", id, err)
	}
	return recs, nil
}

// Count returns how many stored records the window matches, ignoring the cap.
func (s *Store) Count(id model.DomainID) (int64, error) {
	q, err := s.Query(id)
	if err != nil {
		return 0, err
	}
	return s.store.ExecuteCountQuery(q)
}

// Query builds the windowed query for a domain.
func (s *Store) Query(id model.DomainID) (*query.Query, error) {
	d, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	table, ok := s.store.Table(database.TableName(id))
	if !ok {
		return nil, fmt.Errorf("no table for %s in %s", id, s.store.Path())
	}

	q := table.Query(s.window.MaxRecords)
	if table.Has(model.KeyTimestamp) {
		if err := q.AddPredicate(query.Between(model.KeyTimestamp, s.window.Since, s.window.Until)); err != nil {
			return nil, err
		}
	}
	if err := q.AddPredicate(query.Contains(s.window.Search, d.Schema.SearchFields...)); err != nil {
		return nil, err
	}
	return q, nil
}
