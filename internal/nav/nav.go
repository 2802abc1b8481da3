// Package nav tracks the active view and the engine state that belongs to it.
package nav

import (
	"fmt"

	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/source"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Shell holds the active domain and its view. Switching domains discards the
// previous view's query, filter and sort.
type Shell struct {
	catalog *domains.Catalog
	source  source.Source
	active  *domains.Domain
	view    *table.View
}

// NewShell returns a shell with no active view.
func NewShell(c *domains.Catalog, src source.Source) *Shell {
	return &Shell{catalog: c, source: src}
}

// Catalog returns the domain catalog.
func (s *Shell) Catalog() *domains.Catalog {
	return s.catalog
}

// Source returns the record source.
func (s *Shell) Source() source.Source {
	return s.source
}

// SetSource replaces the record source. The active view is reloaded from it.
func (s *Shell) SetSource(src source.Source) error {
	s.source = src
	if s.active == nil {
		return nil
	}
	return s.Select(s.active.ID)
}

// Select activates a domain, loading its records once and starting a
// fresh view over them.
func (s *Shell) Select(id model.DomainID) error {
	d, err := s.catalog.Get(id)
	if err != nil {
		return err
	}
	records, err := s.source.Records(id)
	if err != nil {
		return fmt.Errorf("loading %s records: %w", id, err)
	}
	s.active = d
	s.view = table.NewView(d.Schema, records)
	return nil
}

// Active returns the active domain, or nil before the first Select.
func (s *Shell) Active() *domains.Domain {
	return s.active
}

// View returns the active view, or nil before the first Select.
func (s *Shell) View() *table.View {
	return s.view
}

// Step moves delta positions through the navigation order, wrapping around.
func (s *Shell) Step(delta int) error {
	ids := model.DomainIDs
	pos := 0
	if s.active != nil {
		for i, id := range ids {
			if id == s.active.ID {
				pos = i
				break
			}
		}
	}
	n := len(ids)
	next := ((pos+delta)%n + n) % n
	return s.Select(ids[next])
}
