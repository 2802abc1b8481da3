package domains

import (
	"fmt"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/model"
)

// Catalog holds every domain in navigation order.
type Catalog struct {
	thresholds Thresholds
	order      []*Domain
	byID       map[model.DomainID]*Domain
}

// New builds the catalog with the given thresholds.
func New(t Thresholds) *Catalog {
	builders := map[model.DomainID]func(Thresholds) *Domain{
		model.Dashboard: dashboardDomain,
		model.Identity:  identityDomain,
		model.Process:   processDomain,
		model.Files:     filesDomain,
		model.Network:   networkDomain,
		model.Registry:  registryDomain,
		model.Media:     mediaDomain,
		model.Email:     emailDomain,
		model.Security:  securityDomain,
		model.Clipboard: clipboardDomain,
	}

	c := &Catalog{thresholds: t, byID: make(map[model.DomainID]*Domain, len(builders))}
	for _, id := range model.DomainIDs {
		d := builders[id](t)
		c.order = append(c.order, d)
		c.byID[id] = d
	}
	return c
}

// Default builds the catalog with DefaultThresholds.
func Default() *Catalog {
	return New(DefaultThresholds())
}

// All returns the domains in navigation order.
func (c *Catalog) All() []*Domain {
	return c.order
}

// Get looks up a domain by id.
func (c *Catalog) Get(id model.DomainID) (*Domain, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", id)
	}
	return d, nil
}

// Lookup resolves a domain by id or case-insensitive title.
func (c *Catalog) Lookup(name string) (*Domain, error) {
	if d, ok := c.byID[model.DomainID(name)]; ok {
		return d, nil
	}
	for _, d := range c.order {
		if strings.EqualFold(d.Title, name) || strings.EqualFold(string(d.ID), name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown view %q", name)
}

// BySection returns the domain fed by an agent payload section.
func (c *Catalog) BySection(section string) (*Domain, bool) {
	for _, d := range c.order {
		if d.Section != "" && d.Section == section {
			return d, true
		}
	}
	return nil, false
}

// Thresholds returns the thresholds the catalog was built with.
func (c *Catalog) Thresholds() Thresholds {
	return c.thresholds
}

// Samples returns a copy of the built-in records for a domain.
func (c *Catalog) Samples(id model.DomainID) ([]model.Record, error) {
	d, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	out := make([]model.Record, len(d.Samples))
	for i, r := range d.Samples {
		out[i] = r.Clone()
	}
	return out, nil
}
