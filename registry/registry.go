package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/predicate"
	"github.com/bgcdb/clusterq/store"
)

// Unknown is the category of unqualified search terms.
const Unknown = "unknown"

var (
	// ErrUnknownCategory is returned by introspection calls for unregistered categories.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownScope is returned for invalid search types.
	ErrUnknownScope = errors.New("unknown search type")
)

// Handler resolves a search term to the matching entities.
type Handler func(term string) predicate.Predicate

// CountHandler resolves a term that must occur at least n times.
type CountHandler func(term string, n int) predicate.Predicate

// CompareHandler resolves a numeric term under a comparison operator.
type CompareHandler func(term string, op filter.Operator) predicate.Predicate

// Category is one entry of a category table.
type Category struct {
	Name        string
	Description string
	Handler     Handler
	// Count is nil when the category has no occurrence support.
	Count CountHandler
	// Compare is nil when the category has no comparison support.
	Compare CompareHandler
	Filters []filter.Spec
	// Field backs Suggest; empty when values are not enumerable.
	Field store.Field
}

// Filter returns the filter spec named name.
func (c *Category) Filter(name string) (filter.Spec, bool) {
	for _, f := range c.Filters {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return filter.Spec{}, false
}

// Info is the introspection view of a category.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Countable   bool     `json:"countable,omitempty"`
	Comparable  bool     `json:"comparable,omitempty"`
	Filters     []string `json:"filters,omitempty"`
}

// Table is the immutable category table of one search type.
type Table struct {
	scope      store.Scope
	categories map[string]*Category
	names      []string
}

func newTable(scope store.Scope, cats []*Category) *Table {
	t := &Table{
		scope:      scope,
		categories: make(map[string]*Category, len(cats)),
		names:      make([]string, 0, len(cats)),
	}
	for _, c := range cats {
		t.categories[c.Name] = c
		t.names = append(t.names, c.Name)
	}
	sort.Strings(t.names)
	return t
}

// Scope returns the search type of the table.
func (t *Table) Scope() store.Scope {
	return t.scope
}

// Lookup returns the category named name.
func (t *Table) Lookup(name string) (*Category, bool) {
	c, ok := t.categories[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Filter resolves filter name on category.
func (t *Table) Filter(category, name string) (filter.Spec, bool) {
	c, ok := t.Lookup(category)
	if !ok {
		return filter.Spec{}, false
	}
	return c.Filter(name)
}

// Categories lists the table in name order.
func (t *Table) Categories() []Info {
	out := make([]Info, 0, len(t.names))
	for _, name := range t.names {
		c := t.categories[name]
		info := Info{
			Name:        c.Name,
			Description: c.Description,
			Countable:   c.Count != nil,
			Comparable:  c.Compare != nil,
		}
		for _, f := range c.Filters {
			info.Filters = append(info.Filters, f.Name)
		}
		out = append(out, info)
	}
	return out
}

// Registry holds one Table per search type over a shared store.
type Registry struct {
	store  *store.Store
	tables map[store.Scope]*Table
}

// New builds the tables for every search type.
func New(st *store.Store) *Registry {
	r := &Registry{
		store:  st,
		tables: make(map[store.Scope]*Table),
	}
	for _, sc := range store.Scopes() {
		r.tables[sc] = newTable(sc, categories(st, sc))
	}
	return r
}

// Store returns the backing store.
func (r *Registry) Store() *store.Store {
	return r.store
}

// Table returns the table for scope, or nil for an invalid scope.
func (r *Registry) Table(scope store.Scope) *Table {
	return r.tables[scope]
}

// Filter resolves a filter by category and name. Filter shapes do not depend
// on the search type, so the parser validates against this view.
func (r *Registry) Filter(category, name string) (filter.Spec, bool) {
	return r.tables[store.ScopeCluster].Filter(category, name)
}

// AvailableFilters returns the filters of category, e.g.
// [{"name":"similarity","type":"numeric","value":0}].
func (r *Registry) AvailableFilters(category string) ([]filter.Description, error) {
	c, ok := r.tables[store.ScopeCluster].Lookup(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]filter.Description, 0, len(c.Filters))
	for _, f := range c.Filters {
		out = append(out, f.Describe())
	}
	return out, nil
}

// Categories lists the categories available for a search type.
func (r *Registry) Categories(scope store.Scope) ([]Info, error) {
	t, ok := r.tables[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScope, scope)
	}
	return t.Categories(), nil
}

// Suggest returns up to limit known values of category starting with prefix.
func (r *Registry) Suggest(scope store.Scope, category, prefix string, limit int) ([]string, error) {
	t, ok := r.tables[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScope, scope)
	}
	c, ok := t.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if c.Field == "" {
		return nil, nil
	}
	return r.store.Values(c.Field, prefix, limit), nil
}
