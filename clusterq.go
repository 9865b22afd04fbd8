package clusterq

import (
	"context"
	"time"

	"github.com/bgcdb/clusterq/blobstore"
	"github.com/bgcdb/clusterq/dataset"
	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/module"
	"github.com/bgcdb/clusterq/query"
	"github.com/bgcdb/clusterq/registry"
	"github.com/bgcdb/clusterq/resource"
	"github.com/bgcdb/clusterq/store"
)

// Searcher runs queries against an immutable store.
// It is safe for concurrent use.
type Searcher struct {
	store    *store.Store
	registry *registry.Registry
	opts     options
}

// Result is the outcome of one search.
type Result struct {
	SearchType query.SearchType `json:"search_type"`
	ReturnType query.ReturnType `json:"return_type"`
	// Query is the canonical free-text form of the terms.
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	IDs     []uint32       `json:"ids"`
	Records []store.Record `json:"records,omitempty"`
}

// New creates a Searcher over st.
func New(st *store.Store, optFns ...Option) (*Searcher, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	o := applyOptions(optFns)
	return &Searcher{
		store:    st,
		registry: registry.New(st),
		opts:     o,
	}, nil
}

// Open loads every dataset shard under prefix and creates a Searcher.
func Open(ctx context.Context, bs blobstore.BlobStore, prefix string, optFns ...Option) (*Searcher, error) {
	o := applyOptions(optFns)
	start := time.Now()

	st, err := load(ctx, bs, prefix, o)
	regions := 0
	if err == nil {
		regions = st.Len(store.ScopeCluster)
	}
	o.metricsCollector.RecordLoad(regions, time.Since(start), err)
	o.logger.LogLoad(ctx, prefix, regions, err)
	if err != nil {
		return nil, err
	}
	return New(st, optFns...)
}

func load(ctx context.Context, bs blobstore.BlobStore, prefix string, o options) (*store.Store, error) {
	ds, err := dataset.Load(ctx, bs, prefix,
		dataset.WithCodec(o.codec),
		dataset.WithController(resource.NewController(o.resourceConfig)),
		dataset.WithLogger(o.logger.Logger),
	)
	if err != nil {
		return nil, &ErrLoad{Prefix: prefix, cause: err}
	}
	st, err := store.New(ds)
	if err != nil {
		return nil, &ErrLoad{Prefix: prefix, cause: err}
	}
	return st, nil
}

// Store returns the underlying store.
func (s *Searcher) Store() *store.Store {
	return s.store
}

// Registry returns the category registry.
func (s *Searcher) Registry() *registry.Registry {
	return s.registry
}

func (s *Searcher) parseOptions() []query.ParseOption {
	return []query.ParseOption{
		query.WithFilters(s.registry),
		query.WithCodec(s.opts.codec),
	}
}

// Parse parses a free-text query, resolving WITH clauses against the registry.
func (s *Searcher) Parse(ctx context.Context, text string) (query.Term, error) {
	start := time.Now()
	t, err := query.Parse(text, s.parseOptions()...)
	s.opts.metricsCollector.RecordParse(time.Since(start), err)
	s.opts.logger.LogParse(ctx, text, err)
	return t, err
}

// Search compiles q and returns the matching ids at q's search type.
func (s *Searcher) Search(ctx context.Context, q *query.Query) (*Result, error) {
	start := time.Now()
	res, err := s.search(ctx, q)

	var (
		st    query.SearchType
		text  string
		total int
	)
	if q != nil {
		st, text = q.SearchType, q.String()
	}
	if res != nil {
		total = res.Total
	}
	s.opts.metricsCollector.RecordSearch(string(st), total, time.Since(start), err)
	s.opts.logger.LogSearch(ctx, st, text, total, err)
	return res, err
}

func (s *Searcher) search(ctx context.Context, q *query.Query) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q == nil || q.Terms == nil {
		return nil, ErrNilQuery
	}
	searchType, err := query.ParseSearchType(string(q.SearchType))
	if err != nil {
		return nil, err
	}
	returnType, err := query.ParseReturnType(string(q.ReturnType))
	if err != nil {
		return nil, err
	}
	scope, ok := store.ParseScope(string(searchType))
	if !ok {
		return nil, ErrInvalidSearchType
	}

	ids := Compile(s.registry.Table(scope), q.Terms).All()
	if ids == nil {
		ids = []uint32{}
	}
	res := &Result{
		SearchType: searchType,
		ReturnType: returnType,
		Query:      q.Terms.String(),
		Total:      len(ids),
		IDs:        ids,
	}
	if q.Verbose {
		res.Records = make([]store.Record, 0, len(ids))
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if r, ok := s.store.Record(scope, id); ok {
				res.Records = append(res.Records, r)
			}
		}
	}
	return res, nil
}

// SearchText parses free text and searches at the given type.
func (s *Searcher) SearchText(ctx context.Context, text string, st query.SearchType, verbose bool) (*Result, error) {
	t, err := s.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	q, err := query.New(t, st, query.ReturnJSON, verbose)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, q)
}

// SearchJSON decodes a request envelope and searches.
//
//	{"search": "gene", "return_type": "json", "verbose": true, "terms": {...}}
func (s *Searcher) SearchJSON(ctx context.Context, data []byte) (*Result, error) {
	start := time.Now()
	q, err := query.FromRequestJSON(data, s.parseOptions()...)
	s.opts.metricsCollector.RecordParse(time.Since(start), err)
	s.opts.logger.LogParse(ctx, string(data), err)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, q)
}

// Categories lists the categories available at a search type.
func (s *Searcher) Categories(st query.SearchType) ([]registry.Info, error) {
	scope, err := scopeOf(st)
	if err != nil {
		return nil, err
	}
	return s.registry.Categories(scope)
}

// AvailableFilters describes the filters a category accepts.
func (s *Searcher) AvailableFilters(category string) ([]filter.Description, error) {
	return s.registry.AvailableFilters(category)
}

// Suggest returns up to limit known values of category starting with prefix.
func (s *Searcher) Suggest(st query.SearchType, category, prefix string, limit int) ([]string, error) {
	scope, err := scopeOf(st)
	if err != nil {
		return nil, err
	}
	return s.registry.Suggest(scope, category, prefix, limit)
}

// ParseModule validates a module architecture query.
func ParseModule(text string) (*module.Query, error) {
	return module.Parse(text)
}

func scopeOf(st query.SearchType) (store.Scope, error) {
	parsed, err := query.ParseSearchType(string(st))
	if err != nil {
		return 0, err
	}
	scope, ok := store.ParseScope(string(parsed))
	if !ok {
		return 0, ErrInvalidSearchType
	}
	return scope, nil
}
