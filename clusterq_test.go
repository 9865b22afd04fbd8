package clusterq

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgcdb/clusterq/blobstore"
	"github.com/bgcdb/clusterq/dataset"
	"github.com/bgcdb/clusterq/module"
	"github.com/bgcdb/clusterq/query"
	"github.com/bgcdb/clusterq/resource"
	"github.com/bgcdb/clusterq/store"
	"github.com/bgcdb/clusterq/testutil"
)

func newFixtureSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	st, err := store.New(testutil.Fixture())
	require.NoError(t, err)
	s, err := New(st, opts...)
	require.NoError(t, err)
	return s
}

func TestNew_NilStore(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilStore)
}

func TestSearchText(t *testing.T) {
	s := newFixtureSearcher(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      string
		searchType query.SearchType
		want       []uint32
	}{
		{"type and genus", "[type]lanthipeptide [genus]Streptomyces", query.SearchCluster, []uint32{testutil.RegionCinnamycin}},
		{"ripp in two genera", "ripp AND ( streptomyces OR lactococcus )", query.SearchCluster, []uint32{testutil.RegionCinnamycin, testutil.RegionNisin}},
		{"similarity filter", "[knowncluster]BGC0000535 WITH [similarity](> 50)", query.SearchCluster, []uint32{testutil.RegionNisin}},
		{"unknown category", "[nonexistent]foo", query.SearchCluster, []uint32{}},
		{"genes by profile", "[pfam]PF00109", query.SearchGene, []uint32{4, 5}},
		{"domains by region type", "[type]NRPS", query.SearchDomain, []uint32{1, 2, 3}},
		{"default search type", "[type]terpene", "", []uint32{testutil.RegionTerpene}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.SearchText(ctx, tt.input, tt.searchType, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.IDs)
			assert.Equal(t, len(tt.want), res.Total)
			assert.Equal(t, query.ReturnJSON, res.ReturnType)
			assert.Nil(t, res.Records)
		})
	}
}

func TestSearchText_ModuleQuery(t *testing.T) {
	s := newFixtureSearcher(t)
	ctx := context.Background()

	none, err := s.SearchText(ctx, "[modulequery]T=0", query.SearchCluster, false)
	require.NoError(t, err)
	pp, err := s.SearchText(ctx, "[modulequery]T=PP-binding", query.SearchCluster, false)
	require.NoError(t, err)
	both, err := s.SearchText(ctx, "[modulequery]T=0,PP-binding", query.SearchCluster, false)
	require.NoError(t, err)

	assert.Equal(t, none.Total+pp.Total, both.Total)

	_, err = s.SearchText(ctx, "[modulequery]T=*", query.SearchCluster, false)
	require.Error(t, err)
	var perr *query.ParseError
	assert.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, module.ErrNoRestrictions)
}

func TestSearchText_Errors(t *testing.T) {
	s := newFixtureSearcher(t)
	ctx := context.Background()

	_, err := s.SearchText(ctx, "", query.SearchCluster, false)
	var perr *query.ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = s.SearchText(ctx, "[genus]x WITH [similarity](> 5)", query.SearchCluster, false)
	assert.ErrorIs(t, err, query.ErrFilter)

	_, err = s.SearchText(ctx, "[type]NRPS", "operon", false)
	assert.ErrorIs(t, err, ErrInvalidSearchType)
}

func TestSearch(t *testing.T) {
	s := newFixtureSearcher(t)
	ctx := context.Background()

	t.Run("nil query", func(t *testing.T) {
		_, err := s.Search(ctx, nil)
		assert.ErrorIs(t, err, ErrNilQuery)
	})

	t.Run("canceled context", func(t *testing.T) {
		term, err := s.Parse(ctx, "[type]NRPS")
		require.NoError(t, err)
		q, err := query.New(term, query.SearchCluster, query.ReturnCSV, false)
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = s.Search(canceled, q)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid return type", func(t *testing.T) {
		term, err := s.Parse(ctx, "[type]NRPS")
		require.NoError(t, err)
		_, err = s.Search(ctx, &query.Query{Terms: term, SearchType: query.SearchCluster, ReturnType: "xml"})
		assert.ErrorIs(t, err, ErrInvalidReturnType)
	})

	t.Run("verbose", func(t *testing.T) {
		res, err := s.SearchText(ctx, "[asdomain]PKS_KS", query.SearchDomain, true)
		require.NoError(t, err)
		require.Len(t, res.Records, 2)
		assert.Equal(t, "NC_010572.1.1", res.Records[0].Region)
		assert.Equal(t, "Trans-AT-KS", res.Records[0].Subtype)
		assert.Equal(t, "SGR_0002", res.Records[1].LocusTag)
		assert.Equal(t, "[asdomain]PKS_KS", res.Query)
	})
}

func TestSearchJSON(t *testing.T) {
	s := newFixtureSearcher(t)
	ctx := context.Background()

	res, err := s.SearchJSON(ctx, []byte(`{
		"search": "cluster",
		"return_type": "csv",
		"terms": {
			"term_type": "op",
			"operation": "except",
			"left": {"term_type": "expr", "category": "typecategory", "term": "RiPP"},
			"right": {"term_type": "expr", "category": "knowncluster", "term": "BGC0000535",
				"filters": [{"name": "similarity", "operator": ">", "value": 50}]}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []uint32{testutil.RegionCinnamycin}, res.IDs)
	assert.Equal(t, query.ReturnCSV, res.ReturnType)

	_, err = s.SearchJSON(ctx, []byte(`{"search": "operon", "terms": {"term_type": "expr", "category": "type", "term": "NRPS"}}`))
	assert.ErrorIs(t, err, ErrInvalidSearchType)

	_, err = s.SearchJSON(ctx, []byte(`{"terms": {"term_type": "expr", "category": "genus", "term": "x",
		"filters": [{"name": "similarity", "operator": ">", "value": 5}]}}`))
	assert.ErrorIs(t, err, query.ErrFilter)
}

func TestSearch_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	s := newFixtureSearcher(t, WithMetricsCollector(metrics))
	ctx := context.Background()

	_, err := s.SearchText(ctx, "[type]lanthipeptide", query.SearchCluster, false)
	require.NoError(t, err)
	_, err = s.SearchText(ctx, "(", query.SearchCluster, false)
	require.Error(t, err)
	_, err = s.Search(ctx, nil)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ParseCount)
	assert.Equal(t, int64(1), stats.ParseErrors)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, int64(2), stats.SearchResults)
}

func TestSearch_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newFixtureSearcher(t, WithLogger(logger))

	_, err := s.SearchText(context.Background(), "[type]terpene", query.SearchCluster, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"parse completed"`)
	assert.Contains(t, out, `"msg":"search completed"`)
	assert.Contains(t, out, `"query":"[type]terpene"`)
	assert.Contains(t, out, `"results":1`)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemoryStore()

	fixture := testutil.Fixture()
	first := &dataset.Dataset{Version: fixture.Version, Regions: fixture.Regions[:2]}
	rest := &dataset.Dataset{Version: fixture.Version, Regions: fixture.Regions[2:]}
	require.NoError(t, dataset.Save(ctx, bs, "regions/part-0000.json.zst", first))
	require.NoError(t, dataset.Save(ctx, bs, "regions/part-0001.json.lz4", rest))

	metrics := &BasicMetricsCollector{}
	s, err := Open(ctx, bs, "regions/",
		WithMetricsCollector(metrics),
		WithResourceConfig(resource.Config{MaxConcurrentFetches: 1}),
	)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Store().Len(store.ScopeCluster))

	res, err := s.SearchText(ctx, "[type]lanthipeptide [genus]Streptomyces", query.SearchCluster, false)
	require.NoError(t, err)
	assert.Equal(t, []uint32{testutil.RegionCinnamycin}, res.IDs)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(5), stats.LoadRegions)
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemoryStore()

	_, err := Open(ctx, bs, "missing/")
	var lerr *ErrLoad
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "missing/", lerr.Prefix)
	assert.ErrorIs(t, err, dataset.ErrNoShards)

	require.NoError(t, bs.Put(ctx, "bad/part-0.json", []byte(`{"version":"1","regions":[{"accession":""}]}`)))
	_, err = Open(ctx, bs, "bad/")
	assert.True(t, errors.As(err, &lerr))
}

func TestIntrospection(t *testing.T) {
	s := newFixtureSearcher(t)

	cats, err := s.Categories(query.SearchCluster)
	require.NoError(t, err)
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "length")
	assert.Contains(t, names, "modulequery")

	geneCats, err := s.Categories(query.SearchGene)
	require.NoError(t, err)
	assert.Less(t, len(geneCats), len(cats))

	_, err = s.Categories("operon")
	assert.ErrorIs(t, err, ErrInvalidSearchType)

	filters, err := s.AvailableFilters("knowncluster")
	require.NoError(t, err)
	assert.Len(t, filters, 2)

	values, err := s.Suggest(query.SearchCluster, "genus", "strep", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Streptomyces"}, values)
}

func TestParseModule(t *testing.T) {
	q, err := ParseModule("L=PKS_AT|M=PKS_KR|T=0")
	require.NoError(t, err)
	assert.Equal(t, "L=PKS_AT|M=PKS_KR|T=0", q.String())

	_, err = ParseModule("S=*")
	assert.ErrorIs(t, err, module.ErrNoRestrictions)
}
