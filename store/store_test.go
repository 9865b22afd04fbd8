package store

import (
	"testing"

	"github.com/bgcdb/clusterq/dataset"
	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/module"
	"github.com/bgcdb/clusterq/predicate"
	"github.com/bgcdb/clusterq/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(testutil.Fixture())
	require.NoError(t, err)
	return s
}

func ids(p predicate.Predicate) []uint32 {
	if p.IsEmpty() {
		return nil
	}
	return p.All()
}

func TestNew(t *testing.T) {
	s := newFixtureStore(t)
	assert.Equal(t, "4.0", s.Version())
	assert.Equal(t, 5, s.Len(ScopeCluster))
	assert.Equal(t, 6, s.Len(ScopeGene))
	assert.Equal(t, 8, s.Len(ScopeDomain))
	assert.Equal(t, 0, s.Len(Scope(9)))

	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&dataset.Dataset{Regions: []dataset.Region{{Accession: ""}}})
	assert.ErrorIs(t, err, dataset.ErrInvalidRecord)

	bad := &dataset.Dataset{Regions: []dataset.Region{{
		Accession: "X",
		Genes: []dataset.Gene{{
			LocusTag: "g",
			Modules:  []dataset.Module{{Sections: map[string][]string{"Q": {"A"}}}},
		}},
	}}}
	_, err = New(bad)
	assert.Error(t, err)
}

func TestParseScope(t *testing.T) {
	for _, sc := range Scopes() {
		got, ok := ParseScope(sc.String())
		require.True(t, ok)
		assert.Equal(t, sc, got)
	}
	got, ok := ParseScope("Gene")
	assert.True(t, ok)
	assert.Equal(t, ScopeGene, got)

	_, ok = ParseScope("module")
	assert.False(t, ok)
	assert.Equal(t, "invalid", Scope(7).String())
}

func TestLookup(t *testing.T) {
	s := newFixtureStore(t)

	tests := []struct {
		name  string
		scope Scope
		field Field
		value string
		want  []uint32
	}{
		{"type", ScopeCluster, FieldType, "lanthipeptide", []uint32{testutil.RegionCinnamycin, testutil.RegionNisin}},
		{"case-insensitive", ScopeCluster, FieldGenus, "STREPTOMYCES", []uint32{0, 1, 3}},
		{"taxid", ScopeCluster, FieldTaxID, "1358", []uint32{testutil.RegionNisin}},
		{"contig edge", ScopeCluster, FieldContigEdge, "true", []uint32{testutil.RegionTerpene}},
		{"missing", ScopeCluster, FieldType, "nonexistent", nil},
		{"unknown field", ScopeCluster, Field("bogus"), "x", nil},
		{"region fact on genes", ScopeGene, FieldType, "T1PKS", []uint32{4, 5}},
		{"region fact on domains", ScopeDomain, FieldType, "NRPS", []uint32{1, 2, 3}},
		{"gene fact on region", ScopeCluster, FieldGene, "cchH", []uint32{testutil.RegionCoelichelin}},
		{"gene fact on domains", ScopeDomain, FieldGene, "SGR_0001", []uint32{4, 5, 6}},
		{"domain fact on genes", ScopeGene, FieldDomain, "PKS_KS", []uint32{4, 5}},
		{"domain fact on regions", ScopeCluster, FieldDomain, "pks_ks", []uint32{testutil.RegionPolyketide}},
		{"profile by name", ScopeGene, FieldPfam, "ketoacyl-synt", []uint32{4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Lookup(tt.scope, tt.field, tt.value)))
		})
	}
}

func TestLookup_DoesNotAliasIndex(t *testing.T) {
	s := newFixtureStore(t)
	a := s.Lookup(ScopeCluster, FieldType, "lanthipeptide")
	b := s.Lookup(ScopeCluster, FieldGenus, "Lactococcus")
	_ = a.Except(b)
	_ = a.Union(s.All(ScopeCluster))
	assert.Equal(t, 2, s.Lookup(ScopeCluster, FieldType, "lanthipeptide").Count())
}

func TestSubstring(t *testing.T) {
	s := newFixtureStore(t)
	assert.Equal(t, []uint32{testutil.RegionCinnamycin}, ids(s.Substring(ScopeCluster, FieldCompoundSeq, "sfgpf")))
	assert.Equal(t, []uint32{0, 2}, ids(s.Substring(ScopeCluster, FieldCompoundSeq, "C")))
	assert.True(t, s.Substring(ScopeCluster, FieldCompoundSeq, "").IsEmpty())
}

func TestCountAtLeast(t *testing.T) {
	s := newFixtureStore(t)

	tests := []struct {
		name  string
		scope Scope
		field Field
		value string
		n     int
		want  []uint32
	}{
		{"monomer twice", ScopeCluster, FieldMonomer, "ala", 2, []uint32{testutil.RegionCoelichelin}},
		{"monomer thrice", ScopeCluster, FieldMonomer, "ala", 3, nil},
		{"monomer projected to genes", ScopeGene, FieldMonomer, "mal", 2, []uint32{4, 5}},
		{"profile summed per region", ScopeCluster, FieldPfam, "PF00109", 2, []uint32{testutil.RegionPolyketide}},
		{"profile per gene", ScopeGene, FieldPfam, "PF00109", 2, nil},
		{"domain summed per region", ScopeCluster, FieldDomain, "PKS_KS", 2, []uint32{testutil.RegionPolyketide}},
		{"domain once per domain", ScopeDomain, FieldDomain, "PKS_KS", 1, []uint32{4, 7}},
		{"not counted", ScopeCluster, FieldType, "NRPS", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.CountAtLeast(tt.scope, tt.field, tt.value, tt.n)))
		})
	}
}

func TestHits(t *testing.T) {
	s := newFixtureStore(t)

	assert.Equal(t, []uint32{1, 2}, ids(s.Hits(ScopeCluster, FieldKnownCluster, "BGC0000535", nil)))
	assert.Equal(t, []uint32{1, 2}, ids(s.Hits(ScopeCluster, FieldKnownCluster, "nisin", nil)), "description substring")
	assert.Equal(t, []uint32{2}, ids(s.Scored(ScopeCluster, FieldKnownCluster, "BGC0000535", filter.OpGreater, 50)))
	assert.Equal(t, []uint32{1}, ids(s.Scored(ScopeCluster, FieldKnownCluster, "BGC0000535", filter.OpLessEqual, 12)))
	assert.True(t, s.Scored(ScopeCluster, FieldKnownCluster, "BGC0000535", filter.Operator("!="), 1).IsEmpty())

	// Profile names match exactly, not by substring.
	assert.True(t, s.Hits(ScopeGene, FieldPfam, "ketoacyl", nil).IsEmpty())
	assert.Equal(t, []uint32{4}, ids(s.Scored(ScopeGene, FieldPfam, "PF00109", filter.OpGreaterEqual, 200)))
	assert.Equal(t, []uint32{4, 5, 6}, ids(s.Scored(ScopeDomain, FieldPfam, "PF00109", filter.OpGreaterEqual, 200)))

	assert.True(t, s.Hits(ScopeCluster, FieldType, "NRPS", nil).IsEmpty(), "unscored field")
}

func TestDomainsWithSubtype(t *testing.T) {
	s := newFixtureStore(t)
	assert.Equal(t, []uint32{4}, ids(s.DomainsWithSubtype(ScopeGene, "PKS_KS", "trans-at-ks")))
	assert.Equal(t, []uint32{7}, ids(s.DomainsWithSubtype(ScopeDomain, "PKS_KS", "Modular-KS")))
	assert.True(t, s.DomainsWithSubtype(ScopeCluster, "PKS_KS", "LCL").IsEmpty())
}

func TestCompare(t *testing.T) {
	s := newFixtureStore(t)
	assert.Equal(t, []uint32{1, 3}, ids(s.Compare(ScopeCluster, MeasureLength, filter.OpGreater, 30000)))
	assert.Equal(t, []uint32{testutil.RegionTerpene}, ids(s.Compare(ScopeCluster, MeasureCDSCount, filter.OpEqual, 0)))
	assert.Equal(t, []uint32{0, 3}, ids(s.Compare(ScopeCluster, MeasureCDSCount, filter.OpGreaterEqual, 2)))
	assert.True(t, s.Compare(ScopeCluster, Measure("gc"), filter.OpLess, 1).IsEmpty())
}

func TestModules(t *testing.T) {
	s := newFixtureStore(t)

	parse := func(q string) *module.Query {
		t.Helper()
		mq, err := module.Parse(q)
		require.NoError(t, err)
		return mq
	}

	tZero := s.Modules(ScopeCluster, parse("T=0"))
	tPCP := s.Modules(ScopeCluster, parse("T=PP-binding"))
	both := s.Modules(ScopeCluster, parse("T=0,PP-binding"))

	assert.Equal(t, []uint32{testutil.RegionPolyketide}, ids(tZero))
	assert.Equal(t, []uint32{testutil.RegionCoelichelin}, ids(tPCP))
	assert.Equal(t, tZero.Count()+tPCP.Count(), both.Count())

	assert.Equal(t, []uint32{2}, ids(s.Modules(ScopeGene, parse("S=Condensation|L=AMP-binding|T=?"))))
	assert.True(t, s.Modules(ScopeCluster, nil).IsEmpty())
}

func TestValues(t *testing.T) {
	s := newFixtureStore(t)
	assert.Equal(t, []string{"lanthipeptide", "NRPS", "T1PKS", "terpene"}, s.Values(FieldType, "", 0))
	assert.Equal(t, []string{"T1PKS", "terpene"}, s.Values(FieldType, "t", 0))
	assert.Equal(t, []string{"T1PKS"}, s.Values(FieldType, "T", 1))
	assert.Nil(t, s.Values(Field("bogus"), "", 0))
}

func TestRecord(t *testing.T) {
	s := newFixtureStore(t)

	rec, ok := s.Record(ScopeCluster, testutil.RegionNisin)
	require.True(t, ok)
	assert.Equal(t, "NZ_CP015975.1.1", rec.Region)
	assert.Equal(t, "Lactococcus lactis", rec.Species)

	rec, ok = s.Record(ScopeDomain, 7)
	require.True(t, ok)
	assert.Equal(t, "SGR_0002", rec.LocusTag)
	assert.Equal(t, "PKS_KS", rec.Domain)
	assert.Equal(t, "Modular-KS", rec.Subtype)

	_, ok = s.Record(ScopeGene, 99)
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	s := newFixtureStore(t)
	assert.Equal(t, 8, s.All(ScopeDomain).Count())

	empty, err := New(&dataset.Dataset{})
	require.NoError(t, err)
	assert.True(t, empty.All(ScopeCluster).IsEmpty())
}
