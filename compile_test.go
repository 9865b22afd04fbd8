package clusterq

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/predicate"
	"github.com/bgcdb/clusterq/query"
	"github.com/bgcdb/clusterq/registry"
	"github.com/bgcdb/clusterq/store"
	"github.com/bgcdb/clusterq/testutil"
)

func fixtureRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	st, err := store.New(testutil.Fixture())
	require.NoError(t, err)
	return registry.New(st)
}

func mustParse(t testing.TB, r *registry.Registry, input string) query.Term {
	t.Helper()
	term, err := query.Parse(input, query.WithFilters(r))
	require.NoError(t, err, input)
	return term
}

func compileText(t testing.TB, r *registry.Registry, scope store.Scope, input string) predicate.Predicate {
	t.Helper()
	return Compile(r.Table(scope), mustParse(t, r, input))
}

func TestCompile(t *testing.T) {
	r := fixtureRegistry(t)

	tests := []struct {
		name  string
		scope store.Scope
		input string
		want  []uint32
	}{
		{"juxtaposition", store.ScopeCluster, "[type]lanthipeptide [genus]Streptomyces", []uint32{testutil.RegionCinnamycin}},
		{"grouped or", store.ScopeCluster, "ripp AND ( streptomyces OR lactococcus )", []uint32{testutil.RegionCinnamycin, testutil.RegionNisin}},
		{"except", store.ScopeCluster, "[type]lanthipeptide EXCEPT [genus]streptomyces", []uint32{testutil.RegionNisin}},
		{"except reversed", store.ScopeCluster, "[genus]streptomyces EXCEPT [type]lanthipeptide", []uint32{testutil.RegionCoelichelin, testutil.RegionPolyketide}},
		{"unknown category", store.ScopeCluster, "[nonexistent]foo", nil},
		{"unknown category in or", store.ScopeCluster, "[nonexistent]foo OR [type]terpene", []uint32{testutil.RegionTerpene}},
		{"unknown category in and", store.ScopeCluster, "[nonexistent]foo AND [type]terpene", nil},
		{"known cluster with similarity", store.ScopeCluster, "[knowncluster]BGC0000535 WITH [similarity](> 50)", []uint32{testutil.RegionNisin}},
		{"known cluster without filter", store.ScopeCluster, "[knowncluster]BGC0000535", []uint32{testutil.RegionCoelichelin, testutil.RegionNisin}},
		{"count at cluster", store.ScopeCluster, "2 * [pfam]PF00109", []uint32{testutil.RegionPolyketide}},
		{"count at gene", store.ScopeGene, "2 * [pfam]PF00109", nil},
		{"count on uncountable", store.ScopeCluster, "2 * [genus]streptomyces", nil},
		{"comparison", store.ScopeCluster, "[length:>=]20000", []uint32{testutil.RegionCinnamycin, testutil.RegionCoelichelin, testutil.RegionPolyketide}},
		{"comparison unsupported", store.ScopeCluster, "[genus:>]1", nil},
		{"module", store.ScopeCluster, "[modulequery]T=0,PP-binding", []uint32{testutil.RegionCoelichelin, testutil.RegionPolyketide}},
		{"gene scope from cluster fact", store.ScopeGene, "[genus]lactococcus", []uint32{3}},
		{"domain subtype filter", store.ScopeDomain, "[asdomain]PKS_KS WITH [subtype](Trans-AT-KS)", []uint32{4}},
		{"contig edge", store.ScopeCluster, "[contigedge]true", []uint32{testutil.RegionTerpene}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compileText(t, r, tt.scope, tt.input)
			assert.ElementsMatch(t, tt.want, p.All())
			assert.Equal(t, len(tt.want), p.Count())
		})
	}
}

func TestCompile_NilTable(t *testing.T) {
	r := fixtureRegistry(t)
	p := Compile(nil, mustParse(t, r, "[type]NRPS"))
	assert.True(t, p.IsEmpty())
}

func TestCompile_UnresolvedFilter(t *testing.T) {
	r := fixtureRegistry(t)
	term := &query.Expression{
		Category: "genus",
		Term:     "streptomyces",
		Filters:  []filter.Instance{{Name: "similarity", Operator: filter.OpGreater, Value: filter.Number(1)}},
	}
	assert.True(t, Compile(r.Table(store.ScopeCluster), term).IsEmpty())
}

func TestCompile_ModuleAdditivity(t *testing.T) {
	r := fixtureRegistry(t)
	for _, scope := range store.Scopes() {
		t.Run(scope.String(), func(t *testing.T) {
			none := compileText(t, r, scope, "[modulequery]T=0")
			pp := compileText(t, r, scope, "[modulequery]T=PP-binding")
			both := compileText(t, r, scope, "[modulequery]T=0,PP-binding")
			assert.Equal(t, none.Count()+pp.Count(), both.Count())
			assert.Equal(t, 0, none.Intersect(pp).Count())
		})
	}
}

func TestCompile_Commutativity(t *testing.T) {
	r := fixtureRegistry(t)
	pairs := [][2]string{
		{"[type]lanthipeptide", "[genus]streptomyces"},
		{"ripp", "[knowncluster]nisin"},
		{"[asdomain]PKS_KS", "[monomer]mal"},
	}
	for _, scope := range store.Scopes() {
		for _, pair := range pairs {
			a, b := pair[0], pair[1]
			t.Run(fmt.Sprintf("%s/%s/%s", scope, a, b), func(t *testing.T) {
				for _, op := range []string{"AND", "OR"} {
					ab := compileText(t, r, scope, a+" "+op+" "+b)
					ba := compileText(t, r, scope, b+" "+op+" "+a)
					assert.ElementsMatch(t, ab.All(), ba.All(), op)
				}
			})
		}
	}
}

func TestCompile_RandomProperties(t *testing.T) {
	rng := testutil.NewRNG(4711)
	st, err := store.New(rng.Dataset(300))
	require.NoError(t, err)
	r := registry.New(st)

	atoms := func() string {
		switch rng.Intn(5) {
		case 0:
			return "[type]" + testutil.Pick(rng, testutil.Types)
		case 1:
			return "[genus]" + testutil.Pick(rng, testutil.Genera)
		case 2:
			return "[monomer]" + testutil.Pick(rng, testutil.Monomers)
		case 3:
			return "[asdomain]" + testutil.Pick(rng, testutil.Domains)
		default:
			return "[pfam]" + testutil.Pick(rng, testutil.Profiles)
		}
	}

	for i := range 50 {
		scope := testutil.Pick(rng, store.Scopes())
		a, b, c, d := atoms(), atoms(), atoms(), atoms()

		pa := compileText(t, r, scope, a)
		pb := compileText(t, r, scope, b)
		and := compileText(t, r, scope, a+" AND "+b)
		or := compileText(t, r, scope, a+" OR "+b)
		except := compileText(t, r, scope, a+" EXCEPT "+b)

		require.Equal(t, pa.Count()+pb.Count(), or.Count()+and.Count(), "inclusion-exclusion %d: %s / %s", i, a, b)
		require.Equal(t, pa.Count(), except.Count()+and.Count(), "partition %d: %s / %s", i, a, b)
		require.Equal(t, 0, except.Intersect(pb).Count())
		require.Equal(t, and.All(), compileText(t, r, scope, a+" "+b).All(), "juxtaposition %d", i)

		sum := compileText(t, r, scope, "("+a+" AND "+b+") OR ("+c+" AND "+d+")")
		require.Equal(t, and.Count(), and.Intersect(sum).Count(), "or-of-ands superset %d", i)
		cd := compileText(t, r, scope, c+" AND "+d)
		require.Equal(t, cd.Count(), cd.Intersect(sum).Count(), "or-of-ands superset %d", i)
	}
}
