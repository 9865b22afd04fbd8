// Package registry holds the static category and filter tables the query
// compiler resolves expressions against.
//
// One Table exists per search type (cluster, gene, domain). Tables are built
// once from a store and never mutated, so a Registry is safe for concurrent
// use. Category names are matched case-insensitively.
//
//	reg := registry.New(st)
//	cat, ok := reg.Table(store.ScopeCluster).Lookup("genus")
//	p := cat.Handler("Streptomyces")
package registry
