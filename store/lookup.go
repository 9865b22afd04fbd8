package store

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/module"
	"github.com/bgcdb/clusterq/predicate"
)

// Measure is a numeric region attribute.
type Measure string

const (
	// MeasureLength is the region length in nucleotides.
	MeasureLength Measure = "length"
	// MeasureCDSCount is the number of genes in the region.
	MeasureCDSCount Measure = "cdscount"
)

func (s *Store) bound(rb *roaring.Bitmap) predicate.Predicate {
	if rb == nil || rb.IsEmpty() {
		return predicate.Empty
	}
	return predicate.Bound(predicate.FromRoaring(rb))
}

// result projects ids at level from onto scope.
func (s *Store) result(rb *roaring.Bitmap, from, scope Scope) predicate.Predicate {
	if rb == nil || rb.IsEmpty() || !scope.Valid() {
		return predicate.Empty
	}
	return s.bound(s.project(rb, from, scope))
}

// project maps ids between levels. The input is never modified.
func (s *Store) project(rb *roaring.Bitmap, from, to Scope) *roaring.Bitmap {
	if from == to {
		return rb.Clone()
	}
	out := roaring.New()
	it := rb.Iterator()
	for it.HasNext() {
		id := it.Next()
		if from < to {
			sp := s.children(from, to, id)
			out.AddRange(uint64(sp.lo), uint64(sp.hi))
		} else {
			out.Add(s.ancestor(from, to, id))
		}
	}
	return out
}

func (s *Store) children(from, to Scope, id uint32) span {
	switch {
	case from == ScopeCluster && to == ScopeGene:
		return s.regionGenes[id]
	case from == ScopeCluster && to == ScopeDomain:
		return s.regionDomains[id]
	case from == ScopeGene && to == ScopeDomain:
		return s.genes[id].domains
	default:
		return span{}
	}
}

// ancestor maps id at level from to its owner at the coarser level to.
func (s *Store) ancestor(from, to Scope, id uint32) uint32 {
	switch {
	case from == to:
		return id
	case from == ScopeGene:
		return s.genes[id].region
	case from == ScopeDomain && to == ScopeCluster:
		return s.domains[id].region
	default:
		return s.domains[id].gene
	}
}

// All returns every entity in scope.
func (s *Store) All(scope Scope) predicate.Predicate {
	n := s.Len(scope)
	if n == 0 {
		return predicate.Empty
	}
	rb := roaring.New()
	rb.AddRange(0, uint64(n))
	return s.bound(rb)
}

// Lookup returns the entities where field equals value, case-insensitively.
func (s *Store) Lookup(scope Scope, f Field, value string) predicate.Predicate {
	p, ok := s.index[f]
	if !ok {
		return predicate.Empty
	}
	return s.result(p.ids[key(value)], f.Level(), scope)
}

// Substring returns the entities where some value of field contains term.
func (s *Store) Substring(scope Scope, f Field, term string) predicate.Predicate {
	p, ok := s.index[f]
	k := key(term)
	if !ok || k == "" {
		return predicate.Empty
	}
	rb := roaring.New()
	for v, ids := range p.ids {
		if strings.Contains(v, k) {
			rb.Or(ids)
		}
	}
	return s.result(rb, f.Level(), scope)
}

// CountAtLeast returns the entities in which value occurs at least n times
// for a counted field. Occurrences at finer levels are summed per entity;
// entities below a coarser level inherit its tally.
func (s *Store) CountAtLeast(scope Scope, f Field, value string, n int) predicate.Predicate {
	info, ok := fields[f]
	if !ok || !info.counted || !scope.Valid() {
		return predicate.Empty
	}
	occ := s.index[f].counts[key(value)]
	if len(occ) == 0 {
		return predicate.Empty
	}

	if info.level < scope {
		rb := roaring.New()
		for id, c := range occ {
			if c >= n {
				rb.Add(id)
			}
		}
		return s.result(rb, info.level, scope)
	}

	tally := make(map[uint32]int, len(occ))
	for id, c := range occ {
		tally[s.ancestor(info.level, scope, id)] += c
	}
	rb := roaring.New()
	for id, c := range tally {
		if c >= n {
			rb.Add(id)
		}
	}
	return s.bound(rb)
}

// Hits returns the entities with a hit matching term whose score satisfies
// keep; a nil keep accepts any score. Terms match the hit accession or
// description exactly, or a description substring for fields that allow it.
func (s *Store) Hits(scope Scope, f Field, term string, keep func(score float64) bool) predicate.Predicate {
	info, ok := fields[f]
	k := key(term)
	if !ok || !info.scored || k == "" {
		return predicate.Empty
	}
	rb := roaring.New()
	for _, h := range s.index[f].hits {
		match := h.acc == k || h.desc == k || (info.substring && strings.Contains(h.desc, k))
		if !match {
			continue
		}
		if keep == nil || keep(h.score) {
			rb.Add(h.id)
		}
	}
	return s.result(rb, info.level, scope)
}

// Scored is Hits restricted to scores satisfying "score op threshold".
func (s *Store) Scored(scope Scope, f Field, term string, op filter.Operator, threshold float64) predicate.Predicate {
	if !op.Valid() {
		return predicate.Empty
	}
	return s.Hits(scope, f, term, func(score float64) bool {
		return op.Compare(score, threshold)
	})
}

// DomainsWithSubtype returns the entities owning a domain named name with the given subtype.
func (s *Store) DomainsWithSubtype(scope Scope, name, subtype string) predicate.Predicate {
	names := s.index[FieldDomain].ids[key(name)]
	subtypes := s.index[FieldDomainSubtype].ids[key(subtype)]
	if names == nil || subtypes == nil {
		return predicate.Empty
	}
	return s.result(roaring.And(names, subtypes), ScopeDomain, scope)
}

// Compare returns the regions, projected onto scope, whose measure satisfies "measure op value".
func (s *Store) Compare(scope Scope, m Measure, op filter.Operator, value float64) predicate.Predicate {
	if !op.Valid() {
		return predicate.Empty
	}
	rb := roaring.New()
	for i, r := range s.regions {
		var v float64
		switch m {
		case MeasureLength:
			v = float64(r.Length())
		case MeasureCDSCount:
			v = float64(len(r.Genes))
		default:
			return predicate.Empty
		}
		if op.Compare(v, value) {
			rb.Add(uint32(i))
		}
	}
	return s.result(rb, ScopeCluster, scope)
}

// Modules returns the entities owning a gene with a module matching q.
func (s *Store) Modules(scope Scope, q *module.Query) predicate.Predicate {
	if q == nil {
		return predicate.Empty
	}
	rb := roaring.New()
	for i := range s.genes {
		for _, arch := range s.genes[i].modules {
			if q.Matches(arch) {
				rb.Add(uint32(i))
				break
			}
		}
	}
	return s.result(rb, ScopeGene, scope)
}

// Values returns up to limit indexed values of field starting with prefix,
// case-insensitively, in sorted order. limit <= 0 means no limit.
func (s *Store) Values(f Field, prefix string, limit int) []string {
	p, ok := s.index[f]
	if !ok {
		return nil
	}
	k := key(prefix)
	keys := make([]string, 0, len(p.display))
	for v := range p.display {
		if strings.HasPrefix(v, k) {
			keys = append(keys, v)
		}
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]string, len(keys))
	for i, v := range keys {
		out[i] = p.display[v]
	}
	return out
}
