package store

// Record is the summary of one search hit.
type Record struct {
	ID        uint32   `json:"id"`
	Region    string   `json:"region"`
	Accession string   `json:"accession"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Types     []string `json:"types,omitempty"`
	Species   string   `json:"species,omitempty"`
	LocusTag  string   `json:"locus_tag,omitempty"`
	Domain    string   `json:"domain,omitempty"`
	Subtype   string   `json:"subtype,omitempty"`
}

// Record describes entity id in scope. ok is false for unknown ids.
func (s *Store) Record(scope Scope, id uint32) (Record, bool) {
	if int(id) >= s.Len(scope) {
		return Record{}, false
	}
	region := id
	switch scope {
	case ScopeGene:
		region = s.genes[id].region
	case ScopeDomain:
		region = s.domains[id].region
	}
	r := s.regions[region]
	rec := Record{
		ID:        id,
		Region:    r.Label(),
		Accession: r.Accession,
		Start:     r.Start,
		End:       r.End,
		Types:     r.Types,
		Species:   r.Taxonomy.Species,
	}
	switch scope {
	case ScopeGene:
		rec.LocusTag = s.genes[id].gene.LocusTag
	case ScopeDomain:
		d := s.domains[id]
		rec.LocusTag = s.genes[d.gene].gene.LocusTag
		rec.Domain = d.domain.Name
		rec.Subtype = d.domain.Subtype
	}
	return rec, true
}
