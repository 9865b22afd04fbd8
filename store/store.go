package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bgcdb/clusterq/dataset"
	"github.com/bgcdb/clusterq/module"
)

// span is a half-open id range [lo, hi).
type span struct {
	lo, hi uint32
}

type hitRef struct {
	id    uint32 // id at the field's level
	acc   string
	desc  string
	score float64
}

// posting holds the inverted index of one field.
// Structure: valueKey -> bitmap of ids at the field's level.
type posting struct {
	ids     map[string]*roaring.Bitmap
	display map[string]string
	counts  map[string]map[uint32]int
	hits    []hitRef
}

func newPosting() *posting {
	return &posting{
		ids:     make(map[string]*roaring.Bitmap),
		display: make(map[string]string),
	}
}

type geneRef struct {
	region  uint32
	gene    *dataset.Gene
	domains span
	modules []module.Architecture
}

type domainRef struct {
	region uint32
	gene   uint32
	domain *dataset.Domain
}

// Store is a read-only index over a dataset.
type Store struct {
	version       string
	regions       []*dataset.Region
	genes         []geneRef
	domains       []domainRef
	regionGenes   []span
	regionDomains []span
	index         map[Field]*posting
}

// key normalizes a value for case-insensitive matching.
func key(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// New indexes ds. Regions receive ids in dataset order; genes and domains
// are numbered in traversal order so each parent owns a contiguous id range.
func New(ds *dataset.Dataset) (*Store, error) {
	if ds == nil {
		return nil, fmt.Errorf("store: nil dataset")
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	s := &Store{
		version:       ds.Version,
		regions:       make([]*dataset.Region, len(ds.Regions)),
		regionGenes:   make([]span, len(ds.Regions)),
		regionDomains: make([]span, len(ds.Regions)),
		index:         make(map[Field]*posting, len(fields)),
	}
	for f := range fields {
		s.index[f] = newPosting()
	}

	for i := range ds.Regions {
		r := &ds.Regions[i]
		rid := uint32(i)
		s.regions[i] = r
		s.indexRegion(rid, r)

		s.regionGenes[i].lo = uint32(len(s.genes))
		s.regionDomains[i].lo = uint32(len(s.domains))
		for j := range r.Genes {
			if err := s.indexGene(rid, &r.Genes[j]); err != nil {
				return nil, fmt.Errorf("store: region %s: %w", r.Label(), err)
			}
		}
		s.regionGenes[i].hi = uint32(len(s.genes))
		s.regionDomains[i].hi = uint32(len(s.domains))
	}
	return s, nil
}

func (s *Store) add(f Field, id uint32, value string) {
	k := key(value)
	if k == "" {
		return
	}
	p := s.index[f]
	bm, ok := p.ids[k]
	if !ok {
		bm = roaring.New()
		p.ids[k] = bm
		p.display[k] = strings.TrimSpace(value)
	}
	bm.Add(id)

	if fields[f].counted {
		if p.counts == nil {
			p.counts = make(map[string]map[uint32]int)
		}
		c, ok := p.counts[k]
		if !ok {
			c = make(map[uint32]int)
			p.counts[k] = c
		}
		c[id]++
	}
}

func (s *Store) addHit(f Field, id uint32, h dataset.Hit) {
	acc, desc := key(h.Accession), key(h.Description)
	s.add(f, id, h.Accession)
	if desc != "" && desc != acc && !fields[f].substring {
		s.add(f, id, h.Description)
	}
	p := s.index[f]
	p.hits = append(p.hits, hitRef{id: id, acc: acc, desc: desc, score: h.Score})
}

func (s *Store) indexRegion(id uint32, r *dataset.Region) {
	for _, v := range r.Types {
		s.add(FieldType, id, v)
	}
	for _, v := range r.Categories {
		s.add(FieldTypeCategory, id, v)
	}
	for _, v := range r.CandidateKinds {
		s.add(FieldCandidateKind, id, v)
	}
	s.add(FieldAccession, id, r.Accession)
	s.add(FieldAssembly, id, r.Assembly)
	s.add(FieldContigEdge, id, strconv.FormatBool(r.ContigEdge))

	t := r.Taxonomy
	if t.TaxID != 0 {
		s.add(FieldTaxID, id, strconv.FormatInt(t.TaxID, 10))
	}
	s.add(FieldStrain, id, t.Strain)
	s.add(FieldSpecies, id, t.Species)
	s.add(FieldGenus, id, t.Genus)
	s.add(FieldFamily, id, t.Family)
	s.add(FieldOrder, id, t.Order)
	s.add(FieldClass, id, t.Class)
	s.add(FieldPhylum, id, t.Phylum)
	s.add(FieldSuperkingdom, id, t.Superkingdom)

	for _, c := range r.Compounds {
		s.add(FieldCompoundSeq, id, c.Sequence)
		s.add(FieldCompoundClass, id, c.Class)
	}
	for _, m := range r.Monomers {
		s.add(FieldMonomer, id, m)
	}
	for _, h := range r.KnownClusters {
		s.addHit(FieldKnownCluster, id, h)
	}
	for _, h := range r.ClusterBlast {
		s.addHit(FieldClusterBlast, id, h)
	}
}

func (s *Store) indexGene(region uint32, g *dataset.Gene) error {
	gid := uint32(len(s.genes))
	ref := geneRef{region: region, gene: g}

	s.add(FieldGene, gid, g.LocusTag)
	s.add(FieldGene, gid, g.Name)
	for _, h := range g.Pfam {
		s.addHit(FieldPfam, gid, h)
	}
	for _, h := range g.Tigrfam {
		s.addHit(FieldTigrfam, gid, h)
	}
	for _, h := range g.Resfam {
		s.addHit(FieldResfam, gid, h)
	}

	for _, m := range g.Modules {
		arch, err := architecture(m)
		if err != nil {
			return fmt.Errorf("gene %s: %w", g.LocusTag, err)
		}
		ref.modules = append(ref.modules, arch)
	}

	ref.domains.lo = uint32(len(s.domains))
	for i := range g.Domains {
		d := &g.Domains[i]
		did := uint32(len(s.domains))
		s.domains = append(s.domains, domainRef{region: region, gene: gid, domain: d})
		s.add(FieldDomain, did, d.Name)
		s.add(FieldDomainSubtype, did, d.Subtype)
	}
	ref.domains.hi = uint32(len(s.domains))

	s.genes = append(s.genes, ref)
	return nil
}

func architecture(m dataset.Module) (module.Architecture, error) {
	arch := make(module.Architecture, len(m.Sections))
	for label, domains := range m.Sections {
		sec, err := module.ParseSection(label)
		if err != nil {
			return nil, err
		}
		arch[sec] = domains
	}
	return arch, nil
}

// Version returns the dataset version.
func (s *Store) Version() string {
	return s.version
}

// Len returns the number of entities in scope.
func (s *Store) Len(scope Scope) int {
	switch scope {
	case ScopeCluster:
		return len(s.regions)
	case ScopeGene:
		return len(s.genes)
	case ScopeDomain:
		return len(s.domains)
	default:
		return 0
	}
}
