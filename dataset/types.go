package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a record fails validation.
var ErrInvalidRecord = errors.New("invalid record")

// Dataset is a snapshot of annotated regions.
type Dataset struct {
	Version string   `json:"version,omitempty"`
	Regions []Region `json:"regions"`
}

// Region is a biosynthetic gene cluster region on a contig.
type Region struct {
	Accession      string     `json:"accession"`
	Assembly       string     `json:"assembly,omitempty"`
	Number         int        `json:"region_number"`
	Start          int        `json:"start"`
	End            int        `json:"end"`
	ContigEdge     bool       `json:"contig_edge,omitempty"`
	Types          []string   `json:"types,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	CandidateKinds []string   `json:"candidate_kinds,omitempty"`
	Taxonomy       Taxonomy   `json:"taxonomy"`
	Compounds      []Compound `json:"compounds,omitempty"`
	Monomers       []string   `json:"monomers,omitempty"`
	KnownClusters  []Hit      `json:"known_clusters,omitempty"`
	ClusterBlast   []Hit      `json:"clusterblast,omitempty"`
	Genes          []Gene     `json:"genes,omitempty"`
}

// Label returns the display identifier, e.g. "NC_003888.3.1".
func (r *Region) Label() string {
	return fmt.Sprintf("%s.%d", r.Accession, r.Number)
}

// Length returns the region length in nucleotides.
func (r *Region) Length() int {
	return r.End - r.Start
}

// Validate checks the structural invariants of a region.
func (r *Region) Validate() error {
	if r.Accession == "" {
		return fmt.Errorf("%w: region without accession", ErrInvalidRecord)
	}
	if r.End < r.Start {
		return fmt.Errorf("%w: region %s ends before it starts", ErrInvalidRecord, r.Label())
	}
	for i := range r.Genes {
		if r.Genes[i].LocusTag == "" {
			return fmt.Errorf("%w: region %s: gene %d without locus tag", ErrInvalidRecord, r.Label(), i)
		}
	}
	return nil
}

// Taxonomy is the lineage of the source organism.
type Taxonomy struct {
	TaxID        int64  `json:"taxid,omitempty"`
	Strain       string `json:"strain,omitempty"`
	Species      string `json:"species,omitempty"`
	Genus        string `json:"genus,omitempty"`
	Family       string `json:"family,omitempty"`
	Order        string `json:"order,omitempty"`
	Class        string `json:"class,omitempty"`
	Phylum       string `json:"phylum,omitempty"`
	Superkingdom string `json:"superkingdom,omitempty"`
}

// Compound is a predicted RiPP product.
type Compound struct {
	Sequence string `json:"sequence,omitempty"`
	Class    string `json:"class,omitempty"`
}

// Hit is a scored match against a reference database. Score is a similarity
// percentage for cluster comparisons and a bitscore for profile hits.
type Hit struct {
	Accession   string  `json:"accession"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score"`
}

// Gene is a coding sequence inside a region.
type Gene struct {
	LocusTag string   `json:"locus_tag"`
	Name     string   `json:"name,omitempty"`
	Pfam     []Hit    `json:"pfam,omitempty"`
	Tigrfam  []Hit    `json:"tigrfam,omitempty"`
	Resfam   []Hit    `json:"resfam,omitempty"`
	Domains  []Domain `json:"domains,omitempty"`
	Modules  []Module `json:"modules,omitempty"`
}

// Domain is an antiSMASH domain call on a gene.
type Domain struct {
	Name    string `json:"name"`
	Subtype string `json:"subtype,omitempty"`
	Start   int    `json:"start,omitempty"`
	End     int    `json:"end,omitempty"`
}

// Module is a NRPS/PKS module. Sections maps a section code (S, L, M, T, F, O)
// to its domain labels in gene order.
type Module struct {
	Complete  bool                `json:"complete,omitempty"`
	Iterative bool                `json:"iterative,omitempty"`
	Sections  map[string][]string `json:"sections"`
}

// Validate checks every region.
func (d *Dataset) Validate() error {
	for i := range d.Regions {
		if err := d.Regions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Merge concatenates shards in the given order. All non-empty versions must agree.
func Merge(shards ...*Dataset) (*Dataset, error) {
	out := &Dataset{}
	n := 0
	for _, s := range shards {
		if s != nil {
			n += len(s.Regions)
		}
	}
	out.Regions = make([]Region, 0, n)

	for _, s := range shards {
		if s == nil {
			continue
		}
		if s.Version != "" {
			if out.Version != "" && out.Version != s.Version {
				return nil, fmt.Errorf("%w: %q != %q", ErrVersionMismatch, s.Version, out.Version)
			}
			out.Version = s.Version
		}
		out.Regions = append(out.Regions, s.Regions...)
	}
	return out, nil
}
