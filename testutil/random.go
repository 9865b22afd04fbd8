package testutil

import (
	"fmt"
	"strconv"

	"github.com/bgcdb/clusterq/dataset"
)

// Vocabulary the random generator draws from.
var (
	Types      = []string{"NRPS", "T1PKS", "lanthipeptide", "terpene", "siderophore", "lassopeptide"}
	Categories = []string{"NRPS", "PKS", "RiPP", "Terpene", "Other"}
	Genera     = []string{"Streptomyces", "Lactococcus", "Bacillus", "Pseudomonas", "Amycolatopsis"}
	Monomers   = []string{"ala", "gly", "ser", "mal", "mmal", "cys"}
	Domains    = []string{"AMP-binding", "PP-binding", "Condensation", "PKS_KS", "PKS_AT", "PKS_KR", "Thioesterase"}
	Profiles   = []string{"PF00109", "PF02801", "PF00501", "PF00550", "PF00668"}
	Clusters   = []string{"BGC0000001", "BGC0000315", "BGC0000535", "BGC0001000"}
)

// Dataset generates n random regions.
func (r *RNG) Dataset(n int) *dataset.Dataset {
	ds := &dataset.Dataset{Version: "random-" + strconv.FormatInt(r.seed, 10)}
	ds.Regions = make([]dataset.Region, n)
	for i := range ds.Regions {
		ds.Regions[i] = r.region(i)
	}
	return ds
}

func (r *RNG) region(i int) dataset.Region {
	start := r.Intn(1_000_000)
	reg := dataset.Region{
		Accession:  fmt.Sprintf("RND_%06d.1", i/3),
		Number:     i%3 + 1,
		Start:      start,
		End:        start + 5000 + r.Intn(80_000),
		ContigEdge: r.Intn(5) == 0,
		Types:      []string{Types[r.Zipf(len(Types), 1.2)]},
		Categories: Sample(r, Categories, 1+r.Intn(2)),
		Taxonomy: dataset.Taxonomy{
			Superkingdom: "Bacteria",
			Genus:        Pick(r, Genera),
		},
		Monomers: Sample(r, Monomers, r.Intn(5)),
	}
	for range r.Intn(3) {
		reg.KnownClusters = append(reg.KnownClusters, dataset.Hit{
			Accession: Pick(r, Clusters),
			Score:     float64(r.Intn(101)),
		})
	}
	genes := r.Intn(6)
	for g := range genes {
		reg.Genes = append(reg.Genes, r.gene(fmt.Sprintf("RND_%04d_%02d", i, g)))
	}
	return reg
}

func (r *RNG) gene(tag string) dataset.Gene {
	g := dataset.Gene{LocusTag: tag}
	for range r.Intn(3) {
		g.Pfam = append(g.Pfam, dataset.Hit{Accession: Pick(r, Profiles), Score: 20 + r.Float64()*300})
	}
	for _, name := range Sample(r, Domains, r.Intn(4)) {
		g.Domains = append(g.Domains, dataset.Domain{Name: name})
	}
	if len(g.Domains) > 0 && r.Intn(2) == 0 {
		m := dataset.Module{Sections: map[string][]string{}}
		for _, d := range g.Domains {
			sec := "O"
			switch d.Name {
			case "AMP-binding", "PKS_AT":
				sec = "L"
			case "PP-binding":
				sec = "T"
			case "Condensation", "PKS_KS":
				sec = "S"
			case "PKS_KR":
				sec = "M"
			case "Thioesterase":
				sec = "F"
			}
			m.Sections[sec] = append(m.Sections[sec], d.Name)
		}
		g.Modules = append(g.Modules, m)
	}
	return g
}
