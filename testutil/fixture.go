package testutil

import "github.com/bgcdb/clusterq/dataset"

// Fixture region ids in store order.
const (
	RegionCinnamycin  = iota // lanthipeptide, Streptomyces coelicolor
	RegionCoelichelin        // NRPS, Streptomyces coelicolor, T=PP-binding module
	RegionNisin              // lanthipeptide, Lactococcus lactis
	RegionPolyketide         // T1PKS, Streptomyces griseus, module without T section
	RegionTerpene            // terpene on a contig edge, no genes
)

// Fixture returns a small dataset with known query answers.
//
// The regions matching the module query T=0 and those matching
// T=PP-binding are disjoint at every scope.
func Fixture() *dataset.Dataset {
	actino := dataset.Taxonomy{
		Superkingdom: "Bacteria",
		Phylum:       "Actinomycetota",
		Class:        "Actinomycetes",
		Order:        "Kitasatosporales",
		Family:       "Streptomycetaceae",
		Genus:        "Streptomyces",
	}
	coelicolor := actino
	coelicolor.TaxID = 100226
	coelicolor.Species = "Streptomyces coelicolor"
	coelicolor.Strain = "A3(2)"

	griseus := actino
	griseus.TaxID = 455632
	griseus.Species = "Streptomyces griseus"
	griseus.Strain = "NBRC 13350"

	return &dataset.Dataset{
		Version: "4.0",
		Regions: []dataset.Region{
			{
				Accession:      "NC_003888.3",
				Assembly:       "GCF_000203835.1",
				Number:         1,
				Start:          1000,
				End:            21000,
				Types:          []string{"lanthipeptide"},
				Categories:     []string{"RiPP"},
				CandidateKinds: []string{"single"},
				Taxonomy:       coelicolor,
				Compounds:      []dataset.Compound{{Sequence: "CRQSCSFGPFTFVCDGNTK", Class: "Class II"}},
				KnownClusters:  []dataset.Hit{{Accession: "BGC0000520", Description: "cinnamycin", Score: 60}},
				Genes: []dataset.Gene{
					{
						LocusTag: "SCO0001",
						Name:     "cinA",
						Pfam:     []dataset.Hit{{Accession: "PF04604", Description: "L_biotic_typeA", Score: 80.5}},
					},
					{
						LocusTag: "SCO0002",
						Name:     "cinM",
						Pfam:     []dataset.Hit{{Accession: "PF05147", Description: "LANC_like", Score: 210}},
						Domains:  []dataset.Domain{{Name: "LANC_like", Start: 10, End: 400}},
					},
				},
			},
			{
				Accession:      "NC_003888.3",
				Assembly:       "GCF_000203835.1",
				Number:         2,
				Start:          50000,
				End:            90000,
				Types:          []string{"NRPS"},
				Categories:     []string{"NRPS"},
				CandidateKinds: []string{"single"},
				Taxonomy:       coelicolor,
				Monomers:       []string{"ala", "gly", "ala"},
				KnownClusters: []dataset.Hit{
					{Accession: "BGC0000315", Description: "coelichelin", Score: 40},
					{Accession: "BGC0000535", Description: "nisin A", Score: 12},
				},
				ClusterBlast: []dataset.Hit{{Accession: "NZ_CP042324.1_c5", Description: "Streptomyces sp. region", Score: 70}},
				Genes: []dataset.Gene{
					{
						LocusTag: "SCO0489",
						Name:     "cchH",
						Tigrfam:  []dataset.Hit{{Accession: "TIGR01720", Description: "NRPS-para261", Score: 95}},
						Domains: []dataset.Domain{
							{Name: "Condensation", Subtype: "LCL"},
							{Name: "AMP-binding"},
							{Name: "PP-binding"},
						},
						Modules: []dataset.Module{{
							Complete: true,
							Sections: map[string][]string{
								"S": {"Condensation"},
								"L": {"AMP-binding"},
								"T": {"PP-binding"},
							},
						}},
					},
				},
			},
			{
				Accession:      "NZ_CP015975.1",
				Assembly:       "GCF_001675095.1",
				Number:         1,
				Start:          0,
				End:            12000,
				Types:          []string{"lanthipeptide"},
				Categories:     []string{"RiPP"},
				CandidateKinds: []string{"single"},
				Taxonomy: dataset.Taxonomy{
					TaxID:        1358,
					Superkingdom: "Bacteria",
					Phylum:       "Bacillota",
					Class:        "Bacilli",
					Order:        "Lactobacillales",
					Family:       "Streptococcaceae",
					Genus:        "Lactococcus",
					Species:      "Lactococcus lactis",
				},
				Compounds:     []dataset.Compound{{Sequence: "ITSISLCTPGCKTGALMGCNMKTATCHCSIHVSK", Class: "Class I"}},
				KnownClusters: []dataset.Hit{{Accession: "BGC0000535", Description: "nisin A", Score: 90}},
				Genes: []dataset.Gene{
					{
						LocusTag: "LL_0001",
						Name:     "nisA",
						Resfam:   []dataset.Hit{{Accession: "RF0104", Description: "Lanti_immunity", Score: 33}},
					},
				},
			},
			{
				Accession:      "NC_010572.1",
				Assembly:       "GCF_000010605.1",
				Number:         1,
				Start:          100000,
				End:            160000,
				Types:          []string{"T1PKS"},
				Categories:     []string{"PKS"},
				CandidateKinds: []string{"neighbouring"},
				Taxonomy:       griseus,
				Monomers:       []string{"mal", "mmal", "mal"},
				Genes: []dataset.Gene{
					{
						LocusTag: "SGR_0001",
						Pfam: []dataset.Hit{
							{Accession: "PF00109", Description: "ketoacyl-synt", Score: 300},
							{Accession: "PF02801", Description: "Ketoacyl-synt_C", Score: 150},
						},
						Domains: []dataset.Domain{
							{Name: "PKS_KS", Subtype: "Trans-AT-KS"},
							{Name: "PKS_AT"},
							{Name: "PKS_KR"},
						},
						Modules: []dataset.Module{{
							Sections: map[string][]string{
								"L": {"PKS_AT"},
								"M": {"PKS_KR"},
							},
						}},
					},
					{
						LocusTag: "SGR_0002",
						Pfam:     []dataset.Hit{{Accession: "PF00109", Description: "ketoacyl-synt", Score: 120}},
						Domains:  []dataset.Domain{{Name: "PKS_KS", Subtype: "Modular-KS"}},
					},
				},
			},
			{
				Accession:      "NC_008268.1",
				Assembly:       "GCF_000014565.1",
				Number:         3,
				Start:          200000,
				End:            205000,
				ContigEdge:     true,
				Types:          []string{"terpene"},
				Categories:     []string{"Terpene"},
				CandidateKinds: []string{"single"},
				Taxonomy: dataset.Taxonomy{
					TaxID:        1833,
					Superkingdom: "Bacteria",
					Phylum:       "Actinomycetota",
					Genus:        "Rhodococcus",
					Species:      "Rhodococcus jostii",
				},
			},
		},
	}
}
