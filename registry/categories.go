package registry

import (
	"strconv"
	"strings"

	"github.com/bgcdb/clusterq/filter"
	"github.com/bgcdb/clusterq/module"
	"github.com/bgcdb/clusterq/predicate"
	"github.com/bgcdb/clusterq/store"
)

// Confidence levels of the knowncluster confidence filter.
var confidenceChoices = []filter.Choice{
	{Label: "low", Threshold: 15},
	{Label: "medium", Threshold: 50},
	{Label: "high", Threshold: 75},
}

// unknownFields are searched by unqualified terms.
var unknownFields = []store.Field{
	store.FieldType, store.FieldTypeCategory, store.FieldCandidateKind,
	store.FieldAccession, store.FieldAssembly,
	store.FieldTaxID, store.FieldStrain, store.FieldSpecies, store.FieldGenus, store.FieldFamily,
	store.FieldOrder, store.FieldClass, store.FieldPhylum, store.FieldSuperkingdom,
	store.FieldCompoundClass, store.FieldMonomer, store.FieldDomain,
}

// categories is the static category table of one search type.
func categories(st *store.Store, sc store.Scope) []*Category {
	lookup := func(f store.Field) Handler {
		return func(term string) predicate.Predicate { return st.Lookup(sc, f, term) }
	}
	count := func(f store.Field) CountHandler {
		return func(term string, n int) predicate.Predicate { return st.CountAtLeast(sc, f, term, n) }
	}
	hits := func(f store.Field) Handler {
		return func(term string) predicate.Predicate { return st.Hits(sc, f, term, nil) }
	}
	scored := func(name string, f store.Field) filter.Spec {
		return filter.Spec{
			Name:  name,
			Kind:  filter.Numeric,
			Value: filter.Number(0),
			Eval: func(term string, op filter.Operator, v filter.Value) predicate.Predicate {
				threshold, _ := v.Float()
				return st.Scored(sc, f, term, op, threshold)
			},
		}
	}
	simple := func(f store.Field, desc string) *Category {
		return &Category{Name: string(f), Description: desc, Handler: lookup(f), Field: f}
	}
	profile := func(f store.Field, desc string) *Category {
		return &Category{
			Name:        string(f),
			Description: desc,
			Handler:     lookup(f),
			Count:       count(f),
			Filters:     []filter.Spec{scored("bitscore", f)},
			Field:       f,
		}
	}

	cats := []*Category{
		simple(store.FieldType, "BGC type"),
		simple(store.FieldTypeCategory, "BGC type category"),
		simple(store.FieldCandidateKind, "Candidate cluster kind"),
		simple(store.FieldAccession, "NCBI contig accession"),
		simple(store.FieldAssembly, "NCBI assembly ID"),
		simple(store.FieldContigEdge, "Region on a contig edge (true/false)"),
		simple(store.FieldTaxID, "NCBI taxonomy ID"),
		simple(store.FieldStrain, "Strain"),
		simple(store.FieldSpecies, "Species"),
		simple(store.FieldGenus, "Genus"),
		simple(store.FieldFamily, "Family"),
		simple(store.FieldOrder, "Order"),
		simple(store.FieldClass, "Class"),
		simple(store.FieldPhylum, "Phylum"),
		simple(store.FieldSuperkingdom, "Superkingdom"),
		{
			Name:        string(store.FieldCompoundSeq),
			Description: "Part of a RiPP core peptide sequence",
			Handler: func(term string) predicate.Predicate {
				return st.Substring(sc, store.FieldCompoundSeq, term)
			},
		},
		simple(store.FieldCompoundClass, "RiPP compound class"),
		{
			Name:        string(store.FieldMonomer),
			Description: "Predicted NRPS/PKS monomer",
			Handler:     lookup(store.FieldMonomer),
			Count:       count(store.FieldMonomer),
			Field:       store.FieldMonomer,
		},
		{
			Name:        string(store.FieldKnownCluster),
			Description: "MIBiG hit accession or description",
			Handler:     hits(store.FieldKnownCluster),
			Filters: []filter.Spec{
				scored("similarity", store.FieldKnownCluster),
				{
					Name:    "confidence",
					Kind:    filter.Qualitative,
					Value:   filter.String("medium"),
					Choices: confidenceChoices,
					Eval: func(term string, op filter.Operator, v filter.Value) predicate.Predicate {
						threshold, _ := v.Float()
						return st.Scored(sc, store.FieldKnownCluster, term, op, threshold)
					},
				},
			},
			Field: store.FieldKnownCluster,
		},
		{
			Name:        string(store.FieldClusterBlast),
			Description: "ClusterBlast hit accession",
			Handler:     hits(store.FieldClusterBlast),
			Filters:     []filter.Spec{scored("similarity", store.FieldClusterBlast)},
			Field:       store.FieldClusterBlast,
		},
		profile(store.FieldPfam, "Pfam accession or name"),
		profile(store.FieldTigrfam, "TIGRFAM accession or name"),
		profile(store.FieldResfam, "Resfam accession or name"),
		{
			Name:        string(store.FieldDomain),
			Description: "antiSMASH domain",
			Handler:     lookup(store.FieldDomain),
			Count:       count(store.FieldDomain),
			Filters: []filter.Spec{{
				Name:  "subtype",
				Kind:  filter.Text,
				Value: filter.String(""),
				Eval: func(term string, _ filter.Operator, v filter.Value) predicate.Predicate {
					return st.DomainsWithSubtype(sc, term, v.Text())
				},
			}},
			Field: store.FieldDomain,
		},
		{
			Name:        string(store.FieldDomainSubtype),
			Description: "antiSMASH domain subtype",
			Handler:     lookup(store.FieldDomainSubtype),
			Count:       count(store.FieldDomainSubtype),
			Field:       store.FieldDomainSubtype,
		},
		simple(store.FieldGene, "Locus tag or gene name"),
		{
			Name:        "modulequery",
			Description: "NRPS/PKS module architecture, e.g. L=AMP-binding|T=PP-binding",
			Handler: func(term string) predicate.Predicate {
				q, err := module.Parse(term)
				if err != nil {
					return predicate.Empty
				}
				return st.Modules(sc, q)
			},
		},
		{
			Name:        Unknown,
			Description: "Any of type, taxonomy, accession, compound, monomer, known cluster or domain",
			Handler: func(term string) predicate.Predicate {
				p := st.Hits(sc, store.FieldKnownCluster, term, nil)
				for _, f := range unknownFields {
					p = p.Union(st.Lookup(sc, f, term))
				}
				return p
			},
		},
	}

	if sc == store.ScopeCluster {
		cats = append(cats,
			measure("length", "Region length in nucleotides", st, sc, store.MeasureLength),
			measure("cdscount", "Number of genes in the region", st, sc, store.MeasureCDSCount),
		)
	}
	return cats
}

// measure builds a numeric category. Without a comparison the term must match exactly.
func measure(name, desc string, st *store.Store, sc store.Scope, m store.Measure) *Category {
	compare := func(term string, op filter.Operator) predicate.Predicate {
		v, err := strconv.ParseFloat(strings.TrimSpace(term), 64)
		if err != nil {
			return predicate.Empty
		}
		return st.Compare(sc, m, op, v)
	}
	return &Category{
		Name:        name,
		Description: desc,
		Handler: func(term string) predicate.Predicate {
			return compare(term, filter.OpEqual)
		},
		Compare: compare,
	}
}
