package store

// Field is an indexed attribute.
type Field string

const (
	FieldType          Field = "type"
	FieldTypeCategory  Field = "typecategory"
	FieldCandidateKind Field = "candidatekind"
	FieldAccession     Field = "acc"
	FieldAssembly      Field = "assembly"
	FieldContigEdge    Field = "contigedge"
	FieldTaxID         Field = "taxid"
	FieldStrain        Field = "strain"
	FieldSpecies       Field = "species"
	FieldGenus         Field = "genus"
	FieldFamily        Field = "family"
	FieldOrder         Field = "order"
	FieldClass         Field = "class"
	FieldPhylum        Field = "phylum"
	FieldSuperkingdom  Field = "superkingdom"
	FieldCompoundSeq   Field = "compoundseq"
	FieldCompoundClass Field = "compoundclass"
	FieldMonomer       Field = "monomer"
	FieldKnownCluster  Field = "knowncluster"
	FieldClusterBlast  Field = "clusterblast"
	FieldPfam          Field = "pfam"
	FieldTigrfam       Field = "tigrfam"
	FieldResfam        Field = "resfam"
	FieldGene          Field = "gene"
	FieldDomain        Field = "asdomain"
	FieldDomainSubtype Field = "asdomainsubtype"
)

// TaxonomyFields lists the lineage fields, most specific first.
var TaxonomyFields = []Field{
	FieldTaxID, FieldStrain, FieldSpecies, FieldGenus, FieldFamily,
	FieldOrder, FieldClass, FieldPhylum, FieldSuperkingdom,
}

type fieldInfo struct {
	level   Scope
	counted bool // occurrences are tallied for CountAtLeast
	scored  bool // values carry hit scores
	// substring lets hit descriptions match on a substring of the term
	substring bool
}

var fields = map[Field]fieldInfo{
	FieldType:          {level: ScopeCluster},
	FieldTypeCategory:  {level: ScopeCluster},
	FieldCandidateKind: {level: ScopeCluster},
	FieldAccession:     {level: ScopeCluster},
	FieldAssembly:      {level: ScopeCluster},
	FieldContigEdge:    {level: ScopeCluster},
	FieldTaxID:         {level: ScopeCluster},
	FieldStrain:        {level: ScopeCluster},
	FieldSpecies:       {level: ScopeCluster},
	FieldGenus:         {level: ScopeCluster},
	FieldFamily:        {level: ScopeCluster},
	FieldOrder:         {level: ScopeCluster},
	FieldClass:         {level: ScopeCluster},
	FieldPhylum:        {level: ScopeCluster},
	FieldSuperkingdom:  {level: ScopeCluster},
	FieldCompoundSeq:   {level: ScopeCluster},
	FieldCompoundClass: {level: ScopeCluster},
	FieldMonomer:       {level: ScopeCluster, counted: true},
	FieldKnownCluster:  {level: ScopeCluster, scored: true, substring: true},
	FieldClusterBlast:  {level: ScopeCluster, scored: true},
	FieldPfam:          {level: ScopeGene, counted: true, scored: true},
	FieldTigrfam:       {level: ScopeGene, counted: true, scored: true},
	FieldResfam:        {level: ScopeGene, counted: true, scored: true},
	FieldGene:          {level: ScopeGene},
	FieldDomain:        {level: ScopeDomain, counted: true},
	FieldDomainSubtype: {level: ScopeDomain, counted: true},
}

// Level returns the scope a field is annotated at.
func (f Field) Level() Scope {
	return fields[f].level
}

// Known reports whether f is indexed.
func (f Field) Known() bool {
	_, ok := fields[f]
	return ok
}

// Counted reports whether f supports occurrence counts.
func (f Field) Counted() bool {
	return fields[f].counted
}

// Scored reports whether f values carry scores.
func (f Field) Scored() bool {
	return fields[f].scored
}
