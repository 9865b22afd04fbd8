// Package store is the in-memory search backend: an inverted index of
// roaring bitmaps over the regions, genes and domains of a dataset.
//
// Every fact lives at the level it was annotated at (product types on
// regions, profile hits on genes, antiSMASH domains on domains). Queries name
// a target Scope and results are projected onto it: region facts cover the
// region's genes and domains, gene facts cover the region and the gene's
// domains, and domain facts cover the gene and region.
//
// A Store is immutable after New and safe for concurrent use without locks.
package store
