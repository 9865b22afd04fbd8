// Package clusterq searches a biosynthetic gene cluster database with a
// small query language.
//
// Queries are written in free text or as a JSON term tree. Each term names a
// category and a value; terms combine with AND, OR and EXCEPT, and adjacent
// terms are implicitly ANDed. A query compiles to a predicate over cluster,
// gene or domain ids, depending on the requested search type.
//
// # Quick Start
//
//	ctx := context.Background()
//	s, _ := clusterq.Open(ctx, blobstore.NewLocalStore("./data"), "regions")
//	res, _ := s.SearchText(ctx, "[type]lanthipeptide [genus]Streptomyces", query.SearchCluster, false)
//	fmt.Println(res.Total, res.IDs)
//
// # Query Language
//
// Free text:
//
//	ripp AND ( streptomyces OR lactococcus )
//	[knowncluster]BGC0000535 WITH [similarity](> 50)
//	3 * [pfam]PF00109
//	[modulequery]L=PKS_AT|M=PKS_KR|T=0
//	[length:>=]20000 EXCEPT [contigedge]true
//
// Unknown categories never fail a query; they match nothing. Malformed
// input is rejected with a *query.ParseError before any lookup runs.
//
// # Search Types
//
// A query runs against clusters, genes or domains. Facts stored at one level
// carry over to the others: a cluster matches a gene-level term if any of its
// genes match, and a gene matches a cluster-level term if its cluster does.
//
// # Datasets
//
// Datasets are JSON shards, optionally zstd or lz4 compressed, held in a
// blob store: a local directory, S3 or MinIO. Open loads every shard under a
// prefix concurrently and builds an immutable in-memory index.
package clusterq
