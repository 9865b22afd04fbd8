// Package dataset defines the BGC records the search store is built from and
// moves them between blob stores and memory.
//
// A dataset is one or more JSON shards under a common prefix. Shards may be
// compressed; the compression is chosen by name suffix:
//
//	regions-0001.json      plain JSON
//	regions-0002.json.zst  zstd
//	regions-0003.json.lz4  lz4 frame
//
// Load fetches all shards concurrently, bounded by a resource.Controller, and
// merges them in name order so region ids are stable across runs.
package dataset
