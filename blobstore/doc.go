// Package blobstore abstracts where dataset snapshots live.
//
// A dataset is one or more immutable blobs (shards) under a common prefix.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: a directory on the local filesystem
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible services
package blobstore
