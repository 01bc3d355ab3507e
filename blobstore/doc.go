// Package blobstore provides storage backends for population checkpoints.
//
// A checkpoint is one immutable blob holding a saved population. Writers
// replace blobs atomically with Put; readers Open a blob and read it with
// ReadAt or the ReadAll helper. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system, reads through mmap
//   - MemoryStore: in-process map, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3, uploads through the transfer manager
package blobstore
