// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client (S3 compatible) so the sync snapshot can live in a
// bucket instead of on the local disk, which lets several hosts or a container
// without a persistent volume share one snapshot.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "allowlist-sync")
package storage
