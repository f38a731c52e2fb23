package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"allowlist-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps the snapshot as a JSON object in an S3 compatible bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	object string
}

var _ Store = (*ObjectStore)(nil)

// NewObjectStore creates a bucket backed store.
func NewObjectStore(client storage.Client, bucket, object string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, object: object}
}

// Load downloads the snapshot object. A missing object or bucket yields an empty snapshot.
func (s *ObjectStore) Load(ctx context.Context) (Snapshot, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to get snapshot %s/%s: %w", s.bucket, s.object, err)
	}
	defer reader.Close()

	// minio reports missing objects on first read, not on GetObject
	data, err := io.ReadAll(reader)
	if err != nil {
		if storage.IsNotFound(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s/%s: %w", s.bucket, s.object, err)
	}

	return Decode(data)
}

// Save uploads the snapshot, creating the bucket on first use.
func (s *ObjectStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		s.object,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s/%s: %w", s.bucket, s.object, err)
	}
	return nil
}
