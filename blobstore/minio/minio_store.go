package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/lcsgo/blobstore"
)

// Store keeps checkpoints as objects in a MinIO or S3-compatible bucket.
type Store struct {
	client *minio.Client
	bucket string
	keys   blobstore.Keyspace
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore returns a Store writing below rootPrefix (e.g. "populations/")
// in bucket.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, keys: blobstore.NewKeyspace(rootPrefix)}
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string { return s.bucket }

// Open downloads the object in one GET. Checkpoints are always decoded
// whole, so the returned blob serves reads from memory.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.keys.Key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(name, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrap(name, err)
	}
	return blob(data), nil
}

// Put uploads data in a single PutObject, which the server applies
// atomically. The body is sent with a Content-MD5 header.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.keys.Key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType:    "application/octet-stream",
			SendContentMd5: true,
		})
	if err != nil {
		return s.wrap(name, err)
	}
	return nil
}

// Delete removes name. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.keys.Key(name), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return s.wrap(name, err)
	}
	return nil
}

// List returns the sorted names below the root prefix starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.keys.Key(prefix),
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio: list %s: %w", s.bucket, obj.Err)
		}
		if name, ok := s.keys.Name(obj.Key); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) wrap(name string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("minio: %s/%s: %w", s.bucket, s.keys.Key(name), blobstore.ErrNotFound)
	}
	return fmt.Errorf("minio: %s/%s: %w", s.bucket, s.keys.Key(name), err)
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// blob is a downloaded object.
type blob []byte

var _ blobstore.Mappable = blob(nil)

func (b blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	switch {
	case off < 0:
		return 0, errors.New("minio: negative offset")
	case len(p) == 0:
		return 0, nil
	case off >= int64(len(b)):
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b blob) Bytes() ([]byte, error) { return b, nil }

func (blob) Close() error { return nil }

func (b blob) Size() int64 { return int64(len(b)) }
