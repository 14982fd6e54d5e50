package storage

import "context"

// BlobStore holds raw file content addressed by storage key. Metadata
// lives in the repositories; the blob store knows nothing about projects
// or permissions.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
