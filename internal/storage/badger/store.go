package badger

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	apperrors "docvault/pkg/errors"
)

const (
	blobKeyPrefix = "blob:"

	errFailedOpenStoreFmt  = "failed to open badger store: %w"
	errFailedPutBlobFmt    = "failed to put blob: %w"
	errFailedGetBlobFmt    = "failed to get blob: %w"
	errFailedDeleteBlobFmt = "failed to delete blob: %w"
	errFailedCloseStoreFmt = "failed to close badger store: %w"
	errBlobNotFound        = "blob not found"
)

// Store is an embedded, durable blob store backed by BadgerDB. It is the
// local alternative to the S3 client for single-node deployments.
type Store struct {
	db *badger.DB
}

func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf(errFailedOpenStoreFmt, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf(errFailedCloseStoreFmt, err)
	}
	return nil
}

func blobKey(key string) []byte {
	return []byte(blobKeyPrefix + key)
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blobKey(key), data)
	})
	if err != nil {
		return fmt.Errorf(errFailedPutBlobFmt, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, apperrors.NotFound(errBlobNotFound)
		}
		return nil, fmt.Errorf(errFailedGetBlobFmt, err)
	}

	return data, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(blobKey(key))
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteBlobFmt, err)
	}

	return nil
}
