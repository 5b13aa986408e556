package store

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const boltBucket = "collections"

// Bolt stores collections in a single bucket of an embedded bolt file.
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the bolt file at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Get returns the value stored under key.
func (b *Bolt) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		// bolt values are only valid for the life of the transaction
		if v := tx.Bucket([]byte(boltBucket)).Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

// Set replaces the value stored under key.
func (b *Bolt) Set(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), value)
	})
}

// FileCopier is implemented by file-backed stores that can write a
// consistent copy of themselves while open.
type FileCopier interface {
	CopyFile(path string) error
}

var _ FileCopier = (*Bolt)(nil)

// CopyFile writes a consistent copy of the bolt file to path.
func (b *Bolt) CopyFile(path string) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(path, 0600)
	})
}

// Close closes the bolt file.
func (b *Bolt) Close() error {
	return b.db.Close()
}
