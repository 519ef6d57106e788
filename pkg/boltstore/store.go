// Package boltstore provides a persistent KeyStore backed by bbolt. It is
// the durable counterpart to the in-memory store: bindings that share a
// database file and bucket observe each other's writes across processes and
// restarts.
package boltstore

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

// Options configures a Store.
type Options struct {
	// Bucket is the name of the bolt bucket to use. Defaults to "statebind".
	Bucket string
	// Timeout bounds the wait for the file lock. Defaults to one second.
	Timeout time.Duration
}

// Store is a file-backed KeyStore. All methods map one-to-one onto bolt
// transactions; bolt's own locking makes the store safe for concurrent use,
// though individual bindings remain single-goroutine.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes or opens a Store at the given path.
func Open(path string, opts Options) (*Store, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	bucket := []byte("statebind")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, bucket: bucket}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// GetItem returns the value stored under key, ok=false when absent.
func (s *Store) GetItem(key string) (string, bool, error) {
	var value string
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		ok = true
		value = string(raw)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}

// SetItem creates or overwrites the value stored under key.
func (s *Store) SetItem(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
}

// RemoveItem deletes key. Removing an absent key is a no-op.
func (s *Store) RemoveItem(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Clear removes every key in the bucket.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	})
}

// Len reports the number of stored keys.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Key returns the index-th key in bolt's byte order, ok=false when index is
// out of range.
func (s *Store) Key(index int) (string, bool, error) {
	if index < 0 {
		return "", false, nil
	}
	var key string
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket(s.bucket).Cursor()
		i := 0
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			if i == index {
				key = string(k)
				ok = true
				return nil
			}
			i++
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return key, ok, nil
}
