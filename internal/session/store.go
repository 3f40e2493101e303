// Package session keeps the CLI's signed-in state in a local badger store
// and hands protected commands a typed Session instead of a bare flag.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Keys of the local store.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyCurrentUser   = "currentUser"
	KeyUserEmail     = "userEmail"
	KeyUserRole      = "userRole"
	KeyToken         = "token"

	// Legacy local-only snapshots, read by the migration only.
	KeyUsers     = "users"
	KeyDocuments = "documents"

	// Legacy document ids already migrated from an export file.
	KeyMigrated = "migratedDocuments"
)

// Store is a persistent string key/value store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store directory at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory returns a store that lives until Close.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value of key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(value), true, nil
}

// Set writes every pair in one transaction.
func (s *Store) Set(pairs map[string]string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for k, v := range pairs {
			if err := txn.Set([]byte(k), []byte(v)); err != nil {
				return fmt.Errorf("set %s: %w", k, err)
			}
		}
		return nil
	})
}

// Delete removes the keys; missing keys are ignored.
func (s *Store) Delete(keys ...string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete([]byte(k)); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
