// Package badgerrepo stores the session snapshot in a local BadgerDB
// directory, the client-side equivalent of the browser's persisted storage.
package badgerrepo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/jober-app/go-alimtalk-client/snapshot"
)

var _ snapshot.Repo = (*BadgerRepo)(nil)

const snapshotKey = "session-snapshot"

// BadgerRepo persists snapshots under a single fixed key.
type BadgerRepo struct {
	db      *badger.DB
	dirPath string
}

// New opens (or creates) the snapshot database at dirPath.
func New(dirPath string) (*BadgerRepo, error) {
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	return &BadgerRepo{
		db:      db,
		dirPath: dirPath,
	}, nil
}

// Close closes the underlying database.
func (r *BadgerRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *BadgerRepo) Save(s snapshot.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), data)
	})
}

func (r *BadgerRepo) Load() (snapshot.Snapshot, bool, error) {
	var s snapshot.Snapshot
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return s, found, nil
}

func (r *BadgerRepo) Clear() error {
	return r.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(snapshotKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
