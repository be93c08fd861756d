// Package store is the persistent storage of shush. It keeps the command
// history in a bbolt database.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/victor23k/shush/pkg/logutil"
	"github.com/victor23k/shush/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// DBStore is a Store backed by a database file, which must be closed after
// use.
type DBStore interface {
	storedefs.Store
	Close() error
}

var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close releases the database file.
func (s *dbStore) Close() error {
	return s.db.Close()
}
