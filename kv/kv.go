// Package kv provides the durable key-value store that backs persisted state.
//
// Values are opaque strings. Three backends exist: a JSON document on disk
// (the default), a SQLite database and an in-memory map.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Backend kinds accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	fileName   = "storage.json"
	sqliteName = "storage.db"
)

// Storage is a string key-value store. Implementations are not safe for
// concurrent use; a single owner reads and writes them.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open opens the backend of the given kind inside dir.
func Open(kind, dir string, logger *log.Logger) (Storage, error) {
	switch kind {
	case "", BackendFile:
		return OpenFile(filepath.Join(dir, fileName), logger)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, sqliteName))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
