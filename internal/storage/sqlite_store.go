package storage

import (
	"github.com/SashaSaw/Habitat-sub000/internal/storage/sqlite"
)

// SQLiteStore adapts the sqlite package to the Provider interface.
type SQLiteStore struct {
	*sqlite.Store
}

func NewSQLiteStore(configPath string) *SQLiteStore {
	return &SQLiteStore{
		Store: sqlite.NewStore(configPath),
	}
}
