package store

import (
	"errors"
	"time"
)

// Config holds configuration for the state store.
type Config struct {
	DataDir       string        // Directory for the pebble database
	SyncWrites    bool          // Fsync every write instead of relying on the WAL flush
	FsyncInterval time.Duration // Minimum interval between WAL syncs when SyncWrites is off
}

// Errors
var (
	ErrKeyNotFound = errors.New("store: key not found")
	ErrClosed      = errors.New("store: store is closed")
)
