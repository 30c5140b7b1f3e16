package store

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
)

// StateStore is an ordered key-value store backed by pebble. Keys are raw
// bytes; callers that need composite keys encode them with the keys package,
// whose encodings sort the same way pebble sorts, so prefix scans walk
// entries in tuple order.
type StateStore struct {
	db     *pebble.DB
	sync   *pebble.WriteOptions
	mutex  sync.RWMutex
	isOpen bool
}

// Open opens (or creates) the store at config.DataDir.
func Open(config Config) (*StateStore, error) {
	opts := &pebble.Options{}
	if config.FsyncInterval > 0 {
		interval := config.FsyncInterval
		opts.WALMinSyncInterval = func() time.Duration { return interval }
	}

	db, err := pebble.Open(config.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", config.DataDir, err)
	}

	writeOpts := pebble.NoSync
	if config.SyncWrites {
		writeOpts = pebble.Sync
	}

	return &StateStore{
		db:     db,
		sync:   writeOpts,
		isOpen: true,
	}, nil
}

// Get returns a copy of the value stored under key, or ErrKeyNotFound.
func (s *StateStore) Get(key []byte) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isOpen {
		return nil, ErrClosed
	}

	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// The pebble buffer is only valid until the closer is closed.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value under key, overwriting any previous value.
func (s *StateStore) Set(key, value []byte) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isOpen {
		return ErrClosed
	}
	return s.db.Set(key, value, s.sync)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *StateStore) Delete(key []byte) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isOpen {
		return ErrClosed
	}
	return s.db.Delete(key, s.sync)
}

// Has reports whether key is present.
func (s *StateStore) Has(key []byte) (bool, error) {
	_, err := s.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Scan calls fn for every key with the given prefix, in ascending byte
// order. The key and value slices are only valid for the duration of the
// callback. Returning a non-nil error from fn stops the scan.
func (s *StateStore) Scan(prefix []byte, fn func(key, value []byte) error) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isOpen {
		return ErrClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close flushes and closes the underlying database.
func (s *StateStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	return s.db.Close()
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix, or nil when no such bound exists (all 0xFF bytes).
func prefixUpperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
