// Package account defines the account identifier used throughout the state
// codec, message selector derivation, and the thin account lifecycle API.
package account

import (
	"errors"
	"fmt"
)

// ID is an opaque 64-bit account identifier.
type ID uint64

// NewID wraps a raw 64-bit value as an account ID.
func NewID(v uint64) ID {
	return ID(v)
}

// Uint64 returns the raw identifier value.
func (id ID) Uint64() uint64 {
	return uint64(id)
}

// IsEmpty reports whether the ID is the zero account.
func (id ID) IsEmpty() bool {
	return id == 0
}

// String formats the ID for logs and CLI output.
func (id ID) String() string {
	return fmt.Sprintf("account(%d)", uint64(id))
}

// ErrNotImplemented is returned by lifecycle operations that the state codec
// layer only declares; a host runtime supplies the real behavior.
var ErrNotImplemented = errors.New("account: not implemented at this layer")

// Backend is the surface a host runtime provides for lifecycle operations.
type Backend interface {
	// Invoke routes a message, identified by selector, to the account.
	Invoke(target ID, selector uint64, payload []byte) ([]byte, error)
}

// Create asks the backend to create a new account running the named handler.
// This is a thin pass-through; address assignment and handler setup happen in
// the backend.
func Create(backend Backend, handler string, initPayload []byte) (ID, error) {
	if backend == nil {
		return 0, ErrNotImplemented
	}
	resp, err := backend.Invoke(0, CreateSelector, initPayload)
	if err != nil {
		return 0, fmt.Errorf("account: create %q: %w", handler, err)
	}
	if len(resp) != 8 {
		return 0, fmt.Errorf("account: create %q: malformed id response", handler)
	}
	var raw uint64
	for i := 7; i >= 0; i-- {
		raw = raw<<8 | uint64(resp[i])
	}
	return NewID(raw), nil
}

// SelfDestruct destroys the account and all of its state. Destroying an
// account is irreversible.
func SelfDestruct(backend Backend, target ID) error {
	if backend == nil {
		return ErrNotImplemented
	}
	_, err := backend.Invoke(target, SelfDestructSelector, nil)
	return err
}
