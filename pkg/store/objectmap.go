package store

import (
	"fmt"

	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/codec"
	"github.com/vanir-db/vanir/pkg/keys"
)

// ObjectMap binds a composite key descriptor and a value codec to one
// keyspace prefix of a StateStore. Each map owns every key beginning with
// its prefix, so distinct maps over the same store never collide as long as
// no prefix is a prefix of another.
type ObjectMap[K, V any] struct {
	store    *StateStore
	prefix   []byte
	key      keys.FieldType[K]
	newState func() codec.State[V]
	wrap     func(V) codec.Encodable
}

// NewObjectMap constructs a typed map over store. newState produces a fresh
// decode state per value; wrap adapts a value for encoding.
func NewObjectMap[K, V any](
	store *StateStore,
	prefix []byte,
	key keys.FieldType[K],
	newState func() codec.State[V],
	wrap func(V) codec.Encodable,
) *ObjectMap[K, V] {
	return &ObjectMap[K, V]{
		store:    store,
		prefix:   prefix,
		key:      key,
		newState: newState,
		wrap:     wrap,
	}
}

// EncodeKey returns the full store key for k: the map prefix followed by the
// order-preserving key encoding.
func (m *ObjectMap[K, V]) EncodeKey(k K) ([]byte, error) {
	size := len(m.prefix) + m.key.SizeTerminal(k)
	buf := make([]byte, 0, size)
	buf = append(buf, m.prefix...)
	buf, err := m.key.AppendTerminal(buf, k)
	if err != nil {
		return nil, err
	}
	if len(buf) != size {
		return nil, fmt.Errorf("%w: key size mismatch", codec.ErrEncodeUnknown)
	}
	return buf, nil
}

// Get decodes the value stored under k. Borrowed strings in the result are
// backed by a private copy of the stored bytes and stay valid until that
// copy is garbage collected.
func (m *ObjectMap[K, V]) Get(k K, a *arena.Arena) (V, error) {
	var zero V
	key, err := m.EncodeKey(k)
	if err != nil {
		return zero, err
	}
	value, err := m.store.Get(key)
	if err != nil {
		return zero, err
	}
	return codec.Decode[V](value, a, m.newState())
}

// Set encodes v and stores it under k.
func (m *ObjectMap[K, V]) Set(k K, v V) error {
	key, err := m.EncodeKey(k)
	if err != nil {
		return err
	}
	value, err := codec.Encode(m.wrap(v))
	if err != nil {
		return err
	}
	return m.store.Set(key, value)
}

// Delete removes the entry for k. Missing entries are not an error.
func (m *ObjectMap[K, V]) Delete(k K) error {
	key, err := m.EncodeKey(k)
	if err != nil {
		return err
	}
	return m.store.Delete(key)
}

// Has reports whether an entry exists for k.
func (m *ObjectMap[K, V]) Has(k K) (bool, error) {
	key, err := m.EncodeKey(k)
	if err != nil {
		return false, err
	}
	return m.store.Has(key)
}

// Iterate calls fn for every entry in the map in ascending key order.
// Values are decoded into a private copy per entry; decoded keys may borrow
// from that copy. Returning a non-nil error from fn stops the iteration.
func (m *ObjectMap[K, V]) Iterate(a *arena.Arena, fn func(k K, v V) error) error {
	return m.store.Scan(m.prefix, func(key, value []byte) error {
		suffix := a.Copy(key[len(m.prefix):])
		k, err := keys.Decode[K](m.key, suffix, a)
		if err != nil {
			return fmt.Errorf("store: decoding key %x: %w", key, err)
		}
		v, err := codec.Decode[V](a.Copy(value), a, m.newState())
		if err != nil {
			return fmt.Errorf("store: decoding value for key %x: %w", key, err)
		}
		return fn(k, v)
	})
}
