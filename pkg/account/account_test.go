package account

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageSelectorDeterministic(t *testing.T) {
	a := MessageSelector("vanir.bank.v1.send")
	b := MessageSelector("vanir.bank.v1.send")
	assert.Equal(t, a, b)
	assert.NotZero(t, a)
}

func TestMessageSelectorDistinct(t *testing.T) {
	names := []string{
		"vanir.account.v1.create",
		"vanir.account.v1.self_destruct",
		"vanir.bank.v1.send",
		"vanir.bank.v1.burn",
	}

	seen := make(map[uint64]string)
	for _, name := range names {
		sel := MessageSelector(name)
		prev, dup := seen[sel]
		require.False(t, dup, "selector collision between %q and %q", name, prev)
		seen[sel] = name
	}
}

func TestLifecycleSelectorsMatchNames(t *testing.T) {
	assert.Equal(t, MessageSelector("vanir.account.v1.create"), CreateSelector)
	assert.Equal(t, MessageSelector("vanir.account.v1.self_destruct"), SelfDestructSelector)
}

type fakeBackend struct {
	target   ID
	selector uint64
	payload  []byte
	resp     []byte
	err      error
}

func (f *fakeBackend) Invoke(target ID, selector uint64, payload []byte) ([]byte, error) {
	f.target = target
	f.selector = selector
	f.payload = payload
	return f.resp, f.err
}

func TestCreate(t *testing.T) {
	resp := make([]byte, 8)
	binary.LittleEndian.PutUint64(resp, 42)
	backend := &fakeBackend{resp: resp}

	id, err := Create(backend, "bank", []byte("init"))
	require.NoError(t, err)
	assert.Equal(t, NewID(42), id)
	assert.Equal(t, CreateSelector, backend.selector)
	assert.Equal(t, []byte("init"), backend.payload)
}

func TestCreateBackendError(t *testing.T) {
	boom := errors.New("boom")
	backend := &fakeBackend{err: boom}

	_, err := Create(backend, "bank", nil)
	assert.ErrorIs(t, err, boom)
}

func TestCreateNilBackend(t *testing.T) {
	_, err := Create(nil, "bank", nil)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestSelfDestruct(t *testing.T) {
	backend := &fakeBackend{}

	require.NoError(t, SelfDestruct(backend, NewID(7)))
	assert.Equal(t, NewID(7), backend.target)
	assert.Equal(t, SelfDestructSelector, backend.selector)

	assert.ErrorIs(t, SelfDestruct(nil, NewID(7)), ErrNotImplemented)
}

func TestIDBasics(t *testing.T) {
	assert.True(t, NewID(0).IsEmpty())
	assert.False(t, NewID(1).IsEmpty())
	assert.Equal(t, uint64(99), NewID(99).Uint64())
	assert.Equal(t, "account(99)", NewID(99).String())
}
