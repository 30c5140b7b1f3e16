package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/codec"
	"github.com/vanir-db/vanir/pkg/keys"
	"github.com/vanir-db/vanir/pkg/schema"
)

// balance is the value type used throughout the map tests: one denom's
// amount for one account.
type balance struct {
	Denom  string
	Amount schema.Uint128
}

var balanceType = &schema.StructType{
	Name: "Balance",
	Fields: []schema.Field{
		{Name: "denom", Kind: schema.KindString},
		{Name: "amount", Kind: schema.KindUint128},
	},
}

func (b balance) EncodeValue(enc codec.Encoder) error {
	return enc.EncodeStruct(b, balanceType)
}

func (b balance) EncodeField(index int, enc codec.Encoder) error {
	switch index {
	case 0:
		return enc.EncodeString(b.Denom)
	case 1:
		return enc.EncodeUint128(b.Amount)
	default:
		return codec.ErrEncodeUnknown
	}
}

type balanceState struct {
	denom  codec.OwnedStringState
	amount codec.Uint128State
}

func (s *balanceState) VisitDecode(dec codec.Decoder) error {
	return dec.DecodeStruct(s, balanceType)
}

func (s *balanceState) DecodeField(index int, dec codec.Decoder) error {
	switch index {
	case 0:
		return s.denom.VisitDecode(dec)
	case 1:
		return s.amount.VisitDecode(dec)
	default:
		return codec.ErrUnknownFieldNumber
	}
}

func (s *balanceState) Finish(a *arena.Arena) (balance, error) {
	denom, err := s.denom.Finish(a)
	if err != nil {
		return balance{}, err
	}
	amount, err := s.amount.Finish(a)
	if err != nil {
		return balance{}, err
	}
	return balance{Denom: denom, Amount: amount}, nil
}

type balanceKey = keys.Tuple2[account.ID, string]

func newBalanceMap(s *StateStore) *ObjectMap[balanceKey, balance] {
	return NewObjectMap(
		s,
		[]byte{0x01},
		keys.Key2[account.ID, string]{A: keys.AccountIDField{}, B: keys.StringField{Owned: true}},
		func() codec.State[balance] { return &balanceState{} },
		func(b balance) codec.Encodable { return b },
	)
}

func TestObjectMapRoundTrip(t *testing.T) {
	s := openTestStore(t)
	m := newBalanceMap(s)
	a := arena.New(0)

	k := balanceKey{F0: account.NewID(7), F1: "uatom"}
	want := balance{Denom: "uatom", Amount: schema.Uint128From64(1000)}

	_, err := m.Get(k, a)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Set(k, want))

	got, err := m.Get(k, a)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ok, err := m.Has(k)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Delete(k))
	_, err = m.Get(k, a)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestObjectMapIterateOrdered(t *testing.T) {
	s := openTestStore(t)
	m := newBalanceMap(s)
	a := arena.New(0)

	// Insertion order deliberately scrambled; iteration follows key order,
	// account ID first, then denom.
	entries := []struct {
		id    uint64
		denom string
	}{
		{2, "uosmo"},
		{1, "uatom"},
		{2, "uatom"},
		{1, "foo"},
	}
	for i, e := range entries {
		k := balanceKey{F0: account.NewID(e.id), F1: e.denom}
		v := balance{Denom: e.denom, Amount: schema.Uint128From64(uint64(i))}
		require.NoError(t, m.Set(k, v))
	}

	var got []balanceKey
	err := m.Iterate(a, func(k balanceKey, v balance) error {
		assert.Equal(t, k.F1, v.Denom)
		got = append(got, k)
		return nil
	})
	require.NoError(t, err)

	want := []balanceKey{
		{F0: account.NewID(1), F1: "foo"},
		{F0: account.NewID(1), F1: "uatom"},
		{F0: account.NewID(2), F1: "uatom"},
		{F0: account.NewID(2), F1: "uosmo"},
	}
	assert.Equal(t, want, got)
}

func TestObjectMapPrefixIsolation(t *testing.T) {
	s := openTestStore(t)
	a := arena.New(0)

	balances := newBalanceMap(s)
	other := NewObjectMap(
		s,
		[]byte{0x02},
		keys.Key2[account.ID, string]{A: keys.AccountIDField{}, B: keys.StringField{Owned: true}},
		func() codec.State[balance] { return &balanceState{} },
		func(b balance) codec.Encodable { return b },
	)

	k := balanceKey{F0: account.NewID(1), F1: "uatom"}
	require.NoError(t, balances.Set(k, balance{Denom: "uatom", Amount: schema.Uint128From64(5)}))

	_, err := other.Get(k, a)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	count := 0
	require.NoError(t, other.Iterate(a, func(balanceKey, balance) error {
		count++
		return nil
	}))
	assert.Zero(t, count)
}

func TestObjectMapRejectsBadKey(t *testing.T) {
	s := openTestStore(t)
	m := newBalanceMap(s)

	k := balanceKey{F0: account.NewID(1), F1: "nul\x00byte"}
	err := m.Set(k, balance{Denom: "x", Amount: schema.Uint128From64(1)})
	assert.ErrorIs(t, err, codec.ErrInvalidData)
}
