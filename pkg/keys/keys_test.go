package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/codec"
	"github.com/vanir-db/vanir/pkg/schema"
)

func TestKey0EncodesToNothing(t *testing.T) {
	buf, err := Key0{}.Encode(struct{}{})
	require.NoError(t, err)
	assert.Empty(t, buf)

	a := arena.New(0)
	_, err = Key0{}.Decode(nil, a)
	require.NoError(t, err)

	// A zero-arity key must not tolerate leftover bytes.
	_, err = Key0{}.Decode([]byte{1}, a)
	assert.ErrorIs(t, err, codec.ErrTrailingBytes)
}

func TestKey1PrimitiveIsPurelyTerminal(t *testing.T) {
	k := Key1[uint64]{A: Uint64Field{}}

	buf, err := k.Encode(9)
	require.NoError(t, err)
	// Terminal form: 8 big-endian bytes, no delimiter.
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 9}, buf)

	a := arena.New(0)
	v, err := k.Decode(buf, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)
}

func TestKey2ConcreteLayout(t *testing.T) {
	// (u32: 5, u64: 9) with the u64 terminal: the first 4 bytes decode as 5,
	// the remaining 8 as 9, and nothing is left over.
	k := Key2[uint32, uint64]{A: Uint32Field{}, B: Uint64Field{}}
	tuple := Tuple2[uint32, uint64]{F0: 5, F1: 9}

	buf, err := k.Encode(tuple)
	require.NoError(t, err)
	require.Len(t, buf, 12)
	assert.Equal(t, []byte{0, 0, 0, 5}, buf[:4])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 9}, buf[4:])

	a := arena.New(0)
	decoded, err := k.Decode(buf, a)
	require.NoError(t, err)
	assert.Equal(t, tuple, decoded)
}

func TestKeyRoundTripsAllArities(t *testing.T) {
	a := arena.New(0)

	t.Run("arity 2 string first", func(t *testing.T) {
		k := Key2[string, uint64]{A: StringField{}, B: Uint64Field{}}
		tuple := Tuple2[string, uint64]{F0: "uatom", F1: 77}

		buf, err := k.Encode(tuple)
		require.NoError(t, err)
		require.Len(t, buf, k.SizeTerminal(tuple))

		decoded, err := k.Decode(buf, a)
		require.NoError(t, err)
		assert.Equal(t, tuple, decoded)
	})

	t.Run("arity 3", func(t *testing.T) {
		k := Key3[account.ID, string, uint32]{
			A: AccountIDField{},
			B: StringField{},
			C: Uint32Field{},
		}
		tuple := Tuple3[account.ID, string, uint32]{
			F0: account.NewID(12),
			F1: "denom",
			F2: 3,
		}

		buf, err := k.Encode(tuple)
		require.NoError(t, err)
		require.Len(t, buf, k.SizeTerminal(tuple))

		decoded, err := k.Decode(buf, a)
		require.NoError(t, err)
		assert.Equal(t, tuple, decoded)
	})

	t.Run("arity 4 terminal string", func(t *testing.T) {
		k := Key4[uint32, account.ID, schema.Uint128, string]{
			A: Uint32Field{},
			B: AccountIDField{},
			C: Uint128Field{},
			D: StringField{},
		}
		tuple := Tuple4[uint32, account.ID, schema.Uint128, string]{
			F0: 1,
			F1: account.NewID(2),
			F2: schema.Uint128From64(3),
			F3: "trailing denom",
		}

		buf, err := k.Encode(tuple)
		require.NoError(t, err)
		require.Len(t, buf, k.SizeTerminal(tuple))

		decoded, err := k.Decode(buf, a)
		require.NoError(t, err)
		assert.Equal(t, tuple, decoded)
	})
}

func TestDecodeTrailingBytes(t *testing.T) {
	k := Key2[uint32, uint64]{A: Uint32Field{}, B: Uint64Field{}}
	buf, err := k.Encode(Tuple2[uint32, uint64]{F0: 5, F1: 9})
	require.NoError(t, err)

	a := arena.New(0)
	_, err = k.Decode(append(buf, 0xAA), a)
	assert.ErrorIs(t, err, codec.ErrTrailingBytes)
}

func TestDecodeTruncated(t *testing.T) {
	k := Key3[uint32, string, uint64]{A: Uint32Field{}, B: StringField{}, C: Uint64Field{}}
	buf, err := k.Encode(Tuple3[uint32, string, uint64]{F0: 1, F1: "ab", F2: 2})
	require.NoError(t, err)

	a := arena.New(0)
	for n := 1; n < len(buf); n++ {
		_, err := k.Decode(buf[:n], a)
		require.Error(t, err, "prefix of %d bytes decoded successfully", n)
	}
}

func TestStringFieldRejectsNUL(t *testing.T) {
	k := Key2[string, uint64]{A: StringField{}, B: Uint64Field{}}

	_, err := k.Encode(Tuple2[string, uint64]{F0: "a\x00b", F1: 1})
	assert.ErrorIs(t, err, codec.ErrInvalidData)

	// Terminal position rejects NUL as well.
	k1 := Key1[string]{A: StringField{}}
	_, err = k1.Encode("a\x00b")
	assert.ErrorIs(t, err, codec.ErrInvalidData)
}

func TestStringFieldOwnedCopies(t *testing.T) {
	k := Key1[string]{A: StringField{Owned: true}}
	buf, err := k.Encode("uatom")
	require.NoError(t, err)

	a := arena.New(0)
	v, err := k.Decode(buf, a)
	require.NoError(t, err)
	require.Equal(t, "uatom", v)

	// Owned strings survive mutation of the key buffer.
	buf[0] = 'X'
	assert.Equal(t, "uatom", v)
}

func TestOrderPreservation(t *testing.T) {
	// Tuples listed in ascending field-by-field order; the encodings must
	// sort identically as raw bytes.
	k := Key3[uint32, string, uint64]{A: Uint32Field{}, B: StringField{}, C: Uint64Field{}}

	tuples := []Tuple3[uint32, string, uint64]{
		{F0: 0, F1: "", F2: 0},
		{F0: 0, F1: "", F2: 1},
		{F0: 0, F1: "a", F2: 0},
		{F0: 0, F1: "a", F2: 500},
		{F0: 0, F1: "ab", F2: 0},
		{F0: 0, F1: "b", F2: 0},
		{F0: 1, F1: "", F2: 0},
		{F0: 1, F1: "a", F2: 9},
		{F0: 255, F1: "", F2: 0},
		{F0: 256, F1: "", F2: 0},
		{F0: 1 << 20, F1: "zzz", F2: ^uint64(0)},
	}

	encoded := make([][]byte, len(tuples))
	for i, tuple := range tuples {
		buf, err := k.Encode(tuple)
		require.NoError(t, err)
		encoded[i] = buf
	}

	for i := 0; i < len(encoded)-1; i++ {
		assert.Negative(t, bytes.Compare(encoded[i], encoded[i+1]),
			"encoding of %v does not sort before %v", tuples[i], tuples[i+1])
	}
}

func TestUint128FieldOrder(t *testing.T) {
	k := Key1[schema.Uint128]{A: Uint128Field{}}

	small, err := k.Encode(schema.Uint128{Hi: 0, Lo: ^uint64(0)})
	require.NoError(t, err)
	big, err := k.Encode(schema.Uint128{Hi: 1, Lo: 0})
	require.NoError(t, err)

	assert.Negative(t, bytes.Compare(small, big))
}

func TestNestedKeyAsPrefix(t *testing.T) {
	// A composite key can serve as the non-terminal prefix of a larger key.
	prefix := Key2[account.ID, string]{A: AccountIDField{}, B: StringField{}}
	k := Key2[Tuple2[account.ID, string], uint64]{A: prefix, B: Uint64Field{}}

	tuple := Tuple2[Tuple2[account.ID, string], uint64]{
		F0: Tuple2[account.ID, string]{F0: account.NewID(5), F1: "uatom"},
		F1: 42,
	}

	buf, err := k.Encode(tuple)
	require.NoError(t, err)
	require.Len(t, buf, k.SizeTerminal(tuple))

	// The flat layout equals the equivalent arity-3 key.
	flat := Key3[account.ID, string, uint64]{A: AccountIDField{}, B: StringField{}, C: Uint64Field{}}
	flatBuf, err := flat.Encode(Tuple3[account.ID, string, uint64]{
		F0: account.NewID(5), F1: "uatom", F2: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, flatBuf, buf)

	a := arena.New(0)
	decoded, err := k.Decode(buf, a)
	require.NoError(t, err)
	assert.Equal(t, tuple, decoded)
}

func TestSizeTerminalExact(t *testing.T) {
	k := Key2[string, uint64]{A: StringField{}, B: Uint64Field{}}
	tuple := Tuple2[string, uint64]{F0: "denom", F1: 1}

	// len("denom") + terminator + 8 bytes of uint64.
	assert.Equal(t, 5+1+8, k.SizeTerminal(tuple))

	buf, err := k.Encode(tuple)
	require.NoError(t, err)
	assert.Len(t, buf, k.SizeTerminal(tuple))
}
