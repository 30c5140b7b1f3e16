package codec

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/schema"
)

// Coin mirrors the canonical two-field test value: a borrowed string followed
// by a 128-bit amount.
type Coin struct {
	Denom  string
	Amount schema.Uint128
}

var coinType = &schema.StructType{
	Name: "Coin",
	Fields: []schema.Field{
		{Name: "denom", Kind: schema.KindString},
		{Name: "amount", Kind: schema.KindUint128},
	},
}

func (c Coin) EncodeValue(enc Encoder) error {
	return enc.EncodeStruct(c, coinType)
}

func (c Coin) EncodeField(index int, enc Encoder) error {
	switch index {
	case 0:
		return enc.EncodeString(c.Denom)
	case 1:
		return enc.EncodeUint128(c.Amount)
	default:
		return ErrEncodeUnknown
	}
}

type coinState struct {
	denom  BorrowedStringState
	amount Uint128State
}

func (s *coinState) VisitDecode(dec Decoder) error {
	return dec.DecodeStruct(s, coinType)
}

func (s *coinState) DecodeField(index int, dec Decoder) error {
	switch index {
	case 0:
		return s.denom.VisitDecode(dec)
	case 1:
		return s.amount.VisitDecode(dec)
	default:
		return ErrUnknownFieldNumber
	}
}

func (s *coinState) Finish(a *arena.Arena) (Coin, error) {
	denom, err := s.denom.Finish(a)
	if err != nil {
		return Coin{}, err
	}
	amount, err := s.amount.Finish(a)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: denom, Amount: amount}, nil
}

func TestDecodeUint32(t *testing.T) {
	a := arena.New(0)
	v, err := Decode[uint32]([]byte{10, 0, 0, 0}, a, &Uint32State{})
	require.NoError(t, err)
	assert.Equal(t, uint32(10), v)
}

func TestScalarRoundTrips(t *testing.T) {
	a := arena.New(0)

	t.Run("uint32", func(t *testing.T) {
		buf, err := Encode(Uint32Value(0xdeadbeef))
		require.NoError(t, err)
		require.Len(t, buf, 4)
		v, err := Decode[uint32](buf, a, &Uint32State{})
		require.NoError(t, err)
		assert.Equal(t, uint32(0xdeadbeef), v)
	})

	t.Run("uint64", func(t *testing.T) {
		buf, err := Encode(Uint64Value(0x0123456789abcdef))
		require.NoError(t, err)
		require.Len(t, buf, 8)
		v, err := Decode[uint64](buf, a, &Uint64State{})
		require.NoError(t, err)
		assert.Equal(t, uint64(0x0123456789abcdef), v)
	})

	t.Run("uint128", func(t *testing.T) {
		want := schema.Uint128{Hi: 7, Lo: 9}
		buf, err := Encode(Uint128Value(want))
		require.NoError(t, err)
		require.Len(t, buf, 16)
		v, err := Decode[schema.Uint128](buf, a, &Uint128State{})
		require.NoError(t, err)
		assert.Equal(t, want, v)
	})

	t.Run("account id", func(t *testing.T) {
		buf, err := Encode(AccountIDValue(42))
		require.NoError(t, err)
		require.Len(t, buf, 8)
		v, err := Decode[account.ID](buf, a, &AccountIDState{})
		require.NoError(t, err)
		assert.Equal(t, uint64(42), v.Uint64())
	})
}

func TestScalarOutOfData(t *testing.T) {
	a := arena.New(0)

	_, err := Decode[uint32]([]byte{1, 2, 3}, a, &Uint32State{})
	assert.ErrorIs(t, err, ErrOutOfData)

	_, err = Decode[uint64]([]byte{1, 2, 3, 4, 5, 6, 7}, a, &Uint64State{})
	assert.ErrorIs(t, err, ErrOutOfData)

	_, err = Decode[schema.Uint128](make([]byte, 15), a, &Uint128State{})
	assert.ErrorIs(t, err, ErrOutOfData)
}

func TestTopLevelStringBorrowed(t *testing.T) {
	a := arena.New(0)

	v, err := Decode[string]([]byte("hello"), a, &BorrowedStringState{})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestTopLevelStringOwned(t *testing.T) {
	a := arena.New(0)

	input := []byte("hello")
	v, err := Decode[string](input, a, &OwnedStringState{})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	// The owned representation survives mutation of the input buffer.
	input[0] = 'X'
	assert.Equal(t, "hello", v)
}

func TestTopLevelStringInvalidUTF8(t *testing.T) {
	a := arena.New(0)

	_, err := Decode[string]([]byte{0xff, 0xfe}, a, &BorrowedStringState{})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Decode[string]([]byte{0xff, 0xfe}, a, &OwnedStringState{})
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestTopLevelStringEncode(t *testing.T) {
	buf, err := Encode(StringValue("uatom"))
	require.NoError(t, err)
	// No length prefix at top level: raw bytes only.
	assert.Equal(t, []byte("uatom"), buf)
}

func TestTopLevelBytes(t *testing.T) {
	a := arena.New(0)

	// Bytes are raw and unframed at top level, and unlike strings they may
	// contain arbitrary non-UTF-8 data.
	input := []byte{0xff, 0x00, 0xfe}
	buf, err := Encode(BytesValue(input))
	require.NoError(t, err)
	assert.Equal(t, input, buf)

	v, err := Decode[[]byte](buf, a, &BorrowedBytesState{})
	require.NoError(t, err)
	assert.Equal(t, input, v)
}

func TestTopLevelBytesOwned(t *testing.T) {
	a := arena.New(0)

	input := []byte{1, 2, 3}
	v, err := Decode[[]byte](input, a, &OwnedBytesState{})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)

	// The owned representation survives mutation of the input buffer.
	input[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, v)
}

func TestNestedBytesFramed(t *testing.T) {
	enc := &encoder{}
	fe := &fieldEncoder{outer: enc}
	require.NoError(t, fe.EncodeBytes([]byte{0xff, 0x00, 0x01}))
	require.NoError(t, fe.EncodeUint32(7))

	want := []byte{3, 0, 0, 0, 0xff, 0x00, 0x01, 7, 0, 0, 0}
	require.Equal(t, want, enc.buf)

	a := arena.New(0)
	dec := &decoder{buf: enc.buf, arena: a}
	fd := &fieldDecoder{outer: dec}

	b, err := fd.DecodeOwnedBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0x00, 0x01}, b)

	v, err := fd.DecodeUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestCoinRoundTrip(t *testing.T) {
	coin := Coin{Denom: "uatom", Amount: schema.Uint128From64(1234567890)}
	a := arena.New(0)

	buf, err := Encode(coin)
	require.NoError(t, err)

	// Field 0 is framed in nested context: a 4-byte length prefix followed
	// by the raw denom bytes. Field 1 is the fixed 16-byte amount.
	want := []byte{5, 0, 0, 0}
	want = append(want, "uatom"...)
	var amount [16]byte
	schema.Uint128From64(1234567890).PutLittleEndian(amount[:])
	want = append(want, amount[:]...)
	require.Equal(t, want, buf)

	decoded, err := Decode[Coin](buf, a, &coinState{})
	require.NoError(t, err)
	assert.Equal(t, coin, decoded)
}

func TestCoinListRoundTrip(t *testing.T) {
	coins := []Coin{
		{Denom: "uatom", Amount: schema.Uint128From64(1234567890)},
		{Denom: "foo", Amount: schema.Uint128From64(9876543210)},
	}
	a := arena.New(0)

	buf, err := Encode(SliceValue[Coin](coins))
	require.NoError(t, err)

	// Top-level list: 4-byte element count, then each element framed.
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[:4]))

	state := &ListState[Coin]{NewElement: func() State[Coin] { return &coinState{} }}
	decoded, err := Decode[[]Coin](buf, a, state)
	require.NoError(t, err)
	assert.Equal(t, coins, decoded)
}

func TestEmptyListRoundTrip(t *testing.T) {
	a := arena.New(0)

	buf, err := Encode(SliceValue[Coin](nil))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)

	state := &ListState[Coin]{NewElement: func() State[Coin] { return &coinState{} }}
	decoded, err := Decode[[]Coin](buf, a, state)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestListCountExceedsBuffer(t *testing.T) {
	a := arena.New(0)
	newState := func() *ListState[string] {
		return &ListState[string]{NewElement: func() State[string] { return &OwnedStringState{} }}
	}

	// A count of 0xffffffff with nothing after it must come back as an
	// error, not as an attempted multi-gigabyte allocation.
	_, err := Decode[[]string]([]byte{0xff, 0xff, 0xff, 0xff}, a, newState())
	assert.ErrorIs(t, err, ErrOutOfData)

	// Same for a modestly inflated count with too few element bytes.
	_, err = Decode[[]string]([]byte{10, 0, 0, 0, 'a'}, a, newState())
	assert.ErrorIs(t, err, ErrOutOfData)
}

func TestCoinTruncationNeverSucceeds(t *testing.T) {
	coin := Coin{Denom: "uatom", Amount: schema.Uint128From64(1234567890)}
	buf, err := Encode(coin)
	require.NoError(t, err)

	for n := 1; n < len(buf); n++ {
		a := arena.New(0)
		_, err := Decode[Coin](buf[:n], a, &coinState{})
		require.Error(t, err, "prefix of %d bytes decoded successfully", n)
		ok := errors.Is(err, ErrOutOfData) || errors.Is(err, ErrInvalidData)
		assert.True(t, ok, "prefix of %d bytes: unexpected error %v", n, err)
	}
}

func TestUnknownFieldNumber(t *testing.T) {
	// A struct type with more fields than the visitor knows about: the
	// visitor's default branch must surface ErrUnknownFieldNumber.
	threeFieldType := &schema.StructType{
		Name: "Wide",
		Fields: []schema.Field{
			{Name: "denom", Kind: schema.KindString},
			{Name: "amount", Kind: schema.KindUint128},
			{Name: "extra", Kind: schema.KindUint32},
		},
	}

	coin := Coin{Denom: "x", Amount: schema.Uint128From64(1)}
	buf, err := Encode(coin)
	require.NoError(t, err)
	buf = append(buf, 0, 0, 0, 0)

	a := arena.New(0)
	dec := &decoder{buf: buf, arena: a}
	err = dec.DecodeStruct(&coinState{}, threeFieldType)
	assert.ErrorIs(t, err, ErrUnknownFieldNumber)
}
