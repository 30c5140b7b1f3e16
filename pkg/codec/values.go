package codec

import (
	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/schema"
)

// Encodable wrappers for the primitive kinds, for values that are an entire
// top-level payload on their own.

// Uint32Value encodes a uint32.
type Uint32Value uint32

func (v Uint32Value) EncodeValue(enc Encoder) error { return enc.EncodeUint32(uint32(v)) }

// Uint64Value encodes a uint64.
type Uint64Value uint64

func (v Uint64Value) EncodeValue(enc Encoder) error { return enc.EncodeUint64(uint64(v)) }

// Uint128Value encodes a schema.Uint128.
type Uint128Value schema.Uint128

func (v Uint128Value) EncodeValue(enc Encoder) error {
	return enc.EncodeUint128(schema.Uint128(v))
}

// StringValue encodes a string.
type StringValue string

func (v StringValue) EncodeValue(enc Encoder) error { return enc.EncodeString(string(v)) }

// BytesValue encodes a byte slice.
type BytesValue []byte

func (v BytesValue) EncodeValue(enc Encoder) error { return enc.EncodeBytes(v) }

// AccountIDValue encodes an account.ID.
type AccountIDValue account.ID

func (v AccountIDValue) EncodeValue(enc Encoder) error {
	return enc.EncodeAccountID(account.ID(v))
}

// SliceValue encodes a slice of encodable values as a list.
type SliceValue[T Encodable] []T

func (v SliceValue[T]) EncodeValue(enc Encoder) error { return enc.EncodeList(v) }

func (v SliceValue[T]) Len() int { return len(v) }

func (v SliceValue[T]) EncodeElement(index int, enc Encoder) error {
	return v[index].EncodeValue(enc)
}
