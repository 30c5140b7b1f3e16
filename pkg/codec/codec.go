package codec

import (
	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/schema"
)

// Decoder is the operation set exposed to decode visitors. Every method
// consumes exactly the bytes its value occupies under the current framing
// context and leaves the cursor at the next value.
type Decoder interface {
	DecodeUint32() (uint32, error)
	DecodeUint64() (uint64, error)
	DecodeUint128() (schema.Uint128, error)

	// DecodeBorrowedString returns a zero-copy view over the input buffer.
	// The result must not outlive the buffer.
	DecodeBorrowedString() (string, error)

	// DecodeOwnedString copies the string data into the decode arena. The
	// result lives until the arena is reset.
	DecodeOwnedString() (string, error)

	// DecodeBorrowedBytes returns a zero-copy view over the input buffer.
	// The result must not outlive the buffer.
	DecodeBorrowedBytes() ([]byte, error)

	// DecodeOwnedBytes copies the byte data into the decode arena.
	DecodeOwnedBytes() ([]byte, error)

	// DecodeStruct visits structType's fields in declared order, invoking
	// visitor.DecodeField for each index.
	DecodeStruct(visitor StructDecodeVisitor, structType *schema.StructType) error

	// DecodeList reads the element count, calls visitor.InitList once, then
	// visitor.NextElement exactly count times in stored order.
	DecodeList(visitor ListDecodeVisitor) error

	DecodeAccountID() (account.ID, error)

	// Arena returns the arena backing owned decode output.
	Arena() *arena.Arena
}

// StructDecodeVisitor assembles a struct value field by field. The visitor
// knows, per index, which decode operation to call; an index outside its
// schema's range must fail with ErrUnknownFieldNumber.
type StructDecodeVisitor interface {
	DecodeField(index int, dec Decoder) error
}

// ListDecodeVisitor accumulates list elements.
type ListDecodeVisitor interface {
	// InitList is called once with the element count so the visitor can
	// pre-size its target container, backed by the given arena.
	InitList(count int, a *arena.Arena) error

	// NextElement decodes one element under nested-context framing.
	NextElement(dec Decoder) error
}

// Encoder is the mirror of Decoder. It must produce exactly the bytes the
// decoder's framing discipline expects to consume.
type Encoder interface {
	EncodeUint32(v uint32) error
	EncodeUint64(v uint64) error
	EncodeUint128(v schema.Uint128) error
	EncodeString(s string) error
	EncodeBytes(b []byte) error
	EncodeStruct(visitor StructEncodeVisitor, structType *schema.StructType) error
	EncodeList(visitor ListEncodeVisitor) error
	EncodeAccountID(id account.ID) error
}

// StructEncodeVisitor emits a struct value field by field.
type StructEncodeVisitor interface {
	EncodeField(index int, enc Encoder) error
}

// ListEncodeVisitor emits list elements in order.
type ListEncodeVisitor interface {
	Len() int
	EncodeElement(index int, enc Encoder) error
}

// Encodable is implemented by values that know their own schema encoding.
type Encodable interface {
	EncodeValue(enc Encoder) error
}

// State is a value's intermediate decode state: VisitDecode populates it
// purely over borrowed cursor data, Finish converts it into the finished
// value, performing any arena allocation owed to owned fields. The split
// keeps failed decodes from leaving partially-allocated values behind.
type State[T any] interface {
	VisitDecode(dec Decoder) error
	Finish(a *arena.Arena) (T, error)
}

// Decode decodes a top-level value from input using the given decode state.
// Owned output is allocated from a; borrowed output is a view over input and
// must not outlive it.
func Decode[T any](input []byte, a *arena.Arena, state State[T]) (T, error) {
	dec := &decoder{buf: input, arena: a}
	if err := state.VisitDecode(dec); err != nil {
		var zero T
		return zero, err
	}
	return state.Finish(a)
}

// Encode produces the top-level encoding of v.
func Encode(v Encodable) ([]byte, error) {
	enc := &encoder{}
	if err := v.EncodeValue(enc); err != nil {
		return nil, err
	}
	return enc.buf, nil
}
