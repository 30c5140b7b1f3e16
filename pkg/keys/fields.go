package keys

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/codec"
	"github.com/vanir-db/vanir/pkg/schema"
)

// Key-field integers are big-endian so that byte order matches numeric order.
// This is the opposite of the value codec, which is little-endian; keys are
// the only place where byte-lexicographic comparison carries meaning.

// Uint32Field encodes a uint32 key field as 4 big-endian bytes.
type Uint32Field struct{}

func (Uint32Field) SizeNonTerminal(uint32) int { return 4 }
func (Uint32Field) SizeTerminal(uint32) int    { return 4 }

func (Uint32Field) AppendNonTerminal(dst []byte, v uint32) ([]byte, error) {
	return binary.BigEndian.AppendUint32(dst, v), nil
}

func (f Uint32Field) AppendTerminal(dst []byte, v uint32) ([]byte, error) {
	return f.AppendNonTerminal(dst, v)
}

func (Uint32Field) DecodeNonTerminal(r *Reader, _ *arena.Arena) (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (f Uint32Field) DecodeTerminal(r *Reader, a *arena.Arena) (uint32, error) {
	return f.DecodeNonTerminal(r, a)
}

// Uint64Field encodes a uint64 key field as 8 big-endian bytes.
type Uint64Field struct{}

func (Uint64Field) SizeNonTerminal(uint64) int { return 8 }
func (Uint64Field) SizeTerminal(uint64) int    { return 8 }

func (Uint64Field) AppendNonTerminal(dst []byte, v uint64) ([]byte, error) {
	return binary.BigEndian.AppendUint64(dst, v), nil
}

func (f Uint64Field) AppendTerminal(dst []byte, v uint64) ([]byte, error) {
	return f.AppendNonTerminal(dst, v)
}

func (Uint64Field) DecodeNonTerminal(r *Reader, _ *arena.Arena) (uint64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (f Uint64Field) DecodeTerminal(r *Reader, a *arena.Arena) (uint64, error) {
	return f.DecodeNonTerminal(r, a)
}

// Uint128Field encodes a schema.Uint128 key field as 16 big-endian bytes.
type Uint128Field struct{}

func (Uint128Field) SizeNonTerminal(schema.Uint128) int { return 16 }
func (Uint128Field) SizeTerminal(schema.Uint128) int    { return 16 }

func (Uint128Field) AppendNonTerminal(dst []byte, v schema.Uint128) ([]byte, error) {
	var b [16]byte
	v.PutBigEndian(b[:])
	return append(dst, b[:]...), nil
}

func (f Uint128Field) AppendTerminal(dst []byte, v schema.Uint128) ([]byte, error) {
	return f.AppendNonTerminal(dst, v)
}

func (Uint128Field) DecodeNonTerminal(r *Reader, _ *arena.Arena) (schema.Uint128, error) {
	b, err := r.read(16)
	if err != nil {
		return schema.Uint128{}, err
	}
	return schema.Uint128BigEndian(b), nil
}

func (f Uint128Field) DecodeTerminal(r *Reader, a *arena.Arena) (schema.Uint128, error) {
	return f.DecodeNonTerminal(r, a)
}

// AccountIDField encodes an account.ID key field as 8 big-endian bytes.
type AccountIDField struct{}

func (AccountIDField) SizeNonTerminal(account.ID) int { return 8 }
func (AccountIDField) SizeTerminal(account.ID) int    { return 8 }

func (AccountIDField) AppendNonTerminal(dst []byte, v account.ID) ([]byte, error) {
	return binary.BigEndian.AppendUint64(dst, v.Uint64()), nil
}

func (f AccountIDField) AppendTerminal(dst []byte, v account.ID) ([]byte, error) {
	return f.AppendNonTerminal(dst, v)
}

func (AccountIDField) DecodeNonTerminal(r *Reader, _ *arena.Arena) (account.ID, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return account.NewID(binary.BigEndian.Uint64(b)), nil
}

func (f AccountIDField) DecodeTerminal(r *Reader, a *arena.Arena) (account.ID, error) {
	return f.DecodeNonTerminal(r, a)
}

// StringField encodes a string key field. The non-terminal form is the raw
// UTF-8 bytes followed by a 0x00 terminator, which keeps the encoding both
// self-delimiting and order-preserving; strings containing NUL are rejected.
// The terminal form is the raw bytes with no terminator.
//
// Decoded strings are zero-copy views over the key buffer unless Owned is
// set, in which case they are copied into the decode arena.
type StringField struct {
	Owned bool
}

func (StringField) SizeNonTerminal(v string) int { return len(v) + 1 }
func (StringField) SizeTerminal(v string) int    { return len(v) }

func (StringField) AppendNonTerminal(dst []byte, v string) ([]byte, error) {
	if strings.IndexByte(v, 0) >= 0 {
		return nil, codec.ErrInvalidData
	}
	dst = append(dst, v...)
	return append(dst, 0), nil
}

func (StringField) AppendTerminal(dst []byte, v string) ([]byte, error) {
	if strings.IndexByte(v, 0) >= 0 {
		return nil, codec.ErrInvalidData
	}
	return append(dst, v...), nil
}

func (f StringField) DecodeNonTerminal(r *Reader, a *arena.Arena) (string, error) {
	i := bytes.IndexByte(r.buf, 0)
	if i < 0 {
		return "", codec.ErrOutOfData
	}
	b, err := r.read(i)
	if err != nil {
		return "", err
	}
	if _, err := r.read(1); err != nil {
		return "", err
	}
	return f.finish(b, a)
}

func (f StringField) DecodeTerminal(r *Reader, a *arena.Arena) (string, error) {
	return f.finish(r.rest(), a)
}

func (f StringField) finish(b []byte, a *arena.Arena) (string, error) {
	if !utf8.Valid(b) {
		return "", codec.ErrInvalidData
	}
	if f.Owned {
		return a.NewString(b), nil
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}
