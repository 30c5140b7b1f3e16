package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/schema"
)

// encoder is the top-level encoding context, the mirror of decoder. It writes
// forward into a growable buffer; the byte output is identical to what a
// tail-filling writer would produce, which is all the decoder cares about.
type encoder struct {
	buf []byte
}

func (e *encoder) EncodeUint32(v uint32) error {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return nil
}

func (e *encoder) EncodeUint64(v uint64) error {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return nil
}

func (e *encoder) EncodeUint128(v schema.Uint128) error {
	var b [16]byte
	v.PutLittleEndian(b[:])
	e.buf = append(e.buf, b[:]...)
	return nil
}

// EncodeString writes the raw string bytes; at top level the value's extent
// is the buffer's extent and a prefix would be redundant.
func (e *encoder) EncodeString(s string) error {
	e.buf = append(e.buf, s...)
	return nil
}

// EncodeBytes writes the raw bytes, unframed like a top-level string.
func (e *encoder) EncodeBytes(b []byte) error {
	e.buf = append(e.buf, b...)
	return nil
}

func (e *encoder) EncodeStruct(visitor StructEncodeVisitor, structType *schema.StructType) error {
	inner := &fieldEncoder{outer: e}
	for i := range structType.Fields {
		if err := visitor.EncodeField(i, inner); err != nil {
			return fmt.Errorf("struct %s field %q: %w", structType.Name, structType.Fields[i].Name, err)
		}
	}
	return nil
}

func (e *encoder) EncodeList(visitor ListEncodeVisitor) error {
	count := visitor.Len()
	if uint64(count) > math.MaxUint32 {
		return fmt.Errorf("list of %d elements overflows count prefix: %w", count, ErrEncodeUnknown)
	}
	if err := e.EncodeUint32(uint32(count)); err != nil {
		return err
	}
	inner := &fieldEncoder{outer: e}
	for i := 0; i < count; i++ {
		if err := visitor.EncodeElement(i, inner); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}

func (e *encoder) EncodeAccountID(id account.ID) error {
	return e.EncodeUint64(id.Uint64())
}

// fieldEncoder is the nested encoding context: strings, structs, and lists
// get a 4-byte length prefix in front of their top-level encoding.
type fieldEncoder struct {
	outer *encoder
}

func (f *fieldEncoder) EncodeUint32(v uint32) error          { return f.outer.EncodeUint32(v) }
func (f *fieldEncoder) EncodeUint64(v uint64) error          { return f.outer.EncodeUint64(v) }
func (f *fieldEncoder) EncodeUint128(v schema.Uint128) error { return f.outer.EncodeUint128(v) }

func (f *fieldEncoder) writeFramed(payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("value of %d bytes overflows frame prefix: %w", len(payload), ErrEncodeUnknown)
	}
	if err := f.outer.EncodeUint32(uint32(len(payload))); err != nil {
		return err
	}
	f.outer.buf = append(f.outer.buf, payload...)
	return nil
}

func (f *fieldEncoder) EncodeString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("string of %d bytes overflows frame prefix: %w", len(s), ErrEncodeUnknown)
	}
	if err := f.outer.EncodeUint32(uint32(len(s))); err != nil {
		return err
	}
	f.outer.buf = append(f.outer.buf, s...)
	return nil
}

func (f *fieldEncoder) EncodeBytes(b []byte) error {
	return f.writeFramed(b)
}

func (f *fieldEncoder) EncodeStruct(visitor StructEncodeVisitor, structType *schema.StructType) error {
	sub := &encoder{}
	if err := sub.EncodeStruct(visitor, structType); err != nil {
		return err
	}
	return f.writeFramed(sub.buf)
}

func (f *fieldEncoder) EncodeList(visitor ListEncodeVisitor) error {
	sub := &encoder{}
	if err := sub.EncodeList(visitor); err != nil {
		return err
	}
	return f.writeFramed(sub.buf)
}

func (f *fieldEncoder) EncodeAccountID(id account.ID) error {
	return f.outer.EncodeAccountID(id)
}
