package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/vanir-db/vanir/pkg/account"
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/schema"
)

// decoder is the top-level decoding context: a shrinking cursor over one
// buffer whose extent is known to equal the value's extent.
type decoder struct {
	buf   []byte
	arena *arena.Arena
}

// read consumes exactly n bytes from the cursor.
func (d *decoder) read(n int) ([]byte, error) {
	if n < 0 || len(d.buf) < n {
		return nil, ErrOutOfData
	}
	b := d.buf[:n:n]
	d.buf = d.buf[n:]
	return b, nil
}

func (d *decoder) DecodeUint32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) DecodeUint64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *decoder) DecodeUint128() (schema.Uint128, error) {
	b, err := d.read(16)
	if err != nil {
		return schema.Uint128{}, err
	}
	return schema.Uint128LittleEndian(b), nil
}

// DecodeBorrowedString consumes the entire remaining buffer; at top level the
// caller already knows the buffer's extent equals the string's extent.
func (d *decoder) DecodeBorrowedString() (string, error) {
	b := d.buf
	d.buf = nil
	if !utf8.Valid(b) {
		return "", ErrInvalidData
	}
	return borrowString(b), nil
}

func (d *decoder) DecodeOwnedString() (string, error) {
	b := d.buf
	d.buf = nil
	if !utf8.Valid(b) {
		return "", ErrInvalidData
	}
	return d.arena.NewString(b), nil
}

// DecodeBorrowedBytes consumes the entire remaining buffer, like a top-level
// string but without the UTF-8 requirement.
func (d *decoder) DecodeBorrowedBytes() ([]byte, error) {
	b := d.buf
	d.buf = nil
	return b, nil
}

func (d *decoder) DecodeOwnedBytes() ([]byte, error) {
	b := d.buf
	d.buf = nil
	return d.arena.Copy(b), nil
}

func (d *decoder) DecodeStruct(visitor StructDecodeVisitor, structType *schema.StructType) error {
	inner := &fieldDecoder{outer: d}
	for i := range structType.Fields {
		if err := visitor.DecodeField(i, inner); err != nil {
			return fmt.Errorf("struct %s field %q: %w", structType.Name, structType.Fields[i].Name, err)
		}
	}
	return nil
}

func (d *decoder) DecodeList(visitor ListDecodeVisitor) error {
	count, err := d.DecodeUint32()
	if err != nil {
		return err
	}
	// Every element consumes at least one byte, so a count exceeding the
	// remaining buffer can never decode. Reject it here, before InitList
	// pre-sizes anything from an attacker-controlled number.
	if uint64(count) > uint64(len(d.buf)) {
		return ErrOutOfData
	}
	if err := visitor.InitList(int(count), d.arena); err != nil {
		return err
	}
	inner := &fieldDecoder{outer: d}
	for i := 0; i < int(count); i++ {
		if err := visitor.NextElement(inner); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}

func (d *decoder) DecodeAccountID() (account.ID, error) {
	v, err := d.DecodeUint64()
	if err != nil {
		return 0, err
	}
	return account.NewID(v), nil
}

func (d *decoder) Arena() *arena.Arena {
	return d.arena
}

// fieldDecoder is the nested decoding context for values embedded among
// siblings: strings, structs, and lists carry a 4-byte length prefix here so
// the cursor can skip exactly past them. Scalars have static width and pass
// straight through.
type fieldDecoder struct {
	outer *decoder
}

func (f *fieldDecoder) DecodeUint32() (uint32, error)          { return f.outer.DecodeUint32() }
func (f *fieldDecoder) DecodeUint64() (uint64, error)          { return f.outer.DecodeUint64() }
func (f *fieldDecoder) DecodeUint128() (schema.Uint128, error) { return f.outer.DecodeUint128() }

func (f *fieldDecoder) readFramed() ([]byte, error) {
	size, err := f.outer.DecodeUint32()
	if err != nil {
		return nil, err
	}
	return f.outer.read(int(size))
}

func (f *fieldDecoder) DecodeBorrowedString() (string, error) {
	b, err := f.readFramed()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidData
	}
	return borrowString(b), nil
}

func (f *fieldDecoder) DecodeOwnedString() (string, error) {
	b, err := f.readFramed()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidData
	}
	return f.outer.arena.NewString(b), nil
}

func (f *fieldDecoder) DecodeBorrowedBytes() ([]byte, error) {
	return f.readFramed()
}

func (f *fieldDecoder) DecodeOwnedBytes() ([]byte, error) {
	b, err := f.readFramed()
	if err != nil {
		return nil, err
	}
	return f.outer.arena.Copy(b), nil
}

// DecodeStruct slices the framed payload as a private sub-buffer and recurses
// into top-level struct decoding against it.
func (f *fieldDecoder) DecodeStruct(visitor StructDecodeVisitor, structType *schema.StructType) error {
	b, err := f.readFramed()
	if err != nil {
		return err
	}
	sub := &decoder{buf: b, arena: f.outer.arena}
	return sub.DecodeStruct(visitor, structType)
}

func (f *fieldDecoder) DecodeList(visitor ListDecodeVisitor) error {
	b, err := f.readFramed()
	if err != nil {
		return err
	}
	sub := &decoder{buf: b, arena: f.outer.arena}
	return sub.DecodeList(visitor)
}

func (f *fieldDecoder) DecodeAccountID() (account.ID, error) {
	return f.outer.DecodeAccountID()
}

func (f *fieldDecoder) Arena() *arena.Arena {
	return f.outer.arena
}

// borrowString views b as a string without copying. The result aliases b and
// shares its lifetime.
func borrowString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
