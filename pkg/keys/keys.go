package keys

import (
	"github.com/vanir-db/vanir/pkg/arena"
	"github.com/vanir-db/vanir/pkg/codec"
)

// Reader is a shrinking cursor over encoded key bytes.
type Reader struct {
	buf []byte
}

// NewReader wraps input for decoding.
func NewReader(input []byte) *Reader {
	return &Reader{buf: input}
}

func (r *Reader) read(n int) ([]byte, error) {
	if n < 0 || len(r.buf) < n {
		return nil, codec.ErrOutOfData
	}
	b := r.buf[:n:n]
	r.buf = r.buf[n:]
	return b, nil
}

// rest consumes everything that remains.
func (r *Reader) rest() []byte {
	b := r.buf
	r.buf = nil
	return b
}

// Done returns ErrTrailingBytes unless the reader is fully consumed.
func (r *Reader) Done() error {
	if len(r.buf) != 0 {
		return codec.ErrTrailingBytes
	}
	return nil
}

// FieldType is the encode/decode contract for one key field of Go type T.
// Non-terminal operations produce and consume the self-delimiting form;
// terminal operations the run-to-end form used for a tuple's last field.
type FieldType[T any] interface {
	// SizeNonTerminal returns the exact encoded size of v in non-terminal form.
	SizeNonTerminal(v T) int
	// SizeTerminal returns the exact encoded size of v in terminal form.
	SizeTerminal(v T) int

	AppendNonTerminal(dst []byte, v T) ([]byte, error)
	AppendTerminal(dst []byte, v T) ([]byte, error)

	DecodeNonTerminal(r *Reader, a *arena.Arena) (T, error)
	DecodeTerminal(r *Reader, a *arena.Arena) (T, error)
}

// Encode produces the key encoding of v: the terminal form, since a whole key
// runs to the end of its buffer. The destination is allocated once, at the
// exact size reported by SizeTerminal.
func Encode[T any](ft FieldType[T], v T) ([]byte, error) {
	size := ft.SizeTerminal(v)
	dst, err := ft.AppendTerminal(make([]byte, 0, size), v)
	if err != nil {
		return nil, err
	}
	if len(dst) != size {
		return nil, codec.ErrEncodeUnknown
	}
	return dst, nil
}

// Decode decodes a full key from input, asserting that every byte of input
// belongs to the key.
func Decode[T any](ft FieldType[T], input []byte, a *arena.Arena) (T, error) {
	r := NewReader(input)
	v, err := ft.DecodeTerminal(r, a)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := r.Done(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Tuple2 through Tuple4 are the value shapes of multi-field keys.
type Tuple2[A, B any] struct {
	F0 A
	F1 B
}

type Tuple3[A, B, C any] struct {
	F0 A
	F1 B
	F2 C
}

type Tuple4[A, B, C, D any] struct {
	F0 A
	F1 B
	F2 C
	F3 D
}

// Key0 is the zero-arity key; it encodes to zero bytes.
type Key0 struct{}

func (Key0) SizeNonTerminal(struct{}) int { return 0 }
func (Key0) SizeTerminal(struct{}) int    { return 0 }

func (Key0) AppendNonTerminal(dst []byte, _ struct{}) ([]byte, error) { return dst, nil }
func (Key0) AppendTerminal(dst []byte, _ struct{}) ([]byte, error)    { return dst, nil }

func (Key0) DecodeNonTerminal(*Reader, *arena.Arena) (struct{}, error) { return struct{}{}, nil }
func (Key0) DecodeTerminal(*Reader, *arena.Arena) (struct{}, error)    { return struct{}{}, nil }

// Encode produces the key's byte encoding: zero bytes.
func (k Key0) Encode(v struct{}) ([]byte, error) { return Encode[struct{}](k, v) }

// Decode decodes the key, asserting the input is empty.
func (k Key0) Decode(input []byte, a *arena.Arena) (struct{}, error) {
	return Decode[struct{}](k, input, a)
}

// Key1 is a single-field key. The field is simultaneously first and last, so
// the key encodes purely in terminal form.
type Key1[A any] struct {
	A FieldType[A]
}

func (k Key1[A]) SizeNonTerminal(v A) int { return k.A.SizeNonTerminal(v) }
func (k Key1[A]) SizeTerminal(v A) int    { return k.A.SizeTerminal(v) }

func (k Key1[A]) AppendNonTerminal(dst []byte, v A) ([]byte, error) {
	return k.A.AppendNonTerminal(dst, v)
}

func (k Key1[A]) AppendTerminal(dst []byte, v A) ([]byte, error) {
	return k.A.AppendTerminal(dst, v)
}

func (k Key1[A]) DecodeNonTerminal(r *Reader, a *arena.Arena) (A, error) {
	return k.A.DecodeNonTerminal(r, a)
}

func (k Key1[A]) DecodeTerminal(r *Reader, a *arena.Arena) (A, error) {
	return k.A.DecodeTerminal(r, a)
}

// Encode produces the key's byte encoding.
func (k Key1[A]) Encode(v A) ([]byte, error) { return Encode[A](k, v) }

// Decode decodes a full key, asserting every input byte belongs to it.
func (k Key1[A]) Decode(input []byte, a *arena.Arena) (A, error) {
	return Decode[A](k, input, a)
}

// Key2 is a two-field key. As a FieldType itself, a Key2 can be used as a
// non-terminal prefix fragment of a larger key.
type Key2[A, B any] struct {
	A FieldType[A]
	B FieldType[B]
}

func (k Key2[A, B]) SizeNonTerminal(v Tuple2[A, B]) int {
	return k.A.SizeNonTerminal(v.F0) + k.B.SizeNonTerminal(v.F1)
}

func (k Key2[A, B]) SizeTerminal(v Tuple2[A, B]) int {
	return k.A.SizeNonTerminal(v.F0) + k.B.SizeTerminal(v.F1)
}

func (k Key2[A, B]) AppendNonTerminal(dst []byte, v Tuple2[A, B]) ([]byte, error) {
	dst, err := k.A.AppendNonTerminal(dst, v.F0)
	if err != nil {
		return nil, err
	}
	return k.B.AppendNonTerminal(dst, v.F1)
}

func (k Key2[A, B]) AppendTerminal(dst []byte, v Tuple2[A, B]) ([]byte, error) {
	dst, err := k.A.AppendNonTerminal(dst, v.F0)
	if err != nil {
		return nil, err
	}
	return k.B.AppendTerminal(dst, v.F1)
}

func (k Key2[A, B]) DecodeNonTerminal(r *Reader, a *arena.Arena) (Tuple2[A, B], error) {
	var out Tuple2[A, B]
	var err error
	if out.F0, err = k.A.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F1, err = k.B.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	return out, nil
}

func (k Key2[A, B]) DecodeTerminal(r *Reader, a *arena.Arena) (Tuple2[A, B], error) {
	var out Tuple2[A, B]
	var err error
	if out.F0, err = k.A.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F1, err = k.B.DecodeTerminal(r, a); err != nil {
		return out, err
	}
	return out, nil
}

// Encode produces the key's byte encoding.
func (k Key2[A, B]) Encode(v Tuple2[A, B]) ([]byte, error) {
	return Encode[Tuple2[A, B]](k, v)
}

// Decode decodes a full key, asserting every input byte belongs to it.
func (k Key2[A, B]) Decode(input []byte, a *arena.Arena) (Tuple2[A, B], error) {
	return Decode[Tuple2[A, B]](k, input, a)
}

// Key3 is a three-field key.
type Key3[A, B, C any] struct {
	A FieldType[A]
	B FieldType[B]
	C FieldType[C]
}

func (k Key3[A, B, C]) SizeNonTerminal(v Tuple3[A, B, C]) int {
	return k.A.SizeNonTerminal(v.F0) + k.B.SizeNonTerminal(v.F1) + k.C.SizeNonTerminal(v.F2)
}

func (k Key3[A, B, C]) SizeTerminal(v Tuple3[A, B, C]) int {
	return k.A.SizeNonTerminal(v.F0) + k.B.SizeNonTerminal(v.F1) + k.C.SizeTerminal(v.F2)
}

func (k Key3[A, B, C]) AppendNonTerminal(dst []byte, v Tuple3[A, B, C]) ([]byte, error) {
	dst, err := k.A.AppendNonTerminal(dst, v.F0)
	if err != nil {
		return nil, err
	}
	if dst, err = k.B.AppendNonTerminal(dst, v.F1); err != nil {
		return nil, err
	}
	return k.C.AppendNonTerminal(dst, v.F2)
}

func (k Key3[A, B, C]) AppendTerminal(dst []byte, v Tuple3[A, B, C]) ([]byte, error) {
	dst, err := k.A.AppendNonTerminal(dst, v.F0)
	if err != nil {
		return nil, err
	}
	if dst, err = k.B.AppendNonTerminal(dst, v.F1); err != nil {
		return nil, err
	}
	return k.C.AppendTerminal(dst, v.F2)
}

func (k Key3[A, B, C]) DecodeNonTerminal(r *Reader, a *arena.Arena) (Tuple3[A, B, C], error) {
	var out Tuple3[A, B, C]
	var err error
	if out.F0, err = k.A.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F1, err = k.B.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F2, err = k.C.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	return out, nil
}

func (k Key3[A, B, C]) DecodeTerminal(r *Reader, a *arena.Arena) (Tuple3[A, B, C], error) {
	var out Tuple3[A, B, C]
	var err error
	if out.F0, err = k.A.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F1, err = k.B.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F2, err = k.C.DecodeTerminal(r, a); err != nil {
		return out, err
	}
	return out, nil
}

// Encode produces the key's byte encoding.
func (k Key3[A, B, C]) Encode(v Tuple3[A, B, C]) ([]byte, error) {
	return Encode[Tuple3[A, B, C]](k, v)
}

// Decode decodes a full key, asserting every input byte belongs to it.
func (k Key3[A, B, C]) Decode(input []byte, a *arena.Arena) (Tuple3[A, B, C], error) {
	return Decode[Tuple3[A, B, C]](k, input, a)
}

// Key4 is a four-field key, the largest supported arity.
type Key4[A, B, C, D any] struct {
	A FieldType[A]
	B FieldType[B]
	C FieldType[C]
	D FieldType[D]
}

func (k Key4[A, B, C, D]) SizeNonTerminal(v Tuple4[A, B, C, D]) int {
	return k.A.SizeNonTerminal(v.F0) + k.B.SizeNonTerminal(v.F1) +
		k.C.SizeNonTerminal(v.F2) + k.D.SizeNonTerminal(v.F3)
}

func (k Key4[A, B, C, D]) SizeTerminal(v Tuple4[A, B, C, D]) int {
	return k.A.SizeNonTerminal(v.F0) + k.B.SizeNonTerminal(v.F1) +
		k.C.SizeNonTerminal(v.F2) + k.D.SizeTerminal(v.F3)
}

func (k Key4[A, B, C, D]) AppendNonTerminal(dst []byte, v Tuple4[A, B, C, D]) ([]byte, error) {
	dst, err := k.A.AppendNonTerminal(dst, v.F0)
	if err != nil {
		return nil, err
	}
	if dst, err = k.B.AppendNonTerminal(dst, v.F1); err != nil {
		return nil, err
	}
	if dst, err = k.C.AppendNonTerminal(dst, v.F2); err != nil {
		return nil, err
	}
	return k.D.AppendNonTerminal(dst, v.F3)
}

func (k Key4[A, B, C, D]) AppendTerminal(dst []byte, v Tuple4[A, B, C, D]) ([]byte, error) {
	dst, err := k.A.AppendNonTerminal(dst, v.F0)
	if err != nil {
		return nil, err
	}
	if dst, err = k.B.AppendNonTerminal(dst, v.F1); err != nil {
		return nil, err
	}
	if dst, err = k.C.AppendNonTerminal(dst, v.F2); err != nil {
		return nil, err
	}
	return k.D.AppendTerminal(dst, v.F3)
}

func (k Key4[A, B, C, D]) DecodeNonTerminal(r *Reader, a *arena.Arena) (Tuple4[A, B, C, D], error) {
	var out Tuple4[A, B, C, D]
	var err error
	if out.F0, err = k.A.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F1, err = k.B.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F2, err = k.C.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F3, err = k.D.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	return out, nil
}

func (k Key4[A, B, C, D]) DecodeTerminal(r *Reader, a *arena.Arena) (Tuple4[A, B, C, D], error) {
	var out Tuple4[A, B, C, D]
	var err error
	if out.F0, err = k.A.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F1, err = k.B.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F2, err = k.C.DecodeNonTerminal(r, a); err != nil {
		return out, err
	}
	if out.F3, err = k.D.DecodeTerminal(r, a); err != nil {
		return out, err
	}
	return out, nil
}

// Encode produces the key's byte encoding.
func (k Key4[A, B, C, D]) Encode(v Tuple4[A, B, C, D]) ([]byte, error) {
	return Encode[Tuple4[A, B, C, D]](k, v)
}

// Decode decodes a full key, asserting every input byte belongs to it.
func (k Key4[A, B, C, D]) Decode(input []byte, a *arena.Arena) (Tuple4[A, B, C, D], error) {
	return Decode[Tuple4[A, B, C, D]](k, input, a)
}
