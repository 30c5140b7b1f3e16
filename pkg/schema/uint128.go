package schema

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer, stored as two 64-bit halves.
// The zero value is the number zero.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128From64 converts a uint64 into a Uint128.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether u is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Cmp compares u and v and returns -1, 0, or +1.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi != v.Hi:
		if u.Hi < v.Hi {
			return -1
		}
		return 1
	case u.Lo != v.Lo:
		if u.Lo < v.Lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Add returns u+v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// PutLittleEndian writes the 16-byte little-endian encoding into b.
// b must be at least 16 bytes long.
func (u Uint128) PutLittleEndian(b []byte) {
	binary.LittleEndian.PutUint64(b[0:8], u.Lo)
	binary.LittleEndian.PutUint64(b[8:16], u.Hi)
}

// PutBigEndian writes the 16-byte big-endian encoding into b.
// b must be at least 16 bytes long.
func (u Uint128) PutBigEndian(b []byte) {
	binary.BigEndian.PutUint64(b[0:8], u.Hi)
	binary.BigEndian.PutUint64(b[8:16], u.Lo)
}

// Uint128LittleEndian reads a Uint128 from the first 16 bytes of b.
func Uint128LittleEndian(b []byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Uint128BigEndian reads a Uint128 from the first 16 bytes of b.
func Uint128BigEndian(b []byte) Uint128 {
	return Uint128{
		Hi: binary.BigEndian.Uint64(b[0:8]),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}
}

// ParseUint128 parses a base-10 string into a Uint128.
func ParseUint128(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, fmt.Errorf("parsing uint128: empty string")
	}
	var v Uint128
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("parsing uint128 %q: invalid digit %q", s, c)
		}
		// v = v*10 + digit, tracking bits carried past the high word.
		carryHi, lo := bits.Mul64(v.Lo, 10)
		overflow, hi := bits.Mul64(v.Hi, 10)
		hi, carry := bits.Add64(hi, carryHi, 0)
		overflow += carry
		lo, carry = bits.Add64(lo, uint64(c-'0'), 0)
		hi, carry = bits.Add64(hi, 0, carry)
		overflow += carry
		if overflow != 0 {
			return Uint128{}, fmt.Errorf("parsing uint128 %q: value overflows 128 bits", s)
		}
		v = Uint128{Hi: hi, Lo: lo}
	}
	return v, nil
}

// String formats u in hexadecimal.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("0x%x", u.Lo)
	}
	return fmt.Sprintf("0x%x%016x", u.Hi, u.Lo)
}
