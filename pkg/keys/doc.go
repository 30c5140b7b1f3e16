// Package keys encodes composite store keys of up to four fields so that the
// byte-lexicographic order of the encodings matches field-by-field order of
// the tuples. Ordered iteration in the state store depends on this property.
//
// Every field but the last is written in its non-terminal form, which is
// self-delimiting: integers are fixed-width big-endian, strings are raw UTF-8
// followed by a 0x00 terminator (strings containing NUL are rejected). The
// last field is written in terminal form, with no delimiter at all: it runs
// to the end of the key, which is why decoding asserts nothing is left over.
//
// The terminal/non-terminal split is positional, not intrinsic to a type: a
// whole composite key can itself serve as a non-terminal prefix field of a
// larger key.
//
// The total encoded size of a key is computed exactly before any byte is
// written, so the destination is allocated once at final size.
package keys
