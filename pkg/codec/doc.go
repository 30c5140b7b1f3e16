// Package codec implements the schema-driven binary value codec for Vanir's
// account/state data. It serializes typed values (scalars, strings, nested
// structs, lists) into a compact binary form and decodes them back through a
// visitor protocol, without a preliminary parse pass and without copying
// borrowed data.
//
// # Wire Format
//
// Integers are little-endian and fixed width: 4 bytes for uint32, 8 bytes for
// uint64 and account IDs, 16 bytes for uint128. Scalars are never length
// prefixed; their width is known from the schema.
//
// Variable-length values follow a framing discipline with two contexts:
//
//   - Top-level: the value owns the entire buffer. A string is its raw UTF-8
//     bytes with no prefix. A list starts with a 4-byte little-endian element
//     count. A struct has no prefix of its own.
//   - Nested (a struct field or list element): a string, struct, or list is
//     preceded by a 4-byte little-endian byte-length prefix; the payload is
//     the value's top-level encoding. The prefix is what lets the cursor skip
//     past a variable-length field to its siblings.
//
// Struct fields always decode in nested context, in schema-declared order.
//
// # Decode Protocol
//
// Decoding is schema-directed and visitor-based. A value type supplies a
// State: VisitDecode populates the state over borrowed cursor data without
// allocating, and Finish converts the state into the finished value,
// performing any arena allocation owed to owned fields. Failures abort the
// whole decode; no partially-finished value escapes.
//
// Borrowed strings are zero-copy views over the input buffer and must not
// outlive it. Owned strings are copied into the caller's arena and live until
// the arena is reset.
//
// # Errors
//
// All failures are ordinary error values: ErrOutOfData, ErrInvalidData, and
// ErrUnknownFieldNumber on the decode side, ErrEncodeUnknown on the encode
// side. There is no recovery or resynchronization; a framing violation
// corrupts everything after it.
package codec
