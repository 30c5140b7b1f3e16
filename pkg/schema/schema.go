// Package schema describes the value types understood by the Vanir binary
// codec. A StructType is an ordered list of Field descriptors; it is built
// once per value type, registered at program initialization, and read-only
// afterwards. The codec walks these descriptions to drive visitation, it
// never reflects over Go types.
package schema

// Kind is the semantic type tag of a field.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUint32
	KindUint64
	KindUint128
	KindString
	KindBytes
	KindAccountID
	KindStruct
	KindList
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindUint128:
		return "uint128"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindAccountID:
		return "account_id"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Field describes a single struct field.
type Field struct {
	// Name is the field name as declared in the schema.
	Name string
	// Kind is the field's semantic type tag.
	Kind Kind
	// Elem is the element kind when Kind is KindList.
	Elem Kind
	// Ref names the referenced struct type when Kind is KindStruct, or when
	// Kind is KindList and Elem is KindStruct.
	Ref string
}

// StructType is an immutable description of a struct value: its name and its
// fields in declared order. Field order equals the field index order used by
// the codec's visitor contract and is never reordered.
type StructType struct {
	Name   string
	Fields []Field
}

// FieldCount returns the number of declared fields.
func (st *StructType) FieldCount() int {
	return len(st.Fields)
}
