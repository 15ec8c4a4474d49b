package offsets

import "rostermem/internal/common"

// FieldKind is the closed set of field representations the codec can handle.
// Normalization produces exactly one kind per field; the loose string type
// tags of the source document never escape this package.
type FieldKind int

const (
	_ FieldKind = iota // keep zero as an invalid kind

	// KindPacked is an unsigned integer packed into a bit run.
	KindPacked
	// KindEnum is a packed integer indexing an ordered display-string list.
	KindEnum
	// KindASCII is a fixed-capacity single-byte string.
	KindASCII
	// KindUTF16 is a fixed-capacity UTF-16LE string.
	KindUTF16
	// KindFloat32 is an IEEE-754 single.
	KindFloat32
	// KindFloat64 is an IEEE-754 double.
	KindFloat64
)

// String returns a human-readable kind name.
func (k FieldKind) String() string {
	switch k {
	case KindPacked:
		return "packed"
	case KindEnum:
		return "enum"
	case KindASCII:
		return "ascii"
	case KindUTF16:
		return "utf16"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return common.UnknownStr
	}
}

// IsString reports whether the kind is one of the fixed-capacity text kinds.
func (k FieldKind) IsString() bool {
	return k == KindASCII || k == KindUTF16
}

// IsFloat reports whether the kind is one of the IEEE-754 kinds.
func (k FieldKind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// Field is one normalized schema entry: where a value lives inside a record
// and how it is represented.
type Field struct {
	// Category is the schema category label (e.g. "Vitals", "Attributes").
	Category string
	// Name is the display name of the field within its category.
	Name string
	// Offset is the byte offset of the field from the record base (or from
	// the dereferenced pointer when Deref is set).
	Offset int64
	// Kind selects the codec representation.
	Kind FieldKind

	// StartBit is the first bit of a packed run within the byte at Offset (0-7).
	StartBit int
	// Bits is the packed run length in bits. Always > 0 for surviving fields.
	Bits int

	// Capacity is the character capacity for string kinds.
	Capacity int

	// Values is the ordered display-string list for enum kinds.
	Values []string

	// Deref marks a one-level pointer indirection: the codec reads a pointer
	// at record+DerefOffset and applies Offset to it.
	Deref bool
	// DerefOffset is the record-relative offset of the indirection pointer.
	DerefOffset int64

	// RawType preserves the source document's type tag for callers that
	// classify fields (e.g. rating categories).
	RawType string

	// SuperType is the entry-level record table tag, when the document
	// carried one ("Players", "Teams", ...).
	SuperType string
}

// ByteWidth returns the number of bytes a float field occupies.
func (f Field) ByteWidth() int {
	if f.Kind == KindFloat64 {
		return 8
	}

	return 4
}
