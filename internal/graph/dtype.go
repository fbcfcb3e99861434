package graph

import "github.com/cockroachdb/errors"

// DataType is the element type of an operand.
type DataType int

// Supported operand data types.
const (
	Float32 DataType = iota
	Float16
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Int8, Uint8:
		return 1
	case Float16, Int16, Uint16:
		return 2
	case Float32, Int32, Uint32:
		return 4
	case Int64, Uint64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether dt is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float16
}

// IsUnsigned reports whether dt is an unsigned integer type.
func (dt DataType) IsUnsigned() bool {
	switch dt {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// ParseDataType converts a name produced by [DataType.String] back to a DataType.
func ParseDataType(s string) (DataType, error) {
	for dt := Float32; dt <= Uint64; dt++ {
		if dt.String() == s {
			return dt, nil
		}
	}
	return 0, errors.Newf("unknown data type %q", s)
}
