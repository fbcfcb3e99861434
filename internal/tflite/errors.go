package tflite

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies lowering failures.
type ErrorKind int

// Lowering failure kinds.
const (
	// UnsupportedParameter: an operator parameter has no TFLite equivalent.
	UnsupportedParameter ErrorKind = iota
	// UnsupportedDataType: the operator's TFLite primitive cannot handle the data type.
	UnsupportedDataType
	// NumericOverflow: a dimension, axis, offset or count does not fit in int32.
	NumericOverflow
	// AxisCardinalityViolation: the operator was given more axes than it supports.
	AxisCardinalityViolation
)

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrUnsupportedParameter     = errors.New("unsupported parameter")
	ErrUnsupportedDataType      = errors.New("unsupported data type")
	ErrNumericOverflow          = errors.New("numeric overflow")
	ErrAxisCardinalityViolation = errors.New("axis cardinality violation")
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedParameter:
		return "UnsupportedParameter"
	case UnsupportedDataType:
		return "UnsupportedDataType"
	case NumericOverflow:
		return "NumericOverflow"
	case AxisCardinalityViolation:
		return "AxisCardinalityViolation"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnsupportedParameter:
		return ErrUnsupportedParameter
	case UnsupportedDataType:
		return ErrUnsupportedDataType
	case NumericOverflow:
		return ErrNumericOverflow
	default:
		return ErrAxisCardinalityViolation
	}
}

// Error reports why an operation could not be lowered.
type Error struct {
	Kind     ErrorKind
	Operator string // Name of the failing operation, e.g. "elu"
	Reason   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Operator == "" {
		return fmt.Sprintf("%s: %s", e.Kind.sentinel(), e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Operator, e.Kind.sentinel(), e.Reason)
}

// Unwrap returns the sentinel matching Kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(kind ErrorKind, operator, format string, args ...any) error {
	return errors.WithStackDepth(&Error{
		Kind:     kind,
		Operator: operator,
		Reason:   fmt.Sprintf(format, args...),
	}, 1)
}
