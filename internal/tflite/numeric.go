package tflite

import (
	"github.com/born-ml/tflgen/internal/graph"
)

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// checkedCast converts v to To, reporting false when the value does not
// survive the round trip.
func checkedCast[To, From integer](v From) (To, bool) {
	to := To(v)
	if From(to) != v || (v < 0) != (to < 0) {
		return 0, false
	}
	return to, true
}

// toInt32 converts v or fails the operator with NumericOverflow.
func toInt32[From integer](v From, operator, what string) (int32, error) {
	to, ok := checkedCast[int32](v)
	if !ok {
		return 0, newError(NumericOverflow, operator, "%s %d does not fit in int32", what, v)
	}
	return to, nil
}

// toInt32Slice converts every element of values with toInt32.
func toInt32Slice[From integer](values []From, operator, what string) ([]int32, error) {
	out := make([]int32, len(values))
	for i, v := range values {
		converted, err := toInt32(v, operator, what)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

// shapeToInt32 converts operand dimensions to the tensor shape representation.
func shapeToInt32(shape graph.Shape, operator string) ([]int32, error) {
	return toInt32Slice(shape, operator, "dimension")
}
