package graph

import "github.com/cockroachdb/errors"

// Shape is the ordered list of dimension extents of an operand.
type Shape []uint32

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() uint64 {
	n := uint64(1) // Scalar has 1 element
	for _, dim := range s {
		n *= uint64(dim)
	}
	return n
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared element-wise from right to left; two extents are
// compatible when they are equal or one of them is 1, and missing leading
// dimensions are treated as 1.
//
//	(3, 1) + (3, 5) → (3, 5)
//	(5)    + (3, 5) → (3, 5)
//	(3, 4) + (3, 5) → error
func BroadcastShapes(a, b Shape) (Shape, error) {
	rank := max(len(a), len(b))
	result := make(Shape, rank)

	for i := 0; i < rank; i++ {
		aDim, bDim := uint32(1), uint32(1)
		if idx := len(a) - 1 - i; idx >= 0 {
			aDim = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			bDim = b[idx]
		}

		switch {
		case aDim == bDim, bDim == 1:
			result[rank-1-i] = aDim
		case aDim == 1:
			result[rank-1-i] = bDim
		default:
			return nil, errors.Newf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, rank-1-i, aDim, bDim)
		}
	}

	return result, nil
}
