package tflite

import (
	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// paddingSizes are the begin/end amounts of one spatial axis.
type paddingSizes struct {
	begin int64
	end   int64
}

// samePadding returns the TF-style SAME padding of one spatial axis:
// output = ceil(input/stride) and the odd pixel goes to the end.
func samePadding(input, filter, stride, dilation uint32) paddingSizes {
	in, s := int64(input), int64(stride)
	dilated := (int64(filter)-1)*int64(dilation) + 1
	out := (in + s - 1) / s
	needed := (out-1)*s + dilated
	total := max(needed-in, 0)
	return paddingSizes{begin: total / 2, end: (total + 1) / 2}
}

// sameTransposedPadding is samePadding for a transposed convolution whose
// output extent is input*stride. The total is not clamped at zero.
func sameTransposedPadding(input, filter, stride, dilation uint32) paddingSizes {
	in, s := int64(input), int64(stride)
	dilated := (int64(filter)-1)*int64(dilation) + 1
	total := (in-1)*s + dilated - in*s
	return paddingSizes{begin: total / 2, end: (total + 1) / 2}
}

// paddingMode is the result of classifying explicit padding.
type paddingMode struct {
	padding schema.Padding
	// explicit is true when the caller's amounts match neither SAME nor
	// VALID and must be applied by a separate PAD operator.
	explicit bool
}

func (p paddingSizes) matches(begin, end uint32) bool {
	return p.begin == int64(begin) && p.end == int64(end)
}

func isZeroPadding(p graph.Padding2d) bool {
	return p.Beginning.Height == 0 && p.Ending.Height == 0 &&
		p.Beginning.Width == 0 && p.Ending.Width == 0
}

// classifyPadding maps explicit padding onto the TFLite padding schemes.
// input and filter are the spatial extents (height, width).
func classifyPadding(p graph.Padding2d, input, filter, strides, dilations graph.Size2d) paddingMode {
	if isZeroPadding(p) {
		return paddingMode{padding: schema.PaddingVALID}
	}

	height := samePadding(input.Height, filter.Height, strides.Height, dilations.Height)
	width := samePadding(input.Width, filter.Width, strides.Width, dilations.Width)
	if height.matches(p.Beginning.Height, p.Ending.Height) && width.matches(p.Beginning.Width, p.Ending.Width) {
		return paddingMode{padding: schema.PaddingSAME}
	}

	return paddingMode{padding: schema.PaddingVALID, explicit: true}
}

// classifyTransposedPadding is classifyPadding for transposed convolutions,
// which have no explicit fallback: ok is false when the padding is neither
// SAME nor VALID.
func classifyTransposedPadding(p graph.Padding2d, input, filter, strides, dilations graph.Size2d) (schema.Padding, bool) {
	if isZeroPadding(p) {
		return schema.PaddingVALID, true
	}

	height := sameTransposedPadding(input.Height, filter.Height, strides.Height, dilations.Height)
	width := sameTransposedPadding(input.Width, filter.Width, strides.Width, dilations.Width)
	if height.matches(p.Beginning.Height, p.Ending.Height) && width.matches(p.Beginning.Width, p.Ending.Width) {
		return schema.PaddingSAME, true
	}
	return schema.PaddingVALID, false
}
