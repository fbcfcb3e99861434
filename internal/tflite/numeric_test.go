package tflite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/internal/graph"
)

func TestCheckedCast(t *testing.T) {
	v, ok := checkedCast[int32](uint32(math.MaxInt32))
	assert.True(t, ok)
	assert.Equal(t, int32(math.MaxInt32), v)

	_, ok = checkedCast[int32](uint32(math.MaxInt32 + 1))
	assert.False(t, ok)

	_, ok = checkedCast[int32](int64(math.MinInt32 - 1))
	assert.False(t, ok)

	_, ok = checkedCast[uint32](int64(-1))
	assert.False(t, ok)

	_, ok = checkedCast[int32](uint64(1 << 32))
	assert.False(t, ok)
}

func TestShapeToInt32(t *testing.T) {
	got, err := shapeToInt32(graph.Shape{1, 224, 224, 3}, "conv2d")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 224, 224, 3}, got)

	_, err = shapeToInt32(graph.Shape{1, 1 << 31}, "conv2d")
	require.ErrorIs(t, err, ErrNumericOverflow)
	assert.Contains(t, err.Error(), "conv2d")
}

func TestEncodeScalar(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x3c}, encodeScalar(graph.Float16, 1))
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, encodeScalar(graph.Float32, 1))
	assert.Equal(t, []byte{0xfe}, encodeScalar(graph.Int8, -2))
	assert.Equal(t, []byte{0x02, 0, 0, 0, 0, 0, 0, 0}, encodeScalar(graph.Uint64, 2.9))
	assert.Len(t, encodeScalar(graph.Int16, 0), 2)
}
