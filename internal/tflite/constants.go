package tflite

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// encodeScalar encodes v as one little-endian element of dt. Integer types
// truncate toward zero.
func encodeScalar(dt graph.DataType, v float32) []byte {
	buf := make([]byte, dt.Size())
	switch dt {
	case graph.Float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	case graph.Float16:
		binary.LittleEndian.PutUint16(buf, float16.Fromfloat32(v).Bits())
	case graph.Int8:
		buf[0] = byte(int8(v))
	case graph.Uint8:
		buf[0] = uint8(v)
	case graph.Int16:
		binary.LittleEndian.PutUint16(buf, uint16(int16(v)))
	case graph.Uint16:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case graph.Int32:
		binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
	case graph.Uint32:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case graph.Int64:
		binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
	case graph.Uint64:
		binary.LittleEndian.PutUint64(buf, uint64(v))
	}
	return buf
}

// addScalar appends a rank-0 constant of dt holding v.
func (t *tables) addScalar(dt graph.DataType, v float32) int32 {
	return t.addConstant([]int32{}, tensorType(dt), encodeScalar(dt, v))
}

// addInt32Tensor appends an int32 constant with the given shape.
func (t *tables) addInt32Tensor(values []int32, shape []int32) int32 {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[4*i:], uint32(v))
	}
	return t.addConstant(shape, schema.TensorTypeINT32, data)
}

// addInt32Vector appends a 1-D int32 constant.
func (t *tables) addInt32Vector(values []int32) int32 {
	return t.addInt32Tensor(values, []int32{int32(len(values))})
}

// addInt32Scalar appends a rank-0 int32 constant.
func (t *tables) addInt32Scalar(v int32) int32 {
	return t.addInt32Tensor([]int32{v}, []int32{})
}

// lowestValue returns the most negative finite value of a float type.
func lowestValue(dt graph.DataType) float32 {
	if dt == graph.Float16 {
		return -65504
	}
	return -math.MaxFloat32
}
