package tflite

import (
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// optionalTensor marks an omitted optional operator input.
const optionalTensor int32 = -1

// emptyBufferIndex is the shared empty buffer of every non-constant tensor.
const emptyBufferIndex uint32 = 0

// tables are the append-only index spaces of the artifact. Indices are
// positions; nothing is ever removed or deduplicated.
type tables struct {
	tensors       []*schema.TensorT
	buffers       []*schema.BufferT
	operatorCodes []*schema.OperatorCodeT
	operators     []*schema.OperatorT
}

func newTables() tables {
	return tables{
		// Buffer 0 is reserved and stays empty.
		buffers: []*schema.BufferT{{}},
	}
}

func (t *tables) addTensor(shape []int32, typ schema.TensorType, buffer uint32, name string) int32 {
	t.tensors = append(t.tensors, &schema.TensorT{
		Shape:  shape,
		Type:   typ,
		Buffer: buffer,
		Name:   name,
	})
	return int32(len(t.tensors) - 1)
}

func (t *tables) addBuffer(data []byte) uint32 {
	t.buffers = append(t.buffers, &schema.BufferT{Data: data})
	return uint32(len(t.buffers) - 1)
}

func (t *tables) addOperatorCode(op schema.BuiltinOperator, version int32) uint32 {
	t.operatorCodes = append(t.operatorCodes, &schema.OperatorCodeT{
		DeprecatedBuiltinCode: int8(min(op, schema.BuiltinOperatorPLACEHOLDER_FOR_GREATER_OP_CODES)),
		Version:               version,
		BuiltinCode:           op,
	})
	return uint32(len(t.operatorCodes) - 1)
}

func (t *tables) addOperator(code uint32, inputs, outputs []int32, options schema.BuiltinOptionsT) {
	t.operators = append(t.operators, &schema.OperatorT{
		OpcodeIndex:    code,
		Inputs:         inputs,
		Outputs:        outputs,
		BuiltinOptions: options,
	})
}

// emit appends a version 1 operator code and an operator using it.
func (t *tables) emit(op schema.BuiltinOperator, inputs, outputs []int32, options schema.BuiltinOptionsT) {
	t.addOperator(t.addOperatorCode(op, 1), inputs, outputs, options)
}

// addTemporary appends a runtime tensor with no constant data.
func (t *tables) addTemporary(shape []int32, typ schema.TensorType) int32 {
	return t.addTensor(shape, typ, emptyBufferIndex, "")
}

// addConstant appends a fresh buffer and a tensor reading it.
func (t *tables) addConstant(shape []int32, typ schema.TensorType, data []byte) int32 {
	return t.addTensor(shape, typ, t.addBuffer(data), "")
}
