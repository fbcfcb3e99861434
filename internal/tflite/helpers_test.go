package tflite

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// graphFixture assembles small GraphInfo values for tests.
type graphFixture struct {
	info *graph.GraphInfo
	next graph.OperandID
}

func newGraphFixture() *graphFixture {
	return &graphFixture{info: &graph.GraphInfo{Constants: map[graph.OperandID][]byte{}}}
}

func (f *graphFixture) operand(kind graph.OperandKind, dt graph.DataType, shape ...uint32) graph.OperandID {
	id := f.next
	f.next++
	f.info.Operands = append(f.info.Operands, &graph.Operand{
		ID:       id,
		Kind:     kind,
		DataType: dt,
		Shape:    graph.Shape(shape),
	})
	return id
}

func (f *graphFixture) input(dt graph.DataType, shape ...uint32) graph.OperandID {
	id := f.operand(graph.KindInput, dt, shape...)
	f.info.InputOperands = append(f.info.InputOperands, id)
	return id
}

func (f *graphFixture) output(dt graph.DataType, shape ...uint32) graph.OperandID {
	id := f.operand(graph.KindOutput, dt, shape...)
	f.info.OutputOperands = append(f.info.OutputOperands, id)
	return id
}

func (f *graphFixture) intermediate(dt graph.DataType, shape ...uint32) graph.OperandID {
	return f.operand(graph.KindIntermediate, dt, shape...)
}

func (f *graphFixture) constant(dt graph.DataType, data []byte, shape ...uint32) graph.OperandID {
	id := f.operand(graph.KindConstant, dt, shape...)
	f.info.Constants[id] = data
	return id
}

func (f *graphFixture) add(ops ...graph.Operation) {
	f.info.Operations = append(f.info.Operations, ops...)
}

// build lowers the fixture and decodes the resulting model.
func (f *graphFixture) build(t *testing.T, opts ...Option) *schema.ModelT {
	t.Helper()
	buf, err := CreateSerializedModel(f.info, opts...)
	require.NoError(t, err)
	model, err := schema.ReadModel(buf)
	require.NoError(t, err)
	require.Len(t, model.Subgraphs, 1)
	return model
}

// lower runs the build and returns its error.
func (f *graphFixture) lower() error {
	_, err := CreateSerializedModel(f.info)
	return err
}

// builtins lists the builtin code of every operator in order.
func builtins(model *schema.ModelT) []schema.BuiltinOperator {
	var out []schema.BuiltinOperator
	for _, op := range model.Subgraphs[0].Operators {
		out = append(out, model.OperatorCodes[op.OpcodeIndex].BuiltinCode)
	}
	return out
}

// constantInt32s decodes the int32 constant at tensor index.
func constantInt32s(t *testing.T, model *schema.ModelT, index int32) []int32 {
	t.Helper()
	tensor := model.Subgraphs[0].Tensors[index]
	require.NotZero(t, tensor.Buffer, "tensor %d is not a constant", index)
	require.Equal(t, schema.TensorTypeINT32, tensor.Type)
	data := model.Buffers[tensor.Buffer].Data
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return out
}

func float32Bytes(values ...float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}
