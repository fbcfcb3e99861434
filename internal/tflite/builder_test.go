package tflite

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// mixedGraph exercises operands of every kind plus a few decompositions.
func mixedGraph() *graphFixture {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 3)
	w := f.constant(graph.Float32, float32Bytes(1, 2, 3, 4, 5, 6), 2, 3)
	sum := f.intermediate(graph.Float32, 2, 3)
	soft := f.intermediate(graph.Float32, 2, 3)
	out := f.output(graph.Float32, 2)
	f.add(
		&graph.ElementwiseBinary{Kind: graph.BinaryAdd, LHS: x, RHS: w, Output: sum},
		&graph.Softplus{Input: sum, Output: soft},
		&graph.Reduce{Kind: graph.ReduceL2, Input: soft, Output: out, Axes: []uint32{1}},
	)
	return f
}

func TestCreateSerializedModel_Deterministic(t *testing.T) {
	first, err := CreateSerializedModel(mixedGraph().info)
	require.NoError(t, err)
	second, err := CreateSerializedModel(mixedGraph().info)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCreateSerializedModel_Header(t *testing.T) {
	model := mixedGraph().build(t)
	assert.Equal(t, uint32(schema.Version), model.Version)
	assert.Equal(t, DefaultDescription, model.Description)

	custom := mixedGraph().build(t, WithDescription("custom"))
	assert.Equal(t, "custom", custom.Description)
}

// TestSerializeOperands_IndexRoundTrip checks that every operand maps to the
// tensor at its position and that the subgraph inputs/outputs follow the
// operand lists.
func TestSerializeOperands_IndexRoundTrip(t *testing.T) {
	f := newGraphFixture()
	a := f.input(graph.Float32, 1, 4)
	b := f.input(graph.Int32, 4)
	c := f.constant(graph.Float16, []byte{0, 0x3c, 0, 0x40}, 2)
	out := f.output(graph.Float32, 1, 4)
	f.info.Operands[0].Name = "a"

	builder := NewGraphBuilder(f.info)
	require.NoError(t, builder.SerializeOperands())

	for i, id := range []graph.OperandID{a, b, c, out} {
		index, ok := builder.TensorIndex(id)
		require.True(t, ok)
		assert.Equal(t, int32(i), index)
	}
	_, ok := builder.TensorIndex(99)
	assert.False(t, ok)

	require.NoError(t, builder.SerializeOperations())
	model, err := schema.ReadModel(builder.Finalize())
	require.NoError(t, err)

	subgraph := model.Subgraphs[0]
	assert.Empty(t, cmp.Diff([]int32{0, 1}, subgraph.Inputs))
	assert.Empty(t, cmp.Diff([]int32{3}, subgraph.Outputs))

	assert.Equal(t, "a", subgraph.Tensors[0].Name)
	assert.Equal(t, []int32{1, 4}, subgraph.Tensors[0].Shape)
	assert.Equal(t, schema.TensorTypeINT32, subgraph.Tensors[1].Type)
	assert.Equal(t, schema.TensorTypeFLOAT16, subgraph.Tensors[2].Type)
	assert.Equal(t, uint32(1), subgraph.Tensors[2].Buffer)
	assert.Equal(t, []byte{0, 0x3c, 0, 0x40}, model.Buffers[1].Data)
}

func TestSerializeOperands_DimensionOverflow(t *testing.T) {
	f := newGraphFixture()
	f.input(graph.Float32, 1<<31)

	err := f.lower()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNumericOverflow)

	var lowerErr *Error
	require.True(t, errors.As(err, &lowerErr))
	assert.Equal(t, NumericOverflow, lowerErr.Kind)
	assert.Contains(t, lowerErr.Reason, "2147483648")
}

// TestBuffers_ZeroIsSharedAndEmpty checks the buffer table invariants: buffer
// 0 is empty and used by every runtime tensor, and every constant tensor owns
// a buffer nobody else reads.
func TestBuffers_ZeroIsSharedAndEmpty(t *testing.T) {
	model := mixedGraph().build(t)
	require.NotEmpty(t, model.Buffers)
	assert.Empty(t, model.Buffers[0].Data)

	subgraph := model.Subgraphs[0]
	owners := map[uint32]int{}
	for i, tensor := range subgraph.Tensors {
		if tensor.Buffer == 0 {
			continue
		}
		assert.NotEmpty(t, model.Buffers[tensor.Buffer].Data, "tensor %d", i)
		owners[tensor.Buffer]++
	}
	for buffer, n := range owners {
		assert.Equal(t, 1, n, "buffer %d is shared", buffer)
	}
	assert.Len(t, model.Buffers, len(owners)+1)

	// The graph input, intermediates and output are runtime tensors.
	for _, index := range []int32{0, 2, 3, 4} {
		assert.Zero(t, subgraph.Tensors[index].Buffer, "tensor %d", index)
	}
}

// nchwPaddedConvGraph needs layout transposes around a PAD and a VALID
// convolution.
func nchwPaddedConvGraph() *graphFixture {
	f := newGraphFixture()
	x := f.input(graph.Float32, 1, 2, 5, 5)
	w := f.constant(graph.Float32, make([]byte, 4*4*2*3*3), 4, 2, 3, 3)
	out := f.output(graph.Float32, 1, 4, 6, 6)
	f.add(&graph.Conv2d{
		Input:        x,
		Filter:       w,
		Output:       out,
		Strides:      graph.Size2d{Height: 1, Width: 1},
		Dilations:    graph.Size2d{Height: 1, Width: 1},
		Padding:      pad2d(2, 1, 2, 1),
		Groups:       1,
		InputLayout:  graph.LayoutNCHW,
		FilterLayout: graph.FilterOIHW,
	})
	return f
}

// TestOperators_ProducersAndConsumers checks that every synthesized
// temporary is written exactly once and read at least once.
func TestOperators_ProducersAndConsumers(t *testing.T) {
	tests := []struct {
		name    string
		fixture *graphFixture
	}{
		{name: "mixed", fixture: mixedGraph()},
		{name: "layer norm unsorted axes", fixture: layerNormGraph([]uint32{2, 1}, 3, 2)},
		{name: "nchw conv with pad", fixture: nchwPaddedConvGraph()},
		{name: "max pool with padv2", fixture: poolGraph(graph.PoolMax, pad2d(2, 0, 1, 0), 1)},
		{name: "gemm transposed b and added c", fixture: gemmGraph([]uint32{2, 4}, false, false)},
		{name: "argmax keep dimensions", fixture: argMinMaxGraph([]uint32{1}, true, false, graph.Int32)},
		{name: "softmax off last axis", fixture: func() *graphFixture {
			f := newGraphFixture()
			x := f.input(graph.Float32, 2, 3, 4)
			out := f.output(graph.Float32, 2, 3, 4)
			f.add(&graph.Softmax{Input: x, Output: out, Axis: 1})
			return f
		}()},
		{name: "hard sigmoid", fixture: unaryGraph(graph.Float32, func(in, out graph.OperandID) graph.Operation {
			return &graph.HardSigmoid{Input: in, Output: out, Alpha: 0.2, Beta: 0.5}
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			operandCount := len(tt.fixture.info.Operands)
			model := tt.fixture.build(t)
			subgraph := model.Subgraphs[0]
			require.Greater(t, len(subgraph.Tensors), operandCount, "no temporaries synthesized")

			producers := map[int32]int{}
			consumers := map[int32]int{}
			for _, op := range subgraph.Operators {
				for _, index := range op.Outputs {
					producers[index]++
				}
				for _, index := range op.Inputs {
					consumers[index]++
				}
			}

			for i := operandCount; i < len(subgraph.Tensors); i++ {
				index := int32(i)
				if subgraph.Tensors[i].Buffer != 0 {
					assert.Zero(t, producers[index], "constant %d is written", i)
					continue
				}
				assert.Equal(t, 1, producers[index], "temporary %d producers", i)
				assert.GreaterOrEqual(t, consumers[index], 1, "temporary %d consumers", i)
			}
		})
	}
}

func TestOperatorCodes_OnePerOperator(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 4)
	y := f.intermediate(graph.Float32, 4)
	out := f.output(graph.Float32, 4)
	f.add(&graph.Gelu{Input: x, Output: y}, &graph.Relu{Input: y, Output: out})

	model := f.build(t)
	require.Len(t, model.OperatorCodes, 2)
	for i, op := range model.Subgraphs[0].Operators {
		assert.Equal(t, uint32(i), op.OpcodeIndex)
	}

	gelu := model.OperatorCodes[0]
	assert.Equal(t, schema.BuiltinOperatorGELU, gelu.BuiltinCode)
	assert.Equal(t, int8(schema.BuiltinOperatorPLACEHOLDER_FOR_GREATER_OP_CODES), gelu.DeprecatedBuiltinCode)
	assert.Equal(t, int32(1), gelu.Version)

	relu := model.OperatorCodes[1]
	assert.Equal(t, int8(schema.BuiltinOperatorRELU), relu.DeprecatedBuiltinCode)
}

func TestOperatorCodes_NotDeduplicated(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 4)
	y := f.intermediate(graph.Float32, 4)
	out := f.output(graph.Float32, 4)
	f.add(&graph.Relu{Input: x, Output: y}, &graph.Relu{Input: y, Output: out})

	model := f.build(t)
	assert.Len(t, model.OperatorCodes, 2)
	assert.Equal(t, model.OperatorCodes[0], model.OperatorCodes[1])
}

func TestFinalize_TwicePanics(t *testing.T) {
	builder := NewGraphBuilder(mixedGraph().info)
	require.NoError(t, builder.SerializeOperands())
	require.NoError(t, builder.SerializeOperations())
	builder.Finalize()

	assert.Panics(t, func() { builder.Finalize() })
}

func TestSerializeOperations_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mixedGraph().build(t, WithLogger(zap.New(core)))

	lowered := logs.FilterMessage("lowered operation")
	assert.Equal(t, 3, lowered.Len())
	assert.Equal(t, "softplus", lowered.All()[1].ContextMap()["operator"])

	finalized := logs.FilterMessage("model finalized").All()
	require.Len(t, finalized, 1)
	assert.Equal(t, zapcore.InfoLevel, finalized[0].Level)
}

func TestSerializeOperations_StopsAtFirstError(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 4)
	y := f.intermediate(graph.Float32, 4)
	out := f.output(graph.Float32, 4)
	f.add(
		&graph.Elu{Input: x, Output: y, Alpha: 2},
		&graph.Relu{Input: y, Output: out},
	)

	builder := NewGraphBuilder(f.info)
	require.NoError(t, builder.SerializeOperands())
	err := builder.SerializeOperations()
	require.ErrorIs(t, err, ErrUnsupportedParameter)
	assert.Empty(t, builder.operators)
}
