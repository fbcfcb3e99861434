package tflite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

func countBuiltin(model *schema.ModelT, op schema.BuiltinOperator) int {
	n := 0
	for _, b := range builtins(model) {
		if b == op {
			n++
		}
	}
	return n
}

func layerNormGraph(axes []uint32, paramShape ...uint32) *graphFixture {
	f := newGraphFixture()
	x := f.input(graph.Float32, 1, 2, 3)
	n := 1
	for _, d := range paramShape {
		n *= int(d)
	}
	scale := f.constant(graph.Float32, make([]byte, 4*n), paramShape...)
	bias := f.constant(graph.Float32, make([]byte, 4*n), paramShape...)
	out := f.output(graph.Float32, 1, 2, 3)
	f.add(&graph.LayerNormalization{
		Input:   x,
		Scale:   graph.Ref(scale),
		Bias:    graph.Ref(bias),
		Output:  out,
		Axes:    axes,
		Epsilon: 1e-5,
	})
	return f
}

// TestLayerNormalization_SortedAxesSkipTranspose checks that scale and bias
// are only transposed when the axes are out of order.
func TestLayerNormalization_SortedAxesSkipTranspose(t *testing.T) {
	sorted := layerNormGraph([]uint32{1, 2}, 2, 3).build(t)
	assert.Zero(t, countBuiltin(sorted, schema.BuiltinOperatorTRANSPOSE))

	unsorted := layerNormGraph([]uint32{2, 1}, 3, 2).build(t)
	assert.Equal(t, 2, countBuiltin(unsorted, schema.BuiltinOperatorTRANSPOSE))

	subgraph := unsorted.Subgraphs[0]
	first := subgraph.Operators[0]
	require.Equal(t, schema.BuiltinOperatorTRANSPOSE, unsorted.OperatorCodes[first.OpcodeIndex].BuiltinCode)
	assert.Equal(t, []int32{1, 0}, constantInt32s(t, unsorted, first.Inputs[1]))
	assert.Equal(t, []int32{2, 3}, subgraph.Tensors[first.Outputs[0]].Shape)
}

func TestLayerNormalization_ParamsReshapedToBroadcastShape(t *testing.T) {
	model := layerNormGraph([]uint32{2}, 3).build(t)
	subgraph := model.Subgraphs[0]

	reshape := subgraph.Operators[0]
	require.Equal(t, schema.BuiltinOperatorRESHAPE, model.OperatorCodes[reshape.OpcodeIndex].BuiltinCode)
	assert.Equal(t, []int32{1, 1, 3}, subgraph.Tensors[reshape.Outputs[0]].Shape)
}

func TestLayerNormalization_AxisOutOfRange(t *testing.T) {
	assert.ErrorIs(t, layerNormGraph([]uint32{3}, 1).lower(), ErrUnsupportedParameter)
}

func TestLayerNormalization_ParamRankMustMatchAxes(t *testing.T) {
	assert.ErrorIs(t, layerNormGraph([]uint32{2, 1}, 6).lower(), ErrUnsupportedParameter)
	assert.ErrorIs(t, layerNormGraph([]uint32{1, 2}, 6).lower(), ErrUnsupportedParameter)
	assert.ErrorIs(t, layerNormGraph([]uint32{2}, 1, 3).lower(), ErrUnsupportedParameter)
	assert.ErrorIs(t, layerNormGraph([]uint32{2, 1}, 2, 3).lower(), ErrUnsupportedParameter)
}

func TestBatchNormalization_WithoutScaleAndBias(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 3, 4)
	mean := f.input(graph.Float32, 3)
	variance := f.input(graph.Float32, 3)
	out := f.output(graph.Float32, 2, 3, 4)
	f.add(&graph.BatchNormalization{Input: x, Mean: mean, Variance: variance, Output: out, Axis: 1, Epsilon: 1e-3})

	model := f.build(t)
	assert.Equal(t, []B{
		schema.BuiltinOperatorRESHAPE,
		schema.BuiltinOperatorRESHAPE,
		schema.BuiltinOperatorSUB,
		schema.BuiltinOperatorADD,
		schema.BuiltinOperatorSQRT,
		schema.BuiltinOperatorDIV,
	}, builtins(model))

	subgraph := model.Subgraphs[0]
	assert.Equal(t, []int32{1, 3, 1}, subgraph.Tensors[subgraph.Operators[0].Outputs[0]].Shape)
	assert.Equal(t, int32(3), subgraph.Operators[5].Outputs[0])
}

func TestInstanceNormalization_RejectsIntegers(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Int32, 1, 4, 4, 3)
	out := f.output(graph.Int32, 1, 4, 4, 3)
	f.add(&graph.InstanceNormalization{Input: x, Output: out})

	assert.ErrorIs(t, f.lower(), ErrUnsupportedDataType)
}

func TestArgsort(t *testing.T) {
	assert.Equal(t, []int32{1, 0}, argsort([]int32{2, 1}))
	assert.Equal(t, []int32{2, 0, 1}, argsort([]int32{1, 3, 0}))
	assert.Equal(t, []int32{0, 1, 2}, argsort([]int32{0, 1, 2}))
}
