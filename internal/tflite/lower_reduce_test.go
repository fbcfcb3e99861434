package tflite

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

func reduceGraph(kind graph.ReduceKind, dt graph.DataType, keep bool) *graphFixture {
	f := newGraphFixture()
	x := f.input(dt, 2, 3, 4)
	out := f.output(dt, 2, 4)
	if keep {
		f.info.Operands[1].Shape = graph.Shape{2, 1, 4}
	}
	f.add(&graph.Reduce{Kind: kind, Input: x, Output: out, Axes: []uint32{1}, KeepDimensions: keep})
	return f
}

func TestReduce_Lowering(t *testing.T) {
	tests := []struct {
		kind graph.ReduceKind
		want []B
	}{
		{graph.ReduceSum, []B{schema.BuiltinOperatorSUM}},
		{graph.ReduceMean, []B{schema.BuiltinOperatorMEAN}},
		{graph.ReduceMax, []B{schema.BuiltinOperatorREDUCE_MAX}},
		{graph.ReduceMin, []B{schema.BuiltinOperatorREDUCE_MIN}},
		{graph.ReduceProduct, []B{schema.BuiltinOperatorREDUCE_PROD}},
		{graph.ReduceL1, []B{schema.BuiltinOperatorABS, schema.BuiltinOperatorSUM}},
		{graph.ReduceL2, []B{schema.BuiltinOperatorPOW, schema.BuiltinOperatorSUM, schema.BuiltinOperatorPOW}},
		{graph.ReduceLogSum, []B{schema.BuiltinOperatorSUM, schema.BuiltinOperatorLOG}},
		{graph.ReduceLogSumExp, []B{schema.BuiltinOperatorEXP, schema.BuiltinOperatorSUM, schema.BuiltinOperatorLOG}},
		{graph.ReduceSumSquare, []B{schema.BuiltinOperatorPOW, schema.BuiltinOperatorSUM}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			model := reduceGraph(tt.kind, graph.Float32, false).build(t)
			assert.Empty(t, cmp.Diff(tt.want, builtins(model)))
		})
	}
}

func TestReduce_KeepDimensions(t *testing.T) {
	model := reduceGraph(graph.ReduceSum, graph.Float32, true).build(t)
	op := model.Subgraphs[0].Operators[0]

	assert.Equal(t, []int32{1}, constantInt32s(t, model, op.Inputs[1]))
	assert.True(t, op.BuiltinOptions.(*schema.ReducerOptionsT).KeepDims)
}

// TestReduce_FreshAxesConstants checks that each SUM of a decomposition gets
// its own axes constant rather than sharing one.
func TestReduce_FreshAxesConstants(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 4)
	y := f.intermediate(graph.Float32)
	out := f.output(graph.Float32)
	f.add(
		&graph.Reduce{Kind: graph.ReduceSumSquare, Input: x, Output: y, Axes: []uint32{0}},
		&graph.Reduce{Kind: graph.ReduceLogSum, Input: x, Output: out, Axes: []uint32{0}},
	)

	model := f.build(t)
	var axes []int32
	for i, op := range model.Subgraphs[0].Operators {
		if builtins(model)[i] == schema.BuiltinOperatorSUM {
			axes = append(axes, op.Inputs[1])
		}
	}
	require.Len(t, axes, 2)
	assert.NotEqual(t, axes[0], axes[1])
}

func TestReduceL1_RejectsUnsigned(t *testing.T) {
	err := reduceGraph(graph.ReduceL1, graph.Uint64, false).lower()
	require.ErrorIs(t, err, ErrUnsupportedDataType)
	assert.Contains(t, err.Error(), "reduceL1")

	assert.NoError(t, reduceGraph(graph.ReduceL1, graph.Int64, false).lower())
}

func argMinMaxGraph(axes []uint32, keep, last bool, outType graph.DataType) *graphFixture {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 3, 4)
	out := f.output(outType, 2, 4)
	if keep {
		f.info.Operands[1].Shape = graph.Shape{2, 1, 4}
	}
	f.add(&graph.ArgMinMax{
		Kind:            graph.ArgMax,
		Input:           x,
		Output:          out,
		Axes:            axes,
		KeepDimensions:  keep,
		SelectLastIndex: last,
	})
	return f
}

func TestArgMinMax(t *testing.T) {
	model := argMinMaxGraph([]uint32{1}, false, false, graph.Int64).build(t)
	require.Equal(t, []B{schema.BuiltinOperatorARG_MAX}, builtins(model))

	op := model.Subgraphs[0].Operators[0]
	assert.Equal(t, []int32{1}, constantInt32s(t, model, op.Inputs[1]))
	assert.Equal(t, schema.TensorTypeINT64, op.BuiltinOptions.(*schema.ArgMaxOptionsT).OutputType)
}

func TestArgMinMax_KeepDimensions(t *testing.T) {
	model := argMinMaxGraph([]uint32{1}, true, false, graph.Int32).build(t)
	assert.Empty(t, cmp.Diff([]B{schema.BuiltinOperatorARG_MAX, schema.BuiltinOperatorRESHAPE}, builtins(model)))

	subgraph := model.Subgraphs[0]
	reduced := subgraph.Operators[0].Outputs[0]
	assert.Equal(t, []int32{2, 4}, subgraph.Tensors[reduced].Shape)
	assert.Equal(t, int32(1), subgraph.Operators[1].Outputs[0])
}

func TestArgMinMax_Rejections(t *testing.T) {
	assert.ErrorIs(t, argMinMaxGraph([]uint32{0, 1}, false, false, graph.Int64).lower(), ErrAxisCardinalityViolation)
	assert.ErrorIs(t, argMinMaxGraph(nil, false, false, graph.Int64).lower(), ErrAxisCardinalityViolation)
	assert.ErrorIs(t, argMinMaxGraph([]uint32{1}, false, true, graph.Int64).lower(), ErrUnsupportedParameter)
	assert.ErrorIs(t, argMinMaxGraph([]uint32{1}, false, false, graph.Uint8).lower(), ErrUnsupportedDataType)
}
