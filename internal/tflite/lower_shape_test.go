package tflite

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

func TestConcat(t *testing.T) {
	f := newGraphFixture()
	a := f.input(graph.Float32, 2, 3)
	b := f.input(graph.Float32, 2, 5)
	out := f.output(graph.Float32, 2, 8)
	f.add(&graph.Concat{Inputs: []graph.OperandID{a, b}, Output: out, Axis: 1})

	model := f.build(t)
	op := model.Subgraphs[0].Operators[0]
	assert.Equal(t, []int32{0, 1}, op.Inputs)
	assert.Equal(t, int32(1), op.BuiltinOptions.(*schema.ConcatenationOptionsT).Axis)
}

func TestExpand(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 3, 1)
	out := f.output(graph.Float32, 2, 3, 4)
	f.add(&graph.Expand{Input: x, Output: out})

	model := f.build(t)
	require.Equal(t, []B{schema.BuiltinOperatorBROADCAST_TO}, builtins(model))
	assert.Equal(t, []int32{2, 3, 4}, constantInt32s(t, model, model.Subgraphs[0].Operators[0].Inputs[1]))
}

func TestGather_IndexTypes(t *testing.T) {
	tests := []struct {
		dt   graph.DataType
		want []B
	}{
		{graph.Int32, []B{schema.BuiltinOperatorGATHER}},
		{graph.Int64, []B{schema.BuiltinOperatorGATHER}},
		{graph.Uint32, []B{schema.BuiltinOperatorCAST, schema.BuiltinOperatorGATHER}},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			f := newGraphFixture()
			x := f.input(graph.Float32, 5, 3)
			indices := f.input(tt.dt, 2)
			out := f.output(graph.Float32, 2, 3)
			f.add(&graph.Gather{Input: x, Indices: indices, Output: out})

			model := f.build(t)
			assert.Empty(t, cmp.Diff(tt.want, builtins(model)))
			if len(tt.want) == 2 {
				cast := model.Subgraphs[0].Operators[0].BuiltinOptions.(*schema.CastOptionsT)
				assert.Equal(t, schema.TensorTypeINT64, cast.OutDataType)
			}
		})
	}
}

func padGraph(mode graph.PaddingMode, value float32) *graphFixture {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 3)
	out := f.output(graph.Float32, 4, 6)
	f.add(&graph.Pad{
		Input:     x,
		Output:    out,
		Beginning: []uint32{1, 2},
		Ending:    []uint32{1, 1},
		Mode:      mode,
		Value:     value,
	})
	return f
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		mode  graph.PaddingMode
		value float32
		want  B
	}{
		{"zero constant", graph.PaddingConstant, 0, schema.BuiltinOperatorPAD},
		{"nonzero constant", graph.PaddingConstant, 1.5, schema.BuiltinOperatorPADV2},
		{"reflection", graph.PaddingReflection, 0, schema.BuiltinOperatorMIRROR_PAD},
		{"symmetric", graph.PaddingSymmetric, 0, schema.BuiltinOperatorMIRROR_PAD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := padGraph(tt.mode, tt.value).build(t)
			require.Equal(t, []B{tt.want}, builtins(model))

			op := model.Subgraphs[0].Operators[0]
			assert.Equal(t, []int32{1, 1, 2, 1}, constantInt32s(t, model, op.Inputs[1]))
			assert.Equal(t, []int32{2, 2}, model.Subgraphs[0].Tensors[op.Inputs[1]].Shape)
		})
	}

	model := padGraph(graph.PaddingSymmetric, 0).build(t)
	options := model.Subgraphs[0].Operators[0].BuiltinOptions.(*schema.MirrorPadOptionsT)
	assert.Equal(t, schema.MirrorPadModeSYMMETRIC, options.Mode)
}

func TestPad_EdgeRejected(t *testing.T) {
	assert.ErrorIs(t, padGraph(graph.PaddingEdge, 0).lower(), ErrUnsupportedParameter)
}

func TestSlice(t *testing.T) {
	build := func(strides []uint32) *schema.ModelT {
		f := newGraphFixture()
		x := f.input(graph.Float32, 4, 6)
		out := f.output(graph.Float32, 2, 2)
		f.add(&graph.Slice{Input: x, Output: out, Starts: []uint32{1, 2}, Sizes: []uint32{2, 4}, Strides: strides})
		return f.build(t)
	}

	plain := build([]uint32{1, 1})
	require.Equal(t, []B{schema.BuiltinOperatorSLICE}, builtins(plain))
	op := plain.Subgraphs[0].Operators[0]
	assert.Equal(t, []int32{1, 2}, constantInt32s(t, plain, op.Inputs[1]))
	assert.Equal(t, []int32{2, 4}, constantInt32s(t, plain, op.Inputs[2]))

	strided := build([]uint32{1, 2})
	require.Equal(t, []B{schema.BuiltinOperatorSTRIDED_SLICE}, builtins(strided))
	op = strided.Subgraphs[0].Operators[0]
	assert.Equal(t, []int32{1, 2}, constantInt32s(t, strided, op.Inputs[1]))
	assert.Equal(t, []int32{3, 6}, constantInt32s(t, strided, op.Inputs[2]))
	assert.Equal(t, []int32{1, 2}, constantInt32s(t, strided, op.Inputs[3]))
}

func TestSlice_ParameterLengthsMustMatchRank(t *testing.T) {
	tests := []struct {
		name    string
		starts  []uint32
		sizes   []uint32
		strides []uint32
	}{
		{name: "short sizes", starts: []uint32{0, 0}, sizes: []uint32{4}, strides: []uint32{2, 2}},
		{name: "short sizes unstrided", starts: []uint32{0, 0}, sizes: []uint32{4}},
		{name: "short starts", starts: []uint32{0}, sizes: []uint32{2, 2}},
		{name: "short strides", starts: []uint32{0, 0}, sizes: []uint32{2, 2}, strides: []uint32{2}},
		{name: "long strides", starts: []uint32{0, 0}, sizes: []uint32{2, 2}, strides: []uint32{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGraphFixture()
			x := f.input(graph.Float32, 4, 4)
			out := f.output(graph.Float32, 2, 2)
			f.add(&graph.Slice{Input: x, Output: out, Starts: tt.starts, Sizes: tt.sizes, Strides: tt.strides})
			assert.ErrorIs(t, f.lower(), ErrUnsupportedParameter)
		})
	}
}

func TestSplit(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 7)
	a := f.output(graph.Float32, 2, 3)
	b := f.output(graph.Float32, 2, 4)
	f.add(&graph.Split{Input: x, Outputs: []graph.OperandID{a, b}, Axis: 1})

	model := f.build(t)
	op := model.Subgraphs[0].Operators[0]
	assert.Equal(t, []int32{1, 2}, op.Outputs)
	assert.Equal(t, []int32{3, 4}, constantInt32s(t, model, op.Inputs[1]))
	assert.Equal(t, []int32{1}, constantInt32s(t, model, op.Inputs[2]))
	assert.Equal(t, int32(2), op.BuiltinOptions.(*schema.SplitVOptionsT).NumSplits)
}

func TestTranspose(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 3, 4)
	out := f.output(graph.Float32, 4, 2, 3)
	f.add(&graph.Transpose{Input: x, Output: out, Permutation: []uint32{2, 0, 1}})

	model := f.build(t)
	assert.Equal(t, []int32{2, 0, 1}, constantInt32s(t, model, model.Subgraphs[0].Operators[0].Inputs[1]))
}

func TestTranspose_PermutationOverflow(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 3)
	out := f.output(graph.Float32, 3, 2)
	f.add(&graph.Transpose{Input: x, Output: out, Permutation: []uint32{1 << 31, 0}})

	assert.ErrorIs(t, f.lower(), ErrNumericOverflow)
}

func TestWhere(t *testing.T) {
	f := newGraphFixture()
	cond := f.input(graph.Uint8, 4)
	a := f.input(graph.Float32, 4)
	b := f.input(graph.Float32, 4)
	out := f.output(graph.Float32, 4)
	f.add(&graph.Where{Condition: cond, TrueValue: a, FalseValue: b, Output: out})

	model := f.build(t)
	assert.Empty(t, cmp.Diff([]B{schema.BuiltinOperatorCAST, schema.BuiltinOperatorSELECT_V2}, builtins(model)))
	selectOp := model.Subgraphs[0].Operators[1]
	assert.Equal(t, []int32{1, 2}, selectOp.Inputs[1:])
}

func TestReshape(t *testing.T) {
	f := newGraphFixture()
	x := f.input(graph.Float32, 2, 6)
	out := f.output(graph.Float32, 3, 4)
	f.add(&graph.Reshape{Input: x, Output: out})

	model := f.build(t)
	op := model.Subgraphs[0].Operators[0]
	assert.Equal(t, []int32{3, 4}, constantInt32s(t, model, op.Inputs[1]))
	assert.Equal(t, []int32{3, 4}, op.BuiltinOptions.(*schema.ReshapeOptionsT).NewShape)
}
