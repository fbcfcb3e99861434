package graphdesc

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/internal/graph"
)

// single parses a description with operands x (input, [1,4,4,2]), f
// (input, [3,2,2,2]), z (intermediate) and y (output), plus one operation.
func single(t *testing.T, operation string) graph.Operation {
	t.Helper()
	doc := `
operands:
  - {name: x, kind: input, dtype: float32, shape: [1, 4, 4, 2]}
  - {name: f, kind: input, dtype: float32, shape: [3, 2, 2, 2]}
  - {name: z, kind: intermediate, dtype: float32, shape: [1, 4, 4, 2]}
  - {name: y, kind: output, dtype: float32, shape: [1, 4, 4, 2]}
operations:
  - ` + operation + "\n"
	info, err := Parse([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, info.Operations, 1)
	return info.Operations[0]
}

// TestRegistry_Defaults verifies parameter defaults per operation.
func TestRegistry_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		want      graph.Operation
	}{
		{
			name:      "conv2d",
			operation: "{op: conv2d, inputs: [x, f], outputs: [y]}",
			want: &graph.Conv2d{
				Input: 0, Filter: 1, Output: 3,
				Strides:   graph.Size2d{Height: 1, Width: 1},
				Dilations: graph.Size2d{Height: 1, Width: 1},
				Groups:    1,
			},
		},
		{
			name:      "maxPool2d window covers input",
			operation: "{op: maxPool2d, inputs: [x], outputs: [y]}",
			want: &graph.Pool2d{
				Kind: graph.PoolMax, Input: 0, Output: 3,
				WindowDimensions: graph.Size2d{Height: 4, Width: 4},
				Strides:          graph.Size2d{Height: 1, Width: 1},
				Dilations:        graph.Size2d{Height: 1, Width: 1},
			},
		},
		{
			name:      "maxPool2d nchw window",
			operation: "{op: maxPool2d, inputs: [x], outputs: [y], params: {layout: nchw}}",
			want: &graph.Pool2d{
				Kind: graph.PoolMax, Input: 0, Output: 3,
				WindowDimensions: graph.Size2d{Height: 4, Width: 2},
				Strides:          graph.Size2d{Height: 1, Width: 1},
				Dilations:        graph.Size2d{Height: 1, Width: 1},
				Layout:           graph.LayoutNCHW,
			},
		},
		{
			name:      "softmax last axis",
			operation: "{op: softmax, inputs: [x], outputs: [y]}",
			want:      &graph.Softmax{Input: 0, Output: 3, Axis: 3},
		},
		{
			name:      "clamp unbounded",
			operation: "{op: clamp, inputs: [x], outputs: [y]}",
			want: &graph.Clamp{
				Input: 0, Output: 3,
				MinValue: float32(math.Inf(-1)), MaxValue: float32(math.Inf(1)),
			},
		},
		{
			name:      "hardSigmoid",
			operation: "{op: hardSigmoid, inputs: [x], outputs: [y]}",
			want:      &graph.HardSigmoid{Input: 0, Output: 3, Alpha: 0.2, Beta: 0.5},
		},
		{
			name:      "reduceSum all axes",
			operation: "{op: reduceSum, inputs: [x], outputs: [y]}",
			want:      &graph.Reduce{Kind: graph.ReduceSum, Input: 0, Output: 3, Axes: []uint32{0, 1, 2, 3}},
		},
		{
			name:      "reduceMean empty axes",
			operation: "{op: reduceMean, inputs: [x], outputs: [y], params: {axes: []}}",
			want:      &graph.Reduce{Kind: graph.ReduceMean, Input: 0, Output: 3, Axes: []uint32{}},
		},
		{
			name:      "layerNormalization",
			operation: "{op: layerNormalization, inputs: [x], outputs: [y]}",
			want: &graph.LayerNormalization{
				Input: 0, Output: 3, Axes: []uint32{1, 2, 3}, Epsilon: 1e-5,
			},
		},
		{
			name:      "transpose reversed",
			operation: "{op: transpose, inputs: [x], outputs: [y]}",
			want:      &graph.Transpose{Input: 0, Output: 3, Permutation: []uint32{3, 2, 1, 0}},
		},
		{
			name:      "pad zeros",
			operation: "{op: pad, inputs: [x], outputs: [y], params: {mode: reflection}}",
			want: &graph.Pad{
				Input: 0, Output: 3,
				Beginning: []uint32{0, 0, 0, 0}, Ending: []uint32{0, 0, 0, 0},
				Mode: graph.PaddingReflection,
			},
		},
		{
			name:      "slice whole input",
			operation: "{op: slice, inputs: [x], outputs: [y]}",
			want: &graph.Slice{
				Input: 0, Output: 3,
				Starts: []uint32{0, 0, 0, 0}, Sizes: []uint32{1, 4, 4, 2},
			},
		},
		{
			name:      "resample2d",
			operation: "{op: resample2d, inputs: [x], outputs: [y], params: {mode: linear}}",
			want: &graph.Resample2d{
				Input: 0, Output: 3, Mode: graph.InterpolationLinear, Axes: []uint32{1, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := single(t, tt.operation)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("operation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestRegistry_Parameters verifies explicit parameters override defaults.
func TestRegistry_Parameters(t *testing.T) {
	op := single(t, `op: convTranspose2d
    inputs: [x, f]
    outputs: [y]
    params:
      strides: [2, 3]
      padding: [1, 2, 3, 4]
      inputLayout: nchw
      filterLayout: oihw`)

	want := &graph.ConvTranspose2d{
		Input: 0, Filter: 1, Output: 3,
		Strides:   graph.Size2d{Height: 2, Width: 3},
		Dilations: graph.Size2d{Height: 1, Width: 1},
		Padding: graph.Padding2d{
			Beginning: graph.Size2d{Height: 1, Width: 3},
			Ending:    graph.Size2d{Height: 2, Width: 4},
		},
		Groups:       1,
		InputLayout:  graph.LayoutNCHW,
		FilterLayout: graph.FilterOIHW,
	}
	if diff := cmp.Diff(want, op); diff != "" {
		t.Errorf("operation mismatch (-want +got):\n%s", diff)
	}
}

// TestRegistry_ElementwiseBinary verifies every binary kind is registered
// under its name with lhs, rhs and output in order.
func TestRegistry_ElementwiseBinary(t *testing.T) {
	for kind := graph.BinaryAdd; kind <= graph.BinaryLogicalXor; kind++ {
		t.Run(kind.String(), func(t *testing.T) {
			op := single(t, "{op: "+kind.String()+", inputs: [x, z], outputs: [y]}")
			assert.Equal(t, &graph.ElementwiseBinary{Kind: kind, LHS: 0, RHS: 2, Output: 3}, op)
		})
	}
}

// TestRegistry_OptionalInputs verifies null entries omit optional operands.
func TestRegistry_OptionalInputs(t *testing.T) {
	op := single(t, "{op: batchNormalization, inputs: [x, f, f, null, z], outputs: [y], params: {axis: 3}}")

	bn, ok := op.(*graph.BatchNormalization)
	require.True(t, ok)
	assert.Nil(t, bn.Scale)
	require.NotNil(t, bn.Bias)
	assert.Equal(t, graph.OperandID(2), *bn.Bias)
	assert.Equal(t, uint32(3), bn.Axis)
}

// TestRegistry_Split verifies every output is carried.
func TestRegistry_Split(t *testing.T) {
	op := single(t, "{op: split, inputs: [x], outputs: [z, y], params: {axis: 3}}")
	assert.Equal(t, &graph.Split{Input: 0, Outputs: []graph.OperandID{2, 3}, Axis: 3}, op)
}

// TestRegistry_BadParameters verifies arity and parameter errors.
func TestRegistry_BadParameters(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		wantMsg   string
	}{
		{name: "missing input", operation: "{op: add, inputs: [x], outputs: [y]}", wantMsg: "at least 2 inputs"},
		{name: "extra input", operation: "{op: relu, inputs: [x, f], outputs: [y]}", wantMsg: "at most 1 inputs"},
		{name: "no output", operation: "{op: split, inputs: [x], outputs: []}", wantMsg: "at least one output"},
		{name: "null required", operation: "{op: conv2d, inputs: [x, null], outputs: [y]}", wantMsg: "input 1 is required"},
		{name: "bad enum", operation: "{op: conv2d, inputs: [x, f], outputs: [y], params: {inputLayout: nhcw}}", wantMsg: `unknown value "nhcw"`},
		{name: "bad pair", operation: "{op: conv2d, inputs: [x, f], outputs: [y], params: {strides: [1, 1, 1]}}", wantMsg: "want 2 entries"},
		{name: "bad padding", operation: "{op: conv2d, inputs: [x, f], outputs: [y], params: {padding: [1]}}", wantMsg: "want 4 entries"},
		{name: "bad type", operation: "{op: gemm, inputs: [x, f], outputs: [y], params: {aTranspose: maybe}}", wantMsg: "parameter aTranspose"},
		{name: "float overflow", operation: "{op: elu, inputs: [x], outputs: [y], params: {alpha: 1e300}}", wantMsg: "does not fit in float32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `
operands:
  - {name: x, kind: input, dtype: float32, shape: [1, 4, 4, 2]}
  - {name: f, kind: input, dtype: float32, shape: [3, 2, 2, 2]}
  - {name: y, kind: output, dtype: float32, shape: [1, 4, 4, 2]}
operations:
  - ` + tt.operation + "\n"
			_, err := Parse([]byte(doc), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// TestSupportedOps verifies every operation kind has a name.
func TestSupportedOps(t *testing.T) {
	ops := SupportedOps()
	assert.IsNonDecreasing(t, ops)
	for _, name := range []string{
		"argMax", "argMin", "batchNormalization", "clamp", "concat", "conv2d",
		"convTranspose2d", "add", "logicalXor", "abs", "cast", "elu", "expand",
		"gather", "gelu", "gemm", "hardSigmoid", "hardSwish", "instanceNormalization",
		"layerNormalization", "leakyRelu", "linear", "matmul", "pad", "averagePool2d",
		"maxPool2d", "l2Pool2d", "prelu", "reduceL1", "reduceSumSquare", "relu",
		"resample2d", "reshape", "sigmoid", "slice", "softmax", "softplus",
		"softsign", "split", "tanh", "transpose", "where",
	} {
		assert.Contains(t, ops, name)
	}
}
