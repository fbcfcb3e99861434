package graphdesc

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/born-ml/tflgen/internal/graph"
)

var paddingModes = map[string]graph.PaddingMode{
	"constant":   graph.PaddingConstant,
	"edge":       graph.PaddingEdge,
	"reflection": graph.PaddingReflection,
	"symmetric":  graph.PaddingSymmetric,
}

func (r *registry) registerShape() {
	r.register("concat", buildConcat)
	r.register("expand", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Expand{Input: input, Output: output}
	}))
	r.register("gather", buildGather)
	r.register("pad", buildPad)
	r.register("reshape", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Reshape{Input: input, Output: output}
	}))
	r.register("slice", buildSlice)
	r.register("split", buildSplit)
	r.register("transpose", buildTranspose)
}

func buildConcat(n *node) (graph.Operation, error) {
	if err := n.arity(1, -1, 1); err != nil {
		return nil, err
	}
	for i := range n.inputs {
		if n.inputs[i] == nil {
			return nil, errors.Newf("concat input %d is required", i)
		}
	}
	return &graph.Concat{Inputs: n.inputIDs(), Output: n.output(0), Axis: n.params.getUint32("axis", 0)}, nil
}

func buildGather(n *node) (graph.Operation, error) {
	if err := n.arity(2, 2, 1); err != nil {
		return nil, err
	}
	return &graph.Gather{
		Input:   n.input(0),
		Indices: n.input(1),
		Output:  n.output(0),
		Axis:    n.params.getUint32("axis", 0),
	}, nil
}

// buildPad defaults both padding lists to zeros.
func buildPad(n *node) (graph.Operation, error) {
	if err := n.arity(1, 1, 1); err != nil {
		return nil, err
	}
	zeros := make([]uint32, n.rank())
	p := n.params
	return &graph.Pad{
		Input:     n.input(0),
		Output:    n.output(0),
		Beginning: p.getUint32s("beginningPadding", zeros),
		Ending:    p.getUint32s("endingPadding", zeros),
		Mode:      enum(p, "mode", graph.PaddingConstant, paddingModes),
		Value:     p.getFloat32("value", 0),
	}, nil
}

// buildSlice defaults to the whole input with unit strides.
func buildSlice(n *node) (graph.Operation, error) {
	if err := n.arity(1, 1, 1); err != nil {
		return nil, err
	}
	p := n.params
	return &graph.Slice{
		Input:   n.input(0),
		Output:  n.output(0),
		Starts:  p.getUint32s("starts", make([]uint32, n.rank())),
		Sizes:   p.getUint32s("sizes", n.inputs[0].Shape),
		Strides: p.getUint32s("strides", nil),
	}, nil
}

func buildSplit(n *node) (graph.Operation, error) {
	if err := n.arity(1, 1, -1); err != nil {
		return nil, err
	}
	return &graph.Split{Input: n.input(0), Outputs: n.outputIDs(), Axis: n.params.getUint32("axis", 0)}, nil
}

// buildTranspose defaults to reversing the axes.
func buildTranspose(n *node) (graph.Operation, error) {
	if err := n.arity(1, 1, 1); err != nil {
		return nil, err
	}
	reversed := n.allAxes()
	slices.Reverse(reversed)
	return &graph.Transpose{
		Input:       n.input(0),
		Output:      n.output(0),
		Permutation: n.params.getUint32s("permutation", reversed),
	}, nil
}
