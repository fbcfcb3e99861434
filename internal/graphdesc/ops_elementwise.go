package graphdesc

import (
	"math"

	"github.com/born-ml/tflgen/internal/graph"
)

func (r *registry) registerElementwise() {
	for kind := graph.BinaryAdd; kind <= graph.BinaryLogicalXor; kind++ {
		r.register(kind.String(), elementwiseBinary(kind))
	}
	for kind := graph.UnaryAbs; kind <= graph.UnaryCast; kind++ {
		r.register(kind.String(), unary(func(input, output graph.OperandID, _ *params) graph.Operation {
			return &graph.ElementwiseUnary{Kind: kind, Input: input, Output: output}
		}))
	}
	r.register("clamp", unary(func(input, output graph.OperandID, p *params) graph.Operation {
		return &graph.Clamp{
			Input:    input,
			Output:   output,
			MinValue: p.getFloat32("minValue", float32(math.Inf(-1))),
			MaxValue: p.getFloat32("maxValue", float32(math.Inf(1))),
		}
	}))
	r.register("where", buildWhere)
}

func elementwiseBinary(kind graph.BinaryKind) builder {
	return func(n *node) (graph.Operation, error) {
		if err := n.arity(2, 2, 1); err != nil {
			return nil, err
		}
		return &graph.ElementwiseBinary{Kind: kind, LHS: n.input(0), RHS: n.input(1), Output: n.output(0)}, nil
	}
}

func buildWhere(n *node) (graph.Operation, error) {
	if err := n.arity(3, 3, 1); err != nil {
		return nil, err
	}
	return &graph.Where{
		Condition:  n.input(0),
		TrueValue:  n.input(1),
		FalseValue: n.input(2),
		Output:     n.output(0),
	}, nil
}
