package graphdesc

import (
	"github.com/born-ml/tflgen/internal/graph"
)

func (r *registry) registerActivations() {
	r.register("elu", unary(func(input, output graph.OperandID, p *params) graph.Operation {
		return &graph.Elu{Input: input, Output: output, Alpha: p.getFloat32("alpha", 1)}
	}))
	r.register("gelu", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Gelu{Input: input, Output: output}
	}))
	r.register("hardSigmoid", unary(func(input, output graph.OperandID, p *params) graph.Operation {
		return &graph.HardSigmoid{
			Input:  input,
			Output: output,
			Alpha:  p.getFloat32("alpha", 0.2),
			Beta:   p.getFloat32("beta", 0.5),
		}
	}))
	r.register("hardSwish", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.HardSwish{Input: input, Output: output}
	}))
	r.register("leakyRelu", unary(func(input, output graph.OperandID, p *params) graph.Operation {
		return &graph.LeakyRelu{Input: input, Output: output, Alpha: p.getFloat32("alpha", 0.01)}
	}))
	r.register("linear", unary(func(input, output graph.OperandID, p *params) graph.Operation {
		return &graph.Linear{
			Input:  input,
			Output: output,
			Alpha:  p.getFloat32("alpha", 1),
			Beta:   p.getFloat32("beta", 0),
		}
	}))
	r.register("prelu", buildPrelu)
	r.register("relu", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Relu{Input: input, Output: output}
	}))
	r.register("sigmoid", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Sigmoid{Input: input, Output: output}
	}))
	r.register("softmax", buildSoftmax)
	r.register("softplus", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Softplus{Input: input, Output: output}
	}))
	r.register("softsign", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Softsign{Input: input, Output: output}
	}))
	r.register("tanh", unary(func(input, output graph.OperandID, _ *params) graph.Operation {
		return &graph.Tanh{Input: input, Output: output}
	}))
}

func buildPrelu(n *node) (graph.Operation, error) {
	if err := n.arity(2, 2, 1); err != nil {
		return nil, err
	}
	return &graph.Prelu{Input: n.input(0), Slope: n.input(1), Output: n.output(0)}, nil
}

// buildSoftmax defaults the axis to the last one.
func buildSoftmax(n *node) (graph.Operation, error) {
	if err := n.arity(1, 1, 1); err != nil {
		return nil, err
	}
	last := uint32(0)
	if rank := n.rank(); rank > 0 {
		last = uint32(rank - 1) //nolint:gosec // G115: rank is small.
	}
	return &graph.Softmax{Input: n.input(0), Output: n.output(0), Axis: n.params.getUint32("axis", last)}, nil
}
