package graphdesc

import (
	"github.com/born-ml/tflgen/internal/graph"
)

func (r *registry) registerReduce() {
	for kind := graph.ReduceL1; kind <= graph.ReduceSumSquare; kind++ {
		r.register(kind.String(), reduce(kind))
	}
	r.register("argMin", argMinMax(graph.ArgMin))
	r.register("argMax", argMinMax(graph.ArgMax))
}

// reduce defaults the axes to every axis.
func reduce(kind graph.ReduceKind) builder {
	return func(n *node) (graph.Operation, error) {
		if err := n.arity(1, 1, 1); err != nil {
			return nil, err
		}
		return &graph.Reduce{
			Kind:           kind,
			Input:          n.input(0),
			Output:         n.output(0),
			Axes:           n.params.getUint32s("axes", n.allAxes()),
			KeepDimensions: n.params.getBool("keepDimensions", false),
		}, nil
	}
}

func argMinMax(kind graph.ArgMinMaxKind) builder {
	return func(n *node) (graph.Operation, error) {
		if err := n.arity(1, 1, 1); err != nil {
			return nil, err
		}
		return &graph.ArgMinMax{
			Kind:            kind,
			Input:           n.input(0),
			Output:          n.output(0),
			Axes:            n.params.getUint32s("axes", n.allAxes()),
			KeepDimensions:  n.params.getBool("keepDimensions", false),
			SelectLastIndex: n.params.getBool("selectLastIndex", false),
		}, nil
	}
}
