package graphdesc

import (
	"github.com/born-ml/tflgen/internal/graph"
)

func (r *registry) registerMatmul() {
	r.register("gemm", buildGemm)
	r.register("matmul", buildMatmul)
}

// buildGemm takes inputs [a, b, c?].
func buildGemm(n *node) (graph.Operation, error) {
	if err := n.arity(2, 3, 1); err != nil {
		return nil, err
	}
	p := n.params
	return &graph.Gemm{
		A:          n.input(0),
		B:          n.input(1),
		C:          n.optional(2),
		Output:     n.output(0),
		Alpha:      p.getFloat32("alpha", 1),
		Beta:       p.getFloat32("beta", 1),
		ATranspose: p.getBool("aTranspose", false),
		BTranspose: p.getBool("bTranspose", false),
	}, nil
}

func buildMatmul(n *node) (graph.Operation, error) {
	if err := n.arity(2, 2, 1); err != nil {
		return nil, err
	}
	return &graph.Matmul{A: n.input(0), B: n.input(1), Output: n.output(0)}, nil
}
