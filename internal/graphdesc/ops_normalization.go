package graphdesc

import (
	"github.com/born-ml/tflgen/internal/graph"
)

const defaultEpsilon = 1e-5

func (r *registry) registerNormalization() {
	r.register("batchNormalization", buildBatchNormalization)
	r.register("instanceNormalization", buildInstanceNormalization)
	r.register("layerNormalization", buildLayerNormalization)
}

// buildBatchNormalization takes inputs [input, mean, variance, scale?, bias?].
func buildBatchNormalization(n *node) (graph.Operation, error) {
	if err := n.arity(3, 5, 1); err != nil {
		return nil, err
	}
	return &graph.BatchNormalization{
		Input:    n.input(0),
		Mean:     n.input(1),
		Variance: n.input(2),
		Scale:    n.optional(3),
		Bias:     n.optional(4),
		Output:   n.output(0),
		Axis:     n.params.getUint32("axis", 1),
		Epsilon:  n.params.getFloat32("epsilon", defaultEpsilon),
	}, nil
}

// buildInstanceNormalization takes inputs [input, scale?, bias?].
func buildInstanceNormalization(n *node) (graph.Operation, error) {
	if err := n.arity(1, 3, 1); err != nil {
		return nil, err
	}
	return &graph.InstanceNormalization{
		Input:   n.input(0),
		Scale:   n.optional(1),
		Bias:    n.optional(2),
		Output:  n.output(0),
		Epsilon: n.params.getFloat32("epsilon", defaultEpsilon),
		Layout:  enum(n.params, "layout", graph.LayoutNHWC, inputLayouts),
	}, nil
}

// buildLayerNormalization takes inputs [input, scale?, bias?]. The axes
// default to every axis but the first.
func buildLayerNormalization(n *node) (graph.Operation, error) {
	if err := n.arity(1, 3, 1); err != nil {
		return nil, err
	}
	axes := n.allAxes()
	if len(axes) > 0 {
		axes = axes[1:]
	}
	return &graph.LayerNormalization{
		Input:   n.input(0),
		Scale:   n.optional(1),
		Bias:    n.optional(2),
		Output:  n.output(0),
		Axes:    n.params.getUint32s("axes", axes),
		Epsilon: n.params.getFloat32("epsilon", defaultEpsilon),
	}, nil
}
