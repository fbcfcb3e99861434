package graphdesc

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/born-ml/tflgen/internal/graph"
)

// builder turns a resolved operation description into a graph operation.
type builder func(n *node) (graph.Operation, error)

// registry maps operation names to builders.
type registry struct {
	builders map[string]builder
}

var defaultRegistry = newRegistry()

func newRegistry() *registry {
	r := &registry{
		builders: make(map[string]builder),
	}

	r.registerConv()
	r.registerElementwise()
	r.registerActivations()
	r.registerMatmul()
	r.registerNormalization()
	r.registerReduce()
	r.registerShape()

	return r
}

func (r *registry) register(op string, b builder) {
	r.builders[op] = b
}

func (r *registry) get(op string) (builder, bool) {
	b, ok := r.builders[op]
	return b, ok
}

// SupportedOps returns the sorted names accepted in the op field.
func SupportedOps() []string {
	ops := make([]string, 0, len(defaultRegistry.builders))
	for op := range defaultRegistry.builders {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// node is an operation description with operand names resolved.
type node struct {
	op      string
	inputs  []*graph.Operand // nil marks an omitted optional input
	outputs []*graph.Operand
	params  *params
}

// arity checks operand counts. The first minInputs inputs are required;
// maxInputs < 0 means unbounded and outputs < 0 means at least one.
func (n *node) arity(minInputs, maxInputs, outputs int) error {
	switch {
	case len(n.inputs) < minInputs:
		return errors.Newf("%s requires at least %d inputs, got %d", n.op, minInputs, len(n.inputs))
	case maxInputs >= 0 && len(n.inputs) > maxInputs:
		return errors.Newf("%s takes at most %d inputs, got %d", n.op, maxInputs, len(n.inputs))
	case outputs >= 0 && len(n.outputs) != outputs:
		return errors.Newf("%s requires %d outputs, got %d", n.op, outputs, len(n.outputs))
	case outputs < 0 && len(n.outputs) == 0:
		return errors.Newf("%s requires at least one output", n.op)
	}
	for i := range minInputs {
		if n.inputs[i] == nil {
			return errors.Newf("%s input %d is required", n.op, i)
		}
	}
	for i, output := range n.outputs {
		if output.Kind == graph.KindInput || output.Kind == graph.KindConstant {
			return errors.Newf("%s output %d (%q) is not writable: kind %s", n.op, i, output.Name, output.Kind)
		}
	}
	return nil
}

func (n *node) input(i int) graph.OperandID {
	return n.inputs[i].ID
}

func (n *node) optional(i int) *graph.OperandID {
	if i >= len(n.inputs) || n.inputs[i] == nil {
		return nil
	}
	return graph.Ref(n.inputs[i].ID)
}

func (n *node) inputIDs() []graph.OperandID {
	ids := make([]graph.OperandID, len(n.inputs))
	for i := range n.inputs {
		ids[i] = n.input(i)
	}
	return ids
}

func (n *node) output(i int) graph.OperandID {
	return n.outputs[i].ID
}

func (n *node) outputIDs() []graph.OperandID {
	ids := make([]graph.OperandID, len(n.outputs))
	for i := range n.outputs {
		ids[i] = n.output(i)
	}
	return ids
}

func (n *node) rank() int {
	return n.inputs[0].Shape.Rank()
}

// allAxes returns [0, rank) of the first input.
func (n *node) allAxes() []uint32 {
	axes := make([]uint32, n.rank())
	for i := range axes {
		axes[i] = uint32(i) //nolint:gosec // G115: rank is small.
	}
	return axes
}

// unary builds an operation with one required input and one output.
func unary(build func(input, output graph.OperandID, p *params) graph.Operation) builder {
	return func(n *node) (graph.Operation, error) {
		if err := n.arity(1, 1, 1); err != nil {
			return nil, err
		}
		return build(n.input(0), n.output(0), n.params), nil
	}
}
