// Package tflite lowers a [graph.GraphInfo] into a serialized TFLite model.
//
// The build is a single forward pass over the graph:
//
//	builder := tflite.NewGraphBuilder(info)
//	if err := builder.SerializeOperands(); err != nil { ... }
//	if err := builder.SerializeOperations(); err != nil { ... }
//	model := builder.Finalize()
//
// [CreateSerializedModel] runs the three phases in order.
//
// Every operand becomes one tensor (plus one buffer when it is a constant).
// Every operation is lowered to one or more TFLite builtin operators; the
// operations without a direct builtin are decomposed into primitive chains
// over freshly allocated temporary tensors. Synthesized constants such as
// scalars, axis lists and padding vectors each get their own buffer and are
// never shared between operators.
//
// The first unsupported parameter, data type or out-of-range integer aborts
// the build with an [*Error].
package tflite
