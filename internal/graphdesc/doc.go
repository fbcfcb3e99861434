// Package graphdesc reads YAML graph descriptions into [graph.GraphInfo].
//
// A description lists operands, then operations that refer to operands by
// name. Operand ids are assigned in declaration order, and graph inputs and
// outputs are the input and output operands in declaration order.
//
//	operands:
//	  - {name: x, kind: input, dtype: float32, shape: [1, 4]}
//	  - {name: w, kind: constant, dtype: float32, shape: [2, 4], tensor: fc.weight}
//	  - {name: b, kind: constant, dtype: float32, shape: [2], values: [0.5, -0.5]}
//	  - {name: y, kind: output, dtype: float32, shape: [1, 2]}
//	operations:
//	  - op: gemm
//	    inputs: [x, w, b]
//	    outputs: [y]
//	    params: {bTranspose: true}
//
// Constants carry either inline values, encoded little-endian by dtype, or
// the name of a tensor in a [ConstantSource] such as a SafeTensors file.
// An empty or null entry in an inputs list omits an optional operand.
package graphdesc
