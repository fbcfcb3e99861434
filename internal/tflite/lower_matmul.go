package tflite

import (
	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// VisitGemm lowers to FULLY_CONNECTED, whose weights are laid out
// [outputs, inputs], i.e. B already transposed.
func (l *lowerer) VisitGemm(op *graph.Gemm) error {
	if err := l.requireFloat(op, op.A, op.B); err != nil {
		return err
	}
	if op.Alpha != 1 || op.Beta != 1 {
		return newError(UnsupportedParameter, op.Name(), "alpha %g and beta %g must both be 1", op.Alpha, op.Beta)
	}
	if op.ATranspose {
		return newError(UnsupportedParameter, op.Name(), "aTranspose is not supported")
	}

	a, output := l.index(op.A), l.index(op.Output)
	weights := l.index(op.B)
	if len(l.shapeOf(a)) != 2 || len(l.shapeOf(weights)) != 2 {
		return newError(UnsupportedParameter, op.Name(), "a and b must be 2-D")
	}
	if !op.BTranspose {
		weights = l.transposeToTemp(weights, []int32{1, 0})
	}
	units := l.shapeOf(weights)[0]

	bias, addAfter := optionalTensor, false
	if op.C != nil {
		c := l.index(*op.C)
		if shape := l.shapeOf(c); len(shape) == 1 && shape[0] == units {
			bias = c
		} else {
			addAfter = true
		}
	}

	options := &schema.FullyConnectedOptionsT{}
	if !addAfter {
		l.emit(schema.BuiltinOperatorFULLY_CONNECTED, []int32{a, weights, bias}, []int32{output}, options)
		return nil
	}

	product := l.addTemporary(l.shapeOf(output), l.typeOf(output))
	l.emit(schema.BuiltinOperatorFULLY_CONNECTED, []int32{a, weights, optionalTensor}, []int32{product}, options)
	l.binary(schema.BuiltinOperatorADD, product, l.index(*op.C), output)
	return nil
}

func (l *lowerer) VisitMatmul(op *graph.Matmul) error {
	if err := l.requireFloat(op, op.A, op.B); err != nil {
		return err
	}
	l.emit(schema.BuiltinOperatorBATCH_MATMUL, []int32{l.index(op.A), l.index(op.B)}, []int32{l.index(op.Output)},
		&schema.BatchMatMulOptionsT{})
	return nil
}
