package tflite

import (
	"slices"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

var reduceOperators = map[graph.ReduceKind]schema.BuiltinOperator{
	graph.ReduceMax:     schema.BuiltinOperatorREDUCE_MAX,
	graph.ReduceMean:    schema.BuiltinOperatorMEAN,
	graph.ReduceMin:     schema.BuiltinOperatorREDUCE_MIN,
	graph.ReduceProduct: schema.BuiltinOperatorREDUCE_PROD,
	graph.ReduceSum:     schema.BuiltinOperatorSUM,
}

func (l *lowerer) VisitReduce(op *graph.Reduce) error {
	axes, err := axesToInt32(op, op.Axes)
	if err != nil {
		return err
	}
	input, output := l.index(op.Input), l.index(op.Output)

	if builtin, ok := reduceOperators[op.Kind]; ok {
		l.reduce(builtin, input, axes, op.KeepDimensions, output)
		return nil
	}

	dt := l.dataType(op.Input)
	inShape, outShape, typ := l.shapeOf(input), l.shapeOf(output), l.typeOf(input)

	switch op.Kind {
	case graph.ReduceL1:
		if err := l.rejectUnsigned(op, op.Input); err != nil {
			return err
		}
		abs := l.addTemporary(inShape, typ)
		l.unary(schema.BuiltinOperatorABS, input, abs)
		l.reduce(schema.BuiltinOperatorSUM, abs, axes, op.KeepDimensions, output)

	case graph.ReduceL2:
		if err := l.requireFloat(op, op.Input); err != nil {
			return err
		}
		c := l.newChain(output, 3)
		squared := c.next(inShape, typ)
		l.binary(schema.BuiltinOperatorPOW, input, l.addScalar(dt, 2), squared)
		sum := c.next(outShape, typ)
		l.reduce(schema.BuiltinOperatorSUM, squared, axes, op.KeepDimensions, sum)
		l.binary(schema.BuiltinOperatorPOW, sum, l.addScalar(dt, 0.5), c.next(outShape, typ))

	case graph.ReduceLogSum:
		if err := l.requireFloat(op, op.Input); err != nil {
			return err
		}
		sum := l.addTemporary(outShape, typ)
		l.reduce(schema.BuiltinOperatorSUM, input, axes, op.KeepDimensions, sum)
		l.unary(schema.BuiltinOperatorLOG, sum, output)

	case graph.ReduceLogSumExp:
		if err := l.requireFloat(op, op.Input); err != nil {
			return err
		}
		c := l.newChain(output, 3)
		exp := c.next(inShape, typ)
		l.unary(schema.BuiltinOperatorEXP, input, exp)
		sum := c.next(outShape, typ)
		l.reduce(schema.BuiltinOperatorSUM, exp, axes, op.KeepDimensions, sum)
		l.unary(schema.BuiltinOperatorLOG, sum, c.next(outShape, typ))

	case graph.ReduceSumSquare:
		squared := l.addTemporary(inShape, typ)
		l.binary(schema.BuiltinOperatorPOW, input, l.addScalar(dt, 2), squared)
		l.reduce(schema.BuiltinOperatorSUM, squared, axes, op.KeepDimensions, output)

	default:
		return newError(UnsupportedParameter, op.Name(), "unknown reduction kind %d", op.Kind)
	}
	return nil
}

// reduce emits a reducer with a fresh axes constant.
func (l *lowerer) reduce(op schema.BuiltinOperator, input int32, axes []int32, keepDims bool, output int32) {
	axesIndex := l.addInt32Vector(axes)
	l.emit(op, []int32{input, axesIndex}, []int32{output}, &schema.ReducerOptionsT{KeepDims: keepDims})
}

func (l *lowerer) VisitArgMinMax(op *graph.ArgMinMax) error {
	if len(op.Axes) != 1 {
		return newError(AxisCardinalityViolation, op.Name(), "got %d axes, want exactly 1", len(op.Axes))
	}
	if op.SelectLastIndex {
		return newError(UnsupportedParameter, op.Name(), "selectLastIndex is not supported")
	}
	axis, err := toInt32(op.Axes[0], op.Name(), "axis")
	if err != nil {
		return err
	}

	input, output := l.index(op.Input), l.index(op.Output)
	inShape := l.shapeOf(input)
	if int(axis) >= len(inShape) {
		return newError(UnsupportedParameter, op.Name(), "axis %d out of range for rank %d", axis, len(inShape))
	}

	outputType := l.typeOf(output)
	if outputType != schema.TensorTypeINT32 && outputType != schema.TensorTypeINT64 {
		return newError(UnsupportedDataType, op.Name(), "output type %s, want int32 or int64", outputType)
	}

	builtin := schema.BuiltinOperatorARG_MAX
	var options schema.BuiltinOptionsT = &schema.ArgMaxOptionsT{OutputType: outputType}
	if op.Kind == graph.ArgMin {
		builtin = schema.BuiltinOperatorARG_MIN
		options = &schema.ArgMinOptionsT{OutputType: outputType}
	}

	// ARG_MIN and ARG_MAX always drop the reduced axis.
	result := output
	if op.KeepDimensions {
		result = l.addTemporary(slices.Delete(slices.Clone(inShape), int(axis), int(axis)+1), outputType)
	}
	axisIndex := l.addInt32Vector([]int32{axis})
	l.emit(builtin, []int32{input, axisIndex}, []int32{result}, options)

	if op.KeepDimensions {
		l.reshape(result, l.shapeOf(output), output)
	}
	return nil
}
