package tflite

import (
	"slices"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// broadcastShape is 1 on every axis of a rank-rank tensor except axes,
// which keep the extent of shape.
func broadcastShape(shape []int32, axes []int32) []int32 {
	out := make([]int32, len(shape))
	for i := range out {
		out[i] = 1
	}
	for _, axis := range axes {
		out[axis] = shape[axis]
	}
	return out
}

// keepDimsShape is shape with axes reduced to 1.
func keepDimsShape(shape []int32, axes []int32) []int32 {
	out := slices.Clone(shape)
	for _, axis := range axes {
		out[axis] = 1
	}
	return out
}

// argsort returns the permutation that sorts axes ascending.
func argsort(axes []int32) []int32 {
	perm := make([]int32, len(axes))
	for i := range perm {
		perm[i] = int32(i)
	}
	slices.SortStableFunc(perm, func(a, b int32) int {
		return int(axes[a]) - int(axes[b])
	})
	return perm
}

func (l *lowerer) checkAxes(op graph.Operation, axes []int32, rank int) error {
	for _, axis := range axes {
		if int(axis) >= rank {
			return newError(UnsupportedParameter, op.Name(), "axis %d out of range for rank %d", axis, rank)
		}
	}
	return nil
}

// broadcastParam reshapes an optional per-axis parameter to shape, or
// returns optionalTensor when it is absent.
func (l *lowerer) broadcastParam(id *graph.OperandID, shape []int32) int32 {
	if id == nil {
		return optionalTensor
	}
	return l.reshapeToTemp(l.index(*id), shape)
}

// center emits x - mean.
func (l *lowerer) center(x, mean int32) int32 {
	centered := l.addTemporary(l.shapeOf(x), l.typeOf(x))
	l.binary(schema.BuiltinOperatorSUB, x, mean, centered)
	return centered
}

// computeStatistics emits the mean over axes and returns x - mean and the
// variance, both with the reduced axes kept.
func (l *lowerer) computeStatistics(x int32, axes []int32) (centered, variance int32) {
	shape, typ := l.shapeOf(x), l.typeOf(x)
	reduced := keepDimsShape(shape, axes)

	mean := l.addTemporary(reduced, typ)
	l.reduce(schema.BuiltinOperatorMEAN, x, axes, true, mean)
	centered = l.center(x, mean)

	squared := l.addTemporary(shape, typ)
	l.binary(schema.BuiltinOperatorMUL, centered, centered, squared)
	variance = l.addTemporary(reduced, typ)
	l.reduce(schema.BuiltinOperatorMEAN, squared, axes, true, variance)
	return centered, variance
}

// normalize emits scale*centered/sqrt(variance+epsilon)+bias into output.
// scale and bias may be optionalTensor.
func (l *lowerer) normalize(centered, variance, scale, bias int32, dt graph.DataType, epsilon float32, output int32) {
	shape, typ := l.shapeOf(centered), l.typeOf(centered)
	varianceShape := l.shapeOf(variance)

	shifted := l.addTemporary(varianceShape, typ)
	l.binary(schema.BuiltinOperatorADD, variance, l.addScalar(dt, epsilon), shifted)
	stddev := l.addTemporary(varianceShape, typ)
	l.unary(schema.BuiltinOperatorSQRT, shifted, stddev)

	steps := 1
	if scale != optionalTensor {
		steps++
	}
	if bias != optionalTensor {
		steps++
	}
	c := l.newChain(output, steps)

	result := c.next(shape, typ)
	l.binary(schema.BuiltinOperatorDIV, centered, stddev, result)
	if scale != optionalTensor {
		scaled := c.next(shape, typ)
		l.binary(schema.BuiltinOperatorMUL, result, scale, scaled)
		result = scaled
	}
	if bias != optionalTensor {
		l.binary(schema.BuiltinOperatorADD, result, bias, c.next(shape, typ))
	}
}

func (l *lowerer) VisitBatchNormalization(op *graph.BatchNormalization) error {
	if err := l.requireFloat(op, op.Input, op.Mean, op.Variance); err != nil {
		return err
	}
	axis, err := toInt32(op.Axis, op.Name(), "axis")
	if err != nil {
		return err
	}
	input := l.index(op.Input)
	shape := l.shapeOf(input)
	if err := l.checkAxes(op, []int32{axis}, len(shape)); err != nil {
		return err
	}

	target := broadcastShape(shape, []int32{axis})
	mean := l.reshapeToTemp(l.index(op.Mean), target)
	variance := l.reshapeToTemp(l.index(op.Variance), target)
	scale := l.broadcastParam(op.Scale, target)
	bias := l.broadcastParam(op.Bias, target)

	centered := l.center(input, mean)
	l.normalize(centered, variance, scale, bias, l.dataType(op.Input), op.Epsilon, l.index(op.Output))
	return nil
}

func (l *lowerer) VisitInstanceNormalization(op *graph.InstanceNormalization) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	input := l.index(op.Input)
	shape := l.shapeOf(input)
	if len(shape) != 4 {
		return newError(UnsupportedParameter, op.Name(), "input must be 4-D")
	}

	spatial, channel := []int32{1, 2}, int32(3)
	if op.Layout == graph.LayoutNCHW {
		spatial, channel = []int32{2, 3}, 1
	}

	target := broadcastShape(shape, []int32{channel})
	scale := l.broadcastParam(op.Scale, target)
	bias := l.broadcastParam(op.Bias, target)

	centered, variance := l.computeStatistics(input, spatial)
	l.normalize(centered, variance, scale, bias, l.dataType(op.Input), op.Epsilon, l.index(op.Output))
	return nil
}

func (l *lowerer) VisitLayerNormalization(op *graph.LayerNormalization) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	axes, err := axesToInt32(op, op.Axes)
	if err != nil {
		return err
	}
	input := l.index(op.Input)
	shape := l.shapeOf(input)
	if err := l.checkAxes(op, axes, len(shape)); err != nil {
		return err
	}

	for _, param := range []*graph.OperandID{op.Scale, op.Bias} {
		if param == nil {
			continue
		}
		paramShape := l.shapeOf(l.index(*param))
		if len(paramShape) != len(axes) {
			return newError(UnsupportedParameter, op.Name(), "operand %d has rank %d, want %d to match the axes",
				*param, len(paramShape), len(axes))
		}
		for i, axis := range axes {
			if paramShape[i] != shape[axis] {
				return newError(UnsupportedParameter, op.Name(), "operand %d has extent %d at position %d, want %d",
					*param, paramShape[i], i, shape[axis])
			}
		}
	}

	target := broadcastShape(shape, axes)
	scale := l.layerNormParam(op.Scale, axes, target)
	bias := l.layerNormParam(op.Bias, axes, target)

	centered, variance := l.computeStatistics(input, axes)
	l.normalize(centered, variance, scale, bias, l.dataType(op.Input), op.Epsilon, l.index(op.Output))
	return nil
}

// layerNormParam brings a scale or bias laid out in axes order into input
// axis order, then reshapes it to target.
func (l *lowerer) layerNormParam(id *graph.OperandID, axes []int32, target []int32) int32 {
	if id == nil {
		return optionalTensor
	}
	param := l.index(*id)
	if !slices.IsSorted(axes) {
		param = l.transposeToTemp(param, argsort(axes))
	}
	return l.reshapeToTemp(param, target)
}
