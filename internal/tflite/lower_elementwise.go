package tflite

import (
	"math"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

var arithmeticOperators = map[graph.BinaryKind]schema.BuiltinOperator{
	graph.BinaryAdd: schema.BuiltinOperatorADD,
	graph.BinarySub: schema.BuiltinOperatorSUB,
	graph.BinaryMul: schema.BuiltinOperatorMUL,
	graph.BinaryDiv: schema.BuiltinOperatorDIV,
	graph.BinaryMax: schema.BuiltinOperatorMAXIMUM,
	graph.BinaryMin: schema.BuiltinOperatorMINIMUM,
	graph.BinaryPow: schema.BuiltinOperatorPOW,
}

var comparisonOperators = map[graph.BinaryKind]schema.BuiltinOperator{
	graph.BinaryEqual:          schema.BuiltinOperatorEQUAL,
	graph.BinaryNotEqual:       schema.BuiltinOperatorNOT_EQUAL,
	graph.BinaryGreater:        schema.BuiltinOperatorGREATER,
	graph.BinaryGreaterOrEqual: schema.BuiltinOperatorGREATER_EQUAL,
	graph.BinaryLesser:         schema.BuiltinOperatorLESS,
	graph.BinaryLesserOrEqual:  schema.BuiltinOperatorLESS_EQUAL,
}

// Logical operands are uint8 in the graph; TFLite's logical kernels take
// BOOL, so xor is expressed as NOT_EQUAL on booleans.
var logicalOperators = map[graph.BinaryKind]schema.BuiltinOperator{
	graph.BinaryLogicalAnd: schema.BuiltinOperatorLOGICAL_AND,
	graph.BinaryLogicalOr:  schema.BuiltinOperatorLOGICAL_OR,
	graph.BinaryLogicalXor: schema.BuiltinOperatorNOT_EQUAL,
}

func (l *lowerer) VisitElementwiseBinary(op *graph.ElementwiseBinary) error {
	lhs, rhs, output := l.index(op.LHS), l.index(op.RHS), l.index(op.Output)

	if builtin, ok := arithmeticOperators[op.Kind]; ok {
		l.binary(builtin, lhs, rhs, output)
		return nil
	}

	if builtin, ok := comparisonOperators[op.Kind]; ok {
		result := l.addTemporary(l.shapeOf(output), schema.TensorTypeBOOL)
		l.binary(builtin, lhs, rhs, result)
		l.cast(result, output)
		return nil
	}

	builtin, ok := logicalOperators[op.Kind]
	if !ok {
		return newError(UnsupportedParameter, op.Name(), "unknown binary kind %d", op.Kind)
	}
	if err := l.requireUint8(op, op.LHS, op.RHS); err != nil {
		return err
	}
	lhsBool := l.castToTemp(lhs, schema.TensorTypeBOOL)
	rhsBool := l.castToTemp(rhs, schema.TensorTypeBOOL)
	result := l.addTemporary(l.shapeOf(output), schema.TensorTypeBOOL)
	l.binary(builtin, lhsBool, rhsBool, result)
	l.cast(result, output)
	return nil
}

func (l *lowerer) requireUint8(op graph.Operation, ids ...graph.OperandID) error {
	for _, id := range ids {
		if dt := l.dataType(id); dt != graph.Uint8 {
			return newError(UnsupportedDataType, op.Name(), "operand %d has data type %s, want uint8", id, dt)
		}
	}
	return nil
}

var floatUnaryOperators = map[graph.UnaryKind]schema.BuiltinOperator{
	graph.UnaryCeil:  schema.BuiltinOperatorCEIL,
	graph.UnaryCos:   schema.BuiltinOperatorCOS,
	graph.UnaryExp:   schema.BuiltinOperatorEXP,
	graph.UnaryFloor: schema.BuiltinOperatorFLOOR,
	graph.UnaryLog:   schema.BuiltinOperatorLOG,
	graph.UnarySin:   schema.BuiltinOperatorSIN,
	graph.UnarySqrt:  schema.BuiltinOperatorSQRT,
}

func (l *lowerer) VisitElementwiseUnary(op *graph.ElementwiseUnary) error {
	input, output := l.index(op.Input), l.index(op.Output)

	if builtin, ok := floatUnaryOperators[op.Kind]; ok {
		if err := l.requireFloat(op, op.Input); err != nil {
			return err
		}
		l.unary(builtin, input, output)
		return nil
	}

	switch op.Kind {
	case graph.UnaryAbs, graph.UnaryNeg:
		if err := l.rejectUnsigned(op, op.Input); err != nil {
			return err
		}
		builtin := schema.BuiltinOperatorABS
		if op.Kind == graph.UnaryNeg {
			builtin = schema.BuiltinOperatorNEG
		}
		l.unary(builtin, input, output)

	case graph.UnarySign:
		if err := l.rejectUnsigned(op, op.Input); err != nil {
			return err
		}
		l.unary(schema.BuiltinOperatorSIGN, input, output)

	case graph.UnaryLogicalNot:
		if err := l.requireUint8(op, op.Input); err != nil {
			return err
		}
		inputBool := l.castToTemp(input, schema.TensorTypeBOOL)
		result := l.addTemporary(l.shapeOf(output), schema.TensorTypeBOOL)
		l.unary(schema.BuiltinOperatorLOGICAL_NOT, inputBool, result)
		l.cast(result, output)

	case graph.UnaryReciprocal:
		if err := l.requireFloat(op, op.Input); err != nil {
			return err
		}
		one := l.addScalar(l.dataType(op.Input), 1)
		l.binary(schema.BuiltinOperatorDIV, one, input, output)

	case graph.UnaryTan:
		if err := l.requireFloat(op, op.Input); err != nil {
			return err
		}
		shape, typ := l.shapeOf(input), l.typeOf(input)
		sin := l.addTemporary(shape, typ)
		l.unary(schema.BuiltinOperatorSIN, input, sin)
		cos := l.addTemporary(shape, typ)
		l.unary(schema.BuiltinOperatorCOS, input, cos)
		l.binary(schema.BuiltinOperatorDIV, sin, cos, output)

	case graph.UnaryIdentity:
		l.reshape(input, l.shapeOf(output), output)

	case graph.UnaryCast:
		l.cast(input, output)

	default:
		return newError(UnsupportedParameter, op.Name(), "unknown unary kind %d", op.Kind)
	}
	return nil
}

func (l *lowerer) VisitClamp(op *graph.Clamp) error {
	if op.MinValue > op.MaxValue {
		return newError(UnsupportedParameter, op.Name(), "min value %g exceeds max value %g", op.MinValue, op.MaxValue)
	}
	l.clamp(l.index(op.Input), l.dataType(op.Input), op.MinValue, op.MaxValue, l.index(op.Output))
	return nil
}

// clamp limits input to [minValue, maxValue], preferring the fused relu
// builtins when the bounds match one of them.
func (l *lowerer) clamp(input int32, dt graph.DataType, minValue, maxValue float32, output int32) {
	if dt.IsFloat() {
		inf := float32(math.Inf(1))
		switch {
		case minValue == 0 && maxValue == inf:
			l.unary(schema.BuiltinOperatorRELU, input, output)
			return
		case minValue == 0 && maxValue == 6:
			l.unary(schema.BuiltinOperatorRELU6, input, output)
			return
		case minValue == -1 && maxValue == 1:
			l.unary(schema.BuiltinOperatorRELU_N1_TO_1, input, output)
			return
		case minValue == 0 && maxValue == 1:
			l.unary(schema.BuiltinOperatorRELU_0_TO_1, input, output)
			return
		}
	}

	hasMin := !math.IsInf(float64(minValue), -1)
	hasMax := !math.IsInf(float64(maxValue), 1)
	switch {
	case hasMin && hasMax:
		lower := l.addTemporary(l.shapeOf(input), l.typeOf(input))
		l.binary(schema.BuiltinOperatorMAXIMUM, input, l.addScalar(dt, minValue), lower)
		l.binary(schema.BuiltinOperatorMINIMUM, lower, l.addScalar(dt, maxValue), output)
	case hasMin:
		l.binary(schema.BuiltinOperatorMAXIMUM, input, l.addScalar(dt, minValue), output)
	case hasMax:
		l.binary(schema.BuiltinOperatorMINIMUM, input, l.addScalar(dt, maxValue), output)
	default:
		l.reshape(input, l.shapeOf(output), output)
	}
}

func (l *lowerer) VisitElu(op *graph.Elu) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	if op.Alpha != 1 {
		return newError(UnsupportedParameter, op.Name(), "alpha %g is not supported, only 1.0", op.Alpha)
	}
	l.unary(schema.BuiltinOperatorELU, l.index(op.Input), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitGelu(op *graph.Gelu) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.unary(schema.BuiltinOperatorGELU, l.index(op.Input), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitHardSigmoid(op *graph.HardSigmoid) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	input := l.index(op.Input)
	linear := l.addTemporary(l.shapeOf(input), l.typeOf(input))
	l.linear(input, l.dataType(op.Input), op.Alpha, op.Beta, linear)
	l.clamp(linear, l.dataType(op.Input), 0, 1, l.index(op.Output))
	return nil
}

func (l *lowerer) VisitHardSwish(op *graph.HardSwish) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.unary(schema.BuiltinOperatorHARD_SWISH, l.index(op.Input), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitLeakyRelu(op *graph.LeakyRelu) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.emit(schema.BuiltinOperatorLEAKY_RELU, []int32{l.index(op.Input)}, []int32{l.index(op.Output)},
		&schema.LeakyReluOptionsT{Alpha: op.Alpha})
	return nil
}

func (l *lowerer) VisitLinear(op *graph.Linear) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.linear(l.index(op.Input), l.dataType(op.Input), op.Alpha, op.Beta, l.index(op.Output))
	return nil
}

// linear emits alpha*x as MUL followed by +beta as ADD.
func (l *lowerer) linear(input int32, dt graph.DataType, alpha, beta float32, output int32) {
	scaled := l.addTemporary(l.shapeOf(input), l.typeOf(input))
	l.binary(schema.BuiltinOperatorMUL, input, l.addScalar(dt, alpha), scaled)
	l.binary(schema.BuiltinOperatorADD, scaled, l.addScalar(dt, beta), output)
}

func (l *lowerer) VisitPrelu(op *graph.Prelu) error {
	if err := l.requireFloat(op, op.Input, op.Slope); err != nil {
		return err
	}
	l.binary(schema.BuiltinOperatorPRELU, l.index(op.Input), l.index(op.Slope), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitRelu(op *graph.Relu) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.unary(schema.BuiltinOperatorRELU, l.index(op.Input), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitSigmoid(op *graph.Sigmoid) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.unary(schema.BuiltinOperatorLOGISTIC, l.index(op.Input), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitTanh(op *graph.Tanh) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	l.unary(schema.BuiltinOperatorTANH, l.index(op.Input), l.index(op.Output))
	return nil
}

func (l *lowerer) VisitSoftmax(op *graph.Softmax) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	input, output := l.index(op.Input), l.index(op.Output)
	rank := len(l.shapeOf(input))
	axis, err := toInt32(op.Axis, op.Name(), "axis")
	if err != nil {
		return err
	}
	if int(axis) >= rank {
		return newError(UnsupportedParameter, op.Name(), "axis %d out of range for rank %d", axis, rank)
	}

	options := &schema.SoftmaxOptionsT{Beta: 1}
	if int(axis) == rank-1 {
		l.emit(schema.BuiltinOperatorSOFTMAX, []int32{input}, []int32{output}, options)
		return nil
	}

	// SOFTMAX only normalizes the last axis. Swapping axis with the last
	// axis is its own inverse, so the same permutation restores the layout.
	perm := make([]int32, rank)
	for i := range perm {
		perm[i] = int32(i)
	}
	perm[axis], perm[rank-1] = perm[rank-1], perm[axis]

	transposed := l.transposeToTemp(input, perm)
	normalized := l.addTemporary(l.shapeOf(transposed), l.typeOf(transposed))
	l.emit(schema.BuiltinOperatorSOFTMAX, []int32{transposed}, []int32{normalized}, options)
	l.transpose(normalized, perm, output)
	return nil
}

func (l *lowerer) VisitSoftplus(op *graph.Softplus) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	input, output := l.index(op.Input), l.index(op.Output)
	shape, typ := l.shapeOf(input), l.typeOf(input)

	// log(1 + exp(x))
	exp := l.addTemporary(shape, typ)
	l.unary(schema.BuiltinOperatorEXP, input, exp)
	sum := l.addTemporary(shape, typ)
	l.binary(schema.BuiltinOperatorADD, exp, l.addScalar(l.dataType(op.Input), 1), sum)
	l.unary(schema.BuiltinOperatorLOG, sum, output)
	return nil
}

func (l *lowerer) VisitSoftsign(op *graph.Softsign) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	input, output := l.index(op.Input), l.index(op.Output)
	shape, typ := l.shapeOf(input), l.typeOf(input)

	// x / (1 + |x|)
	abs := l.addTemporary(shape, typ)
	l.unary(schema.BuiltinOperatorABS, input, abs)
	denominator := l.addTemporary(shape, typ)
	l.binary(schema.BuiltinOperatorADD, abs, l.addScalar(l.dataType(op.Input), 1), denominator)
	l.binary(schema.BuiltinOperatorDIV, input, denominator, output)
	return nil
}
