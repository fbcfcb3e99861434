package tflite

import (
	"slices"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// lowerer implements one handler per operation kind. Handlers append the
// operators of their lowering to the builder tables and return the first
// error they hit.
type lowerer struct {
	*GraphBuilder
}

var _ graph.Visitor = (*lowerer)(nil)

func (l *lowerer) index(id graph.OperandID) int32 {
	return l.operandToIndex[id]
}

func (l *lowerer) shapeOf(index int32) []int32 {
	return l.tensors[index].Shape
}

func (l *lowerer) typeOf(index int32) schema.TensorType {
	return l.tensors[index].Type
}

func (l *lowerer) dataType(id graph.OperandID) graph.DataType {
	return l.operands[id].DataType
}

func (l *lowerer) requireFloat(op graph.Operation, ids ...graph.OperandID) error {
	for _, id := range ids {
		if dt := l.dataType(id); !dt.IsFloat() {
			return newError(UnsupportedDataType, op.Name(), "operand %d has data type %s, want float32 or float16", id, dt)
		}
	}
	return nil
}

func (l *lowerer) rejectUnsigned(op graph.Operation, id graph.OperandID) error {
	if dt := l.dataType(id); dt.IsUnsigned() {
		return newError(UnsupportedDataType, op.Name(), "operand %d has unsigned data type %s", id, dt)
	}
	return nil
}

// unary emits a single-input builtin.
func (l *lowerer) unary(op schema.BuiltinOperator, input, output int32) {
	l.emit(op, []int32{input}, []int32{output}, nil)
}

// binary emits a two-input builtin.
func (l *lowerer) binary(op schema.BuiltinOperator, lhs, rhs, output int32) {
	l.emit(op, []int32{lhs, rhs}, []int32{output}, nil)
}

// transpose emits TRANSPOSE with a fresh permutation constant.
func (l *lowerer) transpose(input int32, perm []int32, output int32) {
	permIndex := l.addInt32Vector(perm)
	l.emit(schema.BuiltinOperatorTRANSPOSE, []int32{input, permIndex}, []int32{output}, nil)
}

// transposeToTemp transposes input into a new temporary tensor.
func (l *lowerer) transposeToTemp(input int32, perm []int32) int32 {
	output := l.addTemporary(permute(l.shapeOf(input), perm), l.typeOf(input))
	l.transpose(input, perm, output)
	return output
}

// reshape emits RESHAPE with the target shape given both as a constant
// input and in the options.
func (l *lowerer) reshape(input int32, newShape []int32, output int32) {
	shapeIndex := l.addInt32Vector(newShape)
	l.emit(schema.BuiltinOperatorRESHAPE, []int32{input, shapeIndex}, []int32{output},
		&schema.ReshapeOptionsT{NewShape: slices.Clone(newShape)})
}

// reshapeToTemp reshapes input into a new temporary tensor.
func (l *lowerer) reshapeToTemp(input int32, newShape []int32) int32 {
	output := l.addTemporary(newShape, l.typeOf(input))
	l.reshape(input, newShape, output)
	return output
}

// cast emits CAST from the type of input to the type of output.
func (l *lowerer) cast(input, output int32) {
	l.emit(schema.BuiltinOperatorCAST, []int32{input}, []int32{output}, &schema.CastOptionsT{
		InDataType:  l.typeOf(input),
		OutDataType: l.typeOf(output),
	})
}

// castToTemp casts input into a new temporary tensor of type to.
func (l *lowerer) castToTemp(input int32, to schema.TensorType) int32 {
	output := l.addTemporary(l.shapeOf(input), to)
	l.cast(input, output)
	return output
}

// permute returns shape reordered by perm.
func permute(shape, perm []int32) []int32 {
	out := make([]int32, len(perm))
	for i, p := range perm {
		out[i] = shape[p]
	}
	return out
}

// axesToInt32 converts axis parameters with overflow checks.
func axesToInt32(op graph.Operation, axes []uint32) ([]int32, error) {
	return toInt32Slice(axes, op.Name(), "axis")
}

// chain hands out the output tensor of each step of a decomposition: a
// fresh temporary for intermediate steps and the operation's output tensor
// for the last one.
type chain struct {
	l      *lowerer
	output int32
	steps  int
}

func (l *lowerer) newChain(output int32, steps int) *chain {
	return &chain{l: l, output: output, steps: steps}
}

// next returns the output tensor of the next step.
func (c *chain) next(shape []int32, typ schema.TensorType) int32 {
	c.steps--
	if c.steps == 0 {
		return c.output
	}
	if c.steps < 0 {
		panic("tflite: decomposition chain overrun")
	}
	return c.l.addTemporary(shape, typ)
}
