// Package tflitetest evaluates small TFLite models for tests.
//
// The interpreter is a reference evaluator, not a runtime: it supports the
// float operators the lowering decompositions emit and computes in float64.
package tflitetest

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/x448/float16"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// Tensor is a dense row-major value.
type Tensor struct {
	Shape []int32
	Data  []float64
}

// NumElements returns the product of the extents.
func (t Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= int(d)
	}
	return n
}

// Interpreter runs the first subgraph of a model.
type Interpreter struct {
	Model *schema.ModelT
	graph *schema.SubGraphT
}

// New decodes buf.
func New(buf []byte) (*Interpreter, error) {
	model, err := schema.ReadModel(buf)
	if err != nil {
		return nil, err
	}
	if len(model.Subgraphs) != 1 {
		return nil, errors.Newf("got %d subgraphs, want 1", len(model.Subgraphs))
	}
	return &Interpreter{Model: model, graph: model.Subgraphs[0]}, nil
}

// Run feeds inputs to the subgraph inputs in order and returns the
// subgraph outputs.
func (it *Interpreter) Run(inputs ...Tensor) ([]Tensor, error) {
	if len(inputs) != len(it.graph.Inputs) {
		return nil, errors.Newf("got %d inputs, want %d", len(inputs), len(it.graph.Inputs))
	}

	values := make(map[int32]Tensor)
	for i, index := range it.graph.Inputs {
		values[index] = inputs[i]
	}
	for index, tensor := range it.graph.Tensors {
		if tensor.Buffer == 0 {
			continue
		}
		value, err := decodeConstant(tensor, it.Model.Buffers[tensor.Buffer].Data)
		if err != nil {
			return nil, errors.Wrapf(err, "tensor %d", index)
		}
		values[int32(index)] = value
	}

	for i, op := range it.graph.Operators {
		code := it.Model.OperatorCodes[op.OpcodeIndex].BuiltinCode
		args := make([]Tensor, len(op.Inputs))
		for j, index := range op.Inputs {
			if index < 0 {
				continue
			}
			value, ok := values[index]
			if !ok {
				return nil, errors.Newf("operator %d (%s): input tensor %d has no value", i, code, index)
			}
			args[j] = value
		}
		outShape := it.graph.Tensors[op.Outputs[0]].Shape
		result, err := evaluate(code, op, args, outShape)
		if err != nil {
			return nil, errors.Wrapf(err, "operator %d (%s)", i, code)
		}
		values[op.Outputs[0]] = result
	}

	outputs := make([]Tensor, len(it.graph.Outputs))
	for i, index := range it.graph.Outputs {
		value, ok := values[index]
		if !ok {
			return nil, errors.Newf("output tensor %d has no value", index)
		}
		outputs[i] = value
	}
	return outputs, nil
}

func decodeConstant(tensor *schema.TensorT, data []byte) (Tensor, error) {
	out := Tensor{Shape: tensor.Shape}
	var size int
	var read func([]byte) float64
	switch tensor.Type {
	case schema.TensorTypeFLOAT32:
		size, read = 4, func(b []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))) }
	case schema.TensorTypeFLOAT16:
		size, read = 2, func(b []byte) float64 { return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32()) }
	case schema.TensorTypeINT32:
		size, read = 4, func(b []byte) float64 { return float64(int32(binary.LittleEndian.Uint32(b))) }
	case schema.TensorTypeINT64:
		size, read = 8, func(b []byte) float64 { return float64(int64(binary.LittleEndian.Uint64(b))) }
	default:
		return Tensor{}, errors.Newf("constant type %s is not supported", tensor.Type)
	}
	if len(data) != size*out.NumElements() {
		return Tensor{}, errors.Newf("buffer has %d bytes, want %d", len(data), size*out.NumElements())
	}
	out.Data = make([]float64, out.NumElements())
	for i := range out.Data {
		out.Data[i] = read(data[i*size:])
	}
	return out, nil
}

var unaryFuncs = map[schema.BuiltinOperator]func(float64) float64{
	schema.BuiltinOperatorABS:      math.Abs,
	schema.BuiltinOperatorCEIL:     math.Ceil,
	schema.BuiltinOperatorCOS:      math.Cos,
	schema.BuiltinOperatorEXP:      math.Exp,
	schema.BuiltinOperatorFLOOR:    math.Floor,
	schema.BuiltinOperatorLOG:      math.Log,
	schema.BuiltinOperatorNEG:      func(x float64) float64 { return -x },
	schema.BuiltinOperatorSIN:      math.Sin,
	schema.BuiltinOperatorSQRT:     math.Sqrt,
	schema.BuiltinOperatorTANH:     math.Tanh,
	schema.BuiltinOperatorLOGISTIC: func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
	schema.BuiltinOperatorRELU:     func(x float64) float64 { return math.Max(x, 0) },
	schema.BuiltinOperatorRELU6:    func(x float64) float64 { return math.Min(math.Max(x, 0), 6) },

	schema.BuiltinOperatorRELU_0_TO_1:  func(x float64) float64 { return math.Min(math.Max(x, 0), 1) },
	schema.BuiltinOperatorRELU_N1_TO_1: func(x float64) float64 { return math.Min(math.Max(x, -1), 1) },
}

var binaryFuncs = map[schema.BuiltinOperator]func(float64, float64) float64{
	schema.BuiltinOperatorADD:     func(a, b float64) float64 { return a + b },
	schema.BuiltinOperatorSUB:     func(a, b float64) float64 { return a - b },
	schema.BuiltinOperatorMUL:     func(a, b float64) float64 { return a * b },
	schema.BuiltinOperatorDIV:     func(a, b float64) float64 { return a / b },
	schema.BuiltinOperatorPOW:     math.Pow,
	schema.BuiltinOperatorMAXIMUM: math.Max,
	schema.BuiltinOperatorMINIMUM: math.Min,
}

func evaluate(code schema.BuiltinOperator, op *schema.OperatorT, args []Tensor, outShape []int32) (Tensor, error) {
	if f, ok := unaryFuncs[code]; ok {
		out := Tensor{Shape: args[0].Shape, Data: make([]float64, len(args[0].Data))}
		for i, x := range args[0].Data {
			out.Data[i] = f(x)
		}
		return out, nil
	}
	if f, ok := binaryFuncs[code]; ok {
		return broadcast(args[0], args[1], f)
	}

	switch code {
	case schema.BuiltinOperatorRESHAPE:
		return Tensor{Shape: outShape, Data: args[0].Data}, nil
	case schema.BuiltinOperatorTRANSPOSE:
		return transpose(args[0], toInts(args[1].Data)), nil
	case schema.BuiltinOperatorSUM, schema.BuiltinOperatorMEAN,
		schema.BuiltinOperatorREDUCE_MAX, schema.BuiltinOperatorREDUCE_MIN, schema.BuiltinOperatorREDUCE_PROD:
		keepDims := false
		if options, ok := op.BuiltinOptions.(*schema.ReducerOptionsT); ok {
			keepDims = options.KeepDims
		}
		return reduce(code, args[0], toInts(args[1].Data), keepDims), nil
	default:
		return Tensor{}, errors.Newf("operator %s is not supported", code)
	}
}

func toInts(values []float64) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

func toShape(shape []int32) graph.Shape {
	out := make(graph.Shape, len(shape))
	for i, d := range shape {
		out[i] = uint32(d)
	}
	return out
}

// strides returns the row-major element strides of shape.
func strides(shape []int32) []int {
	out := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = step
		step *= int(shape[i])
	}
	return out
}

// unravel returns the coordinates of flat index i in shape.
func unravel(i int, shape []int32) []int {
	coords := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		coords[d] = i % int(shape[d])
		i /= int(shape[d])
	}
	return coords
}

// broadcastIndex maps output coordinates onto a right-aligned source shape.
func broadcastIndex(coords []int, shape []int32) int {
	offset := len(coords) - len(shape)
	index := 0
	for d, step := range strides(shape) {
		if shape[d] != 1 {
			index += coords[d+offset] * step
		}
	}
	return index
}

func broadcast(a, b Tensor, f func(float64, float64) float64) (Tensor, error) {
	shape, err := graph.BroadcastShapes(toShape(a.Shape), toShape(b.Shape))
	if err != nil {
		return Tensor{}, err
	}
	out := Tensor{Shape: make([]int32, len(shape)), Data: make([]float64, shape.NumElements())}
	for i, d := range shape {
		out.Shape[i] = int32(d)
	}
	for i := range out.Data {
		coords := unravel(i, out.Shape)
		out.Data[i] = f(a.Data[broadcastIndex(coords, a.Shape)], b.Data[broadcastIndex(coords, b.Shape)])
	}
	return out, nil
}

func transpose(t Tensor, perm []int) Tensor {
	out := Tensor{Shape: make([]int32, len(perm)), Data: make([]float64, len(t.Data))}
	for i, p := range perm {
		out.Shape[i] = t.Shape[p]
	}
	src := strides(t.Shape)
	for i := range out.Data {
		coords := unravel(i, out.Shape)
		index := 0
		for d, p := range perm {
			index += coords[d] * src[p]
		}
		out.Data[i] = t.Data[index]
	}
	return out
}

func reduce(code schema.BuiltinOperator, t Tensor, axes []int, keepDims bool) Tensor {
	kept := slices.Clone(t.Shape)
	for _, axis := range axes {
		kept[axis] = 1
	}

	count := make([]int, Tensor{Shape: kept}.NumElements())
	acc := make([]float64, len(count))
	for i, x := range t.Data {
		coords := unravel(i, t.Shape)
		for _, axis := range axes {
			coords[axis] = 0
		}
		j := 0
		for d, step := range strides(kept) {
			j += coords[d] * step
		}
		if count[j] == 0 {
			acc[j] = x
		} else {
			acc[j] = combine(code, acc[j], x)
		}
		count[j]++
	}
	if code == schema.BuiltinOperatorMEAN {
		for j := range acc {
			acc[j] /= float64(count[j])
		}
	}

	shape := kept
	if !keepDims {
		shape = shape[:0:0]
		for d, extent := range t.Shape {
			if !slices.Contains(axes, d) {
				shape = append(shape, extent)
			}
		}
	}
	return Tensor{Shape: shape, Data: acc}
}

func combine(code schema.BuiltinOperator, acc, x float64) float64 {
	switch code {
	case schema.BuiltinOperatorREDUCE_MAX:
		return math.Max(acc, x)
	case schema.BuiltinOperatorREDUCE_MIN:
		return math.Min(acc, x)
	case schema.BuiltinOperatorREDUCE_PROD:
		return acc * x
	default:
		return acc + x
	}
}
