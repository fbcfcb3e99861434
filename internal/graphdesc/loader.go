package graphdesc

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/x448/float16"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/tflgen/internal/graph"
)

// ConstantSource supplies constant payloads by tensor name.
type ConstantSource interface {
	Constant(name string, dt graph.DataType, shape graph.Shape) ([]byte, error)
}

var operandKinds = map[string]graph.OperandKind{
	"input":        graph.KindInput,
	"constant":     graph.KindConstant,
	"output":       graph.KindOutput,
	"intermediate": graph.KindIntermediate,
}

// Load reads and converts the description at path. weights may be nil when
// every constant is inline.
func Load(path string, weights ConstantSource) (*graph.GraphInfo, error) {
	//nolint:gosec // G304: the description path is user input by design of the CLI.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read graph description")
	}
	info, err := Parse(data, weights)
	if err != nil {
		return nil, errors.Wrapf(err, "graph description %s", path)
	}
	return info, nil
}

// Parse converts a YAML description into a graph.
func Parse(data []byte, weights ConstantSource) (*graph.GraphInfo, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	return Convert(&doc, weights)
}

// Convert builds a graph from a decoded document.
func Convert(doc *Document, weights ConstantSource) (*graph.GraphInfo, error) {
	l := &loader{
		info: &graph.GraphInfo{
			Constants: make(map[graph.OperandID][]byte),
		},
		byName:  make(map[string]*graph.Operand, len(doc.Operands)),
		weights: weights,
	}

	for i := range doc.Operands {
		if err := l.addOperand(graph.OperandID(i), &doc.Operands[i]); err != nil { //nolint:gosec // G115: index is non-negative.
			return nil, errors.Wrapf(err, "operand %d", i)
		}
	}

	for i := range doc.Operations {
		desc := &doc.Operations[i]
		op, err := l.buildOperation(defaultRegistry, desc)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %d (%s)", i, desc.Op)
		}
		l.info.Operations = append(l.info.Operations, op)
	}

	return l.info, nil
}

type loader struct {
	info    *graph.GraphInfo
	byName  map[string]*graph.Operand
	weights ConstantSource
}

func (l *loader) addOperand(id graph.OperandID, desc *OperandDesc) error {
	if desc.Name == "" {
		return errors.New("operand name is required")
	}
	if _, dup := l.byName[desc.Name]; dup {
		return errors.Newf("duplicate operand %q", desc.Name)
	}
	kind, ok := operandKinds[desc.Kind]
	if !ok {
		return errors.Newf("operand %q: unknown kind %q", desc.Name, desc.Kind)
	}
	dt, err := graph.ParseDataType(desc.DType)
	if err != nil {
		return errors.Wrapf(err, "operand %q", desc.Name)
	}

	operand := &graph.Operand{
		ID:       id,
		Kind:     kind,
		DataType: dt,
		Shape:    graph.Shape(desc.Shape).Clone(),
		Name:     desc.Name,
	}

	hasPayload := len(desc.Values) > 0 || desc.Tensor != ""
	switch {
	case kind == graph.KindConstant:
		payload, err := l.constant(desc, operand)
		if err != nil {
			return errors.Wrapf(err, "constant %q", desc.Name)
		}
		l.info.Constants[id] = payload
	case hasPayload:
		return errors.Newf("operand %q: only constants may carry values", desc.Name)
	}

	switch kind {
	case graph.KindInput:
		l.info.InputOperands = append(l.info.InputOperands, id)
	case graph.KindOutput:
		l.info.OutputOperands = append(l.info.OutputOperands, id)
	}

	l.info.Operands = append(l.info.Operands, operand)
	l.byName[desc.Name] = operand
	return nil
}

func (l *loader) constant(desc *OperandDesc, operand *graph.Operand) ([]byte, error) {
	switch {
	case len(desc.Values) > 0 && desc.Tensor != "":
		return nil, errors.New("values and tensor are mutually exclusive")
	case desc.Tensor != "":
		if l.weights == nil {
			return nil, errors.Newf("tensor %q referenced without a weights source", desc.Tensor)
		}
		return l.weights.Constant(desc.Tensor, operand.DataType, operand.Shape)
	case uint64(len(desc.Values)) != operand.Shape.NumElements():
		return nil, errors.Newf("got %d values for shape %v", len(desc.Values), operand.Shape)
	default:
		return encodeValues(desc.Values, operand.DataType)
	}
}

// encodeValues encodes scalar nodes as a little-endian payload of dt.
func encodeValues(values []yaml.Node, dt graph.DataType) ([]byte, error) {
	size := dt.Size()
	out := make([]byte, size*len(values))
	for i := range values {
		node := &values[i]
		if node.Kind != yaml.ScalarNode {
			return nil, errors.Newf("value %d is not a scalar", i)
		}
		if err := encodeValue(out[i*size:], node.Value, dt); err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
	}
	return out, nil
}

func encodeValue(dst []byte, text string, dt graph.DataType) error {
	if dt.IsFloat() {
		v, err := parseFloat(text)
		if err != nil {
			return err
		}
		if dt == graph.Float16 {
			binary.LittleEndian.PutUint16(dst, float16.Fromfloat32(float32(v)).Bits())
		} else {
			binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
		}
		return nil
	}

	bits := dt.Size() * 8
	var raw uint64
	if dt.IsUnsigned() {
		v, err := strconv.ParseUint(text, 0, bits)
		if err != nil {
			return errors.Wrapf(err, "invalid %s value", dt)
		}
		raw = v
	} else {
		v, err := strconv.ParseInt(text, 0, bits)
		if err != nil {
			return errors.Wrapf(err, "invalid %s value", dt)
		}
		raw = uint64(v) //nolint:gosec // G115: two's complement bit pattern is intended.
	}

	switch dt.Size() {
	case 1:
		dst[0] = byte(raw)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(raw)) //nolint:gosec // G115: range checked by ParseInt/ParseUint.
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(raw)) //nolint:gosec // G115: range checked by ParseInt/ParseUint.
	default:
		binary.LittleEndian.PutUint64(dst, raw)
	}
	return nil
}

// parseFloat accepts YAML float spellings, including .inf and .nan.
func parseFloat(text string) (float64, error) {
	switch text {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid float %q", text)
	}
	return v, nil
}

func (l *loader) buildOperation(reg *registry, desc *OperationDesc) (graph.Operation, error) {
	build, ok := reg.get(desc.Op)
	if !ok {
		return nil, errors.Newf("unsupported operation %q", desc.Op)
	}

	n := &node{
		op:     desc.Op,
		params: newParams(desc.Params),
	}
	for _, name := range desc.Inputs {
		if name == "" {
			n.inputs = append(n.inputs, nil)
			continue
		}
		operand, err := l.operand(name)
		if err != nil {
			return nil, err
		}
		n.inputs = append(n.inputs, operand)
	}
	for _, name := range desc.Outputs {
		operand, err := l.operand(name)
		if err != nil {
			return nil, err
		}
		n.outputs = append(n.outputs, operand)
	}

	op, err := build(n)
	if err != nil {
		return nil, err
	}
	if err := n.params.finish(); err != nil {
		return nil, err
	}
	return op, nil
}

func (l *loader) operand(name string) (*graph.Operand, error) {
	operand, ok := l.byName[name]
	if !ok {
		return nil, errors.Newf("unknown operand %q", name)
	}
	return operand, nil
}
