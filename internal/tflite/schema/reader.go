package schema

import (
	"github.com/cockroachdb/errors"
	flatbuffers "github.com/google/flatbuffers/go"
)

// ErrNotTFLite is returned when a buffer lacks the TFLite file identifier.
var ErrNotTFLite = errors.New("buffer is not a TFLite model")

// table wraps a flatbuffers table with slot-based accessors.
type table struct {
	flatbuffers.Table
}

func newTable(buf []byte, pos flatbuffers.UOffsetT) *table {
	return &table{flatbuffers.Table{Bytes: buf, Pos: pos}}
}

// offset returns the vtable entry of a field slot, 0 when absent.
func (t *table) offset(slot int) flatbuffers.UOffsetT {
	return flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT(4 + 2*slot)))
}

func (t *table) getInt8(slot int, def int8) int8 {
	if o := t.offset(slot); o != 0 {
		return t.GetInt8(o + t.Pos)
	}
	return def
}

func (t *table) getByte(slot int, def byte) byte {
	if o := t.offset(slot); o != 0 {
		return t.GetByte(o + t.Pos)
	}
	return def
}

func (t *table) getBool(slot int, def bool) bool {
	if o := t.offset(slot); o != 0 {
		return t.GetBool(o + t.Pos)
	}
	return def
}

func (t *table) getInt32(slot int, def int32) int32 {
	if o := t.offset(slot); o != 0 {
		return t.GetInt32(o + t.Pos)
	}
	return def
}

func (t *table) getUint32(slot int, def uint32) uint32 {
	if o := t.offset(slot); o != 0 {
		return t.GetUint32(o + t.Pos)
	}
	return def
}

func (t *table) getFloat32(slot int, def float32) float32 {
	if o := t.offset(slot); o != 0 {
		return t.GetFloat32(o + t.Pos)
	}
	return def
}

func (t *table) getString(slot int) string {
	if o := t.offset(slot); o != 0 {
		return string(t.ByteVector(o + t.Pos))
	}
	return ""
}

func (t *table) getBytes(slot int) []byte {
	o := t.offset(slot)
	if o == 0 {
		return nil
	}
	data := t.ByteVector(o + t.Pos)
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

func (t *table) int32Vector(slot int) []int32 {
	o := t.offset(slot)
	if o == 0 {
		return nil
	}
	start := t.Vector(o)
	n := t.VectorLen(o)
	values := make([]int32, n)
	for i := 0; i < n; i++ {
		values[i] = t.GetInt32(start + flatbuffers.UOffsetT(i*flatbuffers.SizeInt32))
	}
	return values
}

// tables returns the elements of a vector of tables.
func (t *table) tables(slot int) []*table {
	o := t.offset(slot)
	if o == 0 {
		return nil
	}
	start := t.Vector(o)
	n := t.VectorLen(o)
	elems := make([]*table, n)
	for i := 0; i < n; i++ {
		pos := t.Indirect(start + flatbuffers.UOffsetT(i*flatbuffers.SizeUOffsetT))
		elems[i] = newTable(t.Bytes, pos)
	}
	return elems
}

func (t *table) union(slot int) (*table, bool) {
	o := t.offset(slot)
	if o == 0 {
		return nil, false
	}
	var u flatbuffers.Table
	t.Union(&u, o)
	return &table{u}, true
}

// HasIdentifier reports whether buf carries the TFLite file identifier.
func HasIdentifier(buf []byte) bool {
	return len(buf) >= flatbuffers.SizeUOffsetT+len(FileIdentifier) &&
		string(buf[flatbuffers.SizeUOffsetT:flatbuffers.SizeUOffsetT+len(FileIdentifier)]) == FileIdentifier
}

// ReadModel decodes a serialized model into its object representation.
// Malformed buffers are reported as errors rather than panics.
func ReadModel(buf []byte) (model *ModelT, err error) {
	if !HasIdentifier(buf) {
		return nil, ErrNotTFLite
	}

	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = errors.Newf("malformed TFLite model: %v", r)
		}
	}()

	root := newTable(buf, flatbuffers.GetUOffsetT(buf))
	return unpackModel(root), nil
}

func unpackModel(t *table) *ModelT {
	model := &ModelT{
		Version:     t.getUint32(0, 0),
		Description: t.getString(3),
	}
	for _, code := range t.tables(1) {
		model.OperatorCodes = append(model.OperatorCodes, &OperatorCodeT{
			DeprecatedBuiltinCode: code.getInt8(0, 0),
			Version:               code.getInt32(2, 1),
			BuiltinCode:           BuiltinOperator(code.getInt32(3, 0)),
		})
	}
	for _, subgraph := range t.tables(2) {
		model.Subgraphs = append(model.Subgraphs, unpackSubGraph(subgraph))
	}
	for _, buffer := range t.tables(4) {
		model.Buffers = append(model.Buffers, &BufferT{Data: buffer.getBytes(0)})
	}
	return model
}

func unpackSubGraph(t *table) *SubGraphT {
	subgraph := &SubGraphT{
		Inputs:  t.int32Vector(1),
		Outputs: t.int32Vector(2),
		Name:    t.getString(4),
	}
	for _, tensor := range t.tables(0) {
		subgraph.Tensors = append(subgraph.Tensors, &TensorT{
			Shape:  tensor.int32Vector(0),
			Type:   TensorType(tensor.getInt8(1, 0)),
			Buffer: tensor.getUint32(2, 0),
			Name:   tensor.getString(3),
		})
	}
	for _, operator := range t.tables(3) {
		op := &OperatorT{
			OpcodeIndex: operator.getUint32(0, 0),
			Inputs:      operator.int32Vector(1),
			Outputs:     operator.int32Vector(2),
		}
		if options, ok := operator.union(4); ok {
			op.BuiltinOptions = unpackBuiltinOptions(BuiltinOptions(operator.getByte(3, 0)), options)
		}
		subgraph.Operators = append(subgraph.Operators, op)
	}
	return subgraph
}
