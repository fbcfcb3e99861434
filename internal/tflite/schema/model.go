package schema

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// ModelT is the root table of a TFLite model.
type ModelT struct {
	Version       uint32
	OperatorCodes []*OperatorCodeT
	Subgraphs     []*SubGraphT
	Description   string
	Buffers       []*BufferT
}

// OperatorCodeT names the kernel an operator runs.
type OperatorCodeT struct {
	DeprecatedBuiltinCode int8
	Version               int32
	BuiltinCode           BuiltinOperator
}

// SubGraphT is one executable graph of a model.
type SubGraphT struct {
	Tensors   []*TensorT
	Inputs    []int32
	Outputs   []int32
	Operators []*OperatorT
	Name      string
}

// TensorT describes one tensor of a subgraph.
type TensorT struct {
	Shape  []int32
	Type   TensorType
	Buffer uint32
	Name   string
}

// BufferT holds the raw payload of a constant tensor. Data is empty for
// tensors computed at runtime.
type BufferT struct {
	Data []byte
}

// OperatorT is one kernel invocation.
type OperatorT struct {
	OpcodeIndex    uint32
	Inputs         []int32
	Outputs        []int32
	BuiltinOptions BuiltinOptionsT
}

// BuiltinOptionsT is implemented by every builtin options table.
type BuiltinOptionsT interface {
	Type() BuiltinOptions
	Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT
}

// Pack serializes the model as a finished flatbuffer with the TFLite file
// identifier and returns the bytes.
func (t *ModelT) Pack(b *flatbuffers.Builder) []byte {
	root := t.pack(b)
	b.FinishWithFileIdentifier(root, []byte(FileIdentifier))
	return b.FinishedBytes()
}

func (t *ModelT) pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	codes := make([]flatbuffers.UOffsetT, len(t.OperatorCodes))
	for i, code := range t.OperatorCodes {
		codes[i] = code.Pack(b)
	}
	codesOffset := createOffsetVector(b, codes)

	subgraphs := make([]flatbuffers.UOffsetT, len(t.Subgraphs))
	for i, subgraph := range t.Subgraphs {
		subgraphs[i] = subgraph.Pack(b)
	}
	subgraphsOffset := createOffsetVector(b, subgraphs)

	descriptionOffset := b.CreateString(t.Description)

	buffers := make([]flatbuffers.UOffsetT, len(t.Buffers))
	for i, buffer := range t.Buffers {
		buffers[i] = buffer.Pack(b)
	}
	buffersOffset := createOffsetVector(b, buffers)

	b.StartObject(8)
	b.PrependUint32Slot(0, t.Version, 0)
	b.PrependUOffsetTSlot(1, codesOffset, 0)
	b.PrependUOffsetTSlot(2, subgraphsOffset, 0)
	b.PrependUOffsetTSlot(3, descriptionOffset, 0)
	b.PrependUOffsetTSlot(4, buffersOffset, 0)
	return b.EndObject()
}

// Pack serializes the operator code table.
func (t *OperatorCodeT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(4)
	b.PrependInt8Slot(0, t.DeprecatedBuiltinCode, 0)
	b.PrependInt32Slot(2, t.Version, 1)
	b.PrependInt32Slot(3, int32(t.BuiltinCode), 0)
	return b.EndObject()
}

// Pack serializes the subgraph table.
func (t *SubGraphT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	tensors := make([]flatbuffers.UOffsetT, len(t.Tensors))
	for i, tensor := range t.Tensors {
		tensors[i] = tensor.Pack(b)
	}
	tensorsOffset := createOffsetVector(b, tensors)
	inputsOffset := createInt32Vector(b, t.Inputs)
	outputsOffset := createInt32Vector(b, t.Outputs)

	operators := make([]flatbuffers.UOffsetT, len(t.Operators))
	for i, operator := range t.Operators {
		operators[i] = operator.Pack(b)
	}
	operatorsOffset := createOffsetVector(b, operators)

	var nameOffset flatbuffers.UOffsetT
	if t.Name != "" {
		nameOffset = b.CreateString(t.Name)
	}

	b.StartObject(5)
	b.PrependUOffsetTSlot(0, tensorsOffset, 0)
	b.PrependUOffsetTSlot(1, inputsOffset, 0)
	b.PrependUOffsetTSlot(2, outputsOffset, 0)
	b.PrependUOffsetTSlot(3, operatorsOffset, 0)
	b.PrependUOffsetTSlot(4, nameOffset, 0)
	return b.EndObject()
}

// Pack serializes the tensor table.
func (t *TensorT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	shapeOffset := createInt32Vector(b, t.Shape)
	var nameOffset flatbuffers.UOffsetT
	if t.Name != "" {
		nameOffset = b.CreateString(t.Name)
	}

	b.StartObject(9)
	b.PrependUOffsetTSlot(0, shapeOffset, 0)
	b.PrependInt8Slot(1, int8(t.Type), 0)
	b.PrependUint32Slot(2, t.Buffer, 0)
	b.PrependUOffsetTSlot(3, nameOffset, 0)
	return b.EndObject()
}

// Pack serializes the buffer table. The payload is aligned to 16 bytes.
func (t *BufferT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	var dataOffset flatbuffers.UOffsetT
	if len(t.Data) > 0 {
		b.StartVector(1, len(t.Data), 16)
		for i := len(t.Data) - 1; i >= 0; i-- {
			b.PrependByte(t.Data[i])
		}
		dataOffset = b.EndVector(len(t.Data))
	}

	b.StartObject(3)
	b.PrependUOffsetTSlot(0, dataOffset, 0)
	return b.EndObject()
}

// Pack serializes the operator table.
func (t *OperatorT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	inputsOffset := createInt32Vector(b, t.Inputs)
	outputsOffset := createInt32Vector(b, t.Outputs)

	optionsType := BuiltinOptionsNONE
	var optionsOffset flatbuffers.UOffsetT
	if t.BuiltinOptions != nil {
		optionsType = t.BuiltinOptions.Type()
		optionsOffset = t.BuiltinOptions.Pack(b)
	}

	b.StartObject(9)
	b.PrependUint32Slot(0, t.OpcodeIndex, 0)
	b.PrependUOffsetTSlot(1, inputsOffset, 0)
	b.PrependUOffsetTSlot(2, outputsOffset, 0)
	b.PrependByteSlot(3, byte(optionsType), 0)
	b.PrependUOffsetTSlot(4, optionsOffset, 0)
	return b.EndObject()
}

// createOffsetVector writes a vector of table offsets. Offsets are
// prepended in reverse so the vector reads in slice order.
func createOffsetVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeUOffsetT, len(offsets), flatbuffers.SizeUOffsetT)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	return b.EndVector(len(offsets))
}

func createInt32Vector(b *flatbuffers.Builder, values []int32) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeInt32, len(values), flatbuffers.SizeInt32)
	for i := len(values) - 1; i >= 0; i-- {
		b.PrependInt32(values[i])
	}
	return b.EndVector(len(values))
}
