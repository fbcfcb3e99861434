package tflite

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"go.uber.org/zap"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// GraphBuilder converts one GraphInfo into one TFLite model.
//
// It is single-use: call SerializeOperands, SerializeOperations and Finalize
// once each, in that order. A GraphBuilder is not safe for concurrent use;
// independent builds should use independent builders.
type GraphBuilder struct {
	tables

	info     *graph.GraphInfo
	operands map[graph.OperandID]*graph.Operand
	opts     options

	// operandToIndex maps operand ids to their tensor index.
	operandToIndex map[graph.OperandID]int32
	finalized      bool
}

// NewGraphBuilder creates a builder for info.
func NewGraphBuilder(info *graph.GraphInfo, opts ...Option) *GraphBuilder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GraphBuilder{
		tables:         newTables(),
		info:           info,
		operands:       info.OperandIndex(),
		opts:           o,
		operandToIndex: make(map[graph.OperandID]int32, len(info.Operands)),
	}
}

// CreateSerializedModel lowers info and returns the TFLite flatbuffer.
func CreateSerializedModel(info *graph.GraphInfo, opts ...Option) ([]byte, error) {
	b := NewGraphBuilder(info, opts...)
	if err := b.SerializeOperands(); err != nil {
		return nil, err
	}
	if err := b.SerializeOperations(); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}

// SerializeOperands appends one tensor per operand, in operand order, and
// one buffer per constant.
func (b *GraphBuilder) SerializeOperands() error {
	for _, operand := range b.info.Operands {
		if _, err := b.serializeOperand(operand); err != nil {
			return err
		}
	}
	return nil
}

// TensorIndex returns the tensor index assigned to an operand, and false if
// the operand has not been serialized.
func (b *GraphBuilder) TensorIndex(id graph.OperandID) (int32, bool) {
	index, ok := b.operandToIndex[id]
	return index, ok
}

func (b *GraphBuilder) serializeOperand(operand *graph.Operand) (int32, error) {
	shape, err := shapeToInt32(operand.Shape, fmt.Sprintf("operand %d", operand.ID))
	if err != nil {
		return 0, err
	}

	buffer := emptyBufferIndex
	if operand.Kind == graph.KindConstant {
		buffer = b.addBuffer(b.info.Constants[operand.ID])
	}

	index := b.addTensor(shape, tensorType(operand.DataType), buffer, operand.Name)
	b.operandToIndex[operand.ID] = index
	return index, nil
}

// SerializeOperations lowers every operation in order. The first failure
// aborts the build.
func (b *GraphBuilder) SerializeOperations() error {
	l := &lowerer{GraphBuilder: b}
	for _, op := range b.info.Operations {
		before := len(b.operators)
		if err := op.Accept(l); err != nil {
			b.opts.logger.Debug("lowering failed", zap.String("operator", op.Name()), zap.Error(err))
			return err
		}
		b.opts.logger.Debug("lowered operation",
			zap.String("operator", op.Name()),
			zap.Int("emitted", len(b.operators)-before),
		)
	}
	return nil
}

// Finalize assembles the single-subgraph model and returns its bytes.
// It panics when called twice.
func (b *GraphBuilder) Finalize() []byte {
	if b.finalized {
		panic("tflite: GraphBuilder.Finalize called twice")
	}
	b.finalized = true

	model := &schema.ModelT{
		Version:       schema.Version,
		OperatorCodes: b.operatorCodes,
		Subgraphs: []*schema.SubGraphT{{
			Tensors:   b.tensors,
			Inputs:    b.resolve(b.info.InputOperands),
			Outputs:   b.resolve(b.info.OutputOperands),
			Operators: b.operators,
		}},
		Description: b.opts.description,
		Buffers:     b.buffers,
	}

	b.opts.logger.Info("model finalized",
		zap.Int("tensors", len(b.tensors)),
		zap.Int("buffers", len(b.buffers)),
		zap.Int("operators", len(b.operators)),
	)

	return model.Pack(flatbuffers.NewBuilder(1024))
}

func (b *GraphBuilder) resolve(ids []graph.OperandID) []int32 {
	indices := make([]int32, len(ids))
	for i, id := range ids {
		indices[i] = b.operandToIndex[id]
	}
	return indices
}

// tensorType maps an operand data type to its TFLite tensor type.
func tensorType(dt graph.DataType) schema.TensorType {
	switch dt {
	case graph.Float32:
		return schema.TensorTypeFLOAT32
	case graph.Float16:
		return schema.TensorTypeFLOAT16
	case graph.Int8:
		return schema.TensorTypeINT8
	case graph.Uint8:
		return schema.TensorTypeUINT8
	case graph.Int16:
		return schema.TensorTypeINT16
	case graph.Uint16:
		return schema.TensorTypeUINT16
	case graph.Int32:
		return schema.TensorTypeINT32
	case graph.Uint32:
		return schema.TensorTypeUINT32
	case graph.Int64:
		return schema.TensorTypeINT64
	case graph.Uint64:
		return schema.TensorTypeUINT64
	default:
		panic("unknown data type")
	}
}
