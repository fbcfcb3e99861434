package schema

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Conv2DOptionsT configures CONV_2D.
type Conv2DOptionsT struct {
	Padding                 Padding
	StrideW                 int32
	StrideH                 int32
	FusedActivationFunction ActivationFunctionType
	DilationWFactor         int32
	DilationHFactor         int32
}

// Type implements BuiltinOptionsT.
func (*Conv2DOptionsT) Type() BuiltinOptions { return BuiltinOptionsConv2DOptions }

// Pack implements BuiltinOptionsT.
func (t *Conv2DOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(7)
	b.PrependInt8Slot(0, int8(t.Padding), 0)
	b.PrependInt32Slot(1, t.StrideW, 0)
	b.PrependInt32Slot(2, t.StrideH, 0)
	b.PrependInt8Slot(3, int8(t.FusedActivationFunction), 0)
	b.PrependInt32Slot(4, t.DilationWFactor, 1)
	b.PrependInt32Slot(5, t.DilationHFactor, 1)
	return b.EndObject()
}

func (t *Conv2DOptionsT) unpack(tab *table) {
	t.Padding = Padding(tab.getInt8(0, 0))
	t.StrideW = tab.getInt32(1, 0)
	t.StrideH = tab.getInt32(2, 0)
	t.FusedActivationFunction = ActivationFunctionType(tab.getInt8(3, 0))
	t.DilationWFactor = tab.getInt32(4, 1)
	t.DilationHFactor = tab.getInt32(5, 1)
}

// DepthwiseConv2DOptionsT configures DEPTHWISE_CONV_2D.
type DepthwiseConv2DOptionsT struct {
	Padding                 Padding
	StrideW                 int32
	StrideH                 int32
	DepthMultiplier         int32
	FusedActivationFunction ActivationFunctionType
	DilationWFactor         int32
	DilationHFactor         int32
}

// Type implements BuiltinOptionsT.
func (*DepthwiseConv2DOptionsT) Type() BuiltinOptions { return BuiltinOptionsDepthwiseConv2DOptions }

// Pack implements BuiltinOptionsT.
func (t *DepthwiseConv2DOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(7)
	b.PrependInt8Slot(0, int8(t.Padding), 0)
	b.PrependInt32Slot(1, t.StrideW, 0)
	b.PrependInt32Slot(2, t.StrideH, 0)
	b.PrependInt32Slot(3, t.DepthMultiplier, 0)
	b.PrependInt8Slot(4, int8(t.FusedActivationFunction), 0)
	b.PrependInt32Slot(5, t.DilationWFactor, 1)
	b.PrependInt32Slot(6, t.DilationHFactor, 1)
	return b.EndObject()
}

func (t *DepthwiseConv2DOptionsT) unpack(tab *table) {
	t.Padding = Padding(tab.getInt8(0, 0))
	t.StrideW = tab.getInt32(1, 0)
	t.StrideH = tab.getInt32(2, 0)
	t.DepthMultiplier = tab.getInt32(3, 0)
	t.FusedActivationFunction = ActivationFunctionType(tab.getInt8(4, 0))
	t.DilationWFactor = tab.getInt32(5, 1)
	t.DilationHFactor = tab.getInt32(6, 1)
}

// Pool2DOptionsT configures AVERAGE_POOL_2D, MAX_POOL_2D and L2_POOL_2D.
type Pool2DOptionsT struct {
	Padding                 Padding
	StrideW                 int32
	StrideH                 int32
	FilterWidth             int32
	FilterHeight            int32
	FusedActivationFunction ActivationFunctionType
}

// Type implements BuiltinOptionsT.
func (*Pool2DOptionsT) Type() BuiltinOptions { return BuiltinOptionsPool2DOptions }

// Pack implements BuiltinOptionsT.
func (t *Pool2DOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(6)
	b.PrependInt8Slot(0, int8(t.Padding), 0)
	b.PrependInt32Slot(1, t.StrideW, 0)
	b.PrependInt32Slot(2, t.StrideH, 0)
	b.PrependInt32Slot(3, t.FilterWidth, 0)
	b.PrependInt32Slot(4, t.FilterHeight, 0)
	b.PrependInt8Slot(5, int8(t.FusedActivationFunction), 0)
	return b.EndObject()
}

func (t *Pool2DOptionsT) unpack(tab *table) {
	t.Padding = Padding(tab.getInt8(0, 0))
	t.StrideW = tab.getInt32(1, 0)
	t.StrideH = tab.getInt32(2, 0)
	t.FilterWidth = tab.getInt32(3, 0)
	t.FilterHeight = tab.getInt32(4, 0)
	t.FusedActivationFunction = ActivationFunctionType(tab.getInt8(5, 0))
}

// FullyConnectedOptionsT configures FULLY_CONNECTED.
type FullyConnectedOptionsT struct {
	FusedActivationFunction ActivationFunctionType
	KeepNumDims             bool
}

// Type implements BuiltinOptionsT.
func (*FullyConnectedOptionsT) Type() BuiltinOptions { return BuiltinOptionsFullyConnectedOptions }

// Pack implements BuiltinOptionsT.
func (t *FullyConnectedOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(4)
	b.PrependInt8Slot(0, int8(t.FusedActivationFunction), 0)
	b.PrependBoolSlot(2, t.KeepNumDims, false)
	return b.EndObject()
}

func (t *FullyConnectedOptionsT) unpack(tab *table) {
	t.FusedActivationFunction = ActivationFunctionType(tab.getInt8(0, 0))
	t.KeepNumDims = tab.getBool(2, false)
}

// SoftmaxOptionsT configures SOFTMAX.
type SoftmaxOptionsT struct {
	Beta float32
}

// Type implements BuiltinOptionsT.
func (*SoftmaxOptionsT) Type() BuiltinOptions { return BuiltinOptionsSoftmaxOptions }

// Pack implements BuiltinOptionsT.
func (t *SoftmaxOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependFloat32Slot(0, t.Beta, 0)
	return b.EndObject()
}

func (t *SoftmaxOptionsT) unpack(tab *table) {
	t.Beta = tab.getFloat32(0, 0)
}

// ConcatenationOptionsT configures CONCATENATION.
type ConcatenationOptionsT struct {
	Axis                    int32
	FusedActivationFunction ActivationFunctionType
}

// Type implements BuiltinOptionsT.
func (*ConcatenationOptionsT) Type() BuiltinOptions { return BuiltinOptionsConcatenationOptions }

// Pack implements BuiltinOptionsT.
func (t *ConcatenationOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(2)
	b.PrependInt32Slot(0, t.Axis, 0)
	b.PrependInt8Slot(1, int8(t.FusedActivationFunction), 0)
	return b.EndObject()
}

func (t *ConcatenationOptionsT) unpack(tab *table) {
	t.Axis = tab.getInt32(0, 0)
	t.FusedActivationFunction = ActivationFunctionType(tab.getInt8(1, 0))
}

// ResizeBilinearOptionsT configures RESIZE_BILINEAR.
type ResizeBilinearOptionsT struct {
	AlignCorners     bool
	HalfPixelCenters bool
}

// Type implements BuiltinOptionsT.
func (*ResizeBilinearOptionsT) Type() BuiltinOptions { return BuiltinOptionsResizeBilinearOptions }

// Pack implements BuiltinOptionsT.
func (t *ResizeBilinearOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(4)
	b.PrependBoolSlot(2, t.AlignCorners, false)
	b.PrependBoolSlot(3, t.HalfPixelCenters, false)
	return b.EndObject()
}

func (t *ResizeBilinearOptionsT) unpack(tab *table) {
	t.AlignCorners = tab.getBool(2, false)
	t.HalfPixelCenters = tab.getBool(3, false)
}

// ResizeNearestNeighborOptionsT configures RESIZE_NEAREST_NEIGHBOR.
type ResizeNearestNeighborOptionsT struct {
	AlignCorners     bool
	HalfPixelCenters bool
}

// Type implements BuiltinOptionsT.
func (*ResizeNearestNeighborOptionsT) Type() BuiltinOptions {
	return BuiltinOptionsResizeNearestNeighborOptions
}

// Pack implements BuiltinOptionsT.
func (t *ResizeNearestNeighborOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(2)
	b.PrependBoolSlot(0, t.AlignCorners, false)
	b.PrependBoolSlot(1, t.HalfPixelCenters, false)
	return b.EndObject()
}

func (t *ResizeNearestNeighborOptionsT) unpack(tab *table) {
	t.AlignCorners = tab.getBool(0, false)
	t.HalfPixelCenters = tab.getBool(1, false)
}

// ReshapeOptionsT configures RESHAPE.
type ReshapeOptionsT struct {
	NewShape []int32
}

// Type implements BuiltinOptionsT.
func (*ReshapeOptionsT) Type() BuiltinOptions { return BuiltinOptionsReshapeOptions }

// Pack implements BuiltinOptionsT.
func (t *ReshapeOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	newShapeOffset := createInt32Vector(b, t.NewShape)
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, newShapeOffset, 0)
	return b.EndObject()
}

func (t *ReshapeOptionsT) unpack(tab *table) {
	t.NewShape = tab.int32Vector(0)
}

// GatherOptionsT configures GATHER.
type GatherOptionsT struct {
	Axis      int32
	BatchDims int32
}

// Type implements BuiltinOptionsT.
func (*GatherOptionsT) Type() BuiltinOptions { return BuiltinOptionsGatherOptions }

// Pack implements BuiltinOptionsT.
func (t *GatherOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(2)
	b.PrependInt32Slot(0, t.Axis, 0)
	b.PrependInt32Slot(1, t.BatchDims, 0)
	return b.EndObject()
}

func (t *GatherOptionsT) unpack(tab *table) {
	t.Axis = tab.getInt32(0, 0)
	t.BatchDims = tab.getInt32(1, 0)
}

// ReducerOptionsT configures SUM, MEAN, REDUCE_MAX, REDUCE_MIN and REDUCE_PROD.
type ReducerOptionsT struct {
	KeepDims bool
}

// Type implements BuiltinOptionsT.
func (*ReducerOptionsT) Type() BuiltinOptions { return BuiltinOptionsReducerOptions }

// Pack implements BuiltinOptionsT.
func (t *ReducerOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependBoolSlot(0, t.KeepDims, false)
	return b.EndObject()
}

func (t *ReducerOptionsT) unpack(tab *table) {
	t.KeepDims = tab.getBool(0, false)
}

// StridedSliceOptionsT configures STRIDED_SLICE.
type StridedSliceOptionsT struct {
	BeginMask      int32
	EndMask        int32
	EllipsisMask   int32
	NewAxisMask    int32
	ShrinkAxisMask int32
	Offset         bool
}

// Type implements BuiltinOptionsT.
func (*StridedSliceOptionsT) Type() BuiltinOptions { return BuiltinOptionsStridedSliceOptions }

// Pack implements BuiltinOptionsT.
func (t *StridedSliceOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(6)
	b.PrependInt32Slot(0, t.BeginMask, 0)
	b.PrependInt32Slot(1, t.EndMask, 0)
	b.PrependInt32Slot(2, t.EllipsisMask, 0)
	b.PrependInt32Slot(3, t.NewAxisMask, 0)
	b.PrependInt32Slot(4, t.ShrinkAxisMask, 0)
	b.PrependBoolSlot(5, t.Offset, false)
	return b.EndObject()
}

func (t *StridedSliceOptionsT) unpack(tab *table) {
	t.BeginMask = tab.getInt32(0, 0)
	t.EndMask = tab.getInt32(1, 0)
	t.EllipsisMask = tab.getInt32(2, 0)
	t.NewAxisMask = tab.getInt32(3, 0)
	t.ShrinkAxisMask = tab.getInt32(4, 0)
	t.Offset = tab.getBool(5, false)
}

// CastOptionsT configures CAST.
type CastOptionsT struct {
	InDataType  TensorType
	OutDataType TensorType
}

// Type implements BuiltinOptionsT.
func (*CastOptionsT) Type() BuiltinOptions { return BuiltinOptionsCastOptions }

// Pack implements BuiltinOptionsT.
func (t *CastOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(2)
	b.PrependInt8Slot(0, int8(t.InDataType), 0)
	b.PrependInt8Slot(1, int8(t.OutDataType), 0)
	return b.EndObject()
}

func (t *CastOptionsT) unpack(tab *table) {
	t.InDataType = TensorType(tab.getInt8(0, 0))
	t.OutDataType = TensorType(tab.getInt8(1, 0))
}

// ArgMaxOptionsT configures ARG_MAX.
type ArgMaxOptionsT struct {
	OutputType TensorType
}

// Type implements BuiltinOptionsT.
func (*ArgMaxOptionsT) Type() BuiltinOptions { return BuiltinOptionsArgMaxOptions }

// Pack implements BuiltinOptionsT.
func (t *ArgMaxOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependInt8Slot(0, int8(t.OutputType), 0)
	return b.EndObject()
}

func (t *ArgMaxOptionsT) unpack(tab *table) {
	t.OutputType = TensorType(tab.getInt8(0, 0))
}

// ArgMinOptionsT configures ARG_MIN.
type ArgMinOptionsT struct {
	OutputType TensorType
}

// Type implements BuiltinOptionsT.
func (*ArgMinOptionsT) Type() BuiltinOptions { return BuiltinOptionsArgMinOptions }

// Pack implements BuiltinOptionsT.
func (t *ArgMinOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependInt8Slot(0, int8(t.OutputType), 0)
	return b.EndObject()
}

func (t *ArgMinOptionsT) unpack(tab *table) {
	t.OutputType = TensorType(tab.getInt8(0, 0))
}

// TransposeConvOptionsT configures TRANSPOSE_CONV.
type TransposeConvOptionsT struct {
	Padding                 Padding
	StrideW                 int32
	StrideH                 int32
	FusedActivationFunction ActivationFunctionType
}

// Type implements BuiltinOptionsT.
func (*TransposeConvOptionsT) Type() BuiltinOptions { return BuiltinOptionsTransposeConvOptions }

// Pack implements BuiltinOptionsT.
func (t *TransposeConvOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(5)
	b.PrependInt8Slot(0, int8(t.Padding), 0)
	b.PrependInt32Slot(1, t.StrideW, 0)
	b.PrependInt32Slot(2, t.StrideH, 0)
	b.PrependInt8Slot(3, int8(t.FusedActivationFunction), 0)
	return b.EndObject()
}

func (t *TransposeConvOptionsT) unpack(tab *table) {
	t.Padding = Padding(tab.getInt8(0, 0))
	t.StrideW = tab.getInt32(1, 0)
	t.StrideH = tab.getInt32(2, 0)
	t.FusedActivationFunction = ActivationFunctionType(tab.getInt8(3, 0))
}

// LeakyReluOptionsT configures LEAKY_RELU.
type LeakyReluOptionsT struct {
	Alpha float32
}

// Type implements BuiltinOptionsT.
func (*LeakyReluOptionsT) Type() BuiltinOptions { return BuiltinOptionsLeakyReluOptions }

// Pack implements BuiltinOptionsT.
func (t *LeakyReluOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependFloat32Slot(0, t.Alpha, 0)
	return b.EndObject()
}

func (t *LeakyReluOptionsT) unpack(tab *table) {
	t.Alpha = tab.getFloat32(0, 0)
}

// MirrorPadOptionsT configures MIRROR_PAD.
type MirrorPadOptionsT struct {
	Mode MirrorPadMode
}

// Type implements BuiltinOptionsT.
func (*MirrorPadOptionsT) Type() BuiltinOptions { return BuiltinOptionsMirrorPadOptions }

// Pack implements BuiltinOptionsT.
func (t *MirrorPadOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependInt8Slot(0, int8(t.Mode), 0)
	return b.EndObject()
}

func (t *MirrorPadOptionsT) unpack(tab *table) {
	t.Mode = MirrorPadMode(tab.getInt8(0, 0))
}

// SplitVOptionsT configures SPLIT_V.
type SplitVOptionsT struct {
	NumSplits int32
}

// Type implements BuiltinOptionsT.
func (*SplitVOptionsT) Type() BuiltinOptions { return BuiltinOptionsSplitVOptions }

// Pack implements BuiltinOptionsT.
func (t *SplitVOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(1)
	b.PrependInt32Slot(0, t.NumSplits, 0)
	return b.EndObject()
}

func (t *SplitVOptionsT) unpack(tab *table) {
	t.NumSplits = tab.getInt32(0, 0)
}

// BatchMatMulOptionsT configures BATCH_MATMUL.
type BatchMatMulOptionsT struct {
	AdjX bool
	AdjY bool
}

// Type implements BuiltinOptionsT.
func (*BatchMatMulOptionsT) Type() BuiltinOptions { return BuiltinOptionsBatchMatMulOptions }

// Pack implements BuiltinOptionsT.
func (t *BatchMatMulOptionsT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	b.StartObject(3)
	b.PrependBoolSlot(0, t.AdjX, false)
	b.PrependBoolSlot(1, t.AdjY, false)
	return b.EndObject()
}

func (t *BatchMatMulOptionsT) unpack(tab *table) {
	t.AdjX = tab.getBool(0, false)
	t.AdjY = tab.getBool(1, false)
}

// unpackBuiltinOptions decodes the options union of an operator.
func unpackBuiltinOptions(typ BuiltinOptions, tab *table) BuiltinOptionsT {
	var options interface {
		BuiltinOptionsT
		unpack(tab *table)
	}
	switch typ {
	case BuiltinOptionsConv2DOptions:
		options = &Conv2DOptionsT{}
	case BuiltinOptionsDepthwiseConv2DOptions:
		options = &DepthwiseConv2DOptionsT{}
	case BuiltinOptionsPool2DOptions:
		options = &Pool2DOptionsT{}
	case BuiltinOptionsFullyConnectedOptions:
		options = &FullyConnectedOptionsT{}
	case BuiltinOptionsSoftmaxOptions:
		options = &SoftmaxOptionsT{}
	case BuiltinOptionsConcatenationOptions:
		options = &ConcatenationOptionsT{}
	case BuiltinOptionsResizeBilinearOptions:
		options = &ResizeBilinearOptionsT{}
	case BuiltinOptionsResizeNearestNeighborOptions:
		options = &ResizeNearestNeighborOptionsT{}
	case BuiltinOptionsReshapeOptions:
		options = &ReshapeOptionsT{}
	case BuiltinOptionsGatherOptions:
		options = &GatherOptionsT{}
	case BuiltinOptionsReducerOptions:
		options = &ReducerOptionsT{}
	case BuiltinOptionsStridedSliceOptions:
		options = &StridedSliceOptionsT{}
	case BuiltinOptionsCastOptions:
		options = &CastOptionsT{}
	case BuiltinOptionsArgMaxOptions:
		options = &ArgMaxOptionsT{}
	case BuiltinOptionsArgMinOptions:
		options = &ArgMinOptionsT{}
	case BuiltinOptionsTransposeConvOptions:
		options = &TransposeConvOptionsT{}
	case BuiltinOptionsLeakyReluOptions:
		options = &LeakyReluOptionsT{}
	case BuiltinOptionsMirrorPadOptions:
		options = &MirrorPadOptionsT{}
	case BuiltinOptionsSplitVOptions:
		options = &SplitVOptionsT{}
	case BuiltinOptionsBatchMatMulOptions:
		options = &BatchMatMulOptionsT{}
	default:
		return nil
	}
	options.unpack(tab)
	return options
}
