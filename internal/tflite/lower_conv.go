package tflite

import (
	"slices"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

// TFLite spatial operators are NHWC only.
var (
	nchwToNHWC = []int32{0, 2, 3, 1}
	nhwcToNCHW = []int32{0, 3, 1, 2}
)

// Permutations bringing each filter layout to OHWI (CONV_2D and
// TRANSPOSE_CONV) and to IHWO (DEPTHWISE_CONV_2D).
var (
	toOHWI = map[graph.FilterLayout][]int32{
		graph.FilterOIHW: {0, 2, 3, 1},
		graph.FilterHWIO: {3, 0, 1, 2},
		graph.FilterIHWO: {3, 1, 2, 0},
	}
	toIHWO = map[graph.FilterLayout][]int32{
		graph.FilterOIHW: {1, 2, 3, 0},
		graph.FilterHWIO: {2, 0, 1, 3},
		graph.FilterOHWI: {3, 1, 2, 0},
	}
)

// filterDims holds the extents of a 4-D filter independent of its layout.
type filterDims struct {
	out, height, width, in int32
}

func dimsOf(shape []int32, layout graph.FilterLayout) filterDims {
	switch layout {
	case graph.FilterIHWO:
		return filterDims{in: shape[0], height: shape[1], width: shape[2], out: shape[3]}
	case graph.FilterOIHW:
		return filterDims{out: shape[0], in: shape[1], height: shape[2], width: shape[3]}
	case graph.FilterHWIO:
		return filterDims{height: shape[0], width: shape[1], in: shape[2], out: shape[3]}
	default:
		return filterDims{out: shape[0], height: shape[1], width: shape[2], in: shape[3]}
	}
}

// toNHWC returns input in NHWC order, transposing NCHW inputs.
func (l *lowerer) toNHWC(input int32, layout graph.InputLayout) int32 {
	if layout == graph.LayoutNHWC {
		return input
	}
	return l.transposeToTemp(input, nchwToNHWC)
}

// nhwcOutput returns the tensor an NHWC operator writes. NCHW outputs get a
// temporary that finishOutput transposes back.
func (l *lowerer) nhwcOutput(output int32, layout graph.InputLayout) int32 {
	if layout == graph.LayoutNHWC {
		return output
	}
	return l.addTemporary(permute(l.shapeOf(output), nchwToNHWC), l.typeOf(output))
}

func (l *lowerer) finishOutput(result, output int32) {
	if result != output {
		l.transpose(result, nhwcToNCHW, output)
	}
}

// filterTo brings filter into the layout reached by perms.
func (l *lowerer) filterTo(filter int32, layout graph.FilterLayout, perms map[graph.FilterLayout][]int32) int32 {
	perm, ok := perms[layout]
	if !ok {
		return filter
	}
	return l.transposeToTemp(filter, perm)
}

// padSpatial pads the height and width axes of an NHWC tensor by the
// explicit amounts. A fill of optionalTensor pads with zeros through PAD;
// any other fill is passed to PADV2.
func (l *lowerer) padSpatial(op graph.Operation, input int32, p graph.Padding2d, fill int32) (int32, error) {
	amounts, err := toInt32Slice([]uint32{
		p.Beginning.Height, p.Ending.Height,
		p.Beginning.Width, p.Ending.Width,
	}, op.Name(), "padding")
	if err != nil {
		return 0, err
	}

	shape := slices.Clone(l.shapeOf(input))
	height, err := toInt32(int64(shape[1])+int64(amounts[0])+int64(amounts[1]), op.Name(), "padded height")
	if err != nil {
		return 0, err
	}
	width, err := toInt32(int64(shape[2])+int64(amounts[2])+int64(amounts[3]), op.Name(), "padded width")
	if err != nil {
		return 0, err
	}
	shape[1], shape[2] = height, width

	paddings := l.addInt32Tensor([]int32{
		0, 0,
		amounts[0], amounts[1],
		amounts[2], amounts[3],
		0, 0,
	}, []int32{4, 2})
	padded := l.addTemporary(shape, l.typeOf(input))
	if fill == optionalTensor {
		l.emit(schema.BuiltinOperatorPAD, []int32{input, paddings}, []int32{padded}, nil)
	} else {
		l.emit(schema.BuiltinOperatorPADV2, []int32{input, paddings, fill}, []int32{padded}, nil)
	}
	return padded, nil
}

// spatialParams converts strides and dilations to int32.
func spatialParams(op graph.Operation, strides, dilations graph.Size2d) (sh, sw, dh, dw int32, err error) {
	values, err := toInt32Slice([]uint32{strides.Height, strides.Width, dilations.Height, dilations.Width},
		op.Name(), "stride or dilation")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if slices.Contains(values, 0) {
		return 0, 0, 0, 0, newError(UnsupportedParameter, op.Name(), "strides and dilations must be positive")
	}
	return values[0], values[1], values[2], values[3], nil
}

func spatialSize(nhwc []int32) graph.Size2d {
	return graph.Size2d{Height: uint32(nhwc[1]), Width: uint32(nhwc[2])}
}

// require4d checks the rank of every operand before any layout transpose.
func (l *lowerer) require4d(op graph.Operation, ids ...graph.OperandID) error {
	for _, id := range ids {
		if rank := len(l.shapeOf(l.index(id))); rank != 4 {
			return newError(UnsupportedParameter, op.Name(), "operand %d must be 4-D, got rank %d", id, rank)
		}
	}
	return nil
}

func (l *lowerer) bias(id *graph.OperandID) int32 {
	if id == nil {
		return optionalTensor
	}
	return l.index(*id)
}

func (l *lowerer) VisitConv2d(op *graph.Conv2d) error {
	if err := l.requireFloat(op, op.Input, op.Filter); err != nil {
		return err
	}
	strideH, strideW, dilationH, dilationW, err := spatialParams(op, op.Strides, op.Dilations)
	if err != nil {
		return err
	}

	if err := l.require4d(op, op.Input, op.Filter, op.Output); err != nil {
		return err
	}
	input := l.toNHWC(l.index(op.Input), op.InputLayout)
	inShape := l.shapeOf(input)
	filter := l.index(op.Filter)
	dims := dimsOf(l.shapeOf(filter), op.FilterLayout)
	channels := inShape[3]

	groups, err := toInt32(op.Groups, op.Name(), "groups")
	if err != nil {
		return err
	}
	depthwise := groups > 1
	switch {
	case groups != 1 && groups != channels:
		return newError(UnsupportedParameter, op.Name(), "groups %d is neither 1 nor the channel count %d", groups, channels)
	case depthwise && dims.out%groups != 0:
		return newError(UnsupportedParameter, op.Name(),
			"depthwise output channels %d are not a multiple of the channel count %d", dims.out, channels)
	}

	mode := classifyPadding(op.Padding, spatialSize(inShape),
		graph.Size2d{Height: uint32(dims.height), Width: uint32(dims.width)}, op.Strides, op.Dilations)
	if mode.explicit {
		if input, err = l.padSpatial(op, input, op.Padding, optionalTensor); err != nil {
			return err
		}
	}

	output := l.index(op.Output)
	result := l.nhwcOutput(output, op.InputLayout)
	if depthwise {
		filter = l.filterTo(filter, op.FilterLayout, toIHWO)
		l.emit(schema.BuiltinOperatorDEPTHWISE_CONV_2D, []int32{input, filter, l.bias(op.Bias)}, []int32{result},
			&schema.DepthwiseConv2DOptionsT{
				Padding:         mode.padding,
				StrideW:         strideW,
				StrideH:         strideH,
				DepthMultiplier: dims.out / groups,
				DilationWFactor: dilationW,
				DilationHFactor: dilationH,
			})
	} else {
		filter = l.filterTo(filter, op.FilterLayout, toOHWI)
		l.emit(schema.BuiltinOperatorCONV_2D, []int32{input, filter, l.bias(op.Bias)}, []int32{result},
			&schema.Conv2DOptionsT{
				Padding:         mode.padding,
				StrideW:         strideW,
				StrideH:         strideH,
				DilationWFactor: dilationW,
				DilationHFactor: dilationH,
			})
	}
	l.finishOutput(result, output)
	return nil
}

func (l *lowerer) VisitConvTranspose2d(op *graph.ConvTranspose2d) error {
	if err := l.requireFloat(op, op.Input, op.Filter); err != nil {
		return err
	}
	if op.Dilations.Height != 1 || op.Dilations.Width != 1 {
		return newError(UnsupportedParameter, op.Name(), "dilations %dx%d are not supported",
			op.Dilations.Height, op.Dilations.Width)
	}
	if op.Groups != 1 {
		return newError(UnsupportedParameter, op.Name(), "groups %d is not supported", op.Groups)
	}
	strideH, strideW, _, _, err := spatialParams(op, op.Strides, op.Dilations)
	if err != nil {
		return err
	}

	if err := l.require4d(op, op.Input, op.Filter, op.Output); err != nil {
		return err
	}
	input := l.toNHWC(l.index(op.Input), op.InputLayout)
	inShape := l.shapeOf(input)
	filter := l.index(op.Filter)
	dims := dimsOf(l.shapeOf(filter), op.FilterLayout)

	padding, ok := classifyTransposedPadding(op.Padding, spatialSize(inShape),
		graph.Size2d{Height: uint32(dims.height), Width: uint32(dims.width)}, op.Strides, op.Dilations)
	if !ok {
		return newError(UnsupportedParameter, op.Name(), "padding %v is neither SAME nor VALID", op.Padding)
	}

	output := l.index(op.Output)
	result := l.nhwcOutput(output, op.InputLayout)
	filter = l.filterTo(filter, op.FilterLayout, toOHWI)
	outputShape := l.addInt32Vector(l.shapeOf(result))

	inputs := []int32{outputShape, filter, input}
	if op.Bias != nil {
		inputs = append(inputs, l.index(*op.Bias))
	}
	l.emit(schema.BuiltinOperatorTRANSPOSE_CONV, inputs, []int32{result}, &schema.TransposeConvOptionsT{
		Padding: padding,
		StrideW: strideW,
		StrideH: strideH,
	})
	l.finishOutput(result, output)
	return nil
}

var poolOperators = map[graph.PoolKind]schema.BuiltinOperator{
	graph.PoolAverage: schema.BuiltinOperatorAVERAGE_POOL_2D,
	graph.PoolMax:     schema.BuiltinOperatorMAX_POOL_2D,
	graph.PoolL2:      schema.BuiltinOperatorL2_POOL_2D,
}

func (l *lowerer) VisitPool2d(op *graph.Pool2d) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}
	builtin, ok := poolOperators[op.Kind]
	if !ok {
		return newError(UnsupportedParameter, op.Name(), "unknown pool kind %d", op.Kind)
	}
	if op.Dilations.Height != 1 || op.Dilations.Width != 1 {
		return newError(UnsupportedParameter, op.Name(), "dilations %dx%d are not supported",
			op.Dilations.Height, op.Dilations.Width)
	}
	strideH, strideW, _, _, err := spatialParams(op, op.Strides, op.Dilations)
	if err != nil {
		return err
	}
	window, err := toInt32Slice([]uint32{op.WindowDimensions.Height, op.WindowDimensions.Width},
		op.Name(), "window dimension")
	if err != nil {
		return err
	}

	if err := l.require4d(op, op.Input, op.Output); err != nil {
		return err
	}
	input := l.toNHWC(l.index(op.Input), op.Layout)
	inShape := l.shapeOf(input)

	mode := classifyPadding(op.Padding, spatialSize(inShape), op.WindowDimensions, op.Strides, op.Dilations)
	if mode.explicit {
		// Max pooling must not see the padding, so it is filled with the
		// lowest finite value instead of zero.
		fill := optionalTensor
		if op.Kind == graph.PoolMax {
			dt := l.dataType(op.Input)
			fill = l.addScalar(dt, lowestValue(dt))
		}
		if input, err = l.padSpatial(op, input, op.Padding, fill); err != nil {
			return err
		}
	}

	output := l.index(op.Output)
	result := l.nhwcOutput(output, op.Layout)
	l.emit(builtin, []int32{input}, []int32{result}, &schema.Pool2DOptionsT{
		Padding:      mode.padding,
		StrideW:      strideW,
		StrideH:      strideH,
		FilterWidth:  window[1],
		FilterHeight: window[0],
	})
	l.finishOutput(result, output)
	return nil
}

func (l *lowerer) VisitResample2d(op *graph.Resample2d) error {
	if err := l.requireFloat(op, op.Input); err != nil {
		return err
	}

	var layout graph.InputLayout
	switch {
	case slices.Equal(op.Axes, []uint32{1, 2}):
		layout = graph.LayoutNHWC
	case slices.Equal(op.Axes, []uint32{2, 3}):
		layout = graph.LayoutNCHW
	default:
		return newError(UnsupportedParameter, op.Name(), "axes %v are not supported, want [1 2] or [2 3]", op.Axes)
	}

	if err := l.require4d(op, op.Input, op.Output); err != nil {
		return err
	}
	input := l.toNHWC(l.index(op.Input), layout)
	output := l.index(op.Output)
	result := l.nhwcOutput(output, layout)
	outShape := l.shapeOf(result)
	size := l.addInt32Vector([]int32{outShape[1], outShape[2]})

	if op.Mode == graph.InterpolationLinear {
		l.emit(schema.BuiltinOperatorRESIZE_BILINEAR, []int32{input, size}, []int32{result},
			&schema.ResizeBilinearOptionsT{HalfPixelCenters: true})
	} else {
		l.emit(schema.BuiltinOperatorRESIZE_NEAREST_NEIGHBOR, []int32{input, size}, []int32{result},
			&schema.ResizeNearestNeighborOptionsT{HalfPixelCenters: true})
	}
	l.finishOutput(result, output)
	return nil
}
