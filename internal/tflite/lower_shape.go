package tflite

import (
	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/tflite/schema"
)

func (l *lowerer) VisitConcat(op *graph.Concat) error {
	axis, err := toInt32(op.Axis, op.Name(), "axis")
	if err != nil {
		return err
	}
	l.emit(schema.BuiltinOperatorCONCATENATION, l.resolve(op.Inputs), []int32{l.index(op.Output)},
		&schema.ConcatenationOptionsT{Axis: axis})
	return nil
}

func (l *lowerer) VisitExpand(op *graph.Expand) error {
	output := l.index(op.Output)
	shapeIndex := l.addInt32Vector(l.shapeOf(output))
	l.emit(schema.BuiltinOperatorBROADCAST_TO, []int32{l.index(op.Input), shapeIndex}, []int32{output}, nil)
	return nil
}

func (l *lowerer) VisitGather(op *graph.Gather) error {
	axis, err := toInt32(op.Axis, op.Name(), "axis")
	if err != nil {
		return err
	}

	// GATHER takes int32 or int64 positions only.
	indices := l.index(op.Indices)
	switch l.dataType(op.Indices) {
	case graph.Int32, graph.Int64:
	case graph.Uint32, graph.Uint64:
		indices = l.castToTemp(indices, schema.TensorTypeINT64)
	default:
		indices = l.castToTemp(indices, schema.TensorTypeINT32)
	}

	l.emit(schema.BuiltinOperatorGATHER, []int32{l.index(op.Input), indices}, []int32{l.index(op.Output)},
		&schema.GatherOptionsT{Axis: axis})
	return nil
}

func (l *lowerer) VisitPad(op *graph.Pad) error {
	input, output := l.index(op.Input), l.index(op.Output)
	rank := len(l.shapeOf(input))
	if len(op.Beginning) != rank || len(op.Ending) != rank {
		return newError(UnsupportedParameter, op.Name(), "padding has %d/%d entries for rank %d",
			len(op.Beginning), len(op.Ending), rank)
	}

	paddings := make([]int32, 0, 2*rank)
	for i := range rank {
		begin, err := toInt32(op.Beginning[i], op.Name(), "padding")
		if err != nil {
			return err
		}
		end, err := toInt32(op.Ending[i], op.Name(), "padding")
		if err != nil {
			return err
		}
		paddings = append(paddings, begin, end)
	}
	paddingsIndex := l.addInt32Tensor(paddings, []int32{int32(rank), 2})

	switch op.Mode {
	case graph.PaddingConstant:
		if op.Value == 0 {
			l.emit(schema.BuiltinOperatorPAD, []int32{input, paddingsIndex}, []int32{output}, nil)
			return nil
		}
		value := l.addScalar(l.dataType(op.Input), op.Value)
		l.emit(schema.BuiltinOperatorPADV2, []int32{input, paddingsIndex, value}, []int32{output}, nil)
	case graph.PaddingReflection:
		l.emit(schema.BuiltinOperatorMIRROR_PAD, []int32{input, paddingsIndex}, []int32{output},
			&schema.MirrorPadOptionsT{Mode: schema.MirrorPadModeREFLECT})
	case graph.PaddingSymmetric:
		l.emit(schema.BuiltinOperatorMIRROR_PAD, []int32{input, paddingsIndex}, []int32{output},
			&schema.MirrorPadOptionsT{Mode: schema.MirrorPadModeSYMMETRIC})
	default:
		return newError(UnsupportedParameter, op.Name(), "padding mode %s is not supported", op.Mode)
	}
	return nil
}

func (l *lowerer) VisitReshape(op *graph.Reshape) error {
	output := l.index(op.Output)
	l.reshape(l.index(op.Input), l.shapeOf(output), output)
	return nil
}

func (l *lowerer) VisitSlice(op *graph.Slice) error {
	input, output := l.index(op.Input), l.index(op.Output)
	starts, err := toInt32Slice(op.Starts, op.Name(), "start")
	if err != nil {
		return err
	}
	sizes, err := toInt32Slice(op.Sizes, op.Name(), "size")
	if err != nil {
		return err
	}
	rank := len(l.shapeOf(input))
	if len(starts) != rank || len(sizes) != rank {
		return newError(UnsupportedParameter, op.Name(), "got %d starts and %d sizes for rank %d",
			len(starts), len(sizes), rank)
	}
	if len(op.Strides) != 0 && len(op.Strides) != rank {
		return newError(UnsupportedParameter, op.Name(), "got %d strides for rank %d", len(op.Strides), rank)
	}

	strided := false
	for _, s := range op.Strides {
		if s != 1 {
			strided = true
			break
		}
	}

	if !strided {
		l.emit(schema.BuiltinOperatorSLICE,
			[]int32{input, l.addInt32Vector(starts), l.addInt32Vector(sizes)},
			[]int32{output}, nil)
		return nil
	}

	strides, err := toInt32Slice(op.Strides, op.Name(), "stride")
	if err != nil {
		return err
	}
	ends := make([]int32, len(starts))
	for i := range starts {
		end, err := toInt32(int64(starts[i])+int64(sizes[i]), op.Name(), "slice end")
		if err != nil {
			return err
		}
		ends[i] = end
	}
	l.emit(schema.BuiltinOperatorSTRIDED_SLICE,
		[]int32{input, l.addInt32Vector(starts), l.addInt32Vector(ends), l.addInt32Vector(strides)},
		[]int32{output}, &schema.StridedSliceOptionsT{})
	return nil
}

func (l *lowerer) VisitSplit(op *graph.Split) error {
	axis, err := toInt32(op.Axis, op.Name(), "axis")
	if err != nil {
		return err
	}
	numSplits, err := toInt32(len(op.Outputs), op.Name(), "split count")
	if err != nil {
		return err
	}

	outputs := l.resolve(op.Outputs)
	sizes := make([]int32, len(outputs))
	for i, output := range outputs {
		shape := l.shapeOf(output)
		if int(axis) >= len(shape) {
			return newError(UnsupportedParameter, op.Name(), "axis %d out of range for rank %d", axis, len(shape))
		}
		sizes[i] = shape[axis]
	}

	inputs := []int32{l.index(op.Input), l.addInt32Vector(sizes), l.addInt32Scalar(axis)}
	l.emit(schema.BuiltinOperatorSPLIT_V, inputs, outputs, &schema.SplitVOptionsT{NumSplits: numSplits})
	return nil
}

func (l *lowerer) VisitTranspose(op *graph.Transpose) error {
	perm, err := toInt32Slice(op.Permutation, op.Name(), "permutation entry")
	if err != nil {
		return err
	}
	l.transpose(l.index(op.Input), perm, l.index(op.Output))
	return nil
}

func (l *lowerer) VisitWhere(op *graph.Where) error {
	condition := l.castToTemp(l.index(op.Condition), schema.TensorTypeBOOL)
	l.emit(schema.BuiltinOperatorSELECT_V2,
		[]int32{condition, l.index(op.TrueValue), l.index(op.FalseValue)},
		[]int32{l.index(op.Output)}, nil)
	return nil
}
