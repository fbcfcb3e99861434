package graph

// Conv2d is a direct 2-D convolution.
//
// Groups equal to the input channel count with a single input channel per
// group describes a depthwise convolution.
type Conv2d struct {
	Input        OperandID
	Filter       OperandID
	Bias         *OperandID
	Output       OperandID
	Strides      Size2d
	Dilations    Size2d
	Padding      Padding2d
	Groups       uint32
	InputLayout  InputLayout
	FilterLayout FilterLayout
}

// Name implements Operation.
func (*Conv2d) Name() string { return "conv2d" }

// Accept implements Operation.
func (op *Conv2d) Accept(v Visitor) error { return v.VisitConv2d(op) }

func (*Conv2d) operation() {}

// ConvTranspose2d is a transposed (fractionally strided) 2-D convolution.
// The output extent is taken from the output operand.
type ConvTranspose2d struct {
	Input        OperandID
	Filter       OperandID
	Bias         *OperandID
	Output       OperandID
	Strides      Size2d
	Dilations    Size2d
	Padding      Padding2d
	Groups       uint32
	InputLayout  InputLayout
	FilterLayout FilterLayout
}

// Name implements Operation.
func (*ConvTranspose2d) Name() string { return "convTranspose2d" }

// Accept implements Operation.
func (op *ConvTranspose2d) Accept(v Visitor) error { return v.VisitConvTranspose2d(op) }

func (*ConvTranspose2d) operation() {}

// PoolKind selects the pooling reduction.
type PoolKind int

// Pool kinds.
const (
	PoolAverage PoolKind = iota
	PoolMax
	PoolL2
)

// Pool2d is a 2-D pooling window reduction.
type Pool2d struct {
	Kind             PoolKind
	Input            OperandID
	Output           OperandID
	WindowDimensions Size2d
	Strides          Size2d
	Dilations        Size2d
	Padding          Padding2d
	Layout           InputLayout
}

// Name implements Operation.
func (op *Pool2d) Name() string {
	switch op.Kind {
	case PoolAverage:
		return "averagePool2d"
	case PoolMax:
		return "maxPool2d"
	case PoolL2:
		return "l2Pool2d"
	default:
		return "pool2d"
	}
}

// Accept implements Operation.
func (op *Pool2d) Accept(v Visitor) error { return v.VisitPool2d(op) }

func (*Pool2d) operation() {}

// InterpolationMode selects the resampling filter.
type InterpolationMode int

// Interpolation modes.
const (
	InterpolationNearestNeighbor InterpolationMode = iota
	InterpolationLinear
)

// Resample2d resizes two spatial axes to the output operand's extents.
type Resample2d struct {
	Input  OperandID
	Output OperandID
	Mode   InterpolationMode
	Axes   []uint32
}

// Name implements Operation.
func (*Resample2d) Name() string { return "resample2d" }

// Accept implements Operation.
func (op *Resample2d) Accept(v Visitor) error { return v.VisitResample2d(op) }

func (*Resample2d) operation() {}
