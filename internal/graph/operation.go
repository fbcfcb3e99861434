package graph

// Operation is one node of the computation graph.
//
// The set of implementations is closed: every operation type dispatches to
// its own [Visitor] method.
type Operation interface {
	// Name returns the operator name used in diagnostics, e.g. "conv2d" or "reduceL2".
	Name() string
	// Accept calls the Visitor method matching the concrete operation type.
	Accept(v Visitor) error

	operation()
}

// Visitor handles every operation kind.
type Visitor interface {
	VisitArgMinMax(op *ArgMinMax) error
	VisitBatchNormalization(op *BatchNormalization) error
	VisitClamp(op *Clamp) error
	VisitConcat(op *Concat) error
	VisitConv2d(op *Conv2d) error
	VisitConvTranspose2d(op *ConvTranspose2d) error
	VisitElementwiseBinary(op *ElementwiseBinary) error
	VisitElementwiseUnary(op *ElementwiseUnary) error
	VisitElu(op *Elu) error
	VisitExpand(op *Expand) error
	VisitGather(op *Gather) error
	VisitGelu(op *Gelu) error
	VisitGemm(op *Gemm) error
	VisitHardSigmoid(op *HardSigmoid) error
	VisitHardSwish(op *HardSwish) error
	VisitInstanceNormalization(op *InstanceNormalization) error
	VisitLayerNormalization(op *LayerNormalization) error
	VisitLeakyRelu(op *LeakyRelu) error
	VisitLinear(op *Linear) error
	VisitMatmul(op *Matmul) error
	VisitPad(op *Pad) error
	VisitPool2d(op *Pool2d) error
	VisitPrelu(op *Prelu) error
	VisitReduce(op *Reduce) error
	VisitRelu(op *Relu) error
	VisitResample2d(op *Resample2d) error
	VisitReshape(op *Reshape) error
	VisitSigmoid(op *Sigmoid) error
	VisitSlice(op *Slice) error
	VisitSoftmax(op *Softmax) error
	VisitSoftplus(op *Softplus) error
	VisitSoftsign(op *Softsign) error
	VisitSplit(op *Split) error
	VisitTanh(op *Tanh) error
	VisitTranspose(op *Transpose) error
	VisitWhere(op *Where) error
}

// Ref returns a pointer to id, for optional operand fields.
func Ref(id OperandID) *OperandID {
	return &id
}

// Size2d is a pair of spatial extents.
type Size2d struct {
	Height uint32
	Width  uint32
}

// Padding2d holds explicit spatial padding.
//
// Listed flat, the amounts are [Beginning.Height, Ending.Height,
// Beginning.Width, Ending.Width].
type Padding2d struct {
	Beginning Size2d
	Ending    Size2d
}

// InputLayout is the memory layout of a 4-D image operand.
type InputLayout int

// Input layouts.
const (
	LayoutNHWC InputLayout = iota
	LayoutNCHW
)

// String returns the layout name.
func (l InputLayout) String() string {
	switch l {
	case LayoutNHWC:
		return "nhwc"
	case LayoutNCHW:
		return "nchw"
	default:
		return "unknown"
	}
}

// FilterLayout is the memory layout of a convolution filter.
type FilterLayout int

// Filter layouts.
const (
	FilterOHWI FilterLayout = iota
	FilterIHWO
	FilterOIHW
	FilterHWIO
)

// String returns the layout name.
func (l FilterLayout) String() string {
	switch l {
	case FilterOHWI:
		return "ohwi"
	case FilterIHWO:
		return "ihwo"
	case FilterOIHW:
		return "oihw"
	case FilterHWIO:
		return "hwio"
	default:
		return "unknown"
	}
}
