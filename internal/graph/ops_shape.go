package graph

// Concat joins Inputs along Axis.
type Concat struct {
	Inputs []OperandID
	Output OperandID
	Axis   uint32
}

// Name implements Operation.
func (*Concat) Name() string { return "concat" }

// Accept implements Operation.
func (op *Concat) Accept(v Visitor) error { return v.VisitConcat(op) }

func (*Concat) operation() {}

// Expand broadcasts Input to the output operand's shape.
type Expand struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Expand) Name() string { return "expand" }

// Accept implements Operation.
func (op *Expand) Accept(v Visitor) error { return v.VisitExpand(op) }

func (*Expand) operation() {}

// Gather selects slices of Input along Axis using Indices.
type Gather struct {
	Input   OperandID
	Indices OperandID
	Output  OperandID
	Axis    uint32
}

// Name implements Operation.
func (*Gather) Name() string { return "gather" }

// Accept implements Operation.
func (op *Gather) Accept(v Visitor) error { return v.VisitGather(op) }

func (*Gather) operation() {}

// PaddingMode selects how Pad fills new elements.
type PaddingMode int

// Padding modes.
const (
	PaddingConstant PaddingMode = iota
	PaddingEdge
	PaddingReflection
	PaddingSymmetric
)

// String returns the mode name.
func (m PaddingMode) String() string {
	switch m {
	case PaddingConstant:
		return "constant"
	case PaddingEdge:
		return "edge"
	case PaddingReflection:
		return "reflection"
	case PaddingSymmetric:
		return "symmetric"
	default:
		return "unknown"
	}
}

// Pad grows every axis by Beginning[i] and Ending[i] elements.
type Pad struct {
	Input     OperandID
	Output    OperandID
	Beginning []uint32
	Ending    []uint32
	Mode      PaddingMode
	Value     float32 // Fill value for PaddingConstant
}

// Name implements Operation.
func (*Pad) Name() string { return "pad" }

// Accept implements Operation.
func (op *Pad) Accept(v Visitor) error { return v.VisitPad(op) }

func (*Pad) operation() {}

// Reshape reinterprets Input with the output operand's shape.
type Reshape struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Reshape) Name() string { return "reshape" }

// Accept implements Operation.
func (op *Reshape) Accept(v Visitor) error { return v.VisitReshape(op) }

func (*Reshape) operation() {}

// Slice extracts a strided window. Strides may be empty, meaning all ones.
type Slice struct {
	Input   OperandID
	Output  OperandID
	Starts  []uint32
	Sizes   []uint32
	Strides []uint32
}

// Name implements Operation.
func (*Slice) Name() string { return "slice" }

// Accept implements Operation.
func (op *Slice) Accept(v Visitor) error { return v.VisitSlice(op) }

func (*Slice) operation() {}

// Split cuts Input along Axis into len(Outputs) pieces whose extents are
// taken from the output operands.
type Split struct {
	Input   OperandID
	Outputs []OperandID
	Axis    uint32
}

// Name implements Operation.
func (*Split) Name() string { return "split" }

// Accept implements Operation.
func (op *Split) Accept(v Visitor) error { return v.VisitSplit(op) }

func (*Split) operation() {}

// Transpose permutes the axes of Input.
type Transpose struct {
	Input       OperandID
	Output      OperandID
	Permutation []uint32
}

// Name implements Operation.
func (*Transpose) Name() string { return "transpose" }

// Accept implements Operation.
func (op *Transpose) Accept(v Visitor) error { return v.VisitTranspose(op) }

func (*Transpose) operation() {}

// Where selects TrueValue where Condition is non-zero and FalseValue
// elsewhere. Condition is a uint8 operand.
type Where struct {
	Condition  OperandID
	TrueValue  OperandID
	FalseValue OperandID
	Output     OperandID
}

// Name implements Operation.
func (*Where) Name() string { return "where" }

// Accept implements Operation.
func (op *Where) Accept(v Visitor) error { return v.VisitWhere(op) }

func (*Where) operation() {}
