package graph

// ReduceKind selects a reduction.
type ReduceKind int

// Reduction kinds.
const (
	ReduceL1 ReduceKind = iota
	ReduceL2
	ReduceLogSum
	ReduceLogSumExp
	ReduceMax
	ReduceMean
	ReduceMin
	ReduceProduct
	ReduceSum
	ReduceSumSquare
)

var reduceNames = map[ReduceKind]string{
	ReduceL1:        "reduceL1",
	ReduceL2:        "reduceL2",
	ReduceLogSum:    "reduceLogSum",
	ReduceLogSumExp: "reduceLogSumExp",
	ReduceMax:       "reduceMax",
	ReduceMean:      "reduceMean",
	ReduceMin:       "reduceMin",
	ReduceProduct:   "reduceProduct",
	ReduceSum:       "reduceSum",
	ReduceSumSquare: "reduceSumSquare",
}

// String returns the operator name.
func (k ReduceKind) String() string {
	if name, ok := reduceNames[k]; ok {
		return name
	}
	return "unknown"
}

// Reduce reduces Input over Axes. An empty Axes list leaves the input
// unchanged.
type Reduce struct {
	Kind           ReduceKind
	Input          OperandID
	Output         OperandID
	Axes           []uint32
	KeepDimensions bool
}

// Name implements Operation.
func (op *Reduce) Name() string { return op.Kind.String() }

// Accept implements Operation.
func (op *Reduce) Accept(v Visitor) error { return v.VisitReduce(op) }

func (*Reduce) operation() {}

// ArgMinMaxKind selects arg-min or arg-max.
type ArgMinMaxKind int

// Arg reduction kinds.
const (
	ArgMin ArgMinMaxKind = iota
	ArgMax
)

// ArgMinMax returns the index of the extreme value along Axes. The output
// data type (int32 or int64) selects the index type.
type ArgMinMax struct {
	Kind            ArgMinMaxKind
	Input           OperandID
	Output          OperandID
	Axes            []uint32
	KeepDimensions  bool
	SelectLastIndex bool
}

// Name implements Operation.
func (op *ArgMinMax) Name() string {
	if op.Kind == ArgMin {
		return "argMin"
	}
	return "argMax"
}

// Accept implements Operation.
func (op *ArgMinMax) Accept(v Visitor) error { return v.VisitArgMinMax(op) }

func (*ArgMinMax) operation() {}
