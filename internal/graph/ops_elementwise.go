package graph

// BinaryKind selects an element-wise binary operator.
type BinaryKind int

// Element-wise binary kinds. Comparison and logical kinds produce uint8
// operands holding 0 or 1.
const (
	BinaryAdd BinaryKind = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMax
	BinaryMin
	BinaryPow
	BinaryEqual
	BinaryNotEqual
	BinaryGreater
	BinaryGreaterOrEqual
	BinaryLesser
	BinaryLesserOrEqual
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryLogicalXor
)

var binaryNames = map[BinaryKind]string{
	BinaryAdd:            "add",
	BinarySub:            "sub",
	BinaryMul:            "mul",
	BinaryDiv:            "div",
	BinaryMax:            "max",
	BinaryMin:            "min",
	BinaryPow:            "pow",
	BinaryEqual:          "equal",
	BinaryNotEqual:       "notEqual",
	BinaryGreater:        "greater",
	BinaryGreaterOrEqual: "greaterOrEqual",
	BinaryLesser:         "lesser",
	BinaryLesserOrEqual:  "lesserOrEqual",
	BinaryLogicalAnd:     "logicalAnd",
	BinaryLogicalOr:      "logicalOr",
	BinaryLogicalXor:     "logicalXor",
}

// String returns the operator name.
func (k BinaryKind) String() string {
	if name, ok := binaryNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsComparison reports whether k compares its operands.
func (k BinaryKind) IsComparison() bool {
	return k >= BinaryEqual && k <= BinaryLesserOrEqual
}

// IsLogical reports whether k is a boolean connective.
func (k BinaryKind) IsLogical() bool {
	return k >= BinaryLogicalAnd && k <= BinaryLogicalXor
}

// ElementwiseBinary applies a broadcasting binary operator.
type ElementwiseBinary struct {
	Kind   BinaryKind
	LHS    OperandID
	RHS    OperandID
	Output OperandID
}

// Name implements Operation.
func (op *ElementwiseBinary) Name() string { return op.Kind.String() }

// Accept implements Operation.
func (op *ElementwiseBinary) Accept(v Visitor) error { return v.VisitElementwiseBinary(op) }

func (*ElementwiseBinary) operation() {}

// UnaryKind selects an element-wise unary operator.
type UnaryKind int

// Element-wise unary kinds.
const (
	UnaryAbs UnaryKind = iota
	UnaryCeil
	UnaryCos
	UnaryExp
	UnaryFloor
	UnaryLog
	UnaryLogicalNot
	UnaryNeg
	UnaryReciprocal
	UnarySign
	UnarySin
	UnarySqrt
	UnaryTan
	UnaryIdentity
	UnaryCast
)

var unaryNames = map[UnaryKind]string{
	UnaryAbs:        "abs",
	UnaryCeil:       "ceil",
	UnaryCos:        "cos",
	UnaryExp:        "exp",
	UnaryFloor:      "floor",
	UnaryLog:        "log",
	UnaryLogicalNot: "logicalNot",
	UnaryNeg:        "neg",
	UnaryReciprocal: "reciprocal",
	UnarySign:       "sign",
	UnarySin:        "sin",
	UnarySqrt:       "sqrt",
	UnaryTan:        "tan",
	UnaryIdentity:   "identity",
	UnaryCast:       "cast",
}

// String returns the operator name.
func (k UnaryKind) String() string {
	if name, ok := unaryNames[k]; ok {
		return name
	}
	return "unknown"
}

// ElementwiseUnary applies a unary operator. For UnaryCast the target type
// is the output operand's data type.
type ElementwiseUnary struct {
	Kind   UnaryKind
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (op *ElementwiseUnary) Name() string { return op.Kind.String() }

// Accept implements Operation.
func (op *ElementwiseUnary) Accept(v Visitor) error { return v.VisitElementwiseUnary(op) }

func (*ElementwiseUnary) operation() {}

// Clamp limits values to [MinValue, MaxValue].
type Clamp struct {
	Input    OperandID
	Output   OperandID
	MinValue float32
	MaxValue float32
}

// Name implements Operation.
func (*Clamp) Name() string { return "clamp" }

// Accept implements Operation.
func (op *Clamp) Accept(v Visitor) error { return v.VisitClamp(op) }

func (*Clamp) operation() {}

// Elu is the exponential linear unit.
type Elu struct {
	Input  OperandID
	Output OperandID
	Alpha  float32
}

// Name implements Operation.
func (*Elu) Name() string { return "elu" }

// Accept implements Operation.
func (op *Elu) Accept(v Visitor) error { return v.VisitElu(op) }

func (*Elu) operation() {}

// Gelu is the Gaussian error linear unit.
type Gelu struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Gelu) Name() string { return "gelu" }

// Accept implements Operation.
func (op *Gelu) Accept(v Visitor) error { return v.VisitGelu(op) }

func (*Gelu) operation() {}

// HardSigmoid computes max(0, min(1, Alpha*x + Beta)).
type HardSigmoid struct {
	Input  OperandID
	Output OperandID
	Alpha  float32
	Beta   float32
}

// Name implements Operation.
func (*HardSigmoid) Name() string { return "hardSigmoid" }

// Accept implements Operation.
func (op *HardSigmoid) Accept(v Visitor) error { return v.VisitHardSigmoid(op) }

func (*HardSigmoid) operation() {}

// HardSwish computes x * relu6(x + 3) / 6.
type HardSwish struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*HardSwish) Name() string { return "hardSwish" }

// Accept implements Operation.
func (op *HardSwish) Accept(v Visitor) error { return v.VisitHardSwish(op) }

func (*HardSwish) operation() {}

// LeakyRelu computes x for x >= 0 and Alpha*x otherwise.
type LeakyRelu struct {
	Input  OperandID
	Output OperandID
	Alpha  float32
}

// Name implements Operation.
func (*LeakyRelu) Name() string { return "leakyRelu" }

// Accept implements Operation.
func (op *LeakyRelu) Accept(v Visitor) error { return v.VisitLeakyRelu(op) }

func (*LeakyRelu) operation() {}

// Linear computes Alpha*x + Beta.
type Linear struct {
	Input  OperandID
	Output OperandID
	Alpha  float32
	Beta   float32
}

// Name implements Operation.
func (*Linear) Name() string { return "linear" }

// Accept implements Operation.
func (op *Linear) Accept(v Visitor) error { return v.VisitLinear(op) }

func (*Linear) operation() {}

// Prelu computes x for x >= 0 and Slope*x otherwise, Slope broadcasting.
type Prelu struct {
	Input  OperandID
	Slope  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Prelu) Name() string { return "prelu" }

// Accept implements Operation.
func (op *Prelu) Accept(v Visitor) error { return v.VisitPrelu(op) }

func (*Prelu) operation() {}

// Relu computes max(0, x).
type Relu struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Relu) Name() string { return "relu" }

// Accept implements Operation.
func (op *Relu) Accept(v Visitor) error { return v.VisitRelu(op) }

func (*Relu) operation() {}

// Sigmoid computes 1 / (1 + exp(-x)).
type Sigmoid struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Sigmoid) Name() string { return "sigmoid" }

// Accept implements Operation.
func (op *Sigmoid) Accept(v Visitor) error { return v.VisitSigmoid(op) }

func (*Sigmoid) operation() {}

// Softmax normalizes exponentials along Axis.
type Softmax struct {
	Input  OperandID
	Output OperandID
	Axis   uint32
}

// Name implements Operation.
func (*Softmax) Name() string { return "softmax" }

// Accept implements Operation.
func (op *Softmax) Accept(v Visitor) error { return v.VisitSoftmax(op) }

func (*Softmax) operation() {}

// Softplus computes ln(1 + exp(x)).
type Softplus struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Softplus) Name() string { return "softplus" }

// Accept implements Operation.
func (op *Softplus) Accept(v Visitor) error { return v.VisitSoftplus(op) }

func (*Softplus) operation() {}

// Softsign computes x / (1 + |x|).
type Softsign struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Softsign) Name() string { return "softsign" }

// Accept implements Operation.
func (op *Softsign) Accept(v Visitor) error { return v.VisitSoftsign(op) }

func (*Softsign) operation() {}

// Tanh computes the hyperbolic tangent.
type Tanh struct {
	Input  OperandID
	Output OperandID
}

// Name implements Operation.
func (*Tanh) Name() string { return "tanh" }

// Accept implements Operation.
func (op *Tanh) Accept(v Visitor) error { return v.VisitTanh(op) }

func (*Tanh) operation() {}
