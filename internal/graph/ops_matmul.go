package graph

// Gemm computes Alpha*A'*B' + Beta*C, where A' and B' are optionally
// transposed 2-D operands.
type Gemm struct {
	A          OperandID
	B          OperandID
	C          *OperandID
	Output     OperandID
	Alpha      float32
	Beta       float32
	ATranspose bool
	BTranspose bool
}

// Name implements Operation.
func (*Gemm) Name() string { return "gemm" }

// Accept implements Operation.
func (op *Gemm) Accept(v Visitor) error { return v.VisitGemm(op) }

func (*Gemm) operation() {}

// Matmul is a batched matrix product with broadcasting batch dimensions.
type Matmul struct {
	A      OperandID
	B      OperandID
	Output OperandID
}

// Name implements Operation.
func (*Matmul) Name() string { return "matmul" }

// Accept implements Operation.
func (op *Matmul) Accept(v Visitor) error { return v.VisitMatmul(op) }

func (*Matmul) operation() {}
