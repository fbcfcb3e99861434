package graph

// OperandID identifies an operand within one graph.
type OperandID uint64

// OperandKind describes the role of an operand in the graph.
type OperandKind int

// Operand kinds.
const (
	KindInput OperandKind = iota
	KindConstant
	KindOutput
	KindIntermediate
)

// String returns the name of the operand kind.
func (k OperandKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConstant:
		return "constant"
	case KindOutput:
		return "output"
	case KindIntermediate:
		return "intermediate"
	default:
		return "unknown"
	}
}

// Operand is a typed, shaped value node of the graph.
type Operand struct {
	ID       OperandID
	Kind     OperandKind
	DataType DataType
	Shape    Shape
	Name     string // Optional, carried into the artifact for debugging
}
