package graph

// GraphInfo is a complete computation graph.
//
// Operands are kept in a slice so that iteration order, and with it the
// order of the serialized tensor table, is deterministic.
type GraphInfo struct {
	Operands       []*Operand
	Operations     []Operation
	InputOperands  []OperandID
	OutputOperands []OperandID
	Constants      map[OperandID][]byte
}

// OperandIndex returns a fresh id -> operand lookup table.
func (g *GraphInfo) OperandIndex() map[OperandID]*Operand {
	index := make(map[OperandID]*Operand, len(g.Operands))
	for _, operand := range g.Operands {
		index[operand.ID] = operand
	}
	return index
}
