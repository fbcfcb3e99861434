// Package graph defines the generic computation-graph IR consumed by the TFLite
// lowering engine.
//
// A graph is described by a [GraphInfo]: typed, shaped operands addressed by
// [OperandID], an ordered list of operations, the ordered graph inputs and
// outputs, and the raw payloads of constant operands.
//
// The IR is assumed to be validated upstream: shapes, data types and operand
// references are well-formed and operations are listed in dependency order.
//
// Operations form a closed set. Each concrete operation type implements
// [Operation] and dispatches to exactly one method of [Visitor], so a consumer
// that implements Visitor handles every operation kind or fails to compile:
//
//	type lowerer struct{ /* ... */ }
//
//	func (l *lowerer) VisitConv2d(op *graph.Conv2d) error { /* ... */ }
//	// ... one method per operation kind
//
//	for _, op := range info.Operations {
//	    if err := op.Accept(l); err != nil {
//	        return err
//	    }
//	}
package graph
