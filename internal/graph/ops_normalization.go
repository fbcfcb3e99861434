package graph

// BatchNormalization normalizes along Axis with precomputed statistics.
// Mean, Variance, Scale and Bias are 1-D with the extent of the input at Axis.
type BatchNormalization struct {
	Input    OperandID
	Mean     OperandID
	Variance OperandID
	Scale    *OperandID
	Bias     *OperandID
	Output   OperandID
	Axis     uint32
	Epsilon  float32
}

// Name implements Operation.
func (*BatchNormalization) Name() string { return "batchNormalization" }

// Accept implements Operation.
func (op *BatchNormalization) Accept(v Visitor) error { return v.VisitBatchNormalization(op) }

func (*BatchNormalization) operation() {}

// InstanceNormalization normalizes each channel of each batch over the
// spatial axes. Scale and Bias are 1-D with the channel extent.
type InstanceNormalization struct {
	Input   OperandID
	Scale   *OperandID
	Bias    *OperandID
	Output  OperandID
	Epsilon float32
	Layout  InputLayout
}

// Name implements Operation.
func (*InstanceNormalization) Name() string { return "instanceNormalization" }

// Accept implements Operation.
func (op *InstanceNormalization) Accept(v Visitor) error { return v.VisitInstanceNormalization(op) }

func (*InstanceNormalization) operation() {}

// LayerNormalization normalizes over Axes. Scale and Bias have one dimension
// per entry of Axes, in Axes order.
type LayerNormalization struct {
	Input   OperandID
	Scale   *OperandID
	Bias    *OperandID
	Output  OperandID
	Axes    []uint32
	Epsilon float32
}

// Name implements Operation.
func (*LayerNormalization) Name() string { return "layerNormalization" }

// Accept implements Operation.
func (op *LayerNormalization) Accept(v Visitor) error { return v.VisitLayerNormalization(op) }

func (*LayerNormalization) operation() {}
