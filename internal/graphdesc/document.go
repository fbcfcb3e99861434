package graphdesc

import "gopkg.in/yaml.v3"

// Document is the YAML form of a graph.
type Document struct {
	Operands   []OperandDesc   `yaml:"operands"`
	Operations []OperationDesc `yaml:"operations"`
}

// OperandDesc declares one operand.
type OperandDesc struct {
	Name   string      `yaml:"name"`
	Kind   string      `yaml:"kind"`
	DType  string      `yaml:"dtype"`
	Shape  []uint32    `yaml:"shape"`
	Values []yaml.Node `yaml:"values,omitempty"` // Inline constant payload
	Tensor string      `yaml:"tensor,omitempty"` // Constant payload from the weights source
}

// OperationDesc declares one operation.
type OperationDesc struct {
	Op      string               `yaml:"op"`
	Inputs  []string             `yaml:"inputs"`
	Outputs []string             `yaml:"outputs"`
	Params  map[string]yaml.Node `yaml:"params,omitempty"`
}
