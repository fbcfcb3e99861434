// Package tflite compiles computation graphs into TensorFlow Lite models.
//
// A graph is a list of typed operands and the operations between them. The
// compiler lowers every operation to TFLite builtin operators, inserting
// layout transposes, padding and small decompositions where TFLite has no
// direct equivalent, and serializes the result as a single-subgraph
// flatbuffer ready for the TFLite runtime.
//
// # Example Usage
//
//	info, err := tflite.LoadGraph("graph.yaml", "model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	model, err := tflite.Compile(info, tflite.WithLogger(logger))
//	if err != nil {
//	    var lowerErr *tflite.Error
//	    if errors.As(err, &lowerErr) {
//	        log.Fatalf("%s cannot be lowered: %s", lowerErr.Operator, lowerErr.Reason)
//	    }
//	    log.Fatal(err)
//	}
//	os.WriteFile("model.tflite", model, 0o644)
//
// Lowering is all or nothing: the first failing operation aborts the build.
// Failures are reported as [*Error] values whose kind can be tested with
// errors.Is against [ErrUnsupportedParameter], [ErrUnsupportedDataType],
// [ErrNumericOverflow] and [ErrAxisCardinalityViolation].
//
// Use [SupportedOps] to list the operation names accepted in graph
// descriptions.
package tflite

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/born-ml/tflgen/internal/graph"
	"github.com/born-ml/tflgen/internal/graphdesc"
	internaltflite "github.com/born-ml/tflgen/internal/tflite"
	"github.com/born-ml/tflgen/internal/weights"
)

// GraphInfo is a complete computation graph.
type GraphInfo = graph.GraphInfo

// Operand is a typed, shaped value node of a graph.
type Operand = graph.Operand

// Operation is one node of a graph.
type Operation = graph.Operation

// Option configures compilation.
type Option = internaltflite.Option

// Error reports why an operation could not be lowered.
type Error = internaltflite.Error

// ErrorKind classifies lowering failures.
type ErrorKind = internaltflite.ErrorKind

// Lowering failure kinds.
const (
	UnsupportedParameter     = internaltflite.UnsupportedParameter
	UnsupportedDataType      = internaltflite.UnsupportedDataType
	NumericOverflow          = internaltflite.NumericOverflow
	AxisCardinalityViolation = internaltflite.AxisCardinalityViolation
)

// Sentinel errors, one per kind.
var (
	ErrUnsupportedParameter     = internaltflite.ErrUnsupportedParameter
	ErrUnsupportedDataType      = internaltflite.ErrUnsupportedDataType
	ErrNumericOverflow          = internaltflite.ErrNumericOverflow
	ErrAxisCardinalityViolation = internaltflite.ErrAxisCardinalityViolation
)

// DefaultDescription is the model description used without WithDescription.
const DefaultDescription = internaltflite.DefaultDescription

// WithLogger sets the logger for per-operation debug entries and the
// finalize summary. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return internaltflite.WithLogger(logger)
}

// WithDescription sets the description string stored in the model.
func WithDescription(description string) Option {
	return internaltflite.WithDescription(description)
}

// Compile lowers info and returns the serialized TFLite model.
//
// Compilation is deterministic: the same graph and options always produce
// byte-identical output. Independent graphs may be compiled concurrently.
func Compile(info *GraphInfo, opts ...Option) ([]byte, error) {
	return internaltflite.CreateSerializedModel(info, opts...)
}

// LoadGraph reads a YAML graph description. Constants that name a tensor are
// read from the SafeTensors file at weightsPath, which may be empty when all
// constants are inline.
func LoadGraph(path, weightsPath string) (*GraphInfo, error) {
	if weightsPath == "" {
		return graphdesc.Load(path, nil)
	}

	r, err := weights.Open(weightsPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	info, err := graphdesc.Load(path, r)
	if err != nil {
		return nil, errors.Wrapf(err, "with weights %s", weightsPath)
	}
	return info, nil
}

// ParseGraph converts an in-memory YAML graph description with inline
// constants only.
func ParseGraph(data []byte) (*GraphInfo, error) {
	return graphdesc.Parse(data, nil)
}

// SupportedOps returns the operation names accepted in graph descriptions.
//
// Example:
//
//	for _, op := range tflite.SupportedOps() {
//	    fmt.Println(op)
//	}
func SupportedOps() []string {
	return graphdesc.SupportedOps()
}
