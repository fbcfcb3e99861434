package tflite

import "go.uber.org/zap"

// DefaultDescription is written into models built without WithDescription.
const DefaultDescription = "TFLite model lowered by tflgen"

// Option configures a GraphBuilder.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	description string
}

func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		description: DefaultDescription,
	}
}

// WithLogger sets the logger receiving per-operation debug entries and the
// finalize summary.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDescription sets the model description string.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}
