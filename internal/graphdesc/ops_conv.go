package graphdesc

import (
	"github.com/cockroachdb/errors"

	"github.com/born-ml/tflgen/internal/graph"
)

var inputLayouts = map[string]graph.InputLayout{
	"nhwc": graph.LayoutNHWC,
	"nchw": graph.LayoutNCHW,
}

var filterLayouts = map[string]graph.FilterLayout{
	"ohwi": graph.FilterOHWI,
	"ihwo": graph.FilterIHWO,
	"oihw": graph.FilterOIHW,
	"hwio": graph.FilterHWIO,
}

var interpolationModes = map[string]graph.InterpolationMode{
	"nearest-neighbor": graph.InterpolationNearestNeighbor,
	"linear":           graph.InterpolationLinear,
}

func (r *registry) registerConv() {
	r.register("conv2d", buildConv2d)
	r.register("convTranspose2d", buildConvTranspose2d)
	r.register("averagePool2d", pool(graph.PoolAverage))
	r.register("maxPool2d", pool(graph.PoolMax))
	r.register("l2Pool2d", pool(graph.PoolL2))
	r.register("resample2d", buildResample2d)
}

// convolution reads the fields shared by both convolution kinds, inputs
// [input, filter, bias?].
func convolution(n *node) (*graph.Conv2d, error) {
	if err := n.arity(2, 3, 1); err != nil {
		return nil, err
	}
	p := n.params
	return &graph.Conv2d{
		Input:        n.input(0),
		Filter:       n.input(1),
		Bias:         n.optional(2),
		Output:       n.output(0),
		Strides:      p.getSize2d("strides", 1),
		Dilations:    p.getSize2d("dilations", 1),
		Padding:      p.getPadding2d("padding"),
		Groups:       p.getUint32("groups", 1),
		InputLayout:  enum(p, "inputLayout", graph.LayoutNHWC, inputLayouts),
		FilterLayout: enum(p, "filterLayout", graph.FilterOHWI, filterLayouts),
	}, nil
}

func buildConv2d(n *node) (graph.Operation, error) {
	return convolution(n)
}

func buildConvTranspose2d(n *node) (graph.Operation, error) {
	conv, err := convolution(n)
	if err != nil {
		return nil, err
	}
	op := graph.ConvTranspose2d(*conv)
	return &op, nil
}

func pool(kind graph.PoolKind) builder {
	return func(n *node) (graph.Operation, error) {
		if err := n.arity(1, 1, 1); err != nil {
			return nil, err
		}
		p := n.params
		layout := enum(p, "layout", graph.LayoutNHWC, inputLayouts)

		shape := n.inputs[0].Shape
		if shape.Rank() != 4 {
			return nil, errors.Newf("%s input must be 4-D, got %v", n.op, shape)
		}
		// The window defaults to the whole spatial extent.
		window := []uint32{shape[1], shape[2]}
		if layout == graph.LayoutNCHW {
			window = []uint32{shape[2], shape[3]}
		}
		dims := p.getUint32s("windowDimensions", window)
		if len(dims) != 2 {
			return nil, errors.Newf("windowDimensions wants 2 entries, got %d", len(dims))
		}

		return &graph.Pool2d{
			Kind:             kind,
			Input:            n.input(0),
			Output:           n.output(0),
			WindowDimensions: graph.Size2d{Height: dims[0], Width: dims[1]},
			Strides:          p.getSize2d("strides", 1),
			Dilations:        p.getSize2d("dilations", 1),
			Padding:          p.getPadding2d("padding"),
			Layout:           layout,
		}, nil
	}
}

func buildResample2d(n *node) (graph.Operation, error) {
	if err := n.arity(1, 1, 1); err != nil {
		return nil, err
	}
	return &graph.Resample2d{
		Input:  n.input(0),
		Output: n.output(0),
		Mode:   enum(n.params, "mode", graph.InterpolationNearestNeighbor, interpolationModes),
		Axes:   n.params.getUint32s("axes", []uint32{1, 2}),
	}, nil
}
