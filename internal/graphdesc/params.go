package graphdesc

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/tflgen/internal/graph"
)

// params decodes operation parameters on demand. The first decode error is
// kept and reported by finish, together with any parameter nobody read.
type params struct {
	raw  map[string]yaml.Node
	used map[string]bool
	err  error
}

func newParams(raw map[string]yaml.Node) *params {
	return &params{raw: raw, used: make(map[string]bool, len(raw))}
}

// decode fills dst from key and reports whether the key was present.
func (p *params) decode(key string, dst any) bool {
	p.used[key] = true
	node, ok := p.raw[key]
	if !ok || p.err != nil {
		return false
	}
	if err := node.Decode(dst); err != nil {
		p.err = errors.Wrapf(err, "parameter %s", key)
		return false
	}
	return true
}

func (p *params) fail(key, format string, args ...any) {
	if p.err == nil {
		p.err = errors.Wrapf(errors.Newf(format, args...), "parameter %s", key)
	}
}

func (p *params) finish() error {
	if p.err != nil {
		return p.err
	}
	var unknown []string
	for key := range p.raw {
		if !p.used[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return errors.Newf("unknown parameters %v", unknown)
	}
	return nil
}

func (p *params) getUint32(key string, def uint32) uint32 {
	v := def
	p.decode(key, &v)
	return v
}

func (p *params) getUint32s(key string, def []uint32) []uint32 {
	var v []uint32
	if !p.decode(key, &v) {
		return slices.Clone(def)
	}
	return v
}

func (p *params) getFloat32(key string, def float32) float32 {
	var v float64
	if !p.decode(key, &v) {
		return def
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
		p.fail(key, "%g does not fit in float32", v)
		return def
	}
	return float32(v)
}

func (p *params) getBool(key string, def bool) bool {
	v := def
	p.decode(key, &v)
	return v
}

// size2d reads a [height, width] pair.
func (p *params) getSize2d(key string, def uint32) graph.Size2d {
	v := p.getUint32s(key, []uint32{def, def})
	if len(v) != 2 {
		p.fail(key, "want 2 entries, got %d", len(v))
		return graph.Size2d{Height: def, Width: def}
	}
	return graph.Size2d{Height: v[0], Width: v[1]}
}

// padding2d reads [beginningHeight, endingHeight, beginningWidth, endingWidth].
func (p *params) getPadding2d(key string) graph.Padding2d {
	v := p.getUint32s(key, []uint32{0, 0, 0, 0})
	if len(v) != 4 {
		p.fail(key, "want 4 entries, got %d", len(v))
		return graph.Padding2d{}
	}
	return graph.Padding2d{
		Beginning: graph.Size2d{Height: v[0], Width: v[2]},
		Ending:    graph.Size2d{Height: v[1], Width: v[3]},
	}
}

// enum reads a string parameter and maps it through values.
func enum[T any](p *params, key string, def T, values map[string]T) T {
	var name string
	if !p.decode(key, &name) {
		return def
	}
	v, ok := values[name]
	if !ok {
		p.fail(key, "unknown value %q", name)
		return def
	}
	return v
}
