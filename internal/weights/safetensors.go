package weights

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/born-ml/tflgen/internal/graph"
)

// DType is a SafeTensors element type name.
type DType string

// SafeTensors dtypes with a graph data type.
const (
	F16 DType = "F16"
	F32 DType = "F32"
	I8  DType = "I8"
	U8  DType = "U8"
	I16 DType = "I16"
	U16 DType = "U16"
	I32 DType = "I32"
	U32 DType = "U32"
	I64 DType = "I64"
	U64 DType = "U64"
)

var dtypes = map[DType]graph.DataType{
	F16: graph.Float16,
	F32: graph.Float32,
	I8:  graph.Int8,
	U8:  graph.Uint8,
	I16: graph.Int16,
	U16: graph.Uint16,
	I32: graph.Int32,
	U32: graph.Uint32,
	I64: graph.Int64,
	U64: graph.Uint64,
}

// DataType returns the graph data type stored as d.
func (d DType) DataType() (graph.DataType, error) {
	dt, ok := dtypes[d]
	if !ok {
		return 0, errors.Newf("unsupported dtype: %s", d)
	}
	return dt, nil
}

// DTypeOf returns the SafeTensors name of dt.
func DTypeOf(dt graph.DataType) DType {
	for d, candidate := range dtypes {
		if candidate == dt {
			return d
		}
	}
	return ""
}

// TensorInfo describes a tensor in the header.
type TensorInfo struct {
	DType       DType    `json:"dtype"`
	Shape       []uint64 `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end)
}

// Header is the JSON header of a SafeTensors file.
type Header struct {
	Metadata map[string]string
	Tensors  map[string]TensorInfo
}

const metadataKey = "__metadata__"

// UnmarshalJSON splits the metadata entry from the tensor entries.
func (h *Header) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if metadata, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(metadata, &h.Metadata); err != nil {
			return errors.Wrap(err, "failed to unmarshal metadata")
		}
	}

	h.Tensors = make(map[string]TensorInfo, len(raw))
	for key, value := range raw {
		if key == metadataKey {
			continue
		}
		var info TensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return errors.Wrapf(err, "failed to unmarshal tensor %s", key)
		}
		h.Tensors[key] = info
	}
	return nil
}

// MarshalJSON writes the metadata entry alongside the tensor entries.
func (h Header) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(h.Tensors)+1)
	if len(h.Metadata) > 0 {
		raw[metadataKey] = h.Metadata
	}
	for name, info := range h.Tensors {
		raw[name] = info
	}
	return json.Marshal(raw)
}

// Reader reads tensors from a SafeTensors payload.
type Reader struct {
	r          io.ReaderAt
	closer     io.Closer
	header     Header
	dataOffset int64
}

// Open opens and validates the SafeTensors file at path.
func Open(path string) (*Reader, error) {
	//nolint:gosec // G304: reading user-supplied weight files is the point.
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open weights")
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "failed to stat weights")
	}

	r, err := NewReader(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrapf(err, "weights %s", path)
	}
	r.closer = file
	return r, nil
}

// NewReader parses and validates the header of a size-byte payload.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	var prefix [8]byte
	if _, err := r.ReadAt(prefix[:], 0); err != nil {
		return nil, errors.Wrap(err, "failed to read header size")
	}
	headerSize := binary.LittleEndian.Uint64(prefix[:])
	if headerSize > MaxHeaderSize {
		return nil, errors.Wrapf(ErrHeaderTooLarge, "header size %d", headerSize)
	}
	dataOffset := int64(8 + headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize.
	if dataOffset > size {
		return nil, errors.Wrapf(ErrOutOfBounds, "header size %d exceeds payload size %d", headerSize, size)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := r.ReadAt(headerBytes, 8); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, errors.Wrap(err, "failed to parse header JSON")
	}

	spans := make([]Span, 0, len(header.Tensors))
	for name, info := range header.Tensors {
		if err := ValidateTensorName(name); err != nil {
			return nil, err
		}
		spans = append(spans, Span{
			Name:   name,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
	}
	if err := ValidateSpans(spans, size-dataOffset); err != nil {
		return nil, err
	}

	return &Reader{r: r, header: header, dataOffset: dataOffset}, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns the tensor names in sorted order.
func (r *Reader) TensorNames() []string {
	names := make([]string, 0, len(r.header.Tensors))
	for name := range r.header.Tensors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TensorInfo returns the header entry of a tensor.
func (r *Reader) TensorInfo(name string) (TensorInfo, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return TensorInfo{}, errors.Wrapf(ErrTensorNotFound, "%q", name)
	}
	return info, nil
}

// ReadTensorData reads the raw payload of a tensor.
func (r *Reader) ReadTensorData(name string) ([]byte, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}
	data := make([]byte, info.DataOffsets[1]-info.DataOffsets[0])
	if _, err := r.r.ReadAt(data, r.dataOffset+info.DataOffsets[0]); err != nil {
		return nil, errors.Wrapf(err, "failed to read tensor %q", name)
	}
	return data, nil
}

// Constant returns the payload of tensor name after checking that its dtype
// and shape match the operand and that its payload has the matching size.
func (r *Reader) Constant(name string, dt graph.DataType, shape graph.Shape) ([]byte, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}
	stored, err := info.DType.DataType()
	if err != nil {
		return nil, errors.Wrapf(err, "tensor %q", name)
	}
	if stored != dt {
		return nil, errors.Wrapf(ErrDTypeMismatch, "tensor %q is %s, operand is %s", name, stored, dt)
	}
	if storedShape, ok := graphShape(info.Shape); !ok || !storedShape.Equal(shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "tensor %q has shape %v, operand is %v", name, info.Shape, shape)
	}

	want := shape.NumElements() * uint64(dt.Size())
	got := uint64(info.DataOffsets[1] - info.DataOffsets[0]) //nolint:gosec // G115: validated non-negative.
	if got != want {
		return nil, errors.Wrapf(ErrSizeMismatch, "tensor %q has %d bytes, operand %v needs %d", name, got, shape, want)
	}
	return r.ReadTensorData(name)
}

// graphShape narrows SafeTensors extents to operand extents.
func graphShape(dims []uint64) (graph.Shape, bool) {
	shape := make(graph.Shape, len(dims))
	for i, d := range dims {
		if d > math.MaxUint32 {
			return nil, false
		}
		shape[i] = uint32(d)
	}
	return shape, true
}

// Tensor is one named payload for Encode.
type Tensor struct {
	Name  string
	DType DType
	Shape []uint64
	Data  []byte
}

// Encode serializes tensors as a SafeTensors payload. Tensors are laid out
// in name order.
func Encode(tensors []Tensor, metadata map[string]string) ([]byte, error) {
	sorted := slices.Clone(tensors)
	slices.SortFunc(sorted, func(a, b Tensor) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})

	header := Header{Metadata: metadata, Tensors: make(map[string]TensorInfo, len(sorted))}
	var offset int64
	for _, t := range sorted {
		if err := ValidateTensorName(t.Name); err != nil {
			return nil, err
		}
		if _, dup := header.Tensors[t.Name]; dup {
			return nil, errors.Newf("duplicate tensor %q", t.Name)
		}
		end := offset + int64(len(t.Data))
		header.Tensors[t.Name] = TensorInfo{DType: t.DType, Shape: t.Shape, DataOffsets: [2]int64{offset, end}}
		offset = end
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal header")
	}

	out := make([]byte, 8, 8+len(headerBytes)+int(offset))
	binary.LittleEndian.PutUint64(out, uint64(len(headerBytes)))
	out = append(out, headerBytes...)
	for _, t := range sorted {
		out = append(out, t.Data...)
	}
	return out, nil
}
