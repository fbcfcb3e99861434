package weights

import (
	"fmt"
	"slices"
	"strings"
)

// Validation limits.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// Span is the payload region of one tensor within the data section.
type Span struct {
	Name   string
	Offset int64
	Size   int64
}

// ValidateSpans checks for negative, out-of-bounds and overlapping payload
// regions.
func ValidateSpans(spans []Span, dataSize int64) error {
	if len(spans) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(spans), MaxTensorCount),
		}
	}

	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})

	for i, s := range sorted {
		if s.Offset < 0 || s.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  s.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", s.Offset, s.Size),
			}
		}

		if s.Offset+s.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  s.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", s.Offset, s.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if s.Offset+s.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  s.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						s.Offset, s.Offset+s.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects names that could be mistaken for paths.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	switch {
	case name == "":
		return &ValidationError{Type: "invalid_name", Details: "empty name"}
	case strings.Contains(name, ".."):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains '..'"}
	case strings.ContainsAny(name, `/\`):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains path separator"}
	case strings.Contains(name, "\x00"):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains null byte"}
	}

	return nil
}
