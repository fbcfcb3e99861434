package weights

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateSpans verifies offset validation catches malformed layouts.
func TestValidateSpans(t *testing.T) {
	tests := []struct {
		name     string
		spans    []Span
		dataSize int64
		wantErr  error
	}{
		{
			name: "valid contiguous",
			spans: []Span{
				{Name: "a", Offset: 0, Size: 16},
				{Name: "b", Offset: 16, Size: 8},
			},
			dataSize: 24,
		},
		{
			name: "valid unordered with gap",
			spans: []Span{
				{Name: "b", Offset: 32, Size: 8},
				{Name: "a", Offset: 0, Size: 16},
			},
			dataSize: 40,
		},
		{
			name: "overlap",
			spans: []Span{
				{Name: "a", Offset: 0, Size: 16},
				{Name: "b", Offset: 8, Size: 16},
			},
			dataSize: 32,
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "out of bounds",
			spans:    []Span{{Name: "a", Offset: 8, Size: 16}},
			dataSize: 16,
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative size",
			spans:    []Span{{Name: "a", Offset: 8, Size: -4}},
			dataSize: 16,
			wantErr:  ErrNegativeOffset,
		},
		{
			name:     "empty tensors",
			spans:    []Span{{Name: "a"}, {Name: "b"}},
			dataSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpans(tt.spans, tt.dataSize)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

// TestValidateSpans_OverlapNamesBoth verifies overlap errors name both tensors.
func TestValidateSpans_OverlapNamesBoth(t *testing.T) {
	err := ValidateSpans([]Span{
		{Name: "weight", Offset: 0, Size: 16},
		{Name: "bias", Offset: 12, Size: 4},
	}, 16)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "weight", verr.Tensor)
	assert.Equal(t, "bias", verr.Tensor2)
}

// TestValidateTensorName verifies names that look like paths are rejected.
func TestValidateTensorName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "plain", input: "conv1.weight"},
		{name: "empty", input: "", wantErr: ErrInvalidTensorName},
		{name: "parent dir", input: "../etc", wantErr: ErrInvalidTensorName},
		{name: "slash", input: "a/b", wantErr: ErrInvalidTensorName},
		{name: "backslash", input: `a\b`, wantErr: ErrInvalidTensorName},
		{name: "null byte", input: "a\x00b", wantErr: ErrInvalidTensorName},
		{name: "too long", input: strings.Repeat("x", MaxTensorNameLen+1), wantErr: ErrTensorNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
