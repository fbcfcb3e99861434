package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType_Size(t *testing.T) {
	tests := []struct {
		dt   DataType
		want int
	}{
		{Float32, 4}, {Float16, 2},
		{Int8, 1}, {Uint8, 1},
		{Int16, 2}, {Uint16, 2},
		{Int32, 4}, {Uint32, 4},
		{Int64, 8}, {Uint64, 8},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dt.Size())
		})
	}
}

func TestDataType_Classification(t *testing.T) {
	assert.True(t, Float16.IsFloat())
	assert.False(t, Int32.IsFloat())
	assert.True(t, Uint64.IsUnsigned())
	assert.False(t, Int64.IsUnsigned())
	assert.False(t, Float32.IsUnsigned())
}

// TestParseDataType_RoundTrip parses every name String produces.
func TestParseDataType_RoundTrip(t *testing.T) {
	for dt := Float32; dt <= Uint64; dt++ {
		got, err := ParseDataType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, got)
	}

	_, err := ParseDataType("bfloat16")
	assert.Error(t, err)
}
