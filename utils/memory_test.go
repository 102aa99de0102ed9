package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemorySize(t *testing.T) {
	tests := []struct {
		input    string
		expected MemorySize
	}{
		{"1024K", MB},
		{"9M", 9 * MB},
		{"2G", 2 * GB},
		{"512B", 512 * Byte},
		{"128", 128 * Byte},
		{"1.5G", MemorySize(1.5 * float64(GB))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			size, err := ParseMemorySize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, size)
		})
	}
}

func TestParseMemorySizeInvalid(t *testing.T) {
	for _, input := range []string{"", "XK", "abc", "12Q3"} {
		_, err := ParseMemorySize(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMemorySizeString(t *testing.T) {
	assert.Equal(t, "0B", MemorySize(0).String())
	assert.Equal(t, "512B", MemorySize(512).String())
	assert.Equal(t, "1K", KB.String())
	assert.Equal(t, "1.50G", MemorySize(1.5*float64(GB)).String())
}

func TestMemorySizeRatio(t *testing.T) {
	assert.InDelta(t, 0.5, (128 * MB).Ratio(256*MB), 0.001)
	assert.Zero(t, MB.Ratio(0))
}
