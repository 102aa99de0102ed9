package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservoirEmpty(t *testing.T) {
	r := NewReservoir(100, 1)
	assert.True(t, math.IsNaN(r.Percentile(50)))
	assert.Equal(t, int64(0), r.Seen())
}

func TestReservoirUnderCapacityIsExact(t *testing.T) {
	r := NewReservoir(100, 1)
	for i := 1; i <= 10; i++ {
		r.Add(float64(i))
	}

	assert.Equal(t, int64(10), r.Seen())
	assert.InDelta(t, 5.5, r.Percentile(50), 0.001)
	assert.InDelta(t, 1.0, r.Percentile(0), 0.001)
	assert.InDelta(t, 10.0, r.Percentile(100), 0.001)
}

func TestReservoirBoundedSize(t *testing.T) {
	r := NewReservoir(1000, 42)
	for i := 0; i < 100000; i++ {
		r.Add(float64(i))
	}
	assert.Equal(t, int64(100000), r.Seen())
	assert.Len(t, r.samples, 1000)
}

func TestReservoirPercentileEstimates(t *testing.T) {
	// Uniform stream 0..99999: the reservoir estimate should land within a
	// few percent of the true percentiles.
	r := NewReservoir(10000, 42)
	for i := 0; i < 100000; i++ {
		r.Add(float64(i))
	}

	assert.InDelta(t, 50000, r.Percentile(50), 2000)
	assert.InDelta(t, 95000, r.Percentile(95), 2000)
	assert.InDelta(t, 99000, r.Percentile(99), 2000)
}

func TestReservoirSingleValue(t *testing.T) {
	r := NewReservoir(10, 1)
	r.Add(7.5)
	assert.InDelta(t, 7.5, r.Percentile(50), 0.001)
	assert.InDelta(t, 7.5, r.Percentile(99.9), 0.001)
}
