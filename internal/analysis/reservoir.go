package analysis

import (
	"math"
	"math/rand"
	"sort"
)

// Reservoir keeps a fixed-size uniform sample of an unbounded stream
// (Vitter's Algorithm R). Percentiles computed from it are estimates whose
// accuracy depends only on the reservoir size, not on the stream length.
type Reservoir struct {
	samples []float64
	seen    int64
	rng     *rand.Rand
}

// NewReservoir creates a reservoir holding at most size samples. The seed is
// explicit so tests are repeatable.
func NewReservoir(size int, seed int64) *Reservoir {
	if size <= 0 {
		size = 1
	}
	return &Reservoir{
		samples: make([]float64, 0, size),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (r *Reservoir) Add(value float64) {
	r.seen++
	if len(r.samples) < cap(r.samples) {
		r.samples = append(r.samples, value)
		return
	}
	if idx := r.rng.Int63n(r.seen); idx < int64(cap(r.samples)) {
		r.samples[idx] = value
	}
}

// Seen returns how many values were offered, including evicted ones.
func (r *Reservoir) Seen() int64 {
	return r.seen
}

// Percentile estimates the p-th percentile (0 < p <= 100) by linear
// interpolation over the sorted sample. It returns NaN when empty.
func (r *Reservoir) Percentile(p float64) float64 {
	if len(r.samples) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(r.samples))
	copy(sorted, r.samples)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower < 0 {
		lower = 0
	}
	if upper >= len(sorted) {
		upper = len(sorted) - 1
	}
	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
