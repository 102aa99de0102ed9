package analysis

import (
	"time"

	"gclens/internal/gclog"
	"gclens/utils"
)

// TrendState is the detector's current verdict. It is recomputed on every
// observation, so a leak verdict reverses when later baselines flatten out.
type TrendState int

const (
	TrendInsufficientData TrendState = iota
	TrendStable
	TrendSuspectedLeak
)

func (s TrendState) String() string {
	switch s {
	case TrendStable:
		return "Stable"
	case TrendSuspectedLeak:
		return "SuspectedLeak"
	default:
		return "InsufficientData"
	}
}

// BaselineSample is the live-set measurement a major collection leaves
// behind: whatever survived a whole-heap reclaim.
type BaselineSample struct {
	Timestamp time.Time
	Baseline  utils.MemorySize
	Capacity  utils.MemorySize
}

// TrendDetector watches post-full-GC heap baselines for sustained growth. A
// rising baseline after collections that reclaim the whole heap is the
// signature of a memory leak, unlike ordinary sawtooth occupancy.
type TrendDetector struct {
	thresholds Thresholds
	window     []BaselineSample
}

func NewTrendDetector(thresholds Thresholds) *TrendDetector {
	return &TrendDetector{thresholds: thresholds}
}

// Observe feeds one canonical event. Only major collections contribute a
// baseline; everything else is ignored.
func (d *TrendDetector) Observe(ev *gclog.CollectionEvent) {
	if !ev.IsMajor() {
		return
	}
	d.window = append(d.window, BaselineSample{
		Timestamp: ev.Timestamp,
		Baseline:  ev.HeapAfter,
		Capacity:  ev.HeapCapacity,
	})
	if len(d.window) > d.thresholds.LeakWindow {
		d.window = d.window[1:]
	}
}

// State classifies the current window. The verdict stays InsufficientData
// until a full window of baselines has been observed, so a short burst of
// growth right after startup cannot trigger a leak verdict.
func (d *TrendDetector) State() TrendState {
	if len(d.window) < d.thresholds.LeakWindow {
		return TrendInsufficientData
	}

	x := make([]float64, len(d.window))
	y := make([]float64, len(d.window))
	var capacity float64
	for i, sample := range d.window {
		x[i] = float64(i)
		y[i] = float64(sample.Baseline)
		if c := float64(sample.Capacity); c > capacity {
			capacity = c
		}
	}
	if capacity == 0 {
		return TrendInsufficientData
	}

	slope, correlation := utils.LinearRegression(x, y)
	growthPerObservation := slope / capacity

	if growthPerObservation > d.thresholds.LeakGrowthFraction && correlation >= d.thresholds.LeakConfidence {
		return TrendSuspectedLeak
	}
	return TrendStable
}

// Window exposes a copy of the current baselines for reporting.
func (d *TrendDetector) Window() []BaselineSample {
	out := make([]BaselineSample, len(d.window))
	copy(out, d.window)
	return out
}
