package analysis

import "time"

// Thresholds collects every tunable the analysis consults. The zero value is
// not usable; start from DefaultThresholds and override from configuration.
type Thresholds struct {
	// Pause ladder for health classification. Average pause at or below
	// PauseExcellent is excellent, and so on; above PauseAcceptable the log
	// needs tuning.
	PauseExcellent  time.Duration
	PauseGood       time.Duration
	PauseAcceptable time.Duration

	// HighHeapUtil flags events whose post-collection occupancy fraction
	// stays at or above this value.
	HighHeapUtil float64

	// LeakWindow is how many trailing post-full-GC baselines the trend
	// detector regresses over.
	LeakWindow int

	// LeakGrowthFraction is the per-observation baseline growth, as a
	// fraction of capacity, at which growth counts as a suspected leak.
	LeakGrowthFraction float64

	// LeakConfidence is the minimum regression correlation before a positive
	// slope is trusted.
	LeakConfidence float64

	// ReservoirSize bounds the pause sample kept for percentiles.
	ReservoirSize int

	// Workers is the parse worker count for the pipeline.
	Workers int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PauseExcellent:     10 * time.Millisecond,
		PauseGood:          50 * time.Millisecond,
		PauseAcceptable:    100 * time.Millisecond,
		HighHeapUtil:       0.80,
		LeakWindow:         10,
		LeakGrowthFraction: 0.10,
		LeakConfidence:     0.7,
		ReservoirSize:      10000,
		Workers:            4,
	}
}
