package analysis

import (
	"time"

	"gclens/internal/gclog"
	"gclens/utils"
)

// RunningStats is the single-pass accumulation over the event stream. Memory
// use does not grow with the log: pauses go through a reservoir, everything
// else is counters and sums.
type RunningStats struct {
	TotalCollections int
	ByCollector      map[gclog.CollectorKind]int
	ByGeneration     map[gclog.Generation]int

	PausedCollections int
	TotalPause        time.Duration
	MaxPause          time.Duration

	HeapUtilSum   float64
	HeapUtilMax   float64
	HighUtilCount int
	HeapCapacity  utils.MemorySize

	MalformedLines int
	UnmatchedLines int

	FirstEvent time.Time
	LastEvent  time.Time
}

// Aggregator ingests canonical events from a single goroutine and produces
// point-in-time snapshots for reporting.
type Aggregator struct {
	thresholds Thresholds
	stats      RunningStats
	pauses     *Reservoir
}

func NewAggregator(thresholds Thresholds) *Aggregator {
	return &Aggregator{
		thresholds: thresholds,
		stats: RunningStats{
			ByCollector:  make(map[gclog.CollectorKind]int),
			ByGeneration: make(map[gclog.Generation]int),
		},
		pauses: NewReservoir(thresholds.ReservoirSize, time.Now().UnixNano()),
	}
}

func (a *Aggregator) Ingest(ev *gclog.CollectionEvent) {
	a.stats.TotalCollections++
	a.stats.ByCollector[ev.Collector]++
	a.stats.ByGeneration[ev.Generation]++

	if ev.HasPause {
		a.stats.PausedCollections++
		a.stats.TotalPause += ev.Pause
		if ev.Pause > a.stats.MaxPause {
			a.stats.MaxPause = ev.Pause
		}
		a.pauses.Add(float64(ev.Pause) / float64(time.Millisecond))
	}

	if ev.HeapCapacity > 0 {
		util := ev.HeapAfter.Ratio(ev.HeapCapacity)
		a.stats.HeapUtilSum += util
		if util > a.stats.HeapUtilMax {
			a.stats.HeapUtilMax = util
		}
		if util >= a.thresholds.HighHeapUtil {
			a.stats.HighUtilCount++
		}
		a.stats.HeapCapacity = ev.HeapCapacity
	}

	if !ev.Timestamp.IsZero() {
		if a.stats.FirstEvent.IsZero() || ev.Timestamp.Before(a.stats.FirstEvent) {
			a.stats.FirstEvent = ev.Timestamp
		}
		if ev.Timestamp.After(a.stats.LastEvent) {
			a.stats.LastEvent = ev.Timestamp
		}
	}
}

func (a *Aggregator) RecordMalformed() {
	a.stats.MalformedLines++
}

func (a *Aggregator) RecordUnmatched() {
	a.stats.UnmatchedLines++
}

// Snapshot returns an independent copy of the running statistics plus the
// percentile estimates current at this point of the stream.
func (a *Aggregator) Snapshot() (RunningStats, PausePercentiles) {
	stats := a.stats
	stats.ByCollector = make(map[gclog.CollectorKind]int, len(a.stats.ByCollector))
	for k, v := range a.stats.ByCollector {
		stats.ByCollector[k] = v
	}
	stats.ByGeneration = make(map[gclog.Generation]int, len(a.stats.ByGeneration))
	for k, v := range a.stats.ByGeneration {
		stats.ByGeneration[k] = v
	}

	percentiles := PausePercentiles{
		P50:  a.pauses.Percentile(50),
		P95:  a.pauses.Percentile(95),
		P99:  a.pauses.Percentile(99),
		P999: a.pauses.Percentile(99.9),
	}
	return stats, percentiles
}

// AveragePause is the mean stop-the-world pause across paused collections.
func (s *RunningStats) AveragePause() time.Duration {
	if s.PausedCollections == 0 {
		return 0
	}
	return s.TotalPause / time.Duration(s.PausedCollections)
}

// AverageHeapUtil is the mean post-collection occupancy fraction.
func (s *RunningStats) AverageHeapUtil() float64 {
	if s.TotalCollections == 0 {
		return 0
	}
	return s.HeapUtilSum / float64(s.TotalCollections)
}

// PausePercentiles holds pause distribution estimates in milliseconds.
type PausePercentiles struct {
	P50  float64 `json:"p50"`
	P95  float64 `json:"p95"`
	P99  float64 `json:"p99"`
	P999 float64 `json:"p999"`
}
