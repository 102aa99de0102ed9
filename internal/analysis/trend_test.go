package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gclens/internal/gclog"
	"gclens/utils"
)

func fullGC(after utils.MemorySize) *gclog.CollectionEvent {
	return &gclog.CollectionEvent{
		Collector:    gclog.CollectorFullGC,
		Generation:   gclog.GenerationWhole,
		HasPause:     true,
		HeapBefore:   900 * utils.MB,
		HeapAfter:    after,
		HeapCapacity: utils.GB,
	}
}

func TestTrendInsufficientData(t *testing.T) {
	d := NewTrendDetector(DefaultThresholds())
	assert.Equal(t, TrendInsufficientData, d.State())

	for i := 0; i < DefaultThresholds().LeakWindow-1; i++ {
		d.Observe(fullGC(100 * utils.MB))
	}
	assert.Equal(t, TrendInsufficientData, d.State())
}

func TestTrendIgnoresMinorCollections(t *testing.T) {
	d := NewTrendDetector(DefaultThresholds())
	for i := 0; i < 20; i++ {
		d.Observe(&gclog.CollectionEvent{
			Collector:    gclog.CollectorG1Young,
			Generation:   gclog.GenerationYoung,
			HeapBefore:   200 * utils.MB,
			HeapAfter:    utils.MemorySize(i) * 30 * utils.MB,
			HeapCapacity: utils.GB,
		})
	}
	assert.Equal(t, TrendInsufficientData, d.State())
	assert.Empty(t, d.Window())
}

func TestTrendDetectsSteadyGrowth(t *testing.T) {
	d := NewTrendDetector(DefaultThresholds())

	// Baseline climbs 15% of capacity on each of ten full GCs.
	capacity := float64(utils.GB)
	step := utils.MemorySize(capacity * 0.15)
	for i := 0; i < 10; i++ {
		d.Observe(fullGC(10*utils.MB + utils.MemorySize(i)*step))
	}

	assert.Equal(t, TrendSuspectedLeak, d.State())
}

func TestTrendStableOnOscillation(t *testing.T) {
	d := NewTrendDetector(DefaultThresholds())

	baselines := []utils.MemorySize{
		200 * utils.MB, 220 * utils.MB, 190 * utils.MB, 210 * utils.MB,
		205 * utils.MB, 195 * utils.MB, 215 * utils.MB, 200 * utils.MB,
		208 * utils.MB, 198 * utils.MB,
	}
	for _, b := range baselines {
		d.Observe(fullGC(b))
	}

	assert.Equal(t, TrendStable, d.State())
}

func TestTrendReversesWhenGrowthStops(t *testing.T) {
	thresholds := DefaultThresholds()
	d := NewTrendDetector(thresholds)

	capacity := float64(utils.GB)
	step := utils.MemorySize(capacity * 0.15)
	for i := 0; i < thresholds.LeakWindow; i++ {
		d.Observe(fullGC(10*utils.MB + utils.MemorySize(i)*step))
	}
	assert.Equal(t, TrendSuspectedLeak, d.State())

	// Flat baselines push the growth out of the trailing window.
	for i := 0; i < thresholds.LeakWindow; i++ {
		d.Observe(fullGC(300 * utils.MB))
	}
	assert.Equal(t, TrendStable, d.State())
}

func TestTrendWindowIsBounded(t *testing.T) {
	thresholds := DefaultThresholds()
	d := NewTrendDetector(thresholds)
	for i := 0; i < thresholds.LeakWindow*3; i++ {
		d.Observe(fullGC(200 * utils.MB))
	}
	assert.Len(t, d.Window(), thresholds.LeakWindow)
}
