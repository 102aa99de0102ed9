package gclog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelYoungLine(t *testing.T) {
	parser := NewParser(FormatAuto)
	line := "2025-07-27T06:54:55.176-0400: 0.193: [GC (Allocation Failure) [PSYoungGen: 65536K->10748K(76288K)] 65536K->15360K(251392K), 0.0123456 secs]"

	rec, err := parser.ParseLine(line)
	require.NoError(t, err)
	require.Equal(t, RecordCollection, rec.Kind)

	assert.Equal(t, CollectorParallel, rec.Event.Collector)
	assert.Equal(t, "Allocation Failure", rec.Event.Cause)
	assert.Equal(t, "65536K", rec.Event.HeapBeforeRaw)
	assert.Equal(t, "15360K", rec.Event.HeapAfterRaw)
	assert.Equal(t, "251392K", rec.Event.HeapCapacityRaw)
	assert.Equal(t, "0.0123456", rec.Event.PauseRaw)
	assert.Equal(t, PauseSeconds, rec.Event.PauseUnit)
	assert.Equal(t, 2025, rec.Event.Timestamp.Year())
}

func TestParallelFullGCLine(t *testing.T) {
	parser := NewParser(FormatParallel)
	line := "2025-07-27T06:55:01.002-0400: 5.921: [Full GC (Ergonomics) [PSYoungGen: 10740K->0K(76288K)] [ParOldGen: 4612K->13080K(175104K)] 15352K->13080K(251392K), [Metaspace: 20700K->20698K(1069056K)], 0.0821345 secs]"

	rec, err := parser.ParseLine(line)
	require.NoError(t, err)

	assert.Equal(t, CollectorFullGC, rec.Event.Collector)
	assert.Equal(t, "Ergonomics", rec.Event.Cause)
	assert.Equal(t, "15352K", rec.Event.HeapBeforeRaw)
	assert.Equal(t, "13080K", rec.Event.HeapAfterRaw)
	assert.Equal(t, "0.0821345", rec.Event.PauseRaw)
}

func TestParallelMalformedSizes(t *testing.T) {
	parser := NewParser(FormatAuto)
	line := "GC (Allocation Failure) [PSYoungGen: XK->YK(ZK)]"

	rec, err := parser.ParseLine(line)
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.False(t, IsNoMatch(err))
}

func TestG1Lines(t *testing.T) {
	parser := NewParser(FormatAuto)

	tests := []struct {
		name      string
		line      string
		collector CollectorKind
		genLabel  string
		cause     string
		pauseRaw  string
	}{
		{
			name:      "young normal",
			line:      "[2025-07-27T06:54:55.176-0400][info][gc] GC(12) Pause Young (Normal) (G1 Evacuation Pause) 24M->8M(256M) 5.123ms",
			collector: CollectorG1Young,
			genLabel:  "Young",
			cause:     "G1 Evacuation Pause",
			pauseRaw:  "5.123",
		},
		{
			name:      "mixed",
			line:      "[2025-07-27T06:54:58.020-0400][info][gc] GC(15) Pause Young (Mixed) (G1 Evacuation Pause) 120M->90M(256M) 12.500ms",
			collector: CollectorG1Mixed,
			genLabel:  "Mixed",
			cause:     "G1 Evacuation Pause",
			pauseRaw:  "12.500",
		},
		{
			name:      "full",
			line:      "[2025-07-27T06:55:10.444-0400][info][gc] GC(20) Pause Full (G1 Compaction Pause) 250M->100M(256M) 310.221ms",
			collector: CollectorFullGC,
			genLabel:  "Heap",
			cause:     "G1 Compaction Pause",
			pauseRaw:  "310.221",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := parser.ParseLine(tt.line)
			require.NoError(t, err)
			require.Equal(t, RecordCollection, rec.Kind)

			assert.Equal(t, tt.collector, rec.Event.Collector)
			assert.Equal(t, tt.genLabel, rec.Event.GenLabel)
			assert.Equal(t, tt.cause, rec.Event.Cause)
			assert.Equal(t, tt.pauseRaw, rec.Event.PauseRaw)
			assert.Equal(t, PauseMillis, rec.Event.PauseUnit)
		})
	}
}

func TestG1PhaseLineIsNoMatch(t *testing.T) {
	parser := NewParser(FormatAuto)
	line := "[2025-07-27T06:54:55.176-0400][info][gc,start] GC(12) Pause Young (Normal) (G1 Evacuation Pause)"

	rec, err := parser.ParseLine(line)
	assert.Nil(t, rec)
	assert.True(t, IsNoMatch(err))
}

func TestZGCRecordKinds(t *testing.T) {
	parser := NewParser(FormatZGC)

	start, err := parser.ParseLine("[2025-07-27T06:54:55.176-0400][info][gc] GC(5) Garbage Collection (Proactive)")
	require.NoError(t, err)
	assert.Equal(t, RecordCycleStart, start.Kind)
	assert.Equal(t, 5, start.CycleID)
	assert.Equal(t, "Proactive", start.Event.Cause)

	pause, err := parser.ParseLine("[2025-07-27T06:54:55.201-0400][info][gc] GC(5) Pause Mark Start 0.015ms")
	require.NoError(t, err)
	assert.Equal(t, RecordCyclePause, pause.Kind)
	assert.Equal(t, 5, pause.CycleID)
	assert.InDelta(t, 0.015, float64(pause.Pause)/float64(time.Millisecond), 0.0001)

	end, err := parser.ParseLine("[2025-07-27T06:54:56.003-0400][info][gc] GC(5) Garbage Collection (Proactive) 512M(25%)->128M(6%)")
	require.NoError(t, err)
	assert.Equal(t, RecordCycleEnd, end.Kind)
	assert.Equal(t, "512M", end.Event.HeapBeforeRaw)
	assert.Equal(t, "128M", end.Event.HeapAfterRaw)
	assert.Equal(t, 25, end.Event.BeforePct)
	assert.Equal(t, 6, end.Event.AfterPct)
}

func TestHeapConfigLine(t *testing.T) {
	parser := NewParser(FormatAuto)
	rec, err := parser.ParseLine("[2025-07-27T06:54:54.901-0400][info][gc,init] Max Capacity: 16384M")
	require.NoError(t, err)
	assert.Equal(t, RecordHeapConfig, rec.Kind)
	assert.Equal(t, int64(16384)*1024*1024, rec.Capacity.Bytes())
}

func TestApplicationLogLineIsNoMatch(t *testing.T) {
	parser := NewParser(FormatAuto)

	lines := []string{
		"2025-07-27 06:54:55 INFO  [main] c.e.OrderService - order 1234 accepted",
		"",
		"Exception in thread \"main\" java.lang.RuntimeException",
	}
	for _, line := range lines {
		rec, err := parser.ParseLine(line)
		assert.Nil(t, rec)
		assert.True(t, IsNoMatch(err), "line %q", line)
	}
}

func TestUptimeOnlyTimestamp(t *testing.T) {
	parser := NewParser(FormatAuto)
	line := "372.456: [GC (Allocation Failure) [PSYoungGen: 1024K->512K(2048K)] 1024K->512K(4096K), 0.0010000 secs]"

	rec, err := parser.ParseLine(line)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Unix(0, 0).UTC().Add(372456*time.Millisecond), rec.Event.Timestamp, time.Millisecond)
}
