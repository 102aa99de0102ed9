package gclog

import (
	"time"

	"gclens/utils"
)

// RecordKind tags what a parsed line contributes to the event stream. Most
// lines yield a complete collection; ZGC cycles arrive as start/pause/end
// fragments that the Assembler stitches together.
type RecordKind int

const (
	RecordCollection RecordKind = iota
	RecordHeapConfig
	RecordCycleStart
	RecordCyclePause
	RecordCycleEnd
)

// PauseUnit is the native unit a pause duration was logged in.
type PauseUnit int

const (
	PauseMillis PauseUnit = iota
	PauseSeconds
)

// RawEvent holds the fields of one collection exactly as they appeared in the
// log, before unit conversion. Size fields keep their native text ("65536K",
// "9M") so that unparsable values surface as MalformedEvent during
// normalization rather than as zeroes.
type RawEvent struct {
	Timestamp time.Time
	Collector CollectorKind
	GenLabel  string
	Cause     string

	HasPause  bool
	PauseRaw  string
	PauseUnit PauseUnit
	// Pause is used instead of PauseRaw when the pause was accumulated across
	// cycle fragments and is already a duration.
	Pause time.Duration

	HeapBeforeRaw   string
	HeapAfterRaw    string
	HeapCapacityRaw string

	// ZGC logs report occupancy percentages instead of an inline capacity.
	BeforePct int
	AfterPct  int
	// HeapCapacityHint is filled by the Assembler from [gc,init] lines when
	// the line itself carries no capacity.
	HeapCapacityHint utils.MemorySize

	// Collector-local region figures ("[PSYoungGen: 9K->2K(16K)]"). Not part
	// of the canonical model, but still validated so a corrupt region segment
	// is flagged instead of ignored.
	GenBeforeRaw   string
	GenAfterRaw    string
	GenCapacityRaw string
}

// RawRecord is the tagged output of a single parsed line.
type RawRecord struct {
	Kind    RecordKind
	CycleID int

	// Event carries the fields for RecordCollection and RecordCycleEnd, and
	// the timestamp for cycle fragments.
	Event RawEvent

	// Pause is set for RecordCyclePause.
	Pause time.Duration

	// Capacity is set for RecordHeapConfig.
	Capacity utils.MemorySize
}
