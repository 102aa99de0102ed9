package gclog

import (
	"errors"
	"fmt"
	"time"

	"gclens/utils"
)

// CollectorKind identifies which collector activity produced an event.
type CollectorKind int

const (
	CollectorUnknown CollectorKind = iota
	CollectorParallel
	CollectorG1Young
	CollectorG1Mixed
	CollectorZGC
	CollectorFullGC
)

func (k CollectorKind) String() string {
	switch k {
	case CollectorParallel:
		return "Parallel"
	case CollectorG1Young:
		return "G1Young"
	case CollectorG1Mixed:
		return "G1Mixed"
	case CollectorZGC:
		return "ZGC"
	case CollectorFullGC:
		return "FullGC"
	default:
		return "Unknown"
	}
}

// Generation identifies which part of the heap a collection covered.
type Generation int

const (
	GenerationYoung Generation = iota
	GenerationOld
	GenerationMixed
	GenerationWhole
)

func (g Generation) String() string {
	switch g {
	case GenerationYoung:
		return "Young"
	case GenerationOld:
		return "Old"
	case GenerationMixed:
		return "Mixed"
	default:
		return "Whole"
	}
}

// CollectionEvent is the canonical event every collector format normalizes
// into. HasPause is false for purely concurrent cycles (ZGC cycles where no
// stop-the-world phase was observed).
type CollectionEvent struct {
	Timestamp    time.Time
	Collector    CollectorKind
	Generation   Generation
	Pause        time.Duration
	HasPause     bool
	HeapBefore   utils.MemorySize
	HeapAfter    utils.MemorySize
	HeapCapacity utils.MemorySize
}

// IsMajor reports whether the event reclaimed the old generation or the whole
// heap. Baseline trend analysis only looks at major collections.
func (e *CollectionEvent) IsMajor() bool {
	return e.Collector == CollectorFullGC || e.Generation == GenerationWhole
}

// Validate enforces heap_after <= heap_before <= heap_capacity. Inputs that
// violate it are rejected as malformed, never clamped.
func (e *CollectionEvent) Validate() error {
	if e.HeapAfter > e.HeapBefore {
		return fmt.Errorf("heap after (%s) exceeds heap before (%s)", e.HeapAfter, e.HeapBefore)
	}
	if e.HeapBefore > e.HeapCapacity {
		return fmt.Errorf("heap before (%s) exceeds capacity (%s)", e.HeapBefore, e.HeapCapacity)
	}
	return nil
}

// ErrNoMatch marks a line that belongs to no known GC format. Interleaved
// application log lines are expected, so this is a skip signal, not a failure.
var ErrNoMatch = errors.New("line matches no known GC format")

// MalformedEventError reports a line that looked like a GC event but carried
// an unusable field. The run continues; the error is tallied.
type MalformedEventError struct {
	Line   string
	Field  string
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed GC event (field %q): %s in line %q", e.Field, e.Reason, e.Line)
}

func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

func IsMalformed(err error) bool {
	var malformed *MalformedEventError
	return errors.As(err, &malformed)
}
