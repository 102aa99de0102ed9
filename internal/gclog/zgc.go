package gclog

import (
	"regexp"
	"strconv"
	"time"
)

var (
	// GC(5) Garbage Collection (Proactive) 512M(25%)->128M(6%)
	zgcEndPattern = regexp.MustCompile(`GC\((\d+)\) Garbage Collection \(([^)]+)\)\s+(\S+?)\((\d+)%\)->(\S+?)\((\d+)%\)`)

	// GC(5) Garbage Collection (Proactive)
	zgcStartPattern = regexp.MustCompile(`GC\((\d+)\) Garbage Collection \(([^)]+)\)\s*$`)

	// GC(5) Pause Mark Start 0.015ms
	zgcPausePattern = regexp.MustCompile(`GC\((\d+)\) Pause ((?:Mark|Relocate) (?:Start|End)) ([\d.]+)ms`)
)

// ZGCParser recognizes the three line shapes a ZGC cycle produces:
// the cycle open, the sub-millisecond STW pauses, and the cycle close
// with the heap transition. Each shape becomes its own record kind and
// the Assembler stitches them back into a single collection.
type ZGCParser struct{}

func NewZGCParser() *ZGCParser {
	return &ZGCParser{}
}

func (zp *ZGCParser) CanParse(line string) bool {
	return zgcEndPattern.MatchString(line) ||
		zgcStartPattern.MatchString(line) ||
		zgcPausePattern.MatchString(line)
}

func (zp *ZGCParser) Parse(line string) (*RawRecord, error) {
	if matches := zgcEndPattern.FindStringSubmatch(line); len(matches) >= 7 {
		return zp.parseEnd(line, matches)
	}

	if matches := zgcPausePattern.FindStringSubmatch(line); len(matches) >= 4 {
		return zp.parsePause(line, matches)
	}

	matches := zgcStartPattern.FindStringSubmatch(line)
	if len(matches) < 3 {
		return nil, &MalformedEventError{Line: line, Field: "cycle", Reason: "unparsable cycle line"}
	}
	cycleID, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, &MalformedEventError{Line: line, Field: "cycle_id", Reason: err.Error()}
	}
	return &RawRecord{
		Kind:    RecordCycleStart,
		CycleID: cycleID,
		Event:   RawEvent{Collector: CollectorZGC, GenLabel: "Whole", Cause: matches[2]},
	}, nil
}

func (zp *ZGCParser) parseEnd(line string, matches []string) (*RawRecord, error) {
	cycleID, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, &MalformedEventError{Line: line, Field: "cycle_id", Reason: err.Error()}
	}

	beforePct, err := strconv.Atoi(matches[4])
	if err != nil {
		return nil, &MalformedEventError{Line: line, Field: "heap_before_pct", Reason: err.Error()}
	}
	afterPct, err := strconv.Atoi(matches[6])
	if err != nil {
		return nil, &MalformedEventError{Line: line, Field: "heap_after_pct", Reason: err.Error()}
	}

	ev := RawEvent{
		Collector:     CollectorZGC,
		GenLabel:      "Whole",
		Cause:         matches[2],
		HeapBeforeRaw: matches[3],
		HeapAfterRaw:  matches[5],
		BeforePct:     beforePct,
		AfterPct:      afterPct,
	}
	return &RawRecord{Kind: RecordCycleEnd, CycleID: cycleID, Event: ev}, nil
}

func (zp *ZGCParser) parsePause(line string, matches []string) (*RawRecord, error) {
	cycleID, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, &MalformedEventError{Line: line, Field: "cycle_id", Reason: err.Error()}
	}

	ms, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return nil, &MalformedEventError{Line: line, Field: "pause", Reason: err.Error()}
	}

	return &RawRecord{
		Kind:    RecordCyclePause,
		CycleID: cycleID,
		Pause:   time.Duration(ms * float64(time.Millisecond)),
	}, nil
}
