package gclog

import "regexp"

var (
	// GC (Allocation Failure) [PSYoungGen: 65536K->10748K(76288K)] 65536K->15360K(251392K), 0.0123456 secs
	parallelYoungDetect = regexp.MustCompile(`\bGC \(([^)]+)\)\s+\[PSYoungGen:`)

	// Full GC (Ergonomics) [PSYoungGen: ...] [ParOldGen: ...] 15360K->13080K(251392K), ... 0.0821345 secs
	parallelFullDetect = regexp.MustCompile(`\bFull GC \(([^)]+)\)`)

	// [PSYoungGen: 65536K->10748K(76288K)]
	psYoungGenSegment = regexp.MustCompile(`\[PSYoungGen:\s+(\S+?)K->(\S+?)K\((\S+?)K\)\]`)

	// [ParOldGen: 4612K->13080K(175104K)]
	parOldGenSegment = regexp.MustCompile(`\[ParOldGen:\s+(\S+?)K->(\S+?)K\((\S+?)K\)\]`)

	// 65536K->15360K(251392K), 0.0123456 secs   (whole-heap summary + pause)
	parallelHeapSummary = regexp.MustCompile(`\]\s+(\S+?)K->(\S+?)K\((\S+?)K\)(?:,\s+\[Metaspace:[^\]]*\])?,\s+([\d.]+) secs`)
)

// ParallelParser handles the classic JDK 8 throughput-collector format
// (-XX:+UseParallelGC with PSYoungGen / ParOldGen pools).
type ParallelParser struct{}

func NewParallelParser() *ParallelParser {
	return &ParallelParser{}
}

func (pp *ParallelParser) CanParse(line string) bool {
	return parallelYoungDetect.MatchString(line) || parallelFullDetect.MatchString(line)
}

func (pp *ParallelParser) Parse(line string) (*RawRecord, error) {
	if matches := parallelFullDetect.FindStringSubmatch(line); len(matches) > 1 {
		return pp.parseFull(line, matches[1])
	}

	matches := parallelYoungDetect.FindStringSubmatch(line)
	return pp.parseYoung(line, matches[1])
}

func (pp *ParallelParser) parseYoung(line, cause string) (*RawRecord, error) {
	ev := RawEvent{
		Collector: CollectorParallel,
		GenLabel:  "PSYoungGen",
		Cause:     cause,
		HasPause:  true,
		PauseUnit: PauseSeconds,
	}

	young := psYoungGenSegment.FindStringSubmatch(line)
	if len(young) < 4 {
		return nil, &MalformedEventError{Line: line, Field: "young_region", Reason: "unparsable PSYoungGen segment"}
	}
	ev.GenBeforeRaw = young[1] + "K"
	ev.GenAfterRaw = young[2] + "K"
	ev.GenCapacityRaw = young[3] + "K"

	summary := parallelHeapSummary.FindStringSubmatch(line)
	if len(summary) < 5 {
		return nil, &MalformedEventError{Line: line, Field: "heap_summary", Reason: "missing whole-heap summary"}
	}
	ev.HeapBeforeRaw = summary[1] + "K"
	ev.HeapAfterRaw = summary[2] + "K"
	ev.HeapCapacityRaw = summary[3] + "K"
	ev.PauseRaw = summary[4]

	return &RawRecord{Kind: RecordCollection, Event: ev}, nil
}

func (pp *ParallelParser) parseFull(line, cause string) (*RawRecord, error) {
	ev := RawEvent{
		Collector: CollectorFullGC,
		GenLabel:  "Heap",
		Cause:     cause,
		HasPause:  true,
		PauseUnit: PauseSeconds,
	}

	// Region segments are optional on Full GC lines but rejected when corrupt.
	if old := parOldGenSegment.FindStringSubmatch(line); len(old) >= 4 {
		ev.GenBeforeRaw = old[1] + "K"
		ev.GenAfterRaw = old[2] + "K"
		ev.GenCapacityRaw = old[3] + "K"
	}

	summary := parallelHeapSummary.FindStringSubmatch(line)
	if len(summary) < 5 {
		return nil, &MalformedEventError{Line: line, Field: "heap_summary", Reason: "missing whole-heap summary"}
	}
	ev.HeapBeforeRaw = summary[1] + "K"
	ev.HeapAfterRaw = summary[2] + "K"
	ev.HeapCapacityRaw = summary[3] + "K"
	ev.PauseRaw = summary[4]

	return &RawRecord{Kind: RecordCollection, Event: ev}, nil
}
