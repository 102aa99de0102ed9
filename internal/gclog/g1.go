package gclog

import (
	"regexp"
	"strings"
)

var (
	// [2024-01-15T10:23:45.123+0000][gc] GC(12) Pause Young (Normal) (G1 Evacuation Pause) 24M->8M(256M) 5.123ms
	g1PauseDetect = regexp.MustCompile(`GC\(\d+\) Pause (Young|Full)\b.*->`)

	// GC(12) Pause Young (Mixed) (G1 Evacuation Pause) 24M->8M(256M) 5.123ms
	g1PauseFields = regexp.MustCompile(`GC\((\d+)\) Pause (Young|Full)((?:\s+\([^)]+\))*)\s+(\S+?)->(\S+?)\((\S+?)\)\s+([\d.]+)ms`)

	g1Qualifier = regexp.MustCompile(`\(([^)]+)\)`)
)

// G1Parser handles JDK 9+ unified logging for the G1 collector.
// Only the terminal pause summary line carries sizes and timing, so
// the per-phase [gc,phases] lines are intentionally left unmatched.
type G1Parser struct{}

func NewG1Parser() *G1Parser {
	return &G1Parser{}
}

func (gp *G1Parser) CanParse(line string) bool {
	return g1PauseDetect.MatchString(line)
}

func (gp *G1Parser) Parse(line string) (*RawRecord, error) {
	matches := g1PauseFields.FindStringSubmatch(line)
	if len(matches) < 8 {
		return nil, &MalformedEventError{Line: line, Field: "pause_summary", Reason: "unparsable G1 pause line"}
	}

	pauseKind := matches[2]
	qualifiers := g1Qualifier.FindAllStringSubmatch(matches[3], -1)

	ev := RawEvent{
		HasPause:        true,
		PauseRaw:        matches[7],
		PauseUnit:       PauseMillis,
		HeapBeforeRaw:   matches[4],
		HeapAfterRaw:    matches[5],
		HeapCapacityRaw: matches[6],
	}

	switch {
	case pauseKind == "Full":
		ev.Collector = CollectorFullGC
		ev.GenLabel = "Heap"
	case hasQualifier(qualifiers, "Mixed"):
		ev.Collector = CollectorG1Mixed
		ev.GenLabel = "Mixed"
	default:
		ev.Collector = CollectorG1Young
		ev.GenLabel = "Young"
	}

	// The cause is the last qualifier, e.g. (G1 Evacuation Pause).
	if len(qualifiers) > 0 {
		ev.Cause = qualifiers[len(qualifiers)-1][1]
	}

	return &RawRecord{Kind: RecordCollection, Event: ev}, nil
}

func hasQualifier(qualifiers [][]string, want string) bool {
	for _, q := range qualifiers {
		if strings.EqualFold(q[1], want) {
			return true
		}
	}
	return false
}
