package gclog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const unifiedTimestampLayout = "2006-01-02T15:04:05.000-0700"

var (
	// [2025-07-27T06:54:55.176-0400]
	unifiedTimestampPattern = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}[+-]\d{4})\]`)

	// 2025-07-27T06:54:55.176-0400: 1.234: [GC ...
	classicTimestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}[+-]\d{4}):\s`)

	// 372.456: [GC ...
	uptimePattern = regexp.MustCompile(`(?:^|\s)(\d+\.\d{3}):\s+\[`)

	// [gc,init] Heap Max Capacity: 256M   (G1)
	// [gc,init] Max Capacity: 16384M      (ZGC)
	heapConfigPattern = regexp.MustCompile(`\[gc,init\].*Max Capacity:\s+(\d+[KMGT])`)
)

// Format selects which collector pattern sets a Parser consults. FormatAuto
// tries them all, which is how mixed or unknown logs are handled.
type Format int

const (
	FormatAuto Format = iota
	FormatParallel
	FormatG1
	FormatZGC
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "parallel":
		return FormatParallel, nil
	case "g1":
		return FormatG1, nil
	case "zgc":
		return FormatZGC, nil
	default:
		return FormatAuto, fmt.Errorf("unknown collector format %q (want auto, parallel, g1 or zgc)", s)
	}
}

// LineParser recognizes and extracts one collector's log format.
type LineParser interface {
	CanParse(line string) bool
	Parse(line string) (*RawRecord, error)
}

// Parser dispatches each line over its configured format parsers. It is pure
// per line: all cross-line state (ZGC cycles, capacity hints) lives in the
// Assembler so parsing can run on parallel workers.
type Parser struct {
	parsers []LineParser
}

func NewParser(format Format) *Parser {
	var parsers []LineParser
	switch format {
	case FormatParallel:
		parsers = []LineParser{NewParallelParser()}
	case FormatG1:
		parsers = []LineParser{NewG1Parser()}
	case FormatZGC:
		parsers = []LineParser{NewZGCParser()}
	default:
		parsers = []LineParser{NewG1Parser(), NewZGCParser(), NewParallelParser()}
	}
	return &Parser{parsers: parsers}
}

// ParseLine converts one raw line into a RawRecord. Lines outside every known
// pattern return ErrNoMatch; recognized lines with unusable fields return a
// MalformedEventError.
func (p *Parser) ParseLine(line string) (*RawRecord, error) {
	if matches := heapConfigPattern.FindStringSubmatch(line); len(matches) > 1 {
		capacity, err := parseSize(line, "max_capacity", matches[1])
		if err != nil {
			return nil, err
		}
		return &RawRecord{Kind: RecordHeapConfig, Capacity: capacity}, nil
	}

	for _, parser := range p.parsers {
		if !parser.CanParse(line) {
			continue
		}
		rec, err := parser.Parse(line)
		if err != nil {
			return nil, err
		}
		rec.Event.Timestamp = extractTimestamp(line)
		return rec, nil
	}

	return nil, ErrNoMatch
}

// extractTimestamp pulls the best available timestamp off a line. Unified
// logging brackets the absolute time; classic logs prefix it. Logs decorated
// with uptime only get a synthetic clock anchored at the epoch, which keeps
// events ordered even without wall time.
func extractTimestamp(line string) time.Time {
	if matches := unifiedTimestampPattern.FindStringSubmatch(line); len(matches) > 1 {
		if ts, err := time.Parse(unifiedTimestampLayout, matches[1]); err == nil {
			return ts
		}
	}
	if matches := classicTimestampPattern.FindStringSubmatch(line); len(matches) > 1 {
		if ts, err := time.Parse(unifiedTimestampLayout, matches[1]); err == nil {
			return ts
		}
	}
	if matches := uptimePattern.FindStringSubmatch(line); len(matches) > 1 {
		var secs float64
		if _, err := fmt.Sscanf(matches[1], "%f", &secs); err == nil {
			return time.Unix(0, 0).UTC().Add(time.Duration(secs * float64(time.Second)))
		}
	}
	return time.Time{}
}
