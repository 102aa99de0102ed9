package gclog

import (
	"strconv"
	"strings"
	"time"

	"gclens/utils"
)

func parseSize(line, field, raw string) (utils.MemorySize, error) {
	size, err := utils.ParseMemorySize(raw)
	if err != nil {
		return 0, &MalformedEventError{Line: line, Field: field, Reason: err.Error()}
	}
	if size < 0 {
		return 0, &MalformedEventError{Line: line, Field: field, Reason: "negative size"}
	}
	return size, nil
}

func mapGeneration(line, label string) (Generation, error) {
	switch strings.ToLower(label) {
	case "psyounggen", "young", "eden":
		return GenerationYoung, nil
	case "paroldgen", "old", "tenured":
		return GenerationOld, nil
	case "mixed":
		return GenerationMixed, nil
	case "heap", "whole":
		return GenerationWhole, nil
	default:
		return GenerationWhole, &MalformedEventError{Line: line, Field: "generation", Reason: "unknown generation label " + strconv.Quote(label)}
	}
}

// Normalize converts a RawEvent into the canonical CollectionEvent: sizes to
// bytes, pauses to durations, region labels to generations. It is pure, so
// the same RawEvent always yields the same result.
func Normalize(ev RawEvent) (*CollectionEvent, error) {
	line := rebuildContext(ev)

	gen, err := mapGeneration(line, ev.GenLabel)
	if err != nil {
		return nil, err
	}
	if ev.Collector == CollectorFullGC {
		gen = GenerationWhole
	}

	out := &CollectionEvent{
		Timestamp:  ev.Timestamp,
		Collector:  ev.Collector,
		Generation: gen,
		HasPause:   ev.HasPause,
	}

	if ev.HasPause {
		if ev.PauseRaw != "" {
			value, err := strconv.ParseFloat(ev.PauseRaw, 64)
			if err != nil {
				return nil, &MalformedEventError{Line: line, Field: "pause", Reason: err.Error()}
			}
			if value < 0 {
				return nil, &MalformedEventError{Line: line, Field: "pause", Reason: "negative pause"}
			}
			switch ev.PauseUnit {
			case PauseSeconds:
				out.Pause = time.Duration(value * float64(time.Second))
			default:
				out.Pause = time.Duration(value * float64(time.Millisecond))
			}
		} else {
			out.Pause = ev.Pause
		}
	}

	if out.HeapBefore, err = parseSize(line, "heap_before", ev.HeapBeforeRaw); err != nil {
		return nil, err
	}
	if out.HeapAfter, err = parseSize(line, "heap_after", ev.HeapAfterRaw); err != nil {
		return nil, err
	}

	if out.HeapCapacity, err = resolveCapacity(line, ev, out.HeapBefore); err != nil {
		return nil, err
	}

	// Region segments are not part of the canonical event, but a corrupt one
	// still taints the line.
	for field, raw := range map[string]string{
		"region_before":   ev.GenBeforeRaw,
		"region_after":    ev.GenAfterRaw,
		"region_capacity": ev.GenCapacityRaw,
	} {
		if raw == "" {
			continue
		}
		if _, err := parseSize(line, field, raw); err != nil {
			return nil, err
		}
	}

	if err := out.Validate(); err != nil {
		return nil, &MalformedEventError{Line: line, Field: "heap_transition", Reason: err.Error()}
	}

	return out, nil
}

// resolveCapacity picks the heap capacity from the richest source available:
// an inline figure, a capacity derived from ZGC occupancy percentages, or the
// [gc,init] hint carried over by the Assembler.
func resolveCapacity(line string, ev RawEvent, before utils.MemorySize) (utils.MemorySize, error) {
	if ev.HeapCapacityRaw != "" {
		return parseSize(line, "heap_capacity", ev.HeapCapacityRaw)
	}
	if ev.BeforePct > 0 {
		return utils.MemorySize(float64(before) / (float64(ev.BeforePct) / 100.0)), nil
	}
	if ev.HeapCapacityHint > 0 {
		return ev.HeapCapacityHint, nil
	}
	return 0, &MalformedEventError{Line: line, Field: "heap_capacity", Reason: "no capacity on line and no heap configuration seen"}
}

// rebuildContext produces a short description of the event for error
// messages, since the original line is no longer at hand here.
func rebuildContext(ev RawEvent) string {
	parts := []string{ev.Collector.String()}
	if ev.Cause != "" {
		parts = append(parts, "("+ev.Cause+")")
	}
	if ev.HeapBeforeRaw != "" {
		parts = append(parts, ev.HeapBeforeRaw+"->"+ev.HeapAfterRaw)
	}
	return strings.Join(parts, " ")
}
