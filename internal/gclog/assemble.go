package gclog

import (
	"time"

	"gclens/utils"
)

type openCycle struct {
	start    time.Time
	cause    string
	pause    time.Duration
	sawPause bool
}

// Assembler is the single stateful stage of the pipeline. It carries the
// capacity hint from [gc,init] lines and merges ZGC cycle fragments back into
// whole collections. Feed must be called in log order.
type Assembler struct {
	capacity utils.MemorySize
	cycles   map[int]*openCycle
}

func NewAssembler() *Assembler {
	return &Assembler{cycles: make(map[int]*openCycle)}
}

// Feed consumes one record and returns a finished event when the record
// completes one. Cycle fragments and configuration records return (nil, nil).
func (a *Assembler) Feed(rec *RawRecord) (*CollectionEvent, error) {
	switch rec.Kind {
	case RecordHeapConfig:
		a.capacity = rec.Capacity
		return nil, nil

	case RecordCycleStart:
		a.cycles[rec.CycleID] = &openCycle{
			start: rec.Event.Timestamp,
			cause: rec.Event.Cause,
		}
		return nil, nil

	case RecordCyclePause:
		if cycle, ok := a.cycles[rec.CycleID]; ok {
			cycle.pause += rec.Pause
			cycle.sawPause = true
		}
		// A pause for an unseen cycle means the log starts mid-cycle; the
		// eventual cycle end is still usable without it.
		return nil, nil

	case RecordCycleEnd:
		ev := rec.Event
		ev.HeapCapacityHint = a.capacity
		if cycle, ok := a.cycles[rec.CycleID]; ok {
			ev.HasPause = cycle.sawPause
			ev.Pause = cycle.pause
			if !cycle.start.IsZero() {
				ev.Timestamp = cycle.start
			}
			delete(a.cycles, rec.CycleID)
		}
		return Normalize(ev)

	default:
		ev := rec.Event
		ev.HeapCapacityHint = a.capacity
		return Normalize(ev)
	}
}

// OpenCycles reports how many cycles started but never closed. Callers use it
// at end of input; truncated logs commonly leave one open.
func (a *Assembler) OpenCycles() int {
	return len(a.cycles)
}
