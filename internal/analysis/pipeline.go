package analysis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"gclens/internal/gclog"
)

// Analyzer drives one log through parse, assembly, aggregation and trend
// detection. It is single-goroutine; the concurrent entry point is Run.
type Analyzer struct {
	parser     *gclog.Parser
	assembler  *gclog.Assembler
	aggregator *Aggregator
	trend      *TrendDetector
	thresholds Thresholds
}

func NewAnalyzer(format gclog.Format, thresholds Thresholds) *Analyzer {
	return &Analyzer{
		parser:     gclog.NewParser(format),
		assembler:  gclog.NewAssembler(),
		aggregator: NewAggregator(thresholds),
		trend:      NewTrendDetector(thresholds),
		thresholds: thresholds,
	}
}

// ProcessLine runs one line through the full chain and returns the finished
// event when the line completed one. Unmatched and malformed lines are
// tallied, never fatal.
func (a *Analyzer) ProcessLine(line string) *gclog.CollectionEvent {
	rec, err := a.parser.ParseLine(line)
	if err != nil {
		a.recordError(err)
		return nil
	}
	return a.consume(rec)
}

func (a *Analyzer) consume(rec *gclog.RawRecord) *gclog.CollectionEvent {
	ev, err := a.assembler.Feed(rec)
	if err != nil {
		a.recordError(err)
		return nil
	}
	if ev == nil {
		return nil
	}
	a.aggregator.Ingest(ev)
	a.trend.Observe(ev)
	return ev
}

func (a *Analyzer) recordError(err error) {
	switch {
	case gclog.IsNoMatch(err):
		a.aggregator.RecordUnmatched()
	case gclog.IsMalformed(err):
		a.aggregator.RecordMalformed()
	}
}

// Snapshot exposes the current statistics, for live views.
func (a *Analyzer) Snapshot() (RunningStats, PausePercentiles) {
	return a.aggregator.Snapshot()
}

// TrendState exposes the current leak verdict, for live views.
func (a *Analyzer) TrendState() TrendState {
	return a.trend.State()
}

// Report builds the final report from everything processed so far.
func (a *Analyzer) Report() *Report {
	stats, percentiles := a.aggregator.Snapshot()
	return GenerateReport(stats, percentiles, a.trend.State(), a.thresholds)
}

type lineItem struct {
	seq  int64
	text string
}

type recordItem struct {
	seq int64
	rec *gclog.RawRecord
	err error
}

// Run analyzes a whole log with a pool of parse workers. Parsing is pure per
// line, so it fans out; records are reordered by sequence number before the
// stateful assembly stage, which keeps results identical to a sequential run.
// A read failure is the only fatal error.
func Run(ctx context.Context, r io.Reader, format gclog.Format, thresholds Thresholds) (*Report, error) {
	workers := thresholds.Workers
	if workers < 1 {
		workers = 1
	}

	lines := make(chan lineItem, workers*8)
	parsed := make(chan recordItem, workers*8)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := gclog.NewParser(format)
			for item := range lines {
				rec, err := parser.ParseLine(item.text)
				select {
				case parsed <- recordItem{seq: item.seq, rec: rec, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(parsed)
	}()

	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var seq int64
		for scanner.Scan() {
			select {
			case lines <- lineItem{seq: seq, text: scanner.Text()}:
				seq++
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	analyzer := NewAnalyzer(format, thresholds)
	pending := make(map[int64]recordItem)
	var next int64
	for item := range parsed {
		pending[item.seq] = item
		for {
			cur, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if cur.err != nil {
				analyzer.recordError(cur.err)
				continue
			}
			analyzer.consume(cur.rec)
		}
	}

	if err := <-readErr; err != nil {
		return nil, fmt.Errorf("reading GC log: %w", err)
	}

	return analyzer.Report(), nil
}
