package aggregator

import (
	"time"

	"github.com/atikulmunna/logdecode/internal/model"
)

// Stats holds a point-in-time snapshot of run counters.
type Stats struct {
	Lines      int64            `json:"lines"`
	Written    int64            `json:"written"`
	Suppressed int64            `json:"suppressed"`
	TypeCounts map[string]int64 `json:"type_counts"`
	Elapsed    time.Duration    `json:"elapsed"`
}

// Aggregator counts what a decode run did. It is owned by the single
// goroutine driving the run and is not safe for concurrent use.
type Aggregator struct {
	startTime  time.Time
	lines      int64
	written    int64
	suppressed int64
	typeCounts map[string]int64
}

// New creates an Aggregator whose clock starts now.
func New() *Aggregator {
	return &Aggregator{
		startTime:  time.Now(),
		typeCounts: make(map[string]int64),
	}
}

// Read counts one raw line taken from the source.
func (a *Aggregator) Read() { a.lines++ }

// Suppressed counts one line dropped as a consecutive repeat.
func (a *Aggregator) Suppressed() { a.suppressed++ }

// Record counts one record written to the destination, keyed by its type label.
func (a *Aggregator) Record(rec model.DecodedRecord) {
	a.written++
	a.typeCounts[rec.Type]++
}

// Snapshot returns the current counters.
func (a *Aggregator) Snapshot() Stats {
	counts := make(map[string]int64, len(a.typeCounts))
	for k, v := range a.typeCounts {
		counts[k] = v
	}

	return Stats{
		Lines:      a.lines,
		Written:    a.written,
		Suppressed: a.suppressed,
		TypeCounts: counts,
		Elapsed:    time.Since(a.startTime),
	}
}
