package pipeline

import (
	"github.com/atikulmunna/logdecode/internal/aggregator"
	"github.com/atikulmunna/logdecode/internal/model"
	"github.com/atikulmunna/logdecode/internal/output"
	"github.com/atikulmunna/logdecode/internal/parser"
)

// Pipeline decodes raw lines one at a time and renders every line that is not
// an exact repeat of the line before it.
type Pipeline struct {
	dec      *parser.Decoder
	renderer output.Renderer
	stats    *aggregator.Aggregator
	last     string
	started  bool
}

// New creates a Pipeline. stats may be nil.
func New(dec *parser.Decoder, r output.Renderer, stats *aggregator.Aggregator) *Pipeline {
	if stats == nil {
		stats = aggregator.New()
	}
	return &Pipeline{dec: dec, renderer: r, stats: stats}
}

// Process decodes raw and renders it unless raw.Text equals the previous line,
// terminator included. Repeats are still decoded, so a bad repeat still fails.
// Any error is fatal to the run.
func (p *Pipeline) Process(raw model.RawLine) error {
	p.stats.Read()

	rec, err := p.dec.Decode(raw.Text)
	if err != nil {
		return err
	}

	if p.started && raw.Text == p.last {
		p.stats.Suppressed()
		return nil
	}
	if err := p.renderer.Render(rec); err != nil {
		return err
	}
	p.stats.Record(rec)
	p.last = raw.Text
	p.started = true
	return nil
}

// Last returns the most recent raw line seen and whether there is one.
func (p *Pipeline) Last() (string, bool) {
	return p.last, p.started
}

// Restore seeds the repeat filter with the last line of an earlier run.
func (p *Pipeline) Restore(last string) {
	p.last = last
	p.started = true
}

// Stats returns the run counters.
func (p *Pipeline) Stats() aggregator.Stats {
	return p.stats.Snapshot()
}
