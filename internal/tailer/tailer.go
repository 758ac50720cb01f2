package tailer

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/atikulmunna/logdecode/internal/logger"
	"github.com/atikulmunna/logdecode/internal/model"
	"github.com/atikulmunna/logdecode/internal/watcher"
)

// saveInterval is how often Follow invokes its idle callback.
const saveInterval = 5 * time.Second

// Handler consumes one raw line. A non-nil error stops reading.
type Handler func(model.RawLine) error

// Tailer reads lines from one source file. "\r\n" and a lone "\r" reach the
// Handler as "\n"; an unterminated last line reaches it as-is.
type Tailer struct {
	path      string
	file      *os.File
	r         *bufio.Reader
	offset    int64  // byte offset past the last line accepted by a Handler
	committed int64  // byte offset past the last accepted terminated line
	last      string // text of the last accepted terminated line
	buf       string // partial line buffer, raw bytes
	log       *logger.Logger
}

// Open opens path and positions it at from.Offset. from.Last is the line
// reported by State until a new terminated line is accepted.
func Open(path string, from SourceState, log *logger.Logger) (*Tailer, error) {
	offset := from.Offset

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat source")
	}
	if offset > fi.Size() {
		f.Close()
		return nil, errors.Errorf("saved offset %d is past the end of %s (%d bytes)", offset, path, fi.Size())
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "seek source")
	}

	return &Tailer{
		path:      path,
		file:      f,
		r:         bufio.NewReader(f),
		offset:    offset,
		committed: offset,
		last:      from.Last,
		log:       log,
	}, nil
}

// Offset returns the byte offset just past the last accepted line.
func (t *Tailer) Offset() int64 {
	return t.offset
}

// State returns where a later run should continue. A flushed partial line is
// not part of it, so the completed line is read again in full.
func (t *Tailer) State() SourceState {
	return SourceState{Offset: t.committed, Last: t.last}
}

// Close releases the source file.
func (t *Tailer) Close() error {
	return t.file.Close()
}

// Drain reads to the end of the file. A final line without a terminator is
// handed over as-is.
func (t *Tailer) Drain(fn Handler) error {
	if err := t.readLines(fn); err != nil {
		return err
	}
	return t.Flush(fn)
}

// Flush hands over any buffered partial line.
func (t *Tailer) Flush(fn Handler) error {
	if t.buf == "" {
		return nil
	}
	raw := t.buf
	t.buf = ""
	return t.emitAll(raw, true, fn)
}

// Follow reads what is already in the file and then every line appended to
// it, until ctx is cancelled or the source goes away. A partial line waits for
// its terminator and is flushed on exit. onIdle runs every few seconds and
// once on exit.
func (t *Tailer) Follow(ctx context.Context, events <-chan watcher.Event, fn Handler, onIdle func()) error {
	if onIdle == nil {
		onIdle = func() {}
	}
	defer onIdle()

	if err := t.readLines(fn); err != nil {
		return err
	}

	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return t.Flush(fn)

		case ev, ok := <-events:
			if !ok {
				return t.Flush(fn)
			}
			switch {
			case ev.Op&fsnotify.Write != 0:
				if err := t.readLines(fn); err != nil {
					return err
				}
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				t.log.Warnw("source removed, stopping", "path", t.path)
				if err := t.readLines(fn); err != nil {
					return err
				}
				return t.Flush(fn)
			}

		case <-ticker.C:
			onIdle()
		}
	}
}

// readLines hands over every complete line up to EOF and keeps the rest.
func (t *Tailer) readLines(fn Handler) error {
	for {
		chunk, err := t.r.ReadString('\n')
		if err == io.EOF {
			t.buf += chunk
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", t.path)
		}

		raw := t.buf + chunk
		t.buf = ""
		if err := t.emitAll(raw, false, fn); err != nil {
			return err
		}
	}
}

// emitAll splits raw on "\r\n", "\r" and "\n" and hands over each line with
// its terminator translated to "\n". A trailing piece without one is handed
// over unterminated. At EOF a final lone "\r" may be the first half of a
// "\r\n" still being written, so that line is not committed.
func (t *Tailer) emitAll(raw string, eof bool, fn Handler) error {
	for raw != "" {
		i := strings.IndexAny(raw, "\r\n")
		if i < 0 {
			return t.emit(raw, len(raw), false, fn)
		}
		n := i + 1
		if raw[i] == '\r' && n < len(raw) && raw[n] == '\n' {
			n++
		}
		commit := !(eof && raw[i] == '\r' && n == len(raw))
		if err := t.emit(raw[:i]+"\n", n, commit, fn); err != nil {
			return err
		}
		raw = raw[n:]
	}
	return nil
}

// emit hands one line over; size is its length on disk.
func (t *Tailer) emit(line string, size int, commit bool, fn Handler) error {
	next := t.offset + int64(size)
	if err := fn(model.RawLine{Text: line, Source: t.path, Offset: next}); err != nil {
		return err
	}
	t.offset = next
	if commit {
		t.committed = next
		t.last = line
	}
	return nil
}
