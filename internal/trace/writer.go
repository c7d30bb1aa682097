// Package trace records per-tick engine activity as zstd-compressed JSON lines,
// rotating to a new file every UTC hour.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-fog/internal/fog"
)

// Prefix is the file name prefix of tick traces.
const Prefix = "ticks"

const hourLayout = "2006-01-02-15"

// Record is one traced engine tick.
type Record struct {
	Scene    string  `json:"scene,omitempty"`
	Level    string  `json:"level,omitempty"`
	Tick     int     `json:"tick"`
	Reason   string  `json:"reason"`
	Skipped  bool    `json:"skipped,omitempty"`
	Rays     int     `json:"rays"`
	Samples  int     `json:"samples"`
	Span     int     `json:"span"`
	Explored float64 `json:"explored"`
}

// FromResult builds a record from an engine tick result.
func FromResult(scene, level string, tick int, res fog.TickResult, explored float64) Record {
	rec := Record{
		Scene:    scene,
		Level:    level,
		Tick:     tick,
		Reason:   res.Reason.String(),
		Skipped:  res.Skipped,
		Rays:     res.Rays,
		Samples:  res.Samples,
		Explored: explored,
	}
	if res.Span.Valid {
		rec.Span = res.Span.Area()
	}
	return rec
}

// Writer appends records to <dir>/ticks-YYYY-MM-DD-HH.jsonl.zst.
type Writer struct {
	dir string
	now func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	written int
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the time source used for rotation.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a writer rooted at dir. Files are opened lazily.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write appends one record and flushes the compressed block to disk, so a
// process that exits without Close keeps every record written so far.
func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Format(hourLayout)
	if hour != w.curHour || w.enc == nil {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("trace: cannot encode record: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.enc.Write(b); err != nil {
		return fmt.Errorf("trace: cannot write record: %w", err)
	}
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("trace: cannot flush: %w", err)
	}
	w.written++
	return nil
}

// Written returns the number of records written so far.
func (w *Writer) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Path returns the file currently being written, or "" before the first write.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.curHour == "" {
		return ""
	}
	return w.pathForHour(w.curHour)
}

// Close finishes the current zstd frame and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("trace: cannot create directory %s: %w", w.dir, err)
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("trace: cannot open file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("trace: cannot create encoder: %w", err)
	}
	w.f = f
	w.enc = enc
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.enc != nil {
		err = errors.Join(err, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		err = errors.Join(err, w.f.Close())
		w.f = nil
	}
	if err != nil {
		return fmt.Errorf("trace: cannot close: %w", err)
	}
	return nil
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", Prefix, hour))
}

// ReadFile decodes every record in a trace file. Appended zstd frames are
// read back to back. A last frame left open by a writer that was never
// closed ends the file after its last flushed record.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: cannot open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("trace: cannot create decoder: %w", err)
	}
	defer dec.Close()

	var out []Record
	jd := json.NewDecoder(dec)
	for {
		var rec Record
		if err := jd.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return out, nil
			}
			return out, fmt.Errorf("trace: cannot decode record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}
