// Package trace records foraging runs as zstd-compressed JSON lines.
package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"forage/internal/sims/forage"
)

// Record kinds.
const (
	KindStart = "start"
	KindTurn  = "turn"
	KindEnd   = "end"
)

// Record is one line of a trace.
type Record struct {
	Kind   string             `json:"kind"`
	Turn   int                `json:"turn"`
	Sim    string             `json:"sim,omitempty"`
	Seed   int64              `json:"seed,omitempty"`
	State  *forage.State      `json:"state,omitempty"`
	Report *forage.TurnReport `json:"report,omitempty"`
	Scores []int              `json:"scores,omitempty"`
}

// Writer appends records to a compressed stream.
type Writer struct {
	mu  sync.Mutex
	c   io.Closer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewWriter compresses records onto dst. Closing the writer closes dst when it
// implements io.Closer.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	w := &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if c, ok := dst.(io.Closer); ok {
		w.c = c
	}
	return w, nil
}

// Create opens path for writing, creating parent directories.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// Write appends one JSON line.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return errors.New("trace: write after close")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes pending lines and finishes the zstd frame.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.c != nil {
		if cerr := w.c.Close(); err == nil {
			err = cerr
		}
	}
	w.w = nil
	w.enc = nil
	return err
}

// Recorder writes the lifecycle of one world.
type Recorder struct {
	w *Writer
}

// NewRecorder wraps a writer.
func NewRecorder(w *Writer) *Recorder { return &Recorder{w: w} }

// Start writes the initial state.
func (r *Recorder) Start(world *forage.World, seed int64) error {
	st := world.State()
	return r.w.Write(Record{Kind: KindStart, Turn: st.Turn, Sim: world.Name(), Seed: seed, State: &st})
}

// Turn writes one turn report with the scores after it.
func (r *Recorder) Turn(world *forage.World, report forage.TurnReport) error {
	return r.w.Write(Record{Kind: KindTurn, Turn: report.Turn, Report: &report, Scores: world.Scores()})
}

// End writes the final state.
func (r *Recorder) End(world *forage.World) error {
	st := world.State()
	return r.w.Write(Record{Kind: KindEnd, Turn: st.Turn, State: &st, Scores: world.Scores()})
}

// Close closes the underlying writer.
func (r *Recorder) Close() error { return r.w.Close() }

// Read decodes every record from a compressed stream.
func Read(src io.Reader) ([]Record, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	var out []Record
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("trace line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadFile decodes a trace file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
