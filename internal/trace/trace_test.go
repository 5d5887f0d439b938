package trace

import (
	"bytes"
	"path/filepath"
	"slices"
	"testing"

	"forage/internal/sims/forage"
)

func TestRecorderRoundTrip(t *testing.T) {
	w := forage.NewWithConfig(forage.DefaultConfig())
	if err := w.Reset(9); err != nil {
		t.Fatalf("reset: %v", err)
	}
	path := filepath.Join(t.TempDir(), "runs", "trace.jsonl.zst")
	tw, err := Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rec := NewRecorder(tw)
	if err := rec.Start(w, 9); err != nil {
		t.Fatalf("start: %v", err)
	}
	turns := 0
	for w.Status() == forage.StatusRunning && turns < 50 {
		if err := rec.Turn(w, w.AdvanceTurn()); err != nil {
			t.Fatalf("turn: %v", err)
		}
		turns++
	}
	if err := rec.End(w); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != turns+2 {
		t.Fatalf("expected %d records, got %d", turns+2, len(records))
	}
	first, last := records[0], records[len(records)-1]
	if first.Kind != KindStart || first.Sim != "forage" || first.Seed != 9 || first.State == nil {
		t.Fatalf("unexpected start record %+v", first)
	}
	if len(first.State.Agents) != 3 || len(first.State.Resources) != 8 {
		t.Fatalf("start state lost population: %+v", first.State)
	}
	if last.Kind != KindEnd || !slices.Equal(last.Scores, w.Scores()) {
		t.Fatalf("unexpected end record %+v", last)
	}
	for i, r := range records[1 : len(records)-1] {
		if r.Kind != KindTurn || r.Report == nil || r.Report.Turn != i+1 {
			t.Fatalf("record %d: unexpected %+v", i+1, r)
		}
		if len(r.Report.Decisions) != 3 {
			t.Fatalf("record %d: expected 3 decisions, got %d", i+1, len(r.Report.Decisions))
		}
	}
}

func TestWriterStreamsToBuffer(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := w.Write(Record{Kind: KindTurn, Turn: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(Record{}); err == nil {
		t.Fatal("write after close should fail")
	}
	records, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || records[2].Turn != 3 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf)
	_ = w.Write(map[string]any{"kind": 7})
	_ = w.Close()
	if _, err := Read(&buf); err == nil {
		t.Fatal("expected decode error for non-string kind")
	}
}
