package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/tarot"
)

func result(question string, cardIDs ...string) reading.Result {
	def := spread.Builtin().Find(spread.TypePastPresentFuture)
	res := reading.Result{Spread: def.Type, Question: question}
	for i, id := range cardIDs {
		res.Placements = append(res.Placements, reading.SlotPlacement{
			Position:  def.OrderedPositions()[i],
			Placement: reading.Placement{Card: tarot.Card{ID: id}, Reversed: i%2 == 1},
		})
	}
	return res
}

func newStore(t *testing.T) *Store {
	t.Helper()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	return NewStore(filepath.Join(t.TempDir(), HistoryFile), WithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}))
}

func TestRecord_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, q := range []string{"first", "second"} {
		if _, ok, err := s.Record(ctx, result(q, "major_00", "cups_01", "swords_02")); err != nil || !ok {
			t.Fatalf("Record(%s) = %v, %v", q, ok, err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() = %d entries, want 2", len(entries))
	}
	if entries[0].Question != "second" || entries[1].Question != "first" {
		t.Errorf("order = %q, %q; want newest first", entries[0].Question, entries[1].Question)
	}
	if !entries[0].Timestamp.After(entries[1].Timestamp) {
		t.Error("newest entry should have the later timestamp")
	}

	e := entries[0]
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", e.ID, err)
	}
	if e.Spread != spread.TypePastPresentFuture || len(e.Cards) != 3 {
		t.Errorf("entry = %+v", e)
	}
	if e.Cards[0].Slot != "ppf_past" || e.Cards[0].CardID != "major_00" || e.Cards[0].Reversed {
		t.Errorf("first card = %+v", e.Cards[0])
	}
	if !e.Cards[1].Reversed {
		t.Error("orientation not recorded")
	}
}

func TestRecord_IgnoresEmptyReading(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, ok, err := s.Record(ctx, result("nothing"))
	if err != nil || ok {
		t.Fatalf("Record(empty) = %v, %v; want false, nil", ok, err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("empty reading created the history file")
	}
}

func TestRecord_KeepsMaxEntries(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for i := 0; i < MaxEntries+3; i++ {
		if _, _, err := s.Record(ctx, result(fmt.Sprintf("q%d", i), "major_01")); err != nil {
			t.Fatal(err)
		}
	}
	entries, _ := s.List(ctx)
	if len(entries) != MaxEntries {
		t.Fatalf("List() = %d entries, want %d", len(entries), MaxEntries)
	}
	if entries[0].Question != fmt.Sprintf("q%d", MaxEntries+2) {
		t.Errorf("newest = %q", entries[0].Question)
	}
	if entries[MaxEntries-1].Question != "q3" {
		t.Errorf("oldest kept = %q, want q3", entries[MaxEntries-1].Question)
	}
}

func TestList_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	data := `[
		{"id": "a1", "timestamp": "2026-01-01T00:00:00Z", "spread": "one_card", "cards": [{"slot": "one_focus", "card": "major_00"}]},
		{"id": "", "timestamp": "2026-01-01T00:00:00Z", "spread": "one_card", "cards": [{"slot": "one_focus", "card": "major_00"}]},
		{"id": "a3", "spread": "one_card", "cards": [{"slot": "one_focus", "card": "major_00"}]},
		{"id": "a4", "timestamp": "2026-01-01T00:00:00Z", "spread": "tower_spread", "cards": [{"slot": "x", "card": "major_00"}]},
		{"id": "a5", "timestamp": "2026-01-01T00:00:00Z", "spread": "one_card", "cards": [{"slot": "", "card": "major_00"}]},
		{"id": "a6", "timestamp": "not a time"},
		42,
		{"id": "a8", "timestamp": "2026-01-01T00:00:00Z", "spread": "one_card", "question": "kept",
		 "cards": [{"slot": "one_focus", "card": ""}, {"slot": "one_focus", "card": "cups_02"}]}
	]`
	if err := os.WriteFile(s.Path(), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a1" || entries[1].ID != "a8" {
		t.Fatalf("List() = %+v, want a1 and a8", entries)
	}
	if len(entries[1].Cards) != 1 || entries[1].Cards[0].CardID != "cups_02" {
		t.Errorf("malformed card not dropped: %+v", entries[1].Cards)
	}
}

func TestList_CorruptFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	entries, err := s.List(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("List() = %v, %v; want empty", entries, err)
	}

	// Recording over a corrupt file starts a fresh history.
	if _, _, err := s.Record(ctx, result("fresh", "major_02")); err != nil {
		t.Fatal(err)
	}
	entries, _ = s.List(ctx)
	if len(entries) != 1 {
		t.Errorf("List() = %d entries after recording, want 1", len(entries))
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() on missing file failed: %v", err)
	}
	_, _, _ = s.Record(ctx, result("q", "major_03"))
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if entries, _ := s.List(ctx); len(entries) != 0 {
		t.Errorf("List() after Clear = %d entries", len(entries))
	}
}

func TestInspectAndRepair(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	h, err := s.Inspect(ctx)
	if err != nil || h.Exists {
		t.Fatalf("Inspect() on missing file = %+v, %v", h, err)
	}

	data := `[
		{"id": "a1", "timestamp": "2026-01-01T00:00:00Z", "spread": "one_card", "cards": [{"slot": "one_focus", "card": "major_00"}]},
		{"id": "", "timestamp": "2026-01-01T00:00:00Z", "spread": "one_card", "cards": [{"slot": "one_focus", "card": "major_00"}]},
		42
	]`
	if err := os.WriteFile(s.Path(), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	h, err = s.Inspect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Health{Exists: true, Valid: 1, Skipped: 2}); h != want {
		t.Errorf("Inspect() = %+v, want %+v", h, want)
	}

	kept, err := s.Repair(ctx)
	if err != nil || kept != 1 {
		t.Fatalf("Repair() = %d, %v; want 1", kept, err)
	}
	if h, _ := s.Inspect(ctx); h.Skipped != 0 || h.Valid != 1 {
		t.Errorf("Inspect() after Repair = %+v", h)
	}
}

func TestRepair_CorruptFile(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if h, _ := s.Inspect(ctx); !h.Corrupt {
		t.Fatalf("Inspect() = %+v, want corrupt", h)
	}
	if kept, err := s.Repair(ctx); err != nil || kept != 0 {
		t.Fatalf("Repair() = %d, %v", kept, err)
	}
	h, _ := s.Inspect(ctx)
	if h.Corrupt || !h.Exists || h.Valid != 0 {
		t.Errorf("Inspect() after Repair = %+v, want an empty list", h)
	}
}
