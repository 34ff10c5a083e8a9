package daily

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/random"
	"github.com/deeklead/midori/internal/tarot"
)

// deck is an in-memory tarot.Source.
type deck struct {
	cards []tarot.Card
	err   error
}

func (d deck) GetCards(language.Tag) ([]tarot.Card, error) {
	return d.cards, d.err
}

func (d deck) GetCard(id string, _ language.Tag) (tarot.Card, bool, error) {
	for _, c := range d.cards {
		if c.ID == id {
			return c, true, d.err
		}
	}
	return tarot.Card{}, false, d.err
}

// clock returns a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T, src tarot.Source) (*Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.Local)}
	path := filepath.Join(t.TempDir(), DailyFile)
	return NewStore(path, src, WithClock(c.now), WithRNG(random.New(11))), c
}

func TestToday_SameDayReturnsSameCard(t *testing.T) {
	ctx := context.Background()
	s, c := setup(t, tarot.NewRepository())

	first, err := s.Today(ctx, language.English)
	if err != nil {
		t.Fatalf("Today() failed: %v", err)
	}
	if first.Existing {
		t.Error("first draw should not be existing")
	}
	if first.Date != "2026-05-01" {
		t.Errorf("Date = %q", first.Date)
	}

	c.t = c.t.Add(10 * time.Hour)
	again, err := s.Today(ctx, language.English)
	if err != nil {
		t.Fatalf("Today() failed: %v", err)
	}
	if !again.Existing || again.Card.ID != first.Card.ID {
		t.Errorf("same day returned %s (existing=%v), want %s", again.Card.ID, again.Existing, first.Card.ID)
	}
}

func TestToday_LocalizesStoredCard(t *testing.T) {
	ctx := context.Background()
	src := tarot.NewRepository()
	s, _ := setup(t, src)

	first, _ := s.Today(ctx, language.English)
	ko, err := s.Today(ctx, language.Korean)
	if err != nil {
		t.Fatal(err)
	}
	want, _, _ := src.GetCard(first.Card.ID, language.Korean)
	if ko.Card.Name != want.Name {
		t.Errorf("Korean name = %q, want %q", ko.Card.Name, want.Name)
	}
}

func TestToday_NewDayDrawsAgain(t *testing.T) {
	ctx := context.Background()
	s, c := setup(t, deck{cards: []tarot.Card{{ID: "a"}}})

	if _, err := s.Today(ctx, language.English); err != nil {
		t.Fatal(err)
	}
	c.t = c.t.AddDate(0, 0, 1)
	next, err := s.Today(ctx, language.English)
	if err != nil {
		t.Fatal(err)
	}
	if next.Existing || next.Date != "2026-05-02" {
		t.Errorf("next day = %+v, want a fresh draw dated 2026-05-02", next)
	}
}

func TestToday_UnknownStoredIDDrawsAgain(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t, deck{cards: []tarot.Card{{ID: "a"}}})
	if err := os.WriteFile(s.path, []byte(`{"date":"2026-05-01","card_id":"gone"}`), 0600); err != nil {
		t.Fatal(err)
	}

	d, err := s.Today(ctx, language.English)
	if err != nil {
		t.Fatal(err)
	}
	if d.Existing || d.Card.ID != "a" {
		t.Errorf("Today() = %+v, want fresh draw of a", d)
	}

	data, _ := os.ReadFile(s.path)
	if string(data) != `{"date":"2026-05-01","card_id":"a"}` {
		t.Errorf("stored %s", data)
	}
}

func TestToday_CorruptFileDrawsAgain(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t, deck{cards: []tarot.Card{{ID: "a"}}})
	if err := os.WriteFile(s.path, []byte(`{"date":"yesterday"`), 0600); err != nil {
		t.Fatal(err)
	}
	d, err := s.Today(ctx, language.English)
	if err != nil || d.Existing {
		t.Errorf("Today() = %+v, %v", d, err)
	}
}

func TestToday_Errors(t *testing.T) {
	ctx := context.Background()

	s, _ := setup(t, deck{})
	if _, err := s.Today(ctx, language.English); !errors.Is(err, tarot.ErrCardNotFound) {
		t.Errorf("Today() on empty deck = %v, want ErrCardNotFound", err)
	}

	boom := errors.New("boom")
	s, _ = setup(t, deck{err: boom})
	if _, err := s.Today(ctx, language.English); !errors.Is(err, boom) {
		t.Errorf("Today() = %v, want source error", err)
	}
}

func TestStoredAndForget(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t, deck{cards: []tarot.Card{{ID: "a"}, {ID: "b"}}})

	if exists, _ := s.Stored(); exists {
		t.Fatal("Stored() reports a file before any draw")
	}
	if _, err := s.Today(ctx, language.English); err != nil {
		t.Fatal(err)
	}
	if exists, valid := s.Stored(); !exists || !valid {
		t.Errorf("Stored() = %v, %v after a draw", exists, valid)
	}

	if err := os.WriteFile(s.path, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	if exists, valid := s.Stored(); !exists || valid {
		t.Errorf("Stored() = %v, %v for a corrupt file", exists, valid)
	}

	if err := s.Forget(ctx); err != nil {
		t.Fatal(err)
	}
	if exists, _ := s.Stored(); exists {
		t.Error("Forget() left the file behind")
	}
	if err := s.Forget(ctx); err != nil {
		t.Errorf("Forget() on missing file = %v", err)
	}
}
