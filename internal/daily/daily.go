// Package daily picks one card per calendar day and remembers it.
package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/random"
	"github.com/deeklead/midori/internal/state"
	"github.com/deeklead/midori/internal/tarot"
)

// DailyFile is the name of the daily card file inside the state directory.
const DailyFile = "daily.json"

// dateLayout is how the stored day is written.
const dateLayout = "2006-01-02"

// Draw is the card of the day.
type Draw struct {
	Card     tarot.Card
	Date     string // YYYY-MM-DD in local time
	Existing bool   // drawn earlier the same day
}

type record struct {
	Date   string `json:"date"`
	CardID string `json:"card_id"`
}

// Store hands out the daily card. It is safe for concurrent use.
type Store struct {
	path   string
	source tarot.Source
	rng    random.Source
	now    func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source that decides the current day.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRNG sets the random source for new draws.
func WithRNG(src random.Source) Option {
	return func(s *Store) { s.rng = src }
}

// DefaultPath returns the daily card file location.
func DefaultPath() string {
	return filepath.Join(state.StateDir(), DailyFile)
}

// NewStore returns a store over path drawing from source.
func NewStore(path string, source tarot.Source, opts ...Option) *Store {
	s := &Store{path: path, source: source, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = random.NewSystem()
	}
	return s
}

// Today returns the card stored for the current day. If there is none, the
// stored day has passed, or the stored id is no longer in the deck, a new
// card is drawn and stored.
func (s *Store) Today(ctx context.Context, tag language.Tag) (Draw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := state.Lock(ctx, s.path)
	if err != nil {
		return Draw{}, err
	}
	defer unlock()

	today := s.now().Format(dateLayout)

	if rec, ok := s.read(); ok && rec.Date == today {
		card, found, err := s.source.GetCard(rec.CardID, tag)
		if err != nil {
			return Draw{}, err
		}
		if found {
			return Draw{Card: card, Date: today, Existing: true}, nil
		}
	}

	cards, err := s.source.GetCards(tag)
	if err != nil {
		return Draw{}, err
	}
	if len(cards) == 0 {
		return Draw{}, fmt.Errorf("drawing daily card: %w", tarot.ErrCardNotFound)
	}
	card := cards[s.rng.IntN(len(cards))]

	data, err := json.Marshal(record{Date: today, CardID: card.ID})
	if err != nil {
		return Draw{}, fmt.Errorf("encoding daily card: %w", err)
	}
	if err := state.WriteFileAtomic(s.path, data); err != nil {
		return Draw{}, fmt.Errorf("writing daily card: %w", err)
	}
	return Draw{Card: card, Date: today}, nil
}

// read returns the stored record. Missing or unreadable files count as no
// record.
func (s *Store) read() (record, bool) {
	data, err := os.ReadFile(s.path) //nolint:gosec // G304: path is constructed internally
	if err != nil {
		return record{}, false
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Date == "" || rec.CardID == "" {
		return record{}, false
	}
	if _, err := time.Parse(dateLayout, rec.Date); err != nil {
		return record{}, false
	}
	return rec, true
}

// Stored reports whether a daily card file exists and whether its record
// parses.
func (s *Store) Stored() (exists, valid bool) {
	if _, err := os.Stat(s.path); err != nil {
		return false, false
	}
	_, valid = s.read()
	return true, valid
}

// Forget removes the stored card so the next call to Today draws again.
func (s *Store) Forget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := state.Lock(ctx, s.path)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing daily card: %w", err)
	}
	return nil
}
