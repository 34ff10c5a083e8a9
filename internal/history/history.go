// Package history keeps the most recent finished readings.
//
// Entries are stored newest first in history.json under the state
// directory. The file is guarded by a cross-process lock for every
// read-modify-write, and entries that fail to parse are dropped on load
// rather than failing the whole list.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/state"
)

// MaxEntries is how many readings are kept.
const MaxEntries = 10

// HistoryFile is the name of the history file inside the state directory.
const HistoryFile = "history.json"

// Card is one placed card of a recorded reading.
type Card struct {
	Slot     spread.Slot `json:"slot"`
	CardID   string      `json:"card"`
	Reversed bool        `json:"reversed"`
}

// Entry is a recorded reading.
type Entry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Spread    spread.Type `json:"spread"`
	Question  string      `json:"question"`
	Cards     []Card      `json:"cards"`
}

// Store reads and writes the history file. It is safe for concurrent use.
type Store struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source for new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// DefaultPath returns the history file location.
func DefaultPath() string {
	return filepath.Join(state.StateDir(), HistoryFile)
}

// NewStore returns a store over path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store writes.
func (s *Store) Path() string {
	return s.path
}

// FromResult converts a finished reading into history cards, in position order.
func FromResult(res reading.Result) []Card {
	cards := make([]Card, 0, len(res.Placements))
	for _, p := range res.Placements {
		cards = append(cards, Card{
			Slot:     p.Position.Slot,
			CardID:   p.Placement.Card.ID,
			Reversed: p.Placement.Reversed,
		})
	}
	return cards
}

// Record prepends a reading and trims the list to MaxEntries. A reading
// with no cards is not recorded; the bool reports whether an entry was
// written.
func (s *Store) Record(ctx context.Context, res reading.Result) (Entry, bool, error) {
	cards := FromResult(res)
	if len(cards) == 0 {
		return Entry{}, false, nil
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Spread:    res.Spread,
		Question:  res.Question,
		Cards:     cards,
	}

	err := s.withLock(ctx, func() error {
		entries, err := s.read()
		if err != nil {
			return err
		}
		entries = append([]Entry{entry}, entries...)
		if len(entries) > MaxEntries {
			entries = entries[:MaxEntries]
		}
		return s.write(entries)
	})
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// List returns the recorded readings, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := s.withLock(ctx, func() error {
		var err error
		entries, err = s.read()
		return err
	})
	return entries, err
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing history: %w", err)
		}
		return nil
	})
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := state.Lock(ctx, s.path)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// read loads the file. A missing or unparseable file is an empty history.
func (s *Store) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // G304: path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	entries, _, _ := decode(data)
	return entries, nil
}

// decode returns the usable entries, the number of stored items, and
// whether data was a JSON list at all.
func decode(data []byte) ([]Entry, int, bool) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, false
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			continue
		}
		if e, ok := sanitize(e); ok {
			entries = append(entries, e)
		}
	}
	return entries, len(raw), true
}

// Health describes the history file as stored.
type Health struct {
	Exists  bool
	Valid   int  // entries that load
	Skipped int  // stored entries dropped on load
	Corrupt bool // the file is not a JSON list
}

// Inspect reports on the history file without changing it.
func (s *Store) Inspect(ctx context.Context) (Health, error) {
	var h Health
	err := s.withLock(ctx, func() error {
		data, err := os.ReadFile(s.path) //nolint:gosec // G304: path is constructed internally
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("reading history: %w", err)
		}
		h.Exists = true
		entries, total, ok := decode(data)
		h.Corrupt = !ok
		h.Valid = len(entries)
		h.Skipped = total - len(entries)
		return nil
	})
	return h, err
}

// Repair rewrites the history file keeping only the entries that load, and
// returns how many were kept. A corrupt file becomes an empty history.
func (s *Store) Repair(ctx context.Context) (int, error) {
	var kept int
	err := s.withLock(ctx, func() error {
		entries, err := s.read()
		if err != nil {
			return err
		}
		if len(entries) > MaxEntries {
			entries = entries[:MaxEntries]
		}
		kept = len(entries)
		if entries == nil {
			entries = []Entry{}
		}
		return s.write(entries)
	})
	return kept, err
}

// sanitize drops malformed cards and reports whether the entry is usable.
func sanitize(e Entry) (Entry, bool) {
	if e.ID == "" || e.Timestamp.IsZero() || !spread.Builtin().Has(e.Spread) {
		return Entry{}, false
	}
	cards := e.Cards[:0]
	for _, c := range e.Cards {
		if c.Slot != "" && c.CardID != "" {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		return Entry{}, false
	}
	e.Cards = cards
	return e, true
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := state.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
