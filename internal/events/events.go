// Package events records midori's activity log.
//
// Events are appended as JSON lines to events.jsonl in the state
// directory. Logging is best-effort: callers ignore the returned error
// unless they are reporting on the log itself.
package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/state"
)

// Event is one activity log line.
type Event struct {
	Timestamp string                 `json:"ts"`
	Source    string                 `json:"source"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Event types.
const (
	TypeReadingStarted   = "reading_started"
	TypeReadingCompleted = "reading_completed"
	TypeReadingReset     = "reading_reset"
	TypeDailyDrawn       = "daily_drawn"
	TypeHistoryCleared   = "history_cleared"
	TypeSettingChanged   = "setting_changed"
)

// EventsFile is the name of the activity log.
const EventsFile = "events.jsonl"

// mutex protects concurrent writes to the events file.
var mutex sync.Mutex

// Path returns the activity log location.
func Path() string {
	return filepath.Join(state.StateDir(), EventsFile)
}

// Log appends an event to the activity log.
func Log(eventType string, payload map[string]interface{}) error {
	event := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    "mt",
		Type:      eventType,
		Payload:   payload,
	}
	return write(Path(), event)
}

func write(path string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	data = append(data, '\n')

	mutex.Lock()
	defer mutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating events directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: events file is non-sensitive operational data
	if err != nil {
		return fmt.Errorf("opening events file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Recent returns up to n of the latest events, oldest first. Lines that
// do not parse are skipped.
func Recent(n int) ([]Event, error) {
	f, err := os.Open(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening events file: %w", err)
	}
	defer f.Close()

	var all []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		all = append(all, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events file: %w", err)
	}
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

// Verify counts the lines of the activity log at path that parse and those
// that do not. A missing log has neither.
func Verify(path string) (valid, invalid int, err error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the activity log
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("opening events file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		if len(scanner.Bytes()) == 0 {
			continue
		}
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil || e.Type == "" {
			invalid++
			continue
		}
		valid++
	}
	if err := scanner.Err(); err != nil {
		return valid, invalid, fmt.Errorf("reading events file: %w", err)
	}
	return valid, invalid, nil
}

// Payload helpers for common event structures.

// ReadingPayload creates a payload for reading lifecycle events.
func ReadingPayload(s reading.Session) map[string]interface{} {
	p := map[string]interface{}{
		"spread": string(s.Spread.Type),
		"step":   s.Step.String(),
	}
	if s.Question != "" {
		p["question"] = s.Question
	}
	if len(s.Final) > 0 {
		cards := make([]string, 0, len(s.Final))
		for _, sp := range s.Result().Placements {
			cards = append(cards, sp.Placement.Card.ID)
		}
		p["cards"] = cards
	}
	return p
}

// DailyPayload creates a payload for daily card events.
func DailyPayload(cardID, date string, existing bool) map[string]interface{} {
	return map[string]interface{}{
		"card":     cardID,
		"date":     date,
		"existing": existing,
	}
}

// SettingPayload creates a payload for settings changes.
func SettingPayload(key, value string) map[string]interface{} {
	return map[string]interface{}{
		"key":   key,
		"value": value,
	}
}

// SessionObserver returns an engine observer that logs phase changes:
// the start of a guided reading, its completion and a return to
// preselection after progress.
func SessionObserver() func(reading.Session) {
	prev := reading.StepPreselection
	return func(s reading.Session) {
		defer func() { prev = s.Step }()
		if s.Step == prev {
			return
		}
		switch s.Step {
		case reading.StepShuffleAndDraw:
			_ = Log(TypeReadingStarted, ReadingPayload(s))
		case reading.StepReadingResult:
			_ = Log(TypeReadingCompleted, ReadingPayload(s))
		case reading.StepPreselection:
			_ = Log(TypeReadingReset, ReadingPayload(s))
		}
	}
}
