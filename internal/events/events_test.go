package events

import (
	"os"
	"testing"

	"github.com/deeklead/midori/internal/random"
	"github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/tarot"
)

func TestLogAndRecent(t *testing.T) {
	t.Setenv("MIDORI_STATE_DIR", t.TempDir())

	if events, err := Recent(5); err != nil || len(events) != 0 {
		t.Fatalf("Recent() on missing file = %v, %v", events, err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if err := Log(TypeSettingChanged, SettingPayload(key, "1")); err != nil {
			t.Fatalf("Log() failed: %v", err)
		}
	}

	events, err := Recent(2)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Recent(2) = %d events", len(events))
	}
	if events[0].Payload["key"] != "b" || events[1].Payload["key"] != "c" {
		t.Errorf("Recent(2) = %+v, want b then c", events)
	}
	if events[1].Source != "mt" || events[1].Type != TypeSettingChanged || events[1].Timestamp == "" {
		t.Errorf("event = %+v", events[1])
	}
}

func TestSessionObserver_LogsLifecycle(t *testing.T) {
	t.Setenv("MIDORI_STATE_DIR", t.TempDir())

	cards := []tarot.Card{{ID: "major_00"}, {ID: "major_01"}, {ID: "major_02"}}
	e := reading.New(cards, reading.WithRNG(random.New(3)), reading.WithObserver(SessionObserver()))
	e.SelectSpread(spread.TypeOneCard)
	e.UpdateQuestion("today?")
	e.StartReading()
	e.TriggerShuffle()
	e.HandleDrawSelection(cards[1])
	e.Reset()

	events, err := Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{TypeReadingStarted, TypeReadingCompleted, TypeReadingReset}
	if len(events) != len(want) {
		t.Fatalf("logged %d events (%+v), want %d", len(events), events, len(want))
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Errorf("event %d = %s, want %s", i, events[i].Type, typ)
		}
	}

	done := events[1].Payload
	if done["spread"] != "one_card" || done["question"] != "today?" {
		t.Errorf("completed payload = %v", done)
	}
	cardsLogged, ok := done["cards"].([]interface{})
	if !ok || len(cardsLogged) != 1 || cardsLogged[0] != "major_01" {
		t.Errorf("completed cards = %v", done["cards"])
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIDORI_STATE_DIR", dir)

	if valid, invalid, err := Verify(Path()); err != nil || valid != 0 || invalid != 0 {
		t.Fatalf("Verify() on missing log = %d, %d, %v", valid, invalid, err)
	}

	_ = Log(TypeHistoryCleared, nil)
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("{truncated\n{}\n\n")
	_ = f.Close()
	_ = Log(TypeHistoryCleared, nil)

	valid, invalid, err := Verify(Path())
	if err != nil {
		t.Fatal(err)
	}
	if valid != 2 || invalid != 2 {
		t.Errorf("Verify() = %d valid, %d invalid; want 2 and 2", valid, invalid)
	}
}
