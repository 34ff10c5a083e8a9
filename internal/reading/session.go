package reading

import (
	"maps"

	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/tarot"
)

// Step is the phase of a reading session.
type Step int

const (
	// StepPreselection is the initial phase: choosing a spread and question.
	StepPreselection Step = iota
	// StepShuffleAndDraw is the guided draw.
	StepShuffleAndDraw
	// StepReadingResult is terminal until the next SelectSpread or Reset.
	StepReadingResult
)

func (s Step) String() string {
	switch s {
	case StepPreselection:
		return "preselection"
	case StepShuffleAndDraw:
		return "shuffle_and_draw"
	case StepReadingResult:
		return "reading_result"
	default:
		return "unknown"
	}
}

// Placement is a drawn card with its orientation.
type Placement struct {
	Card     tarot.Card `json:"card"`
	Reversed bool       `json:"reversed"`
}

// Session is a snapshot of a reading. The engine replaces its session on
// every transition; a Session handed out by the engine is never mutated
// afterwards.
type Session struct {
	Step     Step
	Spread   spread.Definition
	Question string

	// UseReversed gates the orientation coin flip for cards drawn from now on.
	UseReversed bool

	// ShuffleCount counts decorative shuffles. It never affects DrawPile.
	ShuffleCount int

	DrawPile     []tarot.Card
	PendingSlots []spread.Slot
	Drawn        map[spread.Slot]Placement
	Final        map[spread.Slot]Placement

	GridRevealed  bool
	CutInProgress bool

	// Status is the message for the last successful draw, if any.
	Status string
	// NextInstruction names the slot the next draw will fill. It is empty
	// outside the guided draw and once the last slot is filled.
	NextInstruction string
}

// Clone returns a deep copy of s. Card values are shared; they are treated
// as immutable.
func (s Session) Clone() Session {
	out := s
	out.DrawPile = append([]tarot.Card(nil), s.DrawPile...)
	out.PendingSlots = append([]spread.Slot(nil), s.PendingSlots...)
	out.Drawn = maps.Clone(s.Drawn)
	out.Final = maps.Clone(s.Final)
	if out.Drawn == nil {
		out.Drawn = map[spread.Slot]Placement{}
	}
	if out.Final == nil {
		out.Final = map[spread.Slot]Placement{}
	}
	return out
}

// Done reports whether the reading has reached its result.
func (s Session) Done() bool {
	return s.Step == StepReadingResult
}

// Remaining is the number of slots still to be drawn in a guided reading.
func (s Session) Remaining() int {
	return max(0, len(s.PendingSlots)-len(s.Drawn))
}

// IsDrawn reports whether the card with id has already been placed.
func (s Session) IsDrawn(id string) bool {
	for _, p := range s.Drawn {
		if p.Card.ID == id {
			return true
		}
	}
	return false
}

// SlotPlacement is one filled position of a finished reading.
type SlotPlacement struct {
	Position  spread.Position
	Placement Placement
}

// Result is what a finished reading hands to its caller.
type Result struct {
	Spread     spread.Type
	Question   string
	Placements []SlotPlacement // in position order
}

// Result returns the final placements in position order. Slots without a
// card are omitted.
func (s Session) Result() Result {
	r := Result{Spread: s.Spread.Type, Question: s.Question}
	for _, pos := range s.Spread.OrderedPositions() {
		if p, ok := s.Final[pos.Slot]; ok {
			r.Placements = append(r.Placements, SlotPlacement{Position: pos, Placement: p})
		}
	}
	return r
}
