package reading

import (
	"github.com/deeklead/midori/internal/random"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/tarot"
)

// orientation flips a coin only when reversed cards are enabled.
func (e *Engine) orientation(enabled bool) bool {
	return enabled && e.rng.Bool()
}

// HandleDrawSelection places card in the next pending slot and reports
// whether that filled the last one. Slots fill in position order no matter
// where card sat in the pile.
//
// It does nothing when no guided reading is in progress, when every slot
// is already filled, or when card has already been drawn.
func (e *Engine) HandleDrawSelection(card tarot.Card) bool {
	completed := false
	e.update(func(s *Session) bool {
		if len(s.PendingSlots) == 0 || s.Step != StepShuffleAndDraw {
			return false
		}
		if s.IsDrawn(card.ID) {
			return false
		}
		next := len(s.Drawn)
		if next >= len(s.PendingSlots) {
			return false
		}

		slot := s.PendingSlots[next]
		p := Placement{Card: card, Reversed: e.orientation(s.UseReversed)}
		s.Drawn[slot] = p
		s.Final[slot] = p

		s.Status = ""
		if pos, ok := s.Spread.Position(slot); ok {
			s.Status = statusText(e.tag, pos.Title.Resolve(e.tag))
		}

		completed = len(s.Drawn) == len(s.PendingSlots)
		if completed {
			s.NextInstruction = ""
			s.Step = StepReadingResult
		} else {
			s.NextInstruction = instructionFor(s.Spread, next+1, e.tag)
		}
		return true
	})
	return completed
}

// StartQuickReading deals the whole spread at once from a fresh shuffle and
// goes straight to ReadingResult. The guided-draw fields stay empty.
func (e *Engine) StartQuickReading() {
	e.update(func(s *Session) bool {
		slots := s.Spread.Slots()
		s.PendingSlots = nil
		s.Drawn = map[spread.Slot]Placement{}
		s.Final = map[spread.Slot]Placement{}
		s.Step = StepReadingResult
		s.GridRevealed = false
		s.CutInProgress = false
		s.Status = ""
		s.NextInstruction = ""
		if len(slots) == 0 {
			return true
		}

		pile := random.Shuffle(e.rng, e.cards)
		for i, slot := range slots {
			if i >= len(pile) {
				break
			}
			s.Final[slot] = Placement{Card: pile[i], Reversed: e.orientation(s.UseReversed)}
		}
		s.DrawPile = pile
		return true
	})
}

// Deal runs a complete guided reading without user interaction: it starts
// the reading, applies an optional cut (cut < 0 skips it), reveals the grid
// and draws the cards at the given pile indices in order. Indices that are
// out of range or already drawn are skipped; once picks run out the next
// undrawn cards from the top of the pile fill the remaining slots.
func (e *Engine) Deal(cut int, picks []int) Result {
	if e.StartReading() != StepShuffleAndDraw {
		return e.Result()
	}
	if cut >= 0 {
		e.EnterCutMode()
		e.ApplyCutChoice(cut)
	}
	e.RevealDrawGrid()

	pile := e.session.DrawPile
	for _, idx := range picks {
		if idx < 0 || idx >= len(pile) {
			continue
		}
		if e.HandleDrawSelection(pile[idx]) {
			return e.Result()
		}
	}
	for _, card := range pile {
		if e.HandleDrawSelection(card) {
			break
		}
	}
	return e.Result()
}
