// Package reading implements the reading-flow engine: choosing a spread,
// shuffling and cutting the deck, and filling the spread's positions one
// card at a time (or all at once for a quick reading).
//
// The engine is synchronous and holds no locks. Callers serialize
// operations; the terminal UI does so through its update loop. Operations
// invoked in the wrong phase are silent no-ops and never return errors.
package reading

import (
	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/locale"
	"github.com/deeklead/midori/internal/random"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/tarot"
)

// Engine drives one reading session at a time.
type Engine struct {
	cards    []tarot.Card
	catalog  *spread.Catalog
	rng      random.Source
	tag      language.Tag
	observer func(Session)

	// useReversed is the remembered user preference. It survives
	// SelectSpread and Reset.
	useReversed bool

	session Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithRNG sets the random source used for shuffles and orientation.
func WithRNG(src random.Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithReversed sets the initial reversed-card preference. Default true.
func WithReversed(enabled bool) Option {
	return func(e *Engine) { e.useReversed = enabled }
}

// WithCatalog replaces the built-in spread catalog.
func WithCatalog(c *spread.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithLocale sets the language of instruction and status text.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) { e.tag = tag }
}

// WithObserver registers fn to receive a copy of the session after every
// transition.
func WithObserver(fn func(Session)) Option {
	return func(e *Engine) { e.observer = fn }
}

// New returns an engine over cards, positioned at Preselection with the
// catalog's default spread. cards is copied; its order is the base order
// every shuffle starts from.
func New(cards []tarot.Card, opts ...Option) *Engine {
	e := &Engine{
		cards:       append([]tarot.Card(nil), cards...),
		catalog:     spread.Builtin(),
		tag:         locale.Default(),
		useReversed: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = random.NewSystem()
	}
	def := e.catalog.Default()
	e.session = e.baseSession(def, e.useReversed && def.DefaultUseReversed)
	return e
}

// Session returns a copy of the current session.
func (e *Engine) Session() Session {
	return e.session.Clone()
}

// Spreads returns the spreads available for selection.
func (e *Engine) Spreads() []spread.Definition {
	return e.catalog.All()
}

// Result returns the current final placements in position order.
func (e *Engine) Result() Result {
	return e.session.Result()
}

// Locale returns the language used for prompts.
func (e *Engine) Locale() language.Tag {
	return e.tag
}

// baseSession returns a fresh Preselection session for def with the given
// reversed flag.
func (e *Engine) baseSession(def spread.Definition, useReversed bool) Session {
	return Session{
		Step:        StepPreselection,
		Spread:      def,
		UseReversed: useReversed,
		DrawPile:    append([]tarot.Card(nil), e.cards...),
		Drawn:       map[spread.Slot]Placement{},
		Final:       map[spread.Slot]Placement{},
	}
}

// set replaces the session and notifies the observer.
func (e *Engine) set(s Session) {
	e.session = s
	if e.observer != nil {
		e.observer(s.Clone())
	}
}

// update applies fn to a copy of the session. fn reports whether anything
// changed; unchanged sessions are not republished.
func (e *Engine) update(fn func(s *Session) bool) {
	next := e.session.Clone()
	if fn(&next) {
		e.set(next)
	}
}

// SelectSpread discards all progress and starts over at Preselection with
// the spread for t. Unknown types select the catalog default.
func (e *Engine) SelectSpread(t spread.Type) {
	def := e.catalog.Find(t)
	e.set(e.baseSession(def, e.useReversed && def.DefaultUseReversed))
}

// UpdateQuestion replaces the question text.
func (e *Engine) UpdateQuestion(text string) {
	e.update(func(s *Session) bool {
		s.Question = text
		return true
	})
}

// ApplyReversedPreference remembers the preference and applies it to cards
// drawn from now on. Placed cards keep their orientation.
func (e *Engine) ApplyReversedPreference(enabled bool) {
	e.useReversed = enabled
	e.update(func(s *Session) bool {
		if s.UseReversed == enabled {
			return false
		}
		s.UseReversed = enabled
		return true
	})
}

// StartReading begins a guided reading with a freshly shuffled pile and
// returns the step the session moved to. A spread without positions goes
// straight to ReadingResult.
func (e *Engine) StartReading() Step {
	e.update(func(s *Session) bool {
		s.PendingSlots = s.Spread.Slots()
		s.Drawn = map[spread.Slot]Placement{}
		s.Final = map[spread.Slot]Placement{}
		s.GridRevealed = false
		s.CutInProgress = false
		s.Status = ""
		s.NextInstruction = ""
		if len(s.PendingSlots) == 0 {
			s.PendingSlots = nil
			s.Step = StepReadingResult
			return true
		}
		s.DrawPile = random.Shuffle(e.rng, e.cards)
		s.Step = StepShuffleAndDraw
		return true
	})
	return e.session.Step
}

// TriggerShuffle counts a shuffle gesture. The pile order was fixed by
// StartReading and only a cut changes it.
func (e *Engine) TriggerShuffle() {
	e.update(func(s *Session) bool {
		s.ShuffleCount++
		s.Status = ""
		return true
	})
}

// EnterCutMode marks a cut as in progress.
func (e *Engine) EnterCutMode() {
	e.update(func(s *Session) bool {
		s.CutInProgress = true
		s.Status = ""
		return true
	})
}

// CancelCutMode abandons a cut without touching the pile.
func (e *Engine) CancelCutMode() {
	e.update(func(s *Session) bool {
		s.CutInProgress = false
		s.Status = ""
		return true
	})
}

// ApplyCutChoice cuts the pile at stack (0, 1 or 2; clamped) and ends cut
// mode. It does nothing unless a cut is in progress during the guided draw.
func (e *Engine) ApplyCutChoice(stack int) {
	e.update(func(s *Session) bool {
		if s.Step != StepShuffleAndDraw || !s.CutInProgress {
			return false
		}
		s.CutInProgress = false
		if len(s.DrawPile) > 0 {
			s.DrawPile = Cut(s.DrawPile, stack)
		}
		return true
	})
}

// RevealDrawGrid shows the face-down cards and names the slot the next
// draw will fill.
func (e *Engine) RevealDrawGrid() {
	e.update(func(s *Session) bool {
		s.GridRevealed = true
		s.NextInstruction = instructionFor(s.Spread, len(s.Drawn), e.tag)
		return true
	})
}

// Reset returns to Preselection, keeping the selected spread and the
// reversed preference.
func (e *Engine) Reset() {
	e.set(e.baseSession(e.session.Spread, e.useReversed))
}
