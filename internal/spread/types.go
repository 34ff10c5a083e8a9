// Package spread defines the tarot spread layouts and the catalog that serves them.
//
// A spread is an ordered set of named positions laid out on a grid. The
// catalog is built once and never mutated; lookups always succeed.
package spread

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/locale"
)

// Type identifies a spread.
type Type string

const (
	// TypeUnknown is the zero value. It is never registered.
	TypeUnknown Type = ""

	TypeOneCard           Type = "one_card"
	TypeEnergyAdvice      Type = "energy_advice"
	TypePastPresentFuture Type = "past_present_future"
	TypePathForward       Type = "path_forward"
	TypeCelticCross       Type = "celtic_cross"
)

// Slot names one position within a spread. It is used only as a map key.
type Slot string

// Text is a display string with per-language variants.
// Korean is the canonical variant and the fallback for missing translations.
type Text struct {
	KO string
	EN string
	JA string
	TH string
}

// Resolve returns the variant for tag.
func (t Text) Resolve(tag language.Tag) string {
	switch locale.Lang(tag) {
	case "en":
		if t.EN != "" {
			return t.EN
		}
	case "ja":
		if t.JA != "" {
			return t.JA
		}
	case "th":
		if t.TH != "" {
			return t.TH
		}
	}
	return t.KO
}

// Placement is where a position sits on the layout grid.
type Placement struct {
	Column   int
	Row      int
	Rotation float64 // degrees
	ZIndex   int
}

// Layout is the grid a spread is drawn on.
type Layout struct {
	Columns int
	Rows    int
}

// Position binds a slot to its presentation metadata.
type Position struct {
	Slot        Slot
	Title       Text
	Description Text
	Order       int // 1-based
	Placement   Placement
}

// Definition is a complete spread.
type Definition struct {
	Type                Type
	Title               Text
	Description         Text
	QuestionPlaceholder Text
	Layout              Layout
	Positions           []Position
	DefaultUseReversed  bool
}

// Validation errors returned by Definition.Validate.
var (
	ErrNoPositions   = errors.New("spread has no positions")
	ErrDuplicateSlot = errors.New("duplicate slot")
	ErrOrderGap      = errors.New("position orders are not contiguous from 1")
	ErrOutsideLayout = errors.New("placement outside layout")
)

// OrderedPositions returns the positions sorted by Order.
func (d Definition) OrderedPositions() []Position {
	out := make([]Position, len(d.Positions))
	copy(out, d.Positions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Slots returns every slot in Order sequence.
func (d Definition) Slots() []Slot {
	positions := d.OrderedPositions()
	slots := make([]Slot, len(positions))
	for i, p := range positions {
		slots[i] = p.Slot
	}
	return slots
}

// Position looks up the position for slot.
func (d Definition) Position(slot Slot) (Position, bool) {
	for _, p := range d.Positions {
		if p.Slot == slot {
			return p, true
		}
	}
	return Position{}, false
}

// Size is the number of positions.
func (d Definition) Size() int {
	return len(d.Positions)
}

// Validate checks the structural invariants of a definition.
func (d Definition) Validate() error {
	if len(d.Positions) == 0 {
		return fmt.Errorf("%s: %w", d.Type, ErrNoPositions)
	}

	seen := make(map[Slot]bool, len(d.Positions))
	for i, p := range d.OrderedPositions() {
		if seen[p.Slot] {
			return fmt.Errorf("%s: %w: %s", d.Type, ErrDuplicateSlot, p.Slot)
		}
		seen[p.Slot] = true

		if p.Order != i+1 {
			return fmt.Errorf("%s: %w (slot %s has order %d)", d.Type, ErrOrderGap, p.Slot, p.Order)
		}

		pl := p.Placement
		if pl.Column < 0 || pl.Row < 0 || pl.Column >= d.Layout.Columns || pl.Row >= d.Layout.Rows {
			return fmt.Errorf("%s: %w: %s at (%d,%d) in %dx%d",
				d.Type, ErrOutsideLayout, p.Slot, pl.Column, pl.Row, d.Layout.Columns, d.Layout.Rows)
		}
	}
	return nil
}
