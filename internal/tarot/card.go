// Package tarot provides the 78-card deck and its localized text.
package tarot

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCardNotFound is returned when a card id is not part of the deck.
var ErrCardNotFound = errors.New("card not found")

// Card is a single tarot card. Identity is ID; all other fields are
// display text in the language the deck was loaded for.
type Card struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Arcana          string   `json:"arcana"`
	UprightMeaning  string   `json:"upright_meaning"`
	ReversedMeaning string   `json:"reversed_meaning"`
	Description     string   `json:"description"`
	Keywords        []string `json:"keywords,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}

// Meaning returns the upright or reversed meaning.
func (c Card) Meaning(reversed bool) string {
	if reversed {
		return c.ReversedMeaning
	}
	return c.UprightMeaning
}

// Category groups cards by suit.
type Category string

const (
	CategoryMajorArcana Category = "major_arcana"
	CategoryWands       Category = "wands"
	CategoryCups        Category = "cups"
	CategorySwords      Category = "swords"
	CategoryPentacles   Category = "pentacles"
)

// Categories returns every category in deck order.
func Categories() []Category {
	return []Category{CategoryMajorArcana, CategoryWands, CategoryCups, CategorySwords, CategoryPentacles}
}

var titleCaser = cases.Title(language.English)

// String returns a display label ("Major Arcana", "Wands").
func (c Category) String() string {
	return titleCaser.String(strings.ReplaceAll(string(c), "_", " "))
}

// ParseCategory accepts a category name in any case, with spaces or dashes.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "major", "major_arcana":
		return CategoryMajorArcana, true
	case "wands":
		return CategoryWands, true
	case "cups":
		return CategoryCups, true
	case "swords":
		return CategorySwords, true
	case "pentacles", "pents", "coins":
		return CategoryPentacles, true
	}
	return "", false
}

// Category derives the suit from the id prefix, falling back to the arcana
// text for ids that carry no known prefix.
func (c Card) Category() Category {
	id := strings.ToLower(c.ID)
	switch {
	case strings.HasPrefix(id, "major_"):
		return CategoryMajorArcana
	case strings.HasPrefix(id, "wands_"):
		return CategoryWands
	case strings.HasPrefix(id, "cups_"):
		return CategoryCups
	case strings.HasPrefix(id, "swords_"):
		return CategorySwords
	case strings.HasPrefix(id, "pentacles_"), strings.HasPrefix(id, "pents_"):
		return CategoryPentacles
	}

	arcana := strings.ToLower(c.Arcana)
	switch {
	case strings.Contains(arcana, "wand"):
		return CategoryWands
	case strings.Contains(arcana, "cup"):
		return CategoryCups
	case strings.Contains(arcana, "sword"):
		return CategorySwords
	case strings.Contains(arcana, "pentacle"), strings.Contains(arcana, "coin"):
		return CategoryPentacles
	default:
		return CategoryMajorArcana
	}
}

// FilterCategory returns the cards in cat, preserving order.
func FilterCategory(cards []Card, cat Category) []Card {
	var out []Card
	for _, c := range cards {
		if c.Category() == cat {
			out = append(out, c)
		}
	}
	return out
}
