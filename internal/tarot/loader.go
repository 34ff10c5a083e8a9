package tarot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/locale"
)

//go:embed data/tarot_data.json
var deckData []byte

// rawCard is one entry of the deck file. Localized variants live under
// "<key>_<lang>" and are looked up dynamically.
type rawCard map[string]any

func (r rawCard) str(key string) string {
	if v, ok := r[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func (r rawCard) list(key string) ([]string, bool) {
	arr, ok := r[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func (r rawCard) localized(key, lang string) string {
	if v := r.str(key + "_" + lang); v != "" {
		return v
	}
	return r.str(key)
}

func (r rawCard) localizedKeywords(lang string) []string {
	if kw, ok := r.list("keywords_" + lang); ok {
		return kw
	}
	kw, _ := r.list("keywords")
	return kw
}

// Decode parses a deck file and resolves every card's text for tag.
//
// Missing fields fall back: upright meaning to "meaning", reversed meaning
// to a generic shadow reading of the card name, description to the upright
// meaning.
func Decode(data []byte, tag language.Tag) ([]Card, error) {
	var raw []rawCard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	lang := locale.Lang(tag)
	cards := make([]Card, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		id := item.str("id")
		if id == "" {
			return nil, fmt.Errorf("parsing deck: card %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("parsing deck: duplicate card id %q", id)
		}
		seen[id] = true

		name := item.localized("name", lang)
		upright := item.localized("uprightMeaning", lang)
		if upright == "" {
			upright = item.str("meaning")
		}
		reversed := item.localized("reversedMeaning", lang)
		if reversed == "" {
			reversed = "Blocked energy, delays, or the shadow of " + name
		}
		description := item.localized("description", lang)
		if description == "" {
			description = upright
		}

		cards = append(cards, Card{
			ID:              id,
			Name:            name,
			Arcana:          item.localized("arcana", lang),
			UprightMeaning:  upright,
			ReversedMeaning: reversed,
			Description:     description,
			Keywords:        item.localizedKeywords(lang),
			ImageURL:        item.str("imageUrl"),
		})
	}
	return cards, nil
}
