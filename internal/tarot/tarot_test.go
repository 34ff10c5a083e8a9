package tarot

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestRepository_EmbeddedDeck(t *testing.T) {
	repo := NewRepository()
	cards, err := repo.GetCards(language.English)
	if err != nil {
		t.Fatalf("GetCards() failed: %v", err)
	}
	if len(cards) != 78 {
		t.Fatalf("deck has %d cards, want 78", len(cards))
	}
	if cards[0].ID != "major_00" || cards[0].Name != "The Fool" {
		t.Errorf("first card = %s %q, want major_00 The Fool", cards[0].ID, cards[0].Name)
	}

	counts := make(map[Category]int)
	for _, c := range cards {
		counts[c.Category()]++
		if c.UprightMeaning == "" || c.ReversedMeaning == "" || c.Description == "" {
			t.Errorf("%s has empty text: %+v", c.ID, c)
		}
	}
	want := map[Category]int{
		CategoryMajorArcana: 22,
		CategoryWands:       14,
		CategoryCups:        14,
		CategorySwords:      14,
		CategoryPentacles:   14,
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("%s has %d cards, want %d", cat, counts[cat], n)
		}
	}
}

func TestRepository_StableOrder(t *testing.T) {
	repo := NewRepository()
	a, _ := repo.GetCards(language.English)
	b, _ := repo.GetCards(language.Korean)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("order differs at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestRepository_Localized(t *testing.T) {
	repo := NewRepository()
	fool, ok, err := repo.GetCard("major_00", language.Korean)
	if err != nil || !ok {
		t.Fatalf("GetCard(major_00) = %v, %v", ok, err)
	}
	if fool.Name != "바보" {
		t.Errorf("Korean name = %q, want 바보", fool.Name)
	}
	found := false
	for _, kw := range fool.Keywords {
		if kw == "시작" {
			found = true
		}
	}
	if !found {
		t.Errorf("Korean keywords = %v, want to contain 시작", fool.Keywords)
	}

	// No Japanese variants in the data: base keys are used.
	fool, _, _ = repo.GetCard("major_00", language.Japanese)
	if fool.Name != "The Fool" {
		t.Errorf("Japanese name = %q, want base name", fool.Name)
	}
}

func TestRepository_ReturnsCopy(t *testing.T) {
	repo := NewRepository()
	cards, _ := repo.GetCards(language.English)
	cards[0].Name = "changed"
	again, _ := repo.GetCards(language.English)
	if again[0].Name != "The Fool" {
		t.Error("mutating GetCards result changed the cache")
	}
}

func TestGetCard_Unknown(t *testing.T) {
	repo := NewRepository()
	if _, ok, err := repo.GetCard("major_99", language.English); ok || err != nil {
		t.Errorf("GetCard(unknown) = %v, %v; want false, nil", ok, err)
	}
	if _, err := Lookup(repo, "major_99", language.English); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("Lookup(unknown) = %v, want ErrCardNotFound", err)
	}
}

func TestDecode_Fallbacks(t *testing.T) {
	data := []byte(`[
		{"id": "x_1", "name": "Plain", "arcana": "Coins", "meaning": "old meaning"},
		{"id": "x_2", "name": "Full", "name_ko": "풀", "uprightMeaning": "up", "uprightMeaning_ko": "위",
		 "reversedMeaning": "down", "description": "desc", "keywords": ["a"], "keywords_ko": ["가"]}
	]`)

	cards, err := Decode(data, language.English)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	plain := cards[0]
	if plain.UprightMeaning != "old meaning" {
		t.Errorf("upright = %q, want fallback to meaning", plain.UprightMeaning)
	}
	if plain.ReversedMeaning != "Blocked energy, delays, or the shadow of Plain" {
		t.Errorf("reversed = %q", plain.ReversedMeaning)
	}
	if plain.Description != "old meaning" {
		t.Errorf("description = %q, want upright fallback", plain.Description)
	}
	if plain.Category() != CategoryPentacles {
		t.Errorf("category = %s, want pentacles from arcana text", plain.Category())
	}

	ko, err := Decode(data, language.Korean)
	if err != nil {
		t.Fatalf("Decode(ko) failed: %v", err)
	}
	if ko[1].Name != "풀" || ko[1].UprightMeaning != "위" || ko[1].Keywords[0] != "가" {
		t.Errorf("Korean card = %+v", ko[1])
	}
	if ko[1].ReversedMeaning != "down" {
		t.Errorf("Korean reversed = %q, want base value", ko[1].ReversedMeaning)
	}
	if !strings.HasSuffix(ko[0].ReversedMeaning, "Plain") {
		t.Errorf("fallback reversed meaning should use the resolved name: %q", ko[0].ReversedMeaning)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"not json":     `{`,
		"missing id":   `[{"name": "x"}]`,
		"duplicate id": `[{"id": "a"}, {"id": "a"}]`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(data), language.English); err == nil {
				t.Error("Decode() should fail")
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		id, arcana string
		want       Category
	}{
		{"major_00", "", CategoryMajorArcana},
		{"wands_01", "", CategoryWands},
		{"CUPS_02", "", CategoryCups},
		{"swords_03", "", CategorySwords},
		{"pentacles_04", "", CategoryPentacles},
		{"pents_05", "", CategoryPentacles},
		{"unknown", "Coins", CategoryPentacles},
		{"unknown", "Suit of Wands", CategoryWands},
		{"unknown", "Cups", CategoryCups},
		{"unknown", "Swords", CategorySwords},
		{"unknown", "Something", CategoryMajorArcana},
	}
	for _, tt := range tests {
		c := Card{ID: tt.id, Arcana: tt.arcana}
		if got := c.Category(); got != tt.want {
			t.Errorf("Card{%q, %q}.Category() = %s, want %s", tt.id, tt.arcana, got, tt.want)
		}
	}
}

func TestCategory_StringAndParse(t *testing.T) {
	if got := CategoryMajorArcana.String(); got != "Major Arcana" {
		t.Errorf("String() = %q", got)
	}
	for in, want := range map[string]Category{"major": CategoryMajorArcana, "Major Arcana": CategoryMajorArcana, "coins": CategoryPentacles, "Cups": CategoryCups} {
		if got, ok := ParseCategory(in); !ok || got != want {
			t.Errorf("ParseCategory(%q) = %s, %v", in, got, ok)
		}
	}
	if _, ok := ParseCategory("stars"); ok {
		t.Error("ParseCategory(stars) should fail")
	}
}

func TestFilterCategory(t *testing.T) {
	cards, _ := NewRepository().GetCards(language.English)
	cups := FilterCategory(cards, CategoryCups)
	if len(cups) != 14 || cups[0].ID != "cups_01" {
		t.Errorf("FilterCategory(cups) = %d cards starting %v", len(cups), cups)
	}
}
