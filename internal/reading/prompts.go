package reading

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/locale"
	"github.com/deeklead/midori/internal/spread"
)

// Position titles fall back to Korean for languages without their own
// text, so the surrounding sentence does too.

func instructionText(tag language.Tag, title string) string {
	if locale.Lang(tag) == "en" {
		return fmt.Sprintf("Select the %s card.", title)
	}
	return fmt.Sprintf("%s 카드를 선택하세요.", title)
}

func statusText(tag language.Tag, title string) string {
	if locale.Lang(tag) == "en" {
		return fmt.Sprintf("You picked the %s card.", title)
	}
	return fmt.Sprintf("%s 카드를 선택했습니다.", title)
}

// instructionFor names the position at index in display order, or returns
// "" when index is past the last position.
func instructionFor(def spread.Definition, index int, tag language.Tag) string {
	positions := def.OrderedPositions()
	if index < 0 || index >= len(positions) {
		return ""
	}
	return instructionText(tag, positions[index].Title.Resolve(tag))
}
