package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	flow "github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/style"
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readingCard is the JSON form of one placed card.
type readingCard struct {
	Slot     string `json:"slot"`
	Position string `json:"position"`
	Order    int    `json:"order"`
	Card     string `json:"card"`
	Name     string `json:"name"`
	Reversed bool   `json:"reversed"`
	Meaning  string `json:"meaning"`
}

// readingOutput is the JSON form of a finished reading.
type readingOutput struct {
	ID       string        `json:"id,omitempty"`
	Spread   string        `json:"spread"`
	Question string        `json:"question,omitempty"`
	Cards    []readingCard `json:"cards"`
}

func newReadingOutput(res flow.Result, tag language.Tag) readingOutput {
	out := readingOutput{
		Spread:   string(res.Spread),
		Question: res.Question,
		Cards:    make([]readingCard, 0, len(res.Placements)),
	}
	for _, sp := range res.Placements {
		out.Cards = append(out.Cards, readingCard{
			Slot:     string(sp.Position.Slot),
			Position: sp.Position.Title.Resolve(tag),
			Order:    sp.Position.Order,
			Card:     sp.Placement.Card.ID,
			Name:     sp.Placement.Card.Name,
			Reversed: sp.Placement.Reversed,
			Meaning:  sp.Placement.Card.Meaning(sp.Placement.Reversed),
		})
	}
	return out
}

// printReading renders a finished reading for the terminal.
func printReading(w io.Writer, title string, res flow.Result, tag language.Tag) {
	fmt.Fprintf(w, "%s\n", style.Bold.Render(title))
	if res.Question != "" {
		fmt.Fprintf(w, "%s\n", style.Dim.Render("“"+res.Question+"”"))
	}
	fmt.Fprintln(w)

	if len(res.Placements) == 0 {
		fmt.Fprintln(w, style.Dim.Render("This spread has no positions."))
		return
	}

	for _, sp := range res.Placements {
		card := sp.Placement.Card
		name := style.Bold.Render(card.Name)
		if sp.Placement.Reversed {
			name += " " + style.Warning.Render("(reversed)")
		}
		fmt.Fprintf(w, "  %d. %s\n", sp.Position.Order, style.Accent.Render(sp.Position.Title.Resolve(tag)))
		fmt.Fprintf(w, "     %s\n", name)
		fmt.Fprintf(w, "     %s\n", card.Meaning(sp.Placement.Reversed))
		if len(card.Keywords) > 0 {
			fmt.Fprintf(w, "     %s\n", style.Dim.Render(strings.Join(card.Keywords, " · ")))
		}
	}
}
