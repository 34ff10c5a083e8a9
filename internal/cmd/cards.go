package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/style"
	"github.com/deeklead/midori/internal/tarot"
)

var (
	cardsCategory string
	cardsJSON     bool
)

var cardsCmd = &cobra.Command{
	Use:     "cards [id]",
	GroupID: GroupCards,
	Short:   "Browse the deck",
	Long: `List the 78 cards of the deck, or show one card in full.

Categories: major_arcana, wands, cups, swords, pentacles.

Examples:
  mt cards
  mt cards --category cups
  mt cards major_00`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCards,
}

func init() {
	cardsCmd.Flags().StringVarP(&cardsCategory, "category", "c", "", "Only list cards of this category")
	cardsCmd.Flags().BoolVar(&cardsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(cardsCmd)
}

func runCards(cmd *cobra.Command, args []string) error {
	repo := tarot.NewRepository()
	tag := locale()

	if len(args) == 1 {
		card, err := tarot.Lookup(repo, args[0], tag)
		if errors.Is(err, tarot.ErrCardNotFound) {
			return fmt.Errorf("no card %q (run 'mt cards' to list them)", args[0])
		}
		if err != nil {
			return err
		}
		if cardsJSON {
			return writeJSON(cmd.OutOrStdout(), card)
		}
		return showCard(cmd, card)
	}

	cards, err := repo.GetCards(tag)
	if err != nil {
		return fmt.Errorf("loading deck: %w", err)
	}
	if cardsCategory != "" {
		cat, ok := tarot.ParseCategory(cardsCategory)
		if !ok {
			return fmt.Errorf("unknown category %q", cardsCategory)
		}
		cards = tarot.FilterCategory(cards, cat)
	}

	if cardsJSON {
		return writeJSON(cmd.OutOrStdout(), cards)
	}

	out := cmd.OutOrStdout()
	current := tarot.Category("")
	for _, c := range cards {
		if cat := c.Category(); cat != current {
			if current != "" {
				fmt.Fprintln(out)
			}
			current = cat
			fmt.Fprintf(out, "%s\n", style.Bold.Render(cat.String()))
		}
		fmt.Fprintf(out, "  %-14s %s\n", style.Dim.Render(c.ID), c.Name)
	}
	return nil
}

// cardMarkdown formats a card for glamour.
func cardMarkdown(c tarot.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	fmt.Fprintf(&b, "*%s* · `%s`\n\n", c.Category(), c.ID)
	if len(c.Keywords) > 0 {
		fmt.Fprintf(&b, "**%s**\n\n", strings.Join(c.Keywords, " · "))
	}
	fmt.Fprintf(&b, "## Upright\n\n%s\n\n", c.UprightMeaning)
	fmt.Fprintf(&b, "## Reversed\n\n%s\n\n", c.ReversedMeaning)
	if c.Description != "" && c.Description != c.UprightMeaning {
		fmt.Fprintf(&b, "## About\n\n%s\n", c.Description)
	}
	return b.String()
}

// showCard renders one card, as markdown in a terminal and as plain text
// otherwise.
func showCard(cmd *cobra.Command, c tarot.Card) error {
	md := cardMarkdown(c)
	out := cmd.OutOrStdout()

	if f, ok := out.(*os.File); !ok || !style.IsTerminal(f) {
		_, err := fmt.Fprint(out, md)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering card: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
