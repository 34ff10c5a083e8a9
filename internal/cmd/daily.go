package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/daily"
	"github.com/deeklead/midori/internal/events"
	"github.com/deeklead/midori/internal/style"
	"github.com/deeklead/midori/internal/tarot"
)

var dailyJSON bool

var dailyCmd = &cobra.Command{
	Use:     "daily",
	GroupID: GroupReading,
	Short:   "Show today's card",
	Long: `Draw the card of the day.

The first call on a calendar day draws a card; later calls that day show
the same card.

Examples:
  mt daily
  mt daily --json`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func init() {
	dailyCmd.Flags().BoolVar(&dailyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(dailyCmd)
}

type dailyOutput struct {
	Date     string     `json:"date"`
	Existing bool       `json:"existing"`
	Card     tarot.Card `json:"card"`
	Reminder string     `json:"reminder,omitempty"`
}

func runDaily(cmd *cobra.Command, args []string) error {
	store := daily.NewStore(daily.DefaultPath(), tarot.NewRepository())
	draw, err := store.Today(cmd.Context(), locale())
	if err != nil {
		return fmt.Errorf("drawing daily card: %w", err)
	}
	if !draw.Existing {
		_ = events.Log(events.TypeDailyDrawn, events.DailyPayload(draw.Card.ID, draw.Date, draw.Existing))
		logger().Info("daily card drawn", "card", draw.Card.ID, "date", draw.Date)
	}

	out := dailyOutput{Date: draw.Date, Existing: draw.Existing, Card: draw.Card}
	if s := settings(); s.Daily.Enabled {
		out.Reminder = s.DailyTime(time.Now()).Format("15:04")
	}

	if dailyJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s  %s\n\n", style.Bold.Render("Card of the day"), style.Dim.Render(draw.Date))
	fmt.Fprintf(w, "  %s\n", style.Accent.Render(draw.Card.Name))
	fmt.Fprintf(w, "  %s\n", draw.Card.UprightMeaning)
	if len(draw.Card.Keywords) > 0 {
		fmt.Fprintf(w, "  %s\n", style.Dim.Render(strings.Join(draw.Card.Keywords, " · ")))
	}
	if out.Reminder != "" {
		fmt.Fprintf(w, "\n%s Daily reminder at %s\n", style.ArrowPrefix, out.Reminder)
	}
	return nil
}
