package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/events"
	"github.com/deeklead/midori/internal/history"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/style"
	"github.com/deeklead/midori/internal/tarot"
)

var (
	historyJSON    bool
	historyLogN    int
	historyLogJSON bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	GroupID: GroupReading,
	Short:   "Show recent readings",
	Long: fmt.Sprintf(`Show the most recent readings, newest first.

Up to %d readings are kept.

Examples:
  mt history
  mt history --json
  mt history clear
  mt history log -n 5`, history.MaxEntries),
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved reading",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the activity log",
	Long: `Show the latest activity log events, oldest first.

Readings, daily draws, cleared history and changed settings are logged.`,
	Args: cobra.NoArgs,
	RunE: runHistoryLog,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyLogCmd.Flags().IntVarP(&historyLogN, "number", "n", 20, "Number of events to show (0 for all)")
	historyLogCmd.Flags().BoolVar(&historyLogJSON, "json", false, "Output as JSON")
	historyCmd.AddCommand(historyClearCmd, historyLogCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return requireSubcommand(cmd, args)
	}

	entries, err := history.NewStore(history.DefaultPath()).List(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if historyJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No readings yet.")
		fmt.Fprintln(out, "Start one with: mt read")
		return nil
	}

	tag := locale()
	repo := tarot.NewRepository()
	catalog := spread.Builtin()

	fmt.Fprintf(out, "%s\n\n", style.Bold.Render("Recent readings"))
	for i, e := range entries {
		def := catalog.Find(e.Spread)
		title := string(e.Spread)
		if def.Type == e.Spread {
			title = def.Title.Resolve(tag)
		}
		fmt.Fprintf(out, "  %d. %s  %s", i+1, style.Dim.Render(e.Timestamp.Local().Format("2006-01-02 15:04")), title)
		if e.Question != "" {
			fmt.Fprintf(out, "  %s", style.Dim.Render("“"+e.Question+"”"))
		}
		fmt.Fprintln(out)

		parts := make([]string, 0, len(e.Cards))
		for _, c := range e.Cards {
			name := c.CardID
			if card, ok, err := repo.GetCard(c.CardID, tag); err == nil && ok {
				name = card.Name
			}
			if c.Reversed {
				name += " ↓"
			}
			if pos, ok := def.Position(c.Slot); ok {
				name = pos.Title.Resolve(tag) + ": " + name
			}
			parts = append(parts, name)
		}
		fmt.Fprintf(out, "     %s\n", strings.Join(parts, style.Dim.Render(" · ")))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := history.NewStore(history.DefaultPath()).Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	_ = events.Log(events.TypeHistoryCleared, nil)
	fmt.Fprintf(cmd.OutOrStdout(), "%s History cleared\n", style.SuccessPrefix)
	return nil
}

func runHistoryLog(cmd *cobra.Command, args []string) error {
	evts, err := events.Recent(historyLogN)
	if err != nil {
		return err
	}

	if historyLogJSON {
		if evts == nil {
			evts = []events.Event{}
		}
		return writeJSON(cmd.OutOrStdout(), evts)
	}

	out := cmd.OutOrStdout()
	if len(evts) == 0 {
		fmt.Fprintln(out, "No activity yet.")
		return nil
	}
	for _, e := range evts {
		ts := e.Timestamp
		if t, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
			ts = t.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "%s  %-18s", style.Dim.Render(ts), e.Type)
		for _, k := range slices.Sorted(maps.Keys(e.Payload)) {
			fmt.Fprintf(out, " %s=%v", k, e.Payload[k])
		}
		fmt.Fprintln(out)
	}
	return nil
}
