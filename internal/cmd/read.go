package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/events"
	"github.com/deeklead/midori/internal/history"
	"github.com/deeklead/midori/internal/random"
	flow "github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/style"
	"github.com/deeklead/midori/internal/tarot"
	tui "github.com/deeklead/midori/internal/tui/reading"
)

var (
	readQuick      bool
	readQuestion   string
	readReversed   bool
	readNoReversed bool
	readSeed       int64
	readCut        int
	readPick       string
	readJSON       bool
	readNoHistory  bool
)

var readCmd = &cobra.Command{
	Use:     "read [spread]",
	GroupID: GroupReading,
	Short:   "Do a tarot reading",
	Long: `Do a tarot reading with the given spread (see 'mt spreads').

In a terminal, mt opens an interactive reading: ask your question, shuffle,
cut the deck and draw each card yourself. Without a spread argument it
starts from the spread menu.

With --quick, --pick, --cut or --json, or when stdout is not a terminal,
the reading is dealt without interaction. --pick draws the cards at the
given positions of the shuffled deck (0-based, after the cut); positions
that are out of range or repeated are skipped and the top cards fill the
remaining slots.

Examples:
  mt read                                  # Interactive, choose a spread
  mt read celtic_cross -q "Where is this going?"
  mt read one_card --quick --json
  mt read past_present_future --seed 42 --cut 1 --pick 3,17,40`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().BoolVar(&readQuick, "quick", false, "Deal the whole spread at once")
	readCmd.Flags().StringVarP(&readQuestion, "question", "q", "", "Question for the reading")
	readCmd.Flags().BoolVar(&readReversed, "reversed", false, "Allow reversed cards")
	readCmd.Flags().BoolVar(&readNoReversed, "no-reversed", false, "Deal every card upright")
	readCmd.Flags().Int64Var(&readSeed, "seed", 0, "Seed the shuffle for a repeatable reading")
	readCmd.Flags().IntVar(&readCut, "cut", -1, "Cut the deck at stack 0, 1 or 2 before drawing")
	readCmd.Flags().StringVar(&readPick, "pick", "", "Comma-separated deck positions to draw")
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output as JSON")
	readCmd.Flags().BoolVar(&readNoHistory, "no-history", false, "Do not save the reading")
	readCmd.MarkFlagsMutuallyExclusive("reversed", "no-reversed")
	readCmd.MarkFlagsMutuallyExclusive("quick", "pick")
	readCmd.MarkFlagsMutuallyExclusive("quick", "cut")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	st := spread.Type("")
	if len(args) == 1 {
		t, ok := spread.ParseType(args[0])
		if !ok {
			return fmt.Errorf("unknown spread %q (run 'mt spreads' to list them)", args[0])
		}
		st = t
	}

	picks, err := parsePicks(readPick)
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	if st != "" {
		engine.SelectSpread(st)
	}
	engine.UpdateQuestion(readQuestion)

	var store *history.Store
	if !readNoHistory {
		store = history.NewStore(history.DefaultPath())
	}

	interactive := style.IsTerminal(os.Stdout) && style.IsTerminal(os.Stdin) &&
		!readQuick && !readJSON && readPick == "" && !cmd.Flags().Changed("cut")
	if interactive {
		return runReadTUI(engine, store, st != "")
	}

	var res flow.Result
	if readQuick {
		engine.StartQuickReading()
		res = engine.Result()
	} else {
		res = engine.Deal(readCut, picks)
	}

	out := newReadingOutput(res, engine.Locale())
	if store != nil {
		entry, ok, err := store.Record(cmd.Context(), res)
		if err != nil {
			style.PrintWarning("could not save reading: %v", err)
			logger().Error("recording reading", "err", err)
		} else if ok {
			out.ID = entry.ID
			logger().Info("reading recorded", "id", entry.ID, "spread", string(entry.Spread))
		}
	}

	if readJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	title := engine.Session().Spread.Title.Resolve(engine.Locale())
	printReading(cmd.OutOrStdout(), title, res, engine.Locale())
	return nil
}

// newEngine builds a reading engine over the localized deck, honoring the
// reversed and seed flags.
func newEngine(cmd *cobra.Command) (*flow.Engine, error) {
	tag := locale()
	cards, err := tarot.NewRepository().GetCards(tag)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	reversed := settings().UseReversed
	switch {
	case readReversed:
		reversed = true
	case readNoReversed:
		reversed = false
	}

	var rng random.Source = random.NewSystem()
	if cmd.Flags().Changed("seed") {
		rng = random.New(readSeed)
	}

	log := logger()
	observe := events.SessionObserver()
	return flow.New(cards,
		flow.WithRNG(rng),
		flow.WithReversed(reversed),
		flow.WithLocale(tag),
		flow.WithObserver(func(s flow.Session) {
			log.Debug("session changed", "step", s.Step.String(), "spread", string(s.Spread.Type), "drawn", len(s.Drawn))
			observe(s)
		}),
	), nil
}

// runReadTUI drives the reading interactively.
func runReadTUI(engine *flow.Engine, store *history.Store, skipMenu bool) error {
	cfg := tui.Config{
		CardBack: settings().CardBack,
		Logger:   logger(),
	}
	// A nil *history.Store must not become a non-nil Recorder.
	if store != nil {
		cfg.Recorder = store
	}

	m := tui.New(engine, cfg)
	if skipMenu {
		m = tui.NewAtSetup(engine, cfg)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	// Leave the finished reading on the main screen.
	if fm, ok := final.(tui.Model); ok && fm.Session().Step == flow.StepReadingResult {
		s := fm.Session()
		printReading(os.Stdout, s.Spread.Title.Resolve(engine.Locale()), s.Result(), engine.Locale())
		if err := fm.Err(); err != nil {
			style.PrintWarning("could not save reading: %v", err)
		}
	}
	return nil
}

// parsePicks parses a comma-separated list of deck positions.
func parsePicks(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var picks []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid --pick position %q: %w", part, err)
		}
		picks = append(picks, n)
	}
	return picks, nil
}

