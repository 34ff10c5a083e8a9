package reading

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/deeklead/midori/internal/config"
	"github.com/deeklead/midori/internal/history"
	flow "github.com/deeklead/midori/internal/reading"
	"github.com/deeklead/midori/internal/spread"
)

// gridColumns is the width of the face-down card grid.
const gridColumns = 13

// Recorder stores finished readings. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, res flow.Result) (history.Entry, bool, error)
}

// Config holds the collaborators of the TUI.
type Config struct {
	// Recorder receives each finished reading once. Nil disables recording.
	Recorder Recorder
	CardBack config.CardBack
	Logger   *slog.Logger
}

type screen int

const (
	screenMenu screen = iota
	screenSetup
	screenDraw
	screenResult
)

// Model is the bubbletea model for a reading.
type Model struct {
	engine *flow.Engine
	cfg    Config
	tag    language.Tag
	text   *message.Printer

	// screen is only consulted during preselection; the engine's step
	// decides otherwise.
	screen     screen
	menuCursor int
	gridCursor int
	question   textinput.Model

	recorded bool
	saved    *history.Entry
	err      error

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
	height   int
}

// New creates a reading TUI over engine. If the engine has already left
// preselection the model opens on the matching screen.
func New(engine *flow.Engine, cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	m := Model{
		engine:   engine,
		cfg:      cfg,
		tag:      engine.Locale(),
		text:     newPrinter(engine.Locale()),
		question: ti,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	cur := engine.Session().Spread.Type
	for i, d := range engine.Spreads() {
		if d.Type == cur {
			m.menuCursor = i
		}
	}
	return m
}

// NewAtSetup creates a model that skips the spread menu.
func NewAtSetup(engine *flow.Engine, cfg Config) Model {
	m := New(engine, cfg)
	m.enterSetup()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the engine state, mainly for tests.
func (m Model) Session() flow.Session {
	return m.engine.Session()
}

// Saved returns the history entry written for the last finished reading.
func (m Model) Saved() (history.Entry, bool) {
	if m.saved == nil {
		return history.Entry{}, false
	}
	return *m.saved, true
}

// Err returns the last recording error.
func (m Model) Err() error {
	return m.err
}

// recordedMsg is the result of recording a reading.
type recordedMsg struct {
	entry history.Entry
	ok    bool
	err   error
}

func (m Model) currentScreen() screen {
	switch m.engine.Session().Step {
	case flow.StepShuffleAndDraw:
		return screenDraw
	case flow.StepReadingResult:
		return screenResult
	default:
		if m.screen == screenSetup {
			return screenSetup
		}
		return screenMenu
	}
}

func (m *Model) enterSetup() {
	m.screen = screenSetup
	def := m.engine.Session().Spread
	m.question.SetValue(m.engine.Session().Question)
	m.question.Placeholder = def.QuestionPlaceholder.Resolve(m.tag)
	m.question.Focus()
}

// finish records the reading the first time the result screen is reached.
func (m *Model) finish() tea.Cmd {
	m.question.Blur()
	if m.recorded || m.cfg.Recorder == nil {
		return nil
	}
	m.recorded = true
	rec := m.cfg.Recorder
	res := m.engine.Result()
	return func() tea.Msg {
		entry, ok, err := rec.Record(context.Background(), res)
		return recordedMsg{entry: entry, ok: ok, err: err}
	}
}

// startOver prepares for a new reading of the current spread.
func (m *Model) startOver() {
	m.recorded = false
	m.saved = nil
	m.err = nil
	m.gridCursor = 0
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.cfg.Logger.Error("recording reading", "err", msg.err)
			return m, nil
		}
		if msg.ok {
			entry := msg.entry
			m.saved = &entry
			m.cfg.Logger.Info("reading recorded", "id", entry.ID, "spread", string(entry.Spread))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.currentScreen() {
		case screenMenu:
			return m.updateMenu(msg)
		case screenSetup:
			return m.updateSetup(msg)
		case screenDraw:
			return m.updateDraw(msg)
		case screenResult:
			return m.updateResult(msg)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	spreads := m.engine.Spreads()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(spreads)-1 {
			m.menuCursor++
		}

	case key.Matches(msg, m.keys.Select):
		m.selectSpread(spreads[m.menuCursor].Type)

	// Number keys pick a spread directly
	case msg.String() >= "1" && msg.String() <= "9":
		n := int(msg.String()[0] - '0')
		if n <= len(spreads) {
			m.menuCursor = n - 1
			m.selectSpread(spreads[n-1].Type)
		}
	}
	return m, nil
}

func (m *Model) selectSpread(t spread.Type) {
	m.engine.SelectSpread(t)
	m.startOver()
	m.enterSetup()
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.engine.UpdateQuestion(m.question.Value())
		m.startOver()
		if m.engine.StartReading() == flow.StepReadingResult {
			return m, m.finish()
		}
		m.question.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Quick):
		m.engine.UpdateQuestion(m.question.Value())
		m.startOver()
		m.engine.StartQuickReading()
		return m, m.finish()

	case key.Matches(msg, m.keys.Reversed):
		m.engine.ApplyReversedPreference(!m.engine.Session().UseReversed)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.engine.UpdateQuestion(m.question.Value())
		m.question.Blur()
		m.screen = screenMenu
		return m, nil
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

func (m Model) updateDraw(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.engine.Session()

	if s.CutInProgress {
		switch {
		case key.Matches(msg, m.keys.Stack):
			m.engine.ApplyCutChoice(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.Back):
			m.engine.CancelCutMode()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Back):
		m.engine.Reset()
		m.enterSetup()

	case key.Matches(msg, m.keys.Shuffle):
		m.engine.TriggerShuffle()

	case key.Matches(msg, m.keys.Cut):
		if !s.GridRevealed && len(s.Drawn) == 0 {
			m.engine.EnterCutMode()
		}

	case key.Matches(msg, m.keys.Reveal):
		m.engine.RevealDrawGrid()

	case !s.GridRevealed:
		// Card selection needs the grid.

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, len(s.DrawPile))
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, len(s.DrawPile))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-gridColumns, len(s.DrawPile))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(gridColumns, len(s.DrawPile))

	case key.Matches(msg, m.keys.Select):
		if m.gridCursor < len(s.DrawPile) {
			if m.engine.HandleDrawSelection(s.DrawPile[m.gridCursor]) {
				return m, m.finish()
			}
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta, n int) {
	next := m.gridCursor + delta
	if next >= 0 && next < n {
		m.gridCursor = next
	}
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Again):
		m.engine.Reset()
		m.startOver()
		m.enterSetup()

	case key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Back):
		m.engine.Reset()
		m.startOver()
		m.screen = screenMenu
	}
	return m, nil
}

// View renders the model.
func (m Model) View() string {
	return m.renderView()
}
