package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deeklead/midori/internal/config"
	"github.com/deeklead/midori/internal/daily"
	"github.com/deeklead/midori/internal/events"
	"github.com/deeklead/midori/internal/history"
	"github.com/deeklead/midori/internal/locale"
	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/tarot"
)

// DeckSize is the number of cards in a complete deck.
const DeckSize = 78

// AllChecks returns every check in report order.
func AllChecks() []Check {
	return []Check{
		NewDeckCheck(tarot.NewRepository()),
		NewSpreadsCheck(spread.Builtin()),
		NewStateDirCheck(),
		NewSettingsCheck(),
		NewHistoryCheck(),
		NewDailyCheck(tarot.NewRepository()),
		NewEventsCheck(),
	}
}

// DeckCheck verifies the deck loads completely in every supported language.
type DeckCheck struct {
	BaseCheck
	source tarot.Source
}

// NewDeckCheck creates a deck check over source.
func NewDeckCheck(source tarot.Source) *DeckCheck {
	return &DeckCheck{
		BaseCheck: BaseCheck{
			CheckName:        "deck",
			CheckDescription: "Check the deck has 78 distinct cards in every language",
			CheckCategory:    CategoryCore,
		},
		source: source,
	}
}

// Run loads the deck for each supported language.
func (c *DeckCheck) Run(ctx *CheckContext) *CheckResult {
	want := map[tarot.Category]int{
		tarot.CategoryMajorArcana: 22,
		tarot.CategoryWands:       14,
		tarot.CategoryCups:        14,
		tarot.CategorySwords:      14,
		tarot.CategoryPentacles:   14,
	}

	var problems, details []string
	for _, tag := range locale.Supported() {
		lang := locale.Lang(tag)
		cards, err := c.source.GetCards(tag)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", lang, err))
			continue
		}

		seen := make(map[string]bool, len(cards))
		counts := make(map[tarot.Category]int)
		for _, card := range cards {
			if seen[card.ID] {
				problems = append(problems, fmt.Sprintf("%s: duplicate card %s", lang, card.ID))
			}
			seen[card.ID] = true
			counts[card.Category()]++
			if card.Name == "" || card.UprightMeaning == "" {
				problems = append(problems, fmt.Sprintf("%s: %s has no name or meaning", lang, card.ID))
			}
		}
		if len(cards) != DeckSize {
			problems = append(problems, fmt.Sprintf("%s: %d cards, want %d", lang, len(cards), DeckSize))
		}
		for _, cat := range tarot.Categories() {
			if counts[cat] != want[cat] {
				problems = append(problems, fmt.Sprintf("%s: %s has %d cards, want %d", lang, cat, counts[cat], want[cat]))
			}
		}
		details = append(details, fmt.Sprintf("%s: %d cards", lang, len(cards)))
	}

	if len(problems) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: problems[0],
			Details: problems,
		}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d cards in %d languages", DeckSize, len(locale.Supported())),
		Details: details,
	}
}

// SpreadsCheck validates every spread definition.
type SpreadsCheck struct {
	BaseCheck
	catalog *spread.Catalog
}

// NewSpreadsCheck creates a spread catalog check.
func NewSpreadsCheck(catalog *spread.Catalog) *SpreadsCheck {
	return &SpreadsCheck{
		BaseCheck: BaseCheck{
			CheckName:        "spreads",
			CheckDescription: "Check spread positions are ordered and fit their layout",
			CheckCategory:    CategoryCore,
		},
		catalog: catalog,
	}
}

// Run validates each definition.
func (c *SpreadsCheck) Run(ctx *CheckContext) *CheckResult {
	var problems, details []string
	for _, def := range c.catalog.All() {
		if err := def.Validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		details = append(details, fmt.Sprintf("%s: %d positions", def.Type, def.Size()))
	}
	if len(problems) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("%d invalid spread(s)", len(problems)),
			Details: problems,
		}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d spreads valid", len(details)),
		Details: details,
	}
}

// StateDirCheck verifies the state directory can be written.
type StateDirCheck struct {
	FixableCheck
}

// NewStateDirCheck creates a state directory check.
func NewStateDirCheck() *StateDirCheck {
	return &StateDirCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "state-dir",
				CheckDescription: "Check the state directory exists and is writable",
				CheckCategory:    CategoryCore,
			},
		},
	}
}

// Run probes the directory with a temporary file.
func (c *StateDirCheck) Run(ctx *CheckContext) *CheckResult {
	info, err := os.Stat(ctx.StateDir)
	if os.IsNotExist(err) {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "State directory does not exist yet",
			Details: []string{ctx.StateDir},
			FixHint: "Run: mt doctor --fix",
		}
	}
	if err != nil || !info.IsDir() {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "State path is not a directory",
			Details: []string{ctx.StateDir},
		}
	}

	f, err := os.CreateTemp(ctx.StateDir, ".probe-*")
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "State directory is not writable",
			Details: []string{err.Error()},
		}
	}
	_ = f.Close()
	_ = os.Remove(f.Name())

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: "State directory writable",
		Details: []string{ctx.StateDir},
	}
}

// Fix creates the directory.
func (c *StateDirCheck) Fix(ctx *CheckContext) error {
	return os.MkdirAll(ctx.StateDir, 0755)
}

// SettingsCheck verifies the settings file and environment overrides.
type SettingsCheck struct {
	FixableCheck
}

// NewSettingsCheck creates a settings check.
func NewSettingsCheck() *SettingsCheck {
	return &SettingsCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "settings",
				CheckDescription: "Check settings.toml parses and every value is valid",
				CheckCategory:    CategoryConfig,
			},
		},
	}
}

func (c *SettingsCheck) path(ctx *CheckContext) string {
	return filepath.Join(ctx.ConfigDir, config.SettingsFile)
}

// Run parses the file and the overrides.
func (c *SettingsCheck) Run(ctx *CheckContext) *CheckResult {
	path := c.path(ctx)
	result := &CheckResult{Name: c.Name(), Status: StatusOK}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's own settings file
	switch {
	case os.IsNotExist(err):
		result.Message = "No settings file, using defaults"
	case err != nil:
		result.Status = StatusError
		result.Message = "Cannot read settings"
		result.Details = []string{err.Error()}
		return result
	default:
		invalid, err := config.Invalid(data)
		if err != nil {
			result.Status = StatusError
			result.Message = "settings.toml is not valid TOML"
			result.Details = []string{err.Error()}
			result.FixHint = "Run: mt doctor --fix (the old file is kept as settings.toml.bak)"
			return result
		}
		if len(invalid) > 0 {
			result.Status = StatusWarning
			result.Message = "Invalid values load as defaults: " + strings.Join(invalid, ", ")
			result.FixHint = "Run: mt doctor --fix, or mt config set <key> <value>"
		} else {
			result.Message = "Settings valid"
		}
		result.Details = append(result.Details, path)
	}

	if err := config.ApplyEnv(config.Default(), config.EnvOverrides()); err != nil {
		result.Details = append(result.Details, err.Error())
		if result.Status == StatusOK {
			result.Status = StatusWarning
			result.Message = "Invalid environment override"
			result.FixHint = "Fix or unset the variable"
		}
	}
	return result
}

// Fix rewrites the settings file. Unparseable files are moved aside and
// replaced by defaults; invalid values are replaced by their defaults.
func (c *SettingsCheck) Fix(ctx *CheckContext) error {
	path := c.path(ctx)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's own settings file
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings: %w", err)
	}

	s, err := config.Parse(data)
	if err != nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return fmt.Errorf("backing up settings: %w", err)
		}
		s = config.Default()
	}
	return config.Save(path, s)
}

// HistoryCheck verifies every stored reading loads.
type HistoryCheck struct {
	FixableCheck
}

// NewHistoryCheck creates a history check.
func NewHistoryCheck() *HistoryCheck {
	return &HistoryCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "history",
				CheckDescription: "Check stored readings load",
				CheckCategory:    CategoryData,
			},
		},
	}
}

func (c *HistoryCheck) store(ctx *CheckContext) *history.Store {
	return history.NewStore(filepath.Join(ctx.StateDir, history.HistoryFile))
}

// Run inspects the history file.
func (c *HistoryCheck) Run(ctx *CheckContext) *CheckResult {
	h, err := c.store(ctx).Inspect(ctx.ctx())
	switch {
	case err != nil:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "Cannot read history",
			Details: []string{err.Error()},
		}
	case !h.Exists:
		return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "No readings yet"}
	case h.Corrupt:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "History file is unreadable and loads as empty",
			FixHint: "Run: mt doctor --fix",
		}
	case h.Skipped > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d of %d readings are malformed and skipped", h.Skipped, h.Skipped+h.Valid),
			FixHint: "Run: mt doctor --fix",
		}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d readings", h.Valid),
	}
}

// Fix rewrites the file without the malformed readings.
func (c *HistoryCheck) Fix(ctx *CheckContext) error {
	_, err := c.store(ctx).Repair(ctx.ctx())
	return err
}

// DailyCheck verifies the stored daily card.
type DailyCheck struct {
	FixableCheck
	source tarot.Source
}

// NewDailyCheck creates a daily card check.
func NewDailyCheck(source tarot.Source) *DailyCheck {
	return &DailyCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "daily",
				CheckDescription: "Check the stored daily card parses",
				CheckCategory:    CategoryData,
			},
		},
		source: source,
	}
}

func (c *DailyCheck) store(ctx *CheckContext) *daily.Store {
	return daily.NewStore(filepath.Join(ctx.StateDir, daily.DailyFile), c.source)
}

// Run checks the stored record.
func (c *DailyCheck) Run(ctx *CheckContext) *CheckResult {
	exists, valid := c.store(ctx).Stored()
	switch {
	case !exists:
		return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "No daily card drawn yet"}
	case !valid:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "Daily card file is unreadable; a new card will be drawn",
			FixHint: "Run: mt doctor --fix",
		}
	}
	return &CheckResult{Name: c.Name(), Status: StatusOK, Message: "Daily card stored"}
}

// Fix removes the unreadable record.
func (c *DailyCheck) Fix(ctx *CheckContext) error {
	return c.store(ctx).Forget(ctx.ctx())
}

// EventsCheck counts unreadable lines in the activity log.
type EventsCheck struct {
	BaseCheck
}

// NewEventsCheck creates an activity log check.
func NewEventsCheck() *EventsCheck {
	return &EventsCheck{
		BaseCheck: BaseCheck{
			CheckName:        "events",
			CheckDescription: "Check the activity log lines parse",
			CheckCategory:    CategoryData,
		},
	}
}

// Run scans the log.
func (c *EventsCheck) Run(ctx *CheckContext) *CheckResult {
	valid, invalid, err := events.Verify(filepath.Join(ctx.StateDir, events.EventsFile))
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "Cannot read activity log",
			Details: []string{err.Error()},
		}
	}
	if invalid > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d unreadable line(s) are skipped", invalid),
		}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d events logged", valid),
	}
}
