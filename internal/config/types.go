// Package config loads and saves midori's user settings.
//
// Settings live in settings.toml under state.ConfigDir(). A missing file
// yields defaults, and stored values that no longer parse fall back to
// their defaults instead of failing the load.
package config

import (
	"errors"
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/locale"
)

var (
	// ErrInvalidValue indicates a settings value that does not parse.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownKey indicates a settings key that does not exist.
	ErrUnknownKey = errors.New("unknown settings key")
)

// CardBack is the decorative style of face-down cards.
type CardBack string

const (
	CardBackByzantine  CardBack = "byzantine"
	CardBackLightBrown CardBack = "lightbrown"
	CardBackRoseMoon   CardBack = "rosemoon"
	CardBackPersia     CardBack = "persia"
)

// CardBacks returns every card back style.
func CardBacks() []CardBack {
	return []CardBack{CardBackByzantine, CardBackLightBrown, CardBackRoseMoon, CardBackPersia}
}

// IsValid reports whether b is a known style.
func (b CardBack) IsValid() bool {
	return slices.Contains(CardBacks(), b)
}

// CardFaceAnimation is the only card face skin.
const CardFaceAnimation = "animation"

// timeLayout is the format of Daily.Time.
const timeLayout = "15:04"

// Settings is the on-disk settings file.
type Settings struct {
	UseReversed bool     `toml:"use_reversed"`
	Language    string   `toml:"language"` // "system" or a language code
	CardBack    CardBack `toml:"card_back"`
	CardFace    string   `toml:"card_face"`
	Haptics     bool     `toml:"haptics"` // kept for settings-file parity; unused by the terminal
	LogLevel    string   `toml:"log_level"`
	Daily       Daily    `toml:"daily"`
}

// Daily controls the daily card reminder.
type Daily struct {
	Enabled bool   `toml:"enabled"`
	Time    string `toml:"time"` // HH:MM, local time
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		UseReversed: true,
		Language:    locale.System,
		CardBack:    CardBackByzantine,
		CardFace:    CardFaceAnimation,
		Haptics:     true,
		LogLevel:    "info",
		Daily: Daily{
			Enabled: false,
			Time:    "09:00",
		},
	}
}

// Locale resolves the language setting to a tag.
func (s *Settings) Locale() language.Tag {
	return locale.Resolve(s.Language)
}

// DailyTime returns the reminder time of day on date's calendar day.
func (s *Settings) DailyTime(date time.Time) time.Time {
	t, err := time.Parse(timeLayout, s.Daily.Time)
	if err != nil {
		t, _ = time.Parse(timeLayout, Default().Daily.Time)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location())
}

// normalize replaces values that no longer parse with their defaults.
func (s *Settings) normalize() {
	def := Default()
	if s.Language != locale.System {
		if _, ok := locale.Parse(s.Language); !ok {
			s.Language = def.Language
		}
	}
	if !s.CardBack.IsValid() {
		s.CardBack = def.CardBack
	}
	if s.CardFace != CardFaceAnimation {
		s.CardFace = def.CardFace
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		s.LogLevel = def.LogLevel
	}
	if _, err := time.Parse(timeLayout, s.Daily.Time); err != nil {
		s.Daily.Time = def.Daily.Time
	}
}
