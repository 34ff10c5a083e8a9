package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/deeklead/midori/internal/locale"
)

// Settings keys accepted by Get and Set.
const (
	KeyReversed     = "reversed"
	KeyLanguage     = "language"
	KeyCardBack     = "card_back"
	KeyCardFace     = "card_face"
	KeyHaptics      = "haptics"
	KeyLogLevel     = "log_level"
	KeyDailyEnabled = "daily.enabled"
	KeyDailyTime    = "daily.time"
)

// Keys returns every settings key in display order.
func Keys() []string {
	return []string{
		KeyReversed,
		KeyLanguage,
		KeyCardBack,
		KeyCardFace,
		KeyHaptics,
		KeyDailyEnabled,
		KeyDailyTime,
		KeyLogLevel,
	}
}

// keyAliases maps alternate spellings to canonical keys.
var keyAliases = map[string]string{
	"use_reversed": KeyReversed,
	"lang":         KeyLanguage,
	"back":         KeyCardBack,
	"face":         KeyCardFace,
	"daily":        KeyDailyEnabled,
}

func canonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", "_")
	if k, ok := keyAliases[key]; ok {
		return k
	}
	return key
}

// Get returns the display value of key.
func (s *Settings) Get(key string) (string, error) {
	switch canonicalKey(key) {
	case KeyReversed:
		return strconv.FormatBool(s.UseReversed), nil
	case KeyLanguage:
		return s.Language, nil
	case KeyCardBack:
		return string(s.CardBack), nil
	case KeyCardFace:
		return s.CardFace, nil
	case KeyHaptics:
		return strconv.FormatBool(s.Haptics), nil
	case KeyLogLevel:
		return s.LogLevel, nil
	case KeyDailyEnabled:
		return strconv.FormatBool(s.Daily.Enabled), nil
	case KeyDailyTime:
		return s.Daily.Time, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value and stores it under key. s is unchanged on error.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	invalid := func(hint string) error {
		return fmt.Errorf("%w for %s: %q (%s)", ErrInvalidValue, canonicalKey(key), value, hint)
	}

	switch canonicalKey(key) {
	case KeyReversed:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid("want true or false")
		}
		s.UseReversed = b

	case KeyLanguage:
		lower := strings.ToLower(value)
		if lower == locale.System {
			s.Language = locale.System
			return nil
		}
		tag, ok := locale.Parse(value)
		if !ok {
			return invalid("want system, en, ko, ja or th")
		}
		s.Language = locale.Lang(tag)

	case KeyCardBack:
		b := CardBack(strings.ToLower(strings.ReplaceAll(value, " ", "")))
		if !b.IsValid() {
			return invalid("want byzantine, lightbrown, rosemoon or persia")
		}
		s.CardBack = b

	case KeyCardFace:
		if strings.ToLower(value) != CardFaceAnimation {
			return invalid("want animation")
		}
		s.CardFace = CardFaceAnimation

	case KeyHaptics:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid("want true or false")
		}
		s.Haptics = b

	case KeyLogLevel:
		level, err := parseLevel(value)
		if err != nil {
			return invalid("want debug, info, warn or error")
		}
		s.LogLevel = strings.ToLower(level.String())

	case KeyDailyEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid("want true or false")
		}
		s.Daily.Enabled = b

	case KeyDailyTime:
		t, err := time.Parse(timeLayout, value)
		if err != nil {
			return invalid("want HH:MM")
		}
		s.Daily.Time = t.Format(timeLayout)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}
