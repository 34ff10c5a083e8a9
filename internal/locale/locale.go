// Package locale resolves the display language for cards, spreads and prompts.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// System is the settings value meaning "follow the environment".
const System = "system"

var supportedTags = []language.Tag{
	language.English,
	language.Korean,
	language.Japanese,
	language.Thai,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Parse returns the supported tag closest to value.
// The bool is false when value is not a parseable tag or matches nothing.
func Parse(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	_, idx, conf := tagMatcher.Match(parsed)
	if conf == language.No {
		return language.Tag{}, false
	}
	return supportedTags[idx], true
}

// Resolve turns a settings value ("system", "ko", "en", ...) into a tag.
// "system" consults LC_ALL, LC_MESSAGES and LANG in that order.
func Resolve(setting string) language.Tag {
	if setting != "" && setting != System {
		if tag, ok := Parse(setting); ok {
			return tag
		}
		return Default()
	}
	return FromEnv()
}

// FromEnv derives a tag from the POSIX locale variables.
func FromEnv() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		// ko_KR.UTF-8 -> ko-KR
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		v = strings.ReplaceAll(v, "_", "-")
		if tag, ok := Parse(v); ok {
			return tag
		}
	}
	return Default()
}

// Lang returns the lowercase base language code of tag ("en", "ko", ...).
func Lang(tag language.Tag) string {
	base, _ := tag.Base()
	return strings.ToLower(base.String())
}
