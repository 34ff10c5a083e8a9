package config

import (
	"fmt"
	"os"
	"sort"
)

// envKeys maps override variables to the settings keys they replace.
var envKeys = map[string]string{
	"MIDORI_REVERSED":  KeyReversed,
	"MIDORI_LANG":      KeyLanguage,
	"MIDORI_LOG_LEVEL": KeyLogLevel,
}

// EnvOverrides returns settings key -> value for every override variable
// that is set and non-empty.
func EnvOverrides() map[string]string {
	env := make(map[string]string)
	for name, key := range envKeys {
		if v := os.Getenv(name); v != "" {
			env[key] = v
		}
	}
	return env
}

// ApplyEnv applies overrides to s in key order. An invalid override is an
// error naming the variable, so a typo in the environment is not silently
// ignored.
func ApplyEnv(s *Settings, overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := s.Set(k, overrides[k]); err != nil {
			return fmt.Errorf("%s: %w", envName(k), err)
		}
	}
	return nil
}

func envName(key string) string {
	for name, k := range envKeys {
		if k == key {
			return name
		}
	}
	return key
}
