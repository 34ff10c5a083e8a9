package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/deeklead/midori/internal/state"
)

// SettingsFile is the name of the settings file inside the config directory.
const SettingsFile = "settings.toml"

// Path returns the settings file location.
func Path() string {
	return filepath.Join(state.ConfigDir(), SettingsFile)
}

// Load reads settings from path. A missing file yields Default().
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's own settings file
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes settings TOML. Keys absent from data keep their defaults.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if _, err := toml.Decode(string(data), s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	s.normalize()
	return s, nil
}

// Save writes settings to path, replacing the file atomically.
func Save(path string, s *Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := state.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Current loads the settings file and applies environment overrides.
// The result must not be saved back, or the overrides would persist.
func Current() (*Settings, error) {
	s, err := Load(Path())
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(s, EnvOverrides()); err != nil {
		return nil, err
	}
	return s, nil
}

// Invalid returns the keys whose stored values do not parse and load as
// their defaults instead. Malformed TOML is an error.
func Invalid(data []byte) ([]string, error) {
	raw := Default()
	if _, err := toml.Decode(string(data), raw); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	normalized := *raw
	normalized.normalize()

	var keys []string
	for _, key := range Keys() {
		stored, _ := raw.Get(key)
		loaded, _ := normalized.Get(key)
		if stored != loaded {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
