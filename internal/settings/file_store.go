package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileStore keeps settings in a single JSON file. A missing file reads as
// defaults, not an error.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: log.With().Str("component", "settings_store").Logger(),
	}
}

// Load reads the persisted settings, filling defaults for missing keys.
func (f *FileStore) Load() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.WithDefaults(), nil
		}
		return s.WithDefaults(), fmt.Errorf("reading settings file: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}.WithDefaults(), fmt.Errorf("parsing settings file: %w", err)
	}
	return s.WithDefaults(), nil
}

// Set writes a single field back to the file, leaving the other field as
// currently persisted.
func (f *FileStore) Set(field string, value any) error {
	var s Settings
	if data, err := os.ReadFile(f.path); err == nil {
		if err := json.Unmarshal(data, &s); err != nil {
			f.logger.Warn().Err(err).Msg("settings file unreadable, rewriting from scratch")
			s = Settings{}
		}
	}

	if err := apply(&s, field, value); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	f.logger.Debug().Str("field", field).Msg("setting persisted")
	return nil
}
