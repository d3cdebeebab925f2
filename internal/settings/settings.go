// Package settings persists user preferences across runs.
package settings

import (
	"fmt"

	"github.com/addrsentry/addrsentry/internal/config"
)

// Field names accepted by Store.Set. They match the persisted JSON keys.
const (
	FieldAPIURL   = "apiUrl"
	FieldAutoScan = "autoScan"
)

// Settings is the user configuration. No schema version: the two keys
// persist indefinitely until overwritten.
type Settings struct {
	APIURL   string `json:"apiUrl"`
	AutoScan bool   `json:"autoScan"`
}

// WithDefaults fills missing values. An empty apiUrl means "use the
// built-in default"; no format validation happens here, a malformed URL
// surfaces later as a network failure.
func (s Settings) WithDefaults() Settings {
	if s.APIURL == "" {
		s.APIURL = config.DefaultAPIURL
	}
	return s
}

// Store reads and writes individual settings fields. Set writes exactly one
// field; successive calls are independent, there is no batching. Callers
// treat Set as fire-and-forget and at most log its error.
type Store interface {
	Load() (Settings, error)
	Set(field string, value any) error
}

func apply(s *Settings, field string, value any) error {
	switch field {
	case FieldAPIURL:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("setting %q wants a string, got %T", field, value)
		}
		s.APIURL = v
	case FieldAutoScan:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %q wants a bool, got %T", field, value)
		}
		s.AutoScan = v
	default:
		return fmt.Errorf("unknown setting %q", field)
	}
	return nil
}
