// Package prefs persists the toggles a viewer changes at runtime.
package prefs

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	object   = "confetti"
	property = "prefs"
)

type Preferences struct {
	Gradient bool    `yaml:"gradient"`
	Speed    float64 `yaml:"speed"`
	Sound    bool    `yaml:"sound"`
}

// Store saves Preferences through gdata. A Store with a nil manager keeps
// nothing and never fails.
type Store struct {
	manager  *gdata.Manager
	defaults Preferences
	log      *slog.Logger
}

// Open opens the platform data directory for appName. On failure it returns
// a degraded Store together with the error so callers can carry on.
func Open(appName string, defaults Preferences, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{defaults: defaults, log: log}, fmt.Errorf("open preferences: %w", err)
	}
	return NewStore(m, defaults, log), nil
}

func NewStore(m *gdata.Manager, defaults Preferences, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{manager: m, defaults: defaults, log: log}
}

// Load returns the saved preferences, or the defaults when nothing was saved
// yet. Corrupt data yields the defaults and an error.
func (s *Store) Load() (Preferences, error) {
	if s.manager == nil || !s.manager.ObjectPropExists(object, property) {
		return s.defaults, nil
	}
	data, err := s.manager.LoadObjectProp(object, property)
	if err != nil {
		return s.defaults, fmt.Errorf("load preferences: %w", err)
	}
	p := s.defaults
	if err := yaml.Unmarshal(data, &p); err != nil {
		return s.defaults, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

func (s *Store) Save(p Preferences) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.manager.SaveObjectProp(object, property, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	s.log.Debug("preferences saved", "gradient", p.Gradient, "speed", p.Speed, "sound", p.Sound)
	return nil
}
