// Package config is the settings registry: typed settings addressed by
// (key, category), backed by viper, with change tracking for the renderer.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var ErrUnknownSetting = errors.New("config: unknown setting")

// Change names one setting that changed since the last Apply.
type Change struct {
	Category string
	Key      string
}

// Is reports whether c refers to key in category.
func (c Change) Is(category, key string) bool {
	return c.Category == category && c.Key == key
}

// Changes is an ordered batch of changed settings.
type Changes []Change

// Contains reports whether the batch holds (category, key).
func (cs Changes) Contains(category, key string) bool {
	for _, c := range cs {
		if c.Is(category, key) {
			return true
		}
	}
	return false
}

// Manager holds the current settings.
type Manager struct {
	mu      sync.RWMutex
	v       *viper.Viper
	pending Changes
	seen    map[Change]bool
}

// New creates a manager seeded with the built-in defaults.
func New() *Manager {
	v := viper.New()
	for category, entries := range defaults {
		for k, val := range entries {
			v.SetDefault(key(k, category), val)
		}
	}
	return &Manager{v: v, seen: make(map[Change]bool)}
}

func key(k, category string) string {
	return strings.ToLower(category) + "." + strings.ToLower(k)
}

// Load merges a user settings file over the defaults. The format is taken
// from the file extension (ini, toml, yaml, json). Loading does not produce
// changes.
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v.SetConfigFile(path)
	if err := m.v.MergeInConfig(); err != nil {
		return fmt.Errorf("could not load settings %s: %w", path, err)
	}
	return nil
}

// Save writes the current settings, defaults included.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not save settings %s: %w", path, err)
	}
	return nil
}

// Has reports whether a setting is known.
func (m *Manager) Has(k, category string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.IsSet(key(k, category))
}

// Lookup returns the raw value of a setting.
func (m *Manager) Lookup(k, category string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.v.IsSet(key(k, category)) {
		return nil, fmt.Errorf("%w: [%s] %s", ErrUnknownSetting, category, k)
	}
	return m.v.Get(key(k, category)), nil
}

func (m *Manager) GetString(k, category string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetString(key(k, category))
}

func (m *Manager) GetFloat(k, category string) float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return float32(m.v.GetFloat64(key(k, category)))
}

func (m *Manager) GetInt(k, category string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetInt(key(k, category))
}

func (m *Manager) GetBool(k, category string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetBool(key(k, category))
}

func (m *Manager) SetString(k, category, value string)    { m.set(k, category, value) }
func (m *Manager) SetInt(k, category string, value int)   { m.set(k, category, value) }
func (m *Manager) SetBool(k, category string, value bool) { m.set(k, category, value) }

func (m *Manager) SetFloat(k, category string, value float32) {
	f := float64(value)
	if lim, ok := limits[key(k, category)]; ok {
		// Clamp to reasonable values
		if f < lim[0] {
			f = lim[0]
		}
		if f > lim[1] {
			f = lim[1]
		}
	}
	m.set(k, category, f)
}

// set stores value and records a change only if the value differs.
func (m *Manager) set(k, category string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	full := key(k, category)
	if m.v.IsSet(full) && fmt.Sprint(m.v.Get(full)) == fmt.Sprint(value) {
		return
	}
	m.v.Set(full, value)
	c := Change{Category: category, Key: k}
	if !m.seen[c] {
		m.seen[c] = true
		m.pending = append(m.pending, c)
	}
}

// Apply returns the settings changed since the previous call and clears
// the pending set.
func (m *Manager) Apply() Changes {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending
	m.pending = nil
	m.seen = make(map[Change]bool)
	return out
}

// Pending returns the number of changes waiting for Apply.
func (m *Manager) Pending() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pending)
}
