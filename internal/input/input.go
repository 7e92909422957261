// Package input maps platform keys to engine actions and keeps the mouse
// state the camera reads, following the input settings.
package input

import (
	"sync"

	"mini-mw/internal/config"
)

// Action represents a logical engine action, not a physical key
type Action int

const (
	ActionPause Action = iota
	ActionToggleView
	ActionToggleWireframe
	ActionToggleCollision
	ActionTogglePathgrid
	ActionToggleBoundingBoxes
	ActionToggleCompositors
	ActionToggleLight
	ActionToggleWater
	ActionToggleWaterShader
	ActionFovUp
	ActionFovDown
	ActionCount // Sentinel value for array sizing
)

// Settings is the part of the settings registry the input manager reads.
type Settings interface {
	GetInt(key, category string) int
	GetFloat(key, category string) float32
	GetBool(key, category string) bool
}

// Manager tracks key state per action and turns cursor positions into
// camera deltas. Keys are platform key codes.
type Manager struct {
	mu       sync.RWMutex
	settings Settings

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[int][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// mouse region, clamps the cursor
	width, height int
	sensitivity   float64
	invertY       bool

	firstMouse   bool
	lastX, lastY float64
}

// New creates a manager without bindings, configured from settings.
func New(settings Settings) *Manager {
	m := &Manager{
		settings:     settings,
		keyToActions: make(map[int][]Action),
		firstMouse:   true,
	}
	m.adjustMouseRegion()
	m.readMouseSettings()
	return m
}

// BindKey binds a key code to an action. One key may drive several actions.
func (m *Manager) BindKey(key int, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyToActions, key)
}

// HandleKeyEvent updates the actions bound to key.
func (m *Manager) HandleKeyEvent(key int, pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, act := range m.keyToActions[key] {
		// Detect edges immediately when event arrives
		if pressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.currentState[act] {
			m.justReleased[act] = true
		}
		m.currentState[act] = pressed
	}
}

// PostUpdate must be called at the end of each frame to reset edge detection.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := Action(0); i < ActionCount; i++ {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

// MouseMoved converts a cursor position to a camera rotation delta scaled by
// the sensitivity. Positions are clamped to the mouse region. The first call
// after ResetMouse only records the position.
func (m *Manager) MouseMoved(x, y float64) (dx, dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	x = clamp(x, 0, float64(m.width))
	y = clamp(y, 0, float64(m.height))
	if m.firstMouse {
		m.lastX, m.lastY = x, y
		m.firstMouse = false
		return 0, 0
	}
	dx = (x - m.lastX) * m.sensitivity
	dy = (m.lastY - y) * m.sensitivity
	if m.invertY {
		dy = -dy
	}
	m.lastX, m.lastY = x, y
	return dx, dy
}

// WarpMouse records a cursor position moved by the host, without producing
// a delta.
func (m *Manager) WarpMouse(x, y float64) {
	m.mu.Lock()
	m.lastX = clamp(x, 0, float64(m.width))
	m.lastY = clamp(y, 0, float64(m.height))
	m.firstMouse = false
	m.mu.Unlock()
}

// ResetMouse forgets the last cursor position, e.g. after unpausing.
func (m *Manager) ResetMouse() {
	m.mu.Lock()
	m.firstMouse = true
	m.mu.Unlock()
}

// MouseRegion returns the size the cursor is clamped to.
func (m *Manager) MouseRegion() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.width, m.height
}

// ProcessChangedSettings follows resolution and mouse setting changes.
func (m *Manager) ProcessChangedSettings(changes config.Changes) {
	for _, c := range changes {
		switch {
		case c.Is(config.CategoryVideo, "resolution x"), c.Is(config.CategoryVideo, "resolution y"):
			m.adjustMouseRegion()
		case c.Category == config.CategoryInput:
			m.readMouseSettings()
		}
	}
}

func (m *Manager) adjustMouseRegion() {
	w := m.settings.GetInt("resolution x", config.CategoryVideo)
	h := m.settings.GetInt("resolution y", config.CategoryVideo)
	m.mu.Lock()
	m.width, m.height = w, h
	m.mu.Unlock()
}

func (m *Manager) readMouseSettings() {
	sens := float64(m.settings.GetFloat("camera sensitivity", config.CategoryInput))
	invert := m.settings.GetBool("invert y axis", config.CategoryInput)
	m.mu.Lock()
	m.sensitivity, m.invertY = sens, invert
	m.mu.Unlock()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
