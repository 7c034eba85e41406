package input

import (
	"slices"
	"strings"
	"sync"
)

type (
	// Snapshot is the input state observed at the start of a tick
	Snapshot struct {
		Keys      []string `json:"keys,omitempty"`
		MouseX    float64  `json:"mouse_x"`
		MouseY    float64  `json:"mouse_y"`
		MouseDown bool     `json:"mouse_down"`
	}

	// Source produces input snapshots. Implementations must be safe to
	// call from the tick goroutine while other goroutines update them
	Source interface {
		Snapshot() Snapshot
	}

	// None is a Source with no pointer and no keys
	None struct{}

	// Manual is a Source whose state is set explicitly
	Manual struct {
		mu    sync.RWMutex
		state Snapshot
	}
)

// AnyKey is the key menu token that matches every key
const AnyKey = "any"

var keyAliases = map[string]string{
	" ":          "space",
	"arrowup":    "up arrow",
	"arrowdown":  "down arrow",
	"arrowleft":  "left arrow",
	"arrowright": "right arrow",
	"up":         "up arrow",
	"down":       "down arrow",
	"left":       "left arrow",
	"right":      "right arrow",
	"return":     "enter",
}

// NormalizeKey maps a key name to the token used by key menus
func NormalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	lower := strings.ToLower(strings.TrimSpace(k))
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}

// KeyDown reports whether the named key is held. The any token matches
// when at least one key is held
func (s Snapshot) KeyDown(name string) bool {
	key := NormalizeKey(name)
	if key == AnyKey {
		return len(s.Keys) > 0
	}
	return slices.Contains(s.Keys, key)
}

// Pressed returns the keys held in s that were not held in prev
func (s Snapshot) Pressed(prev Snapshot) []string {
	var res []string
	for _, k := range s.Keys {
		if !slices.Contains(prev.Keys, k) {
			res = append(res, k)
		}
	}
	return res
}

// Snapshot implements Source
func (None) Snapshot() Snapshot {
	return Snapshot{}
}

// NewManual creates a Manual source with nothing pressed
func NewManual() *Manual {
	return &Manual{}
}

// Snapshot implements Source
func (m *Manual) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := m.state
	res.Keys = slices.Clone(m.state.Keys)
	return res
}

// Set replaces the whole input state
func (m *Manual) Set(s Snapshot) {
	keys := make([]string, 0, len(s.Keys))
	for _, k := range s.Keys {
		k = NormalizeKey(k)
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.state.Keys = keys
}

// SetMouse moves the pointer and sets its button state
func (m *Manual) SetMouse(x, y float64, down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.MouseX, m.state.MouseY = x, y
	m.state.MouseDown = down
}

// Press holds a key down
func (m *Manual) Press(key string) {
	key = NormalizeKey(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.state.Keys, key) {
		m.state.Keys = append(m.state.Keys, key)
	}
}

// Release lets a key go
func (m *Manual) Release(key string) {
	key = NormalizeKey(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Keys = slices.DeleteFunc(m.state.Keys, func(k string) bool {
		return k == key
	})
}
