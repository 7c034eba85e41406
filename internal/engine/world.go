package engine

import (
	"cmp"
	"slices"
	"strconv"
)

type (
	// Handle is a stable reference to a sprite slot in a World. A handle
	// goes stale when its sprite is deleted, so it never resolves to a
	// sprite that reused the slot
	Handle struct {
		index uint32
		gen   uint32
	}

	// World owns the ordered sprite collection of one running project
	World struct {
		slots  []slot
		free   []uint32
		order  []Handle
		layers []Handle
		stage  Handle
		width  float64
		height float64
		clones int
		dirty  bool
	}

	slot struct {
		sprite *Sprite
		gen    uint32
	}
)

// StageName is the menu token that refers to the stage
const StageName = "_stage_"

// NewWorld creates an empty World with the given stage dimensions
func NewWorld(width, height float64) *World {
	return &World{
		width:  width,
		height: height,
	}
}

// IsValid reports whether the handle was ever issued by a World
func (h Handle) IsValid() bool {
	return h.gen != 0
}

// String renders the handle as a path segment
func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.index), 10) + "." +
		strconv.FormatUint(uint64(h.gen), 10)
}

// Add places a sprite at the end of the collection and returns its handle.
// Clones are layered directly behind their parent
func (w *World) Add(s *Sprite) Handle {
	h := w.alloc(s)
	s.world = w
	s.handle = h
	for _, ch := range s.chains {
		ch.sprite = h
	}
	w.order = append(w.order, h)

	switch {
	case s.IsStage:
		w.stage = h
	case s.IsClone:
		w.clones++
		idx := w.layerIndex(s.parent)
		if idx < 0 {
			w.layers = append(w.layers, h)
		} else {
			w.layers = slices.Insert(w.layers, idx, h)
		}
	default:
		w.layers = append(w.layers, h)
	}
	return h
}

// Get resolves a handle, returning nil for stale or deleted sprites
func (w *World) Get(h Handle) *Sprite {
	if !h.IsValid() || int(h.index) >= len(w.slots) {
		return nil
	}
	sl := w.slots[h.index]
	if sl.gen != h.gen || sl.sprite == nil || sl.sprite.dead {
		return nil
	}
	return sl.sprite
}

// Sprites returns the live sprites in collection order
func (w *World) Sprites() []*Sprite {
	res := make([]*Sprite, 0, len(w.order))
	for _, h := range w.order {
		if s := w.Get(h); s != nil {
			res = append(res, s)
		}
	}
	return res
}

// Layered returns the live sprites back to front, stage first
func (w *World) Layered() []*Sprite {
	res := make([]*Sprite, 0, len(w.layers)+1)
	if s := w.Get(w.stage); s != nil {
		res = append(res, s)
	}
	for _, h := range w.layers {
		if s := w.Get(h); s != nil {
			res = append(res, s)
		}
	}
	return res
}

// Stage returns the stage sprite
func (w *World) Stage() *Sprite {
	return w.Get(w.stage)
}

// Original returns the non-clone sprite with the given name. The stage is
// found by its own name or by the stage menu token
func (w *World) Original(name string) *Sprite {
	if name == StageName {
		return w.Stage()
	}
	for _, s := range w.Sprites() {
		if !s.IsClone && s.Name == name {
			return s
		}
	}
	return nil
}

// Instances returns the live original and clones sharing a name
func (w *World) Instances(name string) []*Sprite {
	var res []*Sprite
	for _, s := range w.Sprites() {
		if !s.IsStage && s.Name == name {
			res = append(res, s)
		}
	}
	return res
}

// Remove marks a sprite deleted. Its handle goes stale at once, while the
// slot is reclaimed by the next Sweep
func (w *World) Remove(h Handle) bool {
	s := w.Get(h)
	if s == nil {
		return false
	}
	s.dead = true
	if s.IsClone {
		w.clones--
	}
	w.dirty = true
	return true
}

// Sweep drops deleted sprites from the collection and frees their slots.
// It returns the number of sprites removed
func (w *World) Sweep() int {
	if !w.dirty {
		return 0
	}
	w.dirty = false

	removed := 0
	w.order = slices.DeleteFunc(w.order, func(h Handle) bool {
		if w.Get(h) != nil {
			return false
		}
		w.release(h)
		removed++
		return true
	})
	w.layers = slices.DeleteFunc(w.layers, func(h Handle) bool {
		return w.Get(h) == nil
	})
	return removed
}

// Len returns the number of live sprites, stage included
func (w *World) Len() int {
	return len(w.Sprites())
}

// CloneCount returns the number of live clones
func (w *World) CloneCount() int {
	return w.clones
}

// Size returns the stage dimensions
func (w *World) Size() (float64, float64) {
	return w.width, w.height
}

// LayerOf returns the drawing position of a sprite. The stage is layer 0
func (w *World) LayerOf(s *Sprite) int {
	if s.IsStage {
		return 0
	}
	return w.layerIndex(s.handle) + 1
}

// MoveToFront draws the sprite above every other sprite
func (w *World) MoveToFront(s *Sprite) {
	if w.detachLayer(s) {
		w.layers = append(w.layers, s.handle)
	}
}

// MoveToBack draws the sprite behind every other sprite
func (w *World) MoveToBack(s *Sprite) {
	if w.detachLayer(s) {
		w.layers = slices.Insert(w.layers, 0, s.handle)
	}
}

// MoveLayers shifts the sprite forward (positive) or backward (negative)
func (w *World) MoveLayers(s *Sprite, n int) {
	idx := w.layerIndex(s.handle)
	if idx < 0 || s.IsStage {
		return
	}
	w.layers = slices.Delete(w.layers, idx, idx+1)
	idx = min(max(idx+n, 0), len(w.layers))
	w.layers = slices.Insert(w.layers, idx, s.handle)
}

// TopAt returns the front-most visible sprite containing the point, or nil
func (w *World) TopAt(x, y float64) *Sprite {
	layered := w.Layered()
	for i := len(layered) - 1; i >= 0; i-- {
		s := layered[i]
		if s.IsStage || !s.Visible {
			continue
		}
		if s.Bounds().Contains(x, y) {
			return s
		}
	}
	return nil
}

func (w *World) sortLayers() {
	slices.SortStableFunc(w.layers, func(a, b Handle) int {
		return cmp.Compare(w.loadLayer(a), w.loadLayer(b))
	})
}

func (w *World) loadLayer(h Handle) int {
	if s := w.Get(h); s != nil {
		return s.prog.target.LayerOrder
	}
	return 0
}

func (w *World) detachLayer(s *Sprite) bool {
	idx := w.layerIndex(s.handle)
	if idx < 0 || s.IsStage {
		return false
	}
	w.layers = slices.Delete(w.layers, idx, idx+1)
	return true
}

func (w *World) layerIndex(h Handle) int {
	return slices.Index(w.layers, h)
}

func (w *World) alloc(s *Sprite) Handle {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		sl := &w.slots[idx]
		sl.gen++
		sl.sprite = s
		return Handle{index: idx, gen: sl.gen}
	}
	w.slots = append(w.slots, slot{sprite: s, gen: 1})
	return Handle{index: uint32(len(w.slots) - 1), gen: 1}
}

func (w *World) release(h Handle) {
	if int(h.index) >= len(w.slots) {
		return
	}
	sl := &w.slots[h.index]
	if sl.gen != h.gen {
		return
	}
	sl.sprite = nil
	w.free = append(w.free, h.index)
}
