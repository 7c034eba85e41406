package engine

import "math"

// Rect is an axis-aligned rectangle in stage coordinates, y growing upward
type Rect struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

const (
	// MouseTarget is the menu token that refers to the mouse pointer
	MouseTarget = "_mouse_"

	// EdgeTarget is the menu token that refers to the stage edge
	EdgeTarget = "_edge_"

	// RandomTarget is the menu token that picks a random position
	RandomTarget = "_random_"

	// MyselfTarget is the menu token that refers to the executing sprite
	MyselfTarget = "_myself_"
)

// Bounds returns the rectangle covered by the sprite's current costume,
// scaled by its size and centered on its position
func (s *Sprite) Bounds() Rect {
	w, h := s.dimensions()
	return Rect{
		Left:   s.X - w/2,
		Right:  s.X + w/2,
		Bottom: s.Y - h/2,
		Top:    s.Y + h/2,
	}
}

func (s *Sprite) dimensions() (float64, float64) {
	c := s.Costume()
	if c == nil {
		return 0, 0
	}
	res := c.BitmapResolution
	if res <= 0 {
		res = 1
	}
	scale := s.Size / 100 / res
	return c.Width * scale, c.Height * scale
}

// Contains reports whether the point lies inside the rectangle, edges
// included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Bottom && y <= r.Top
}

// Overlaps reports whether two rectangles share any point
func (r Rect) Overlaps(o Rect) bool {
	return r.Left <= o.Right && o.Left <= r.Right &&
		r.Bottom <= o.Top && o.Bottom <= r.Top
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Top <= r.Bottom
}

// StageRect returns the visible stage area centered on the origin
func (w *World) StageRect() Rect {
	return Rect{
		Left:   -w.width / 2,
		Right:  w.width / 2,
		Bottom: -w.height / 2,
		Top:    w.height / 2,
	}
}

// TouchingEdge reports whether the sprite reaches or crosses the stage
// boundary
func (w *World) TouchingEdge(s *Sprite) bool {
	b := s.Bounds()
	st := w.StageRect()
	return b.Left <= st.Left || b.Right >= st.Right ||
		b.Bottom <= st.Bottom || b.Top >= st.Top
}

// TouchingSprite reports whether the sprite overlaps any visible instance
// of the named target, other than itself
func (w *World) TouchingSprite(s *Sprite, name string) bool {
	if !s.Visible {
		return false
	}
	b := s.Bounds()
	for _, o := range w.Instances(name) {
		if o == s || !o.Visible {
			continue
		}
		if b.Overlaps(o.Bounds()) {
			return true
		}
	}
	return false
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// KeepOnStage moves the sprite so that its bounds lie within the stage
// whenever they fit
func (w *World) KeepOnStage(s *Sprite) {
	b := s.Bounds()
	st := w.StageRect()
	dx, dy := 0.0, 0.0
	switch {
	case b.Left < st.Left && b.Right < st.Right:
		dx = min(st.Left-b.Left, st.Right-b.Right)
	case b.Right > st.Right && b.Left > st.Left:
		dx = max(st.Right-b.Right, st.Left-b.Left)
	}
	switch {
	case b.Bottom < st.Bottom && b.Top < st.Top:
		dy = min(st.Bottom-b.Bottom, st.Top-b.Top)
	case b.Top > st.Top && b.Bottom > st.Bottom:
		dy = max(st.Top-b.Top, st.Bottom-b.Bottom)
	}
	s.SetXY(s.X+dx, s.Y+dy)
}

// Bounce turns the sprite away from the nearest stage edge it touches and
// moves it back inside the stage
func (w *World) Bounce(s *Sprite) {
	b := s.Bounds()
	st := w.StageRect()
	dl := b.Left - st.Left
	dr := st.Right - b.Right
	db := b.Bottom - st.Bottom
	dt := st.Top - b.Top
	nearest := min(dl, dr, db, dt)
	if nearest > 0 {
		return
	}

	rad := radians(90 - s.direction)
	dx, dy := math.Cos(rad), math.Sin(rad)
	switch nearest {
	case dl:
		dx = max(0.2, math.Abs(dx))
	case dr:
		dx = -max(0.2, math.Abs(dx))
	case dt:
		dy = -max(0.2, math.Abs(dy))
	case db:
		dy = max(0.2, math.Abs(dy))
	}
	s.SetDirection(90 - degrees(math.Atan2(dy, dx)))
	w.KeepOnStage(s)
}
