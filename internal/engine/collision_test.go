package engine_test

import (
	"testing"

	"github.com/kode4food/flagstaff/internal/assert"
	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/engine"
)

func TestRect(t *testing.T) {
	as := assert.New(t)
	r := engine.Rect{Left: -10, Right: 10, Bottom: -5, Top: 5}

	as.True(r.Contains(0, 0))
	as.True(r.Contains(10, 5))
	as.False(r.Contains(10.1, 0))

	as.True(r.Overlaps(engine.Rect{Left: 10, Right: 20, Bottom: 0, Top: 1}))
	as.False(r.Overlaps(engine.Rect{Left: 11, Right: 20, Bottom: 0, Top: 1}))

	as.False(r.Empty())
	as.True(engine.Rect{Left: 1, Right: 1, Bottom: 0, Top: 4}.Empty())
}

func TestBoundsScaleWithSize(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	cat.X, cat.Y = 10, 20
	cat.Costumes[0].BitmapResolution = 2

	helpers.WithEngine(t, helpers.NewProject(cat), func(eng *engine.Engine) {
		as := assert.New(t)
		s := eng.World().Original("Cat")
		as.Equal(engine.Rect{Left: 5, Right: 15, Bottom: 15, Top: 25}, s.Bounds())

		s.SetSize(200)
		as.Equal(engine.Rect{Left: 0, Right: 20, Bottom: 10, Top: 30}, s.Bounds())
	})
}

func TestKeepOnStage(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.WithEngine(t, helpers.NewProject(cat), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()
		s := w.Original("Cat")

		s.SetXY(300, -400)
		w.KeepOnStage(s)
		as.SpriteAt(s, 230, -170)

		s.SetXY(12, 34)
		w.KeepOnStage(s)
		as.SpriteAt(s, 12, 34)
	})
}

func TestBounce(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.WithEngine(t, helpers.NewProject(cat), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()
		s := w.Original("Cat")

		s.SetXY(235, 0)
		w.Bounce(s)
		as.InDelta(-90.0, s.Direction(), 1e-9)
		as.SpriteAt(s, 230, 0)

		s.SetXY(0, 0)
		s.SetDirection(45)
		w.Bounce(s)
		as.Equal(45.0, s.Direction())
	})
}

func TestTouchingEdgeAndSprites(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	dog := helpers.NewSprite("Dog")
	dog.X = 15

	helpers.WithEngine(t, helpers.NewProject(cat, dog), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()
		c := w.Original("Cat")
		d := w.Original("Dog")

		as.True(w.TouchingSprite(c, "Dog"))
		as.False(w.TouchingSprite(c, "Cat"))

		d.Visible = false
		as.False(w.TouchingSprite(c, "Dog"))

		as.False(w.TouchingEdge(c))
		c.SetXY(-235, 0)
		as.True(w.TouchingEdge(c))
	})
}

func TestDistance(t *testing.T) {
	as := assert.New(t)
	as.Equal(5.0, engine.Distance(0, 0, 3, 4))
	as.Equal(0.0, engine.Distance(7, 7, 7, 7))
}
