package engine_test

import (
	"math"
	"testing"

	"github.com/kode4food/flagstaff/internal/assert"
	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
)

func TestHandleGoesStale(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	helpers.WithEngine(t, helpers.NewProject(cat), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()
		clone, err := eng.CreateClone(w.Original("Cat"))
		as.Require.NoError(err)

		h := clone.Handle()
		as.True(h.IsValid())
		as.Same(clone, w.Get(h))

		as.True(eng.DeleteClone(clone))
		as.Nil(w.Get(h))
		as.False(clone.Alive())
		as.Equal(1, w.Sweep())

		again, err := eng.CreateClone(w.Original("Cat"))
		as.Require.NoError(err)
		as.NotEqual(h, again.Handle())
		as.Nil(w.Get(h))
		as.Same(again, w.Get(again.Handle()))
	})
}

func TestZeroHandleIsInvalid(t *testing.T) {
	as := assert.New(t)
	var h engine.Handle
	as.False(h.IsValid())
	as.Nil(engine.NewWorld(480, 360).Get(h))
}

func TestWorldLookup(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	dog := helpers.NewSprite("Dog")
	helpers.WithEngine(t, helpers.NewProject(cat, dog), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()

		as.Equal(3, w.Len())
		as.True(w.Stage().IsStage)
		as.Same(w.Stage(), w.Original(engine.StageName))
		as.Equal("Dog", w.Original("Dog").Name)
		as.Nil(w.Original("Cow"))

		_, err := eng.CreateClone(w.Original("Cat"))
		as.Require.NoError(err)
		as.Len(w.Instances("Cat"), 2)
		as.Equal(1, w.CloneCount())
		as.False(w.Original("Cat").IsClone)

		width, height := w.Size()
		as.Equal(480.0, width)
		as.Equal(360.0, height)
	})
}

func TestLayers(t *testing.T) {
	a := helpers.NewSprite("A")
	b := helpers.NewSprite("B")
	c := helpers.NewSprite("C")
	a.LayerOrder, b.LayerOrder, c.LayerOrder = 3, 1, 2

	helpers.WithEngine(t, helpers.NewProject(a, b, c), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()
		names := func() []string {
			var res []string
			for _, s := range w.Layered() {
				res = append(res, s.Name)
			}
			return res
		}
		as.Equal([]string{"Stage", "B", "C", "A"}, names())

		w.MoveToFront(w.Original("B"))
		as.Equal([]string{"Stage", "C", "A", "B"}, names())

		w.MoveToBack(w.Original("A"))
		as.Equal([]string{"Stage", "A", "C", "B"}, names())

		w.MoveLayers(w.Original("A"), 1)
		as.Equal([]string{"Stage", "C", "A", "B"}, names())

		w.MoveLayers(w.Original("C"), -5)
		as.Equal([]string{"Stage", "C", "A", "B"}, names())
		as.Equal(0, w.LayerOf(w.Stage()))
		as.Equal(3, w.LayerOf(w.Original("B")))

		clone, err := eng.CreateClone(w.Original("B"))
		as.Require.NoError(err)
		as.Equal(3, w.LayerOf(clone))
		as.Equal(4, w.LayerOf(w.Original("B")))
	})
}

func TestTopAt(t *testing.T) {
	a := helpers.NewSprite("A")
	b := helpers.NewSprite("B")
	b.X = 5
	b.LayerOrder = 2

	helpers.WithEngine(t, helpers.NewProject(a, b), func(eng *engine.Engine) {
		as := assert.New(t)
		w := eng.World()
		as.Equal("B", w.TopAt(6, 0).Name)
		as.Equal("A", w.TopAt(-8, 0).Name)
		as.Nil(w.TopAt(100, 100))

		w.Original("B").Visible = false
		as.Equal("A", w.TopAt(6, 0).Name)
	})
}

func TestSpriteSetters(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	cat.Costumes = append(cat.Costumes, &api.Costume{Name: "costume2"})

	helpers.WithEngine(t, helpers.NewProject(cat), func(eng *engine.Engine) {
		as := assert.New(t)
		s := eng.World().Original("Cat")

		s.SetDirection(270)
		as.Equal(-90.0, s.Direction())
		s.SetDirection(-180)
		as.Equal(180.0, s.Direction())

		s.SetVolume(150)
		as.Equal(100.0, s.Volume())
		s.SetVolume(-3)
		as.Equal(0.0, s.Volume())

		s.SetSize(-10)
		as.Equal(0.0, s.Size)

		s.SetCostume(3)
		as.Equal(1, s.CostumeIndex())
		s.SetCostume(-1)
		as.Equal("costume2", s.Costume().Name)
		as.True(s.SetCostumeByName("costume1"))
		as.False(s.SetCostumeByName("nope"))

		s.SetXY(1, 2)
		s.SetXY(1, math.NaN())
		as.SpriteAt(s, 1, 2)
	})
}

func TestVariablesFallBackToStage(t *testing.T) {
	stage := helpers.NewStage()
	global := helpers.Variable(stage, "score", api.Num(5))
	cat := helpers.NewSprite("Cat")
	local := helpers.Variable(cat, "lives", api.Num(3))

	helpers.WithEngine(t, helpers.NewProject(stage, cat), func(eng *engine.Engine) {
		as := assert.New(t)
		s := eng.World().Original("Cat")

		as.Equal(3.0, s.Variable(local, "lives").Value.AsNumber())
		as.Equal(5.0, s.Variable("", "score").Value.AsNumber())
		as.Equal(global, s.Variable(global, "").ID)
		as.Nil(s.Variable("", "missing"))

		v := s.EnsureVariable("", "made")
		as.Same(v, eng.World().Stage().Variable("made", ""))

		clone, err := eng.CreateClone(s)
		as.Require.NoError(err)
		clone.Variable(local, "").Value = api.Num(1)
		as.Equal(3.0, s.Variable(local, "").Value.AsNumber())
	})
}
