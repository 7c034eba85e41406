package engine

import (
	"github.com/kode4food/flagstaff/internal/input"
	"github.com/kode4food/flagstaff/pkg/api"
)

type drag struct {
	sprite  Handle
	offsetX float64
	offsetY float64
}

// Input returns the input snapshot read at the start of the current tick
func (e *Engine) Input() input.Snapshot {
	return e.keys
}

func (e *Engine) readInput() {
	prev := e.keys
	snap := e.input.Snapshot()
	e.keys = snap

	for _, k := range snap.Pressed(prev) {
		e.dispatcher.Enqueue(Trigger{
			Opcode: api.OpWhenKeyPressed,
			Match:  input.NormalizeKey(k),
		})
	}

	switch {
	case snap.MouseDown && !prev.MouseDown:
		e.press(snap.MouseX, snap.MouseY)
	case snap.MouseDown && e.drag != nil:
		e.dragTo(snap.MouseX, snap.MouseY)
	case !snap.MouseDown:
		e.drag = nil
	}
}

func (e *Engine) press(x, y float64) {
	s := e.world.TopAt(x, y)
	if s == nil {
		e.dispatcher.Enqueue(Trigger{Opcode: api.OpWhenStageClicked})
		return
	}
	e.dispatcher.Enqueue(Trigger{
		Opcode: api.OpWhenThisSpriteClicked,
		Target: s.handle,
	})
	if s.Draggable {
		e.drag = &drag{
			sprite:  s.handle,
			offsetX: s.X - x,
			offsetY: s.Y - y,
		}
		e.world.MoveToFront(s)
	}
}

func (e *Engine) dragTo(x, y float64) {
	s := e.world.Get(e.drag.sprite)
	if s == nil {
		e.drag = nil
		return
	}
	s.SetXY(x+e.drag.offsetX, y+e.drag.offsetY)
	e.world.KeepOnStage(s)
}

func keyHat(hat *api.Block, match string) bool {
	f, ok := hat.Field("KEY_OPTION")
	if !ok {
		return false
	}
	key := input.NormalizeKey(f.Value())
	return key == input.AnyKey || key == input.NormalizeKey(match)
}
