package engine

import (
	"math"
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
)

const (
	nextCostume      = "next costume"
	previousCostume  = "previous costume"
	nextBackdrop     = "next backdrop"
	previousBackdrop = "previous backdrop"
	randomBackdrop   = "random backdrop"
)

func looksBlocks() Registry {
	return Registry{
		api.OpSayForSecs:            command(sayForSecs(api.BubbleSay)),
		api.OpSay:                   command(say(api.BubbleSay)),
		api.OpThinkForSecs:          command(sayForSecs(api.BubbleThink)),
		api.OpThink:                 command(say(api.BubbleThink)),
		api.OpSwitchCostumeTo:       command(switchCostumeTo),
		api.OpNextCostume:           command(nextCostumeBlock),
		api.OpSwitchBackdropTo:      command(switchBackdropTo),
		api.OpSwitchBackdropAndWait: command(switchBackdropAndWait),
		api.OpNextBackdrop:          command(nextBackdropBlock),
		api.OpChangeSizeBy:          command(changeSizeBy),
		api.OpSetSizeTo:             command(setSizeTo),
		api.OpChangeEffectBy:        command(changeEffectBy),
		api.OpSetEffectTo:           command(setEffectTo),
		api.OpClearGraphicEffects:   command(clearGraphicEffects),
		api.OpShow:                  command(setVisible(true)),
		api.OpHide:                  command(setVisible(false)),
		api.OpGoToFrontBack:         command(goToFrontBack),
		api.OpGoForwardBackward:     command(goForwardBackward),
		api.OpCostumeNumberName:     reporter(costumeNumberName),
		api.OpBackdropNumberName:    reporter(backdropNumberName),
		api.OpSize:                  reporter(size),
	}
}

func say(kind api.BubbleKind) CommandFunc {
	return func(c *Context) Result {
		c.Engine().say(c.Sprite(), kind, c.String("MESSAGE"))
		return Continue
	}
}

func sayForSecs(kind api.BubbleKind) CommandFunc {
	return func(c *Context) Result {
		return c.Await(func() Waiter {
			s := c.Sprite()
			text := c.String("MESSAGE")
			c.Engine().say(s, kind, text)
			until := Until(c.Engine().clock, c.Now().Add(seconds(c.Number("SECS"))))
			return WaiterFunc(func() bool {
				if !until.Ready() {
					return false
				}
				if s.Bubble.Text == text && s.Bubble.Kind == kind {
					s.Say(kind, "")
				}
				return true
			})
		})
	}
}

func switchCostumeTo(c *Context) Result {
	s := c.Sprite()
	s.selectCostume(c.Input("COSTUME"), nextCostume, previousCostume)
	if s.IsStage {
		c.Engine().backdropSwitched()
	}
	return Continue
}

func nextCostumeBlock(c *Context) Result {
	s := c.Sprite()
	s.SetCostume(s.CostumeIndex() + 1)
	if s.IsStage {
		c.Engine().backdropSwitched()
	}
	return Continue
}

func switchBackdropTo(c *Context) Result {
	c.Engine().SwitchBackdrop(c.Input("BACKDROP"))
	return Continue
}

func switchBackdropAndWait(c *Context) Result {
	return c.Await(func() Waiter {
		if t := c.Engine().SwitchBackdrop(c.Input("BACKDROP")); t != nil {
			return t
		}
		return nil
	})
}

func nextBackdropBlock(c *Context) Result {
	c.Engine().SwitchBackdrop(api.Str(nextBackdrop))
	return Continue
}

func changeSizeBy(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetSize(s.Size + c.Number("CHANGE"))
	}
	return Continue
}

func setSizeTo(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetSize(c.Number("SIZE"))
	}
	return Continue
}

func changeEffectBy(c *Context) Result {
	s := c.Sprite()
	name := effectName(c.Field("EFFECT"))
	s.Effects[name] = clampEffect(name, s.Effects[name]+c.Number("CHANGE"))
	return Continue
}

func setEffectTo(c *Context) Result {
	s := c.Sprite()
	name := effectName(c.Field("EFFECT"))
	s.Effects[name] = clampEffect(name, c.Number("VALUE"))
	return Continue
}

func clearGraphicEffects(c *Context) Result {
	clear(c.Sprite().Effects)
	return Continue
}

func setVisible(visible bool) CommandFunc {
	return func(c *Context) Result {
		if s := c.Sprite(); !s.IsStage {
			s.Visible = visible
		}
		return Continue
	}
}

func goToFrontBack(c *Context) Result {
	s := c.Sprite()
	if c.Field("FRONT_BACK") == "back" {
		c.World().MoveToBack(s)
	} else {
		c.World().MoveToFront(s)
	}
	return Continue
}

func goForwardBackward(c *Context) Result {
	n := c.Input("NUM").AsInt()
	if c.Field("FORWARD_BACKWARD") == "backward" {
		n = -n
	}
	c.World().MoveLayers(c.Sprite(), n)
	return Continue
}

func costumeNumberName(c *Context) api.Value {
	return lookReport(c.Sprite(), c.Field("NUMBER_NAME"))
}

func backdropNumberName(c *Context) api.Value {
	st := c.World().Stage()
	if st == nil {
		return api.Int(1)
	}
	return lookReport(st, c.Field("NUMBER_NAME"))
}

func size(c *Context) api.Value {
	return api.Num(math.Round(c.Sprite().Size))
}

// SwitchBackdrop changes the stage costume and raises the backdrop hats,
// returning the ticket of the chains they start
func (e *Engine) SwitchBackdrop(v api.Value) *Ticket {
	st := e.world.Stage()
	if st == nil {
		return nil
	}
	if v.AsString() == randomBackdrop {
		if n := len(st.Costumes); n > 1 {
			st.SetCostume(st.CostumeIndex() + 1 + e.rand.IntN(n-1))
		}
	} else {
		st.selectCostume(v, nextBackdrop, previousBackdrop)
	}
	return e.backdropSwitched()
}

func (e *Engine) backdropSwitched() *Ticket {
	st := e.world.Stage()
	c := st.Costume()
	if c == nil {
		return nil
	}
	return e.dispatcher.Enqueue(Trigger{
		Opcode: api.OpWhenBackdropSwitches,
		Match:  c.Name,
	})
}

func (e *Engine) say(s *Sprite, kind api.BubbleKind, text string) {
	if s.IsStage {
		return
	}
	s.Say(kind, text)
	e.publish(&api.Event{
		Type:   api.EventTypeSay,
		Sprite: s.Name,
		Data: map[string]any{
			"text": text,
			"kind": string(kind),
		},
	})
}

// selectCostume switches to the costume named by v, falling back to a
// 1-based costume number for numeric values
func (s *Sprite) selectCostume(v api.Value, next, prev string) {
	if v.Kind() == api.KindString {
		name := v.AsString()
		switch {
		case s.SetCostumeByName(name):
			return
		case name == next:
			s.SetCostume(s.costume + 1)
			return
		case name == prev:
			s.SetCostume(s.costume - 1)
			return
		case strings.TrimSpace(name) == "" || !v.IsNumeric():
			return
		}
	}
	s.SetCostume(v.AsInt() - 1)
}

func lookReport(s *Sprite, kind string) api.Value {
	if kind == "name" {
		if c := s.Costume(); c != nil {
			return api.Str(c.Name)
		}
		return api.Str("")
	}
	return api.Int(s.CostumeIndex() + 1)
}

func effectName(name string) string {
	return strings.ToLower(name)
}

func clampEffect(name string, v float64) float64 {
	switch name {
	case "ghost":
		return min(max(v, 0), 100)
	case "brightness":
		return min(max(v, -100), 100)
	default:
		return v
	}
}
