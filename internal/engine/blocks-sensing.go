package engine

import (
	"strings"
	"time"

	"github.com/kode4food/flagstaff/pkg/api"
)

var epoch2000 = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func sensingBlocks() Registry {
	return Registry{
		api.OpTouchingObject:     reporter(touchingObject),
		api.OpTouchingColor:      reporter(noColor),
		api.OpColorTouchingColor: reporter(noColor),
		api.OpDistanceTo:         reporter(distanceTo),
		api.OpAskAndWait:         command(askAndWait),
		api.OpAnswer:             reporter(answer),
		api.OpKeyPressed:         reporter(keyPressed),
		api.OpMouseDown:          reporter(mouseDown),
		api.OpMouseX:             reporter(mouseX),
		api.OpMouseY:             reporter(mouseY),
		api.OpSetDragMode:        command(setDragMode),
		api.OpLoudness:           reporter(loudness),
		api.OpTimer:              reporter(timer),
		api.OpResetTimer:         command(resetTimer),
		api.OpOf:                 reporter(of),
		api.OpCurrent:            reporter(current),
		api.OpDaysSince2000:      reporter(daysSince2000),
		api.OpUsername:           reporter(username),
	}
}

func touchingObject(c *Context) api.Value {
	s := c.Sprite()
	if s.IsStage {
		return api.Bool(false)
	}
	switch target := c.String("TOUCHINGOBJECTMENU"); target {
	case MouseTarget:
		in := c.Engine().Input()
		return api.Bool(s.Visible && s.Bounds().Contains(in.MouseX, in.MouseY))
	case EdgeTarget:
		return api.Bool(c.World().TouchingEdge(s))
	default:
		return api.Bool(c.World().TouchingSprite(s, target))
	}
}

// noColor reports false. Color sensing needs rendered pixels, which a
// headless engine does not have
func noColor(*Context) api.Value {
	return api.Bool(false)
}

func distanceTo(c *Context) api.Value {
	s := c.Sprite()
	target := c.String("DISTANCETOMENU")
	if target != MouseTarget && target != RandomTarget {
		if o := c.World().Original(target); o == nil || o.IsStage {
			return api.Int(0)
		}
	}
	x, y, ok := c.targetXY(target)
	if !ok || target == RandomTarget {
		return api.Int(0)
	}
	return api.Num(Distance(s.X, s.Y, x, y))
}

func askAndWait(c *Context) Result {
	return c.Await(func() Waiter {
		return c.Engine().Ask(c.Sprite(), c.Chain(), c.String("QUESTION"))
	})
}

func answer(c *Context) api.Value {
	return api.Str(c.Engine().LastAnswer())
}

func keyPressed(c *Context) api.Value {
	return api.Bool(c.Engine().Input().KeyDown(c.String("KEY_OPTION")))
}

func mouseDown(c *Context) api.Value {
	return api.Bool(c.Engine().Input().MouseDown)
}

func mouseX(c *Context) api.Value {
	return api.Num(c.Engine().Input().MouseX)
}

func mouseY(c *Context) api.Value {
	return api.Num(c.Engine().Input().MouseY)
}

func setDragMode(c *Context) Result {
	switch c.Field("DRAG_MODE") {
	case "draggable":
		c.Sprite().Draggable = true
	case "not draggable":
		c.Sprite().Draggable = false
	}
	return Continue
}

func loudness(*Context) api.Value {
	return api.Int(silence)
}

func timer(c *Context) api.Value {
	return api.Num(c.Engine().Timer())
}

func resetTimer(c *Context) Result {
	c.Engine().ResetTimer()
	return Continue
}

func of(c *Context) api.Value {
	prop := c.Field("PROPERTY")
	target := c.World().Original(c.String("OBJECT"))
	if target == nil {
		return api.Int(0)
	}
	if target.IsStage {
		switch prop {
		case "backdrop #":
			return api.Int(target.CostumeIndex() + 1)
		case "backdrop name":
			return lookReport(target, "name")
		case "volume":
			return api.Num(target.Volume())
		}
	} else {
		switch prop {
		case "x position":
			return api.Num(target.X)
		case "y position":
			return api.Num(target.Y)
		case "direction":
			return api.Num(target.Direction())
		case "costume #":
			return api.Int(target.CostumeIndex() + 1)
		case "costume name":
			return lookReport(target, "name")
		case "size":
			return api.Num(target.Size)
		case "volume":
			return api.Num(target.Volume())
		}
	}
	if v := findVariable(target.Variables, "", prop); v != nil {
		return v.Value
	}
	return api.Int(0)
}

func current(c *Context) api.Value {
	now := c.Now().Local()
	switch strings.ToUpper(c.Field("CURRENTMENU")) {
	case "YEAR":
		return api.Int(now.Year())
	case "MONTH":
		return api.Int(int(now.Month()))
	case "DATE":
		return api.Int(now.Day())
	case "DAYOFWEEK":
		return api.Int(int(now.Weekday()) + 1)
	case "HOUR":
		return api.Int(now.Hour())
	case "MINUTE":
		return api.Int(now.Minute())
	case "SECOND":
		return api.Int(now.Second())
	default:
		return api.Value{}
	}
}

func daysSince2000(c *Context) api.Value {
	return api.Num(c.Now().Sub(epoch2000).Hours() / 24)
}

func username(c *Context) api.Value {
	return api.Str(c.Engine().config.Username)
}
