package engine

import (
	"math"
	"time"

	"github.com/kode4food/flagstaff/pkg/api"
)

type glide struct {
	sprite *Sprite
	now    Clock
	start  time.Time
	dur    time.Duration
	fromX  float64
	fromY  float64
	toX    float64
	toY    float64
}

func motionBlocks() Registry {
	return Registry{
		api.OpMoveSteps:        command(moveSteps),
		api.OpTurnRight:        command(turn(1)),
		api.OpTurnLeft:         command(turn(-1)),
		api.OpGoTo:             command(goTo),
		api.OpGoToXY:           command(goToXY),
		api.OpGlideTo:          command(glideTo),
		api.OpGlideSecsToXY:    command(glideSecsToXY),
		api.OpPointInDirection: command(pointInDirection),
		api.OpPointTowards:     command(pointTowards),
		api.OpChangeXBy:        command(changeXBy),
		api.OpSetX:             command(setX),
		api.OpChangeYBy:        command(changeYBy),
		api.OpSetY:             command(setY),
		api.OpIfOnEdgeBounce:   command(ifOnEdgeBounce),
		api.OpSetRotationStyle: command(setRotationStyle),
		api.OpXPosition:        reporter(xPosition),
		api.OpYPosition:        reporter(yPosition),
		api.OpDirection:        reporter(direction),
	}
}

func moveSteps(c *Context) Result {
	s := c.Sprite()
	if s.IsStage {
		return Continue
	}
	steps := c.Number("STEPS")
	rad := radians(90 - s.Direction())
	s.SetXY(s.X+steps*math.Cos(rad), s.Y+steps*math.Sin(rad))
	return Continue
}

func turn(sign float64) CommandFunc {
	return func(c *Context) Result {
		s := c.Sprite()
		if !s.IsStage {
			s.SetDirection(s.Direction() + sign*c.Number("DEGREES"))
		}
		return Continue
	}
}

func goTo(c *Context) Result {
	s := c.Sprite()
	if s.IsStage {
		return Continue
	}
	if x, y, ok := c.targetXY(c.String("TO")); ok {
		s.SetXY(x, y)
	}
	return Continue
}

func goToXY(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetXY(c.Number("X"), c.Number("Y"))
	}
	return Continue
}

func glideTo(c *Context) Result {
	return c.Await(func() Waiter {
		x, y, ok := c.targetXY(c.String("TO"))
		if !ok {
			return nil
		}
		return c.glide(c.Number("SECS"), x, y)
	})
}

func glideSecsToXY(c *Context) Result {
	return c.Await(func() Waiter {
		return c.glide(c.Number("SECS"), c.Number("X"), c.Number("Y"))
	})
}

func pointInDirection(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetDirection(c.Number("DIRECTION"))
	}
	return Continue
}

func pointTowards(c *Context) Result {
	s := c.Sprite()
	if s.IsStage {
		return Continue
	}
	target := c.String("TOWARDS")
	if target == RandomTarget {
		s.SetDirection(c.Engine().rand.Float64()*360 - 180)
		return Continue
	}
	x, y, ok := c.targetXY(target)
	if !ok {
		return Continue
	}
	dx, dy := x-s.X, y-s.Y
	if dx == 0 && dy == 0 {
		return Continue
	}
	s.SetDirection(90 - degrees(math.Atan2(dy, dx)))
	return Continue
}

func changeXBy(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetXY(s.X+c.Number("DX"), s.Y)
	}
	return Continue
}

func setX(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetXY(c.Number("X"), s.Y)
	}
	return Continue
}

func changeYBy(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetXY(s.X, s.Y+c.Number("DY"))
	}
	return Continue
}

func setY(c *Context) Result {
	s := c.Sprite()
	if !s.IsStage {
		s.SetXY(s.X, c.Number("Y"))
	}
	return Continue
}

func ifOnEdgeBounce(c *Context) Result {
	if s := c.Sprite(); !s.IsStage {
		c.World().Bounce(s)
	}
	return Continue
}

func setRotationStyle(c *Context) Result {
	style := api.RotationStyle(c.Field("STYLE"))
	if style.IsValid() {
		c.Sprite().RotationStyle = style
	}
	return Continue
}

func xPosition(c *Context) api.Value {
	return api.Num(c.Sprite().X)
}

func yPosition(c *Context) api.Value {
	return api.Num(c.Sprite().Y)
}

func direction(c *Context) api.Value {
	return api.Num(c.Sprite().Direction())
}

// targetXY resolves a position menu token: the mouse pointer, a random
// stage position, or the position of a sprite
func (c *Context) targetXY(target string) (float64, float64, bool) {
	e := c.Engine()
	switch target {
	case MouseTarget:
		in := e.Input()
		return in.MouseX, in.MouseY, true
	case RandomTarget:
		st := e.world.StageRect()
		x := st.Left + e.rand.Float64()*(st.Right-st.Left)
		y := st.Bottom + e.rand.Float64()*(st.Top-st.Bottom)
		return math.Round(x), math.Round(y), true
	}
	o := e.world.Original(target)
	if o == nil || o.IsStage {
		return 0, 0, false
	}
	return o.X, o.Y, true
}

func (c *Context) glide(secs, x, y float64) Waiter {
	s := c.Sprite()
	if s.IsStage {
		return nil
	}
	g := &glide{
		sprite: s,
		now:    c.Engine().clock,
		start:  c.Now(),
		dur:    seconds(secs),
		fromX:  s.X,
		fromY:  s.Y,
		toX:    x,
		toY:    y,
	}
	if g.dur <= 0 {
		s.SetXY(x, y)
		return nil
	}
	return g
}

// Ready moves the sprite along the glide and reports its arrival
func (g *glide) Ready() bool {
	elapsed := g.now().Sub(g.start)
	if elapsed >= g.dur {
		g.sprite.SetXY(g.toX, g.toY)
		return true
	}
	f := float64(elapsed) / float64(g.dur)
	g.sprite.SetXY(
		g.fromX+(g.toX-g.fromX)*f,
		g.fromY+(g.toY-g.fromY)*f,
	)
	return false
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func seconds(secs float64) time.Duration {
	if !finite(secs) || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
