package engine

import (
	"math"

	"github.com/kode4food/flagstaff/pkg/api"
)

const (
	stopAll          = "all"
	stopOtherScripts = "other scripts in sprite"
	stopOtherStage   = "other scripts in stage"
)

func controlBlocks() Registry {
	return Registry{
		api.OpWait:            command(wait),
		api.OpRepeat:          command(repeat),
		api.OpForever:         command(forever),
		api.OpIf:              command(ifThen),
		api.OpIfElse:          command(ifElse),
		api.OpWaitUntil:       command(waitUntil),
		api.OpRepeatUntil:     command(repeatUntil),
		api.OpStop:            command(stop),
		api.OpStartAsClone:    hat(anyHat),
		api.OpCreateClone:     command(createClone),
		api.OpDeleteThisClone: command(deleteThisClone),
	}
}

func wait(c *Context) Result {
	return c.Await(func() Waiter {
		at := c.Now().Add(seconds(c.Number("DURATION")))
		return Until(c.Engine().clock, at)
	})
}

func repeat(c *Context) Result {
	if !c.Waiting() {
		n := int(math.Round(c.Number("TIMES")))
		if n <= 0 {
			return Continue
		}
		c.Suspend(CountDown(n))
	}
	return c.Loop(c.Decrement)
}

func forever(c *Context) Result {
	if !c.Waiting() {
		c.Suspend(Looped())
	}
	return c.Loop(func() bool {
		return true
	})
}

func ifThen(c *Context) Result {
	if c.Bool("CONDITION") {
		return c.RunSubstack("SUBSTACK")
	}
	return Continue
}

func ifElse(c *Context) Result {
	if c.Bool("CONDITION") {
		return c.RunSubstack("SUBSTACK")
	}
	return c.RunSubstack("SUBSTACK2")
}

func waitUntil(c *Context) Result {
	if c.Bool("CONDITION") {
		return Continue
	}
	if !c.Waiting() {
		c.Suspend(Looped())
	}
	return Return
}

func repeatUntil(c *Context) Result {
	if !c.Waiting() {
		c.Suspend(Looped())
	}
	return c.Loop(func() bool {
		return !c.Bool("CONDITION")
	})
}

func stop(c *Context) Result {
	e := c.Engine()
	switch c.Field("STOP_OPTION") {
	case stopAll:
		e.StopAll()
	case stopOtherScripts, stopOtherStage:
		for _, ch := range c.Sprite().chains {
			if ch != c.Chain() {
				e.halt(ch)
			}
		}
	default:
		c.Halt()
	}
	return Continue
}

func createClone(c *Context) Result {
	s := c.Sprite()
	target := c.String("CLONE_OPTION")
	parent := s
	if target != MyselfTarget {
		parent = c.World().Original(target)
	}
	if parent != nil {
		_, _ = c.Engine().CreateClone(parent)
	}
	return Continue
}

func deleteThisClone(c *Context) Result {
	c.Engine().DeleteClone(c.Sprite())
	return Continue
}
