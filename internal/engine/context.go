package engine

import (
	"time"

	"github.com/kode4food/flagstaff/pkg/api"
)

// Context is handed to a block handler for one invocation. It exposes the
// executing sprite and block, the block's resumption state, and the
// scheduler operations a handler may use
type Context struct {
	engine *Engine
	sprite *Sprite
	chain  *Chain
	block  *api.Block
	frame  *Frame
}

// Engine returns the running engine
func (c *Context) Engine() *Engine {
	return c.engine
}

// World returns the sprite collection
func (c *Context) World() *World {
	return c.engine.world
}

// Sprite returns the sprite executing the block
func (c *Context) Sprite() *Sprite {
	return c.sprite
}

// Chain returns the chain executing the block
func (c *Context) Chain() *Chain {
	return c.chain
}

// Block returns the block being executed
func (c *Context) Block() *api.Block {
	return c.block
}

// Now returns the engine clock's current time
func (c *Context) Now() time.Time {
	return c.engine.clock()
}

// State returns the block's resumption state. Blocks that are not
// suspended are Idle
func (c *Context) State() Suspension {
	if c.frame == nil {
		return Suspension{}
	}
	return c.frame.State
}

// Suspend records the block's resumption state, placing the block on its
// chain's frame stack if it is not already there
func (c *Context) Suspend(s Suspension) {
	if c.frame == nil {
		c.frame = &Frame{Block: c.block}
		c.engine.push(c.chain, c.frame)
	}
	c.frame.State = s
}

// Decrement consumes one iteration of a CountingDown state, reporting
// false once none remain
func (c *Context) Decrement() bool {
	if c.frame == nil || c.frame.State.Remaining <= 0 {
		return false
	}
	c.frame.State.Remaining--
	return true
}

// Await suspends the block until the Waiter built by start is ready. start
// runs only on the first invocation. A nil Waiter completes immediately
func (c *Context) Await(start func() Waiter) Result {
	st := c.State()
	if st.Kind != AwaitingExternal {
		w := start()
		if w == nil {
			return Continue
		}
		c.Suspend(Await(w))
		return Return
	}
	if st.Waiter.Ready() {
		return Continue
	}
	return Return
}

// Waiting reports whether the block was already suspended on an earlier
// invocation
func (c *Context) Waiting() bool {
	return c.frame != nil && c.frame.State.Kind != Idle
}

// RunSubstack runs the substack held by the named input. When the substack
// suspends, the block remains on the frame stack and Return is reported
func (c *Context) RunSubstack(name string) Result {
	in, ok := c.block.Input(name)
	if !ok || !in.IsBlock() {
		return Continue
	}
	return c.runBody(in.Block, nil, false)
}

// Loop runs the SUBSTACK input while next reports another iteration is
// due. Outside warp mode it yields after every iteration
func (c *Context) Loop(next func() bool) Result {
	limit := c.engine.config.MaxWarpIterations
	for i := 1; ; i++ {
		if !next() {
			return Continue
		}
		if c.RunSubstack("SUBSTACK") == Return {
			return Return
		}
		if !c.Warp() || i >= limit {
			return Return
		}
	}
}

// Warp reports whether the chain runs without screen refresh
func (c *Context) Warp() bool {
	return c.chain.warp()
}

// Halt stops the chain executing the block
func (c *Context) Halt() {
	c.engine.halt(c.chain)
}

// Halted reports whether the executing chain has been stopped
func (c *Context) Halted() bool {
	return c.chain.halted || c.sprite.dead
}

// Argument returns the value of a procedure argument visible to the block
func (c *Context) Argument(name string) (api.Value, bool) {
	return c.chain.argument(name)
}

func (c *Context) runBody(
	id api.BlockID, args map[string]api.Value, warp bool,
) Result {
	pushed := false
	if c.frame == nil || args != nil {
		f := &Frame{Block: c.block, State: Body(), Args: args, Warp: warp}
		c.engine.push(c.chain, f)
		c.frame = f
		pushed = true
	}

	switch c.engine.walk(c.sprite, c.chain, id) {
	case flowSuspended:
		return Return
	case flowHalted:
		return Return
	}

	if pushed {
		c.engine.popTo(c.chain, c.frame)
		c.frame = nil
	}
	return Continue
}
