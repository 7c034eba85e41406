package engine

import (
	"slices"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// Chain is one script of a sprite instance, keyed by its hat block. It
	// carries the stack of suspended blocks that resumes the script on a
	// later tick
	Chain struct {
		hat    *api.Block
		runID  api.RunID
		frames []*Frame
		sprite Handle
		edge   bool
		active bool
		halted bool
	}

	// Frame pairs a suspended block with its resumption state. Procedure
	// calls also carry their argument values and warp mode
	Frame struct {
		Block *api.Block
		Args  map[string]api.Value
		State Suspension
		Warp  bool
	}
)

func newChain(hat *api.Block) *Chain {
	return &Chain{hat: hat}
}

// ID returns the hat block id that identifies the chain in its sprite
func (c *Chain) ID() api.BlockID {
	return c.hat.ID
}

// Hat returns the block that starts the chain
func (c *Chain) Hat() *api.Block {
	return c.hat
}

// Sprite returns the handle of the owning sprite
func (c *Chain) Sprite() Handle {
	return c.sprite
}

// RunID returns the id of the current run, empty when idle
func (c *Chain) RunID() api.RunID {
	return c.runID
}

// Active reports whether the chain has started and not yet finished
func (c *Chain) Active() bool {
	return c.active
}

// Waiting reports whether the chain holds suspended frames
func (c *Chain) Waiting() bool {
	return len(c.frames) > 0
}

// Depth returns the number of suspended frames
func (c *Chain) Depth() int {
	return len(c.frames)
}

// Top returns the most recently suspended frame, or nil
func (c *Chain) Top() *Frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Frames returns a copy of the frame stack, bottom first
func (c *Chain) Frames() []Frame {
	res := make([]Frame, len(c.frames))
	for i, f := range c.frames {
		res[i] = *f
	}
	return res
}

func (c *Chain) index(f *Frame) int {
	return slices.Index(c.frames, f)
}

func (c *Chain) callDepth() int {
	res := 0
	for _, f := range c.frames {
		if f.Args != nil {
			res++
		}
	}
	return res
}

func (c *Chain) warp() bool {
	return slices.ContainsFunc(c.frames, func(f *Frame) bool {
		return f.Warp
	})
}

func (c *Chain) argument(name string) (api.Value, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if args := c.frames[i].Args; args != nil {
			v, ok := args[name]
			return v, ok
		}
	}
	return api.Value{}, false
}
