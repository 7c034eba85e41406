package engine

import (
	"fmt"
	"log/slog"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

type flow uint8

const (
	flowDone flow = iota
	flowSuspended
	flowHalted
)

// Tick advances every running chain by one frame. It never blocks: the
// inbox is drained, pending triggers are dispatched, suspended chains are
// resumed in world order, newly started chains run until they suspend or
// end, and deleted clones are swept at the end
func (e *Engine) Tick() {
	if e.stopped.Load() {
		return
	}
	e.frame++

	e.inbox.Drain(func(m Message) {
		m.apply(e)
	})
	e.readInput()
	e.dispatch()

	for _, ch := range e.waiting.Chains(e.world.Sprites()) {
		e.resume(ch)
	}

	starts := e.starts
	e.starts = nil
	for _, ch := range starts {
		e.start(ch)
	}

	e.checkEdgeHats()
	e.world.Sweep()
	e.snapshot()
	e.publish(&api.Event{Type: api.EventTypeTick})
}

func (e *Engine) start(ch *Chain) {
	s := e.world.Get(ch.sprite)
	if s == nil || !ch.active {
		ch.active = false
		return
	}
	e.publishChain(api.EventTypeChainStarted, s, ch)
	if e.walk(s, ch, ch.hat.Next) == flowDone {
		e.finish(s, ch)
	}
}

func (e *Engine) resume(ch *Chain) {
	s := e.world.Get(ch.sprite)
	if s == nil || !e.waiting.Contains(ch) {
		return
	}

	polled := false
	for f := ch.Top(); f != nil; f = ch.Top() {
		if f.State.Kind == AwaitingBody {
			e.popTo(ch, f)
		} else {
			if polled {
				return
			}
			polled = true
			if e.exec(s, ch, f.Block, f) == Return || ch.halted {
				return
			}
		}
		if e.walk(s, ch, f.Block.Next) != flowDone {
			return
		}
	}
	e.finish(s, ch)
}

func (e *Engine) walk(s *Sprite, ch *Chain, id api.BlockID) flow {
	for id != "" {
		b := s.Block(id)
		if b == nil {
			slog.Debug("Dangling block reference",
				log.Sprite(s.Name),
				log.Chain(ch.ID()),
				log.Block(id))
			return flowDone
		}
		res := e.exec(s, ch, b, nil)
		if ch.halted || s.dead {
			return flowHalted
		}
		if res == Return {
			return flowSuspended
		}
		id = b.Next
	}
	return flowDone
}

func (e *Engine) exec(s *Sprite, ch *Chain, b *api.Block, f *Frame) (res Result) {
	h, ok := e.handlers[b.Opcode]
	if !ok || h.Command == nil {
		e.unknownOpcode(b)
		return Continue
	}

	ctx := &Context{engine: e, sprite: s, chain: ch, block: b, frame: f}
	depth := len(ch.frames)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Block handler failed",
				log.Sprite(s.Name),
				log.Chain(ch.ID()),
				log.Block(b.ID),
				log.Opcode(b.Opcode),
				log.ErrorString(fmt.Sprint(r)))
			e.halt(ch)
			res = Continue
		}
	}()

	res = h.Command(ctx)
	switch {
	case ch.halted:
	case res == Continue:
		if ctx.frame != nil {
			e.popTo(ch, ctx.frame)
		}
	case ctx.frame == nil && len(ch.frames) == depth:
		ctx.Suspend(Body())
	}
	return res
}

func (e *Engine) push(ch *Chain, f *Frame) {
	ch.frames = append(ch.frames, f)
	e.waiting.Add(ch)
}

func (e *Engine) popTo(ch *Chain, f *Frame) {
	idx := ch.index(f)
	if idx < 0 {
		return
	}
	clear(ch.frames[idx:])
	ch.frames = ch.frames[:idx]
	if len(ch.frames) == 0 {
		e.waiting.Remove(ch)
	}
}

func (e *Engine) finish(s *Sprite, ch *Chain) {
	ch.frames = nil
	ch.active = false
	e.waiting.Remove(ch)
	e.publishChain(api.EventTypeChainFinished, s, ch)
	ch.runID = ""
}

func (e *Engine) halt(ch *Chain) {
	ch.halted = true
	if !ch.active && len(ch.frames) == 0 {
		return
	}
	ch.frames = nil
	ch.active = false
	e.waiting.Remove(ch)
	if s := e.world.Get(ch.sprite); s != nil {
		e.publishChain(api.EventTypeChainHalted, s, ch)
	}
	ch.runID = ""
}

func (e *Engine) unknownOpcode(b *api.Block) {
	if e.unknown.Contains(b.Opcode) {
		return
	}
	e.unknown.Add(b.Opcode)
	slog.Warn("Unsupported opcode",
		log.Opcode(b.Opcode),
		log.Block(b.ID))
}
