package engine

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

type (
	// Trigger describes which hat blocks a dispatch starts. An empty Match
	// matches every hat of the opcode, a valid Target limits the dispatch to
	// one sprite
	Trigger struct {
		Opcode api.Opcode
		Match  string
		Target Handle
		chain  *Chain
		Any    bool
	}

	// Ticket tracks the chains started by one dispatched trigger, allowing
	// a block to wait for all of them to finish
	Ticket struct {
		runs       []ticketRun
		dispatched bool
	}

	// Dispatcher collects the triggers raised during a tick and coalesces
	// duplicates, so each distinct trigger is dispatched once
	Dispatcher struct {
		pending []*pendingTrigger
		keys    map[triggerKey]*pendingTrigger
	}

	pendingTrigger struct {
		ticket  *Ticket
		trigger Trigger
	}

	triggerKey struct {
		opcode api.Opcode
		match  string
		target Handle
		chain  *Chain
		any    bool
	}

	ticketRun struct {
		chain *Chain
		runID api.RunID
	}
)

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		keys: map[triggerKey]*pendingTrigger{},
	}
}

// Enqueue records a trigger for the next dispatch and returns its ticket.
// A trigger equal to one already pending shares that trigger's ticket
func (d *Dispatcher) Enqueue(t Trigger) *Ticket {
	key := triggerKey{
		opcode: t.Opcode,
		match:  strings.ToLower(t.Match),
		target: t.Target,
		chain:  t.chain,
		any:    t.Any,
	}
	if p, ok := d.keys[key]; ok {
		return p.ticket
	}
	p := &pendingTrigger{trigger: t, ticket: &Ticket{}}
	d.keys[key] = p
	d.pending = append(d.pending, p)
	return p.ticket
}

// Pending returns the number of triggers awaiting dispatch
func (d *Dispatcher) Pending() int {
	return len(d.pending)
}

// Clear drops every pending trigger. Their tickets resolve as finished
func (d *Dispatcher) Clear() {
	for _, p := range d.pending {
		p.ticket.resolve(nil)
	}
	d.pending = nil
	clear(d.keys)
}

func (d *Dispatcher) take() []*pendingTrigger {
	res := d.pending
	d.pending = nil
	clear(d.keys)
	return res
}

// Ready reports whether the trigger was dispatched and every chain it
// started has finished its run
func (t *Ticket) Ready() bool {
	if !t.dispatched {
		return false
	}
	for _, r := range t.runs {
		if r.chain.active && r.chain.runID == r.runID {
			return false
		}
	}
	return true
}

// Started returns the number of chains the trigger started
func (t *Ticket) Started() int {
	return len(t.runs)
}

func (t *Ticket) resolve(chains []*Chain) {
	t.dispatched = true
	t.runs = make([]ticketRun, 0, len(chains))
	for _, c := range chains {
		t.runs = append(t.runs, ticketRun{chain: c, runID: c.runID})
	}
}

// RunAllBlocksByOpcode starts, on every sprite, each chain whose hat has
// the opcode and matches. Chains already in flight are not restarted. The
// started chains run during the current or next tick and are returned
func (e *Engine) RunAllBlocksByOpcode(opcode api.Opcode, match string) []*Chain {
	return e.startMatching(Trigger{Opcode: opcode, Match: match})
}

// RunAllBlocks starts every chain whose hat has the opcode, whatever its
// fields hold
func (e *Engine) RunAllBlocks(opcode api.Opcode) []*Chain {
	return e.startMatching(Trigger{Opcode: opcode, Any: true})
}

func (e *Engine) dispatch() {
	for _, p := range e.dispatcher.take() {
		started := e.startMatching(p.trigger)
		p.ticket.resolve(started)
		if p.trigger.Opcode == api.OpWhenBroadcastReceived {
			e.publish(&api.Event{
				Type: api.EventTypeBroadcast,
				Data: map[string]any{
					"name":    p.trigger.Match,
					"started": len(started),
				},
			})
		}
	}
}

func (e *Engine) startMatching(t Trigger) []*Chain {
	var res []*Chain
	for _, s := range e.world.Sprites() {
		if t.Target.IsValid() && s.handle != t.Target {
			continue
		}
		for _, ch := range s.chains {
			if !e.triggers(t, ch) {
				continue
			}
			if ch.active {
				slog.Debug("Chain already running",
					log.Sprite(s.Name),
					log.Chain(ch.ID()),
					log.Opcode(t.Opcode))
				continue
			}
			ch.active = true
			ch.halted = false
			ch.runID = api.RunID(uuid.NewString())
			e.starts = append(e.starts, ch)
			res = append(res, ch)
		}
	}
	return res
}

func (e *Engine) triggers(t Trigger, ch *Chain) bool {
	if t.chain != nil {
		return t.chain == ch
	}
	if ch.hat.Opcode != t.Opcode {
		return false
	}
	h, ok := e.handlers[t.Opcode]
	if t.Any || !ok || h.Hat == nil {
		return true
	}
	return h.Hat(ch.hat, t.Match)
}
