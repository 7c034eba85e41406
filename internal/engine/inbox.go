package engine

import (
	"sync"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// Message is posted to a running Engine from another goroutine and
	// applied at the start of the next tick
	Message interface {
		apply(*Engine)
	}

	// GreenFlagMessage restarts the project from its flag hats
	GreenFlagMessage struct{}

	// StopMessage stops every running script
	StopMessage struct{}

	// BroadcastMessage raises a named broadcast
	BroadcastMessage struct {
		Name string
	}

	// AnswerMessage answers the question currently being asked
	AnswerMessage struct {
		Text string
	}

	// CloudUpdateMessage applies a cloud variable value received from the
	// cloud store
	CloudUpdateMessage struct {
		Name  string
		Value api.Value
	}

	// Inbox carries messages from other goroutines into the tick loop. A
	// message posted before Drain is always seen by that Drain
	Inbox struct {
		pending []Message
		closed  bool
		mu      sync.Mutex
	}
)

// NewInbox creates an empty inbox
func NewInbox() *Inbox {
	return &Inbox{}
}

// Post queues a message for the next Drain. Safe for concurrent use.
// Messages posted after Close are dropped
func (i *Inbox) Post(m Message) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return
	}
	i.pending = append(i.pending, m)
}

// Drain applies every message posted so far, in posting order. Messages
// posted by fn are left for the next Drain
func (i *Inbox) Drain(fn func(Message)) {
	i.mu.Lock()
	batch := i.pending
	i.pending = nil
	i.mu.Unlock()

	for _, m := range batch {
		fn(m)
	}
}

// Len returns the number of messages waiting for the next Drain
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.pending)
}

// Close drops pending messages and rejects later ones
func (i *Inbox) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
	i.pending = nil
}

func (GreenFlagMessage) apply(e *Engine) {
	e.GreenFlag()
}

func (StopMessage) apply(e *Engine) {
	e.StopAll()
}

func (m BroadcastMessage) apply(e *Engine) {
	e.Broadcast(m.Name)
}

func (m AnswerMessage) apply(e *Engine) {
	e.Answer(m.Text)
}

func (m CloudUpdateMessage) apply(e *Engine) {
	e.applyCloudUpdate(m.Name, m.Value)
}
