package wait

import (
	"strings"
	"testing"
	"time"

	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/util"
)

type (
	Wait struct {
		t        *testing.T
		consumer topic.Consumer[*api.Event]
		timeout  time.Duration
	}

	Predicate[T any] func(T) bool

	EventFilter Predicate[*api.Event]
)

const DefaultTimeout = time.Second * 5

func On(t *testing.T, consumer topic.Consumer[*api.Event]) *Wait {
	return &Wait{
		t:        t,
		consumer: consumer,
		timeout:  DefaultTimeout,
	}
}

func (w *Wait) WithTimeout(timeout time.Duration) *Wait {
	res := *w
	res.timeout = timeout
	return &res
}

// ForEvents waits for matching events from the consumer
func (w *Wait) ForEvents(count int, filter EventFilter) {
	w.t.Helper()

	deadline := time.NewTimer(w.timeout)
	defer deadline.Stop()

	for seen := 0; seen < count; {
		select {
		case ev, ok := <-w.consumer.Receive():
			if !ok {
				w.t.Fatalf(
					"event consumer closed before receiving %d events", count,
				)
			}
			if !filter(ev) {
				continue
			}
			seen++
		case <-deadline.C:
			w.t.Fatalf("timeout waiting for %d events", count)
		}
	}
}

// ForEvent waits for a single matching event
func (w *Wait) ForEvent(filter EventFilter) {
	w.ForEvents(1, filter)
}

// And composes event filters and returns true when all match
func And(filters ...EventFilter) EventFilter {
	return func(ev *api.Event) bool {
		for _, filter := range filters {
			if !filter(ev) {
				return false
			}
		}
		return true
	}
}

// Type creates a filter for a single event type
func Type(eventType api.EventType) EventFilter {
	return Types(eventType)
}

// Types creates a filter for the given event types
func Types(eventTypes ...api.EventType) EventFilter {
	if len(eventTypes) == 0 {
		return func(*api.Event) bool { return false }
	}
	lookup := util.SetOf(eventTypes...)
	return func(ev *api.Event) bool {
		return ev != nil && lookup.Contains(ev.Type)
	}
}

// Sprite matches events raised for the named sprite
func Sprite(name string) EventFilter {
	return func(ev *api.Event) bool {
		return ev != nil && ev.Sprite == name
	}
}

// ChainFinished matches the end of runs of the given chains. Each chain is
// matched once
func ChainFinished(ids ...api.BlockID) EventFilter {
	expected := util.SetOf(ids...)
	return And(
		Type(api.EventTypeChainFinished),
		func(ev *api.Event) bool {
			if expected.Contains(ev.Chain) {
				expected.Remove(ev.Chain)
				return true
			}
			return false
		},
	)
}

// Broadcast matches the dispatch of the named broadcast
func Broadcast(name string) EventFilter {
	return And(
		Type(api.EventTypeBroadcast),
		Data(func(data map[string]any) bool {
			n, _ := data["name"].(string)
			return strings.EqualFold(n, name)
		}),
	)
}

// Frame matches tick events at or after the given frame number
func Frame(n uint64) EventFilter {
	return And(Type(api.EventTypeTick), func(ev *api.Event) bool {
		return ev.Frame >= n
	})
}

// Data creates a filter that applies pred to the event's data
func Data(pred Predicate[map[string]any]) EventFilter {
	return func(ev *api.Event) bool {
		return ev != nil && ev.Data != nil && pred(ev.Data)
	}
}
