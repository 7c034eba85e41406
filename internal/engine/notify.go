package engine

import (
	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/message"
	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// EventConsumer receives runtime notifications
	EventConsumer = topic.Consumer[*api.Event]

	// Notifier publishes runtime notifications to any number of observers
	Notifier struct {
		topic topic.Topic[*api.Event]
		prod  topic.Producer[*api.Event]
	}
)

// NewNotifier creates a notifier backed by a caravan topic
func NewNotifier() *Notifier {
	t := caravan.NewTopic[*api.Event]()
	return &Notifier{
		topic: t,
		prod:  t.NewProducer(),
	}
}

// Subscribe returns a consumer of the notifications published from now on
func (n *Notifier) Subscribe() EventConsumer {
	return n.topic.NewConsumer()
}

// Publish sends a notification to every subscriber
func (n *Notifier) Publish(ev *api.Event) {
	message.Send(n.prod, ev)
}

// Close releases the notification topic
func (n *Notifier) Close() {
	n.prod.Close()
}

// Subscribe returns a consumer of the engine's runtime notifications
func (e *Engine) Subscribe() EventConsumer {
	return e.notify.Subscribe()
}

func (e *Engine) publish(ev *api.Event) {
	ev.Frame = e.frame
	ev.Timestamp = e.clock()
	e.notify.Publish(ev)
}

func (e *Engine) publishChain(typ api.EventType, s *Sprite, ch *Chain) {
	e.publish(&api.Event{
		Type:   typ,
		Sprite: s.Name,
		Chain:  ch.ID(),
		RunID:  ch.runID,
	})
}
