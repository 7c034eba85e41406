package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/events"
)

var (
	catSays = &api.Event{Type: api.EventTypeSay, Sprite: "Cat"}
	dogSays = &api.Event{Type: api.EventTypeSay, Sprite: "Dog"}
	tick    = &api.Event{Type: api.EventTypeTick}
)

func TestFilterEvents(t *testing.T) {
	f := events.FilterEvents(api.EventTypeSay, api.EventTypeAsk)
	assert.True(t, f(catSays))
	assert.False(t, f(tick))

	assert.False(t, events.FilterEvents()(catSays))
}

func TestFilterSprites(t *testing.T) {
	f := events.FilterSprites("cat")
	assert.True(t, f(catSays))
	assert.False(t, f(dogSays))
	assert.False(t, f(tick))
}

func TestCombinators(t *testing.T) {
	says := events.FilterEvents(api.EventTypeSay)
	cat := events.FilterSprites("Cat")

	and := events.AndFilters(says, cat)
	assert.True(t, and(catSays))
	assert.False(t, and(dogSays))

	or := events.OrFilters(cat, events.FilterEvents(api.EventTypeTick))
	assert.True(t, or(catSays))
	assert.True(t, or(tick))
	assert.False(t, or(dogSays))

	assert.True(t, events.AndFilters()(tick))
	assert.False(t, events.OrFilters()(tick))
}

func TestFromSubscription(t *testing.T) {
	none := events.FromSubscription(&api.ClientSubscription{})
	assert.False(t, none(catSays))

	types := events.FromSubscription(&api.ClientSubscription{
		EventTypes: []api.EventType{api.EventTypeTick},
	})
	assert.True(t, types(tick))
	assert.False(t, types(catSays))

	both := events.FromSubscription(&api.ClientSubscription{
		EventTypes: []api.EventType{api.EventTypeSay},
		Sprites:    []string{"Dog"},
	})
	assert.True(t, both(dogSays))
	assert.False(t, both(catSays))
}
