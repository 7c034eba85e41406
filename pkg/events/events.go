// Package events provides composable filters over runtime notifications
package events

import (
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/util"
)

// EventFilter reports whether a notification is of interest
type EventFilter func(*api.Event) bool

// All accepts every notification
func All(*api.Event) bool {
	return true
}

// None rejects every notification
func None(*api.Event) bool {
	return false
}

// FilterEvents accepts notifications of the given types
func FilterEvents(eventTypes ...api.EventType) EventFilter {
	lookup := util.SetOf(eventTypes...)
	return func(ev *api.Event) bool {
		return lookup.Contains(ev.Type)
	}
}

// FilterSprites accepts notifications raised by the named sprites,
// ignoring case
func FilterSprites(names ...string) EventFilter {
	lookup := util.Set[string]{}
	for _, n := range names {
		lookup.Add(strings.ToLower(n))
	}
	return func(ev *api.Event) bool {
		return lookup.Contains(strings.ToLower(ev.Sprite))
	}
}

// AndFilters accepts notifications accepted by every filter
func AndFilters(filters ...EventFilter) EventFilter {
	return func(ev *api.Event) bool {
		for _, filter := range filters {
			if !filter(ev) {
				return false
			}
		}
		return true
	}
}

// OrFilters accepts notifications accepted by any filter
func OrFilters(filters ...EventFilter) EventFilter {
	return func(ev *api.Event) bool {
		for _, filter := range filters {
			if filter(ev) {
				return true
			}
		}
		return false
	}
}

// FromSubscription builds the filter requested by a stream client. An
// empty subscription accepts nothing
func FromSubscription(sub *api.ClientSubscription) EventFilter {
	var filters []EventFilter
	if len(sub.EventTypes) > 0 {
		filters = append(filters, FilterEvents(sub.EventTypes...))
	}
	if len(sub.Sprites) > 0 {
		filters = append(filters, FilterSprites(sub.Sprites...))
	}
	switch len(filters) {
	case 0:
		return None
	case 1:
		return filters[0]
	default:
		return AndFilters(filters...)
	}
}
