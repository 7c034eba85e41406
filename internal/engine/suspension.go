package engine

import "time"

type (
	// SuspendKind enumerates the ways a block can hold its chain
	SuspendKind uint8

	// Suspension is the resumption state of one suspended block
	Suspension struct {
		Waiter    Waiter
		Remaining int
		Kind      SuspendKind
	}

	// Waiter reports whether an externally driven wait has completed. It
	// is polled once per tick while its block is on top of a chain
	Waiter interface {
		Ready() bool
	}

	// WaiterFunc adapts a function to the Waiter interface
	WaiterFunc func() bool

	deadline struct {
		now Clock
		at  time.Time
	}
)

const (
	// Idle blocks are not waiting
	Idle SuspendKind = iota

	// CountingDown blocks iterate Remaining more times
	CountingDown

	// Looping blocks iterate until their condition stops them
	Looping

	// AwaitingExternal blocks resume once their Waiter is ready
	AwaitingExternal

	// AwaitingBody blocks resume after their suspended substack finishes
	AwaitingBody
)

// CountDown creates a suspension that iterates n more times
func CountDown(n int) Suspension {
	return Suspension{Kind: CountingDown, Remaining: n}
}

// Looped creates an open-ended loop suspension
func Looped() Suspension {
	return Suspension{Kind: Looping}
}

// Await creates a suspension that resumes when w is ready
func Await(w Waiter) Suspension {
	return Suspension{Kind: AwaitingExternal, Waiter: w}
}

// Body creates the suspension of a container with a suspended substack
func Body() Suspension {
	return Suspension{Kind: AwaitingBody}
}

// Until returns a Waiter that is ready once the clock reaches at
func Until(now Clock, at time.Time) Waiter {
	return &deadline{now: now, at: at}
}

// Ready implements Waiter
func (f WaiterFunc) Ready() bool {
	return f()
}

func (d *deadline) Ready() bool {
	return !d.now().Before(d.at)
}

// String returns the name of the suspension kind
func (k SuspendKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case CountingDown:
		return "counting_down"
	case Looping:
		return "looping"
	case AwaitingExternal:
		return "awaiting_external"
	case AwaitingBody:
		return "awaiting_body"
	default:
		return "unknown"
	}
}
