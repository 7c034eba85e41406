package engine

import (
	"maps"
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// Result tells the scheduler whether a command block finished
	Result uint8

	// CommandFunc executes a stack block
	CommandFunc func(*Context) Result

	// ReporterFunc evaluates a reporter block to a Value
	ReporterFunc func(*Context) api.Value

	// HatFunc decides whether a hat block matches a trigger's match token
	HatFunc func(hat *api.Block, match string) bool

	// Handler implements one opcode. Stack blocks set Command, reporters
	// set Reporter, and hat blocks set Hat
	Handler struct {
		Command  CommandFunc
		Reporter ReporterFunc
		Hat      HatFunc
	}

	// Registry maps opcodes to their handlers
	Registry map[api.Opcode]Handler
)

const (
	// Continue means the block finished and execution moves to its next
	Continue Result = iota

	// Return means the block suspended its chain until a later tick
	Return
)

// DefaultRegistry returns the handlers for every supported opcode
func DefaultRegistry() Registry {
	r := Registry{}
	for _, family := range []Registry{
		motionBlocks(),
		looksBlocks(),
		soundBlocks(),
		eventBlocks(),
		controlBlocks(),
		sensingBlocks(),
		operatorBlocks(),
		dataBlocks(),
		procedureBlocks(),
	} {
		maps.Copy(r, family)
	}
	return r
}

// Register adds or replaces the handler of an opcode
func (r Registry) Register(op api.Opcode, h Handler) {
	r[op] = h
}

// IsHat reports whether the opcode starts a chain
func (r Registry) IsHat(op api.Opcode) bool {
	h, ok := r[op]
	return ok && h.Hat != nil
}

// String returns the name of the result
func (r Result) String() string {
	if r == Return {
		return "return"
	}
	return "continue"
}

func anyHat(*api.Block, string) bool {
	return true
}

func fieldHat(field string) HatFunc {
	return func(hat *api.Block, match string) bool {
		f, ok := hat.Field(field)
		return ok && strings.EqualFold(f.Value(), match)
	}
}

func command(fn CommandFunc) Handler {
	return Handler{Command: fn}
}

func reporter(fn ReporterFunc) Handler {
	return Handler{Reporter: fn}
}

func hat(fn HatFunc) Handler {
	return Handler{Hat: fn}
}
