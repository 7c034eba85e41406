package engine

import (
	"log/slog"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

// Input evaluates the named input of the block. Literals return their
// Value and child blocks are evaluated as reporters. Missing inputs and
// dangling references yield the empty Value
func (c *Context) Input(name string) api.Value {
	in, ok := c.block.Input(name)
	if !ok {
		return api.Value{}
	}
	if !in.IsBlock() {
		return in.Literal
	}
	return c.Evaluate(in.Block)
}

// Number evaluates the named input as a number
func (c *Context) Number(name string) float64 {
	return c.Input(name).AsNumber()
}

// Bool evaluates the named input as a boolean
func (c *Context) Bool(name string) bool {
	return c.Input(name).AsBool()
}

// String evaluates the named input as a string
func (c *Context) String(name string) string {
	return c.Input(name).AsString()
}

// Field returns the display value of the named field
func (c *Context) Field(name string) string {
	f, ok := c.block.Field(name)
	if !ok {
		slog.Debug("Missing block field",
			log.Block(c.block.ID),
			log.Opcode(c.block.Opcode),
			slog.String("field", name))
		return ""
	}
	return f.Value()
}

// FieldID returns the referenced id of the named field
func (c *Context) FieldID(name string) string {
	f, _ := c.block.Field(name)
	return f.ID()
}

// Evaluate runs the reporter block with the given id. Menu shadows without
// a reporter handler return their first field
func (c *Context) Evaluate(id api.BlockID) api.Value {
	b := c.sprite.Block(id)
	if b == nil {
		slog.Debug("Dangling block reference",
			log.Sprite(c.sprite.Name),
			log.Block(id))
		return api.Value{}
	}
	child := &Context{
		engine: c.engine,
		sprite: c.sprite,
		chain:  c.chain,
		block:  b,
	}

	if h, ok := c.engine.handlers[b.Opcode]; ok && h.Reporter != nil {
		return h.Reporter(child)
	}
	if v, ok := menuValue(b); ok {
		return v
	}
	c.engine.unknownOpcode(b)
	return api.Value{}
}

func menuValue(b *api.Block) (api.Value, bool) {
	if len(b.Fields) == 1 {
		for _, f := range b.Fields {
			return api.Str(f.Value()), true
		}
	}
	return api.Value{}, false
}
