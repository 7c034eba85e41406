package engine

import (
	"log/slog"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

func procedureBlocks() Registry {
	return Registry{
		api.OpProcCall:         command(callProcedure),
		api.OpArgumentReporter: reporter(argument(api.Int(0))),
		api.OpArgumentBoolean:  reporter(argument(api.Bool(false))),
	}
}

func callProcedure(c *Context) Result {
	b := c.Block()
	if b.Mutation == nil {
		return Continue
	}
	s := c.Sprite()
	proc := s.prog.procedure(b.Mutation.ProcCode)
	if proc == nil {
		slog.Debug("Unknown procedure",
			log.Sprite(s.Name),
			log.Block(b.ID),
			slog.String("proccode", b.Mutation.ProcCode))
		return Continue
	}
	if c.Chain().callDepth() >= c.Engine().config.MaxCallDepth {
		slog.Debug("Procedure call depth exceeded",
			log.Sprite(s.Name),
			log.Chain(c.Chain().ID()),
			slog.String("proccode", b.Mutation.ProcCode))
		return Continue
	}
	args := c.procedureArgs(proc)
	return c.runBody(proc.definition.Next, args, proc.warp() || c.Warp())
}

func argument(missing api.Value) ReporterFunc {
	return func(c *Context) api.Value {
		if v, ok := c.Argument(c.Field("VALUE")); ok {
			return v
		}
		return missing
	}
}

// procedureArgs evaluates the call's inputs into the prototype's argument
// names. Inputs the call does not supply take the prototype defaults
func (c *Context) procedureArgs(proc *procedure) map[string]api.Value {
	m := proc.prototype.Mutation
	res := make(map[string]api.Value, len(m.ArgumentIDs))
	for i, id := range m.ArgumentIDs {
		if i >= len(m.ArgumentNames) {
			break
		}
		name := m.ArgumentNames[i]
		if _, ok := c.Block().Input(id); ok {
			res[name] = c.Input(id)
			continue
		}
		if i < len(m.ArgumentDefaults) {
			res[name] = api.Str(m.ArgumentDefaults[i])
		} else {
			res[name] = api.Value{}
		}
	}
	return res
}
