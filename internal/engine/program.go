package engine

import (
	"cmp"
	"slices"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// program is the immutable, compiled view of one target shared by the
	// original sprite and all of its clones
	program struct {
		target *api.Target
		hats   []*api.Block
		procs  map[string]*procedure
	}

	procedure struct {
		definition *api.Block
		prototype  *api.Block
	}
)

const prototypeInput = "custom_block"

func newProgram(t *api.Target, handlers Registry) *program {
	p := &program{
		target: t,
		procs:  map[string]*procedure{},
	}

	scripts := t.Scripts
	if len(scripts) == 0 {
		scripts = topLevel(t.Blocks)
	}
	for _, id := range scripts {
		b := t.Blocks.Get(id)
		if b == nil {
			continue
		}
		if b.Opcode == api.OpProcDefinition {
			p.addProcedure(b)
			continue
		}
		if handlers.IsHat(b.Opcode) {
			p.hats = append(p.hats, b)
		}
	}
	return p
}

func (p *program) addProcedure(def *api.Block) {
	in, ok := def.Input(prototypeInput)
	if !ok || !in.IsBlock() {
		return
	}
	proto := p.target.Blocks.Get(in.Block)
	if proto == nil || proto.Mutation == nil {
		return
	}
	p.procs[proto.Mutation.ProcCode] = &procedure{
		definition: def,
		prototype:  proto,
	}
}

func (p *program) procedure(code string) *procedure {
	return p.procs[code]
}

func (p *program) newChains() []*Chain {
	res := make([]*Chain, 0, len(p.hats))
	for _, hat := range p.hats {
		res = append(res, newChain(hat))
	}
	return res
}

func (p *procedure) warp() bool {
	return p.prototype.Mutation.Warp
}

func topLevel(blocks api.Blocks) []api.BlockID {
	var res []api.BlockID
	for id, b := range blocks {
		if b.TopLevel {
			res = append(res, id)
		}
	}
	slices.SortFunc(res, func(a, b api.BlockID) int {
		return cmp.Compare(a, b)
	})
	return res
}
