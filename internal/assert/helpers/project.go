package helpers

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// Step describes one block to add to a script
	Step struct {
		Opcode  api.Opcode
		Options []BlockOption
	}

	// BlockOption configures a block while a script is being built
	BlockOption func(t *api.Target, b *api.Block)
)

// NewProject creates a project from targets, adding an empty stage when
// none of them is one
func NewProject(targets ...*api.Target) *api.Project {
	p := &api.Project{Targets: targets}
	if p.Stage() == nil {
		p.Targets = append([]*api.Target{NewStage()}, targets...)
	}
	return p
}

// NewStage creates an empty stage target with one backdrop
func NewStage() *api.Target {
	return &api.Target{
		Name:      "Stage",
		IsStage:   true,
		Visible:   true,
		Volume:    100,
		Blocks:    api.Blocks{},
		Variables: map[string]*api.Variable{},
		Lists:     map[string]*api.List{},
		Costumes: []*api.Costume{
			{Name: "backdrop1", Width: 480, Height: 360},
		},
	}
}

// NewSprite creates a visible sprite at the origin facing right with a
// 20x20 costume
func NewSprite(name string) *api.Target {
	return &api.Target{
		Name:          name,
		Visible:       true,
		Size:          100,
		Direction:     90,
		Volume:        100,
		LayerOrder:    1,
		RotationStyle: api.RotationAllAround,
		Blocks:        api.Blocks{},
		Variables:     map[string]*api.Variable{},
		Lists:         map[string]*api.List{},
		Costumes: []*api.Costume{
			{Name: "costume1", Width: 20, Height: 20, BitmapResolution: 1},
		},
	}
}

// Do describes a block to add to a script
func Do(op api.Opcode, opts ...BlockOption) Step {
	return Step{Opcode: op, Options: opts}
}

// Script adds a top-level script to the target and returns its hat block
func Script(t *api.Target, hat Step, steps ...Step) *api.Block {
	h := addBlock(t, hat, "")
	h.TopLevel = true
	t.Scripts = append(t.Scripts, h.ID)
	chain(t, h, steps)
	return h
}

// Procedure defines a custom block on the target. Argument ids are derived
// from the argument names
func Procedure(
	t *api.Target, code string, args []string, warp bool, steps ...Step,
) *api.Block {
	proto := addBlock(t, Do(api.OpProcPrototype), "")
	proto.Mutation = &api.Mutation{
		ProcCode:      code,
		ArgumentIDs:   argumentIDs(args),
		ArgumentNames: args,
		Warp:          warp,
	}
	def := addBlock(t, Do(api.OpProcDefinition), "")
	def.TopLevel = true
	def.Inputs["custom_block"] = api.BlockInput(proto.ID)
	proto.Parent = def.ID
	t.Scripts = append(t.Scripts, def.ID)
	chain(t, def, steps)
	return def
}

// Call describes a call of a custom block, passing args by name
func Call(code string, args map[string]api.Value) Step {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	slices.Sort(names)
	return Do(api.OpProcCall, func(_ *api.Target, b *api.Block) {
		b.Mutation = &api.Mutation{
			ProcCode:    code,
			ArgumentIDs: argumentIDs(names),
		}
		for _, name := range names {
			b.Inputs[argumentID(name)] = api.LiteralInput(args[name])
		}
	})
}

// Lit sets a literal input
func Lit(name string, v api.Value) BlockOption {
	return func(_ *api.Target, b *api.Block) {
		b.Inputs[name] = api.LiteralInput(v)
	}
}

// Num sets a numeric literal input
func Num(name string, f float64) BlockOption {
	return Lit(name, api.Num(f))
}

// Text sets a string literal input
func Text(name, s string) BlockOption {
	return Lit(name, api.Str(s))
}

// Field sets a field's tokens: the display value and an optional id
func Field(name string, tokens ...string) BlockOption {
	return func(_ *api.Target, b *api.Block) {
		b.Fields[name] = api.Field(tokens)
	}
}

// Menu sets an input to a menu shadow block holding a single field
func Menu(name string, op api.Opcode, field, value string) BlockOption {
	return Reporter(name, Do(op, Field(field, value)))
}

// Reporter sets an input to a child reporter block
func Reporter(name string, step Step) BlockOption {
	return func(t *api.Target, b *api.Block) {
		child := addBlock(t, step, b.ID)
		b.Inputs[name] = api.BlockInput(child.ID)
	}
}

// Substack sets an input to a nested stack of blocks
func Substack(name string, steps ...Step) BlockOption {
	return func(t *api.Target, b *api.Block) {
		if len(steps) == 0 {
			return
		}
		first := addBlock(t, steps[0], b.ID)
		chain(t, first, steps[1:])
		b.Inputs[name] = api.BlockInput(first.ID)
	}
}

// Variable adds a variable to the target and returns its id
func Variable(t *api.Target, name string, v api.Value) string {
	id := "var-" + name
	t.Variables[id] = &api.Variable{
		ID:    id,
		Name:  name,
		Value: v,
		Cloud: strings.HasPrefix(name, api.CloudPrefix),
	}
	return id
}

// List adds a list to the target and returns its id
func List(t *api.Target, name string, items ...api.Value) string {
	id := "list-" + name
	t.Lists[id] = &api.List{ID: id, Name: name, Items: items}
	return id
}

// Sound adds a sound to the target backed by the given asset name
func Sound(t *api.Target, name, asset string) {
	t.Sounds = append(t.Sounds, &api.Sound{
		ID:         name,
		Name:       name,
		FullName:   asset,
		DataFormat: "wav",
	})
}

func chain(t *api.Target, prev *api.Block, steps []Step) {
	for _, s := range steps {
		b := addBlock(t, s, prev.ID)
		prev.Next = b.ID
		prev = b
	}
}

func addBlock(t *api.Target, s Step, parent api.BlockID) *api.Block {
	if t.Blocks == nil {
		t.Blocks = api.Blocks{}
	}
	id := api.BlockID(t.Name + "-" + strconv.Itoa(len(t.Blocks)+1))
	b := &api.Block{
		ID:     id,
		Opcode: s.Opcode,
		Parent: parent,
		Inputs: map[string]api.Input{},
		Fields: map[string]api.Field{},
	}
	t.Blocks[id] = b
	for _, opt := range s.Options {
		opt(t, b)
	}
	return b
}

func argumentIDs(names []string) []string {
	res := make([]string, len(names))
	for i, n := range names {
		res[i] = argumentID(n)
	}
	return res
}

func argumentID(name string) string {
	return "arg-" + name
}
