package api

type (
	// BlockID identifies a block within its owning target
	BlockID string

	// Block is one immutable instruction or expression node of a script
	Block struct {
		Inputs   map[string]Input
		Fields   map[string]Field
		Mutation *Mutation
		ID       BlockID
		Opcode   Opcode
		Next     BlockID
		Parent   BlockID
		TopLevel bool
		Shadow   bool
	}

	// Field holds the literal tokens of a block field. Token 0 is the
	// display value and token 1 the optional referenced id
	Field []string

	// Input is either a literal Value or a reference to a child block
	Input struct {
		Literal Value
		Block   BlockID
	}

	// Mutation carries procedure prototype and call data
	Mutation struct {
		ProcCode         string
		ArgumentIDs      []string
		ArgumentNames    []string
		ArgumentDefaults []string
		Warp             bool
	}

	// Blocks indexes the blocks of a target by id
	Blocks map[BlockID]*Block
)

// LiteralInput creates an Input holding a literal Value
func LiteralInput(v Value) Input {
	return Input{Literal: v}
}

// BlockInput creates an Input referencing a child block
func BlockInput(id BlockID) Input {
	return Input{Block: id}
}

// IsBlock reports whether the Input references a child block
func (i Input) IsBlock() bool {
	return i.Block != ""
}

// Value returns the display token of the field
func (f Field) Value() string {
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// ID returns the referenced id token of the field, if any
func (f Field) ID() string {
	if len(f) < 2 {
		return ""
	}
	return f[1]
}

// Field returns the named field of the block
func (b *Block) Field(name string) (Field, bool) {
	f, ok := b.Fields[name]
	return f, ok
}

// Input returns the named input of the block
func (b *Block) Input(name string) (Input, bool) {
	in, ok := b.Inputs[name]
	return in, ok
}

// Get returns the block with the given id, or nil
func (b Blocks) Get(id BlockID) *Block {
	if id == "" {
		return nil
	}
	return b[id]
}
