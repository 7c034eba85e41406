package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flagstaff/pkg/api"
)

func TestFieldTokens(t *testing.T) {
	f := api.Field{"score", "var-1"}
	assert.Equal(t, "score", f.Value())
	assert.Equal(t, "var-1", f.ID())

	var empty api.Field
	assert.Equal(t, "", empty.Value())
	assert.Equal(t, "", empty.ID())
}

func TestInputs(t *testing.T) {
	b := &api.Block{
		ID:     "a",
		Opcode: api.OpMoveSteps,
		Inputs: map[string]api.Input{
			"STEPS": api.LiteralInput(api.Num(10)),
			"OTHER": api.BlockInput("b"),
		},
	}

	in, ok := b.Input("STEPS")
	assert.True(t, ok)
	assert.False(t, in.IsBlock())
	assert.Equal(t, 10.0, in.Literal.AsNumber())

	in, ok = b.Input("OTHER")
	assert.True(t, ok)
	assert.True(t, in.IsBlock())

	_, ok = b.Input("MISSING")
	assert.False(t, ok)
}

func TestBlocksGet(t *testing.T) {
	blocks := api.Blocks{"a": {ID: "a"}}
	assert.NotNil(t, blocks.Get("a"))
	assert.Nil(t, blocks.Get("b"))
	assert.Nil(t, blocks.Get(""))
}

func TestProjectLookup(t *testing.T) {
	p := &api.Project{
		Targets: []*api.Target{
			{Name: "Stage", IsStage: true},
			{Name: "Cat"},
		},
	}
	assert.Equal(t, "Stage", p.Stage().Name)
	assert.Equal(t, "Cat", p.Target("Cat").Name)
	assert.Nil(t, p.Target("Dog"))
	assert.True(t, api.RotationLeftRight.IsValid())
	assert.False(t, api.RotationStyle("spin").IsValid())
}
