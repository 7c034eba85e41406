package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/kode4food/flagstaff/internal/assert"
	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
)

// evaluate runs a flag script that stores the reporter's result in a
// variable and returns it
func evaluate(
	t *testing.T, reporter helpers.Step, setup ...func(*api.Target),
) api.Value {
	t.Helper()
	cat := helpers.NewSprite("Cat")
	out := helpers.Variable(cat, "out", api.Value{})
	for _, fn := range setup {
		fn(cat)
	}
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpSetVariableTo,
			helpers.Field("VARIABLE", "out", out),
			helpers.Reporter("VALUE", reporter),
		),
	)

	var res api.Value
	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		env.Flag()
		res = env.Sprite(t, "Cat").Variable(out, "out").Value
	})
	return res
}

func binary(op api.Opcode, a, b string, x, y api.Value) helpers.Step {
	return helpers.Do(op, helpers.Lit(a, x), helpers.Lit(b, y))
}

func TestArithmeticCoercion(t *testing.T) {
	as := assert.New(t)

	as.ValueEquals(api.Num(7),
		evaluate(t, binary(api.OpAdd, "NUM1", "NUM2", api.Str("3"), api.Num(4))),
	)
	as.ValueEquals(api.Str("abcdef"),
		evaluate(t, binary(api.OpAdd, "NUM1", "NUM2", api.Str("abc"), api.Str("def"))),
	)
	as.ValueEquals(api.Num(-1),
		evaluate(t, binary(api.OpSubtract, "NUM1", "NUM2", api.Num(2), api.Num(3))),
	)
	as.ValueEquals(api.Num(12),
		evaluate(t, binary(api.OpMultiply, "NUM1", "NUM2", api.Num(3), api.Str("4"))),
	)
	as.ValueEquals(api.Num(2),
		evaluate(t, binary(api.OpMod, "NUM1", "NUM2", api.Num(-7), api.Num(3))),
	)

	res := evaluate(t, binary(api.OpDivide, "NUM1", "NUM2", api.Num(1), api.Num(0)))
	as.Equal("Infinity", res.AsString())
}

func TestComparison(t *testing.T) {
	as := assert.New(t)
	cmp := func(op api.Opcode, a, b api.Value) bool {
		return evaluate(t, binary(op, "OPERAND1", "OPERAND2", a, b)).AsBool()
	}

	as.True(cmp(api.OpLT, api.Str("9"), api.Num(10)))
	as.True(cmp(api.OpGT, api.Str("b"), api.Str("A")))
	as.True(cmp(api.OpEquals, api.Str("Hello"), api.Str("hello")))
	as.True(cmp(api.OpEquals, api.Str("1.0"), api.Num(1)))
	as.False(cmp(api.OpEquals, api.Str("abc"), api.Num(0)))
}

func TestLogic(t *testing.T) {
	as := assert.New(t)
	as.True(evaluate(t, binary(api.OpAnd, "OPERAND1", "OPERAND2",
		api.Bool(true), api.Str("yes"))).AsBool())
	as.False(evaluate(t, binary(api.OpAnd, "OPERAND1", "OPERAND2",
		api.Bool(true), api.Str("0"))).AsBool())
	as.True(evaluate(t, binary(api.OpOr, "OPERAND1", "OPERAND2",
		api.Str(""), api.Num(1))).AsBool())
	as.True(evaluate(t, helpers.Do(api.OpNot,
		helpers.Lit("OPERAND", api.Str("false")))).AsBool())
}

func TestStringOperators(t *testing.T) {
	as := assert.New(t)

	as.ValueEquals(api.Str("ab1"),
		evaluate(t, binary(api.OpJoin, "STRING1", "STRING2", api.Str("ab"), api.Num(1))),
	)
	as.ValueEquals(api.Str("é"),
		evaluate(t, binary(api.OpLetterOf, "LETTER", "STRING", api.Num(2), api.Str("héllo"))),
	)
	as.ValueEquals(api.Str(""),
		evaluate(t, binary(api.OpLetterOf, "LETTER", "STRING", api.Num(9), api.Str("abc"))),
	)
	as.ValueEquals(api.Num(5),
		evaluate(t, helpers.Do(api.OpLength, helpers.Text("STRING", "héllo"))),
	)
	as.True(evaluate(t, binary(api.OpContains, "STRING1", "STRING2",
		api.Str("Apple"), api.Str("PL"))).AsBool())
}

func TestMathOperators(t *testing.T) {
	as := assert.New(t)
	mathOp := func(op string, n float64) float64 {
		return evaluate(t, helpers.Do(api.OpMathOp,
			helpers.Field("OPERATOR", op), helpers.Num("NUM", n),
		)).AsNumber()
	}

	as.Equal(3.0, mathOp("abs", -3))
	as.Equal(2.0, mathOp("floor", 2.7))
	as.Equal(3.0, mathOp("ceiling", 2.1))
	as.Equal(4.0, mathOp("sqrt", 16))
	as.Equal(1.0, mathOp("sin", 90))
	as.Equal(0.0, mathOp("cos", 90))
	as.True(math.IsInf(mathOp("tan", 90), 1))
	as.Equal(2.0, mathOp("log", 100))
	as.InDelta(1.0, mathOp("ln", math.E), 1e-9)
	as.Equal(100.0, mathOp("10 ^", 2))

	round := func(n float64) float64 {
		return evaluate(t, helpers.Do(api.OpRound, helpers.Num("NUM", n))).AsNumber()
	}
	as.Equal(3.0, round(2.5))
	as.Equal(-2.0, round(-2.5))
}

func TestRandom(t *testing.T) {
	as := assert.New(t)
	for range 5 {
		v := evaluate(t, binary(api.OpRandom, "FROM", "TO", api.Num(10), api.Num(1)))
		n := v.AsNumber()
		as.True(n >= 1 && n <= 10)
		as.Equal(math.Trunc(n), n)
	}

	v := evaluate(t, binary(api.OpRandom, "FROM", "TO", api.Num(1), api.Str("1.5")))
	as.True(v.AsNumber() >= 1 && v.AsNumber() <= 1.5)
}

func TestVariables(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	score := helpers.Variable(cat, "score", api.Num(1))
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpChangeVariableBy,
			helpers.Field("VARIABLE", "score", score),
			helpers.Num("VALUE", 2),
		),
		helpers.Do(api.OpChangeVariableBy,
			helpers.Field("VARIABLE", "fresh", "fresh-id"),
			helpers.Num("VALUE", 5),
		),
		helpers.Do(api.OpShowVariable, helpers.Field("VARIABLE", "score", score)),
		helpers.Do(api.OpSetX,
			helpers.Reporter("X", helpers.Do(api.OpVariable,
				helpers.Field("VARIABLE", "score", score),
			)),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Flag()
		s := env.Sprite(t, "Cat")
		as.Equal(3.0, s.Variable(score, "").Value.AsNumber())
		as.SpriteAt(s, 3, 0)

		fresh := env.Engine.World().Stage().Variable("fresh-id", "")
		as.Require.NotNil(fresh)
		as.Equal(5.0, fresh.Value.AsNumber())
	})
}

func TestListOperations(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	items := helpers.List(cat, "items")
	field := helpers.Field("LIST", "items", items)
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpAddToList, field, helpers.Text("ITEM", "b")),
		helpers.Do(api.OpAddToList, field, helpers.Text("ITEM", "d")),
		helpers.Do(api.OpInsertAtList, field,
			helpers.Text("ITEM", "a"), helpers.Num("INDEX", 1),
		),
		helpers.Do(api.OpInsertAtList, field,
			helpers.Text("ITEM", "c"), helpers.Num("INDEX", 3),
		),
		helpers.Do(api.OpInsertAtList, field,
			helpers.Text("ITEM", "x"), helpers.Num("INDEX", 99),
		),
		helpers.Do(api.OpAddToList, field, helpers.Text("ITEM", "e")),
		helpers.Do(api.OpReplaceItemOfList, field,
			helpers.Text("INDEX", "last"), helpers.Text("ITEM", "E"),
		),
		helpers.Do(api.OpDeleteOfList, field, helpers.Num("INDEX", 0)),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Flag()
		l := env.Sprite(t, "Cat").List(items, "")
		as.Require.NotNil(l)
		as.Equal([]api.Value{
			api.Str("a"), api.Str("b"), api.Str("c"), api.Str("d"), api.Str("E"),
		}, l.Items)
	})
}

func TestListReporters(t *testing.T) {
	as := assert.New(t)
	withList := func(items ...api.Value) func(*api.Target) {
		return func(tgt *api.Target) {
			helpers.List(tgt, "items", items...)
		}
	}
	field := helpers.Field("LIST", "items", "list-items")
	abc := withList(api.Str("a"), api.Str("b"), api.Str("c"))

	as.Equal("abc", evaluate(t, helpers.Do(api.OpListContents, field), abc).AsString())
	as.Equal("one two", evaluate(t,
		helpers.Do(api.OpListContents, field),
		withList(api.Str("one"), api.Str("two")),
	).AsString())

	as.Equal("b", evaluate(t,
		helpers.Do(api.OpItemOfList, field, helpers.Num("INDEX", 2)), abc,
	).AsString())
	as.Equal("", evaluate(t,
		helpers.Do(api.OpItemOfList, field, helpers.Num("INDEX", 4)), abc,
	).AsString())
	as.Equal(3.0, evaluate(t,
		helpers.Do(api.OpItemNumOfList, field, helpers.Text("ITEM", "C")), abc,
	).AsNumber())
	as.Equal(3.0, evaluate(t,
		helpers.Do(api.OpLengthOfList, field), abc,
	).AsNumber())
	as.True(evaluate(t,
		helpers.Do(api.OpListContainsItem, field, helpers.Text("ITEM", "b")), abc,
	).AsBool())
	as.Equal(0.0, evaluate(t,
		helpers.Do(api.OpLengthOfList, helpers.Field("LIST", "nope", "nope")),
	).AsNumber())
}

func TestDeleteAllOfList(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	items := helpers.List(cat, "items", api.Num(1), api.Num(2))
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpDeleteOfList,
			helpers.Field("LIST", "items", items), helpers.Text("INDEX", "all"),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Flag()
		as.Empty(env.Sprite(t, "Cat").List(items, "").Items)
	})
}

func TestMotionBlocks(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	dog := helpers.NewSprite("Dog")
	dog.X, dog.Y = 30, 40
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpGoToXY, helpers.Num("X", 10), helpers.Num("Y", 20)),
		helpers.Do(api.OpTurnLeft, helpers.Num("DEGREES", 90)),
		helpers.Do(api.OpMoveSteps, helpers.Num("STEPS", 5)),
	)
	toward := helpers.Script(cat, helpers.Do(api.OpWhenKeyPressed,
		helpers.Field("KEY_OPTION", "a")),
		helpers.Do(api.OpGoToXY, helpers.Num("X", 0), helpers.Num("Y", 0)),
		helpers.Do(api.OpPointTowards,
			helpers.Menu("TOWARDS", api.OpPointTowardsMenu, "TOWARDS", "Dog"),
		),
		helpers.Do(api.OpGoTo,
			helpers.Menu("TO", api.OpGoToMenu, "TO", "Dog"),
		),
		helpers.Do(api.OpSetRotationStyle,
			helpers.Field("STYLE", string(api.RotationLeftRight)),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat, dog), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		s := env.Sprite(t, "Cat")

		env.Flag()
		as.Equal(0.0, s.Direction())
		as.SpriteAt(s, 10, 25)

		env.Input.Press("a")
		env.Ticks(1)
		as.NotNil(env.Chain(t, "Cat", toward.ID))
		as.InDelta(90-math.Atan2(40, 30)*180/math.Pi, s.Direction(), 1e-9)
		as.SpriteAt(s, 30, 40)
		as.Equal(api.RotationLeftRight, s.RotationStyle)
	})
}

func TestGlide(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	hat := helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpGlideSecsToXY,
			helpers.Num("SECS", 1), helpers.Num("X", 100), helpers.Num("Y", 50),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		s := env.Sprite(t, "Cat")
		ch := env.Chain(t, "Cat", hat.ID)

		env.Flag()
		as.SpriteAt(s, 0, 0)
		as.Queued(env.Engine, ch)

		env.Clock.Advance(500*time.Millisecond - env.Config.FrameInterval())
		env.Ticks(1)
		as.InDelta(50.0, s.X, 1e-6)
		as.InDelta(25.0, s.Y, 1e-6)

		env.Clock.Advance(time.Second)
		env.Ticks(1)
		as.SpriteAt(s, 100, 50)
		as.NotQueued(env.Engine, ch)
	})
}

func TestLooksBlocks(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	cat.Costumes = append(cat.Costumes, &api.Costume{Name: "costume2"})
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpSwitchCostumeTo, helpers.Text("COSTUME", "costume2")),
		helpers.Do(api.OpNextCostume),
		helpers.Do(api.OpChangeSizeBy, helpers.Num("CHANGE", 50)),
		helpers.Do(api.OpSetEffectTo,
			helpers.Field("EFFECT", "GHOST"), helpers.Num("VALUE", 150),
		),
		helpers.Do(api.OpChangeEffectBy,
			helpers.Field("EFFECT", "COLOR"), helpers.Num("CHANGE", 25),
		),
		helpers.Do(api.OpHide),
		helpers.Do(api.OpThink, helpers.Text("MESSAGE", "hmm")),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Flag()
		s := env.Sprite(t, "Cat")
		as.Equal("costume1", s.Costume().Name)
		as.Equal(150.0, s.Size)
		as.Equal(100.0, s.Effects["ghost"])
		as.Equal(25.0, s.Effects["color"])
		as.False(s.Visible)
		as.Equal(engine.Bubble{Text: "hmm", Kind: api.BubbleThink}, s.Bubble)
	})
}

func TestSayForSecs(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	hat := helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpSayForSecs,
			helpers.Text("MESSAGE", "hi"), helpers.Num("SECS", 0.1),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		s := env.Sprite(t, "Cat")
		env.Flag()
		as.Equal("hi", s.Bubble.Text)

		env.Ticks(4)
		as.Equal("", s.Bubble.Text)
		as.NotQueued(env.Engine, env.Chain(t, "Cat", hat.ID))
	})
}

func TestBackdropSwitchStartsHats(t *testing.T) {
	stage := helpers.NewStage()
	stage.Costumes = append(stage.Costumes, &api.Costume{Name: "night"})
	cat := helpers.NewSprite("Cat")
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpSwitchBackdropAndWait,
			helpers.Text("BACKDROP", "night"),
		),
		helpers.Do(api.OpSetY, helpers.Num("Y", 5)),
	)
	helpers.Script(cat, helpers.Do(api.OpWhenBackdropSwitches,
		helpers.Field("BACKDROP", "night")),
		helpers.Do(api.OpChangeXBy, helpers.Num("DX", 1)),
	)

	helpers.WithTestEnv(t, helpers.NewProject(stage, cat), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		s := env.Sprite(t, "Cat")
		env.Flag()
		as.Equal("night", env.Engine.World().Stage().Costume().Name)

		env.Ticks(2)
		as.SpriteAt(s, 1, 5)
	})
}

func TestSensingReporters(t *testing.T) {
	as := assert.New(t)
	as.Equal(-1.0, evaluate(t, helpers.Do(api.OpLoudness)).AsNumber())
	as.False(evaluate(t, helpers.Do(api.OpTouchingColor)).AsBool())
	as.Equal("player", evaluate(t, helpers.Do(api.OpUsername)).AsString())
	as.Equal(2024.0, evaluate(t, helpers.Do(api.OpCurrent,
		helpers.Field("CURRENTMENU", "YEAR"))).AsNumber())
	as.InDelta(8826.5, evaluate(t, helpers.Do(api.OpDaysSince2000)).AsNumber(), 0.01)
	as.Equal(0.0, evaluate(t, helpers.Do(api.OpDistanceTo,
		helpers.Menu("DISTANCETOMENU", api.OpDistanceToMenu,
			"DISTANCETOMENU", "Nobody"),
	)).AsNumber())
	as.Equal(100.0, evaluate(t, helpers.Do(api.OpOf,
		helpers.Field("PROPERTY", "volume"),
		helpers.Menu("OBJECT", api.OpOfObjectMenu, "OBJECT", "Cat"),
	)).AsNumber())
	as.Equal("backdrop1", evaluate(t, helpers.Do(api.OpOf,
		helpers.Field("PROPERTY", "backdrop name"),
		helpers.Menu("OBJECT", api.OpOfObjectMenu, "OBJECT", engine.StageName),
	)).AsString())
}

func TestTouching(t *testing.T) {
	cat := helpers.NewSprite("Cat")
	dog := helpers.NewSprite("Dog")
	dog.X = 15
	out := helpers.Variable(cat, "out", api.Value{})
	edge := helpers.Variable(cat, "edge", api.Value{})
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpSetVariableTo,
			helpers.Field("VARIABLE", "out", out),
			helpers.Reporter("VALUE", helpers.Do(api.OpTouchingObject,
				helpers.Menu("TOUCHINGOBJECTMENU", api.OpTouchingObjectMenu,
					"TOUCHINGOBJECTMENU", "Dog"),
			)),
		),
		helpers.Do(api.OpSetX, helpers.Num("X", 235)),
		helpers.Do(api.OpSetVariableTo,
			helpers.Field("VARIABLE", "edge", edge),
			helpers.Reporter("VALUE", helpers.Do(api.OpTouchingObject,
				helpers.Menu("TOUCHINGOBJECTMENU", api.OpTouchingObjectMenu,
					"TOUCHINGOBJECTMENU", engine.EdgeTarget),
			)),
		),
	)

	helpers.WithTestEnv(t, helpers.NewProject(cat, dog), func(env *helpers.TestEngineEnv) {
		as := assert.New(t)
		env.Flag()
		s := env.Sprite(t, "Cat")
		as.True(s.Variable(out, "").Value.AsBool())
		as.True(s.Variable(edge, "").Value.AsBool())
	})
}
