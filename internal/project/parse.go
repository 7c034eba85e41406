package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kode4food/flagstaff/pkg/api"
)

type targetParser struct {
	target *api.Target
}

// Inline primitive tags used by project.json inputs
const (
	primNumber         = 4
	primPositiveNumber = 5
	primWholeNumber    = 6
	primInteger        = 7
	primAngle          = 8
	primColor          = 9
	primText           = 10
	primBroadcast      = 11
	primVariable       = 12
	primList           = 13
)

var (
	ErrInvalidProject = errors.New("invalid project")
	ErrNoTargets      = errors.New("project has no targets")
	ErrNoStage        = errors.New("project has no stage")
)

// Parse decodes a project.json document
func Parse(data []byte) (*api.Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidProject)
	}
	root := gjson.ParseBytes(data)
	targets := root.Get("targets")
	if !targets.IsArray() || len(targets.Array()) == 0 {
		return nil, ErrNoTargets
	}

	p := &api.Project{
		Meta: api.Metadata{
			Semver: root.Get("meta.semver").String(),
			VM:     root.Get("meta.vm").String(),
			Agent:  root.Get("meta.agent").String(),
		},
	}
	var parseErr error
	targets.ForEach(func(_, t gjson.Result) bool {
		if !t.IsObject() {
			parseErr = fmt.Errorf("%w: target is not an object", ErrInvalidProject)
			return false
		}
		p.Targets = append(p.Targets, parseTarget(t))
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if p.Stage() == nil {
		return nil, ErrNoStage
	}
	return p, nil
}

func parseTarget(r gjson.Result) *api.Target {
	t := &api.Target{
		Name:           r.Get("name").String(),
		IsStage:        r.Get("isStage").Bool(),
		X:              r.Get("x").Float(),
		Y:              r.Get("y").Float(),
		Direction:      floatOr(r.Get("direction"), 90),
		Size:           floatOr(r.Get("size"), 100),
		Volume:         floatOr(r.Get("volume"), 100),
		LayerOrder:     int(r.Get("layerOrder").Int()),
		CurrentCostume: int(r.Get("currentCostume").Int()),
		Draggable:      r.Get("draggable").Bool(),
		RotationStyle:  api.RotationStyle(r.Get("rotationStyle").String()),
		Blocks:         api.Blocks{},
		Variables:      map[string]*api.Variable{},
		Lists:          map[string]*api.List{},
		Broadcasts:     map[string]string{},
	}
	if v := r.Get("visible"); v.Exists() {
		t.Visible = v.Bool()
	} else {
		t.Visible = true
	}
	if !t.RotationStyle.IsValid() {
		t.RotationStyle = api.RotationAllAround
	}

	r.Get("variables").ForEach(func(id, v gjson.Result) bool {
		name := v.Get("0").String()
		t.Variables[id.String()] = &api.Variable{
			ID:    id.String(),
			Name:  name,
			Value: literal(v.Get("1")),
			Cloud: v.Get("2").Bool() || strings.HasPrefix(name, api.CloudPrefix),
		}
		return true
	})
	r.Get("lists").ForEach(func(id, l gjson.Result) bool {
		list := &api.List{ID: id.String(), Name: l.Get("0").String()}
		for _, item := range l.Get("1").Array() {
			list.Items = append(list.Items, literal(item))
		}
		t.Lists[id.String()] = list
		return true
	})
	r.Get("broadcasts").ForEach(func(id, name gjson.Result) bool {
		t.Broadcasts[id.String()] = name.String()
		return true
	})

	tp := &targetParser{target: t}
	r.Get("blocks").ForEach(func(id, b gjson.Result) bool {
		tp.block(api.BlockID(id.String()), b)
		return true
	})

	for _, c := range r.Get("costumes").Array() {
		t.Costumes = append(t.Costumes, parseCostume(c))
	}
	for _, s := range r.Get("sounds").Array() {
		t.Sounds = append(t.Sounds, parseSound(s))
	}
	return t
}

func (p *targetParser) block(id api.BlockID, r gjson.Result) {
	if r.IsArray() {
		p.topLevelPrimitive(id, r.Array())
		return
	}
	if !r.IsObject() {
		return
	}

	b := &api.Block{
		ID:       id,
		Opcode:   api.Opcode(r.Get("opcode").String()),
		Next:     api.BlockID(r.Get("next").String()),
		Parent:   api.BlockID(r.Get("parent").String()),
		TopLevel: r.Get("topLevel").Bool(),
		Shadow:   r.Get("shadow").Bool(),
		Inputs:   map[string]api.Input{},
		Fields:   map[string]api.Field{},
	}
	r.Get("inputs").ForEach(func(name, in gjson.Result) bool {
		if v, ok := p.input(id, name.String(), in); ok {
			b.Inputs[name.String()] = v
		}
		return true
	})
	r.Get("fields").ForEach(func(name, f gjson.Result) bool {
		b.Fields[name.String()] = parseField(f)
		return true
	})
	if m := r.Get("mutation"); m.IsObject() {
		b.Mutation = parseMutation(m)
	}
	p.add(b)
}

// input decodes [shadowType, value, shadow?]. A null value falls back to
// the obscured shadow
func (p *targetParser) input(
	parent api.BlockID, name string, r gjson.Result,
) (api.Input, bool) {
	arr := r.Array()
	if len(arr) < 2 {
		return api.Input{}, false
	}
	v := arr[1]
	if v.Type == gjson.Null && len(arr) > 2 {
		v = arr[2]
	}
	switch {
	case v.Type == gjson.String:
		return api.BlockInput(api.BlockID(v.String())), true
	case v.IsArray():
		return p.primitive(parent, name, v.Array())
	default:
		return api.Input{}, false
	}
}

func (p *targetParser) primitive(
	parent api.BlockID, name string, prim []gjson.Result,
) (api.Input, bool) {
	if len(prim) < 2 {
		return api.Input{}, false
	}
	switch prim[0].Int() {
	case primVariable, primList:
		id := api.BlockID(string(parent) + ":" + name)
		p.add(p.reference(id, parent, prim))
		return api.BlockInput(id), true
	case primNumber, primPositiveNumber, primWholeNumber, primInteger,
		primAngle:
		return api.LiteralInput(literal(prim[1])), true
	case primColor, primText, primBroadcast:
		return api.LiteralInput(api.Str(prim[1].String())), true
	default:
		return api.Input{}, false
	}
}

// topLevelPrimitive handles a variable or list reporter dropped loose on
// the workspace: [tag, name, id, x, y]
func (p *targetParser) topLevelPrimitive(id api.BlockID, prim []gjson.Result) {
	if len(prim) < 3 {
		return
	}
	switch prim[0].Int() {
	case primVariable, primList:
		b := p.reference(id, "", prim)
		b.TopLevel = true
		p.add(b)
	}
}

func (p *targetParser) reference(
	id, parent api.BlockID, prim []gjson.Result,
) *api.Block {
	op, field := api.OpVariable, "VARIABLE"
	if prim[0].Int() == primList {
		op, field = api.OpListContents, "LIST"
	}
	f := api.Field{prim[1].String()}
	if len(prim) > 2 {
		f = append(f, prim[2].String())
	}
	return &api.Block{
		ID:     id,
		Opcode: op,
		Parent: parent,
		Inputs: map[string]api.Input{},
		Fields: map[string]api.Field{field: f},
	}
}

func (p *targetParser) add(b *api.Block) {
	t := p.target
	t.Blocks[b.ID] = b
	if b.TopLevel {
		t.Scripts = append(t.Scripts, b.ID)
	}
}

func parseField(r gjson.Result) api.Field {
	arr := r.Array()
	res := api.Field{}
	if len(arr) > 0 {
		res = append(res, arr[0].String())
	}
	if len(arr) > 1 && arr[1].Type != gjson.Null {
		res = append(res, arr[1].String())
	}
	return res
}

// parseMutation reads procedure data. The argument arrays are themselves
// JSON encoded strings
func parseMutation(m gjson.Result) *api.Mutation {
	return &api.Mutation{
		ProcCode:         m.Get("proccode").String(),
		ArgumentIDs:      stringArray(m.Get("argumentids")),
		ArgumentNames:    stringArray(m.Get("argumentnames")),
		ArgumentDefaults: stringArray(m.Get("argumentdefaults")),
		Warp:             m.Get("warp").Bool(),
	}
}

func stringArray(r gjson.Result) []string {
	if r.Type == gjson.String {
		r = gjson.Parse(r.String())
	}
	if !r.IsArray() {
		return nil
	}
	var res []string
	for _, v := range r.Array() {
		res = append(res, v.String())
	}
	return res
}

func parseCostume(r gjson.Result) *api.Costume {
	c := &api.Costume{
		ID:               r.Get("assetId").String(),
		Name:             r.Get("name").String(),
		FullName:         r.Get("md5ext").String(),
		DataFormat:       r.Get("dataFormat").String(),
		RotationCenterX:  r.Get("rotationCenterX").Float(),
		RotationCenterY:  r.Get("rotationCenterY").Float(),
		BitmapResolution: floatOr(r.Get("bitmapResolution"), 1),
	}
	if c.FullName == "" && c.ID != "" {
		c.FullName = c.ID + "." + c.DataFormat
	}
	return c
}

func parseSound(r gjson.Result) *api.Sound {
	s := &api.Sound{
		ID:          r.Get("assetId").String(),
		Name:        r.Get("name").String(),
		FullName:    r.Get("md5ext").String(),
		DataFormat:  r.Get("dataFormat").String(),
		Rate:        int(r.Get("rate").Int()),
		SampleCount: int(r.Get("sampleCount").Int()),
	}
	if s.FullName == "" && s.ID != "" {
		s.FullName = s.ID + "." + s.DataFormat
	}
	return s
}

func literal(r gjson.Result) api.Value {
	switch r.Type {
	case gjson.Number:
		return api.Num(r.Num)
	case gjson.True, gjson.False:
		return api.Bool(r.Bool())
	case gjson.Null:
		return api.Str("")
	default:
		return api.Str(r.String())
	}
}

func floatOr(r gjson.Result, def float64) float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	return r.Float()
}
