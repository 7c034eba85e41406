package engine

import (
	"maps"
	"math"
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
)

type (
	// Sprite is one live instance of a target: an original, a clone, or
	// the stage. Blocks are shared with every instance of the same target,
	// while position, looks, variables and chains are per instance
	Sprite struct {
		prog          *program
		world         *World
		Variables     map[string]*api.Variable
		Lists         map[string]*api.List
		Effects       map[string]float64
		SoundEffects  map[string]float64
		Name          string
		RotationStyle api.RotationStyle
		Costumes      []*api.Costume
		Sounds        []*api.Sound
		Bubble        Bubble
		chains        []*Chain
		handle        Handle
		parent        Handle
		X             float64
		Y             float64
		direction     float64
		Size          float64
		volume        float64
		costume       int
		IsStage       bool
		IsClone       bool
		Visible       bool
		Draggable     bool
		dead          bool
	}

	// Bubble is the speech or thought text shown next to a sprite
	Bubble struct {
		Text string
		Kind api.BubbleKind
	}
)

const (
	minSize = 0
	maxSize = 10_000
)

func newSprite(prog *program) *Sprite {
	t := prog.target
	s := &Sprite{
		prog:          prog,
		Name:          t.Name,
		IsStage:       t.IsStage,
		X:             t.X,
		Y:             t.Y,
		Size:          t.Size,
		Visible:       t.Visible,
		Draggable:     t.Draggable,
		RotationStyle: t.RotationStyle,
		Costumes:      t.Costumes,
		Sounds:        t.Sounds,
		Variables:     copyVariables(t.Variables),
		Lists:         copyLists(t.Lists),
		Effects:       map[string]float64{},
		SoundEffects:  map[string]float64{},
	}
	if !s.RotationStyle.IsValid() {
		s.RotationStyle = api.RotationAllAround
	}
	if t.Size == 0 && !t.IsStage {
		s.Size = 100
	}
	s.SetDirection(t.Direction)
	s.SetVolume(t.Volume)
	s.SetCostume(t.CurrentCostume)
	s.chains = prog.newChains()
	return s
}

func (s *Sprite) clone() *Sprite {
	c := &Sprite{
		prog:          s.prog,
		Name:          s.Name,
		IsClone:       true,
		X:             s.X,
		Y:             s.Y,
		direction:     s.direction,
		Size:          s.Size,
		volume:        s.volume,
		costume:       s.costume,
		Visible:       s.Visible,
		Draggable:     s.Draggable,
		RotationStyle: s.RotationStyle,
		Costumes:      s.Costumes,
		Sounds:        s.Sounds,
		Variables:     copyVariables(s.Variables),
		Lists:         copyLists(s.Lists),
		Effects:       maps.Clone(s.Effects),
		SoundEffects:  maps.Clone(s.SoundEffects),
		parent:        s.handle,
	}
	c.chains = s.prog.newChains()
	return c
}

// Handle returns the stable reference of the sprite
func (s *Sprite) Handle() Handle {
	return s.handle
}

// Alive reports whether the sprite has not been deleted
func (s *Sprite) Alive() bool {
	return !s.dead
}

// Chains returns the sprite's scripts in declaration order
func (s *Sprite) Chains() []*Chain {
	return s.chains
}

// Chain returns the script rooted at the given hat block, or nil
func (s *Sprite) Chain(hat api.BlockID) *Chain {
	for _, ch := range s.chains {
		if ch.ID() == hat {
			return ch
		}
	}
	return nil
}

// Block returns a block of the sprite's target, or nil
func (s *Sprite) Block(id api.BlockID) *api.Block {
	return s.prog.target.Blocks.Get(id)
}

// Direction returns the heading in degrees, 90 being right
func (s *Sprite) Direction() float64 {
	return s.direction
}

// SetDirection normalizes the heading into (-180, 180]
func (s *Sprite) SetDirection(d float64) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return
	}
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	d -= 180
	if d == -180 {
		d = 180
	}
	s.direction = d
}

// Volume returns the playback volume as a percentage
func (s *Sprite) Volume() float64 {
	return s.volume
}

// SetVolume clamps the volume to 0..100
func (s *Sprite) SetVolume(v float64) {
	s.volume = min(max(v, 0), 100)
}

// SetSize clamps the size percentage to its supported range
func (s *Sprite) SetSize(v float64) {
	s.Size = min(max(v, minSize), maxSize)
}

// SetXY moves the sprite, ignoring non-finite coordinates
func (s *Sprite) SetXY(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	s.X, s.Y = x, y
}

// Costume returns the current costume, or nil when there are none
func (s *Sprite) Costume() *api.Costume {
	if len(s.Costumes) == 0 {
		return nil
	}
	return s.Costumes[s.costume]
}

// CostumeIndex returns the zero-based index of the current costume
func (s *Sprite) CostumeIndex() int {
	return s.costume
}

// SetCostume selects a costume by zero-based index, wrapping out of range
// indexes around the costume list
func (s *Sprite) SetCostume(i int) {
	n := len(s.Costumes)
	if n == 0 {
		s.costume = 0
		return
	}
	s.costume = ((i % n) + n) % n
}

// SetCostumeByName selects the costume with the given name
func (s *Sprite) SetCostumeByName(name string) bool {
	for i, c := range s.Costumes {
		if c.Name == name {
			s.costume = i
			return true
		}
	}
	return false
}

// Say shows a speech or thought bubble. Empty text clears it
func (s *Sprite) Say(kind api.BubbleKind, text string) {
	if text == "" {
		s.Bubble = Bubble{}
		return
	}
	s.Bubble = Bubble{Kind: kind, Text: text}
}

// Variable finds a variable by id or name, first on the sprite and then on
// the stage
func (s *Sprite) Variable(id, name string) *api.Variable {
	if v := findVariable(s.Variables, id, name); v != nil {
		return v
	}
	if st := s.stage(); st != nil && st != s {
		return findVariable(st.Variables, id, name)
	}
	return nil
}

// EnsureVariable finds a variable or creates it on the stage
func (s *Sprite) EnsureVariable(id, name string) *api.Variable {
	if v := s.Variable(id, name); v != nil {
		return v
	}
	owner := s.stage()
	if owner == nil {
		owner = s
	}
	if id == "" {
		id = name
	}
	v := &api.Variable{
		ID:    id,
		Name:  name,
		Cloud: strings.HasPrefix(name, api.CloudPrefix),
	}
	owner.Variables[id] = v
	return v
}

// List finds a list by id or name, first on the sprite and then on the
// stage
func (s *Sprite) List(id, name string) *api.List {
	if l := findList(s.Lists, id, name); l != nil {
		return l
	}
	if st := s.stage(); st != nil && st != s {
		return findList(st.Lists, id, name)
	}
	return nil
}

// EnsureList finds a list or creates it on the stage
func (s *Sprite) EnsureList(id, name string) *api.List {
	if l := s.List(id, name); l != nil {
		return l
	}
	owner := s.stage()
	if owner == nil {
		owner = s
	}
	if id == "" {
		id = name
	}
	l := &api.List{ID: id, Name: name}
	owner.Lists[id] = l
	return l
}

func (s *Sprite) stage() *Sprite {
	if s.world == nil {
		return nil
	}
	return s.world.Stage()
}

func (s *Sprite) state() *api.SpriteState {
	res := &api.SpriteState{
		Name:          s.Name,
		X:             s.X,
		Y:             s.Y,
		Direction:     s.direction,
		Size:          s.Size,
		CostumeIndex:  s.costume,
		Visible:       s.Visible,
		Clone:         s.IsClone,
		Stage:         s.IsStage,
		RotationStyle: s.RotationStyle,
		Bubble:        s.Bubble.Text,
		BubbleKind:    s.Bubble.Kind,
	}
	if c := s.Costume(); c != nil {
		res.Costume = c.Name
		res.Width = c.Width
		res.Height = c.Height
	}
	if s.world != nil {
		res.Layer = s.world.LayerOf(s)
	}
	if len(s.Effects) > 0 {
		res.Effects = maps.Clone(s.Effects)
	}
	if len(s.Variables) > 0 {
		res.Variables = make(map[string]any, len(s.Variables))
		for _, v := range s.Variables {
			res.Variables[v.Name] = v.Value.Interface()
		}
	}
	return res
}

func findVariable(vars map[string]*api.Variable, id, name string) *api.Variable {
	if v, ok := vars[id]; ok && id != "" {
		return v
	}
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func findList(lists map[string]*api.List, id, name string) *api.List {
	if l, ok := lists[id]; ok && id != "" {
		return l
	}
	for _, l := range lists {
		if l.Name == name {
			return l
		}
	}
	return nil
}

func copyVariables(vars map[string]*api.Variable) map[string]*api.Variable {
	res := make(map[string]*api.Variable, len(vars))
	for id, v := range vars {
		cp := *v
		res[id] = &cp
	}
	return res
}

func copyLists(lists map[string]*api.List) map[string]*api.List {
	res := make(map[string]*api.List, len(lists))
	for id, l := range lists {
		cp := *l
		cp.Items = append([]api.Value(nil), l.Items...)
		res[id] = &cp
	}
	return res
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
