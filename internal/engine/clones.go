package engine

import (
	"errors"
	"log/slog"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

var (
	ErrCloneLimit   = errors.New("clone limit reached")
	ErrCloneOfStage = errors.New("the stage cannot be cloned")
	ErrSpriteGone   = errors.New("sprite no longer exists")
)

// CreateClone copies a sprite into a new clone layered behind it and
// starts the clone's "when I start as a clone" chains
func (e *Engine) CreateClone(parent *Sprite) (*Sprite, error) {
	switch {
	case parent == nil || parent.dead:
		return nil, ErrSpriteGone
	case parent.IsStage:
		return nil, ErrCloneOfStage
	}
	limit := e.config.MaxClones
	if e.world.CloneCount() >= limit {
		slog.Debug("Clone limit reached",
			log.Sprite(parent.Name),
			slog.Int("limit", limit))
		return nil, ErrCloneLimit
	}

	c := parent.clone()
	e.world.Add(c)
	e.publish(&api.Event{
		Type:   api.EventTypeCloneCreated,
		Sprite: c.Name,
		Data:   map[string]any{"clones": e.world.CloneCount()},
	})
	e.startMatching(Trigger{
		Opcode: api.OpStartAsClone,
		Target: c.handle,
	})
	return c, nil
}

// DeleteClone removes a clone, halting its chains and purging them from
// the wait queue at once. Originals and the stage are never deleted
func (e *Engine) DeleteClone(s *Sprite) bool {
	if s == nil || !s.IsClone || s.dead {
		return false
	}
	e.deleteClone(s)
	return true
}

func (e *Engine) deleteClone(s *Sprite) {
	for _, ch := range s.chains {
		e.halt(ch)
	}
	e.waiting.RemoveSprite(s.handle)
	e.dropQuestions(s.handle)
	if e.drag != nil && e.drag.sprite == s.handle {
		e.drag = nil
	}
	e.world.Remove(s.handle)
	e.publish(&api.Event{
		Type:   api.EventTypeCloneDeleted,
		Sprite: s.Name,
		Data:   map[string]any{"clones": e.world.CloneCount()},
	})
}
