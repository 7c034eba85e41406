package engine

import (
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"
)

// silence is the loudness reported when no microphone is available
const silence = -1

// checkEdgeHats starts "when ... >" chains whose condition turned true
// since the previous tick
func (e *Engine) checkEdgeHats() {
	for _, s := range e.world.Sprites() {
		for _, ch := range s.chains {
			if ch.hat.Opcode != api.OpWhenGreaterThan {
				continue
			}
			now := e.edgeCondition(s, ch)
			if now && !ch.edge {
				e.startMatching(Trigger{chain: ch, Target: s.handle})
			}
			ch.edge = now
		}
	}
}

func (e *Engine) edgeCondition(s *Sprite, ch *Chain) bool {
	ctx := &Context{engine: e, sprite: s, chain: ch, block: ch.hat}
	limit := ctx.Number("VALUE")
	switch strings.ToUpper(ctx.Field("WHENGREATERTHANMENU")) {
	case "TIMER":
		return e.Timer() > limit
	case "LOUDNESS":
		return silence > limit
	default:
		return false
	}
}
