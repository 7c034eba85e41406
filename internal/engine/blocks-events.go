package engine

import "github.com/kode4food/flagstaff/pkg/api"

func eventBlocks() Registry {
	return Registry{
		api.OpWhenFlagClicked:       hat(anyHat),
		api.OpWhenKeyPressed:        hat(keyHat),
		api.OpWhenThisSpriteClicked: hat(anyHat),
		api.OpWhenStageClicked:      hat(anyHat),
		api.OpWhenBackdropSwitches:  hat(fieldHat("BACKDROP")),
		api.OpWhenGreaterThan:       hat(edgeHat),
		api.OpWhenBroadcastReceived: hat(fieldHat("BROADCAST_OPTION")),
		api.OpBroadcast:             command(broadcast),
		api.OpBroadcastAndWait:      command(broadcastAndWait),
	}
}

// edgeHat never matches a dispatched trigger. These chains are started by
// the edge check at the end of each tick
func edgeHat(*api.Block, string) bool {
	return false
}

func broadcast(c *Context) Result {
	c.Engine().Broadcast(c.String("BROADCAST_INPUT"))
	return Continue
}

func broadcastAndWait(c *Context) Result {
	return c.Await(func() Waiter {
		return c.Engine().Broadcast(c.String("BROADCAST_INPUT"))
	})
}
